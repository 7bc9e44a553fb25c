package ocr

import (
	"context"
	"errors"
	"fmt"

	"github.com/gridocr/gridocr/model"
)

// ErrOCRNotEnabled is returned when OCR is requested but support was not
// compiled in. Rebuild with -tags ocr to enable it.
var ErrOCRNotEnabled = errors.New("OCR support not enabled; rebuild with -tags ocr")

// Word is a single recognized token with its position and confidence, as
// reported by the OCR engine. Confidence is normalized to [0,1]; 0 means
// the engine did not report one.
type Word struct {
	Text       string
	BBox       model.BBox
	Confidence float64
}

// Engine recognizes text in a single page image. Implementations must be
// safe to call sequentially; callers that want parallelism use one engine
// per worker.
type Engine interface {
	// Recognize performs OCR on encoded image data (PNG, JPEG, TIFF).
	// It returns the recognized words with bounding boxes, or an empty
	// slice when nothing was recognized. Engine-level failures are
	// reported as *EngineError.
	Recognize(ctx context.Context, imageData []byte) ([]Word, error)

	// Close releases engine resources.
	Close() error
}

// EngineError reports that the OCR engine itself failed or is unavailable.
// It is fatal for the page being processed; batch callers skip the file
// and continue.
type EngineError struct {
	Op  string
	Err error
}

// Error implements the error interface.
func (e *EngineError) Error() string {
	return fmt.Sprintf("ocr engine: %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error.
func (e *EngineError) Unwrap() error {
	return e.Err
}
