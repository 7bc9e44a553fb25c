//go:build ocr

// Package ocr provides the OCR engine boundary for gridocr.
//
// This implementation wraps the Tesseract OCR engine via gosseract. It
// requires Tesseract to be installed on the system. On macOS, install via:
//
//	brew install tesseract
//
// On Ubuntu/Debian:
//
//	apt-get install tesseract-ocr
package ocr

import (
	"context"
	"fmt"

	"github.com/otiai10/gosseract/v2"

	"github.com/gridocr/gridocr/model"
)

// Tesseract is an Engine backed by a gosseract client. It is not safe for
// concurrent use; create one per worker.
type Tesseract struct {
	client *gosseract.Client
}

// New creates a Tesseract-backed OCR engine. The engine should be closed
// when no longer needed to release resources.
func New(opts ...TesseractOption) (*Tesseract, error) {
	client := gosseract.NewClient()

	cfg := defaultTesseractConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.language != "" {
		if err := client.SetLanguage(cfg.language); err != nil {
			client.Close()
			return nil, &EngineError{Op: "set language", Err: err}
		}
	}
	if err := client.SetPageSegMode(gosseract.PageSegMode(cfg.pageSegMode)); err != nil {
		client.Close()
		return nil, &EngineError{Op: "set page segmentation mode", Err: err}
	}
	if cfg.dpi > 0 {
		if err := client.SetVariable(gosseract.SettableVariable("user_defined_dpi"), fmt.Sprint(cfg.dpi)); err != nil {
			client.Close()
			return nil, &EngineError{Op: "set dpi", Err: err}
		}
	}

	return &Tesseract{client: client}, nil
}

// Close releases OCR resources.
func (t *Tesseract) Close() error {
	if t.client != nil {
		return t.client.Close()
	}
	return nil
}

// Recognize performs OCR on encoded image data and returns the recognized
// words with their bounding boxes.
func (t *Tesseract) Recognize(ctx context.Context, imageData []byte) ([]Word, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	if err := t.client.SetImageFromBytes(imageData); err != nil {
		return nil, &EngineError{Op: "set image", Err: err}
	}

	boxes, err := t.client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil {
		return nil, &EngineError{Op: "recognize", Err: err}
	}

	words := make([]Word, 0, len(boxes))
	for _, b := range boxes {
		words = append(words, Word{
			Text: b.Word,
			BBox: model.NewBBox(
				float64(b.Box.Min.X),
				float64(b.Box.Min.Y),
				float64(b.Box.Dx()),
				float64(b.Box.Dy()),
			),
			// Tesseract reports 0-100.
			Confidence: b.Confidence / 100.0,
		})
	}

	return words, nil
}
