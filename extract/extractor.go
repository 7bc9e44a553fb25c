// Package extract normalizes raw recognition output into the text
// fragments consumed by table recovery.
//
// Two sources feed the pipeline: word-level OCR output (FromWords) and,
// for PDFs that carry a text layer, positioned text extracted directly
// from the page (FromPDFFile), which skips rasterization and OCR entirely.
package extract

import (
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/gridocr/gridocr/model"
	"github.com/gridocr/gridocr/ocr"
)

// Options controls fragment filtering.
type Options struct {
	// MinConfidence drops fragments whose confidence is positive but
	// below this bound. A confidence of exactly 0 means the source did
	// not report one and the fragment is kept.
	MinConfidence float64
}

// DefaultOptions returns the default filtering options.
func DefaultOptions() Options {
	return Options{MinConfidence: 0.30}
}

// FromWords converts raw OCR words into text fragments. Words whose
// trimmed text is empty, and words with a reported confidence below
// Options.MinConfidence, are dropped. Fragment text is NFC-normalized,
// since OCR engines frequently emit decomposed combining sequences.
//
// The input order is preserved; downstream stages do not rely on it.
// An empty input yields an empty (nil) result, never an error.
func FromWords(words []ocr.Word, opts Options) []model.TextFragment {
	if len(words) == 0 {
		return nil
	}

	fragments := make([]model.TextFragment, 0, len(words))
	for _, w := range words {
		text := strings.TrimSpace(w.Text)
		if text == "" {
			continue
		}
		if w.Confidence > 0 && w.Confidence < opts.MinConfidence {
			continue
		}
		fragments = append(fragments, model.TextFragment{
			Text:       norm.NFC.String(text),
			BBox:       w.BBox,
			Confidence: w.Confidence,
		})
	}

	if len(fragments) == 0 {
		return nil
	}
	return fragments
}
