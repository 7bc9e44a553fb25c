// Package gridocr provides a fluent API for converting PDFs and scanned
// images with tabular content into CSV.
//
// Basic usage:
//
//	pages, err := gridocr.Open("invoice.pdf").Convert(ctx)
//	if err != nil {
//	    // handle error
//	}
//	for _, page := range pages {
//	    os.WriteFile(page.Name, page.CSV, 0o644)
//	}
//
// With options:
//
//	engine, err := ocr.New(ocr.WithLanguage("eng+deu"))
//	if err != nil {
//	    // handle error
//	}
//	defer engine.Close()
//
//	pages, err := gridocr.Open("scan.png").
//	    Engine(engine).
//	    MinConfidence(0.5).
//	    Convert(ctx)
//
// For batch conversion of whole directories, use the convert.Runner
// directly or the gridocr command-line tool.
package gridocr

import (
	"context"

	"go.uber.org/zap"

	"github.com/gridocr/gridocr/convert"
	"github.com/gridocr/gridocr/enhance"
	"github.com/gridocr/gridocr/ocr"
	"github.com/gridocr/gridocr/rasterize"
	"github.com/gridocr/gridocr/tables"
)

// Job is a pending conversion of a single file, configured fluently and
// executed by Convert.
type Job struct {
	filename string
	options  jobOptions
}

// Open prepares a conversion of the given PDF, JPG, or PNG file.
func Open(filename string) *Job {
	return &Job{
		filename: filename,
		options:  defaultJobOptions(),
	}
}

// Engine sets the OCR engine used for image inputs and PDFs without a
// text layer. Without one, those inputs fail with ocr.ErrOCRNotEnabled.
func (j *Job) Engine(e ocr.Engine) *Job {
	j.options.engine = e
	return j
}

// Rasterizer overrides how PDF pages are rendered for OCR. The default
// shells out to pdftoppm at 300 DPI.
func (j *Job) Rasterizer(r rasterize.Rasterizer) *Job {
	j.options.rasterizer = r
	return j
}

// Enhancer overrides the image preprocessing pipeline.
func (j *Job) Enhancer(e *enhance.Enhancer) *Job {
	j.options.enhancer = e
	return j
}

// MinConfidence drops OCR words below this confidence (0..1).
func (j *Job) MinConfidence(v float64) *Job {
	j.options.extraction.MinConfidence = v
	return j
}

// Layout overrides the table recovery tolerances.
func (j *Job) Layout(cfg tables.Config) *Job {
	j.options.layout = cfg
	return j
}

// Logger sets a structured logger for pipeline warnings. The default
// discards them.
func (j *Job) Logger(l *zap.Logger) *Job {
	j.options.log = l
	return j
}

// Convert runs the pipeline and returns one CSV page per document page.
// Image inputs yield exactly one page.
func (j *Job) Convert(ctx context.Context) ([]convert.Page, error) {
	return j.options.converter().ConvertFile(ctx, j.filename)
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	pages := gridocr.Must(gridocr.Open("scan.png").Convert(ctx))
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
