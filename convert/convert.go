// Package convert orchestrates the conversion pipeline: input detection,
// rasterization, OCR, table recovery, and CSV output naming. Per-file
// converters live here; Runner adds concurrent batch processing over a
// directory.
package convert

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/gridocr/gridocr/csvout"
	"github.com/gridocr/gridocr/enhance"
	"github.com/gridocr/gridocr/extract"
	"github.com/gridocr/gridocr/format"
	"github.com/gridocr/gridocr/model"
	"github.com/gridocr/gridocr/ocr"
	"github.com/gridocr/gridocr/rasterize"
	"github.com/gridocr/gridocr/tables"
)

// Page is one CSV output produced from an input file. PDFs yield one
// Page per document page; images yield exactly one.
type Page struct {
	// Name is the output file name: "{stem}_page{N}.csv" for PDF pages,
	// "{stem}.csv" for images.
	Name string
	// CSV is the serialized grid. Empty pages carry zero bytes.
	CSV []byte
	// Empty reports that the page produced no text fragments.
	Empty bool
	// Degenerate reports that table recovery collapsed to at most one
	// cell, usually a sign the input was not tabular.
	Degenerate bool
}

// Converter turns a single PDF or image file into CSV pages.
type Converter struct {
	engine     ocr.Engine
	rasterizer rasterize.Rasterizer
	enhancer   *enhance.Enhancer
	extraction extract.Options
	layout     tables.Config
	log        *zap.Logger
}

// Option configures a Converter.
type Option func(*Converter)

// WithEngine sets the OCR engine. Without one, image inputs and PDFs
// lacking a text layer fail with ErrOCRNotEnabled.
func WithEngine(e ocr.Engine) Option {
	return func(c *Converter) { c.engine = e }
}

// WithRasterizer overrides the PDF rasterizer.
func WithRasterizer(r rasterize.Rasterizer) Option {
	return func(c *Converter) { c.rasterizer = r }
}

// WithEnhancer overrides the image preprocessing pipeline.
func WithEnhancer(e *enhance.Enhancer) Option {
	return func(c *Converter) { c.enhancer = e }
}

// WithExtractOptions overrides the fragment filtering options.
func WithExtractOptions(o extract.Options) Option {
	return func(c *Converter) { c.extraction = o }
}

// WithLayoutConfig overrides the table recovery settings.
func WithLayoutConfig(cfg tables.Config) Option {
	return func(c *Converter) { c.layout = cfg }
}

// WithLogger sets the structured logger. Default is a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *Converter) { c.log = l }
}

// New creates a Converter. Defaults: no OCR engine, poppler
// rasterization at 300 DPI, the standard enhancement pipeline, and
// default extraction and layout settings.
func New(opts ...Option) *Converter {
	c := &Converter{
		rasterizer: rasterize.NewPoppler(0),
		enhancer:   enhance.New(),
		extraction: extract.DefaultOptions(),
		layout:     tables.DefaultConfig(),
		log:        zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ConvertFile converts one input file into CSV pages. The input format
// is detected from the extension, falling back to magic bytes for files
// without a recognized one. Unsupported files return
// ErrUnsupportedInput.
func (c *Converter) ConvertFile(ctx context.Context, path string) ([]Page, error) {
	f := format.Detect(path)
	if f == format.Unknown {
		f = detectByMagic(path)
	}

	switch {
	case f == format.PDF:
		return c.convertPDF(ctx, path)
	case f.IsImage():
		return c.convertImage(ctx, path)
	default:
		return nil, fmt.Errorf("%s: %w", path, ErrUnsupportedInput)
	}
}

func detectByMagic(path string) format.Format {
	f, err := os.Open(path)
	if err != nil {
		return format.Unknown
	}
	defer f.Close()

	magic := make([]byte, 8)
	n, _ := f.Read(magic)
	return format.DetectFromMagic(magic[:n])
}

// stem strips the directory and extension from a path.
func stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// convertImage runs a single raster image through enhancement, OCR, and
// table recovery.
func (c *Converter) convertImage(ctx context.Context, path string) ([]Page, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	fragments, err := c.recognize(ctx, data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	page := c.assemble(fragments, stem(path)+".csv")
	return []Page{page}, nil
}

// convertPDF converts every page of a PDF. Pages with a native text
// layer skip OCR; the rest are rasterized once and recognized.
func (c *Converter) convertPDF(ctx context.Context, path string) ([]Page, error) {
	textPages, err := extract.FromPDFFile(path)
	if err != nil {
		// Damaged or encrypted text layer. OCR the whole document.
		c.log.Debug("pdf text layer unavailable",
			zap.String("file", path), zap.Error(err))
		textPages = nil
	}

	needOCR := len(textPages) == 0
	for _, fragments := range textPages {
		if len(fragments) == 0 {
			needOCR = true
			break
		}
	}

	var rendered [][]byte
	if needOCR {
		rendered, err = c.rasterizer.Rasterize(ctx, path)
		if err != nil {
			return nil, fmt.Errorf("rasterize %s: %w", path, err)
		}
	}

	numPages := len(textPages)
	if len(rendered) > numPages {
		numPages = len(rendered)
	}

	name := stem(path)
	pages := make([]Page, 0, numPages)
	for i := 0; i < numPages; i++ {
		var fragments []model.TextFragment
		if i < len(textPages) && len(textPages[i]) > 0 {
			fragments = textPages[i]
		} else if i < len(rendered) {
			fragments, err = c.recognize(ctx, rendered[i])
			if err != nil {
				return nil, fmt.Errorf("%s page %d: %w", path, i+1, err)
			}
		}
		pages = append(pages, c.assemble(fragments, fmt.Sprintf("%s_page%d.csv", name, i+1)))
	}

	return pages, nil
}

// recognize runs enhancement and OCR on raw image bytes and filters the
// result into text fragments.
func (c *Converter) recognize(ctx context.Context, imageData []byte) ([]model.TextFragment, error) {
	if c.engine == nil {
		return nil, &ocr.EngineError{Op: "recognize", Err: ocr.ErrOCRNotEnabled}
	}

	enhanced, err := c.enhancer.Enhance(imageData)
	if err != nil {
		return nil, err
	}

	words, err := c.engine.Recognize(ctx, enhanced)
	if err != nil {
		return nil, err
	}

	return extract.FromWords(words, c.extraction), nil
}

// assemble recovers the table structure from a page's fragments and
// serializes it.
func (c *Converter) assemble(fragments []model.TextFragment, name string) Page {
	grid := tables.Recover(fragments, c.layout)
	csvText, err := csvout.Marshal(grid)
	if err != nil {
		// Serializing to an in-memory buffer does not fail in practice.
		c.log.Error("serialize grid", zap.String("page", name), zap.Error(err))
	}
	page := Page{
		Name:       name,
		CSV:        []byte(csvText),
		Empty:      grid.IsEmpty(),
		Degenerate: !grid.IsEmpty() && grid.IsDegenerate(),
	}
	if page.Degenerate {
		c.log.Warn("degenerate grid, input may not be tabular",
			zap.String("page", name))
	}
	return page
}
