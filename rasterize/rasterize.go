// Package rasterize renders PDF pages to raster images for OCR.
//
// The default implementation shells out to pdftoppm from the poppler
// toolchain, which must be installed on the host.
package rasterize

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
)

// DefaultDPI is the render resolution used when none is configured.
// 300 DPI is the conventional sweet spot for OCR accuracy.
const DefaultDPI = 300

// Rasterizer renders a PDF into one PNG image per page.
type Rasterizer interface {
	// Rasterize renders every page of the PDF at path and returns the
	// encoded PNG bytes in page order.
	Rasterize(ctx context.Context, path string) ([][]byte, error)
}

// Poppler rasterizes PDFs with the pdftoppm command-line tool.
type Poppler struct {
	// DPI is the render resolution. Zero means DefaultDPI.
	DPI int
	// Binary overrides the pdftoppm executable path. Empty means look
	// up "pdftoppm" on PATH.
	Binary string
}

// NewPoppler returns a Poppler rasterizer rendering at the given DPI.
// A non-positive dpi selects DefaultDPI.
func NewPoppler(dpi int) *Poppler {
	if dpi <= 0 {
		dpi = DefaultDPI
	}
	return &Poppler{DPI: dpi}
}

// Available reports whether the pdftoppm binary can be found.
func (p *Poppler) Available() bool {
	_, err := exec.LookPath(p.binary())
	return err == nil
}

func (p *Poppler) binary() string {
	if p.Binary != "" {
		return p.Binary
	}
	return "pdftoppm"
}

func (p *Poppler) dpi() int {
	if p.DPI > 0 {
		return p.DPI
	}
	return DefaultDPI
}

// Rasterize renders the PDF into per-page PNGs via pdftoppm, using a
// temporary directory for the intermediate files.
func (p *Poppler) Rasterize(ctx context.Context, path string) ([][]byte, error) {
	tmp, err := os.MkdirTemp("", "gridocr-raster-*")
	if err != nil {
		return nil, fmt.Errorf("create temp dir: %w", err)
	}
	defer os.RemoveAll(tmp)

	prefix := filepath.Join(tmp, "page")
	cmd := exec.CommandContext(ctx, p.binary(),
		"-r", fmt.Sprint(p.dpi()),
		"-png",
		path,
		prefix,
	)
	if out, err := cmd.CombinedOutput(); err != nil {
		return nil, fmt.Errorf("pdftoppm %s: %w: %s", path, err, out)
	}

	// pdftoppm names output page-1.png, page-2.png, ... zero-padding
	// the index when the document has 10+ pages, so a lexical sort of
	// the matches preserves page order.
	matches, err := filepath.Glob(prefix + "-*.png")
	if err != nil {
		return nil, fmt.Errorf("list rendered pages: %w", err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("pdftoppm %s: no pages rendered", path)
	}
	sort.Strings(matches)

	pages := make([][]byte, 0, len(matches))
	for _, m := range matches {
		data, err := os.ReadFile(m)
		if err != nil {
			return nil, fmt.Errorf("read rendered page %s: %w", m, err)
		}
		pages = append(pages, data)
	}
	return pages, nil
}
