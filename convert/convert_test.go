package convert

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/gridocr/gridocr/model"
	"github.com/gridocr/gridocr/ocr"
	"github.com/gridocr/gridocr/tables"
)

// fakeEngine returns a fixed word list for every page.
type fakeEngine struct {
	words []ocr.Word
	err   error
	calls int
}

func (f *fakeEngine) Recognize(ctx context.Context, imageData []byte) ([]ocr.Word, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.words, nil
}

func (f *fakeEngine) Close() error { return nil }

// fakeRasterizer returns canned page images.
type fakeRasterizer struct {
	pages [][]byte
	err   error
}

func (f *fakeRasterizer) Rasterize(ctx context.Context, path string) ([][]byte, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.pages, nil
}

// tableWords is the two-row, two-column scenario: a header row and a
// data row with a clear column gap.
func tableWords() []ocr.Word {
	return []ocr.Word{
		{Text: "Name", BBox: model.NewBBox(0, 0, 40, 10), Confidence: 0.95},
		{Text: "Age", BBox: model.NewBBox(50, 0, 30, 10), Confidence: 0.95},
		{Text: "Alice", BBox: model.NewBBox(0, 20, 40, 10), Confidence: 0.95},
		{Text: "30", BBox: model.NewBBox(50, 20, 30, 10), Confidence: 0.95},
	}
}

// tightLayout keeps the column merge tolerance below the test fixtures'
// inter-column gaps.
func tightLayout() tables.Config {
	return tables.Config{
		RowToleranceFactor: 0.6,
		ColToleranceFactor: 0.2,
		MinTolerance:       2.0,
	}
}

// writePNG creates a small valid PNG file for the enhancer to decode.
func writePNG(t *testing.T, path string) {
	t.Helper()
	img := image.NewGray(image.Rect(0, 0, 20, 20))
	for y := 0; y < 20; y++ {
		for x := 0; x < 20; x++ {
			img.SetGray(x, y, color.Gray{Y: 255})
		}
	}
	img.SetGray(10, 10, color.Gray{Y: 0})

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("write png: %v", err)
	}
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	path := filepath.Join(t.TempDir(), "page.png")
	writePNG(t, path)
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read png: %v", err)
	}
	return data
}

func TestConvertFileUnsupported(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(path, []byte("plain text"), 0o644); err != nil {
		t.Fatal(err)
	}

	c := New()
	_, err := c.ConvertFile(context.Background(), path)
	if !errors.Is(err, ErrUnsupportedInput) {
		t.Errorf("ConvertFile() error = %v, want ErrUnsupportedInput", err)
	}
}

func TestConvertFileMagicFallback(t *testing.T) {
	// A PNG without an extension should still be detected by magic.
	dir := t.TempDir()
	path := filepath.Join(dir, "scanned")
	writePNG(t, path)

	c := New(
		WithEngine(&fakeEngine{words: tableWords()}),
		WithLayoutConfig(tightLayout()),
	)
	pages, err := c.ConvertFile(context.Background(), path)
	if err != nil {
		t.Fatalf("ConvertFile() failed: %v", err)
	}
	if len(pages) != 1 || pages[0].Name != "scanned.csv" {
		t.Errorf("pages = %+v, want one page named scanned.csv", pages)
	}
}

func TestConvertImage(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "table.png")
	writePNG(t, path)

	c := New(
		WithEngine(&fakeEngine{words: tableWords()}),
		WithLayoutConfig(tightLayout()),
	)
	pages, err := c.ConvertFile(context.Background(), path)
	if err != nil {
		t.Fatalf("ConvertFile() failed: %v", err)
	}
	if len(pages) != 1 {
		t.Fatalf("got %d pages, want 1", len(pages))
	}

	page := pages[0]
	if page.Name != "table.csv" {
		t.Errorf("name = %q, want table.csv", page.Name)
	}
	if got, want := string(page.CSV), "Name,Age\nAlice,30\n"; got != want {
		t.Errorf("csv = %q, want %q", got, want)
	}
	if page.Empty || page.Degenerate {
		t.Errorf("flags = empty:%v degenerate:%v, want false/false", page.Empty, page.Degenerate)
	}
}

func TestConvertImageNoEngine(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "table.png")
	writePNG(t, path)

	_, err := New().ConvertFile(context.Background(), path)
	if !errors.Is(err, ocr.ErrOCRNotEnabled) {
		t.Errorf("ConvertFile() error = %v, want ErrOCRNotEnabled", err)
	}
	var engineErr *ocr.EngineError
	if !errors.As(err, &engineErr) {
		t.Errorf("ConvertFile() error = %v, want *ocr.EngineError", err)
	}
}

func TestConvertImageEngineFailure(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "table.png")
	writePNG(t, path)

	boom := &ocr.EngineError{Op: "recognize", Err: errors.New("boom")}
	c := New(WithEngine(&fakeEngine{err: boom}))
	_, err := c.ConvertFile(context.Background(), path)
	var engineErr *ocr.EngineError
	if !errors.As(err, &engineErr) {
		t.Errorf("ConvertFile() error = %v, want *ocr.EngineError", err)
	}
}

func TestConvertImageEmpty(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "blank.png")
	writePNG(t, path)

	c := New(WithEngine(&fakeEngine{}))
	pages, err := c.ConvertFile(context.Background(), path)
	if err != nil {
		t.Fatalf("ConvertFile() failed: %v", err)
	}
	if len(pages) != 1 {
		t.Fatalf("got %d pages, want 1", len(pages))
	}
	if !pages[0].Empty {
		t.Error("page should be flagged empty")
	}
	if len(pages[0].CSV) != 0 {
		t.Errorf("csv = %q, want zero bytes", pages[0].CSV)
	}
}

func TestConvertImageDegenerate(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "word.png")
	writePNG(t, path)

	single := []ocr.Word{{Text: "lonely", BBox: model.NewBBox(0, 0, 40, 10), Confidence: 0.9}}
	c := New(WithEngine(&fakeEngine{words: single}))
	pages, err := c.ConvertFile(context.Background(), path)
	if err != nil {
		t.Fatalf("ConvertFile() failed: %v", err)
	}
	if !pages[0].Degenerate {
		t.Error("single-cell grid should be flagged degenerate")
	}
	if got := string(pages[0].CSV); got != "lonely\n" {
		t.Errorf("csv = %q, want %q", got, "lonely\n")
	}
}

func TestConvertPDFViaOCR(t *testing.T) {
	// A file with a .pdf extension but no parseable text layer falls
	// back to rasterization + OCR for every page.
	dir := t.TempDir()
	path := filepath.Join(dir, "report.pdf")
	if err := os.WriteFile(path, []byte("%PDF-1.4 truncated"), 0o644); err != nil {
		t.Fatal(err)
	}

	img := pngBytes(t)
	engine := &fakeEngine{words: tableWords()}
	c := New(
		WithEngine(engine),
		WithRasterizer(&fakeRasterizer{pages: [][]byte{img, img}}),
		WithLayoutConfig(tightLayout()),
	)

	pages, err := c.ConvertFile(context.Background(), path)
	if err != nil {
		t.Fatalf("ConvertFile() failed: %v", err)
	}
	if len(pages) != 2 {
		t.Fatalf("got %d pages, want 2", len(pages))
	}
	if pages[0].Name != "report_page1.csv" || pages[1].Name != "report_page2.csv" {
		t.Errorf("names = %q, %q; want report_page1.csv, report_page2.csv",
			pages[0].Name, pages[1].Name)
	}
	if engine.calls != 2 {
		t.Errorf("engine called %d times, want 2", engine.calls)
	}
	for _, page := range pages {
		if got, want := string(page.CSV), "Name,Age\nAlice,30\n"; got != want {
			t.Errorf("%s csv = %q, want %q", page.Name, got, want)
		}
	}
}

func TestConvertPDFRasterizeFailure(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.pdf")
	if err := os.WriteFile(path, []byte("%PDF-1.4 truncated"), 0o644); err != nil {
		t.Fatal(err)
	}

	c := New(
		WithEngine(&fakeEngine{}),
		WithRasterizer(&fakeRasterizer{err: errors.New("pdftoppm exploded")}),
	)
	if _, err := c.ConvertFile(context.Background(), path); err == nil {
		t.Error("ConvertFile() should fail when rasterization fails")
	}
}
