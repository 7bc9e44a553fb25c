package extract

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
	"golang.org/x/text/unicode/norm"

	"github.com/gridocr/gridocr/model"
)

// Text-layer glyphs closer than this fraction of the font size are joined
// into one word; wider gaps start a new fragment.
const wordGapFactor = 0.3

// FromPDFFile extracts positioned text fragments from a PDF's text layer,
// one fragment list per page. Pages without a text layer yield a nil
// entry; callers fall back to rasterization + OCR for those pages.
//
// Text-layer fragments carry confidence 1.0. Coordinates are flipped from
// the PDF bottom-up convention to the raster top-down convention used by
// the rest of the pipeline.
func FromPDFFile(path string) ([][]model.TextFragment, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf %s: %w", path, err)
	}
	defer f.Close()

	numPages := r.NumPage()
	pages := make([][]model.TextFragment, 0, numPages)
	for i := 1; i <= numPages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			pages = append(pages, nil)
			continue
		}
		pages = append(pages, fragmentsFromPage(page))
	}

	return pages, nil
}

// fragmentsFromPage assembles a page's raw glyph runs into word fragments.
func fragmentsFromPage(page pdf.Page) []model.TextFragment {
	content := page.Content()
	if len(content.Text) == 0 {
		return nil
	}

	height := pageHeight(page, content.Text)

	// Group glyph runs by baseline, then assemble words left to right.
	lines := groupByBaseline(content.Text)

	var fragments []model.TextFragment
	for _, line := range lines {
		fragments = append(fragments, mergeLine(line, height)...)
	}

	return fragments
}

// mergeLine joins a baseline's glyph runs into word fragments, splitting
// where the horizontal gap exceeds the word-gap threshold.
func mergeLine(line []pdf.Text, height float64) []model.TextFragment {
	sort.SliceStable(line, func(a, b int) bool {
		return line[a].X < line[b].X
	})

	var (
		fragments   []model.TextFragment
		sb          strings.Builder
		left, right float64
		baseline    float64
		fontSize    float64
	)
	flush := func() {
		text := strings.TrimSpace(sb.String())
		if text != "" {
			fragments = append(fragments, model.TextFragment{
				Text: norm.NFC.String(text),
				BBox: model.NewBBoxFromEdges(
					left,
					height-(baseline+fontSize),
					right,
					height-baseline,
				),
				Confidence: 1.0,
			})
		}
		sb.Reset()
	}

	for _, g := range line {
		if sb.Len() > 0 && g.X-right > g.FontSize*wordGapFactor {
			flush()
		}
		if sb.Len() == 0 {
			left = g.X
			baseline = g.Y
			fontSize = g.FontSize
		}
		if g.FontSize > fontSize {
			fontSize = g.FontSize
		}
		sb.WriteString(g.S)
		right = g.X + g.W
	}
	flush()

	return fragments
}

// groupByBaseline buckets glyph runs sharing a baseline Y, within a small
// fraction of the font size to absorb sub/superscript jitter.
func groupByBaseline(texts []pdf.Text) [][]pdf.Text {
	sorted := make([]pdf.Text, len(texts))
	copy(sorted, texts)
	sort.SliceStable(sorted, func(a, b int) bool {
		return sorted[a].Y > sorted[b].Y // PDF coords: top of page first
	})

	var lines [][]pdf.Text
	for _, g := range sorted {
		if len(lines) > 0 {
			last := lines[len(lines)-1]
			tolerance := last[0].FontSize * 0.3
			if tolerance < 1 {
				tolerance = 1
			}
			if last[0].Y-g.Y <= tolerance {
				lines[len(lines)-1] = append(last, g)
				continue
			}
		}
		lines = append(lines, []pdf.Text{g})
	}

	return lines
}

// pageHeight reads the MediaBox height, falling back to the content's
// vertical extent when the box is missing or malformed.
func pageHeight(page pdf.Page, texts []pdf.Text) float64 {
	box := page.V.Key("MediaBox")
	if box.Kind() == pdf.Array && box.Len() == 4 {
		height := box.Index(3).Float64() - box.Index(1).Float64()
		if height > 0 {
			return height
		}
	}

	max := 0.0
	for _, g := range texts {
		if top := g.Y + g.FontSize; top > max {
			max = top
		}
	}
	return max
}
