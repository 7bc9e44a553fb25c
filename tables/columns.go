package tables

import (
	"sort"

	"github.com/gridocr/gridocr/model"
)

// Band is a horizontal column band: the merged horizontal extent of the
// fragments assigned to one table column.
type Band struct {
	Left  float64
	Right float64
}

// Width returns the width of the band.
func (b Band) Width() float64 {
	return b.Right - b.Left
}

// contains reports whether x falls within the band's span (inclusive).
func (b Band) contains(x float64) bool {
	return x >= b.Left && x <= b.Right
}

// ColumnBands derives the column structure of a page by merging the
// horizontal extents of all fragments. Extents are sorted by left edge and
// merged whenever they overlap or the gap between them is below the column
// tolerance (a fraction of the median fragment width, see Config).
//
// The returned bands are disjoint and sorted left to right. An empty input
// yields nil; any non-empty input yields at least one band, so a page with
// no detectable column structure degrades to a single band rather than
// failing.
func ColumnBands(fragments []model.TextFragment, config Config) []Band {
	if len(fragments) == 0 {
		return nil
	}

	tolerance := config.colTolerance(medianWidth(fragments))

	extents := make([]Band, len(fragments))
	for i, f := range fragments {
		extents[i] = Band{Left: f.BBox.Left(), Right: f.BBox.Right()}
	}
	sort.Slice(extents, func(a, b int) bool {
		if extents[a].Left != extents[b].Left {
			return extents[a].Left < extents[b].Left
		}
		return extents[a].Right < extents[b].Right
	})

	bands := []Band{extents[0]}
	for _, ext := range extents[1:] {
		last := &bands[len(bands)-1]
		if ext.Left-last.Right < tolerance {
			// Overlapping or near-adjacent: extend the current band.
			if ext.Right > last.Right {
				last.Right = ext.Right
			}
		} else {
			bands = append(bands, ext)
		}
	}

	return bands
}

// Boundaries converts bands into column cut points: len(bands)+1 strictly
// increasing x coordinates partitioning the page horizontally. The outer
// boundaries are the first band's left edge and the last band's right edge;
// interior boundaries bisect the gaps between adjacent bands.
func Boundaries(bands []Band) []float64 {
	if len(bands) == 0 {
		return nil
	}
	cuts := make([]float64, 0, len(bands)+1)
	cuts = append(cuts, bands[0].Left)
	for i := 1; i < len(bands); i++ {
		cuts = append(cuts, (bands[i-1].Right+bands[i].Left)/2)
	}
	return append(cuts, bands[len(bands)-1].Right)
}

// bandIndex returns the index of the band containing x, or, for x in a gap
// or outside all bands, the nearest band by center-to-edge distance. Ties
// between two bands resolve to the lower index (the left band). Returns -1
// only for an empty band list.
func bandIndex(bands []Band, x float64) int {
	best := -1
	bestDist := 0.0

	for i, b := range bands {
		if b.contains(x) {
			return i
		}
		var dist float64
		if x < b.Left {
			dist = b.Left - x
		} else {
			dist = x - b.Right
		}
		if best == -1 || dist < bestDist {
			best = i
			bestDist = dist
		}
	}

	return best
}
