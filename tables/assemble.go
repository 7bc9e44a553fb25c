package tables

import (
	"sort"
	"strings"

	"github.com/gridocr/gridocr/model"
)

// Assemble places fragments into a rectangular grid using the given row
// clusters and column bands. A fragment lands in the cell addressed by its
// row cluster and by the band containing its horizontal center; centers in
// a gap between bands go to the nearest band, ties to the left one.
//
// When a cell receives multiple fragments they are concatenated in
// left-to-right reading order, separated by single spaces. Cells with no
// fragment hold the empty string, so the grid is always rectangular.
// Row order is top to bottom and column order left to right, independent
// of the order fragments were recognized.
func Assemble(fragments []model.TextFragment, rows []RowCluster, bands []Band) model.Grid {
	if len(fragments) == 0 || len(rows) == 0 || len(bands) == 0 {
		return model.Grid{}
	}

	// Bucket fragment indices per cell.
	buckets := make(map[[2]int][]int)
	for r, cluster := range rows {
		for _, idx := range cluster.Fragments {
			c := bandIndex(bands, fragments[idx].BBox.CenterX())
			key := [2]int{r, c}
			buckets[key] = append(buckets[key], idx)
		}
	}

	grid := model.NewGrid(len(rows), len(bands))
	for key, members := range buckets {
		// Left-to-right reading order; equal left edges keep input order.
		sort.SliceStable(members, func(a, b int) bool {
			return fragments[members[a]].BBox.Left() < fragments[members[b]].BBox.Left()
		})

		var sb strings.Builder
		for i, idx := range members {
			if i > 0 {
				sb.WriteString(" ")
			}
			sb.WriteString(fragments[idx].Text)
		}
		grid.SetCell(key[0], key[1], sb.String())
	}

	return grid
}

// Recover runs the full structure-recovery pipeline on a page's fragments:
// row clustering, column band derivation, and grid assembly. It never
// fails; an empty fragment list yields an empty grid and an unclusterable
// page yields a 1x1 grid.
func Recover(fragments []model.TextFragment, config Config) model.Grid {
	rows := ClusterRows(fragments, config)
	bands := ColumnBands(fragments, config)
	return Assemble(fragments, rows, bands)
}
