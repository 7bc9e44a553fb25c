package tables

import (
	"sort"

	"github.com/gridocr/gridocr/model"
)

// RowCluster groups the fragments believed to lie on one table row. It
// holds indices into the fragment slice passed to ClusterRows, ordered by
// discovery, plus the running mean of the fragments' vertical centers.
type RowCluster struct {
	// Fragments are indices into the input fragment slice.
	Fragments []int

	// Center is the mean vertical center of the member fragments.
	Center float64
}

// ClusterRows partitions fragments into row clusters by vertical proximity.
//
// Fragments are visited in order of increasing vertical center. A fragment
// joins the current cluster when its center lies within the row tolerance
// of the cluster's running mean center; otherwise it opens a new cluster.
// The tolerance is a fraction of the median fragment height (see Config).
// A fragment equidistant between the current and a would-be new cluster
// joins the current (earlier) one, since the comparison is inclusive.
//
// The returned clusters are ordered top to bottom and every fragment
// belongs to exactly one cluster. An empty input yields nil.
func ClusterRows(fragments []model.TextFragment, config Config) []RowCluster {
	if len(fragments) == 0 {
		return nil
	}

	tolerance := config.rowTolerance(medianHeight(fragments))

	// Sort indices by vertical center; ties keep input order for determinism.
	order := make([]int, len(fragments))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return fragments[order[a]].BBox.CenterY() < fragments[order[b]].BBox.CenterY()
	})

	var clusters []RowCluster
	current := RowCluster{
		Fragments: []int{order[0]},
		Center:    fragments[order[0]].BBox.CenterY(),
	}

	for _, idx := range order[1:] {
		center := fragments[idx].BBox.CenterY()

		if center-current.Center <= tolerance {
			// Same row: fold into the running mean.
			n := float64(len(current.Fragments))
			current.Center = (current.Center*n + center) / (n + 1)
			current.Fragments = append(current.Fragments, idx)
		} else {
			clusters = append(clusters, current)
			current = RowCluster{
				Fragments: []int{idx},
				Center:    center,
			}
		}
	}

	return append(clusters, current)
}

// medianHeight returns the median bounding-box height across fragments.
func medianHeight(fragments []model.TextFragment) float64 {
	heights := make([]float64, len(fragments))
	for i, f := range fragments {
		heights[i] = f.BBox.Height
	}
	return median(heights)
}

// medianWidth returns the median bounding-box width across fragments.
func medianWidth(fragments []model.TextFragment) float64 {
	widths := make([]float64, len(fragments))
	for i, f := range fragments {
		widths[i] = f.BBox.Width
	}
	return median(widths)
}

// median returns the middle value of the slice (upper middle for even
// lengths), or 0 for an empty slice. The input is not modified.
func median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	return sorted[len(sorted)/2]
}
