package tables

// Config holds tuning parameters for table structure recovery.
//
// Both tolerances are derived from the page's own content: a fraction of
// the median fragment dimension, floored at MinTolerance so that very
// small text does not collapse the tolerance to zero.
type Config struct {
	// RowToleranceFactor scales the median fragment height to obtain the
	// maximum vertical-center distance for two fragments to share a row.
	RowToleranceFactor float64

	// ColToleranceFactor scales the median fragment width to obtain the
	// maximum horizontal gap across which two fragment extents merge into
	// the same column band.
	ColToleranceFactor float64

	// MinTolerance is the floor, in pixels, for both derived tolerances.
	MinTolerance float64
}

// DefaultConfig returns the default recovery configuration.
func DefaultConfig() Config {
	return Config{
		RowToleranceFactor: 0.6,
		ColToleranceFactor: 0.5,
		MinTolerance:       2.0,
	}
}

// rowTolerance derives the vertical clustering tolerance from the median
// fragment height.
func (c Config) rowTolerance(medianHeight float64) float64 {
	tol := medianHeight * c.RowToleranceFactor
	if tol < c.MinTolerance {
		tol = c.MinTolerance
	}
	return tol
}

// colTolerance derives the horizontal band-merge tolerance from the median
// fragment width.
func (c Config) colTolerance(medianWidth float64) float64 {
	tol := medianWidth * c.ColToleranceFactor
	if tol < c.MinTolerance {
		tol = c.MinTolerance
	}
	return tol
}
