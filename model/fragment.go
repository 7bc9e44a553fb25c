package model

// TextFragment is a single recognized text unit on a page: the text, its
// bounding box in pixel coordinates, and the recognizer's confidence.
//
// Confidence is in [0,1]. A confidence of exactly 0 means "unknown" (the
// source did not report one), not "certainly wrong"; filtering treats the
// two differently.
type TextFragment struct {
	Text       string
	BBox       BBox
	Confidence float64
}
