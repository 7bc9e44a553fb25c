// Package tables recovers table structure from positioned text fragments.
//
// Given the fragments recognized on a page, the package groups them into
// rows by vertical proximity, derives column bands by merging horizontal
// extents, and assembles a rectangular cell grid in visual reading order
// (top to bottom, left to right) regardless of the order the recognizer
// emitted the fragments.
//
// All operations are total: any input, including an empty fragment list,
// produces a valid (possibly degenerate) result. Pages without detectable
// table structure degrade to a single-cell grid rather than failing.
package tables
