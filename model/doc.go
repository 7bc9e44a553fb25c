// Package model defines the shared data types used throughout gridocr:
// geometric primitives in raster pixel coordinates, recognized text
// fragments, and the rectangular cell grid produced by table recovery.
//
// All types are plain values scoped to a single page conversion. Nothing
// in this package performs I/O or holds state across pages.
package model
