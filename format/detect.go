// Package format provides input file format detection for the gridocr
// pipeline.
package format

import (
	"bytes"
	"path/filepath"
	"strings"
)

// Format represents a supported input format.
type Format int

const (
	// Unknown indicates an unrecognized format.
	Unknown Format = iota
	// PDF indicates a PDF document.
	PDF
	// JPEG indicates a JPEG image.
	JPEG
	// PNG indicates a PNG image.
	PNG
)

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case PDF:
		return "PDF"
	case JPEG:
		return "JPEG"
	case PNG:
		return "PNG"
	default:
		return "Unknown"
	}
}

// Extension returns the typical file extension for the format.
func (f Format) Extension() string {
	switch f {
	case PDF:
		return ".pdf"
	case JPEG:
		return ".jpg"
	case PNG:
		return ".png"
	default:
		return ""
	}
}

// IsImage reports whether the format is a single-page raster image.
func (f Format) IsImage() bool {
	return f == JPEG || f == PNG
}

// Detect determines file format from the filename extension.
func Detect(filename string) Format {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".pdf":
		return PDF
	case ".jpg", ".jpeg":
		return JPEG
	case ".png":
		return PNG
	default:
		return Unknown
	}
}

var (
	pdfMagic  = []byte("%PDF")
	jpegMagic = []byte{0xFF, 0xD8, 0xFF}
	pngMagic  = []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A}
)

// DetectFromMagic checks file magic bytes to determine format. This is
// more reliable than extension-based detection for files that have been
// renamed. Returns Unknown if the magic bytes match no supported format.
func DetectFromMagic(data []byte) Format {
	switch {
	case bytes.HasPrefix(data, pdfMagic):
		return PDF
	case bytes.HasPrefix(data, jpegMagic):
		return JPEG
	case bytes.HasPrefix(data, pngMagic):
		return PNG
	default:
		return Unknown
	}
}
