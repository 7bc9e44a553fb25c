//go:build !ocr

// Package ocr provides the OCR engine boundary for gridocr.
//
// This is the stub implementation used when the "ocr" build tag is not
// set. New returns ErrOCRNotEnabled.
//
// To enable OCR, rebuild with the "ocr" build tag:
//
//	go build -tags ocr
//
// This requires Tesseract to be installed. On macOS:
//
//	brew install tesseract
//
// On Ubuntu/Debian:
//
//	apt-get install tesseract-ocr
package ocr

import "context"

// Tesseract is a stub engine that returns errors for all operations.
type Tesseract struct{}

// New returns an error indicating OCR support is not enabled.
// To enable OCR, rebuild with: go build -tags ocr
func New(opts ...TesseractOption) (*Tesseract, error) {
	return nil, ErrOCRNotEnabled
}

// Close is a no-op for the stub engine. It is safe to call on a nil engine.
func (t *Tesseract) Close() error {
	return nil
}

// Recognize returns an error indicating OCR support is not enabled.
func (t *Tesseract) Recognize(ctx context.Context, imageData []byte) ([]Word, error) {
	return nil, ErrOCRNotEnabled
}
