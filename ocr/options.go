package ocr

// tesseractConfig holds engine construction settings. The page
// segmentation mode default (6, "single uniform block") matches what
// works best for scanned tables.
type tesseractConfig struct {
	language    string
	pageSegMode int
	dpi         int
}

func defaultTesseractConfig() tesseractConfig {
	return tesseractConfig{
		language:    "eng",
		pageSegMode: 6,
		dpi:         0,
	}
}

// TesseractOption configures the Tesseract engine at construction.
type TesseractOption func(*tesseractConfig)

// WithLanguage sets the recognition language(s). Multiple languages can be
// specified as a "+" separated string (e.g. "eng+fra"). Default is "eng".
func WithLanguage(lang string) TesseractOption {
	return func(c *tesseractConfig) { c.language = lang }
}

// WithPageSegMode sets the Tesseract page segmentation mode. Default is 6
// (assume a single uniform block of text).
func WithPageSegMode(mode int) TesseractOption {
	return func(c *tesseractConfig) { c.pageSegMode = mode }
}

// WithDPI declares the image resolution for engines that use it for
// layout heuristics. Zero means unknown.
func WithDPI(dpi int) TesseractOption {
	return func(c *tesseractConfig) { c.dpi = dpi }
}
