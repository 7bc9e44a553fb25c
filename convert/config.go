package convert

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gridocr/gridocr/extract"
	"github.com/gridocr/gridocr/tables"
)

// Config holds the tunable settings for a conversion run. Zero values
// fall back to the defaults from DefaultConfig, so a partial YAML file
// only overrides the keys it names.
type Config struct {
	// Language is the OCR recognition language ("+"-separated for
	// multiple, e.g. "eng+fra").
	Language string `yaml:"language"`
	// PageSegMode is the Tesseract page segmentation mode.
	PageSegMode int `yaml:"page_seg_mode"`
	// MinConfidence drops OCR words below this confidence (0..1).
	MinConfidence float64 `yaml:"min_confidence"`

	// RowToleranceFactor scales the median fragment height into the
	// row clustering tolerance.
	RowToleranceFactor float64 `yaml:"row_tolerance_factor"`
	// ColToleranceFactor scales the median fragment width into the
	// column band merge tolerance.
	ColToleranceFactor float64 `yaml:"col_tolerance_factor"`
	// MinTolerance is the pixel floor for both tolerances.
	MinTolerance float64 `yaml:"min_tolerance"`

	// DPI is the PDF rasterization resolution.
	DPI int `yaml:"dpi"`
	// Workers is the batch worker pool size. Zero means NumCPU.
	Workers int `yaml:"workers"`
	// KeepEmpty writes a CSV even for pages that produced no fragments.
	KeepEmpty bool `yaml:"keep_empty"`
}

// DefaultConfig returns the default conversion settings.
func DefaultConfig() Config {
	ex := extract.DefaultOptions()
	la := tables.DefaultConfig()
	return Config{
		Language:           "eng",
		PageSegMode:        6,
		MinConfidence:      ex.MinConfidence,
		RowToleranceFactor: la.RowToleranceFactor,
		ColToleranceFactor: la.ColToleranceFactor,
		MinTolerance:       la.MinTolerance,
		DPI:                300,
	}
}

// LoadConfig reads a YAML config file, overlaying its values on the
// defaults. Keys absent from the file keep their default values.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, &config); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return config, nil
}

// ExtractOptions maps the config onto fragment filtering options.
func (c Config) ExtractOptions() extract.Options {
	opts := extract.DefaultOptions()
	if c.MinConfidence > 0 {
		opts.MinConfidence = c.MinConfidence
	}
	return opts
}

// LayoutConfig maps the config onto table recovery settings.
func (c Config) LayoutConfig() tables.Config {
	layout := tables.DefaultConfig()
	if c.RowToleranceFactor > 0 {
		layout.RowToleranceFactor = c.RowToleranceFactor
	}
	if c.ColToleranceFactor > 0 {
		layout.ColToleranceFactor = c.ColToleranceFactor
	}
	if c.MinTolerance > 0 {
		layout.MinTolerance = c.MinTolerance
	}
	return layout
}
