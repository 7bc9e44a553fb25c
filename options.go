package gridocr

import (
	"go.uber.org/zap"

	"github.com/gridocr/gridocr/convert"
	"github.com/gridocr/gridocr/enhance"
	"github.com/gridocr/gridocr/extract"
	"github.com/gridocr/gridocr/ocr"
	"github.com/gridocr/gridocr/rasterize"
	"github.com/gridocr/gridocr/tables"
)

// jobOptions holds the accumulated fluent configuration for a Job.
type jobOptions struct {
	engine     ocr.Engine
	rasterizer rasterize.Rasterizer
	enhancer   *enhance.Enhancer
	extraction extract.Options
	layout     tables.Config
	log        *zap.Logger
}

func defaultJobOptions() jobOptions {
	return jobOptions{
		extraction: extract.DefaultOptions(),
		layout:     tables.DefaultConfig(),
	}
}

// converter materializes the options into a convert.Converter.
func (o jobOptions) converter() *convert.Converter {
	opts := []convert.Option{
		convert.WithExtractOptions(o.extraction),
		convert.WithLayoutConfig(o.layout),
	}
	if o.engine != nil {
		opts = append(opts, convert.WithEngine(o.engine))
	}
	if o.rasterizer != nil {
		opts = append(opts, convert.WithRasterizer(o.rasterizer))
	}
	if o.enhancer != nil {
		opts = append(opts, convert.WithEnhancer(o.enhancer))
	}
	if o.log != nil {
		opts = append(opts, convert.WithLogger(o.log))
	}
	return convert.New(opts...)
}
