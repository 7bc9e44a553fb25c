// Package main provides the gridocr CLI: batch conversion of PDFs and
// scanned images with tabular content into CSV files.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gridocr/gridocr/convert"
	"github.com/gridocr/gridocr/enhance"
	"github.com/gridocr/gridocr/ocr"
	"github.com/gridocr/gridocr/rasterize"
)

var (
	outputDir  string
	configPath string
	workers    int
	language   string
	dpi        int
	keepEmpty  bool
	verbose    bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "gridocr [input-dir]",
		Short: "Convert PDFs and scanned images with tables into CSV files",
		Long: `gridocr scans a directory for PDF, JPG, and PNG files, recovers the
table structure of each page via OCR and layout analysis, and writes one
CSV file per page to the output directory.

PDFs with a native text layer skip OCR entirely. Everything else is
rasterized (via pdftoppm), preprocessed, and recognized with Tesseract,
which requires a build with -tags ocr.`,
		Args: cobra.ExactArgs(1),
		RunE: run,
	}

	rootCmd.Flags().StringVarP(&outputDir, "output", "o", "csv_output", "Output directory for CSV files")
	rootCmd.Flags().StringVar(&configPath, "config", "", "YAML config file")
	rootCmd.Flags().IntVar(&workers, "workers", 0, "Concurrent file conversions (0 = number of CPUs)")
	rootCmd.Flags().StringVar(&language, "lang", "", "OCR language, \"+\"-separated for multiple (default eng)")
	rootCmd.Flags().IntVar(&dpi, "dpi", 0, "PDF rasterization resolution (default 300)")
	rootCmd.Flags().BoolVar(&keepEmpty, "keep-empty", false, "Write CSVs for pages with no recognized text")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Debug logging")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	inputDir := args[0]
	if info, err := os.Stat(inputDir); err != nil || !info.IsDir() {
		return fmt.Errorf("input directory not found: %s", inputDir)
	}

	config := convert.DefaultConfig()
	if configPath != "" {
		var err error
		config, err = convert.LoadConfig(configPath)
		if err != nil {
			return err
		}
	}
	// Flags override file values.
	if language != "" {
		config.Language = language
	}
	if dpi > 0 {
		config.DPI = dpi
	}
	if workers > 0 {
		config.Workers = workers
	}
	if keepEmpty {
		config.KeepEmpty = true
	}

	log, err := newLogger(verbose)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	var engine ocr.Engine
	tess, err := ocr.New(
		ocr.WithLanguage(config.Language),
		ocr.WithPageSegMode(config.PageSegMode),
		ocr.WithDPI(config.DPI),
	)
	if err != nil {
		// PDFs with a text layer still convert without OCR.
		log.Warn("OCR unavailable, image inputs will fail", zap.Error(err))
	} else {
		defer tess.Close()
		engine = tess
	}

	conv := buildConverter(config, engine, log)
	runner := &convert.Runner{
		Converter: conv,
		OutputDir: outputDir,
		Workers:   config.Workers,
		KeepEmpty: config.KeepEmpty,
		Log:       log,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	summary, err := runner.Run(ctx, inputDir)
	if err != nil {
		return err
	}
	if summary.Failed > 0 {
		return fmt.Errorf("%d of %d files failed", summary.Failed, summary.Files)
	}
	return nil
}

func buildConverter(config convert.Config, engine ocr.Engine, log *zap.Logger) *convert.Converter {
	opts := []convert.Option{
		convert.WithRasterizer(rasterize.NewPoppler(config.DPI)),
		convert.WithEnhancer(enhance.New()),
		convert.WithExtractOptions(config.ExtractOptions()),
		convert.WithLayoutConfig(config.LayoutConfig()),
		convert.WithLogger(log),
	}
	if engine != nil {
		opts = append(opts, convert.WithEngine(engine))
	}
	return convert.New(opts...)
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	config := zap.NewProductionConfig()
	config.Encoding = "console"
	config.EncoderConfig = zap.NewDevelopmentEncoderConfig()
	return config.Build()
}
