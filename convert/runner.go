package convert

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/panjf2000/ants/v2"
	"go.uber.org/zap"
)

// Runner converts every supported file in a directory, writing the
// resulting CSVs to an output directory. Files run concurrently on a
// worker pool; a failing file is reported and the batch continues.
type Runner struct {
	// Converter performs the per-file work. Required.
	Converter *Converter
	// OutputDir receives the CSV files. Created if missing.
	OutputDir string
	// Workers is the pool size. Zero means runtime.NumCPU().
	Workers int
	// KeepEmpty writes a CSV even for pages with no recognized text.
	// By default such pages produce no file.
	KeepEmpty bool
	// Log is the structured logger. Nil means no logging.
	Log *zap.Logger
}

// Summary reports the outcome of a batch run.
type Summary struct {
	// Files is the number of directory entries considered.
	Files int
	// Written is the number of CSV files produced.
	Written int
	// Skipped counts unsupported inputs and empty pages.
	Skipped int
	// Failed counts files that errored during conversion.
	Failed int
}

// Run converts every regular file in inputDir. It returns an error only
// for batch-level failures (unreadable input directory, unwritable
// output directory); per-file failures are logged and counted in the
// summary.
func (r *Runner) Run(ctx context.Context, inputDir string) (Summary, error) {
	log := r.Log
	if log == nil {
		log = zap.NewNop()
	}

	entries, err := os.ReadDir(inputDir)
	if err != nil {
		return Summary{}, fmt.Errorf("read input dir: %w", err)
	}
	if err := os.MkdirAll(r.OutputDir, 0o755); err != nil {
		return Summary{}, fmt.Errorf("create output dir: %w", err)
	}

	workers := r.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	pool, err := ants.NewPool(workers)
	if err != nil {
		return Summary{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var (
		mu      sync.Mutex
		summary Summary
		wg      sync.WaitGroup
	)

	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}

		path := filepath.Join(inputDir, entry.Name())
		mu.Lock()
		summary.Files++
		mu.Unlock()

		wg.Add(1)
		submitErr := pool.Submit(func() {
			defer wg.Done()
			written, skipped, err := r.convertOne(ctx, log, path)
			mu.Lock()
			defer mu.Unlock()
			summary.Written += written
			summary.Skipped += skipped
			if err != nil {
				summary.Failed++
			}
		})
		if submitErr != nil {
			wg.Done()
			mu.Lock()
			summary.Failed++
			mu.Unlock()
			log.Error("submit to worker pool", zap.String("file", path), zap.Error(submitErr))
		}
	}

	wg.Wait()

	log.Info("batch complete",
		zap.Int("files", summary.Files),
		zap.Int("written", summary.Written),
		zap.Int("skipped", summary.Skipped),
		zap.Int("failed", summary.Failed),
	)
	return summary, nil
}

// convertOne converts a single file and writes its pages, returning the
// number of CSVs written and pages skipped.
func (r *Runner) convertOne(ctx context.Context, log *zap.Logger, path string) (written, skipped int, err error) {
	pages, err := r.Converter.ConvertFile(ctx, path)
	if errors.Is(err, ErrUnsupportedInput) {
		log.Warn("skipping unsupported file", zap.String("file", path))
		return 0, 1, nil
	}
	if err != nil {
		log.Error("conversion failed", zap.String("file", path), zap.Error(err))
		return 0, 0, err
	}

	for _, page := range pages {
		if page.Empty && !r.KeepEmpty {
			log.Warn("no text recognized, skipping page", zap.String("page", page.Name))
			skipped++
			continue
		}
		out := filepath.Join(r.OutputDir, page.Name)
		if werr := os.WriteFile(out, page.CSV, 0o644); werr != nil {
			log.Error("write output", zap.String("file", out), zap.Error(werr))
			return written, skipped, werr
		}
		log.Info("wrote", zap.String("file", out))
		written++
	}
	return written, skipped, nil
}
