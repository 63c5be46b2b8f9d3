package engine

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/piiscan/piiscan/internal/aggregate"
	"github.com/piiscan/piiscan/internal/rules"
	"github.com/piiscan/piiscan/internal/types"
)

// DefaultMaxBytes is the per-file size ceiling applied when none is
// configured.
const DefaultMaxBytes = 10 << 20 // 10 MiB

// Config controls one scan invocation.
type Config struct {
	// Root is the file or directory to scan.
	Root string
	// Rules is the compiled pattern set; it is shared read-only across
	// all workers.
	Rules *rules.Set
	// ExcludeGlobs skip matching paths during traversal.
	ExcludeGlobs []string
	// MaxBytes is the per-file size ceiling; larger files are recorded
	// as file_too_large. 0 means DefaultMaxBytes.
	MaxBytes int64
	// Workers bounds the file-processing pool. 0 means GOMAXPROCS.
	Workers int
	// FallbackEncoding decodes non-UTF-8 content ("latin-1" by default).
	FallbackEncoding string
	// Progress, if set, is called once per processed file.
	Progress func()
}

// Scan walks cfg.Root, applies the rule set to every eligible file, and
// returns the aggregated report. Per-file failures are recorded in the
// report, never returned here; the error return covers only fatal
// conditions (no rules, unreadable root). Cancelling ctx stops
// enumeration and yields a valid partial report with status cancelled.
func Scan(ctx context.Context, cfg Config) (*types.Report, error) {
	if cfg.Rules == nil || cfg.Rules.Len() == 0 {
		return nil, fmt.Errorf("no rules configured")
	}
	if cfg.MaxBytes == 0 {
		cfg.MaxBytes = DefaultMaxBytes
	}
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.GOMAXPROCS(0)
	}

	agg := aggregate.New()
	w := &walker{cfg: cfg}

	paths := make(chan string)
	results := make(chan types.FileResult)

	var walkErr error
	go func() {
		defer close(paths)
		walkErr = w.walk(ctx, func(p string) bool {
			select {
			case paths <- p:
				return true
			case <-ctx.Done():
				return false
			}
		})
	}()

	var wg sync.WaitGroup
	for i := 0; i < cfg.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for p := range paths {
				if ctx.Err() != nil {
					continue
				}
				results <- processFile(p, cfg)
			}
		}()
	}
	go func() {
		wg.Wait()
		close(results)
	}()

	for fr := range results {
		_ = agg.Fold(fr)
		if cfg.Progress != nil {
			cfg.Progress()
		}
	}
	if walkErr != nil {
		return nil, walkErr
	}
	for _, p := range w.skippedCycles {
		_ = agg.SkipCycle(p)
	}

	status := types.StatusCompleted
	if ctx.Err() != nil {
		status = types.StatusCancelled
	}
	return agg.Finalize(status)
}
