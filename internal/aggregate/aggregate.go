// Package aggregate folds per-file scan results into a single report.
package aggregate

import (
	"errors"
	"sync"
	"time"

	"github.com/piiscan/piiscan/internal/types"
)

// ErrClosed is returned when an aggregator is used after Finalize.
var ErrClosed = errors.New("aggregator already finalized")

// Aggregator is the single-owner accumulator for one scan invocation.
// All mutation funnels through its lock, which is the only shared
// mutation boundary in the engine. Fold order defines the report's
// file_results order.
type Aggregator struct {
	mu      sync.Mutex
	closed  bool
	started time.Time
	report  types.Report
}

// New returns an open aggregator with an empty report.
func New() *Aggregator {
	return &Aggregator{
		started: time.Now(),
		report: types.Report{
			RiskCounts: make(map[types.RiskLevel]int),
			RuleCounts: make(map[string]int),
			StartedAt:  time.Now(),
		},
	}
}

// Fold merges one FileResult into the running report. Error-only results
// count toward total_files like any other.
func (a *Aggregator) Fold(fr types.FileResult) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return ErrClosed
	}
	a.report.Files = append(a.report.Files, fr)
	a.report.TotalFiles++
	if fr.Err != nil {
		a.report.ErroredFiles++
	}
	for _, d := range fr.Detections {
		a.report.TotalDetections++
		a.report.RiskCounts[d.Risk]++
		a.report.RuleCounts[d.Rule]++
	}
	return nil
}

// SkipCycle records a symlink-cycle diagnostic. Cycles are data, not
// errors: traversal already continued past them.
func (a *Aggregator) SkipCycle(path string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return ErrClosed
	}
	a.report.SkippedCycles = append(a.report.SkippedCycles, path)
	return nil
}

// Finalize closes the aggregator and returns the report snapshot. Any
// fold or second finalize afterwards fails with ErrClosed. A cancelled
// scan finalizes normally: partial results are valid results.
func (a *Aggregator) Finalize(status types.ScanStatus) (*types.Report, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return nil, ErrClosed
	}
	a.closed = true
	a.report.Status = status
	a.report.Duration = time.Since(a.started)
	snapshot := a.report
	return &snapshot, nil
}
