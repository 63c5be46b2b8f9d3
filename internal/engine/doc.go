// Package engine is the detection core: it enumerates candidate files
// under a root, scans each one against a risk-tiered rule set with a
// bounded worker pool, and folds every per-file result into a single
// aggregated report. The rule set is read-only during a scan and the
// aggregator is the only shared-mutation point.
package engine
