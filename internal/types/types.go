package types

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	xxhash "github.com/cespare/xxhash/v2"
)

// RiskLevel classifies how sensitive a matched pattern is.
type RiskLevel string

const (
	RiskHigh   RiskLevel = "HIGH"
	RiskMedium RiskLevel = "MEDIUM"
	RiskLow    RiskLevel = "LOW"
)

// Levels returns all risk levels ordered highest first. The order is used
// for rule iteration and for stable summary rendering.
func Levels() []RiskLevel {
	return []RiskLevel{RiskHigh, RiskMedium, RiskLow}
}

// Rank maps a level to an integer for ordering; higher means riskier.
func (r RiskLevel) Rank() int {
	switch r {
	case RiskHigh:
		return 3
	case RiskMedium:
		return 2
	case RiskLow:
		return 1
	}
	return 0
}

// ParseRiskLevel converts a case-insensitive level name to a RiskLevel.
func ParseRiskLevel(s string) (RiskLevel, error) {
	switch RiskLevel(strings.ToUpper(strings.TrimSpace(s))) {
	case RiskHigh:
		return RiskHigh, nil
	case RiskMedium:
		return RiskMedium, nil
	case RiskLow:
		return RiskLow, nil
	}
	return "", fmt.Errorf("unknown risk level %q", s)
}

// Detection is one concrete match of a rule against file content. The
// matched text is retained verbatim; callers needing redaction must
// post-process.
type Detection struct {
	Path        string    `json:"file_path"`
	Rule        string    `json:"rule_name"`
	Risk        RiskLevel `json:"risk"`
	Match       string    `json:"matched_text"`
	StartOffset int       `json:"start_offset"`
	EndOffset   int       `json:"end_offset"`
	Line        int       `json:"line_number"`
	Context     string    `json:"context,omitempty"`
}

// Fingerprint returns a short stable hash identifying this detection
// across serialization formats.
func (d Detection) Fingerprint() string {
	h := xxhash.New()
	h.WriteString(d.Path)
	h.WriteString("|")
	h.WriteString(d.Rule)
	h.WriteString("|")
	h.WriteString(strconv.Itoa(d.StartOffset))
	h.WriteString("|")
	h.WriteString(strconv.Itoa(d.EndOffset))
	h.WriteString("|")
	h.WriteString(d.Match)
	return fmt.Sprintf("%016x", h.Sum64())
}

// FileErrorKind names the per-file, non-fatal failure classes.
type FileErrorKind string

const (
	ErrFileTooLarge       FileErrorKind = "file_too_large"
	ErrUndecodableContent FileErrorKind = "undecodable_content"
	ErrFileVanished       FileErrorKind = "file_vanished"
	ErrPermissionDenied   FileErrorKind = "permission_denied"
)

// FileError records why a file could not be scanned. It is data, not a
// control-flow error: the scan continues and the error surfaces in the
// report.
type FileError struct {
	Kind   FileErrorKind `json:"kind"`
	Detail string        `json:"detail,omitempty"`
}

func (e *FileError) Error() string {
	if e.Detail == "" {
		return string(e.Kind)
	}
	return string(e.Kind) + ": " + e.Detail
}

// FileResult is the outcome for one attempted file, including files that
// failed to read (Err set, Detections empty).
type FileResult struct {
	Path       string      `json:"file_path"`
	Detections []Detection `json:"detections"`
	ByteSize   int64       `json:"byte_size"`
	Err        *FileError  `json:"error,omitempty"`
}

// ScanStatus reports whether a run finished or was cut short.
type ScanStatus string

const (
	StatusCompleted ScanStatus = "completed"
	StatusCancelled ScanStatus = "cancelled"
)

// Report is the aggregated result of one scan invocation. It is complete
// enough to render as nested JSON or flat CSV without re-deriving
// anything from the filesystem.
type Report struct {
	Status          ScanStatus        `json:"status"`
	TotalFiles      int               `json:"total_files"`
	TotalDetections int               `json:"total_detections"`
	ErroredFiles    int               `json:"errored_files"`
	RiskCounts      map[RiskLevel]int `json:"risk_level_counts"`
	RuleCounts      map[string]int    `json:"pattern_counts"`
	SkippedCycles   []string          `json:"skipped_cycles,omitempty"`
	Files           []FileResult      `json:"file_results"`
	StartedAt       time.Time         `json:"started_at"`
	Duration        time.Duration     `json:"duration"`
}

// AllDetections flattens every file's detections in fold order.
func (r *Report) AllDetections() []Detection {
	var out []Detection
	for _, fr := range r.Files {
		out = append(out, fr.Detections...)
	}
	return out
}

// HasErrors reports whether any file failed to scan.
func (r *Report) HasErrors() bool {
	return r.ErroredFiles > 0
}

// MaxRisk returns the highest risk level present among all detections,
// or "" when the report is clean. The CLI uses it for fail-on decisions.
func (r *Report) MaxRisk() RiskLevel {
	var max RiskLevel
	for level, n := range r.RiskCounts {
		if n > 0 && level.Rank() > max.Rank() {
			max = level
		}
	}
	return max
}
