package report

import (
	"encoding/json"
	"io"
	"time"

	"github.com/piiscan/piiscan/internal/types"
)

type jsonSummary struct {
	Status          types.ScanStatus        `json:"status"`
	TotalFiles      int                     `json:"total_files"`
	TotalDetections int                     `json:"total_detections"`
	ErroredFiles    int                     `json:"errored_files"`
	RiskLevelCounts map[types.RiskLevel]int `json:"risk_level_counts"`
	PatternCounts   map[string]int          `json:"pattern_counts"`
	SkippedCycles   []string                `json:"skipped_cycles,omitempty"`
	StartedAt       time.Time               `json:"started_at"`
	DurationSeconds float64                 `json:"duration_seconds"`
}

type jsonDetection struct {
	types.Detection
	Fingerprint string `json:"fingerprint"`
}

type jsonFile struct {
	Path       string           `json:"file_path"`
	ByteSize   int64            `json:"byte_size"`
	Error      *types.FileError `json:"error,omitempty"`
	Detections []jsonDetection  `json:"detections"`
}

type jsonReport struct {
	Summary jsonSummary `json:"summary"`
	Files   []jsonFile  `json:"files"`
}

// WriteJSON renders the report as a nested JSON document: a summary
// block followed by per-file detection arrays. Matched text is written
// verbatim.
func WriteJSON(w io.Writer, rep *types.Report) error {
	doc := jsonReport{
		Summary: jsonSummary{
			Status:          rep.Status,
			TotalFiles:      rep.TotalFiles,
			TotalDetections: rep.TotalDetections,
			ErroredFiles:    rep.ErroredFiles,
			RiskLevelCounts: rep.RiskCounts,
			PatternCounts:   rep.RuleCounts,
			SkippedCycles:   rep.SkippedCycles,
			StartedAt:       rep.StartedAt,
			DurationSeconds: rep.Duration.Seconds(),
		},
	}
	for _, fr := range rep.Files {
		jf := jsonFile{
			Path:       fr.Path,
			ByteSize:   fr.ByteSize,
			Error:      fr.Err,
			Detections: make([]jsonDetection, 0, len(fr.Detections)),
		}
		for _, d := range fr.Detections {
			jf.Detections = append(jf.Detections, jsonDetection{Detection: d, Fingerprint: d.Fingerprint()})
		}
		doc.Files = append(doc.Files, jf)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}
