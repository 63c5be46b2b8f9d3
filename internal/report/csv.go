package report

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/piiscan/piiscan/internal/types"
)

// WriteCSV renders the report as a flat row-oriented document, one row
// per detection. Matched text is written verbatim.
func WriteCSV(w io.Writer, rep *types.Report) error {
	cw := csv.NewWriter(w)
	header := []string{"file", "rule", "risk", "matched_text", "line_number", "start_offset", "end_offset", "context", "fingerprint"}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, fr := range rep.Files {
		for _, d := range fr.Detections {
			row := []string{
				d.Path,
				d.Rule,
				string(d.Risk),
				d.Match,
				strconv.Itoa(d.Line),
				strconv.Itoa(d.StartOffset),
				strconv.Itoa(d.EndOffset),
				d.Context,
				d.Fingerprint(),
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteSummaryCSV renders the run-wide summary as metric/value rows,
// the separate export companion to WriteCSV.
func WriteSummaryCSV(w io.Writer, rep *types.Report) error {
	cw := csv.NewWriter(w)
	rows := [][]string{
		{"metric", "value"},
		{"status", string(rep.Status)},
		{"total_files", strconv.Itoa(rep.TotalFiles)},
		{"total_detections", strconv.Itoa(rep.TotalDetections)},
		{"errored_files", strconv.Itoa(rep.ErroredFiles)},
		{"skipped_cycles", strconv.Itoa(len(rep.SkippedCycles))},
	}
	for _, level := range types.Levels() {
		rows = append(rows, []string{"detections_" + string(level), strconv.Itoa(rep.RiskCounts[level])})
	}
	for _, row := range rows {
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
