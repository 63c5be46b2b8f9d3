package report

import (
	"fmt"
	"io"
	"sort"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/piiscan/piiscan/internal/types"
)

// PrintOptions controls human-readable rendering.
type PrintOptions struct {
	NoColor bool
}

// PrintText writes the plain columnar rendering of a report.
func PrintText(w io.Writer, rep *types.Report, opts PrintOptions) {
	detections := sortedDetections(rep)
	if len(detections) == 0 {
		fmt.Fprintln(w, "No sensitive data found")
	} else {
		maxRule := 8
		for _, d := range detections {
			if l := len(d.Rule); l > maxRule {
				maxRule = l
			}
		}
		fmt.Fprintf(w, "Detections: %d\n", len(detections))
		for _, d := range detections {
			fmt.Fprintf(w, "%-8s %-*s %s:%d  %s\n", riskLabel(d.Risk, opts.NoColor), maxRule, d.Rule, d.Path, d.Line, maskValue(d.Match))
		}
	}
	printFooter(w, rep)
}

// PrintTable writes the bordered table rendering of a report.
func PrintTable(w io.Writer, rep *types.Report, opts PrintOptions) {
	detections := sortedDetections(rep)
	if len(detections) == 0 {
		fmt.Fprintln(w, "No sensitive data found")
		printFooter(w, rep)
		return
	}
	table := tablewriter.NewTable(w)
	table.Header("RISK", "RULE", "LOCATION", "MATCH")
	for _, d := range detections {
		_ = table.Append([]string{
			riskLabel(d.Risk, opts.NoColor),
			d.Rule,
			fmt.Sprintf("%s:%d", d.Path, d.Line),
			maskValue(d.Match),
		})
	}
	_ = table.Render()
	printFooter(w, rep)
}

func sortedDetections(rep *types.Report) []types.Detection {
	out := rep.AllDetections()
	sort.Slice(out, func(i, j int) bool {
		if out[i].Path == out[j].Path {
			if out[i].Line == out[j].Line {
				return out[i].StartOffset < out[j].StartOffset
			}
			return out[i].Line < out[j].Line
		}
		return out[i].Path < out[j].Path
	})
	return out
}

func printFooter(w io.Writer, rep *types.Report) {
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Detections: %d (high: %d, medium: %d, low: %d)\n",
		rep.TotalDetections,
		rep.RiskCounts[types.RiskHigh],
		rep.RiskCounts[types.RiskMedium],
		rep.RiskCounts[types.RiskLow])
	fmt.Fprintf(w, "Files scanned: %d\n", rep.TotalFiles)
	if rep.ErroredFiles > 0 {
		fmt.Fprintf(w, "Files with errors: %d\n", rep.ErroredFiles)
	}
	if len(rep.SkippedCycles) > 0 {
		fmt.Fprintf(w, "Skipped symlink cycles: %d\n", len(rep.SkippedCycles))
	}
	if rep.Status == types.StatusCancelled {
		fmt.Fprintln(w, "Scan cancelled: partial results")
	}
	if rep.Duration > 0 {
		fmt.Fprintf(w, "Scan duration: %.2fs\n", rep.Duration.Seconds())
	}
}

// maskValue hides the middle of a matched value in human-readable
// output. Machine formats (JSON, CSV) keep the text verbatim.
func maskValue(s string) string {
	if len(s) <= 8 {
		return "********"
	}
	return s[:4] + "…" + s[len(s)-4:]
}

func riskLabel(r types.RiskLevel, noColor bool) string {
	if noColor {
		return string(r)
	}
	switch r {
	case types.RiskHigh:
		return color.RedString(string(r))
	case types.RiskMedium:
		return color.YellowString(string(r))
	default:
		return color.CyanString(string(r))
	}
}
