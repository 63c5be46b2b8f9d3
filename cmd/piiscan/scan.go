package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/piiscan/piiscan/internal/config"
	"github.com/piiscan/piiscan/internal/engine"
	"github.com/piiscan/piiscan/internal/report"
	"github.com/piiscan/piiscan/internal/rules"
	"github.com/piiscan/piiscan/internal/types"
)

var (
	flagPatterns   string
	flagExclude    string
	flagMaxBytes   int64
	flagEncoding   string
	flagOutput     string
	flagFormat     string
	flagSummaryCSV string
	flagFailOn     string
)

func init() {
	cmd := &cobra.Command{
		Use:   "scan [path]",
		Short: "Scan a file or directory tree for sensitive data",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runScan,
	}
	rootCmd.AddCommand(cmd)

	cmd.Flags().StringVarP(&flagPatterns, "patterns", "p", "", "pattern definition file (YAML or JSON); builtin rules when empty")
	cmd.Flags().StringVar(&flagExclude, "exclude", "", "comma-separated exclusion globs")
	cmd.Flags().Int64Var(&flagMaxBytes, "max-bytes", 0, "skip files larger than this (default 10 MiB)")
	cmd.Flags().StringVar(&flagEncoding, "encoding", "", "fallback encoding for non-UTF-8 content (default latin-1)")
	cmd.Flags().StringVarP(&flagOutput, "output", "o", "", "write the report to this file instead of stdout")
	cmd.Flags().StringVarP(&flagFormat, "format", "f", "", "output format: table|text|json|csv (default table)")
	cmd.Flags().StringVar(&flagSummaryCSV, "summary-csv", "", "additionally write a summary CSV to this file")
	cmd.Flags().StringVar(&flagFailOn, "fail-on", "", "exit 1 when detections at or above this level exist: high|medium|low (default never)")
}

func runScan(cmd *cobra.Command, args []string) error {
	path := "."
	if len(args) == 1 {
		path = args[0]
	}
	root, _ := filepath.Abs(path)

	// Config precedence: CLI > local > global
	var gcfg, lcfg config.FileConfig
	if c, err := config.LoadGlobal(); err == nil {
		gcfg = c
	}
	if c, err := config.LoadLocal(root); err == nil {
		lcfg = c
	}

	set, err := loadRules(pickString(flagPatterns, lcfg.Patterns, gcfg.Patterns))
	if err != nil {
		return err
	}

	cfg := engine.Config{
		Root:             root,
		Rules:            set,
		ExcludeGlobs:     splitGlobs(pickString(flagExclude, lcfg.Exclude, gcfg.Exclude)),
		MaxBytes:         pickInt64(flagMaxBytes, lcfg.MaxBytes, gcfg.MaxBytes),
		Workers:          pickInt(flagWorkers, lcfg.Workers, gcfg.Workers),
		FallbackEncoding: pickString(flagEncoding, lcfg.Encoding, gcfg.Encoding),
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rep, err := engine.Scan(ctx, cfg)
	if err != nil {
		return err
	}

	out := io.Writer(os.Stdout)
	if flagOutput != "" {
		f, err := os.Create(flagOutput)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}

	noColor := pickBool(flagNoColor, lcfg.NoColor, gcfg.NoColor) || flagOutput != ""
	switch pickString(flagFormat, lcfg.Format, gcfg.Format) {
	case "json":
		err = report.WriteJSON(out, rep)
	case "csv":
		err = report.WriteCSV(out, rep)
	case "text":
		report.PrintText(out, rep, report.PrintOptions{NoColor: noColor})
	default:
		report.PrintTable(out, rep, report.PrintOptions{NoColor: noColor})
	}
	if err != nil {
		return err
	}
	if flagSummaryCSV != "" {
		f, err := os.Create(flagSummaryCSV)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := report.WriteSummaryCSV(f, rep); err != nil {
			return err
		}
	}

	if shouldFail(rep, pickString(flagFailOn, lcfg.FailOn, gcfg.FailOn)) {
		os.Exit(1)
	}
	return nil
}

func loadRules(patternFile string) (*rules.Set, error) {
	if patternFile == "" {
		return rules.Default(), nil
	}
	return rules.LoadFile(patternFile)
}

func splitGlobs(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, g := range strings.Split(s, ",") {
		if g = strings.TrimSpace(g); g != "" {
			out = append(out, g)
		}
	}
	return out
}

// shouldFail decides the nonzero-exit policy from the finished report.
// The engine itself never chooses process exit codes.
func shouldFail(rep *types.Report, failOn string) bool {
	switch strings.ToLower(failOn) {
	case "", "never":
		return false
	case "low", "medium", "high":
		threshold, _ := types.ParseRiskLevel(failOn)
		return rep.MaxRisk().Rank() >= threshold.Rank() && rep.TotalDetections > 0
	default:
		fmt.Fprintf(os.Stderr, "warning: unknown fail-on level %q, ignoring\n", failOn)
		return false
	}
}
