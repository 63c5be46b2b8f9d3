package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	flagWorkers int
	flagNoColor bool

	version = "0.1.0"
)

var rootCmd = &cobra.Command{
	Use:           "piiscan",
	Short:         "Find sensitive personal data in a file tree",
	Long:          "piiscan walks a directory tree, applies risk-tiered patterns to file content, and reports every match with enough context to audit it.",
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the piiscan CLI. It should be called by main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(2)
	}
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagWorkers, "workers", 0, "worker count (0 = host core count)")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "disable colorized output")
}
