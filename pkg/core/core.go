// Package core re-exports the scan API as a stable public surface for
// programs embedding piiscan.
package core

import (
	"context"

	"github.com/piiscan/piiscan/internal/engine"
	"github.com/piiscan/piiscan/internal/rules"
	"github.com/piiscan/piiscan/internal/types"
)

// Type aliases keep external consumers off the internal import paths;
// they can be replaced with decoupled structs later without breaking
// callers.
type (
	Config     = engine.Config
	Report     = types.Report
	Detection  = types.Detection
	FileResult = types.FileResult
	RiskLevel  = types.RiskLevel
	RuleSet    = rules.Set
	Definition = rules.Definition
)

// Scan is the stable entrypoint for other programs.
func Scan(ctx context.Context, cfg Config) (*Report, error) {
	return engine.Scan(ctx, cfg)
}

// DefaultRules returns the builtin rule pack. A caller may amortize
// compilation by reusing the returned set across scans.
func DefaultRules() *RuleSet { return rules.Default() }

// CompileRules builds a rule set from risk-tiered definitions.
func CompileRules(defs map[RiskLevel][]Definition) (*RuleSet, error) {
	return rules.Compile(defs)
}

// LoadRules reads, validates, and compiles a pattern definition file.
func LoadRules(path string) (*RuleSet, error) {
	return rules.LoadFile(path)
}
