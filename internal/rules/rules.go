package rules

import (
	"fmt"
	"regexp"

	"github.com/piiscan/piiscan/internal/types"
)

// Definition is one uncompiled rule as supplied by a loader or caller.
type Definition struct {
	Name        string `yaml:"name" json:"name"`
	Pattern     string `yaml:"pattern" json:"pattern"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
}

// Rule is a compiled, immutable detection rule. Rules are owned by their
// Set and never mutated after construction.
type Rule struct {
	Name        string
	Expr        *regexp.Regexp
	Description string
	Risk        types.RiskLevel
}

// CompileError names the rule whose pattern failed to compile.
type CompileError struct {
	Rule string
	Err  error
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("rule %q: malformed pattern: %v", e.Rule, e.Err)
}

func (e *CompileError) Unwrap() error { return e.Err }

// Set is an immutable, risk-tiered collection of compiled rules. It is
// safe for concurrent read-only use across workers.
type Set struct {
	byRisk  map[types.RiskLevel][]Rule
	ordered []Rule
}

// Compile builds a Set from risk-tiered definitions, compiling every
// pattern eagerly. The first malformed pattern aborts with a
// CompileError. Rule names must be unique across the whole set.
func Compile(defs map[types.RiskLevel][]Definition) (*Set, error) {
	s := &Set{byRisk: make(map[types.RiskLevel][]Rule, len(defs))}
	for level := range defs {
		if level.Rank() == 0 {
			return nil, fmt.Errorf("unknown risk level %q", level)
		}
	}
	seen := make(map[string]types.RiskLevel)
	for _, level := range types.Levels() {
		for _, def := range defs[level] {
			if def.Name == "" {
				return nil, fmt.Errorf("%s rule with empty name", level)
			}
			if def.Pattern == "" {
				return nil, fmt.Errorf("rule %q: empty pattern", def.Name)
			}
			if prev, ok := seen[def.Name]; ok {
				return nil, fmt.Errorf("rule %q: duplicate name (already defined at %s)", def.Name, prev)
			}
			seen[def.Name] = level
			expr, err := regexp.Compile(def.Pattern)
			if err != nil {
				return nil, &CompileError{Rule: def.Name, Err: err}
			}
			r := Rule{Name: def.Name, Expr: expr, Description: def.Description, Risk: level}
			s.byRisk[level] = append(s.byRisk[level], r)
			s.ordered = append(s.ordered, r)
		}
	}
	return s, nil
}

// RulesFor returns the rules of one tier in declaration order. The
// returned slice is shared; callers must not modify it.
func (s *Set) RulesFor(level types.RiskLevel) []Rule {
	return s.byRisk[level]
}

// ByRiskDescending returns all rules, HIGH first, then MEDIUM, then LOW,
// preserving declaration order within a tier. The scanner relies on this
// order when reporting overlapping matches.
func (s *Set) ByRiskDescending() []Rule {
	return s.ordered
}

// Len reports the total number of rules in the set.
func (s *Set) Len() int {
	return len(s.ordered)
}
