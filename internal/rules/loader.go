package rules

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/piiscan/piiscan/internal/types"
)

// patternFile is the on-disk shape of a pattern definition file:
//
//	patterns:
//	  HIGH:
//	    - name: ssn
//	      pattern: '\d{3}-\d{2}-\d{4}'
//	      description: US social security number
//	  MEDIUM: [...]
//	  LOW: [...]
//
// YAML is a superset of JSON, so JSON pattern files load unchanged.
type patternFile struct {
	Patterns map[string][]Definition `yaml:"patterns"`
}

// LoadFile reads, validates, and compiles a pattern definition file.
func LoadFile(path string) (*Set, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read pattern file: %w", err)
	}
	s, err := Parse(b)
	if err != nil {
		return nil, fmt.Errorf("pattern file %s: %w", path, err)
	}
	return s, nil
}

// Parse validates and compiles pattern definitions from YAML or JSON
// bytes. Malformed entries are rejected here, before they reach the
// engine.
func Parse(data []byte) (*Set, error) {
	var pf patternFile
	if err := yaml.Unmarshal(data, &pf); err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	if len(pf.Patterns) == 0 {
		return nil, fmt.Errorf("no patterns defined")
	}
	defs := make(map[types.RiskLevel][]Definition, len(pf.Patterns))
	for key, list := range pf.Patterns {
		level, err := types.ParseRiskLevel(key)
		if err != nil {
			return nil, err
		}
		defs[level] = append(defs[level], list...)
	}
	return Compile(defs)
}
