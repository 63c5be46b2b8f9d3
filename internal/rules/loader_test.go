package rules

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piiscan/piiscan/internal/types"
)

func TestParse_YAML(t *testing.T) {
	set, err := Parse([]byte(`
patterns:
  HIGH:
    - name: ssn
      pattern: '\d{3}-\d{2}-\d{4}'
      description: US social security number
  LOW:
    - name: email
      pattern: '[a-z]+@[a-z]+\.[a-z]+'
`))
	require.NoError(t, err)
	assert.Equal(t, 2, set.Len())
	require.Len(t, set.RulesFor(types.RiskHigh), 1)
	assert.Equal(t, "ssn", set.RulesFor(types.RiskHigh)[0].Name)
	assert.Equal(t, types.RiskLow, set.RulesFor(types.RiskLow)[0].Risk)
}

func TestParse_JSONPatternFileLoadsUnchanged(t *testing.T) {
	set, err := Parse([]byte(`{
  "patterns": {
    "HIGH": [{"name": "ssn", "pattern": "\\d{3}-\\d{2}-\\d{4}"}],
    "MEDIUM": [{"name": "phone", "pattern": "\\d{3}-\\d{4}"}]
  }
}`))
	require.NoError(t, err)
	assert.Equal(t, 2, set.Len())
}

func TestParse_UnknownRiskLevel(t *testing.T) {
	_, err := Parse([]byte(`
patterns:
  CRITICAL:
    - name: x
      pattern: y
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CRITICAL")
}

func TestParse_EmptyAndInvalid(t *testing.T) {
	_, err := Parse([]byte(`patterns: {}`))
	assert.Error(t, err)

	_, err = Parse([]byte(`{not yaml: [`))
	assert.Error(t, err)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "patterns.yml")
	require.NoError(t, os.WriteFile(p, []byte("patterns:\n  LOW:\n    - name: ip\n      pattern: '\\d+\\.\\d+'\n"), 0o644))

	set, err := LoadFile(p)
	require.NoError(t, err)
	assert.Equal(t, 1, set.Len())

	_, err = LoadFile(filepath.Join(dir, "missing.yml"))
	assert.Error(t, err)
}
