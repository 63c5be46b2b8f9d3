package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/piiscan/piiscan/internal/types"
)

func reportWith(counts map[types.RiskLevel]int) *types.Report {
	total := 0
	for _, n := range counts {
		total += n
	}
	return &types.Report{RiskCounts: counts, TotalDetections: total}
}

func TestShouldFail(t *testing.T) {
	highOnly := reportWith(map[types.RiskLevel]int{types.RiskHigh: 1})
	lowOnly := reportWith(map[types.RiskLevel]int{types.RiskLow: 2})
	clean := reportWith(map[types.RiskLevel]int{})

	assert.False(t, shouldFail(highOnly, "never"))
	assert.False(t, shouldFail(highOnly, ""))
	assert.True(t, shouldFail(highOnly, "high"))
	assert.True(t, shouldFail(highOnly, "medium"))
	assert.True(t, shouldFail(lowOnly, "low"))
	assert.False(t, shouldFail(lowOnly, "high"))
	assert.False(t, shouldFail(clean, "low"))
	assert.False(t, shouldFail(highOnly, "bogus"))
}

func TestSplitGlobs(t *testing.T) {
	assert.Nil(t, splitGlobs(""))
	assert.Equal(t, []string{"*.log", "tmp/**"}, splitGlobs(" *.log , tmp/** ,"))
}
