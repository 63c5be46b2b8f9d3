package report

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteJSON_Structure(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, sampleReport()))

	var doc struct {
		Summary struct {
			Status          string         `json:"status"`
			TotalFiles      int            `json:"total_files"`
			TotalDetections int            `json:"total_detections"`
			ErroredFiles    int            `json:"errored_files"`
			RiskLevelCounts map[string]int `json:"risk_level_counts"`
			PatternCounts   map[string]int `json:"pattern_counts"`
		} `json:"summary"`
		Files []struct {
			Path       string `json:"file_path"`
			Error      *struct {
				Kind string `json:"kind"`
			} `json:"error"`
			Detections []struct {
				Rule        string `json:"rule_name"`
				Match       string `json:"matched_text"`
				StartOffset int    `json:"start_offset"`
				Fingerprint string `json:"fingerprint"`
			} `json:"detections"`
		} `json:"files"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))

	assert.Equal(t, "completed", doc.Summary.Status)
	assert.Equal(t, 2, doc.Summary.TotalFiles)
	assert.Equal(t, 2, doc.Summary.TotalDetections)
	assert.Equal(t, 1, doc.Summary.ErroredFiles)
	assert.Equal(t, 1, doc.Summary.RiskLevelCounts["HIGH"])
	assert.Equal(t, 1, doc.Summary.PatternCounts["ssn"])

	require.Len(t, doc.Files, 2)
	require.Len(t, doc.Files[0].Detections, 2)
	// machine output keeps matched text verbatim
	assert.Equal(t, "123-45-6789", doc.Files[0].Detections[0].Match)
	assert.Equal(t, 4, doc.Files[0].Detections[0].StartOffset)
	assert.NotEmpty(t, doc.Files[0].Detections[0].Fingerprint)
	require.NotNil(t, doc.Files[1].Error)
	assert.Equal(t, "undecodable_content", doc.Files[1].Error.Kind)
}

func TestWriteCSV_OneRowPerDetection(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sampleReport()))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3) // header + 2 detections
	assert.Equal(t, "file", rows[0][0])
	assert.Equal(t, "docs/a.txt", rows[1][0])
	assert.Equal(t, "ssn", rows[1][1])
	assert.Equal(t, "HIGH", rows[1][2])
	assert.Equal(t, "123-45-6789", rows[1][3])
	assert.Equal(t, "1", rows[1][4])
	assert.Equal(t, "4", rows[1][5])
	assert.Equal(t, "15", rows[1][6])
}

func TestWriteSummaryCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteSummaryCSV(&buf, sampleReport()))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	got := map[string]string{}
	for _, r := range rows[1:] {
		got[r[0]] = r[1]
	}
	assert.Equal(t, "completed", got["status"])
	assert.Equal(t, "2", got["total_files"])
	assert.Equal(t, "2", got["total_detections"])
	assert.Equal(t, "1", got["errored_files"])
	assert.Equal(t, "1", got["detections_HIGH"])
	assert.Equal(t, "0", got["detections_MEDIUM"])
	assert.Equal(t, "1", got["detections_LOW"])
}
