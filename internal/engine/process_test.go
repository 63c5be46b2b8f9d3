package engine

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piiscan/piiscan/internal/rules"
	"github.com/piiscan/piiscan/internal/types"
)

func ssnOnlySet(t *testing.T) *rules.Set {
	t.Helper()
	set, err := rules.Compile(map[types.RiskLevel][]rules.Definition{
		types.RiskHigh: {{Name: "SSN", Pattern: `\d{3}-\d{2}-\d{4}`}},
	})
	require.NoError(t, err)
	return set
}

func TestProcessFile_Detections(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(p, []byte("id: 123-45-6789 done\n"), 0o644))

	res := processFile(p, Config{Root: dir, Rules: ssnOnlySet(t), MaxBytes: DefaultMaxBytes})
	require.Nil(t, res.Err)
	assert.Equal(t, "notes.txt", res.Path)
	assert.Equal(t, int64(21), res.ByteSize)
	require.Len(t, res.Detections, 1)

	d := res.Detections[0]
	assert.Equal(t, "notes.txt", d.Path)
	assert.Equal(t, "SSN", d.Rule)
	assert.Equal(t, types.RiskHigh, d.Risk)
	assert.Equal(t, "123-45-6789", d.Match)
	assert.Equal(t, 4, d.StartOffset)
	assert.Equal(t, 15, d.EndOffset)
	assert.Equal(t, 1, d.Line)
	assert.Equal(t, "id: 123-45-6789 done", d.Context)
}

func TestProcessFile_TooLarge(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "big.txt")
	require.NoError(t, os.WriteFile(p, make([]byte, 2048), 0o644))

	res := processFile(p, Config{Root: dir, Rules: ssnOnlySet(t), MaxBytes: 1024})
	require.NotNil(t, res.Err)
	assert.Equal(t, types.ErrFileTooLarge, res.Err.Kind)
	assert.Empty(t, res.Detections)
	assert.Equal(t, int64(2048), res.ByteSize)
}

func TestProcessFile_Vanished(t *testing.T) {
	dir := t.TempDir()
	res := processFile(filepath.Join(dir, "gone.txt"), Config{Root: dir, Rules: ssnOnlySet(t), MaxBytes: 1024})
	require.NotNil(t, res.Err)
	assert.Equal(t, types.ErrFileVanished, res.Err.Kind)
}

func TestProcessFile_BinaryContent(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "img.png")
	png := append([]byte("\x89PNG\r\n\x1a\n"), make([]byte, 64)...)
	require.NoError(t, os.WriteFile(p, png, 0o644))

	res := processFile(p, Config{Root: dir, Rules: ssnOnlySet(t), MaxBytes: DefaultMaxBytes})
	require.NotNil(t, res.Err)
	assert.Equal(t, types.ErrUndecodableContent, res.Err.Kind)
}

func TestProcessFile_NulBytesUndecodable(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "raw.dat")
	require.NoError(t, os.WriteFile(p, []byte("abc\x00def"), 0o644))

	res := processFile(p, Config{Root: dir, Rules: ssnOnlySet(t), MaxBytes: DefaultMaxBytes})
	require.NotNil(t, res.Err)
	assert.Equal(t, types.ErrUndecodableContent, res.Err.Kind)
}

func TestProcessFile_FallbackEncoding(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "latin.txt")
	// 0xE9 is é in latin-1 and invalid as standalone UTF-8
	require.NoError(t, os.WriteFile(p, []byte("caf\xe9 123-45-6789"), 0o644))

	res := processFile(p, Config{Root: dir, Rules: ssnOnlySet(t), MaxBytes: DefaultMaxBytes})
	require.Nil(t, res.Err)
	require.Len(t, res.Detections, 1)
	assert.Equal(t, "123-45-6789", res.Detections[0].Match)
}

func TestProcessFile_DocxParagraphsAndTableCells(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "report.docx")

	// word/document.xml must be the first entry so the container is
	// recognized as a Word document
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	doc, err := zw.Create("word/document.xml")
	require.NoError(t, err)
	_, err = doc.Write([]byte(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
		`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">` +
		`<w:body>` +
		`<w:p><w:r><w:t>id: 123-45-6789</w:t></w:r></w:p>` +
		`<w:tbl><w:tr><w:tc><w:p><w:r><w:t>alt 987-65-4321</w:t></w:r></w:p></w:tc></w:tr></w:tbl>` +
		`</w:body></w:document>`))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, os.WriteFile(p, buf.Bytes(), 0o644))

	res := processFile(p, Config{Root: dir, Rules: ssnOnlySet(t), MaxBytes: DefaultMaxBytes})
	require.Nil(t, res.Err)
	require.Len(t, res.Detections, 2)
	assert.Equal(t, "123-45-6789", res.Detections[0].Match)
	assert.Equal(t, 1, res.Detections[0].Line)
	assert.Equal(t, "987-65-4321", res.Detections[1].Match)
	assert.Equal(t, 2, res.Detections[1].Line)
}

func TestDecodeContent_UnsupportedFallback(t *testing.T) {
	_, err := decodeContent([]byte("\xff\xfe"), "ebcdic")
	assert.Error(t, err)
}
