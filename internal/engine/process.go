package engine

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/piiscan/piiscan/internal/scanner"
	"github.com/piiscan/piiscan/internal/types"
)

// processFile reads one file and turns every raw match into a Detection
// bound to it. Every failure is captured in the result's error field;
// nothing here ever aborts the whole scan.
func processFile(path string, cfg Config) types.FileResult {
	res := types.FileResult{Path: displayPath(cfg.Root, path)}

	info, err := os.Stat(path)
	if err != nil {
		res.Err = classifyIOError(err)
		return res
	}
	res.ByteSize = info.Size()
	if cfg.MaxBytes > 0 && info.Size() > cfg.MaxBytes {
		res.Err = &types.FileError{Kind: types.ErrFileTooLarge}
		return res
	}

	b, err := os.ReadFile(path)
	if err != nil {
		res.Err = classifyIOError(err)
		return res
	}

	text, err := decodeContent(b, cfg.FallbackEncoding)
	if err != nil {
		res.Err = &types.FileError{Kind: types.ErrUndecodableContent, Detail: err.Error()}
		return res
	}

	index := scanner.NewLineIndex(text)
	scanner.Scan(text, cfg.Rules, func(m scanner.Match) {
		res.Detections = append(res.Detections, types.Detection{
			Path:        res.Path,
			Rule:        m.Rule,
			Risk:        m.Risk,
			Match:       m.Text,
			StartOffset: m.Start,
			EndOffset:   m.End,
			Line:        index.Line(m.Start),
			Context:     scanner.ContextWindow(text, m.Start, m.End, scanner.ContextChars),
		})
	})
	return res
}

// classifyIOError maps a read failure to the per-file error taxonomy. A
// path that disappears between enumeration and read is a vanished file,
// not a bug.
func classifyIOError(err error) *types.FileError {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return &types.FileError{Kind: types.ErrFileVanished}
	case errors.Is(err, fs.ErrPermission):
		return &types.FileError{Kind: types.ErrPermissionDenied}
	default:
		return &types.FileError{Kind: types.ErrFileVanished, Detail: err.Error()}
	}
}

// displayPath reports paths relative to the scan root; a single-file
// root keeps its basename.
func displayPath(root, p string) string {
	rel, err := filepath.Rel(root, p)
	if err != nil || rel == "." {
		return filepath.Base(p)
	}
	return rel
}
