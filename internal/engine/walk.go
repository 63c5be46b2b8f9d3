package engine

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// walker enumerates candidate files under a root path. Traversal is an
// explicit work-list DFS rather than call-stack recursion, so deep trees
// cannot overflow the stack and symlink cycles surface as data.
type walker struct {
	cfg           Config
	visited       map[string]bool
	skippedCycles []string
}

// dirFrame carries a directory's canonical path alongside the traversal
// path, so cycle checks don't re-resolve symlinks per entry.
type dirFrame struct {
	path  string
	canon string
}

// walk emits each candidate file path to emit until emit returns false
// or ctx is cancelled. The root may be a single file, in which case
// exactly one path is emitted. Only the root being missing or unreadable
// is fatal; unreadable subdirectories are skipped silently and
// unreadable files surface later as per-file results.
func (w *walker) walk(ctx context.Context, emit func(path string) bool) error {
	root := w.cfg.Root
	info, err := os.Stat(root)
	if err != nil {
		return fmt.Errorf("root path %s: %w", root, err)
	}
	if !info.IsDir() {
		emit(root)
		return nil
	}

	w.visited = map[string]bool{}
	rootCanon := root
	if canon, err := filepath.EvalSymlinks(root); err == nil {
		rootCanon = canon
		w.visited[canon] = true
	}

	stack := []dirFrame{{path: root, canon: rootCanon}}
	for len(stack) > 0 {
		if ctx.Err() != nil {
			return nil
		}
		frame := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		entries, err := os.ReadDir(frame.path)
		if err != nil {
			if frame.path == root {
				return fmt.Errorf("root path %s: %w", root, err)
			}
			continue
		}
		for _, e := range entries {
			if ctx.Err() != nil {
				return nil
			}
			p := filepath.Join(frame.path, e.Name())
			rel := w.relPath(p)
			if w.isDir(p, e.Type()&os.ModeSymlink != 0, e.IsDir()) {
				if isDefaultDirExcluded(e.Name()) || excludedByGlobs(rel, w.cfg.ExcludeGlobs) {
					continue
				}
				canon, err := filepath.EvalSymlinks(p)
				if err != nil {
					continue
				}
				if w.visited[canon] {
					// a revisit is a cycle only when the target is
					// still on the current descent; other duplicates
					// (aliased siblings) are skipped quietly
					if isAncestorPath(canon, frame.canon) {
						w.skippedCycles = append(w.skippedCycles, rel)
					}
					continue
				}
				w.visited[canon] = true
				stack = append(stack, dirFrame{path: p, canon: canon})
				continue
			}
			if excludedByGlobs(rel, w.cfg.ExcludeGlobs) {
				continue
			}
			if !emit(p) {
				return nil
			}
		}
	}
	return nil
}

// isAncestorPath reports whether anc equals p or contains it.
func isAncestorPath(anc, p string) bool {
	return anc == p || strings.HasPrefix(p, anc+string(os.PathSeparator))
}

// isDir resolves whether an entry should be traversed as a directory,
// following symlinks to directories.
func (w *walker) isDir(path string, isSymlink, isDir bool) bool {
	if isDir {
		return true
	}
	if !isSymlink {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func (w *walker) relPath(p string) string {
	return displayPath(w.cfg.Root, p)
}
