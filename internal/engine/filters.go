package engine

import (
	"path/filepath"
	"strings"

	doublestar "github.com/bmatcuk/doublestar/v4"
)

var defaultExcludeDirs = map[string]bool{
	".git":         true,
	"node_modules": true,
	"target":       true,
	"vendor":       true,
	"dist":         true,
	"build":        true,
	"out":          true,
	".venv":        true,
	"venv":         true,
	"__pycache__":  true,
	"coverage":     true,
	"bin":          true,
	"obj":          true,
}

func isDefaultDirExcluded(name string) bool {
	return defaultExcludeDirs[name] || strings.HasPrefix(name, ".git")
}

// excludedByGlobs reports whether the relative path matches any of the
// configured exclusion globs. Matching uses forward-slash semantics and
// also tries the basename, so "*.log" excludes logs at any depth.
func excludedByGlobs(relPath string, globs []string) bool {
	rp := strings.ReplaceAll(relPath, "\\", "/")
	for _, g := range globs {
		g = strings.TrimSpace(g)
		if g == "" {
			continue
		}
		if ok, _ := doublestar.Match(g, rp); ok {
			return true
		}
		if ok, _ := doublestar.Match(g, filepath.Base(rp)); ok {
			return true
		}
	}
	return false
}
