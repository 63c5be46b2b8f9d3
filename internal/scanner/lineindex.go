package scanner

import (
	"sort"
	"strings"
)

// LineIndex maps byte offsets to 1-based line numbers. It is built once
// per text in O(n); each lookup is a binary search over the newline
// offsets, so line resolution never rescans the text per match.
type LineIndex struct {
	newlines []int
}

// NewLineIndex records the offset of every newline in text.
func NewLineIndex(text string) *LineIndex {
	ix := &LineIndex{}
	off := 0
	for {
		i := strings.IndexByte(text[off:], '\n')
		if i < 0 {
			break
		}
		ix.newlines = append(ix.newlines, off+i)
		off += i + 1
	}
	return ix
}

// Line returns the 1-based line number containing the byte offset: one
// plus the count of newlines strictly before it.
func (ix *LineIndex) Line(offset int) int {
	return sort.SearchInts(ix.newlines, offset) + 1
}
