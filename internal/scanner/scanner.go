// Package scanner applies a compiled rule set to a single unit of text,
// streaming raw matches with absolute offsets and rule identity.
package scanner

import (
	"unicode/utf8"

	"github.com/piiscan/piiscan/internal/rules"
	"github.com/piiscan/piiscan/internal/types"
)

// Match is one raw pattern hit within a scanned text. Offsets are byte
// indexes into the text; Text equals text[Start:End] verbatim.
type Match struct {
	Rule  string
	Risk  types.RiskLevel
	Start int
	End   int
	Text  string
}

// ContextChars is how many bytes of surrounding text a context window
// carries on each side of a match.
const ContextChars = 50

// Scan streams every raw match of set against text to emit. Rules run in
// ByRiskDescending order; within one rule, occurrences are the standard
// non-overlapping find set. Overlapping spans matched by different rules
// are all reported; a span may legitimately carry multiple
// classifications, and consumers decide precedence.
func Scan(text string, set *rules.Set, emit func(Match)) {
	for _, r := range set.ByRiskDescending() {
		for _, loc := range r.Expr.FindAllStringIndex(text, -1) {
			emit(Match{
				Rule:  r.Name,
				Risk:  r.Risk,
				Start: loc[0],
				End:   loc[1],
				Text:  text[loc[0]:loc[1]],
			})
		}
	}
}

// ScanAll collects every match of set against text.
func ScanAll(text string, set *rules.Set) []Match {
	var out []Match
	Scan(text, set, func(m Match) { out = append(out, m) })
	return out
}

// ContextWindow returns up to n bytes of text on each side of
// [start,end), clipped at line boundaries so a window never spans
// multiple lines. The cut points widen to rune boundaries so the
// window is always valid UTF-8 when the text is.
func ContextWindow(text string, start, end, n int) string {
	lo := start - n
	if lo < 0 {
		lo = 0
	}
	for lo > 0 && !utf8.RuneStart(text[lo]) {
		lo--
	}
	for i := start - 1; i >= lo; i-- {
		if text[i] == '\n' {
			lo = i + 1
			break
		}
	}
	hi := end + n
	if hi > len(text) {
		hi = len(text)
	}
	for hi < len(text) && !utf8.RuneStart(text[hi]) {
		hi++
	}
	for i := end; i < hi; i++ {
		if text[i] == '\n' {
			hi = i
			break
		}
	}
	return text[lo:hi]
}
