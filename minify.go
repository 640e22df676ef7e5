package webopt

import (
	"regexp"
	"strings"
)

// MinifyFunc turns source text into a smaller, best-effort equivalent text.
type MinifyFunc func(src string) string

// ws is the whitespace class shared by every rule: ASCII controls \t..\r,
// the information separators, NEL and the Unicode separator categories.
const ws = `[\t-\r\x{1c}-\x{1f}\x{85}\p{Z}]`

var (
	markupComment = regexp.MustCompile(`(?s)<!--.*?-->`)
	interTagSpace = regexp.MustCompile(`>` + ws + `+<`)
	lineBreak     = regexp.MustCompile(`\r\n|[\n\v\f\r\x{1c}-\x{1e}\x{85}\x{2028}\x{2029}]`)

	blockComment = regexp.MustCompile(`(?s)/\*.*?\*/`)
	spaceRun     = regexp.MustCompile(ws + `+`)

	// RE2 has no lookbehind; the guard character is captured and put back.
	lineComment = regexp.MustCompile(`(^|[^:])//[^\n]*`)

	styleDelims  = regexp.MustCompile(ws + `*([{}:;,])` + ws + `*`)
	scriptDelims = regexp.MustCompile(ws + `*([{}();,=<>+\-*/])` + ws + `*`)
)

var minifiers = map[ContentKind]MinifyFunc{
	KindMarkup:     MinifyMarkup,
	KindStylesheet: MinifyStylesheet,
	KindScript:     MinifyScript,
}

// MinifierFor returns the pattern minifier for kind, or nil for KindOpaque.
func MinifierFor(kind ContentKind) MinifyFunc {
	return minifiers[kind]
}

// MinifyMarkup strips HTML comments, whitespace between tags and blank
// lines, and trims every remaining line. Verbatim blocks such as <pre> are
// not protected.
func MinifyMarkup(src string) string {
	s := markupComment.ReplaceAllString(src, "")
	s = interTagSpace.ReplaceAllString(s, "><")

	lines := lineBreak.Split(s, -1)
	kept := lines[:0]
	for _, line := range lines {
		if line = trimSpace(line); line != "" {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n")
}

// MinifyStylesheet strips comments, collapses whitespace and removes it
// around { } : ; and ,. Quoted strings are not protected.
func MinifyStylesheet(src string) string {
	s := blockComment.ReplaceAllString(src, "")
	s = spaceRun.ReplaceAllString(s, " ")
	s = styleDelims.ReplaceAllString(s, "${1}")
	return trimSpace(s)
}

// MinifyScript strips // and /* */ comments, collapses whitespace and
// removes it around punctuation and operators.
//
// A // directly after a colon is kept so literal URLs survive. This is a
// heuristic, not a lexer: comment markers inside strings or regular
// expressions are still cut, and "a - -b" becomes "a--b".
func MinifyScript(src string) string {
	s := lineComment.ReplaceAllString(src, "${1}")
	s = blockComment.ReplaceAllString(s, "")
	s = spaceRun.ReplaceAllString(s, " ")
	s = scriptDelims.ReplaceAllString(s, "${1}")
	return trimSpace(s)
}

func isSpace(r rune) bool {
	switch {
	case r >= '\t' && r <= '\r', r >= 0x1c && r <= 0x20, r == 0x85, r == 0xa0:
		return true
	case r < 0x1680:
		return false
	}
	return r == 0x1680 || (r >= 0x2000 && r <= 0x200a) ||
		r == 0x2028 || r == 0x2029 || r == 0x202f || r == 0x205f || r == 0x3000
}

func trimSpace(s string) string {
	return strings.TrimFunc(s, isSpace)
}
