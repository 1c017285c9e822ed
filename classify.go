package uncurl

import (
	"strings"
	"unicode"
)

// extractComment pulls the trailing comment out of the text that follows a
// scoping brace. Either the remainder starts with '#' after leading
// whitespace, or everything from the first '#' onward is the comment.
// Returns "" when there is none.
func extractComment(text string) string {
	stripped := strings.TrimLeftFunc(text, unicode.IsSpace)
	if strings.HasPrefix(stripped, "#") {
		return stripped
	}
	if i := strings.Index(stripped, "#"); i >= 0 {
		return stripped[i:]
	}
	return ""
}

// isScopingOpen reports whether the '{' at col opens a block. Protected
// positions are a hard veto. Otherwise the brace must either trail a
// block-introducing ':' with nothing but whitespace in between (and nothing
// but an optional comment after), or sit alone on its line. Any other '{' is
// left untouched: false negatives leave code unconverted, false positives
// would corrupt it.
func isScopingOpen(line []rune, col, lineIdx int, protected protectedSet) bool {
	if protected.contains(lineIdx, col) {
		return false
	}

	before := string(line[:col])
	after := string(line[col+1:])

	if i := strings.LastIndex(before, ":"); i >= 0 {
		if strings.TrimSpace(before[i+1:]) == "" {
			rest := strings.TrimSpace(after)
			if rest == "" || strings.HasPrefix(rest, "#") {
				return true
			}
		}
	}

	stripped := strings.TrimSpace(string(line))
	if stripped == "{" {
		return true
	}
	if strings.HasPrefix(stripped, "{") {
		rest := strings.TrimLeftFunc(stripped[1:], unicode.IsSpace)
		if strings.HasPrefix(rest, "#") {
			return true
		}
	}
	return false
}

// isScopingClose reports whether the '}' at col closes a block: the trimmed
// line is exactly "}" or starts with '}' followed only by a comment.
func isScopingClose(line []rune, col, lineIdx int, protected protectedSet) bool {
	if protected.contains(lineIdx, col) {
		return false
	}

	stripped := strings.TrimSpace(string(line))
	if stripped == "}" {
		return true
	}
	if strings.HasPrefix(stripped, "}") {
		rest := strings.TrimLeftFunc(stripped[1:], unicode.IsSpace)
		if rest == "" || strings.HasPrefix(rest, "#") {
			return true
		}
	}
	return false
}
