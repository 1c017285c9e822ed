// Package uncurl rewrites a curly-brace variant of Python into canonical
// indentation-based Python. Lines carrying scoping '{' and '}' tokens are
// translated into indentation-level changes; everything else, including the
// contents of string literals and comments, passes through untouched.
package uncurl

import (
	"strings"
	"unicode"
)

const defaultIndent = "    "

// Options adjusts the conversion. The zero value is ready to use.
type Options struct {
	// Indent is the indentation unit applied once per block depth.
	// Empty means four spaces.
	Indent string
}

// Convert rewrites brace-delimited blocks in source into indentation-based
// blocks using the default four-space unit. It is pure, performs no I/O, and
// never fails: malformed input is converted best-effort.
func Convert(source string) string {
	return ConvertWith(source, Options{})
}

// ConvertWith is Convert with explicit Options.
//
// Empty or whitespace-only source is returned unchanged. The output ends
// with a newline exactly when the source did. Only the first qualifying
// brace on a line is acted upon; a line is assumed to carry at most one
// scope-affecting brace.
func ConvertWith(source string, opts Options) string {
	if strings.TrimSpace(source) == "" {
		return source
	}
	indent := opts.Indent
	if indent == "" {
		indent = defaultIndent
	}

	raw := splitLines(source)
	lines := make([][]rune, len(raw))
	for i, l := range raw {
		lines[i] = []rune(l)
	}
	protected := protectedPositions(source)

	var out []string
	depth := 0
	for idx, line := range lines {
		out, depth = reduceLine(out, line, idx, depth, indent, protected)
	}
	out = collapseBlankRuns(out)

	result := strings.Join(out, "\n")
	if strings.HasSuffix(source, "\n") {
		result += "\n"
	}
	return result
}

// reduceLine processes one source line against the current depth and returns
// the extended output plus the new depth. Depth is the only state carried
// across lines, threaded explicitly.
func reduceLine(out []string, line []rune, idx, depth int, indent string, protected protectedSet) ([]string, int) {
	for i, r := range line {
		switch {
		case r == '{' && isScopingOpen(line, i, idx, protected):
			// The header keeps its own leading whitespace; it introduces the
			// new block and sits at the parent's depth.
			header := strings.TrimRightFunc(string(line[:i]), unicode.IsSpace)
			comment := extractComment(string(line[i+1:]))
			if header != "" || comment != "" {
				rewritten := header
				if comment != "" {
					if header != "" {
						rewritten += "  "
					}
					rewritten += comment
				}
				out = append(out, rewritten)
			}
			return out, depth + 1

		case r == '}' && isScopingClose(line, i, idx, protected):
			if depth > 0 {
				depth--
			}
			// A close-brace line vanishes unless it carried a comment, which
			// survives alone at the new depth.
			if comment := extractComment(string(line[i+1:])); comment != "" {
				out = append(out, strings.Repeat(indent, depth)+comment)
			}
			return out, depth
		}
	}

	stripped := strings.TrimLeftFunc(string(line), unicode.IsSpace)
	if stripped == "" {
		return append(out, ""), depth
	}
	return append(out, strings.Repeat(indent, depth)+stripped), depth
}

// collapseBlankRuns drops every blank line that directly follows another
// blank line, so at most one survives per run.
func collapseBlankRuns(lines []string) []string {
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		if l == "" && len(out) > 0 && out[len(out)-1] == "" {
			continue
		}
		out = append(out, l)
	}
	return out
}

// splitLines splits on '\n' without keeping line endings, dropping the empty
// remainder after a trailing newline and any carriage return left by CRLF
// endings.
func splitLines(s string) []string {
	lines := strings.Split(s, "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" && strings.HasSuffix(s, "\n") {
		lines = lines[:len(lines)-1]
	}
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}
