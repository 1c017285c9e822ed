package uncurl

import "unicode"

// position is a 0-based (line, column) coordinate in the source text.
// Columns count runes, matching the per-line rune indexing used by the
// converter.
type position struct {
	line int
	col  int
}

// protectedSet records every coordinate that lies inside a string literal or
// a comment. A brace at a protected coordinate is never structural.
type protectedSet map[position]struct{}

func (p protectedSet) contains(line, col int) bool {
	_, ok := p[position{line: line, col: col}]
	return ok
}

// pyScanner is a minimal Python lexer that only resolves the token families
// relevant to brace protection: comments and string literals, including
// prefixed and triple-quoted forms. Everything else is skipped byte by byte.
type pyScanner struct {
	src  []rune
	off  int
	line int
	col  int
	out  protectedSet
}

// protectedPositions re-scans the source and returns the coordinates covered
// by string and comment tokens. Unterminated literals never fail the scan:
// whatever was collected before them is returned as-is.
func protectedPositions(source string) protectedSet {
	s := &pyScanner{src: []rune(source), out: make(protectedSet)}
	for !s.eof() {
		r := s.peek()
		switch {
		case r == '#':
			s.scanComment()
		case r == '\'' || r == '"':
			s.scanString(nil)
		case isIdentStart(r):
			s.scanIdent()
		default:
			s.bump()
		}
	}
	return s.out
}

func (s *pyScanner) eof() bool {
	return s.off >= len(s.src)
}

func (s *pyScanner) peek() rune {
	return s.peekAt(0)
}

func (s *pyScanner) peekAt(n int) rune {
	if s.off+n >= len(s.src) {
		return 0
	}
	return s.src[s.off+n]
}

func (s *pyScanner) bump() {
	if s.eof() {
		return
	}
	if s.src[s.off] == '\n' {
		s.line++
		s.col = 0
	} else {
		s.col++
	}
	s.off++
}

func (s *pyScanner) scanComment() {
	for !s.eof() && s.peek() != '\n' {
		s.out[position{line: s.line, col: s.col}] = struct{}{}
		s.bump()
	}
}

// scanIdent consumes an identifier run. When the run is a string prefix (r,
// b, u, f or a two-letter combination, any case) directly followed by a
// quote, the run belongs to the string token and is protected with it.
func (s *pyScanner) scanIdent() {
	start := s.off
	var run []position
	for !s.eof() && isIdentPart(s.peek()) {
		run = append(run, position{line: s.line, col: s.col})
		s.bump()
	}
	next := s.peek()
	if (next == '\'' || next == '"') && isStringPrefix(s.src[start:s.off]) {
		s.scanString(run)
	}
}

// scanString lexes one quoted literal starting at the current quote. pending
// carries the positions of an already-consumed prefix so that the full token
// span is protected on success. An unterminated literal commits nothing: a
// single-quoted literal cut off by a newline rewinds the cursor to just
// after its opening quote, and an unterminated triple-quoted literal simply
// runs out at EOF.
func (s *pyScanner) scanString(pending []position) {
	quote := s.peek()
	take := func() {
		pending = append(pending, position{line: s.line, col: s.col})
		s.bump()
	}
	take() // opening quote
	triple := false
	if s.peek() == quote && s.peekAt(1) == quote {
		take()
		take()
		triple = true
	}
	resumeOff, resumeLine, resumeCol := s.off, s.line, s.col

	closed := false
scan:
	for !s.eof() && !closed {
		switch r := s.peek(); {
		case r == '\\':
			// Backslash consumes the next rune, newline included; that is
			// how single-quoted literals span lines.
			take()
			if !s.eof() {
				take()
			}
		case r == quote && !triple:
			take()
			closed = true
		case r == quote && s.peekAt(1) == quote && s.peekAt(2) == quote:
			take()
			take()
			take()
			closed = true
		case r == '\n' && !triple:
			// Unterminated single-quoted literal; the newline stays for the
			// caller.
			break scan
		default:
			take()
		}
	}

	if !closed {
		if !triple {
			s.off, s.line, s.col = resumeOff, resumeLine, resumeCol
		}
		return
	}
	for _, p := range pending {
		s.out[p] = struct{}{}
	}
}

func isStringPrefix(run []rune) bool {
	if len(run) == 0 || len(run) > 2 {
		return false
	}
	for _, r := range run {
		switch r {
		case 'r', 'R', 'b', 'B', 'u', 'U', 'f', 'F':
		default:
			return false
		}
	}
	return true
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return isIdentStart(r) || unicode.IsDigit(r)
}
