package caveinfo

import "strings"

type tokenKind int

const (
	tokWord tokenKind = iota
	tokLBrace
	tokRBrace
	tokEOF
)

type token struct {
	kind   tokenKind
	text   string
	line   int
	column int
}

// barewordChars are the characters the brace-format grammar accepts inside a
// bareword token: alphanumerics plus the game's small extra set. "!" is only
// needed by the newyear/216 variants but is accepted
// universally since unknown characters inside an otherwise well-formed
// token are harmless.
func isBarewordChar(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	case r == '.' || r == '_' || r == '-' || r == '$' || r == '!':
		return true
	}
	return false
}

// lexer tokenizes the brace format: bareword tokens, '{', '}', and
// '#'-to-end-of-line comments. commentsAllowed distinguishes the full
// caveinfo grammar, which skips comments, from the per-map-unit grammar,
// which does not recognize '#' comments. Both modes use the same bareword
// character set (isBarewordChar, including '.', '$' and '!') and treat
// spaces, tabs, newlines and carriage returns alike as whitespace.
type lexer struct {
	src            string
	pos            int
	line           int
	col            int
	commentsAllowed bool
}

func newLexer(src string, commentsAllowed bool) *lexer {
	return &lexer{src: src, pos: 0, line: 1, col: 1, commentsAllowed: commentsAllowed}
}

func (l *lexer) peekByte() byte {
	if l.pos >= len(l.src) {
		return 0
	}
	return l.src[l.pos]
}

func (l *lexer) advance() byte {
	b := l.src[l.pos]
	l.pos++
	if b == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return b
}

func (l *lexer) skipWhitespaceAndComments() {
	for l.pos < len(l.src) {
		b := l.peekByte()
		if b == ' ' || b == '\t' || b == '\n' || b == '\r' {
			l.advance()
			continue
		}
		if l.commentsAllowed && b == '#' {
			for l.pos < len(l.src) && l.peekByte() != '\n' {
				l.advance()
			}
			continue
		}
		break
	}
}

// next returns the next token in the stream.
func (l *lexer) next() token {
	l.skipWhitespaceAndComments()
	if l.pos >= len(l.src) {
		return token{kind: tokEOF, line: l.line, column: l.col}
	}

	startLine, startCol := l.line, l.col
	b := l.peekByte()

	switch b {
	case '{':
		l.advance()
		return token{kind: tokLBrace, text: "{", line: startLine, column: startCol}
	case '}':
		l.advance()
		return token{kind: tokRBrace, text: "}", line: startLine, column: startCol}
	}

	// Bareword. '{' and '}' always come back above as tokLBrace/tokRBrace;
	// a brace-wrapped word ("{foo}") is recognized by the parser, which
	// reads the word after a tokLBrace.
	var sb strings.Builder
	for l.pos < len(l.src) && isBarewordChar(rune(l.peekByte())) {
		sb.WriteByte(l.advance())
	}
	if sb.Len() == 0 {
		// Unrecognized byte: consume it as a one-byte word so the parser can
		// report it precisely instead of looping forever.
		sb.WriteByte(l.advance())
	}
	return token{kind: tokWord, text: sb.String(), line: startLine, column: startCol}
}

// wrappedWord reads a brace-wrapped token "{ ... }" once the opening brace
// has already been consumed by the caller. Used for tokens the grammar
// allows to be brace-wrapped for readability (e.g. negative numbers or
// tokens containing characters that would otherwise be ambiguous).
func (l *lexer) wrappedWord() string {
	var sb strings.Builder
	for l.pos < len(l.src) && l.peekByte() != '}' {
		sb.WriteByte(l.advance())
	}
	if l.peekByte() == '}' {
		l.advance()
	}
	return sb.String()
}
