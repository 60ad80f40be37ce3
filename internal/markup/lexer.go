package markup

import (
	"strings"
	"unicode"
)

// tokenKind discriminates the markup token stream.
type tokenKind int

const (
	tokText tokenKind = iota
	tokExpr
	tokOpenTag  // <Name attr="v"> or <Name ... />
	tokCloseTag // </Name>
	tokEOF
)

type token struct {
	kind       tokenKind
	text       string            // tokText: literal, tokExpr: expression source, tags: name
	attrs      []attrPair        // tokOpenTag only, in source order
	selfClosed bool              // tokOpenTag only
	line, col  int
}

// attrPair keeps source order so duplicate handling is deterministic.
type attrPair struct {
	name  string
	value string
}

type lexer struct {
	src  []rune
	pos  int
	line int
	col  int
}

func newLexer(src string) *lexer {
	return &lexer{src: []rune(src), line: 1, col: 1}
}

func (l *lexer) advance() rune {
	r := l.src[l.pos]
	l.pos++
	if r == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return r
}

func (l *lexer) peekAt(off int) (rune, bool) {
	if l.pos+off >= len(l.src) {
		return 0, false
	}
	return l.src[l.pos+off], true
}

// next returns the next token. Malformed markup never fails the lexer:
// anything that does not scan as a tag or expression falls back to text.
func (l *lexer) next() token {
	if l.pos >= len(l.src) {
		return token{kind: tokEOF, line: l.line, col: l.col}
	}

	startLine, startCol := l.line, l.col
	r, _ := l.peekAt(0)

	if r == '<' {
		if tok, ok := l.scanTag(); ok {
			return tok
		}
		// Bare '<' that is not a tag: literal text.
	}

	if r == '{' {
		if tok, ok := l.scanExpression(); ok {
			return tok
		}
	}

	// Literal text up to the next possible tag or expression start.
	var sb strings.Builder
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		if (c == '<' || c == '{') && sb.Len() > 0 {
			break
		}
		sb.WriteRune(l.advance())
	}
	return token{kind: tokText, text: sb.String(), line: startLine, col: startCol}
}

// scanExpression reads a {expr} interpolation. Returns false when no
// closing brace exists; the caller then treats the brace as text.
func (l *lexer) scanExpression() (token, bool) {
	startLine, startCol := l.line, l.col
	end := -1
	for off := 1; ; off++ {
		c, ok := l.peekAt(off)
		if !ok {
			break
		}
		if c == '}' {
			end = off
			break
		}
		if c == '<' || c == '{' {
			break
		}
	}
	if end < 0 {
		return token{}, false
	}

	l.advance() // consume '{'
	var sb strings.Builder
	for i := 1; i < end; i++ {
		sb.WriteRune(l.advance())
	}
	l.advance() // consume '}'
	return token{kind: tokExpr, text: strings.TrimSpace(sb.String()), line: startLine, col: startCol}, true
}

func (l *lexer) scanTag() (token, bool) {
	startLine, startCol := l.line, l.col

	// Comments are skipped entirely.
	if l.matchAhead("<!--") {
		l.skipComment()
		return l.next(), true
	}

	closing := false
	nameOff := 1
	if c, ok := l.peekAt(1); ok && c == '/' {
		closing = true
		nameOff = 2
	}

	c, ok := l.peekAt(nameOff)
	if !ok || !unicode.IsLetter(c) {
		return token{}, false
	}

	// Commit: consume '<' (and '/').
	for i := 0; i < nameOff; i++ {
		l.advance()
	}

	var name strings.Builder
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		if unicode.IsLetter(c) || unicode.IsDigit(c) || c == '-' || c == '_' {
			name.WriteRune(l.advance())
			continue
		}
		break
	}

	if closing {
		l.skipUntil('>')
		return token{kind: tokCloseTag, text: name.String(), line: startLine, col: startCol}, true
	}

	attrs, selfClosed := l.scanAttrs()
	return token{
		kind:       tokOpenTag,
		text:       name.String(),
		attrs:      attrs,
		selfClosed: selfClosed,
		line:       startLine,
		col:        startCol,
	}, true
}

func (l *lexer) scanAttrs() (attrs []attrPair, selfClosed bool) {
	for l.pos < len(l.src) {
		c := l.src[l.pos]

		switch {
		case unicode.IsSpace(c):
			l.advance()

		case c == '>':
			l.advance()
			return attrs, selfClosed

		case c == '/':
			l.advance()
			selfClosed = true

		default:
			var name strings.Builder
			for l.pos < len(l.src) {
				c := l.src[l.pos]
				if unicode.IsSpace(c) || c == '=' || c == '>' || c == '/' {
					break
				}
				name.WriteRune(l.advance())
			}
			if name.Len() == 0 {
				// Stray character; skip it rather than loop forever.
				l.advance()
				continue
			}

			value := ""
			if l.pos < len(l.src) && l.src[l.pos] == '=' {
				l.advance()
				value = l.scanAttrValue()
			}
			attrs = append(attrs, attrPair{name: name.String(), value: value})
		}
	}
	return attrs, selfClosed
}

func (l *lexer) scanAttrValue() string {
	if l.pos >= len(l.src) {
		return ""
	}

	var sb strings.Builder
	quote := l.src[l.pos]
	if quote == '"' || quote == '\'' {
		l.advance()
		for l.pos < len(l.src) && l.src[l.pos] != quote {
			sb.WriteRune(l.advance())
		}
		if l.pos < len(l.src) {
			l.advance() // closing quote
		}
		return sb.String()
	}

	for l.pos < len(l.src) {
		c := l.src[l.pos]
		if unicode.IsSpace(c) || c == '>' || c == '/' {
			break
		}
		sb.WriteRune(l.advance())
	}
	return sb.String()
}

func (l *lexer) matchAhead(s string) bool {
	for i, r := range s {
		c, ok := l.peekAt(i)
		if !ok || c != r {
			return false
		}
	}
	return true
}

func (l *lexer) skipComment() {
	for l.pos < len(l.src) {
		if l.matchAhead("-->") {
			l.advance()
			l.advance()
			l.advance()
			return
		}
		l.advance()
	}
}

func (l *lexer) skipUntil(r rune) {
	for l.pos < len(l.src) {
		if l.advance() == r {
			return
		}
	}
}
