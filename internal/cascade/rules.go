package cascade

import (
	"strings"

	"github.com/gorilla/css/scanner"
)

// rule is one top-level unit of a stylesheet: either an ordinary
// selector rule, or a verbatim fragment (at-rules, at-statements and
// anything unbalanced that must pass through untouched).
type rule struct {
	selector string
	body     string
	verbatim string
}

// splitRules tokenizes css into top-level rules. At-rules with blocks
// (@media, @keyframes, ...) and at-statements (@import) come back
// verbatim; they cannot be meaningfully scoped or boosted. Unbalanced
// input never fails: whatever cannot be parsed into a rule is returned
// as a verbatim fragment in position.
func splitRules(css string) []rule {
	s := scanner.New(css)
	var rules []rule
	var prelude strings.Builder
	atRule := false

	flushVerbatim := func(extra string) {
		if frag := strings.TrimSpace(prelude.String() + extra); frag != "" {
			rules = append(rules, rule{verbatim: frag})
		}
		prelude.Reset()
		atRule = false
	}

	for {
		tok := s.Next()
		switch tok.Type {
		case scanner.TokenEOF:
			flushVerbatim("")
			return rules

		case scanner.TokenError:
			// The tokenizer gave up mid-input; keep what we have.
			flushVerbatim("")
			return rules

		case scanner.TokenAtKeyword:
			atRule = true
			prelude.WriteString(tok.Value)

		case scanner.TokenChar:
			switch tok.Value {
			case ";":
				if atRule {
					// At-statement, e.g. @import.
					flushVerbatim(";")
				} else if strings.TrimSpace(prelude.String()) != "" {
					// Selector text followed by a stray semicolon is
					// malformed; pass it through rather than drop it.
					flushVerbatim("")
				} else {
					// Stray semicolon between rules, stripped.
					prelude.Reset()
				}

			case "{":
				body, closed := scanBlock(s)
				sel := strings.TrimSpace(prelude.String())
				switch {
				case !closed:
					// Unbalanced braces: verbatim, erring toward
					// visually broken over dropped.
					flushVerbatim("{" + body)
				case atRule:
					flushVerbatim("{" + body + "}")
				case sel == "":
					flushVerbatim("{" + body + "}")
				default:
					rules = append(rules, rule{selector: sel, body: body})
					prelude.Reset()
				}
				atRule = false

			default:
				prelude.WriteString(tok.Value)
			}

		default:
			prelude.WriteString(tok.Value)
		}
	}
}

// scanBlock consumes tokens until the brace that closes the block whose
// opening brace was just read. Nested blocks stay inside the body.
// closed reports whether the closing brace was found before EOF.
func scanBlock(s *scanner.Scanner) (body string, closed bool) {
	var sb strings.Builder
	depth := 1
	for {
		tok := s.Next()
		switch tok.Type {
		case scanner.TokenEOF, scanner.TokenError:
			return sb.String(), false
		case scanner.TokenChar:
			switch tok.Value {
			case "{":
				depth++
			case "}":
				depth--
				if depth == 0 {
					return sb.String(), true
				}
			}
		}
		sb.WriteString(tok.Value)
	}
}

// splitSelectors splits a selector list on top-level commas, honoring
// parentheses, brackets and strings so :is(a, b) stays whole.
func splitSelectors(sel string) []string {
	var parts []string
	var sb strings.Builder
	depth := 0
	var quote rune

	for _, r := range sel {
		if quote != 0 {
			sb.WriteRune(r)
			if r == quote {
				quote = 0
			}
			continue
		}
		switch r {
		case '"', '\'':
			quote = r
			sb.WriteRune(r)
		case '(', '[':
			depth++
			sb.WriteRune(r)
		case ')', ']':
			depth--
			sb.WriteRune(r)
		case ',':
			if depth == 0 {
				parts = append(parts, strings.TrimSpace(sb.String()))
				sb.Reset()
				continue
			}
			sb.WriteRune(r)
		default:
			sb.WriteRune(r)
		}
	}
	if last := strings.TrimSpace(sb.String()); last != "" {
		parts = append(parts, last)
	}
	return parts
}

// splitDeclarations splits a rule body on top-level semicolons,
// honoring parentheses and strings so url(a;b) and content values stay
// whole. Empty declarations are dropped.
func splitDeclarations(body string) []string {
	var decls []string
	var sb strings.Builder
	depth := 0
	var quote rune

	for _, r := range body {
		if quote != 0 {
			sb.WriteRune(r)
			if r == quote {
				quote = 0
			}
			continue
		}
		switch r {
		case '"', '\'':
			quote = r
			sb.WriteRune(r)
		case '(':
			depth++
			sb.WriteRune(r)
		case ')':
			depth--
			sb.WriteRune(r)
		case ';':
			if depth == 0 {
				if d := strings.TrimSpace(sb.String()); d != "" {
					decls = append(decls, d)
				}
				sb.Reset()
				continue
			}
			sb.WriteRune(r)
		default:
			sb.WriteRune(r)
		}
	}
	if d := strings.TrimSpace(sb.String()); d != "" {
		decls = append(decls, d)
	}
	return decls
}
