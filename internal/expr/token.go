package expr

import (
	"fmt"
	"strings"
	"unicode"
)

// TokenType identifies the lexical class of a token.
type TokenType int

const (
	TokenEOF TokenType = iota
	TokenNumber
	TokenString
	TokenIdent
	TokenOperator // + - * / % == != < <= > >= && || !
	TokenLParen
	TokenRParen
	TokenLBracket
	TokenRBracket
	TokenDot
	TokenComma
)

// Token is one lexical unit of an expression.
type Token struct {
	Type TokenType
	Text string
	Pos  int
}

// SyntaxError reports a malformed expression with its offset.
type SyntaxError struct {
	Message string
	Pos     int
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s at position %d", e.Message, e.Pos)
}

// wordOperators maps keyword spellings onto their symbolic operators so
// the parser only ever sees one form.
var wordOperators = map[string]string{
	"and": "&&",
	"or":  "||",
	"not": "!",
}

// Lex tokenizes an expression over the closed operator set. Anything
// outside the set (assignment, function calls, semicolons) is a syntax
// error; the sandbox boundary starts here.
func Lex(src string) ([]Token, error) {
	var tokens []Token
	runes := []rune(src)
	i := 0

	for i < len(runes) {
		r := runes[i]

		switch {
		case unicode.IsSpace(r):
			i++

		case unicode.IsDigit(r) || (r == '.' && i+1 < len(runes) && unicode.IsDigit(runes[i+1])):
			start := i
			seenDot := false
			for i < len(runes) && (unicode.IsDigit(runes[i]) || (runes[i] == '.' && !seenDot)) {
				if runes[i] == '.' {
					seenDot = true
				}
				i++
			}
			tokens = append(tokens, Token{TokenNumber, string(runes[start:i]), start})

		case r == '\'' || r == '"':
			quote := r
			start := i
			i++
			var sb strings.Builder
			closed := false
			for i < len(runes) {
				if runes[i] == '\\' && i+1 < len(runes) {
					sb.WriteRune(runes[i+1])
					i += 2
					continue
				}
				if runes[i] == quote {
					closed = true
					i++
					break
				}
				sb.WriteRune(runes[i])
				i++
			}
			if !closed {
				return nil, &SyntaxError{"unterminated string", start}
			}
			tokens = append(tokens, Token{TokenString, sb.String(), start})

		case unicode.IsLetter(r) || r == '_':
			start := i
			for i < len(runes) && (unicode.IsLetter(runes[i]) || unicode.IsDigit(runes[i]) || runes[i] == '_') {
				i++
			}
			word := string(runes[start:i])
			if op, ok := wordOperators[strings.ToLower(word)]; ok {
				tokens = append(tokens, Token{TokenOperator, op, start})
			} else {
				tokens = append(tokens, Token{TokenIdent, word, start})
			}

		case r == '(':
			tokens = append(tokens, Token{TokenLParen, "(", i})
			i++
		case r == ')':
			tokens = append(tokens, Token{TokenRParen, ")", i})
			i++
		case r == '[':
			tokens = append(tokens, Token{TokenLBracket, "[", i})
			i++
		case r == ']':
			tokens = append(tokens, Token{TokenRBracket, "]", i})
			i++
		case r == '.':
			tokens = append(tokens, Token{TokenDot, ".", i})
			i++
		case r == ',':
			tokens = append(tokens, Token{TokenComma, ",", i})
			i++

		case strings.ContainsRune("+-*/%", r):
			tokens = append(tokens, Token{TokenOperator, string(r), i})
			i++

		case r == '=' || r == '!' || r == '<' || r == '>':
			if i+1 < len(runes) && runes[i+1] == '=' {
				tokens = append(tokens, Token{TokenOperator, string(r) + "=", i})
				i += 2
			} else if r == '=' {
				return nil, &SyntaxError{"assignment is not allowed", i}
			} else {
				tokens = append(tokens, Token{TokenOperator, string(r), i})
				i++
			}

		case r == '&' || r == '|':
			if i+1 < len(runes) && runes[i+1] == r {
				tokens = append(tokens, Token{TokenOperator, string(r) + string(r), i})
				i += 2
			} else {
				return nil, &SyntaxError{fmt.Sprintf("unexpected character %q", r), i}
			}

		default:
			return nil, &SyntaxError{fmt.Sprintf("unexpected character %q", r), i}
		}
	}

	tokens = append(tokens, Token{TokenEOF, "", len(runes)})
	return tokens, nil
}
