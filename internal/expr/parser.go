package expr

import (
	"fmt"
	"strconv"
)

// Operator binding powers for the Pratt parser. Higher binds tighter.
var bindingPower = map[string]int{
	"||": 10,
	"&&": 20,
	"==": 30, "!=": 30,
	"<": 40, "<=": 40, ">": 40, ">=": 40,
	"+": 50, "-": 50,
	"*": 60, "/": 60, "%": 60,
}

type parser struct {
	tokens []Token
	pos    int
}

// Parse compiles an expression source string into an AST.
//
// The grammar is deliberately closed: literals, identifiers, member and
// index access, the arithmetic/comparison/logical operators and
// parentheses. No calls, no assignment, no statement forms; the parser
// is the audit surface of the evaluation sandbox.
func Parse(src string) (NodeExpr, error) {
	tokens, err := Lex(src)
	if err != nil {
		return nil, err
	}
	p := &parser{tokens: tokens}
	node, err := p.parseExpr(0)
	if err != nil {
		return nil, err
	}
	if p.peek().Type != TokenEOF {
		return nil, &SyntaxError{fmt.Sprintf("unexpected %q", p.peek().Text), p.peek().Pos}
	}
	return node, nil
}

func (p *parser) peek() Token  { return p.tokens[p.pos] }
func (p *parser) next() Token  { t := p.tokens[p.pos]; p.pos++; return t }
func (p *parser) expect(tt TokenType, what string) (Token, error) {
	t := p.next()
	if t.Type != tt {
		return t, &SyntaxError{fmt.Sprintf("expected %s, got %q", what, t.Text), t.Pos}
	}
	return t, nil
}

func (p *parser) parseExpr(minBP int) (NodeExpr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}

	for {
		t := p.peek()
		if t.Type != TokenOperator {
			break
		}
		bp, ok := bindingPower[t.Text]
		if !ok || bp <= minBP {
			break
		}
		p.next()
		right, err := p.parseExpr(bp)
		if err != nil {
			return nil, err
		}
		left = &Binary{Op: t.Text, Left: left, Right: right}
	}
	return left, nil
}

func (p *parser) parseUnary() (NodeExpr, error) {
	t := p.peek()
	if t.Type == TokenOperator && (t.Text == "!" || t.Text == "-") {
		p.next()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &Unary{Op: t.Text, Operand: operand}, nil
	}
	return p.parsePostfix()
}

func (p *parser) parsePostfix() (NodeExpr, error) {
	node, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}

	for {
		switch p.peek().Type {
		case TokenDot:
			p.next()
			name, err := p.expect(TokenIdent, "property name")
			if err != nil {
				return nil, err
			}
			node = &Member{Target: node, Name: name.Text}

		case TokenLBracket:
			p.next()
			key, err := p.parseExpr(0)
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(TokenRBracket, "']'"); err != nil {
				return nil, err
			}
			node = &Index{Target: node, Key: key}

		case TokenLParen:
			return nil, &SyntaxError{"function calls are not allowed", p.peek().Pos}

		default:
			return node, nil
		}
	}
}

func (p *parser) parsePrimary() (NodeExpr, error) {
	t := p.next()
	switch t.Type {
	case TokenNumber:
		f, err := strconv.ParseFloat(t.Text, 64)
		if err != nil {
			return nil, &SyntaxError{fmt.Sprintf("bad number %q", t.Text), t.Pos}
		}
		return &Literal{Value: f}, nil

	case TokenString:
		return &Literal{Value: t.Text}, nil

	case TokenIdent:
		switch t.Text {
		case "true":
			return &Literal{Value: true}, nil
		case "false":
			return &Literal{Value: false}, nil
		case "null", "nil":
			return &Literal{Value: nil}, nil
		}
		return &Ident{Name: t.Text}, nil

	case TokenLParen:
		inner, err := p.parseExpr(0)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TokenRParen, "')'"); err != nil {
			return nil, err
		}
		return inner, nil

	default:
		return nil, &SyntaxError{fmt.Sprintf("unexpected %q", t.Text), t.Pos}
	}
}
