package markup

import (
	"strings"

	"github.com/quiltspace/quilt/pkg/domain"
	"github.com/quiltspace/quilt/pkg/registry"
)

// RootName is the name of the synthetic container node wrapping every
// parsed template.
const RootName = "template"

// Parser converts raw markup into a validated template node tree.
//
// Unknown tags are opaque passthrough elements, not failures: only
// registered component names used incorrectly (bad nesting, disallowed
// children, missing required parent) produce structural errors.
type Parser struct {
	reg *registry.Registry
}

// NewParser creates a parser validating against the given registry.
func NewParser(reg *registry.Registry) *Parser {
	return &Parser{reg: reg}
}

// Parse tokenizes and parses markup, normalizes attributes and runs
// structural validation. On validation failure it returns the full list
// of defects as a domain.StructuralErrors.
func (p *Parser) Parse(src string) (*domain.Node, error) {
	root := p.buildTree(src)
	if err := p.Validate(root); err != nil {
		return nil, err
	}
	return root, nil
}

// Validate runs structural validation over an already-built tree. The
// visual editor constructs trees interactively instead of parsing text;
// both paths converge here so they obey identical rules.
func (p *Parser) Validate(root *domain.Node) error {
	var errs domain.StructuralErrors
	p.validateNode(root, nil, &errs)
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// NormalizeTree canonicalizes attribute names in place on an
// editor-built tree, giving it the same shape a parsed tree has.
func (p *Parser) NormalizeTree(root *domain.Node) {
	if root == nil {
		return
	}
	if len(root.Attributes) > 0 {
		pairs := make([]attrPair, 0, len(root.Attributes))
		for k, v := range root.Attributes {
			pairs = append(pairs, attrPair{name: k, value: v})
		}
		root.Attributes = normalizeAttrs(pairs)
	}
	for _, child := range root.Children {
		p.NormalizeTree(child)
	}
}

func (p *Parser) buildTree(src string) *domain.Node {
	root := &domain.Node{Kind: domain.KindElement, Name: RootName}
	stack := []*domain.Node{root}
	lx := newLexer(src)

	appendChild := func(n *domain.Node) {
		parent := stack[len(stack)-1]
		parent.Children = append(parent.Children, n)
	}

	for {
		tok := lx.next()
		if tok.kind == tokEOF {
			break
		}

		switch tok.kind {
		case tokText:
			if strings.TrimSpace(tok.text) == "" {
				continue
			}
			appendChild(&domain.Node{
				Kind: domain.KindText,
				Text: tok.text,
				Line: tok.line, Column: tok.col,
			})

		case tokExpr:
			appendChild(&domain.Node{
				Kind: domain.KindExpression,
				Name: tok.text,
				Line: tok.line, Column: tok.col,
			})

		case tokOpenTag:
			node := &domain.Node{
				Kind:       p.kindFor(tok.text),
				Name:       tok.text,
				Attributes: normalizeAttrs(tok.attrs),
				Line:       tok.line, Column: tok.col,
			}
			appendChild(node)
			if !tok.selfClosed && !isVoidElement(tok.text) {
				stack = append(stack, node)
			}

		case tokCloseTag:
			// Close the nearest matching open tag; unmatched closers are
			// ignored so sloppy markup degrades instead of cascading.
			for i := len(stack) - 1; i > 0; i-- {
				if stack[i].Name == tok.text {
					stack = stack[:i]
					break
				}
			}
		}
	}

	return root
}

func (p *Parser) kindFor(name string) domain.NodeKind {
	if p.reg != nil && p.reg.Has(name) {
		return domain.KindComponent
	}
	return domain.KindElement
}

func (p *Parser) validateNode(n *domain.Node, parent *domain.Node, errs *domain.StructuralErrors) {
	if n.Kind == domain.KindComponent {
		desc, err := p.reg.Lookup(n.Name)
		if err != nil {
			// A component-kind node can only exist for a registered name
			// on the parse path, but editor-built trees can carry stale
			// names after a registry change.
			*errs = append(*errs, &domain.StructuralError{
				Component: n.Name,
				Line:      n.Line, Column: n.Column,
				Reason: "unknown component",
			})
			return
		}

		if desc.RequiresParent != "" {
			parentName := ""
			if parent != nil {
				parentName = parent.Name
			}
			if parent == nil || parent.Kind != domain.KindComponent || parentName != desc.RequiresParent {
				*errs = append(*errs, &domain.StructuralError{
					Component: n.Name,
					Line:      n.Line, Column: n.Column,
					Reason: "must be an immediate child of " + desc.RequiresParent,
				})
			}
		}

		for _, child := range n.Children {
			if desc.AcceptsChildren.None {
				*errs = append(*errs, &domain.StructuralError{
					Component: n.Name,
					Line:      child.Line, Column: child.Column,
					Reason: "accepts no children",
				})
				break
			}
			if child.Kind == domain.KindComponent && !desc.AcceptsChildren.Allows(child.Name) {
				*errs = append(*errs, &domain.StructuralError{
					Component: n.Name,
					Line:      child.Line, Column: child.Column,
					Reason: "does not accept child component " + child.Name,
				})
			}
		}
	}

	for _, child := range n.Children {
		p.validateNode(child, n, errs)
	}
}

// voidElements are HTML tags that never take children; open tags for
// these do not push onto the parse stack.
var voidElements = map[string]struct{}{
	"area": {}, "base": {}, "br": {}, "col": {}, "embed": {},
	"hr": {}, "img": {}, "input": {}, "link": {}, "meta": {},
	"source": {}, "track": {}, "wbr": {},
}

func isVoidElement(name string) bool {
	_, ok := voidElements[strings.ToLower(name)]
	return ok
}
