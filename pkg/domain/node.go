package domain

// NodeKind discriminates the members of a parsed template tree.
type NodeKind string

const (
	// KindElement is an opaque passthrough HTML element (unknown tag).
	KindElement NodeKind = "element"
	// KindComponent is a reference to a registered component.
	KindComponent NodeKind = "component"
	// KindText is literal text content.
	KindText NodeKind = "text"
	// KindExpression is an interpolated expression, e.g. {user.name}.
	KindExpression NodeKind = "expression"
)

// Node is one element of the parsed template tree.
//
// Nodes are immutable once parsed: the parser builds the tree, the
// renderer only reads it. A new template submission produces a new tree.
type Node struct {
	Kind NodeKind `json:"kind" yaml:"kind"`

	// Name is the tag or component name. For KindText it is empty and
	// for KindExpression it holds the raw expression source.
	Name string `json:"name,omitempty" yaml:"name,omitempty"`

	// Text holds literal content for KindText nodes.
	Text string `json:"text,omitempty" yaml:"text,omitempty"`

	// Attributes are the normalized attribute pairs. Keys have been run
	// through attribute canonicalization by the parser; reserved
	// positioning/internal keys are preserved verbatim.
	Attributes map[string]string `json:"attributes,omitempty" yaml:"attributes,omitempty"`

	// Children are the ordered child nodes.
	Children []*Node `json:"children,omitempty" yaml:"children,omitempty"`

	// Line and Column locate the node in the source markup for error
	// reporting. Zero for trees built by the visual editor.
	Line   int `json:"line,omitempty" yaml:"line,omitempty"`
	Column int `json:"column,omitempty" yaml:"column,omitempty"`
}

// Attr returns the attribute value and whether it was present.
func (n *Node) Attr(name string) (string, bool) {
	v, ok := n.Attributes[name]
	return v, ok
}

// AttrOr returns the attribute value, or fallback when absent.
func (n *Node) AttrOr(name, fallback string) string {
	if v, ok := n.Attributes[name]; ok {
		return v
	}
	return fallback
}
