package expr

// NodeExpr is the interface implemented by every AST node.
type NodeExpr interface {
	exprNode()
}

// Literal is a number, string or boolean constant.
type Literal struct {
	Value any
}

// Ident is a bare variable or namespace reference.
type Ident struct {
	Name string
}

// Member is a dotted property access, e.g. owner.name.
type Member struct {
	Target NodeExpr
	Name   string
}

// Index is a bracket access, e.g. posts[0] or tags[i].
type Index struct {
	Target NodeExpr
	Key    NodeExpr
}

// Unary is !x or -x.
type Unary struct {
	Op      string
	Operand NodeExpr
}

// Binary is any infix operation over the closed operator set.
type Binary struct {
	Op    string
	Left  NodeExpr
	Right NodeExpr
}

func (*Literal) exprNode() {}
func (*Ident) exprNode()   {}
func (*Member) exprNode()  {}
func (*Index) exprNode()   {}
func (*Unary) exprNode()   {}
func (*Binary) exprNode()  {}
