package render

import (
	"github.com/spf13/cast"

	"github.com/quiltspace/quilt/internal/expr"
	"github.com/quiltspace/quilt/pkg/domain"
)

type varProps struct {
	Name      string   `mapstructure:"name"`
	Initial   string   `mapstructure:"initial"`
	Type      string   `mapstructure:"type"`
	Persisted bool     `mapstructure:"persisted"`
	Min       *float64 `mapstructure:"min"`
	Max       *float64 `mapstructure:"max"`
}

func (r *Renderer) declareVar(rc *renderContext, n *domain.Node, desc *domain.ComponentDescriptor) {
	props, err := r.resolveProps(rc, n, desc)
	if err != nil {
		r.logger.Warn("Var props invalid", "err", err)
		return
	}
	var vp varProps
	if err := decodeProps(props, &vp); err != nil {
		r.logger.Warn("Var props decode failed", "err", err)
		return
	}

	v := domain.Variable{
		Name:      vp.Name,
		Type:      domain.VarType(vp.Type),
		Value:     vp.Initial,
		Persisted: vp.Persisted,
		Min:       vp.Min,
		Max:       vp.Max,
	}
	if err := rc.runtime.Declare(rc.ctx, v); err != nil {
		r.logger.Warn("Var declaration failed", "var", vp.Name, "err", err)
	}
}

// renderIf evaluates the branch chain: the If's own children up to the
// first ElseIf/Else form the primary branch; each ElseIf opens an
// alternative; Else closes the chain.
func (r *Renderer) renderIf(rc *renderContext, n *domain.Node) []*domain.Node {
	condition := n.AttrOr("condition", "")
	primary, branches := splitBranches(n)

	ok, err := expr.EvalBool(r.interpolate(rc, condition), rc.env())
	if err != nil {
		r.logger.Warn("If condition failed", "condition", condition, "err", err)
		ok = false
	}
	if ok {
		return r.renderNodes(rc, primary)
	}

	for _, b := range branches {
		if b.node.Name == "Else" {
			return r.renderChildren(rc, b.node)
		}
		cond := b.node.AttrOr("condition", "")
		hit, err := expr.EvalBool(r.interpolate(rc, cond), rc.env())
		if err != nil {
			r.logger.Warn("ElseIf condition failed", "condition", cond, "err", err)
			continue
		}
		if hit {
			return r.renderChildren(rc, b.node)
		}
	}
	return nil
}

type branch struct {
	node *domain.Node
}

// splitBranches partitions an If's children into the primary branch and
// the ElseIf/Else alternatives.
func splitBranches(n *domain.Node) (primary []*domain.Node, branches []branch) {
	for _, child := range n.Children {
		if child.Kind == domain.KindComponent && (child.Name == "ElseIf" || child.Name == "Else") {
			branches = append(branches, branch{node: child})
			continue
		}
		if len(branches) == 0 {
			primary = append(primary, child)
		}
		// Non-branch nodes after the first ElseIf/Else are dead; the
		// original editor never produces them.
	}
	return primary, branches
}

type forProps struct {
	Source string  `mapstructure:"source"`
	As     string  `mapstructure:"as"`
	Index  string  `mapstructure:"index"`
	Limit  float64 `mapstructure:"limit"`
}

func (r *Renderer) renderFor(rc *renderContext, n *domain.Node, desc *domain.ComponentDescriptor) []*domain.Node {
	props, err := r.resolveProps(rc, n, desc)
	if err != nil {
		r.logger.Warn("For props invalid", "err", err)
		return nil
	}
	var fp forProps
	if err := decodeProps(props, &fp); err != nil {
		r.logger.Warn("For props decode failed", "err", err)
		return nil
	}
	if fp.As == "" {
		fp.As = "item"
	}

	src, err := expr.Eval(fp.Source, rc.env())
	if err != nil {
		r.logger.Warn("For source failed", "source", fp.Source, "err", err)
		return nil
	}
	list, ok := src.([]any)
	if !ok {
		return nil
	}

	limit := len(list)
	if fp.Limit > 0 && int(fp.Limit) < limit {
		limit = int(fp.Limit)
	}

	var out []*domain.Node
	for i := 0; i < limit; i++ {
		bindings := map[string]any{fp.As: list[i]}
		if fp.Index != "" {
			bindings[fp.Index] = float64(i)
		}
		out = append(out, r.renderChildren(rc.withLocals(bindings), n)...)
	}
	return out
}

type repeatProps struct {
	Count float64 `mapstructure:"count"`
	As    string  `mapstructure:"as"`
}

func (r *Renderer) renderRepeat(rc *renderContext, n *domain.Node, desc *domain.ComponentDescriptor) []*domain.Node {
	props, err := r.resolveProps(rc, n, desc)
	if err != nil {
		r.logger.Warn("Repeat props invalid", "err", err)
		return nil
	}
	var rp repeatProps
	if err := decodeProps(props, &rp); err != nil {
		r.logger.Warn("Repeat props decode failed", "err", err)
		return nil
	}
	if rp.As == "" {
		rp.As = "i"
	}

	count := int(rp.Count)
	const maxRepeat = 1000 // adversarial templates don't get unbounded output
	if count > maxRepeat {
		count = maxRepeat
	}

	var out []*domain.Node
	for i := 0; i < count; i++ {
		out = append(out, r.renderChildren(rc.withLocals(map[string]any{rp.As: float64(i)}), n)...)
	}
	return out
}

func (r *Renderer) renderNodes(rc *renderContext, nodes []*domain.Node) []*domain.Node {
	var out []*domain.Node
	for _, n := range nodes {
		out = append(out, r.renderNode(rc, n)...)
	}
	return out
}

// actionsOf serializes the action components nested under an
// interactive component into wire form for the host's client runtime.
func actionsOf(children []*domain.Node) []map[string]any {
	var out []map[string]any
	for _, c := range children {
		if c.Kind != domain.KindComponent {
			continue
		}
		verb := clientVerb(c.Name)
		if verb == "" {
			continue
		}
		entry := map[string]any{"verb": verb}
		for k, v := range c.Attributes {
			entry[k] = cast.ToString(v)
		}
		out = append(out, entry)
	}
	return out
}

// clientVerb maps action component names onto state runtime verbs.
func clientVerb(component string) string {
	switch component {
	case "Set":
		return "set"
	case "Increment":
		return "increment"
	case "Toggle":
		return "toggle"
	case "Push":
		return "push"
	case "Pop":
		return "pop"
	case "Show":
		return "show"
	case "Hide":
		return "hide"
	}
	return ""
}
