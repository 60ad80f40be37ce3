package render

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/quiltspace/quilt/internal/expr"
	"github.com/quiltspace/quilt/internal/markup"
	"github.com/quiltspace/quilt/internal/state"
	"github.com/quiltspace/quilt/pkg/domain"
	"github.com/quiltspace/quilt/pkg/registry"
)

// Renderer walks a validated template tree and produces the output
// tree: components resolved through their descriptors, expressions
// evaluated, styling props extracted.
//
// Rendering is a pure function of (tree, state snapshot, profile data):
// identical inputs produce identical output trees.
type Renderer struct {
	reg       *registry.Registry
	displays  map[string]DisplayFunc
	sanitizer *bluemonday.Policy
	logger    *slog.Logger
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithLogger sets the logger for degradable evaluation errors.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Renderer) { r.logger = logger }
}

// WithDisplay overrides or adds the display logic for one component
// name. Dispatch is resolved here, once, not per render call.
func WithDisplay(name string, fn DisplayFunc) Option {
	return func(r *Renderer) { r.displays[name] = fn }
}

// New creates a renderer bound to a registry.
func New(reg *registry.Registry, opts ...Option) *Renderer {
	r := &Renderer{
		reg:       reg,
		displays:  builtinDisplays(),
		sanitizer: markup.NewSanitizer(reg),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	return r
}

// Render produces the output tree for a template against a state
// runtime and read-only profile data.
func (r *Renderer) Render(ctx context.Context, tree *domain.Node, rt *state.Runtime, profile *domain.ProfileData) (*domain.Node, error) {
	rc := &renderContext{
		ctx:     ctx,
		runtime: rt,
		profile: profile,
		locals:  expr.MapEnv{},
	}

	out := &domain.Node{Kind: domain.KindElement, Name: "div", Attributes: map[string]string{
		"class": "quilt-profile",
	}}
	out.Children = r.renderChildren(rc, tree)
	return out, nil
}

// RenderHTML renders the tree and serializes it to sanitized HTML.
func (r *Renderer) RenderHTML(ctx context.Context, tree *domain.Node, rt *state.Runtime, profile *domain.ProfileData) (string, error) {
	out, err := r.Render(ctx, tree, rt, profile)
	if err != nil {
		return "", err
	}
	return r.sanitizer.Sanitize(SerializeHTML(out)), nil
}

// renderContext carries the per-walk evaluation environment. locals
// hold loop bindings; they shadow state variables which shadow profile
// namespaces.
type renderContext struct {
	ctx     context.Context
	runtime *state.Runtime
	profile *domain.ProfileData
	locals  expr.MapEnv
}

func (rc *renderContext) env() expr.Env {
	return expr.ChainEnv{rc.locals, rc.runtime, profileEnv{rc.profile}}
}

// withLocal returns a child context with one extra loop binding.
func (rc *renderContext) withLocals(bindings map[string]any) *renderContext {
	merged := make(expr.MapEnv, len(rc.locals)+len(bindings))
	for k, v := range rc.locals {
		merged[k] = v
	}
	for k, v := range bindings {
		merged[k] = v
	}
	child := *rc
	child.locals = merged
	return &child
}

type profileEnv struct {
	data *domain.ProfileData
}

func (p profileEnv) Lookup(name string) (any, bool) {
	return p.data.Lookup(name)
}

func (r *Renderer) renderChildren(rc *renderContext, n *domain.Node) []*domain.Node {
	var out []*domain.Node
	for _, child := range n.Children {
		out = append(out, r.renderNode(rc, child)...)
	}
	return out
}

// renderNode renders one node into zero or more output nodes. Control
// flow components expand to their branch output; action components
// render to nothing; evaluation failures degrade to nothing.
func (r *Renderer) renderNode(rc *renderContext, n *domain.Node) []*domain.Node {
	switch n.Kind {
	case domain.KindText:
		return []*domain.Node{{Kind: domain.KindText, Text: n.Text}}

	case domain.KindExpression:
		val, err := expr.Eval(n.Name, rc.env())
		if err != nil {
			// Syntax errors degrade to empty output, logged.
			r.logger.Warn("expression failed", "expr", n.Name, "err", err)
			return nil
		}
		text := expr.Stringify(val)
		if text == "" {
			return nil
		}
		return []*domain.Node{{Kind: domain.KindText, Text: text}}

	case domain.KindElement:
		return []*domain.Node{r.renderElement(rc, n)}

	case domain.KindComponent:
		return r.renderComponent(rc, n)
	}
	return nil
}

// renderElement passes an opaque element through, interpolating
// attribute values and extracting style props.
func (r *Renderer) renderElement(rc *renderContext, n *domain.Node) *domain.Node {
	out := &domain.Node{Kind: domain.KindElement, Name: n.Name}
	out.Attributes = r.resolveAttrs(rc, n.Attributes)
	extractStyle(out)
	out.Children = r.renderChildren(rc, n)
	return out
}

func (r *Renderer) renderComponent(rc *renderContext, n *domain.Node) []*domain.Node {
	desc, err := r.reg.Lookup(n.Name)
	if err != nil {
		// Editor trees can carry stale names; degrade rather than blank
		// the page (parse-path trees cannot get here).
		r.logger.Warn("unregistered component at render time", "component", n.Name)
		return nil
	}

	// Control flow and state declaration are engine concerns; everything
	// else dispatches to display logic.
	switch n.Name {
	case "Var":
		r.declareVar(rc, n, desc)
		return nil
	case "If":
		return r.renderIf(rc, n)
	case "ElseIf", "Else":
		// Rendered by the enclosing If; reaching one directly means the
		// tree skipped validation.
		return nil
	case "For":
		return r.renderFor(rc, n, desc)
	case "Repeat":
		return r.renderRepeat(rc, n, desc)
	}

	props, perr := r.resolveProps(rc, n, desc)
	if perr != nil {
		r.logger.Warn("component props invalid", "component", n.Name, "err", perr)
		return nil
	}

	display, ok := r.displays[n.Name]
	if !ok {
		display = genericDisplay
	}

	inst := &Instance{
		Node:       n,
		Descriptor: desc,
		Props:      props,
		Styles:     extractStyleProps(r.resolveAttrs(rc, n.Attributes)),
	}

	var children []*domain.Node
	if !desc.AcceptsChildren.None {
		children = r.renderChildren(rc, n)
	}
	return display(inst, children)
}

// resolveAttrs interpolates {expr} fragments inside attribute values.
func (r *Renderer) resolveAttrs(rc *renderContext, attrs map[string]string) map[string]string {
	if len(attrs) == 0 {
		return nil
	}
	out := make(map[string]string, len(attrs))
	for k, v := range attrs {
		out[k] = r.interpolate(rc, v)
	}
	return out
}

// interpolate substitutes {expr} spans inside an attribute value.
// Unresolved references become empty, same as body expressions.
func (r *Renderer) interpolate(rc *renderContext, s string) string {
	if !strings.Contains(s, "{") {
		return s
	}
	var sb strings.Builder
	for {
		open := strings.IndexByte(s, '{')
		if open < 0 {
			sb.WriteString(s)
			return sb.String()
		}
		closeIdx := strings.IndexByte(s[open:], '}')
		if closeIdx < 0 {
			sb.WriteString(s)
			return sb.String()
		}
		sb.WriteString(s[:open])
		src := s[open+1 : open+closeIdx]
		val, err := expr.Eval(strings.TrimSpace(src), rc.env())
		if err == nil {
			sb.WriteString(expr.Stringify(val))
		}
		s = s[open+closeIdx+1:]
	}
}
