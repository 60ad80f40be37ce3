package quilt

import (
	"context"
	"io"
	"log/slog"

	"github.com/quiltspace/quilt/internal/cascade"
	"github.com/quiltspace/quilt/internal/markup"
	"github.com/quiltspace/quilt/internal/render"
	"github.com/quiltspace/quilt/internal/state"
	"github.com/quiltspace/quilt/pkg/domain"
	"github.com/quiltspace/quilt/pkg/ports"
	"github.com/quiltspace/quilt/pkg/registry"
)

// Version is the library version, overridable at build time.
var Version = "0.1.0"

// Engine is the high-level entry point for the Quilt library.
// It wires the registry, parser, renderer and cascade engine behind a
// simplified API for consumers.
type Engine struct {
	reg       *registry.Registry
	parser    *markup.Parser
	renderer  *render.Renderer
	store     ports.StateStore
	logger    *slog.Logger
	container string

	displays map[string]render.DisplayFunc
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithStore injects the persisted-variable store. Without one,
// persisted variables behave like session variables.
func WithStore(store ports.StateStore) Option {
	return func(e *Engine) {
		e.store = store
	}
}

// WithRegistry replaces the default built-in component registry. The
// registry is sealed during New; register host components before
// passing it in.
func WithRegistry(reg *registry.Registry) Option {
	return func(e *Engine) {
		e.reg = reg
	}
}

// WithDisplay overrides or adds display logic for one component name.
func WithDisplay(name string, fn render.DisplayFunc) Option {
	return func(e *Engine) {
		e.displays[name] = fn
	}
}

// WithContainer sets the profile container element id used for CSS
// scoping (default "profile").
func WithContainer(id string) Option {
	return func(e *Engine) {
		e.container = id
	}
}

// New initializes a new Quilt Engine. By default it carries the
// built-in component vocabulary; hosts extend it via WithRegistry.
func New(opts ...Option) (*Engine, error) {
	eng := &Engine{
		container: "profile",
		displays:  map[string]render.DisplayFunc{},
	}

	for _, opt := range opts {
		opt(eng)
	}

	if eng.reg == nil {
		eng.reg = registry.Builtins()
	}
	// No registration after construction; component resolution must be
	// identical everywhere.
	eng.reg.Seal()

	if eng.logger == nil {
		eng.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	eng.parser = markup.NewParser(eng.reg)

	renderOpts := []render.Option{render.WithLogger(eng.logger)}
	for name, fn := range eng.displays {
		renderOpts = append(renderOpts, render.WithDisplay(name, fn))
	}
	eng.renderer = render.New(eng.reg, renderOpts...)

	return eng, nil
}

// Parse parses and validates template markup. Structural errors come
// back as a domain.StructuralErrors value; they block publishing.
func (e *Engine) Parse(source string) (*domain.Node, error) {
	return e.parser.Parse(source)
}

// Session creates a state runtime for one render session, backed by
// the engine's persisted-variable store.
func (e *Engine) Session() *state.Runtime {
	opts := []state.Option{state.WithLogger(e.logger)}
	if e.store != nil {
		opts = append(opts, state.WithStore(e.store))
	}
	return state.NewRuntime(opts...)
}

// Render renders a parsed tree against a session and profile data,
// returning sanitized HTML.
func (e *Engine) Render(ctx context.Context, tree *domain.Node, rt *state.Runtime, profile *domain.ProfileData) (string, error) {
	return e.renderer.RenderHTML(ctx, tree, rt, profile)
}

// RenderSource is the one-shot path: parse, render in a fresh session,
// clean up.
func (e *Engine) RenderSource(ctx context.Context, source string, profile *domain.ProfileData) (string, error) {
	tree, err := e.Parse(source)
	if err != nil {
		return "", err
	}

	rt := e.Session()
	defer rt.Close()
	return e.Render(ctx, tree, rt, profile)
}

// Apply executes one action against a session: the engine-side
// counterpart of a Button click.
func (e *Engine) Apply(ctx context.Context, rt *state.Runtime, verb, target string, props map[string]any) (any, []domain.SideEffect, error) {
	return rt.Apply(ctx, verb, target, props)
}

// Stylesheet assembles the final profile stylesheet. A zero Container
// falls back to the engine's configured one.
func (e *Engine) Stylesheet(in cascade.Input) string {
	if in.Container == "" {
		in.Container = e.container
	}
	return cascade.Build(in)
}

// Registry returns the component registry the engine resolves against.
func (e *Engine) Registry() *registry.Registry {
	return e.reg
}

// Components returns the registered descriptors, for catalog surfaces.
func (e *Engine) Components() []*domain.ComponentDescriptor {
	names := e.reg.Names()
	out := make([]*domain.ComponentDescriptor, 0, len(names))
	for _, name := range names {
		if desc, err := e.reg.Lookup(name); err == nil {
			out = append(out, desc)
		}
	}
	return out
}
