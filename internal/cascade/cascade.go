// Package cascade assembles the final profile stylesheet from its
// origin blocks: system defaults, site-wide rules, component rules and
// the user's own CSS, isolated to one profile's container.
//
// Two output paths exist. The layered path wraps each origin in a named
// @layer so declaration order alone decides the cascade. The fallback
// path, for delivery contexts without layer support, emits the same
// blocks bare and relies on the scoping and dominance transforms
// applied to user CSS. Both paths apply the transforms, so output stays
// safe even when it ends up in a context with partial support.
//
// Build is pure and stateless; callers may invoke it from any timing
// context and discard superseded results.
package cascade

import "strings"

// CSSMode selects how much of the site's own styling a profile keeps.
type CSSMode string

const (
	// ModeInherit keeps the full site styling under the user's CSS.
	ModeInherit CSSMode = "inherit"
	// ModeOverride drops the site-wide skin but keeps the global base.
	ModeOverride CSSMode = "override"
	// ModeDisable drops everything the site contributes visually. The
	// reset and component-base layers still ship, since components must
	// keep functioning regardless of user mode.
	ModeDisable CSSMode = "disable"
)

// TemplateMode selects how much layout freedom the template claims.
type TemplateMode string

const (
	TemplateDefault  TemplateMode = "default"
	TemplateEnhanced TemplateMode = "enhanced"
	// TemplateAdvanced additionally injects the layout-freedom helper
	// rules (full-bleed containers, nav hiding/floating).
	TemplateAdvanced TemplateMode = "advanced"
)

// Layer names, lowest priority first. The order is fixed: it is the
// sole determinant of cascade priority on the layered path, so it is
// declared up front before any layer receives content.
const (
	LayerBrowserDefaults   = "browser-defaults"
	LayerReset             = "reset"
	LayerGlobalBase        = "global-base"
	LayerSiteWide          = "site-wide"
	LayerComponentBase     = "component-base"
	LayerTemplateStructure = "template-structure"
	LayerUserBase          = "user-base"
	LayerUserCustom        = "user-custom"
	LayerUserOverride      = "user-override"
	LayerUserNuclear       = "user-nuclear"
)

// LayerOrder is the full stack, lowest priority first.
var LayerOrder = []string{
	LayerBrowserDefaults,
	LayerReset,
	LayerGlobalBase,
	LayerSiteWide,
	LayerComponentBase,
	LayerTemplateStructure,
	LayerUserBase,
	LayerUserCustom,
	LayerUserOverride,
	LayerUserNuclear,
}

// OriginBlocks carries the raw CSS each origin contributes. Empty
// fields contribute nothing. UserCSS is the user's free-form CSS; it is
// scoped and dominance-boosted into the top layer. The other user
// fields are template styling tiers, scoped but not boosted.
type OriginBlocks struct {
	Reset             string
	GlobalBase        string
	SiteWide          string
	ComponentBase     string
	TemplateStructure string
	UserBase          string
	UserCustom        string
	UserOverride      string
	UserCSS           string
}

// Input is one Build request.
type Input struct {
	CSSMode      CSSMode
	TemplateMode TemplateMode
	// Container is the profile container element id, without the "#".
	Container string
	Origins   OriginBlocks
	// NoLayers selects the fallback path for delivery contexts without
	// native layer support.
	NoLayers bool
}

// block is one origin routed to its layer, with the transforms that
// apply to it already decided.
type block struct {
	layer string
	css   string
}

// Build assembles the final stylesheet text. The modes only decide
// which layers receive content and whether the layout-freedom helpers
// are injected; they never change layer order. Malformed user CSS never
// fails the build: unparseable fragments pass through verbatim in their
// rule position.
func Build(in Input) string {
	blocks := route(in)
	if in.NoLayers {
		return emitBare(blocks)
	}
	return emitLayered(blocks)
}

// route decides which origin lands in which layer under the given
// modes, applying the user-CSS transforms along the way.
func route(in Input) []block {
	container := in.Container
	if container == "" {
		container = "profile"
	}

	var out []block
	add := func(layer, css string) {
		if strings.TrimSpace(css) == "" {
			return
		}
		out = append(out, block{layer: layer, css: css})
	}

	// Site contribution, gated by cssMode. The reset always ships.
	add(LayerReset, in.Origins.Reset)
	if in.CSSMode != ModeDisable {
		add(LayerGlobalBase, in.Origins.GlobalBase)
		if in.CSSMode != ModeOverride {
			add(LayerSiteWide, in.Origins.SiteWide)
		}
	}

	// Components keep functioning regardless of user mode.
	add(LayerComponentBase, in.Origins.ComponentBase)

	add(LayerTemplateStructure, in.Origins.TemplateStructure)
	if in.TemplateMode == TemplateAdvanced {
		add(LayerTemplateStructure, layoutFreedomCSS(container))
	}

	// User tiers are scoped to the container; only the free-form CSS
	// gets the dominance boost, into the top layer.
	add(LayerUserBase, Scope(in.Origins.UserBase, container))
	add(LayerUserCustom, Scope(in.Origins.UserCustom, container))
	add(LayerUserOverride, Scope(in.Origins.UserOverride, container))
	add(LayerUserNuclear, Dominate(stripLegacyMarkers(in.Origins.UserCSS), container))

	return out
}

// emitLayered declares the full layer order first, then wraps each
// routed block in its named layer.
func emitLayered(blocks []block) string {
	var sb strings.Builder
	sb.WriteString("@layer ")
	sb.WriteString(strings.Join(LayerOrder, ", "))
	sb.WriteString(";\n")

	for _, b := range blocks {
		sb.WriteString("@layer ")
		sb.WriteString(b.layer)
		sb.WriteString(" {\n")
		sb.WriteString(strings.TrimRight(b.css, "\n"))
		sb.WriteString("\n}\n")
	}
	return sb.String()
}

// emitBare concatenates the routed blocks in layer order without layer
// wrapping. Cascade safety for user CSS rests entirely on the scoping
// and dominance transforms here.
func emitBare(blocks []block) string {
	var sb strings.Builder
	for _, b := range blocks {
		sb.WriteString("/* ")
		sb.WriteString(b.layer)
		sb.WriteString(" */\n")
		sb.WriteString(strings.TrimRight(b.css, "\n"))
		sb.WriteString("\n")
	}
	return sb.String()
}

// stripLegacyMarkers removes the wrappers older profile editors saved
// around user CSS: <style> tags and the mode marker comment.
func stripLegacyMarkers(css string) string {
	css = styleTagRe(css)
	for {
		start := strings.Index(css, "/* quilt-mode:")
		if start < 0 {
			break
		}
		end := strings.Index(css[start:], "*/")
		if end < 0 {
			css = css[:start]
			break
		}
		css = css[:start] + css[start+end+2:]
	}
	return css
}

// styleTagRe drops <style ...> and </style> wrappers without touching
// anything between them.
func styleTagRe(css string) string {
	for {
		start := strings.Index(css, "<style")
		if start < 0 {
			break
		}
		end := strings.IndexByte(css[start:], '>')
		if end < 0 {
			css = css[:start]
			break
		}
		css = css[:start] + css[start+end+1:]
	}
	css = strings.ReplaceAll(css, "</style>", "")
	return css
}

// layoutFreedomCSS is the fixed helper block advanced templates get:
// full-bleed containers and optional nav hiding/floating hooks.
func layoutFreedomCSS(container string) string {
	id := "#" + container
	return id + ` { max-width: none; padding: 0; }
` + id + ` .q-full-bleed { width: 100vw; margin-left: calc(50% - 50vw); }
` + id + `.q-hide-nav nav { display: none; }
` + id + `.q-float-nav nav { position: fixed; top: 0; left: 0; right: 0; z-index: 100; }`
}
