package markup

import (
	"github.com/microcosm-cc/bluemonday"

	"github.com/quiltspace/quilt/pkg/registry"
)

// ariaAttrs is the accessibility attribute surface kept on rendered
// output. bluemonday wants explicit names for global attributes, so the
// common set is enumerated rather than pattern-matched.
var ariaAttrs = []string{
	"aria-atomic", "aria-busy", "aria-checked", "aria-controls",
	"aria-current", "aria-describedby", "aria-disabled", "aria-expanded",
	"aria-haspopup", "aria-hidden", "aria-label", "aria-labelledby",
	"aria-live", "aria-orientation", "aria-pressed", "aria-role",
	"aria-selected", "aria-valuemax", "aria-valuemin", "aria-valuenow",
	"role",
}

// safeElements is the baseline tag allow-list for rendered output.
// Anything outside this union plus the registry surface is stripped.
var safeElements = []string{
	"a", "abbr", "b", "blockquote", "br", "button", "caption", "code",
	"dd", "del", "details", "div", "dl", "dt", "em", "figcaption", "figure",
	"h1", "h2", "h3", "h4", "h5", "h6", "hr", "i", "img", "ins", "kbd",
	"li", "mark", "ol", "p", "pre", "q", "s", "section", "small", "span",
	"strong", "sub", "summary", "sup", "table", "tbody", "td", "tfoot", "th",
	"thead", "tr", "u", "ul",
}

// NewSanitizer builds the HTML sanitization policy for rendered
// template output.
//
// The attribute allow-list is exactly the union the engine itself can
// produce: the registry's declared prop surface, the canonical styling
// properties, the reserved positioning/editor attributes, and generic
// data-/aria- attributes. Nothing else survives sanitization, so a
// template cannot smuggle event handlers or scriptable attributes
// through a passthrough element.
func NewSanitizer(reg *registry.Registry) *bluemonday.Policy {
	p := bluemonday.NewPolicy()

	p.AllowElements(safeElements...)
	p.AllowStandardURLs()
	p.AllowAttrs("href", "title").OnElements("a")
	p.AllowAttrs("src", "alt", "title", "width", "height").OnElements("img")

	// Engine-produced presentation attributes.
	p.AllowAttrs("style", "class", "id").Globally()

	// Registry prop surface + canonical styling names: component props
	// survive as attributes on the host's display markup.
	if reg != nil {
		for _, name := range reg.PropNames() {
			p.AllowAttrs(name).Globally()
		}
	}
	for _, name := range StylePropNames() {
		p.AllowAttrs(name).Globally()
	}
	for _, name := range ReservedAttrNames() {
		p.AllowAttrs(name).Globally()
	}

	p.AllowDataAttributes()
	p.AllowAttrs(ariaAttrs...).Globally()

	return p
}
