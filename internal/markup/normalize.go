package markup

import "strings"

// canonicalStyleProps is the closed set of styling properties templates
// may set on any component, keyed by their internal camelCase name.
var canonicalStyleProps = []string{
	"alignItems",
	"animation",
	"backgroundColor",
	"backgroundImage",
	"backgroundPosition",
	"backgroundRepeat",
	"backgroundSize",
	"borderColor",
	"borderRadius",
	"borderStyle",
	"borderWidth",
	"bottom",
	"boxShadow",
	"cursor",
	"display",
	"filter",
	"flexDirection",
	"fontFamily",
	"fontSize",
	"fontStyle",
	"fontWeight",
	"gap",
	"height",
	"justifyContent",
	"left",
	"letterSpacing",
	"lineHeight",
	"margin",
	"maxHeight",
	"maxWidth",
	"minHeight",
	"minWidth",
	"opacity",
	"overflow",
	"padding",
	"position",
	"right",
	"textAlign",
	"textColor",
	"textDecoration",
	"textShadow",
	"textTransform",
	"top",
	"transform",
	"transition",
	"width",
	"zIndex",
}

// legacyAliases are historical spellings that don't derive mechanically
// from the canonical name.
var legacyAliases = map[string]string{
	"bg":        "backgroundColor",
	"bgcolor":   "backgroundColor",
	"bg-color":  "backgroundColor",
	"bgimage":   "backgroundImage",
	"bg-image":  "backgroundImage",
	"color":     "textColor",
	"font":      "fontFamily",
	"align":     "textAlign",
	"rounded":   "borderRadius",
	"shadow":    "boxShadow",
}

// reservedAttrs are positioning and editor-internal metadata attributes
// preserved verbatim, never canonicalized into styling.
var reservedAttrs = map[string]struct{}{
	"grid-x":           {},
	"grid-y":           {},
	"grid-width":       {},
	"grid-height":      {},
	"pixel-x":          {},
	"pixel-y":          {},
	"component-id":     {},
	"locked":           {},
	"hidden":           {},
	"builder-selected": {},
	"builder-preview":  {},
}

// attrLookup is the exact-match table: every canonical name plus its
// kebab-case and flat-lowercase derivations, plus the legacy aliases.
var attrLookup map[string]string

func init() {
	attrLookup = make(map[string]string, len(canonicalStyleProps)*3+len(legacyAliases))
	for _, canon := range canonicalStyleProps {
		attrLookup[canon] = canon
		attrLookup[camelToKebab(canon)] = canon
		attrLookup[strings.ToLower(canon)] = canon
	}
	for legacy, canon := range legacyAliases {
		attrLookup[legacy] = canon
	}
}

// NormalizeAttrName canonicalizes one attribute name.
//
// Order of precedence: reserved names and data-/aria- attributes pass
// through verbatim; then the exact lookup table (covering kebab-case,
// flat-lowercase and already-camel spellings of every styling property
// plus legacy aliases); then a generic kebab→camel fallback. The
// function is a fixed point: normalizing twice equals normalizing once.
func NormalizeAttrName(name string) string {
	if IsReservedAttr(name) {
		return name
	}
	if canon, ok := attrLookup[strings.ToLower(name)]; ok {
		return canon
	}
	if canon, ok := attrLookup[name]; ok {
		return canon
	}
	return kebabToCamel(name)
}

// IsReservedAttr reports whether an attribute name is preserved
// verbatim: positioning/editor metadata or a generic data-/aria-
// attribute.
func IsReservedAttr(name string) bool {
	if _, ok := reservedAttrs[name]; ok {
		return true
	}
	return strings.HasPrefix(name, "data-") || strings.HasPrefix(name, "aria-")
}

// IsStyleProp reports whether a canonical attribute name is a styling
// property the renderer extracts into inline style output.
func IsStyleProp(canonical string) bool {
	canon, ok := attrLookup[canonical]
	return ok && canon == canonical
}

// StylePropNames returns the canonical styling property names. The
// sanitizer builds part of its attribute allow-list from this.
func StylePropNames() []string {
	out := make([]string, len(canonicalStyleProps))
	copy(out, canonicalStyleProps)
	return out
}

// ReservedAttrNames returns the fixed reserved attribute set (without
// the open-ended data-/aria- families).
func ReservedAttrNames() []string {
	out := make([]string, 0, len(reservedAttrs))
	for name := range reservedAttrs {
		out = append(out, name)
	}
	return out
}

// normalizeAttrs canonicalizes a source-ordered attribute list into the
// node attribute map. When a canonical and a legacy spelling of the same
// property both appear, the canonically spelled one wins; otherwise the
// last occurrence does.
func normalizeAttrs(attrs []attrPair) map[string]string {
	if len(attrs) == 0 {
		return nil
	}

	out := make(map[string]string, len(attrs))
	canonicalSpelled := make(map[string]bool, len(attrs))

	for _, a := range attrs {
		canon := NormalizeAttrName(a.name)
		wasCanonical := a.name == canon

		if canonicalSpelled[canon] && !wasCanonical {
			continue
		}
		out[canon] = a.value
		if wasCanonical {
			canonicalSpelled[canon] = true
		}
	}
	return out
}

func kebabToCamel(name string) string {
	if !strings.Contains(name, "-") {
		return name
	}
	parts := strings.Split(name, "-")
	var sb strings.Builder
	sb.WriteString(parts[0])
	for _, p := range parts[1:] {
		if p == "" {
			continue
		}
		sb.WriteString(strings.ToUpper(p[:1]))
		sb.WriteString(p[1:])
	}
	return sb.String()
}

func camelToKebab(name string) string {
	var sb strings.Builder
	for i, r := range name {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				sb.WriteByte('-')
			}
			sb.WriteRune(r + ('a' - 'A'))
		} else {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
