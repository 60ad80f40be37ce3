package render

import (
	"fmt"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/cast"

	"github.com/quiltspace/quilt/internal/markup"
	"github.com/quiltspace/quilt/pkg/domain"
)

// resolveProps extracts and validates a component's declared props from
// its normalized attribute set: interpolation, type coercion, default
// substitution, required and enum checks. Styling props and reserved
// attributes are not props and are skipped here.
func (r *Renderer) resolveProps(rc *renderContext, n *domain.Node, desc *domain.ComponentDescriptor) (map[string]any, error) {
	attrs := r.resolveAttrs(rc, n.Attributes)
	props := make(map[string]any, len(desc.Props))

	for name, spec := range desc.Props {
		raw, present := attrs[name]
		if !present {
			if spec.Required {
				return nil, fmt.Errorf("missing required prop %q", name)
			}
			if spec.Default != nil {
				props[name] = spec.Default
			}
			continue
		}

		val, err := coerceProp(raw, spec.Type)
		if err != nil {
			return nil, fmt.Errorf("prop %q: %w", name, err)
		}

		if len(spec.Enum) > 0 {
			s := cast.ToString(val)
			ok := false
			for _, allowed := range spec.Enum {
				if s == allowed {
					ok = true
					break
				}
			}
			if !ok {
				return nil, fmt.Errorf("prop %q: value %q not in %v", name, s, spec.Enum)
			}
		}
		props[name] = val
	}

	return props, nil
}

func coerceProp(raw string, t domain.PropType) (any, error) {
	switch t {
	case domain.PropNumber:
		return cast.ToFloat64E(raw)
	case domain.PropBool:
		return cast.ToBoolE(raw)
	case domain.PropList, domain.PropObject, domain.PropString, "":
		return raw, nil
	}
	return raw, nil
}

// decodeProps maps a resolved prop set onto a typed prop struct. Used
// by the built-in component implementations so each one works with
// fields, not map lookups.
func decodeProps(props map[string]any, target any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return err
	}
	return dec.Decode(props)
}

// extractStyleProps pulls the canonical styling properties out of a
// resolved attribute set, in a deterministic order.
func extractStyleProps(attrs map[string]string) []StyleDecl {
	if len(attrs) == 0 {
		return nil
	}
	var decls []StyleDecl
	for _, name := range markup.StylePropNames() {
		if v, ok := attrs[name]; ok && v != "" {
			decls = append(decls, StyleDecl{Property: name, Value: v})
		}
	}
	return decls
}

// extractStyle folds styling props on a passthrough element into its
// style attribute and removes the originals. Reserved attributes and
// anything already in style stay untouched.
func extractStyle(n *domain.Node) {
	decls := extractStyleProps(n.Attributes)
	if len(decls) == 0 {
		return
	}
	parts := make([]string, 0, len(decls)+1)
	if existing := n.Attributes["style"]; existing != "" {
		parts = append(parts, existing)
	}
	for _, d := range decls {
		parts = append(parts, d.CSS())
		delete(n.Attributes, d.Property)
	}
	n.Attributes["style"] = strings.Join(parts, ";")
}

// StyleDecl is one extracted styling property on a component instance.
type StyleDecl struct {
	Property string // canonical camelCase name
	Value    string
}

// CSS renders the declaration with the property name in CSS kebab-case.
// textColor is the engine-internal spelling of the CSS color property.
func (d StyleDecl) CSS() string {
	prop := d.Property
	if prop == "textColor" {
		prop = "color"
	}
	return camelToCSS(prop) + ":" + d.Value
}

func camelToCSS(name string) string {
	out := make([]byte, 0, len(name)+4)
	for i := 0; i < len(name); i++ {
		c := name[i]
		if c >= 'A' && c <= 'Z' {
			if i > 0 {
				out = append(out, '-')
			}
			out = append(out, c+('a'-'A'))
		} else {
			out = append(out, c)
		}
	}
	return string(out)
}
