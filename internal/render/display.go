package render

import (
	"encoding/json"
	"strings"

	"github.com/spf13/cast"

	"github.com/quiltspace/quilt/pkg/domain"
)

// Instance is a resolved component occurrence handed to display logic:
// the raw node, its descriptor, the validated props and the extracted
// styling declarations.
type Instance struct {
	Node       *domain.Node
	Descriptor *domain.ComponentDescriptor
	Props      map[string]any
	Styles     []StyleDecl
}

// StyleAttr renders the instance's styling props as an inline style
// attribute value, empty when there are none.
func (in *Instance) StyleAttr() string {
	if len(in.Styles) == 0 {
		return ""
	}
	parts := make([]string, len(in.Styles))
	for i, d := range in.Styles {
		parts[i] = d.CSS()
	}
	return strings.Join(parts, ";")
}

// DisplayFunc turns a resolved component instance plus its rendered
// children into output nodes. Dispatch over these is resolved once at
// renderer construction, keyed by component name.
type DisplayFunc func(inst *Instance, children []*domain.Node) []*domain.Node

// builtinDisplays wires the display logic for the built-in vocabulary.
func builtinDisplays() map[string]DisplayFunc {
	return map[string]DisplayFunc{
		"Text":   displayText,
		"Box":    displayBox,
		"Image":  displayImage,
		"Button": displayButton,
		"Tabs":   displayTabs,
		"Tab":    displayTab,

		// Standalone action components produce no visual output; they
		// only matter nested under an interactive component.
		"Set":       displayNothing,
		"Increment": displayNothing,
		"Toggle":    displayNothing,
		"Push":      displayNothing,
		"Pop":       displayNothing,
		"Show":      displayNothing,
		"Hide":      displayNothing,
	}
}

// genericDisplay renders host-registered components without dedicated
// display logic as a classed container carrying their props as
// data- attributes, for the host's client side to hydrate.
func genericDisplay(inst *Instance, children []*domain.Node) []*domain.Node {
	attrs := map[string]string{
		"class": "q-" + strings.ToLower(inst.Descriptor.Name),
	}
	for name, val := range inst.Props {
		attrs["data-"+strings.ToLower(name)] = cast.ToString(val)
	}
	styleInto(attrs, inst)
	return []*domain.Node{{
		Kind: domain.KindElement, Name: "div",
		Attributes: attrs,
		Children:   children,
	}}
}

func displayNothing(*Instance, []*domain.Node) []*domain.Node { return nil }

func displayText(inst *Instance, _ []*domain.Node) []*domain.Node {
	attrs := map[string]string{"class": "q-text"}
	styleInto(attrs, inst)
	content := cast.ToString(inst.Props["content"])
	return []*domain.Node{{
		Kind: domain.KindElement, Name: "span",
		Attributes: attrs,
		Children:   []*domain.Node{{Kind: domain.KindText, Text: content}},
	}}
}

func displayBox(inst *Instance, children []*domain.Node) []*domain.Node {
	attrs := map[string]string{"class": "q-box"}
	styleInto(attrs, inst)
	copyReserved(attrs, inst.Node)
	return []*domain.Node{{
		Kind: domain.KindElement, Name: "div",
		Attributes: attrs,
		Children:   children,
	}}
}

func displayImage(inst *Instance, _ []*domain.Node) []*domain.Node {
	attrs := map[string]string{
		"class": "q-image",
		"src":   cast.ToString(inst.Props["src"]),
		"alt":   cast.ToString(inst.Props["alt"]),
	}
	styleInto(attrs, inst)
	return []*domain.Node{{Kind: domain.KindElement, Name: "img", Attributes: attrs}}
}

func displayButton(inst *Instance, children []*domain.Node) []*domain.Node {
	attrs := map[string]string{"class": "q-button"}
	styleInto(attrs, inst)

	if actions := actionsOf(inst.Node.Children); len(actions) > 0 {
		if blob, err := json.Marshal(actions); err == nil {
			attrs["data-actions"] = string(blob)
		}
	}

	var visible []*domain.Node
	if label := cast.ToString(inst.Props["label"]); label != "" {
		visible = append(visible, &domain.Node{Kind: domain.KindText, Text: label})
	}
	visible = append(visible, children...)

	return []*domain.Node{{
		Kind: domain.KindElement, Name: "button",
		Attributes: attrs,
		Children:   visible,
	}}
}

func displayTabs(inst *Instance, children []*domain.Node) []*domain.Node {
	attrs := map[string]string{"class": "q-tabs"}
	styleInto(attrs, inst)
	return []*domain.Node{{
		Kind: domain.KindElement, Name: "div",
		Attributes: attrs,
		Children:   children,
	}}
}

func displayTab(inst *Instance, children []*domain.Node) []*domain.Node {
	attrs := map[string]string{
		"class":      "q-tab",
		"data-title": cast.ToString(inst.Props["title"]),
	}
	styleInto(attrs, inst)
	return []*domain.Node{{
		Kind: domain.KindElement, Name: "section",
		Attributes: attrs,
		Children:   children,
	}}
}

func styleInto(attrs map[string]string, inst *Instance) {
	if style := inst.StyleAttr(); style != "" {
		attrs["style"] = style
	}
}

// copyReserved carries positioning/editor metadata through to output so
// freely placed components keep their coordinates.
func copyReserved(attrs map[string]string, n *domain.Node) {
	for _, key := range []string{"grid-x", "grid-y", "grid-width", "grid-height", "pixel-x", "pixel-y", "component-id", "locked", "hidden"} {
		if v, ok := n.Attributes[key]; ok {
			attrs[key] = v
		}
	}
}
