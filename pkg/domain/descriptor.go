package domain

// Relationship classifies a component's structural role in a template.
type Relationship string

const (
	// RelationshipLeaf renders content and accepts no children.
	RelationshipLeaf Relationship = "leaf"
	// RelationshipContainer lays out arbitrary children.
	RelationshipContainer Relationship = "container"
	// RelationshipAction mutates state when triggered and renders nothing.
	RelationshipAction Relationship = "action"
	// RelationshipInteractive renders a control that triggers actions.
	RelationshipInteractive Relationship = "interactive"
	// RelationshipChild is only valid under a specific parent component.
	RelationshipChild Relationship = "child"
)

// PropType enumerates the value types a component property can declare.
type PropType string

const (
	PropString PropType = "string"
	PropNumber PropType = "number"
	PropBool   PropType = "boolean"
	PropList   PropType = "list"
	PropObject PropType = "object"
)

// PropSpec declares one accepted property of a component.
type PropSpec struct {
	Type     PropType `yaml:"type"`
	Required bool     `yaml:"required,omitempty"`
	Default  any      `yaml:"default,omitempty"`
	// Enum restricts the property to a closed set of values when non-empty.
	Enum []string `yaml:"enum,omitempty"`
}

// ChildPolicy describes which children a component accepts.
//
// The zero value (None=false, Names=nil) means "any children" and is the
// policy for plain containers. None=true forbids children entirely.
// A non-empty Names list restricts children to those component names;
// non-component nodes (text, elements, expressions) are always allowed.
type ChildPolicy struct {
	None  bool     `yaml:"none,omitempty"`
	Names []string `yaml:"names,omitempty"`
}

// Allows reports whether a child component name is acceptable.
func (p ChildPolicy) Allows(name string) bool {
	if p.None {
		return false
	}
	if len(p.Names) == 0 {
		return true
	}
	for _, n := range p.Names {
		if n == name {
			return true
		}
	}
	return false
}

// ComponentDescriptor is a registry entry defining a component's prop
// schema and structural rules. Descriptors are owned by the registry and
// never mutated after registration.
type ComponentDescriptor struct {
	Name         string              `yaml:"name"`
	Relationship Relationship        `yaml:"relationship"`
	Props        map[string]PropSpec `yaml:"props,omitempty"`

	// AcceptsChildren constrains the component's children.
	AcceptsChildren ChildPolicy `yaml:"acceptsChildren,omitempty"`

	// RequiresParent names the component this one must be an immediate
	// child of, or is empty when the component can appear anywhere.
	RequiresParent string `yaml:"requiresParent,omitempty"`

	// Doc is a short markdown description surfaced by tooling.
	Doc string `yaml:"doc,omitempty"`
}
