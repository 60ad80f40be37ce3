package registry

import "github.com/quiltspace/quilt/pkg/domain"

// Builtins returns a registry pre-populated with the built-in component
// vocabulary. Hosts register their own display components on top before
// sealing.
//
// Registration order matters: descriptors that validate against another
// (RequiresParent) come after their parent.
func Builtins() *Registry {
	r := New()

	// State declaration and mutation.
	r.MustRegister(domain.ComponentDescriptor{
		Name:         "Var",
		Relationship: domain.RelationshipAction,
		Props: map[string]domain.PropSpec{
			"name":      {Type: domain.PropString, Required: true},
			"initial":   {Type: domain.PropString},
			"type":      {Type: domain.PropString, Enum: []string{"string", "number", "boolean", "list", "object"}},
			"persisted": {Type: domain.PropBool, Default: false},
			"min":       {Type: domain.PropNumber},
			"max":       {Type: domain.PropNumber},
		},
		AcceptsChildren: domain.ChildPolicy{None: true},
		Doc:             "Declares a reactive state variable.",
	})
	r.MustRegister(domain.ComponentDescriptor{
		Name:         "Set",
		Relationship: domain.RelationshipAction,
		Props: map[string]domain.PropSpec{
			"var":   {Type: domain.PropString, Required: true},
			"value": {Type: domain.PropString, Required: true},
		},
		AcceptsChildren: domain.ChildPolicy{None: true},
		Doc:             "Sets a variable to a value.",
	})
	r.MustRegister(domain.ComponentDescriptor{
		Name:         "Increment",
		Relationship: domain.RelationshipAction,
		Props: map[string]domain.PropSpec{
			"var": {Type: domain.PropString, Required: true},
			"by":  {Type: domain.PropNumber, Default: 1.0},
			"min": {Type: domain.PropNumber},
			"max": {Type: domain.PropNumber},
		},
		AcceptsChildren: domain.ChildPolicy{None: true},
		Doc:             "Increments a numeric variable, clamped to min/max.",
	})
	r.MustRegister(domain.ComponentDescriptor{
		Name:         "Toggle",
		Relationship: domain.RelationshipAction,
		Props: map[string]domain.PropSpec{
			"var": {Type: domain.PropString, Required: true},
		},
		AcceptsChildren: domain.ChildPolicy{None: true},
		Doc:             "Flips a boolean variable.",
	})
	r.MustRegister(domain.ComponentDescriptor{
		Name:         "Push",
		Relationship: domain.RelationshipAction,
		Props: map[string]domain.PropSpec{
			"var":   {Type: domain.PropString, Required: true},
			"value": {Type: domain.PropString, Required: true},
		},
		AcceptsChildren: domain.ChildPolicy{None: true},
		Doc:             "Appends a value to a list variable.",
	})
	r.MustRegister(domain.ComponentDescriptor{
		Name:         "Pop",
		Relationship: domain.RelationshipAction,
		Props: map[string]domain.PropSpec{
			"var": {Type: domain.PropString, Required: true},
		},
		AcceptsChildren: domain.ChildPolicy{None: true},
		Doc:             "Removes the last element of a list variable.",
	})

	// Visibility actions are resolved client side against an element id;
	// they never touch the variable store.
	r.MustRegister(domain.ComponentDescriptor{
		Name:         "Show",
		Relationship: domain.RelationshipAction,
		Props: map[string]domain.PropSpec{
			"target": {Type: domain.PropString, Required: true},
		},
		AcceptsChildren: domain.ChildPolicy{None: true},
		Doc:             "Reveals the element with the target id.",
	})
	r.MustRegister(domain.ComponentDescriptor{
		Name:         "Hide",
		Relationship: domain.RelationshipAction,
		Props: map[string]domain.PropSpec{
			"target": {Type: domain.PropString, Required: true},
		},
		AcceptsChildren: domain.ChildPolicy{None: true},
		Doc:             "Hides the element with the target id.",
	})

	// Branching. ElseIf/Else only make sense directly under If.
	r.MustRegister(domain.ComponentDescriptor{
		Name:         "If",
		Relationship: domain.RelationshipContainer,
		Props: map[string]domain.PropSpec{
			"condition": {Type: domain.PropString, Required: true},
		},
		Doc: "Renders children when the condition holds.",
	})
	r.MustRegister(domain.ComponentDescriptor{
		Name:           "ElseIf",
		Relationship:   domain.RelationshipChild,
		RequiresParent: "If",
		Props: map[string]domain.PropSpec{
			"condition": {Type: domain.PropString, Required: true},
		},
		Doc: "Alternative branch of an enclosing If.",
	})
	r.MustRegister(domain.ComponentDescriptor{
		Name:           "Else",
		Relationship:   domain.RelationshipChild,
		RequiresParent: "If",
		Doc:            "Fallback branch of an enclosing If.",
	})

	// Loops.
	r.MustRegister(domain.ComponentDescriptor{
		Name:         "For",
		Relationship: domain.RelationshipContainer,
		Props: map[string]domain.PropSpec{
			"source": {Type: domain.PropString, Required: true},
			"as":     {Type: domain.PropString, Default: "item"},
			"index":  {Type: domain.PropString},
			"limit":  {Type: domain.PropNumber},
		},
		Doc: "Repeats children for each element of a list variable or profile collection.",
	})
	r.MustRegister(domain.ComponentDescriptor{
		Name:         "Repeat",
		Relationship: domain.RelationshipContainer,
		Props: map[string]domain.PropSpec{
			"count": {Type: domain.PropNumber, Required: true},
			"as":    {Type: domain.PropString, Default: "i"},
		},
		Doc: "Repeats children a fixed number of times.",
	})

	// Interactive surface: buttons trigger the action components nested
	// inside them.
	r.MustRegister(domain.ComponentDescriptor{
		Name:         "Button",
		Relationship: domain.RelationshipInteractive,
		Props: map[string]domain.PropSpec{
			"label": {Type: domain.PropString},
		},
		Doc: "A clickable control; nested action components run on click.",
	})

	// Display leaves and containers.
	r.MustRegister(domain.ComponentDescriptor{
		Name:         "Text",
		Relationship: domain.RelationshipLeaf,
		Props: map[string]domain.PropSpec{
			"content": {Type: domain.PropString},
		},
		Doc: "Inline text with styling props.",
	})
	r.MustRegister(domain.ComponentDescriptor{
		Name:         "Box",
		Relationship: domain.RelationshipContainer,
		Doc:          "Generic styled container.",
	})
	r.MustRegister(domain.ComponentDescriptor{
		Name:         "Image",
		Relationship: domain.RelationshipLeaf,
		Props: map[string]domain.PropSpec{
			"src": {Type: domain.PropString, Required: true},
			"alt": {Type: domain.PropString, Default: ""},
		},
		AcceptsChildren: domain.ChildPolicy{None: true},
		Doc:             "An image from the host's media store.",
	})
	r.MustRegister(domain.ComponentDescriptor{
		Name:         "Tabs",
		Relationship: domain.RelationshipContainer,
		AcceptsChildren: domain.ChildPolicy{
			Names: []string{"Tab"},
		},
		Doc: "Tabbed container; accepts only Tab children.",
	})
	r.MustRegister(domain.ComponentDescriptor{
		Name:           "Tab",
		Relationship:   domain.RelationshipChild,
		RequiresParent: "Tabs",
		Props: map[string]domain.PropSpec{
			"title": {Type: domain.PropString, Required: true},
		},
		Doc: "One pane of a Tabs container.",
	})

	return r
}
