package registry

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quiltspace/quilt/pkg/domain"
)

func TestRegister_Duplicate(t *testing.T) {
	r := New()
	require.NoError(t, r.Register(domain.ComponentDescriptor{Name: "Badge"}))

	err := r.Register(domain.ComponentDescriptor{Name: "Badge"})
	assert.ErrorIs(t, err, domain.ErrDuplicateComponent)
}

func TestRegister_ParentMustExistFirst(t *testing.T) {
	r := New()

	err := r.Register(domain.ComponentDescriptor{
		Name:           "Tab",
		RequiresParent: "Tabs",
	})
	assert.ErrorIs(t, err, domain.ErrComponentNotFound)

	require.NoError(t, r.Register(domain.ComponentDescriptor{Name: "Tabs"}))
	assert.NoError(t, r.Register(domain.ComponentDescriptor{
		Name:           "Tab",
		RequiresParent: "Tabs",
	}))
}

func TestRegister_Sealed(t *testing.T) {
	r := New()
	r.Seal()

	err := r.Register(domain.ComponentDescriptor{Name: "Late"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sealed")
}

func TestLookup_NotFound(t *testing.T) {
	r := New()
	_, err := r.Lookup("Ghost")
	assert.ErrorIs(t, err, domain.ErrComponentNotFound)
}

func TestLookup_ReturnsRegisteredCopy(t *testing.T) {
	r := New()
	require.NoError(t, r.Register(domain.ComponentDescriptor{
		Name:         "Text",
		Relationship: domain.RelationshipLeaf,
		Props: map[string]domain.PropSpec{
			"content": {Type: domain.PropString},
		},
	}))

	desc, err := r.Lookup("Text")
	require.NoError(t, err)
	assert.Equal(t, domain.RelationshipLeaf, desc.Relationship)
	assert.Contains(t, desc.Props, "content")
}

func TestBuiltins(t *testing.T) {
	r := Builtins()

	// Spot-check the vocabulary and the dependency ordering invariants.
	for _, name := range []string{"Var", "Set", "Increment", "Push", "Show", "If", "Else", "For", "Button", "Tabs", "Tab"} {
		assert.True(t, r.Has(name), "missing builtin %s", name)
	}

	tab, err := r.Lookup("Tab")
	require.NoError(t, err)
	assert.Equal(t, "Tabs", tab.RequiresParent)

	tabs, err := r.Lookup("Tabs")
	require.NoError(t, err)
	assert.False(t, tabs.AcceptsChildren.Allows("Box"))
	assert.True(t, tabs.AcceptsChildren.Allows("Tab"))
}

func TestChildPolicy(t *testing.T) {
	tests := []struct {
		name   string
		policy domain.ChildPolicy
		child  string
		want   bool
	}{
		{"open policy allows anything", domain.ChildPolicy{}, "Whatever", true},
		{"none forbids", domain.ChildPolicy{None: true}, "Text", false},
		{"list allows member", domain.ChildPolicy{Names: []string{"Tab"}}, "Tab", true},
		{"list rejects non-member", domain.ChildPolicy{Names: []string{"Tab"}}, "Box", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.policy.Allows(tt.child))
		})
	}
}

func TestLoadManifest(t *testing.T) {
	src := `
components:
  - name: Sticker
    relationship: leaf
    props:
      id:
        type: string
        required: true
    acceptsChildren:
      none: true
`
	m, err := LoadManifest(strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, m.Components, 1)

	r := New()
	require.NoError(t, m.RegisterAll(r))

	desc, err := r.Lookup("Sticker")
	require.NoError(t, err)
	assert.True(t, desc.Props["id"].Required)
	assert.False(t, desc.AcceptsChildren.Allows("Text"))
}
