package markup

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeAttrName_SpellingsConverge(t *testing.T) {
	// Every surface spelling of a property lands on one canonical name.
	tests := []struct {
		in   string
		want string
	}{
		{"background-color", "backgroundColor"},
		{"backgroundcolor", "backgroundColor"},
		{"backgroundColor", "backgroundColor"},
		{"bgcolor", "backgroundColor"},
		{"bg", "backgroundColor"},
		{"font-size", "fontSize"},
		{"fontsize", "fontSize"},
		{"color", "textColor"},
		{"text-color", "textColor"},
		{"border-radius", "borderRadius"},
		{"rounded", "borderRadius"},
		{"z-index", "zIndex"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeAttrName(tt.in))
		})
	}
}

func TestNormalizeAttrName_FixedPoint(t *testing.T) {
	inputs := []string{
		"background-color", "backgroundColor", "bgcolor",
		"grid-x", "pixel-y", "component-id", "locked",
		"data-theme", "aria-label",
		"my-custom-thing", "plainword", "condition",
	}
	for _, in := range inputs {
		once := NormalizeAttrName(in)
		twice := NormalizeAttrName(once)
		assert.Equal(t, once, twice, "normalize is not a fixed point for %q", in)
	}
}

func TestNormalizeAttrName_ReservedVerbatim(t *testing.T) {
	for _, name := range []string{
		"grid-x", "grid-y", "grid-width", "grid-height",
		"pixel-x", "pixel-y", "component-id", "locked", "hidden",
		"builder-selected", "builder-preview",
		"data-anything-at-all", "aria-label",
	} {
		assert.Equal(t, name, NormalizeAttrName(name), "reserved %q must pass through", name)
	}
}

func TestNormalizeAttrName_GenericFallback(t *testing.T) {
	assert.Equal(t, "myCustomThing", NormalizeAttrName("my-custom-thing"))
	assert.Equal(t, "condition", NormalizeAttrName("condition"))
}

func TestNormalizeAttrs_CanonicalWinsOverLegacy(t *testing.T) {
	attrs := []attrPair{
		{name: "backgroundColor", value: "red"},
		{name: "background-color", value: "blue"},
	}
	got := normalizeAttrs(attrs)
	assert.Equal(t, map[string]string{"backgroundColor": "red"}, got)

	// Order-independent: legacy first, canonical later still wins.
	attrs = []attrPair{
		{name: "bgcolor", value: "blue"},
		{name: "backgroundColor", value: "red"},
	}
	got = normalizeAttrs(attrs)
	assert.Equal(t, map[string]string{"backgroundColor": "red"}, got)
}

func TestIsStyleProp(t *testing.T) {
	assert.True(t, IsStyleProp("backgroundColor"))
	assert.True(t, IsStyleProp("fontSize"))
	assert.False(t, IsStyleProp("condition"))
	assert.False(t, IsStyleProp("grid-x"))
	// Only canonical names qualify.
	assert.False(t, IsStyleProp("background-color"))
}
