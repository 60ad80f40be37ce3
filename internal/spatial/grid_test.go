package spatial

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quiltspace/quilt/pkg/domain"
)

func deco(w, h int) domain.Decoration {
	return domain.Decoration{ID: "sticker", Category: "fun", Width: w, Height: h}
}

func TestGrid_SnapToFreeCandidateCell(t *testing.T) {
	g := NewGrid(10, 10, 20)

	res, err := g.Snap(45, 65, deco(1, 1), nil)
	require.NoError(t, err)
	assert.Equal(t, Placement{GridX: 2, GridY: 3, Width: 1, Height: 1}, res.Snapped)
}

func TestGrid_OccupiedCandidateFindsNearestRing(t *testing.T) {
	g := NewGrid(10, 10, 20)
	placed := []Placement{{GridX: 2, GridY: 3, Width: 1, Height: 1}}

	res, err := g.Snap(45, 65, deco(1, 1), placed)
	require.NoError(t, err)
	assert.NotEqual(t, placed[0], res.Snapped)
	// The replacement comes from the immediate ring around the candidate.
	assert.LessOrEqual(t, abs(res.Snapped.GridX-2), 1)
	assert.LessOrEqual(t, abs(res.Snapped.GridY-3), 1)
}

func TestGrid_FootprintNeverOverlaps(t *testing.T) {
	g := NewGrid(6, 6, 10)
	var placed []Placement

	// Saturate the canvas from one corner; every snap must stay
	// collision-free against everything placed before it.
	for i := 0; i < 12; i++ {
		res, err := g.Snap(5, 5, deco(2, 2), placed)
		if err != nil {
			assert.ErrorIs(t, err, domain.ErrNoSnapPosition)
			break
		}
		for _, q := range placed {
			assert.False(t, res.Snapped.Overlaps(q),
				"snap %d returned %+v overlapping %+v", i, res.Snapped, q)
		}
		placed = append(placed, res.Snapped)
	}
	assert.NotEmpty(t, placed)
}

func TestGrid_FullCanvasReportsNoSnap(t *testing.T) {
	g := NewGrid(2, 2, 10)
	placed := []Placement{
		{GridX: 0, GridY: 0, Width: 1, Height: 1},
		{GridX: 1, GridY: 0, Width: 1, Height: 1},
		{GridX: 0, GridY: 1, Width: 1, Height: 1},
		{GridX: 1, GridY: 1, Width: 1, Height: 1},
	}

	_, err := g.Snap(5, 5, deco(1, 1), placed)
	assert.ErrorIs(t, err, domain.ErrNoSnapPosition)
}

func TestGrid_OversizedItemNeverFits(t *testing.T) {
	g := NewGrid(3, 3, 10)
	_, err := g.Snap(0, 0, deco(4, 4), nil)
	assert.ErrorIs(t, err, domain.ErrNoSnapPosition)
}

func TestGrid_PointerOutsideCanvasClamps(t *testing.T) {
	g := NewGrid(4, 4, 10)
	res, err := g.Snap(999, -50, deco(1, 1), nil)
	require.NoError(t, err)
	assert.Equal(t, Placement{GridX: 3, GridY: 0, Width: 1, Height: 1}, res.Snapped)
}

func TestGrid_SuggestionOfferedNearNeighbors(t *testing.T) {
	g := NewGrid(10, 10, 10)
	placed := []Placement{{GridX: 5, GridY: 5, Width: 1, Height: 1}}

	// Pointer one cell away from the placed item: the snap itself is
	// free, and a clustering suggestion is offered alongside it.
	res, err := g.Snap(35, 55, deco(1, 1), placed)
	require.NoError(t, err)
	assert.Equal(t, Placement{GridX: 3, GridY: 5, Width: 1, Height: 1}, res.Snapped)
	if assert.NotNil(t, res.Suggested) {
		assert.True(t, neighborDistance(*res.Suggested, placed) <= neighborDistance(res.Snapped, placed),
			"suggestion pulls toward existing items")
		for _, q := range placed {
			assert.False(t, res.Suggested.Overlaps(q))
		}
	}
}

func TestGrid_NoSuggestionOnEmptyCanvas(t *testing.T) {
	g := NewGrid(10, 10, 10)
	res, err := g.Snap(35, 55, deco(1, 1), nil)
	require.NoError(t, err)
	assert.Nil(t, res.Suggested)
}

func TestGrid_ZeroFootprintDefaultsToOneCell(t *testing.T) {
	g := NewGrid(4, 4, 10)
	res, err := g.Snap(15, 15, deco(0, 0), nil)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Snapped.Width)
	assert.Equal(t, 1, res.Snapped.Height)
}

func TestPlacement_Overlaps(t *testing.T) {
	a := Placement{GridX: 0, GridY: 0, Width: 2, Height: 2}
	tests := []struct {
		name string
		b    Placement
		want bool
	}{
		{"identical", a, true},
		{"partial", Placement{GridX: 1, GridY: 1, Width: 2, Height: 2}, true},
		{"adjacent right", Placement{GridX: 2, GridY: 0, Width: 1, Height: 1}, false},
		{"adjacent below", Placement{GridX: 0, GridY: 2, Width: 1, Height: 1}, false},
		{"disjoint", Placement{GridX: 5, GridY: 5, Width: 1, Height: 1}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, a.Overlaps(tt.b))
			assert.Equal(t, tt.want, tt.b.Overlaps(a))
		})
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
