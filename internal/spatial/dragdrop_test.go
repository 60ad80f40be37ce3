package spatial

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func zone(id string, accepted []string, x, y, w, h float64) DropZone {
	return DropZone{
		ID:       id,
		Accepted: accepted,
		Bounds:   Rect{X: x, Y: y, Width: w, Height: h},
		Active:   true,
	}
}

func TestEngine_TargetAcceptance(t *testing.T) {
	e := NewEngine()
	e.RegisterZone(zone("wild", []string{"image", "*"}, 0, 0, 100, 100))
	e.RegisterZone(zone("images-only", []string{"image"}, 200, 0, 100, 100))

	e.StartPaletteDrag("text", Pointer{X: 10, Y: 10})

	_, ok := e.Target(Pointer{X: 50, Y: 50})
	assert.True(t, ok, "wildcard zone accepts any type")

	_, ok = e.Target(Pointer{X: 250, Y: 50})
	assert.False(t, ok, "image-only zone rejects text")
}

func TestEngine_DropInvokesCallback(t *testing.T) {
	var got *Drop
	e := NewEngine(WithDropHandler(func(d Drop) { got = &d }))
	e.RegisterZone(zone("z", []string{"*"}, 0, 0, 100, 100))

	e.StartPaletteDrag("text", Pointer{X: 1, Y: 1})
	e.Move(Pointer{X: 40, Y: 40})
	drop, dropped := e.EndDrag(Pointer{X: 50, Y: 50})

	require.True(t, dropped)
	require.NotNil(t, got)
	assert.Equal(t, "z", drop.Zone.ID)
	assert.Equal(t, SourcePalette, drop.State.Source)
	assert.False(t, e.Dragging(), "engine returns to idle after drop")
}

func TestEngine_EndOutsideZonesCancels(t *testing.T) {
	called := false
	e := NewEngine(WithDropHandler(func(Drop) { called = true }))
	e.RegisterZone(zone("z", []string{"*"}, 0, 0, 100, 100))

	e.StartCanvasDrag("c1", "box", Pointer{X: 10, Y: 10})
	_, dropped := e.EndDrag(Pointer{X: 500, Y: 500})

	assert.False(t, dropped)
	assert.False(t, called)
	assert.False(t, e.Dragging())
}

func TestEngine_InactiveZoneIsNotATarget(t *testing.T) {
	e := NewEngine()
	z := zone("z", []string{"*"}, 0, 0, 100, 100)
	z.Active = false
	e.RegisterZone(z)

	e.StartPaletteDrag("text", Pointer{X: 10, Y: 10})
	_, ok := e.Target(Pointer{X: 50, Y: 50})
	assert.False(t, ok)
}

func TestEngine_SingleFlight(t *testing.T) {
	e := NewEngine()
	e.StartPaletteDrag("text", Pointer{X: 1, Y: 1})
	e.StartCanvasDrag("c1", "box", Pointer{X: 2, Y: 2})

	snap := e.Snapshot()
	require.NotNil(t, snap.Drag)
	assert.Equal(t, SourceCanvas, snap.Drag.Source)
	assert.Equal(t, "c1", snap.Drag.ComponentID)
}

func TestEngine_CleanupLeavesNothing(t *testing.T) {
	e := NewEngine()
	e.RegisterZone(zone("a", []string{"*"}, 0, 0, 10, 10))
	e.RegisterZone(zone("b", []string{"image"}, 20, 0, 10, 10))
	e.StartPaletteDrag("text", Pointer{X: 1, Y: 1})

	e.Cleanup()

	snap := e.Snapshot()
	assert.Nil(t, snap.Drag)
	assert.Empty(t, snap.Zones)
}

func TestEngine_MoveOutsideDragIgnored(t *testing.T) {
	e := NewEngine()
	e.Move(Pointer{X: 9, Y: 9})
	assert.Nil(t, e.Snapshot().Drag)
}

func TestEngine_RegisterZoneReplacesById(t *testing.T) {
	e := NewEngine()
	e.RegisterZone(zone("z", []string{"image"}, 0, 0, 10, 10))
	e.RegisterZone(zone("z", []string{"*"}, 0, 0, 10, 10))

	snap := e.Snapshot()
	require.Len(t, snap.Zones, 1)
	assert.Equal(t, []string{"*"}, snap.Zones[0].Accepted)

	e.UnregisterZone("z")
	assert.Empty(t, e.Snapshot().Zones)
}
