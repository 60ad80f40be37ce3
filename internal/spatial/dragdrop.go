// Package spatial implements the edit-time placement engine: the
// drag-and-drop lifecycle against registered drop zones, and grid
// snapping for decorative item placement.
//
// The engine is event-driven and expects the editor host to serialize
// pointer events; it holds no internal locking. Drags are single-flight
// by construction: starting a new drag force-cancels an active one.
package spatial

import (
	"io"
	"log/slog"
)

// Pointer is a pixel-space pointer position from the editor host.
type Pointer struct {
	X float64
	Y float64
}

// Rect is a pixel-space rectangle.
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// Contains reports whether p falls inside the rectangle.
func (r Rect) Contains(p Pointer) bool {
	return p.X >= r.X && p.X < r.X+r.Width &&
		p.Y >= r.Y && p.Y < r.Y+r.Height
}

// Wildcard is the accepted-type entry matching any dragged type.
const Wildcard = "*"

// DropZone is a registered drop target. A zone accepts a dragged type
// when its accepted set contains that type or the wildcard.
type DropZone struct {
	ID       string
	Accepted []string
	Bounds   Rect
	Active   bool
}

// Accepts reports whether the zone takes the given dragged type.
func (z *DropZone) Accepts(dragType string) bool {
	for _, t := range z.Accepted {
		if t == Wildcard || t == dragType {
			return true
		}
	}
	return false
}

// DragSource distinguishes where a drag started.
type DragSource int

const (
	// SourcePalette drags a new item in from the component palette.
	SourcePalette DragSource = iota
	// SourceCanvas moves an item already placed on the canvas.
	SourceCanvas
)

func (s DragSource) String() string {
	if s == SourceCanvas {
		return "canvas"
	}
	return "palette"
}

// DragState is the single mutable record of an in-flight drag. It lives
// only for the duration of one edit gesture and is never persisted.
type DragState struct {
	Source DragSource
	// Type is the dragged item type matched against zone acceptance.
	Type string
	// ComponentID is set for canvas drags: the moved component.
	ComponentID string
	Pointer     Pointer
}

// Drop is handed to the drop callback when a drag resolves on a valid
// target.
type Drop struct {
	State DragState
	Zone  DropZone
}

// Snapshot is the engine state handed to the editor host for
// visualizing drop-zone highlighting. Drag is nil when idle.
type Snapshot struct {
	Drag  *DragState
	Zones []DropZone
}

// Engine runs the drag lifecycle: idle, dragging, then dropped or
// cancelled, back to idle.
type Engine struct {
	zones  []DropZone
	drag   *DragState
	onDrop func(Drop)
	logger *slog.Logger
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithDropHandler sets the callback invoked when a drag resolves on a
// valid target.
func WithDropHandler(fn func(Drop)) EngineOption {
	return func(e *Engine) { e.onDrop = fn }
}

// WithLogger sets the engine logger.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) { e.logger = logger }
}

// NewEngine creates an idle placement engine with no registered zones.
func NewEngine(opts ...EngineOption) *Engine {
	e := &Engine{}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	return e
}

// RegisterZone adds or replaces a drop zone by id.
func (e *Engine) RegisterZone(z DropZone) {
	for i := range e.zones {
		if e.zones[i].ID == z.ID {
			e.zones[i] = z
			return
		}
	}
	e.zones = append(e.zones, z)
}

// UnregisterZone removes a zone by id; unknown ids are a no-op.
func (e *Engine) UnregisterZone(id string) {
	for i := range e.zones {
		if e.zones[i].ID == id {
			e.zones = append(e.zones[:i], e.zones[i+1:]...)
			return
		}
	}
}

// StartPaletteDrag begins dragging a new item of the given type from
// the palette. An active drag is force-cancelled first.
func (e *Engine) StartPaletteDrag(itemType string, p Pointer) {
	e.forceIdle()
	e.drag = &DragState{Source: SourcePalette, Type: itemType, Pointer: p}
}

// StartCanvasDrag begins moving an existing canvas component. An active
// drag is force-cancelled first.
func (e *Engine) StartCanvasDrag(componentID, itemType string, p Pointer) {
	e.forceIdle()
	e.drag = &DragState{
		Source:      SourceCanvas,
		Type:        itemType,
		ComponentID: componentID,
		Pointer:     p,
	}
}

// Move updates the drag pointer. Pointer moves outside a drag are
// meaningless and ignored.
func (e *Engine) Move(p Pointer) {
	if e.drag == nil {
		return
	}
	e.drag.Pointer = p
}

// Target resolves the valid drop zone under the pointer for the active
// drag, if any. A target is valid only when an active zone's bounds
// contain the pointer and the zone accepts the dragged type.
func (e *Engine) Target(p Pointer) (DropZone, bool) {
	if e.drag == nil {
		return DropZone{}, false
	}
	for i := range e.zones {
		z := &e.zones[i]
		if z.Active && z.Bounds.Contains(p) && z.Accepts(e.drag.Type) {
			return *z, true
		}
	}
	return DropZone{}, false
}

// EndDrag resolves the active drag at the given pointer: dropped when a
// valid target exists there (the drop callback fires), cancelled
// otherwise. Either way the engine returns to idle. The second return
// reports whether the drag dropped.
func (e *Engine) EndDrag(p Pointer) (Drop, bool) {
	if e.drag == nil {
		return Drop{}, false
	}
	e.drag.Pointer = p

	zone, ok := e.Target(p)
	state := *e.drag
	e.drag = nil
	if !ok {
		e.logger.Debug("drag cancelled", "source", state.Source.String(), "type", state.Type)
		return Drop{}, false
	}

	drop := Drop{State: state, Zone: zone}
	if e.onDrop != nil {
		e.onDrop(drop)
	}
	return drop, true
}

// Cancel abandons the active drag without resolving a target.
func (e *Engine) Cancel() {
	e.drag = nil
}

// Cleanup resets the engine for unmount: no drag, no zones. The
// lifecycle guarantee is zero registered zones and a null drag state
// afterwards, whatever state the engine was in.
func (e *Engine) Cleanup() {
	e.drag = nil
	e.zones = nil
}

// Snapshot returns the current drag state and zone list for the host.
// The zone slice is copied; the host cannot mutate engine state.
func (e *Engine) Snapshot() Snapshot {
	var drag *DragState
	if e.drag != nil {
		d := *e.drag
		drag = &d
	}
	zones := make([]DropZone, len(e.zones))
	copy(zones, e.zones)
	return Snapshot{Drag: drag, Zones: zones}
}

// Dragging reports whether a drag is in flight.
func (e *Engine) Dragging() bool { return e.drag != nil }

func (e *Engine) forceIdle() {
	if e.drag != nil {
		e.logger.Debug("force-cancelling active drag", "type", e.drag.Type)
		e.drag = nil
	}
}
