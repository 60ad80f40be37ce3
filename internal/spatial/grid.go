package spatial

import (
	"math"

	"github.com/quiltspace/quilt/pkg/domain"
)

// Placement is an occupied grid footprint in cell units.
type Placement struct {
	GridX  int
	GridY  int
	Width  int
	Height int
}

// Overlaps reports whether two footprints share any cell.
func (p Placement) Overlaps(q Placement) bool {
	return p.GridX < q.GridX+q.Width && q.GridX < p.GridX+p.Width &&
		p.GridY < q.GridY+q.Height && q.GridY < p.GridY+p.Height
}

// Grid snaps decorative items to cells on a bounded canvas.
type Grid struct {
	// Cols and Rows bound the canvas in cells.
	Cols int
	Rows int
	// CellSize is the pixel edge length of one cell.
	CellSize float64
	// SuggestThreshold is the cell distance within which a
	// spacing suggestion is offered alongside the grid snap.
	SuggestThreshold float64
}

// NewGrid creates a snapping grid with the default suggestion
// threshold of two cells.
func NewGrid(cols, rows int, cellSize float64) *Grid {
	return &Grid{Cols: cols, Rows: rows, CellSize: cellSize, SuggestThreshold: 2}
}

// SnapResult is the outcome of resolving a drop position. Snapped is
// the collision-free grid placement. Suggested, when present, is the
// spacing-suggestion alternative; the grid snap stays the primary
// target, the suggestion is offered, never imposed.
type SnapResult struct {
	Snapped   Placement
	Suggested *Placement
}

// Snap resolves a pixel drop position for an item against the placed
// footprints. The candidate cell is the one under the pointer; if the
// item's footprint collides there, the nearest free cell is found by
// searching outward in rings. When no free cell exists inside the
// canvas, ErrNoSnapPosition is returned and the caller leaves the item
// at its raw pixel position.
func (g *Grid) Snap(px, py float64, item domain.Decoration, placed []Placement) (SnapResult, error) {
	w, h := footprint(item)
	cx, cy := g.cellAt(px, py)

	snapped, ok := g.nearestFree(cx, cy, w, h, placed)
	if !ok {
		return SnapResult{}, domain.ErrNoSnapPosition
	}

	res := SnapResult{Snapped: snapped}
	if sug, ok := g.suggest(cx, cy, w, h, placed); ok && sug != snapped {
		res.Suggested = &sug
	}
	return res, nil
}

// cellAt maps a pixel position to its grid cell, clamped to the canvas.
func (g *Grid) cellAt(px, py float64) (int, int) {
	cx := int(math.Floor(px / g.CellSize))
	cy := int(math.Floor(py / g.CellSize))
	return clamp(cx, 0, g.Cols-1), clamp(cy, 0, g.Rows-1)
}

// nearestFree finds the closest collision-free cell that fits a w×h
// footprint, searching rings of increasing radius around the candidate.
func (g *Grid) nearestFree(cx, cy, w, h int, placed []Placement) (Placement, bool) {
	maxRadius := g.Cols
	if g.Rows > maxRadius {
		maxRadius = g.Rows
	}
	for radius := 0; radius <= maxRadius; radius++ {
		for _, cell := range ring(cx, cy, radius) {
			p := Placement{GridX: cell[0], GridY: cell[1], Width: w, Height: h}
			if g.fits(p) && free(p, placed) {
				return p, true
			}
		}
	}
	return Placement{}, false
}

// suggest scores free cells near the pointer by proximity to existing
// items, encouraging clustering without forcing exact alignment. A
// suggestion is offered only within the threshold cell distance of the
// pointer cell.
func (g *Grid) suggest(cx, cy, w, h int, placed []Placement) (Placement, bool) {
	if len(placed) == 0 {
		return Placement{}, false
	}

	span := int(math.Ceil(g.SuggestThreshold))
	best := Placement{}
	bestScore := math.Inf(1)
	found := false

	for dy := -span; dy <= span; dy++ {
		for dx := -span; dx <= span; dx++ {
			if math.Hypot(float64(dx), float64(dy)) > g.SuggestThreshold {
				continue
			}
			p := Placement{GridX: cx + dx, GridY: cy + dy, Width: w, Height: h}
			if !g.fits(p) || !free(p, placed) {
				continue
			}
			// Lower is better: adjacency to neighbors beats isolation,
			// with pointer distance as the secondary pull.
			score := neighborDistance(p, placed) + 0.25*math.Hypot(float64(dx), float64(dy))
			if score < bestScore {
				bestScore = score
				best = p
				found = true
			}
		}
	}
	return best, found
}

// neighborDistance is the center distance from p to its closest placed
// neighbor, in cells.
func neighborDistance(p Placement, placed []Placement) float64 {
	closest := math.Inf(1)
	pcx := float64(p.GridX) + float64(p.Width)/2
	pcy := float64(p.GridY) + float64(p.Height)/2
	for _, q := range placed {
		qcx := float64(q.GridX) + float64(q.Width)/2
		qcy := float64(q.GridY) + float64(q.Height)/2
		if d := math.Hypot(pcx-qcx, pcy-qcy); d < closest {
			closest = d
		}
	}
	return closest
}

func (g *Grid) fits(p Placement) bool {
	return p.GridX >= 0 && p.GridY >= 0 &&
		p.GridX+p.Width <= g.Cols && p.GridY+p.Height <= g.Rows
}

func free(p Placement, placed []Placement) bool {
	for _, q := range placed {
		if p.Overlaps(q) {
			return false
		}
	}
	return true
}

// ring enumerates the cells at Chebyshev distance radius from (cx, cy).
// Radius zero is the cell itself.
func ring(cx, cy, radius int) [][2]int {
	if radius == 0 {
		return [][2]int{{cx, cy}}
	}
	var cells [][2]int
	for x := cx - radius; x <= cx+radius; x++ {
		cells = append(cells, [2]int{x, cy - radius}, [2]int{x, cy + radius})
	}
	for y := cy - radius + 1; y <= cy+radius-1; y++ {
		cells = append(cells, [2]int{cx - radius, y}, [2]int{cx + radius, y})
	}
	return cells
}

func footprint(item domain.Decoration) (int, int) {
	w, h := item.Width, item.Height
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return w, h
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
