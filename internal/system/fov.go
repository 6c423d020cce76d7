package system

import (
	"math"

	"goatkeeper/internal/agent"
	"goatkeeper/internal/gamemap"
	"goatkeeper/internal/vecmath"
)

// octant transform matrices.
// For each octant, a (dx, dy) sweep pair maps to a grid offset via:
//
//	gridX = cx + dx*xx + dy*xy
//	gridY = cy + dx*yx + dy*yy
//
// where dx sweeps within the row and dy is the fixed row index.
var octants = [8][4]int{
	{1, 0, 0, 1},
	{0, 1, 1, 0},
	{0, -1, 1, 0},
	{-1, 0, 0, 1},
	{-1, 0, 0, -1},
	{0, -1, -1, 0},
	{0, 1, -1, 0},
	{1, 0, 0, -1},
}

// Visibility marks grid cells, row-major. The zero value marks nothing.
type Visibility struct {
	Width int
	cells []bool
}

func newVisibility(gmap *gamemap.GameMap) Visibility {
	return Visibility{Width: gmap.Width, cells: make([]bool, gmap.Width*gmap.Height)}
}

// At reports whether (x, y) is marked. Out-of-range cells are unmarked.
func (v Visibility) At(x, y int) bool {
	if x < 0 || x >= v.Width || v.Width == 0 {
		return false
	}
	i := y*v.Width + x
	return i >= 0 && i < len(v.cells) && v.cells[i]
}

func (v Visibility) set(x, y int) { v.cells[y*v.Width+x] = true }

// Count returns the number of marked cells.
func (v Visibility) Count() int {
	n := 0
	for _, c := range v.cells {
		if c {
			n++
		}
	}
	return n
}

// ShadowCast marks the cells visible from (cx, cy) within radius cells,
// treating unwalkable cells as opaque. The origin is always marked.
func ShadowCast(gmap *gamemap.GameMap, cx, cy, radius int) Visibility {
	vis := newVisibility(gmap)
	if !gmap.InBounds(cx, cy) {
		return vis
	}
	vis.set(cx, cy)
	for _, m := range octants {
		castLight(gmap, vis, cx, cy, 1, 1.0, 0.0, radius, m[0], m[1], m[2], m[3])
	}
	return vis
}

// SightCone marks the cells an enemy can see: shadow-cast from its cell,
// then filtered by the enemy's sight cone.
func SightCone(gmap *gamemap.GameMap, e *agent.Enemy, pos vecmath.Vec3) Visibility {
	cx, cy, ok := gmap.WorldToCell(pos)
	if !ok {
		return newVisibility(gmap)
	}
	radius := int(math.Ceil(e.Config().SightRadius / gmap.NodeSize))
	vis := ShadowCast(gmap, cx, cy, radius)
	for i, lit := range vis.cells {
		if !lit {
			continue
		}
		x, y := i%vis.Width, i/vis.Width
		if !e.CanSee(gmap.CellToWorld(x, y).Flat(pos.Y)) {
			vis.cells[i] = false
		}
	}
	return vis
}

// castLight casts light for one octant using recursive shadowcasting.
//   - j is the current row (distance from origin along the main axis)
//   - dy = -j is fixed for the entire inner sweep
//   - dx sweeps from -j to 0
//   - lSlope = (dx - 0.5) / (dy + 0.5)   rSlope = (dx + 0.5) / (dy - 0.5)
func castLight(gmap *gamemap.GameMap, vis Visibility, cx, cy, row int, start, end float64, radius, xx, xy, yx, yy int) {
	if start < end {
		return
	}
	radiusSq := float64(radius * radius)
	newStart := start

	for j := row; j <= radius; j++ {
		dy := -j
		blocked := false

		for dx := -j; dx <= 0; dx++ {
			wx := cx + dx*xx + dy*xy
			wy := cy + dx*yx + dy*yy

			lSlope := (float64(dx) - 0.5) / (float64(dy) + 0.5)
			rSlope := (float64(dx) + 0.5) / (float64(dy) - 0.5)

			if start < rSlope {
				continue
			}
			if end > lSlope {
				break
			}

			if float64(dx*dx+dy*dy) < radiusSq && gmap.InBounds(wx, wy) {
				vis.set(wx, wy)
			}

			opaque := !gmap.IsWalkable(wx, wy)

			if blocked {
				if opaque {
					newStart = rSlope
				} else {
					blocked = false
					start = newStart
				}
			} else if opaque && j < radius {
				blocked = true
				castLight(gmap, vis, cx, cy, j+1, start, lSlope, radius, xx, xy, yx, yy)
				newStart = rSlope
			}
		}
		if blocked {
			break
		}
	}
}
