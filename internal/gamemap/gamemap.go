package gamemap

import (
	"math"

	"goatkeeper/internal/vecmath"
)

// GameMap is the navigation grid for one level. Cell (x, y) is centred on
// world position (x*NodeSize, 0, y*NodeSize). The map is read-only once
// loaded and may be shared by every agent on the level.
type GameMap struct {
	Width, Height int
	NodeSize      float64
	Tiles         [][]Tile
}

// New creates a GameMap filled with walls.
func New(width, height int, nodeSize float64) *GameMap {
	tiles := make([][]Tile, height)
	for y := range tiles {
		tiles[y] = make([]Tile, width)
		for x := range tiles[y] {
			tiles[y][x] = MakeWall()
		}
	}
	return &GameMap{Width: width, Height: height, NodeSize: nodeSize, Tiles: tiles}
}

// InBounds reports whether (x, y) is within the map boundaries.
func (m *GameMap) InBounds(x, y int) bool {
	return x >= 0 && x < m.Width && y >= 0 && y < m.Height
}

// At returns a pointer to the tile at (x, y). Panics if out of bounds.
func (m *GameMap) At(x, y int) *Tile {
	return &m.Tiles[y][x]
}

// Set replaces the tile at (x, y).
func (m *GameMap) Set(x, y int, t Tile) {
	m.Tiles[y][x] = t
}

// IsWalkable returns true when (x, y) is in bounds and walkable.
func (m *GameMap) IsWalkable(x, y int) bool {
	if !m.InBounds(x, y) {
		return false
	}
	return m.Tiles[y][x].Walkable
}

// CellToWorld returns the world position of a cell centre.
func (m *GameMap) CellToWorld(x, y int) vecmath.Vec3 {
	return vecmath.Vec3{X: float64(x) * m.NodeSize, Z: float64(y) * m.NodeSize}
}

// WorldToCell returns the cell whose centre is nearest to pos. ok is false
// when that cell lies outside the map.
func (m *GameMap) WorldToCell(pos vecmath.Vec3) (x, y int, ok bool) {
	x = int(math.Floor(pos.X/m.NodeSize + 0.5))
	y = int(math.Floor(pos.Z/m.NodeSize + 0.5))
	return x, y, m.InBounds(x, y)
}

// Each calls fn for every cell in row-major order.
func (m *GameMap) Each(fn func(x, y int, t Tile)) {
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			fn(x, y, m.Tiles[y][x])
		}
	}
}
