// Package generate builds random pitches: BSP rooms joined by corridors,
// then populated with a player, a ball, a goal and patrolling goats.
package generate

import (
	"math/rand"

	"goatkeeper/internal/gamemap"
)

// CorridorStyle selects the shape of connecting tunnels.
type CorridorStyle uint8

const (
	CorridorLShaped CorridorStyle = iota
	CorridorZShaped
	CorridorStraight
)

// Config drives procedural generation for one pitch.
type Config struct {
	MapWidth, MapHeight int
	NodeSize            float64
	MinLeafSize         int
	MaxLeafSize         int
	MinRoomSize         int
	RoomPadding         int
	CorridorStyle       CorridorStyle
	// Enemies is how many goats to place, each in its own room with a
	// two-waypoint patrol group. At most 10.
	Enemies     int
	Decorations int
	Rand        *rand.Rand
}

// DefaultConfig returns a pitch about twice the size of the built-in map.
func DefaultConfig(seed int64) Config {
	return Config{
		MapWidth:      40,
		MapHeight:     24,
		NodeSize:      5,
		MinLeafSize:   7,
		MaxLeafSize:   14,
		MinRoomSize:   3,
		RoomPadding:   1,
		CorridorStyle: CorridorLShaped,
		Enemies:       2,
		Decorations:   4,
		Rand:          rand.New(rand.NewSource(seed)),
	}
}

// Rect is a room, inclusive of both corners.
type Rect struct {
	X1, Y1, X2, Y2 int
}

// Center returns the room's middle cell.
func (r Rect) Center() (int, int) {
	return (r.X1 + r.X2) / 2, (r.Y1 + r.Y2) / 2
}

// Intersects reports whether r and o share any cell.
func (r Rect) Intersects(o Rect) bool {
	return r.X1 <= o.X2 && r.X2 >= o.X1 && r.Y1 <= o.Y2 && r.Y2 >= o.Y1
}

// bspLeaf is a node in the BSP tree.
type bspLeaf struct {
	X, Y, W, H  int
	left, right *bspLeaf
	room        *Rect
}

// split divides the leaf into two children, returning false when leaf is too small.
func (l *bspLeaf) split(cfg *Config) bool {
	if l.left != nil || l.right != nil {
		return false
	}
	// Horizontal when taller, vertical when wider.
	splitH := cfg.Rand.Intn(2) == 0
	if l.W > l.H && float64(l.W)/float64(l.H) >= 1.25 {
		splitH = false
	} else if l.H > l.W && float64(l.H)/float64(l.W) >= 1.25 {
		splitH = true
	}

	size := l.H
	if !splitH {
		size = l.W
	}
	lo, hi := cfg.MinLeafSize, size-cfg.MinLeafSize
	if size <= cfg.MinLeafSize*2 || lo >= hi {
		return false
	}
	at := lo + cfg.Rand.Intn(hi-lo+1)

	if splitH {
		l.left = &bspLeaf{X: l.X, Y: l.Y, W: l.W, H: at}
		l.right = &bspLeaf{X: l.X, Y: l.Y + at, W: l.W, H: l.H - at}
	} else {
		l.left = &bspLeaf{X: l.X, Y: l.Y, W: at, H: l.H}
		l.right = &bspLeaf{X: l.X + at, Y: l.Y, W: l.W - at, H: l.H}
	}
	return true
}

// carveRooms recursively carves one room inside each terminal leaf and
// appends it to rooms.
func (l *bspLeaf) carveRooms(gmap *gamemap.GameMap, cfg *Config, rooms *[]Rect) {
	if l.left != nil || l.right != nil {
		if l.left != nil {
			l.left.carveRooms(gmap, cfg, rooms)
		}
		if l.right != nil {
			l.right.carveRooms(gmap, cfg, rooms)
		}
		return
	}
	pad := cfg.RoomPadding
	availW := max(l.W-2*pad, cfg.MinRoomSize)
	availH := max(l.H-2*pad, cfg.MinRoomSize)
	rw := cfg.MinRoomSize + cfg.Rand.Intn(max(1, availW-cfg.MinRoomSize+1))
	rh := cfg.MinRoomSize + cfg.Rand.Intn(max(1, availH-cfg.MinRoomSize+1))
	rw = max(min(rw, l.W-2*pad), 3)
	rh = max(min(rh, l.H-2*pad), 3)

	rx := max(l.X+pad+cfg.Rand.Intn(max(1, l.W-rw-2*pad+1)), 1)
	ry := max(l.Y+pad+cfg.Rand.Intn(max(1, l.H-rh-2*pad+1)), 1)
	// Keep a one-cell wall border around the map.
	if rx+rw >= gmap.Width {
		rw = gmap.Width - rx - 1
	}
	if ry+rh >= gmap.Height {
		rh = gmap.Height - ry - 1
	}
	if rw < 3 || rh < 3 {
		return
	}

	room := Rect{X1: rx, Y1: ry, X2: rx + rw - 1, Y2: ry + rh - 1}
	l.room = &room
	for y := room.Y1; y <= room.Y2; y++ {
		for x := room.X1; x <= room.X2; x++ {
			gmap.Set(x, y, gamemap.MakeFloor())
		}
	}
	*rooms = append(*rooms, room)
}

// anyRoom returns a room from this subtree, preferring the left side.
func (l *bspLeaf) anyRoom() *Rect {
	if l.room != nil {
		return l.room
	}
	for _, c := range []*bspLeaf{l.left, l.right} {
		if c == nil {
			continue
		}
		if r := c.anyRoom(); r != nil {
			return r
		}
	}
	return nil
}

// connectChildren carves corridors between the two children of every split leaf.
func (l *bspLeaf) connectChildren(gmap *gamemap.GameMap, cfg *Config) {
	if l.left == nil || l.right == nil {
		return
	}
	l.left.connectChildren(gmap, cfg)
	l.right.connectChildren(gmap, cfg)

	a, b := l.left.anyRoom(), l.right.anyRoom()
	if a == nil || b == nil {
		return
	}
	ax, ay := a.Center()
	bx, by := b.Center()
	carveCorridor(gmap, ax, ay, bx, by, cfg)
}

// Rooms splits a walled map with BSP, carves a room per leaf and joins
// sibling subtrees with corridors. Every floor cell is reachable from
// every other.
func Rooms(cfg *Config) (*gamemap.GameMap, []Rect) {
	gmap := gamemap.New(cfg.MapWidth, cfg.MapHeight, cfg.NodeSize)
	root := &bspLeaf{W: cfg.MapWidth, H: cfg.MapHeight}

	leaves := []*bspLeaf{root}
	for splitAny := true; splitAny; {
		splitAny = false
		var next []*bspLeaf
		for _, leaf := range leaves {
			if leaf.left != nil || leaf.right != nil {
				next = append(next, leaf.left, leaf.right)
				continue
			}
			if leaf.W > cfg.MaxLeafSize || leaf.H > cfg.MaxLeafSize || cfg.Rand.Float64() > 0.25 {
				if leaf.split(cfg) {
					next = append(next, leaf.left, leaf.right)
					splitAny = true
					continue
				}
			}
			next = append(next, leaf)
		}
		leaves = next
	}

	var rooms []Rect
	root.carveRooms(gmap, cfg, &rooms)
	root.connectChildren(gmap, cfg)
	return gmap, rooms
}
