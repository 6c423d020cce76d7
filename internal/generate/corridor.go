package generate

import "goatkeeper/internal/gamemap"

// carveCorridor digs a tunnel between (x1,y1) and (x2,y2) in the
// configured style.
func carveCorridor(gmap *gamemap.GameMap, x1, y1, x2, y2 int, cfg *Config) {
	switch cfg.CorridorStyle {
	case CorridorZShaped:
		midY := (y1 + y2) / 2
		carveV(gmap, y1, midY, x1)
		carveH(gmap, x1, x2, midY)
		carveV(gmap, midY, y2, x2)
	case CorridorStraight:
		carveH(gmap, x1, x2, y1)
		carveV(gmap, y1, y2, x2)
	default: // L-shaped, random elbow
		if cfg.Rand.Intn(2) == 0 {
			carveH(gmap, x1, x2, y1)
			carveV(gmap, y1, y2, x2)
		} else {
			carveV(gmap, y1, y2, x1)
			carveH(gmap, x1, x2, y2)
		}
	}
}

// carveH floors row y from x1 to x2 inclusive, in either order. Cells
// already carved keep their content.
func carveH(gmap *gamemap.GameMap, x1, x2, y int) {
	for x := min(x1, x2); x <= max(x1, x2); x++ {
		carve(gmap, x, y)
	}
}

// carveV floors column x from y1 to y2 inclusive, in either order.
func carveV(gmap *gamemap.GameMap, y1, y2, x int) {
	for y := min(y1, y2); y <= max(y1, y2); y++ {
		carve(gmap, x, y)
	}
}

func carve(gmap *gamemap.GameMap, x, y int) {
	if gmap.InBounds(x, y) && !gmap.IsWalkable(x, y) {
		gmap.Set(x, y, gamemap.MakeFloor())
	}
}
