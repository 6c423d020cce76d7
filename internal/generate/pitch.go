package generate

import (
	"errors"
	"fmt"
	"slices"

	"goatkeeper/internal/gamemap"
)

// ErrTooFewRooms is returned when the layout cannot host every entity in
// its own room.
var ErrTooFewRooms = errors.New("too few rooms")

// Pitch generates a playable level: the player starts in the first room,
// the goal sits in the last, the ball in a middle room, and each goat
// gets a room of its own with a patrol between two opposite corners.
// Patrol digits follow the goats' map order, so goat i walks group i.
func Pitch(cfg Config) (*gamemap.GameMap, error) {
	if cfg.Enemies < 0 || cfg.Enemies > 10 {
		return nil, fmt.Errorf("generate: %d enemies, want 0..10", cfg.Enemies)
	}
	gmap, rooms := Rooms(&cfg)
	if need := cfg.Enemies + 3; len(rooms) < need {
		return nil, fmt.Errorf("%w: have %d, need %d", ErrTooFewRooms, len(rooms), need)
	}

	place(gmap, rooms[0], gamemap.CharPlayer)
	place(gmap, rooms[len(rooms)-1], gamemap.CharGoal)
	ballRoom := len(rooms) / 2
	place(gmap, rooms[ballRoom], gamemap.CharBall)

	var goatRooms []Rect
	for i, r := range rooms[1 : len(rooms)-1] {
		if i+1 == ballRoom || len(goatRooms) == cfg.Enemies {
			continue
		}
		goatRooms = append(goatRooms, r)
	}
	// Row-major by goat cell, matching the order levels hand out groups.
	slices.SortFunc(goatRooms, func(a, b Rect) int {
		ax, ay := a.Center()
		bx, by := b.Center()
		if ay != by {
			return ay - by
		}
		return ax - bx
	})
	for i, r := range goatRooms {
		place(gmap, r, gamemap.CharEnemy)
		digit := byte('0' + i)
		gmap.Set(r.X1, r.Y1, gamemap.DecodeTile(digit))
		gmap.Set(r.X2, r.Y2, gamemap.DecodeTile(digit))
	}

	scatter(gmap, rooms, cfg)
	return gmap, nil
}

func place(gmap *gamemap.GameMap, r Rect, c byte) {
	x, y := r.Center()
	gmap.Set(x, y, gamemap.DecodeTile(c))
}

// scatter drops decorations on empty room floor.
func scatter(gmap *gamemap.GameMap, rooms []Rect, cfg Config) {
	for placed, tries := 0, 0; placed < cfg.Decorations && tries < cfg.Decorations*20; tries++ {
		r := rooms[cfg.Rand.Intn(len(rooms))]
		x := r.X1 + cfg.Rand.Intn(r.X2-r.X1+1)
		y := r.Y1 + cfg.Rand.Intn(r.Y2-r.Y1+1)
		if gmap.At(x, y).Kind != gamemap.TileFloor {
			continue
		}
		gmap.Set(x, y, gamemap.DecodeTile(gamemap.CharDecoration))
		placed++
	}
}
