package render

import (
	"sort"

	"goatkeeper/internal/component"
	"goatkeeper/internal/ecs"
	"goatkeeper/internal/gamemap"
	"goatkeeper/internal/system"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// hudRows is the number of rows reserved at the bottom for the HUD.
const hudRows = 6

// Renderer draws the level onto a tcell screen.
type Renderer struct {
	screen tcell.Screen
	camera *Camera
	tiles  TileSet
}

// NewRenderer creates a Renderer for the given screen.
func NewRenderer(screen tcell.Screen, tiles TileSet) *Renderer {
	w, h := screen.Size()
	return &Renderer{
		screen: screen,
		camera: NewCamera(0, 0, w, max(h-hudRows, 1)),
		tiles:  tiles,
	}
}

// Resize refits the viewport after a terminal resize.
func (r *Renderer) Resize() {
	w, h := r.screen.Size()
	r.camera.ViewWidth, r.camera.ViewHeight = w, max(h-hudRows, 1)
}

// CenterOn recenters the camera on cell (x, y).
func (r *Renderer) CenterOn(x, y int) { r.camera.Center(x, y) }

// WorldToScreen converts cell coordinates to screen coordinates.
func (r *Renderer) WorldToScreen(wx, wy int) (sx, sy int, visible bool) {
	return r.camera.WorldToScreen(wx, wy)
}

// Frame is everything DrawFrame needs for one picture.
type Frame struct {
	World *ecs.World
	Grid  *gamemap.GameMap
	// Sight holds one cone per enemy; nil hides cones.
	Sight []system.Visibility
}

// DrawFrame clears the screen and renders the grid and entities.
func (r *Renderer) DrawFrame(f Frame) {
	r.screen.Clear()
	r.drawMap(f.Grid, f.Sight)
	r.drawEntities(f.World, f.Grid)
}

func (r *Renderer) drawMap(gmap *gamemap.GameMap, sight []system.Visibility) {
	style := tcell.StyleDefault.Background(tcell.ColorBlack)
	gmap.Each(func(x, y int, tile gamemap.Tile) {
		sx, sy, onScreen := r.camera.WorldToScreen(x, y)
		if !onScreen {
			return
		}
		glyph := r.tiles.Floor
		switch {
		case !tile.Walkable:
			glyph = r.tiles.Wall
		case inSight(sight, x, y):
			glyph = r.tiles.Sight
		case tile.Kind == gamemap.TilePatrol:
			glyph = r.tiles.Waypoint
		}
		r.putGlyph(sx, sy, glyph, style)
	})
}

func inSight(sight []system.Visibility, x, y int) bool {
	for _, v := range sight {
		if v.At(x, y) {
			return true
		}
	}
	return false
}

// renderableEntity holds sorting info for entity rendering.
type renderableEntity struct {
	order  int
	cx, cy int
	rend   component.Renderable
}

// drawEntities renders all entities with Renderable + Transform, ordered by RenderOrder.
func (r *Renderer) drawEntities(w *ecs.World, gmap *gamemap.GameMap) {
	ids := w.Query(component.CRenderable, component.CTransform)
	entities := make([]renderableEntity, 0, len(ids))

	for _, id := range ids {
		if w.Has(id, component.CTagWall) {
			continue // walls are drawn from the grid
		}
		tf := w.Get(id, component.CTransform).(*component.Transform)
		rend := w.Get(id, component.CRenderable).(*component.Renderable)
		cx, cy, ok := gmap.WorldToCell(tf.Pos)
		if !ok {
			continue
		}
		entities = append(entities, renderableEntity{order: rend.RenderOrder, cx: cx, cy: cy, rend: *rend})
	}

	// Lower order is drawn first, behind.
	sort.SliceStable(entities, func(i, j int) bool {
		return entities[i].order < entities[j].order
	})

	for _, e := range entities {
		sx, sy, onScreen := r.camera.WorldToScreen(e.cx, e.cy)
		if !onScreen {
			continue
		}
		style := tcell.StyleDefault.Foreground(e.rend.FGColor).Background(tcell.ColorBlack)
		r.putGlyph(sx, sy, e.rend.Glyph, style)
	}
}

// putGlyph draws a single glyph (ASCII or multi-rune emoji) at screen position (x, y).
func (r *Renderer) putGlyph(x, y int, glyph string, style tcell.Style) {
	runes := []rune(glyph)
	if len(runes) == 0 {
		return
	}
	mainc := runes[0]
	var combc []rune
	if len(runes) > 1 {
		combc = runes[1:]
	}
	r.screen.SetContent(x, y, mainc, combc, style)
	if runewidth.StringWidth(glyph) == 2 {
		// Fill the second column to avoid rendering artifacts.
		r.screen.SetContent(x+1, y, ' ', nil, style)
	}
}
