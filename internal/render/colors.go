package render

import "slices"

// TileSet holds the glyphs used to draw the grid itself. Entities carry
// their own glyphs.
type TileSet struct {
	Wall     string
	Floor    string
	Waypoint string // patrol waypoint cells
	Sight    string // floor inside an enemy sight cone
}

// TileSets maps theme names to tile sets.
var TileSets = map[string]TileSet{
	"pasture": {
		Wall:     "🧱",
		Floor:    "🟩",
		Waypoint: "🟨",
		Sight:    "🟥",
	},
	"night": {
		Wall:     "🌑",
		Floor:    "⬛",
		Waypoint: "🔹",
		Sight:    "🔸",
	},
	"ascii": {
		Wall:     "#",
		Floor:    ".",
		Waypoint: "+",
		Sight:    ":",
	},
}

// DefaultTileSet is the theme used when none is configured.
const DefaultTileSet = "pasture"

// TileSetNames returns the theme names in sorted order.
func TileSetNames() []string {
	names := make([]string, 0, len(TileSets))
	for n := range TileSets {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

// LookupTileSet returns the named theme, falling back to the default.
func LookupTileSet(name string) (TileSet, bool) {
	ts, ok := TileSets[name]
	if !ok {
		return TileSets[DefaultTileSet], false
	}
	return ts, true
}
