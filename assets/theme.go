package assets

import "github.com/gdamore/tcell/v2"

// Emoji constants used as entity glyphs.
const (
	GlyphPlayer     = "🧑"
	GlyphGoat       = "🐐"
	GlyphBall       = "⚽"
	GlyphGoal       = "🥅"
	GlyphDecoration = "🌳"
	GlyphWall       = "🧱"
	GlyphFloor      = "·"
	GlyphWaypoint   = "∘"
	GlyphSight      = "░"
)

// Theme maps glyph roles to colours.
type Theme struct {
	Player, Enemy, Ball, Goal, Decoration tcell.Color
	Wall, Floor, Waypoint, Sight          tcell.Color
	HUD, HUDAlert                         tcell.Color
}

// DefaultTheme is used by every renderer unless overridden.
var DefaultTheme = Theme{
	Player:     tcell.ColorYellow,
	Enemy:      tcell.ColorWhite,
	Ball:       tcell.ColorWhite,
	Goal:       tcell.ColorGreen,
	Decoration: tcell.ColorDarkGreen,
	Wall:       tcell.ColorGray,
	Floor:      tcell.ColorDarkSlateGray,
	Waypoint:   tcell.ColorSteelBlue,
	Sight:      tcell.ColorDarkRed,
	HUD:        tcell.ColorWhite,
	HUDAlert:   tcell.ColorRed,
}
