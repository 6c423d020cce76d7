package component

import (
	"goatkeeper/internal/ecs"

	"github.com/gdamore/tcell/v2"
)

const CRenderable ecs.ComponentType = 3

// Renderable is stored as a pointer so agents can retint it.
type Renderable struct {
	Glyph       string
	FGColor     tcell.Color
	BGColor     tcell.Color
	RenderOrder int
}

func (*Renderable) Type() ecs.ComponentType { return CRenderable }

// SetColour changes the foreground colour.
func (r *Renderable) SetColour(c tcell.Color) { r.FGColor = c }
