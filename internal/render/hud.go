package render

import (
	"fmt"
	"strings"

	"goatkeeper/assets"
	"goatkeeper/internal/agent"
	"goatkeeper/internal/system"

	"github.com/gdamore/tcell/v2"
)

// HUD is the status shown below the map.
type HUD struct {
	Tick      int
	Goals     int
	Caught    int
	Autopilot bool
	Paused    bool
	Enemies   []system.EnemyStatus
	Messages  []string
}

// DrawHUD renders the status bar, the enemy roster and the message log at
// the bottom of the screen, then shows the frame.
func (r *Renderer) DrawHUD(h HUD) {
	_, screenH := r.screen.Size()
	hudY := screenH - hudRows
	theme := assets.DefaultTheme

	r.drawHLine(hudY, theme.Wall)

	mode := "manual"
	if h.Autopilot {
		mode = "autopilot"
	}
	status := fmt.Sprintf("tick %d  goals %d  caught %d  [%s]", h.Tick, h.Goals, h.Caught, mode)
	if h.Paused {
		status += "  PAUSED"
	}
	r.drawText(0, hudY+1, status, tcell.StyleDefault.Foreground(theme.HUD))

	col := 0
	for _, e := range h.Enemies {
		style := tcell.StyleDefault.Foreground(theme.HUD)
		if e.Mode == agent.ModeTracking {
			style = style.Foreground(theme.HUDAlert)
		}
		text := fmt.Sprintf("%s:%s ", e.Name, e.Mode)
		r.drawText(col, hudY+2, text, style)
		col += len(text)
	}

	start := max(len(h.Messages)-3, 0)
	for i, msg := range h.Messages[start:] {
		r.drawText(0, hudY+3+i, msg, tcell.StyleDefault.Foreground(tcell.ColorLightYellow))
	}

	r.screen.Show()
}

// DrawTitle clears the screen and centres lines on it.
func (r *Renderer) DrawTitle(lines ...string) {
	r.screen.Clear()
	w, h := r.screen.Size()
	top := (h - len(lines)) / 2
	for i, line := range lines {
		x := max((w-len([]rune(line)))/2, 0)
		style := tcell.StyleDefault.Foreground(tcell.ColorWhite)
		if i == 0 {
			style = style.Bold(true)
		}
		r.drawText(x, top+i, line, style)
	}
	r.screen.Show()
}

func (r *Renderer) drawHLine(y int, color tcell.Color) {
	w, _ := r.screen.Size()
	style := tcell.StyleDefault.Foreground(color)
	r.drawText(0, y, strings.Repeat("─", w), style)
}

func (r *Renderer) drawText(x, y int, text string, style tcell.Style) {
	col := x
	for _, ch := range text {
		r.screen.SetContent(col, y, ch, nil, style)
		col++
	}
}
