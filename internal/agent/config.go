package agent

import (
	"errors"
	"fmt"

	"github.com/gdamore/tcell/v2"
)

// MoveMode selects how steering reaches the physics body.
type MoveMode string

const (
	// MoveVelocity sets the body velocity towards the waypoint, clamped so
	// one frame never carries the agent past it.
	MoveVelocity MoveMode = "velocity"
	// MoveImpulse applies a speed-sized impulse towards the waypoint every
	// frame and leaves friction to the body's damping.
	MoveImpulse MoveMode = "impulse"
)

// ErrInvalidConfig is wrapped by every Config.Validate failure.
var ErrInvalidConfig = errors.New("invalid agent config")

// Config tunes one enemy controller. Distances are world units, angles
// degrees, times seconds.
type Config struct {
	SightRadius        float64  `toml:"sight_radius"`
	SightHalfAngle     float64  `toml:"sight_half_angle"`
	PatrolSpeed        float64  `toml:"patrol_speed"`
	TrackingSpeed      float64  `toml:"tracking_speed"`
	ArriveOffset       float64  `toml:"arrive_offset"`
	WaypointSeparation float64  `toml:"waypoint_separation"`
	Friction           float64  `toml:"friction"`
	LostPlayerTime     float64  `toml:"lost_player_time"`
	Occlusion          bool     `toml:"occlusion"`
	Movement           MoveMode `toml:"movement"`
	DefaultColour      string   `toml:"default_colour"`
	TrackingColour     string   `toml:"tracking_colour"`
}

// DefaultConfig returns the stock goat tuning.
func DefaultConfig() Config {
	return Config{
		SightRadius:        50,
		SightHalfAngle:     60,
		PatrolSpeed:        10,
		TrackingSpeed:      15,
		ArriveOffset:       0.05,
		WaypointSeparation: 0.05,
		Friction:           0.6,
		LostPlayerTime:     0,
		Occlusion:          true,
		Movement:           MoveVelocity,
		DefaultColour:      "white",
		TrackingColour:     "red",
	}
}

// Validate reports the first out-of-range field.
func (c Config) Validate() error {
	switch {
	case c.SightRadius < 0:
		return fmt.Errorf("%w: sight_radius %v", ErrInvalidConfig, c.SightRadius)
	case c.SightHalfAngle < 0 || c.SightHalfAngle > 180:
		return fmt.Errorf("%w: sight_half_angle %v", ErrInvalidConfig, c.SightHalfAngle)
	case c.PatrolSpeed <= 0 || c.TrackingSpeed <= 0:
		return fmt.Errorf("%w: speeds must be positive", ErrInvalidConfig)
	case c.ArriveOffset < 0 || c.WaypointSeparation < 0:
		return fmt.Errorf("%w: negative offset", ErrInvalidConfig)
	case c.Friction < 0 || c.Friction > 1:
		return fmt.Errorf("%w: friction %v", ErrInvalidConfig, c.Friction)
	case c.LostPlayerTime < 0:
		return fmt.Errorf("%w: lost_player_time %v", ErrInvalidConfig, c.LostPlayerTime)
	}
	switch c.Movement {
	case MoveVelocity, MoveImpulse:
	default:
		return fmt.Errorf("%w: movement %q", ErrInvalidConfig, c.Movement)
	}
	for _, name := range []string{c.DefaultColour, c.TrackingColour} {
		if name != "" && tcell.GetColor(name) == tcell.ColorDefault {
			return fmt.Errorf("%w: unknown colour %q", ErrInvalidConfig, name)
		}
	}
	return nil
}

func colour(name string) tcell.Color {
	if name == "" {
		return tcell.ColorDefault
	}
	return tcell.GetColor(name)
}
