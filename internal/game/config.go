package game

import (
	"errors"
	"fmt"
	"strings"

	"goatkeeper/internal/agent"
	"goatkeeper/internal/render"

	"github.com/BurntSushi/toml"
)

// ErrInvalidConfig is wrapped by LoadConfig and Config.Validate failures.
var ErrInvalidConfig = errors.New("invalid game config")

// Config is everything a level and its frame loop are tuned by.
type Config struct {
	Agent agent.Config `toml:"agent"`
	// PlayerSpeed is the player's walking speed in world units per second.
	PlayerSpeed float64 `toml:"player_speed"`
	FPS         int     `toml:"fps"`
	// PatrolGroups is how many waypoint digit groups are handed out to
	// enemies, starting from 0.
	PatrolGroups int    `toml:"patrol_groups"`
	MapPath      string `toml:"map"`
	Theme        string `toml:"theme"`
}

// DefaultConfig returns the built-in tuning.
func DefaultConfig() Config {
	return Config{
		Agent:        agent.DefaultConfig(),
		PlayerSpeed:  20,
		FPS:          30,
		PatrolGroups: 2,
		Theme:        render.DefaultTileSet,
	}
}

// FrameStep is the simulated time of one frame, in seconds.
func (c Config) FrameStep() float64 { return 1 / float64(c.FPS) }

// Validate reports the first out-of-range field.
func (c Config) Validate() error {
	if err := c.Agent.Validate(); err != nil {
		return err
	}
	switch {
	case c.PlayerSpeed <= 0:
		return fmt.Errorf("%w: player_speed %v", ErrInvalidConfig, c.PlayerSpeed)
	case c.FPS <= 0 || c.FPS > 240:
		return fmt.Errorf("%w: fps %d", ErrInvalidConfig, c.FPS)
	case c.PatrolGroups < 0 || c.PatrolGroups > 10:
		return fmt.Errorf("%w: patrol_groups %d", ErrInvalidConfig, c.PatrolGroups)
	}
	if _, ok := render.LookupTileSet(c.Theme); !ok {
		return fmt.Errorf("%w: theme %q (have %s)", ErrInvalidConfig, c.Theme, strings.Join(render.TileSetNames(), ", "))
	}
	return nil
}

// LoadConfig overlays the TOML file at path on DefaultConfig. Keys the
// file sets that Config does not know are an error.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return cfg, fmt.Errorf("load config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return cfg, fmt.Errorf("%w: unknown keys in %s: %s", ErrInvalidConfig, path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}
