package game

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// RunLog records statistics gathered during one play session.
type RunLog struct {
	ID        string     `json:"id"`
	Started   time.Time  `json:"started"`
	Map       string     `json:"map"`
	Autopilot bool       `json:"autopilot"`
	Ticks     int        `json:"ticks"`
	Goals     int        `json:"goals"`
	Caught    int        `json:"caught"`
	Pickups   int        `json:"pickups"`
	Enemies   []EnemyLog `json:"enemies,omitempty"`
}

// EnemyLog is one enemy's counters at the end of a run.
type EnemyLog struct {
	Name           string `json:"name"`
	TrackingStarts int    `json:"tracking_starts"`
	PlayerLosses   int    `json:"player_losses"`
	Arrivals       int    `json:"arrivals"`
}

// NewRunLog starts a log with a fresh run ID.
func NewRunLog(mapName string, autopilot bool) RunLog {
	return RunLog{
		ID:        uuid.NewString(),
		Started:   time.Now().UTC(),
		Map:       mapName,
		Autopilot: autopilot,
	}
}

// Record copies the level's score and enemy counters into the log.
func (r *RunLog) Record(l *Level) {
	s := l.Score()
	r.Ticks, r.Goals, r.Caught, r.Pickups = s.Ticks, s.Goals, s.Caught, s.Pickups
	r.Enemies = r.Enemies[:0]
	for _, e := range l.Enemies() {
		st := e.Stats()
		r.Enemies = append(r.Enemies, EnemyLog{
			Name:           e.Name(),
			TrackingStarts: st.TrackingStarts,
			PlayerLosses:   st.PlayerLosses,
			Arrivals:       st.Arrivals,
		})
	}
}

// SaveRunLog appends the run as a single JSON line to runs.jsonl in the
// data directory.
func SaveRunLog(log RunLog) error {
	dir, err := runLogDir()
	if err != nil {
		return fmt.Errorf("run log dir: %w", err)
	}
	return AppendRunLog(filepath.Join(dir, "runs.jsonl"), log)
}

// AppendRunLog appends the run as a single JSON line to path, creating
// the file and its directory as needed.
func AppendRunLog(path string, log RunLog) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create run log dir: %w", err)
	}
	data, err := json.Marshal(log)
	if err != nil {
		return fmt.Errorf("encode run log: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open run log: %w", err)
	}
	defer f.Close()
	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("write run log: %w", err)
	}
	return nil
}

// runLogDir returns the directory where run logs are stored.
// Follows XDG Base Directory spec: $XDG_DATA_HOME/goatkeeper,
// defaulting to ~/.local/share/goatkeeper.
func runLogDir() (string, error) {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "goatkeeper"), nil
}
