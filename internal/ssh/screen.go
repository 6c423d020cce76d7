package ssh

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/gdamore/tcell/v2"
	gossh "github.com/gliderlabs/ssh"
)

// ErrNoPTY is returned by NewScreen for sessions without a terminal.
var ErrNoPTY = errors.New("session has no pty")

// DefaultTerm is used when the client's TERM is missing or not allowed.
const DefaultTerm = "xterm-256color"

// AllowedTerms lists the TERM values a client may select. Anything else
// falls back to DefaultTerm so clients cannot point terminfo lookups at
// arbitrary names.
var AllowedTerms = map[string]bool{
	"xterm":                 true,
	"xterm-256color":        true,
	"screen":                true,
	"screen-256color":       true,
	"tmux":                  true,
	"tmux-256color":         true,
	"linux":                 true,
	"vt100":                 true,
	"rxvt-unicode":          true,
	"rxvt-unicode-256color": true,
}

// termMu serialises the TERM environment swap around screen creation.
var termMu sync.Mutex

// SessionTerm returns the TERM the session asked for, if allowed.
func SessionTerm(env []string) string {
	for _, kv := range env {
		if v, ok := strings.CutPrefix(kv, "TERM="); ok && AllowedTerms[v] {
			return v
		}
	}
	return DefaultTerm
}

// NewScreen creates and initialises a tcell screen drawing on the
// session's terminal.
func NewScreen(s gossh.Session) (tcell.Screen, error) {
	pty, winCh, ok := s.Pty()
	if !ok {
		return nil, ErrNoPTY
	}
	tty := NewTty(s, pty, winCh)
	term := pty.Term
	if !AllowedTerms[term] {
		term = SessionTerm(s.Environ())
	}

	// tcell reads TERM from the process environment.
	termMu.Lock()
	prev, had := os.LookupEnv("TERM")
	_ = os.Setenv("TERM", term)
	screen, err := tcell.NewTerminfoScreenFromTty(tty)
	if had {
		_ = os.Setenv("TERM", prev)
	} else {
		_ = os.Unsetenv("TERM")
	}
	termMu.Unlock()
	if err != nil {
		tty.Close()
		return nil, fmt.Errorf("terminal %s: %w", term, err)
	}
	if err := screen.Init(); err != nil {
		tty.Close()
		return nil, fmt.Errorf("init screen: %w", err)
	}
	return screen, nil
}
