// Package ssh adapts gliderlabs/ssh sessions to tcell screens so each
// connection can run its own game.
package ssh

import (
	"sync"

	"github.com/gdamore/tcell/v2"
	gossh "github.com/gliderlabs/ssh"
)

// Tty implements tcell.Tty on top of one SSH session.
type Tty struct {
	session gossh.Session
	mu      sync.Mutex
	window  gossh.Window
	winCh   <-chan gossh.Window
	onSize  func()
	stop    chan struct{}
	once    sync.Once
}

// NewTty wraps s. pty holds the initial window size; winCh delivers
// later resizes.
func NewTty(s gossh.Session, pty gossh.Pty, winCh <-chan gossh.Window) *Tty {
	return &Tty{
		session: s,
		window:  pty.Window,
		winCh:   winCh,
		stop:    make(chan struct{}),
	}
}

func (t *Tty) Read(b []byte) (int, error) { return t.session.Read(b) }

func (t *Tty) Write(b []byte) (int, error) { return t.session.Write(b) }

// Close stops resize delivery. The session itself belongs to the server
// handler and is closed when the handler returns.
func (t *Tty) Close() error {
	t.once.Do(func() { close(t.stop) })
	return nil
}

// Start is a no-op; the channel is already open.
func (t *Tty) Start() error { return nil }

// Stop is a no-op; see Close.
func (t *Tty) Stop() error { return nil }

// Drain is a no-op; SSH writes are not buffered here.
func (t *Tty) Drain() error { return nil }

// WindowSize returns the latest terminal size.
func (t *Tty) WindowSize() (tcell.WindowSize, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return tcell.WindowSize{Width: t.window.Width, Height: t.window.Height}, nil
}

// NotifyResize registers cb and starts forwarding window changes until
// the window channel closes or the tty is closed.
func (t *Tty) NotifyResize(cb func()) {
	t.mu.Lock()
	t.onSize = cb
	t.mu.Unlock()

	go func() {
		for {
			select {
			case <-t.stop:
				return
			case win, ok := <-t.winCh:
				if !ok {
					return
				}
				t.resize(win)
			}
		}
	}()
}

func (t *Tty) resize(win gossh.Window) {
	t.mu.Lock()
	t.window = win
	cb := t.onSize
	t.mu.Unlock()
	if cb != nil {
		cb()
	}
}
