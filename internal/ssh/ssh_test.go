package ssh

import (
	"bytes"
	"testing"
	"time"

	gossh "github.com/gliderlabs/ssh"
)

// fakeSession implements only the parts of gossh.Session that Tty uses.
type fakeSession struct {
	gossh.Session
	in  *bytes.Buffer
	out bytes.Buffer
}

func (f *fakeSession) Read(b []byte) (int, error) { return f.in.Read(b) }
func (f *fakeSession) Write(b []byte) (int, error) { return f.out.Write(b) }

func TestSessionTerm(t *testing.T) {
	cases := []struct {
		name string
		env  []string
		want string
	}{
		{"allowed", []string{"LANG=C", "TERM=tmux"}, "tmux"},
		{"missing", []string{"LANG=C"}, DefaultTerm},
		{"not allowed", []string{"TERM=evil-term"}, DefaultTerm},
		{"path traversal", []string{"TERM=../../../etc/passwd"}, DefaultTerm},
		{"empty", []string{"TERM="}, DefaultTerm},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := SessionTerm(tc.env); got != tc.want {
				t.Errorf("SessionTerm(%q) = %q; want %q", tc.env, got, tc.want)
			}
		})
	}
}

func TestTtyReadWrite(t *testing.T) {
	s := &fakeSession{in: bytes.NewBufferString("k")}
	tty := NewTty(s, gossh.Pty{}, nil)

	buf := make([]byte, 4)
	n, err := tty.Read(buf)
	if err != nil || string(buf[:n]) != "k" {
		t.Errorf("Read = %q, %v", buf[:n], err)
	}
	if _, err := tty.Write([]byte("frame")); err != nil {
		t.Fatal(err)
	}
	if s.out.String() != "frame" {
		t.Errorf("session got %q", s.out.String())
	}
}

func TestTtyResize(t *testing.T) {
	winCh := make(chan gossh.Window, 1)
	tty := NewTty(&fakeSession{}, gossh.Pty{Window: gossh.Window{Width: 80, Height: 24}}, winCh)
	defer tty.Close()

	ws, err := tty.WindowSize()
	if err != nil || ws.Width != 80 || ws.Height != 24 {
		t.Fatalf("initial size = %+v, %v", ws, err)
	}

	resized := make(chan struct{}, 1)
	tty.NotifyResize(func() { resized <- struct{}{} })
	winCh <- gossh.Window{Width: 120, Height: 40}

	select {
	case <-resized:
	case <-time.After(time.Second):
		t.Fatal("resize callback not called")
	}
	if ws, _ := tty.WindowSize(); ws.Width != 120 || ws.Height != 40 {
		t.Errorf("size after resize = %+v", ws)
	}
}

func TestTtyCloseIsIdempotent(t *testing.T) {
	tty := NewTty(&fakeSession{}, gossh.Pty{}, make(chan gossh.Window))
	tty.NotifyResize(nil)
	if err := tty.Close(); err != nil {
		t.Fatal(err)
	}
	if err := tty.Close(); err != nil {
		t.Fatal(err)
	}
}
