// goatkeeper-server serves the game over SSH. Every connection gets its
// own independent level. Build:
//
//	go build -o goatkeeper-server ./cmd/server
//
// Usage:
//
//	./goatkeeper-server [-port 2222] [-key server_host_key] [-config file] [-map file]
//
// Connect with:
//
//	ssh -p 2222 localhost
package main

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"encoding/pem"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"unicode"

	"goatkeeper/internal/game"
	"goatkeeper/internal/gamemap"
	internalssh "goatkeeper/internal/ssh"

	gossh "github.com/gliderlabs/ssh"
	"github.com/google/uuid"
	xssh "golang.org/x/crypto/ssh"
)

// maxNameBytes caps user names written to logs.
const maxNameBytes = 16

func main() {
	port := flag.Int("port", 2222, "SSH server port")
	keyFile := flag.String("key", "server_host_key", "Path to the PEM-encoded host key (auto-generated if absent)")
	configFile := flag.String("config", "", "TOML config file")
	mapFile := flag.String("map", "", "level file (built-in map when empty)")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	cfg := game.DefaultConfig()
	if *configFile != "" {
		var err error
		if cfg, err = game.LoadConfig(*configFile); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	}
	gmap, mapName, err := loadMap(*mapFile, cfg.MapPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	signer, err := loadOrCreateHostKey(*keyFile, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	srv := &gossh.Server{
		Addr: fmt.Sprintf(":%d", *port),
		Handler: func(s gossh.Session) {
			serveSession(s, gmap, mapName, cfg, logger)
		},
		PtyCallback: func(_ gossh.Context, _ gossh.Pty) bool { return true },
		// No authentication: anyone who can reach the port may play.
		HostSigners: []gossh.Signer{signer},
	}

	logger.Info("goatkeeper SSH server listening", "addr", srv.Addr, "map", mapName)
	if err := srv.ListenAndServe(); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

// serveSession runs one game for one connection. The parsed map is shared
// read-only between sessions.
func serveSession(s gossh.Session, gmap *gamemap.GameMap, mapName string, cfg game.Config, logger *slog.Logger) {
	log := logger.With("session", uuid.NewString(), "user", sanitizeName(s.User()), "remote", s.RemoteAddr().String())
	screen, err := internalssh.NewScreen(s)
	if err != nil {
		if errors.Is(err, internalssh.ErrNoPTY) {
			fmt.Fprintln(s, "This game requires a PTY. Connect with: ssh -t -p 2222 <host>")
		} else {
			fmt.Fprintf(s, "Terminal setup failed: %v\n", err)
		}
		log.Warn("session rejected", "error", err)
		return
	}

	g, err := game.New(screen, gmap, cfg, game.WithLogger(log), game.WithMapName(mapName))
	if err != nil {
		screen.Fini()
		log.Error("create game", "error", err)
		return
	}
	log.Info("session started")
	if err := g.Run(s.Context()); err != nil && !errors.Is(err, context.Canceled) {
		log.Warn("session ended", "error", err)
		return
	}
	log.Info("session ended")
}

// loadMap picks the map from the flag, then the config, then the built-in.
func loadMap(flagPath, cfgPath string) (*gamemap.GameMap, string, error) {
	if flagPath != "" {
		return game.LoadMap(flagPath)
	}
	return game.LoadMap(cfgPath)
}

// sanitizeName strips control characters from a client-supplied name and
// truncates it to maxNameBytes without splitting a rune.
func sanitizeName(name string) string {
	var b strings.Builder
	for _, r := range name {
		if unicode.IsControl(r) {
			continue
		}
		if b.Len()+len(string(r)) > maxNameBytes {
			break
		}
		b.WriteRune(r)
	}
	return b.String()
}

// loadOrCreateHostKey loads a PEM private key from path, or generates and
// persists a new ed25519 key if the file is absent or unreadable.
func loadOrCreateHostKey(path string, logger *slog.Logger) (gossh.Signer, error) {
	if data, err := os.ReadFile(path); err == nil {
		if signer, err := xssh.ParsePrivateKey(data); err == nil {
			logger.Info("loaded host key", "path", path)
			return signer, nil
		}
	}

	logger.Info("generating ed25519 host key", "path", path)
	_, key, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("generate host key: %w", err)
	}
	signer, err := xssh.NewSignerFromKey(key)
	if err != nil {
		return nil, fmt.Errorf("create signer: %w", err)
	}
	// Persist for next run (non-fatal if it fails).
	if block, err := xssh.MarshalPrivateKey(key, "goatkeeper server"); err == nil {
		if err := os.WriteFile(path, pem.EncodeToMemory(block), 0o600); err != nil {
			logger.Warn("host key not saved", "path", path, "error", err)
		}
	}
	return signer, nil
}
