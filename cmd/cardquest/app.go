package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/cardquest/internal/config"
	"github.com/vovakirdan/cardquest/internal/core"
	"github.com/vovakirdan/cardquest/internal/logging"
	"github.com/vovakirdan/cardquest/internal/profile"
	"github.com/vovakirdan/cardquest/internal/storage"
)

// localProfile names the profile of the local terminal player.
const localProfile = "local"

// logPath is where full-screen modes log, since stderr is hidden by the UI.
const logPath = "~/.cardquest/cardquest.log"

// app bundles what every command opens: config, storage and the profile.
type app struct {
	games   config.Set
	store   *storage.Store // nil when the database could not be opened
	profile *profile.Profile
	logger  *log.Logger
	logFile *os.File
}

// openApp loads config, opens the database and the local profile.
// Full-screen commands pass toFile so logs do not tear the display.
func openApp(ctx context.Context, notifier core.Notifier, toFile bool) (*app, error) {
	a := &app{}

	var out io.Writer = os.Stderr
	if toFile {
		f, err := logging.OpenFile(logPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
			out = io.Discard
		} else {
			a.logFile = f
			out = f
		}
	}
	a.logger = logging.New(out, logging.ResolveLevel(flagLogLevel), "cardquest")

	games, err := config.LoadAll(flagConfigDir)
	if err != nil {
		a.close()
		return nil, fmt.Errorf("loading config: %w", err)
	}
	a.games = games

	var kv storage.KV
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open database: %v\n", err)
		fmt.Fprintln(os.Stderr, "Progress will not be saved.")
		kv = storage.NewMemory()
	} else {
		a.store = store
		kv = store
	}

	opts := profile.Options{
		KV:       kv,
		Config:   games,
		Category: flagCategory,
		Notifier: notifier,
		Seed:     flagSeed,
		Logger:   a.logger,
	}
	if a.store != nil {
		opts.History = a.store.History(localProfile)
	}

	p, err := profile.Open(ctx, opts)
	if p == nil {
		a.close()
		return nil, err
	}
	if err != nil {
		a.logger.Warn("profile opened with errors", "error", err)
	}
	a.profile = p
	return a, nil
}

// recentWins lists the local player's latest wins, or nothing without a
// database.
func (a *app) recentWins(ctx context.Context, limit int) ([]storage.CardWin, error) {
	if a.store == nil {
		return nil, nil
	}
	return a.store.Wins(ctx, localProfile, limit)
}

func (a *app) close() {
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			a.logger.Warn("could not close database", "error", err)
		}
	}
	if a.logFile != nil {
		a.logFile.Close()
	}
}

// runtimeConfig sizes the game to the current terminal.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// parseGame resolves a game id.
func parseGame(id string) (core.GameKind, error) {
	kind, ok := core.ParseGameKind(id)
	if !ok {
		return 0, fmt.Errorf("unknown game %q, run 'cardquest list' to see available games", id)
	}
	return kind, nil
}
