package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"github.com/AdnanMGHaider/pennywise-cli/internal/api"
	"github.com/AdnanMGHaider/pennywise-cli/internal/cli"
	"github.com/AdnanMGHaider/pennywise-cli/internal/config"
	"github.com/AdnanMGHaider/pennywise-cli/internal/logging"
	"github.com/AdnanMGHaider/pennywise-cli/internal/refresh"
	"github.com/AdnanMGHaider/pennywise-cli/internal/session"
	"github.com/AdnanMGHaider/pennywise-cli/internal/ui"
)

func main() {
	// a local .env is optional
	_ = godotenv.Load()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	log := logging.Setup(cfg.LogFile, cfg.LogLevel)

	client := api.New(cfg.APIBaseURL, cfg.RequestTimeout, log)
	store := session.NewStore(session.NewFileStorage(cfg.StateDir), client, nil, log)
	signal := refresh.NewSignal()

	// Verify any stored session up front so both the CLI and the TUI start
	// from a known auth state.
	ctx, cancel := context.WithTimeout(context.Background(), cfg.RequestTimeout)
	if err := store.Restore(ctx); err != nil {
		log.WithField("error", err.Error()).Warn("restoring session")
	}
	cancel()

	runner := &cli.Runner{
		Client:  client,
		Store:   store,
		Log:     log,
		Timeout: cfg.RequestTimeout,
		TUI: func(page string) error {
			app := ui.NewApp(client, store, signal, log, cfg.RequestTimeout, page)
			_, err := tea.NewProgram(app, tea.WithAltScreen()).Run()
			return err
		},
	}
	os.Exit(runner.Run(os.Args[1:]))
}
