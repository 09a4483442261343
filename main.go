// bluedash - Expert AI chat in your terminal.
//
// Copyright (c) 2025 BlueDash Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/bluedash/bluedash-tui/internal/api"
	"github.com/bluedash/bluedash-tui/internal/cli"
	"github.com/bluedash/bluedash-tui/internal/config"
	"github.com/bluedash/bluedash-tui/internal/session"
	"github.com/bluedash/bluedash-tui/internal/storage"
	"github.com/bluedash/bluedash-tui/internal/ui"
	"github.com/bluedash/bluedash-tui/internal/ui/styles"
	"github.com/bluedash/bluedash-tui/internal/usage"
)

// Version information (set at build time).
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
)

// trackerMinInterval coalesces bursts of usage refreshes into one
// request; event-driven refreshes between polls stay cheap.
const trackerMinInterval = 2 * time.Second

func main() {
	args, err := cli.Parse(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "bluedash: %v\n\n%s", err, cli.Usage())
		os.Exit(2)
	}

	if args.Help {
		fmt.Print(cli.Usage())
		return
	}
	if args.Version {
		fmt.Printf("bluedash %s (%s)\n", Version, GitCommit)
		return
	}

	if err := run(args); err != nil {
		fmt.Fprintf(os.Stderr, "bluedash: %v\n", err)
		os.Exit(1)
	}
}

func run(args cli.Args) error {
	cfg, err := loadConfig(args)
	if err != nil {
		return err
	}

	dataDir, err := config.Dir()
	if err != nil {
		return err
	}
	if err := config.EnsureDir(); err != nil {
		return err
	}

	closeLog := setupLogging(dataDir)
	defer closeLog()
	log.Printf("bluedash %s starting", Version)

	store, err := session.Open(dataDir)
	if err != nil {
		return fmt.Errorf("opening session store: %w", err)
	}

	// The local cache is best effort; the app runs without it.
	cache, err := storage.Open(dataDir)
	if err != nil {
		log.Printf("local cache unavailable: %v", err)
		cache = nil
	} else {
		defer cache.Close()
	}

	client := api.NewClient(cfg.API.BaseURL, store).WithTimeout(cfg.Timeout())
	tracker := usage.NewTracker(client, trackerMinInterval)
	theme := styles.NewTheme()

	// A reset token may arrive via flag or, for mail-client deep links,
	// via environment.
	resetToken := args.ResetToken
	if resetToken == "" {
		resetToken = os.Getenv("BLUEDASH_RESET_TOKEN")
	}

	var app ui.App
	if resetToken != "" {
		app = ui.NewAppWithResetToken(theme, client, tracker, cache, store, resetToken)
	} else {
		app = ui.NewApp(theme, client, tracker, cache, store)
	}

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running ui: %w", err)
	}
	return nil
}

// loadConfig loads the TOML config, applies environment overrides, then
// command-line overrides on top.
func loadConfig(args cli.Args) (*config.Config, error) {
	var cfg *config.Config
	var err error
	if args.ConfigPath != "" {
		cfg, err = config.LoadFromPath(args.ConfigPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	cfg.ApplyEnvOverrides()
	if args.BaseURL != "" {
		cfg.API.BaseURL = args.BaseURL
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// setupLogging sends the standard logger to a file under the data dir.
// Stdout belongs to the TUI; stray log writes would corrupt the screen.
func setupLogging(dataDir string) func() {
	path := filepath.Join(dataDir, "bluedash.log")
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		log.SetOutput(io.Discard)
		return func() {}
	}
	log.SetOutput(f)
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	return func() { _ = f.Close() }
}
