package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"

	"focusboard/internal/adapters/editor"
	"focusboard/internal/adapters/prefs"
	"focusboard/internal/adapters/sqlite"
	"focusboard/internal/adapters/tui"
	"focusboard/internal/application/session"
	"focusboard/internal/config"
	"focusboard/internal/logging"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	flags := pflag.NewFlagSet("focusboard", pflag.ExitOnError)
	cfgFile := flags.String("config", "", "config file (default focusboard.toml in the user config dir)")
	config.AddFlags(flags)
	flags.Parse(os.Args[1:])

	cfg, err := config.Load(*cfgFile, flags)
	if err != nil {
		return err
	}

	// the terminal belongs to the UI, so logs go to a file
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return fmt.Errorf("failed to create data dir: %w", err)
	}
	logFile, err := os.OpenFile(filepath.Join(cfg.DataDir, "focusboard.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer logFile.Close()

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format, logFile)
	if err != nil {
		return err
	}

	store, err := sqlite.Open(context.Background(), cfg.DatabasePath(), sqlite.Options{
		BackupDir:   cfg.BackupDir(),
		BusyTimeout: cfg.Backend.BusyTimeout,
		Logger:      logger,
	})
	if err != nil {
		return err
	}
	defer store.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go store.RunOptimizer(ctx, cfg.Backend.OptimizeInterval)

	bridge := &tui.Bridge{}
	sess := session.New(session.Options{
		Backend:        store,
		Prefs:          prefs.Open(cfg.PrefsDir()),
		Logger:         logger,
		Debounce:       cfg.OpenState.Debounce,
		OnStatus:       bridge.Status,
		OnReorderState: bridge.ReorderState,
	})
	unsubscribe := sess.Subscribe(bridge.Snapshot)
	defer unsubscribe()

	if err := sess.Start(ctx); err != nil {
		return err
	}

	app := tui.NewApp(ctx, sess, editor.NewOpener(""), clipboard.WriteAll)
	p := tea.NewProgram(app, tea.WithAltScreen())
	bridge.Attach(p)

	_, runErr := p.Run()
	// close errors are logged by the session
	_ = sess.Close(ctx)
	return runErr
}
