package cmd

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"focusboard/internal/adapters/sqlite"
	"focusboard/internal/config"
	"focusboard/internal/logging"
	"focusboard/internal/ports"
)

var (
	cfgFile string
	store   *sqlite.Store
)

var rootCmd = &cobra.Command{
	Use:   "focusboard-cli",
	Short: "CLI for managing focusboard tabs and notes",
	Long: `focusboard-cli is a command-line interface to the focusboard database.

It lists, creates, renames, reorders, deletes, and searches the tabs and
notes that the focusboard TUI shows.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for help commands
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}
		cfg, err := config.Load(cfgFile, cmd.Flags())
		if err != nil {
			return err
		}
		logger, err := logging.New(cfg.Log.Level, cfg.Log.Format, os.Stderr)
		if err != nil {
			return err
		}
		store, err = sqlite.Open(cmd.Context(), cfg.DatabasePath(), sqlite.Options{
			BackupDir:   cfg.BackupDir(),
			BusyTimeout: cfg.Backend.BusyTimeout,
			Logger:      logger,
		})
		return err
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if store == nil {
			return nil
		}
		return store.Close()
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default focusboard.toml in the user config dir)")
	config.AddFlags(rootCmd.PersistentFlags())
}

// GetBackend returns the opened database
func GetBackend() ports.Backend {
	return store
}

func parseID(name, raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s %q", name, raw)
	}
	return id, nil
}

func parseIndex(raw string) (int, error) {
	i, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid index %q", raw)
	}
	return i, nil
}
