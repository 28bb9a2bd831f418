package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"focusboard/internal/application/commands"
)

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Write a timestamped copy of the database",
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := commands.NewBackupCommand(GetBackend()).Execute(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Printf("%s: %s\n", result.Message, result.Path)
		return nil
	},
}

var optimizeCmd = &cobra.Command{
	Use:   "optimize",
	Short: "Optimize the database and truncate its write-ahead log",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := GetBackend().Optimize(cmd.Context()); err != nil {
			return err
		}
		fmt.Println("Database optimized")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(backupCmd)
	rootCmd.AddCommand(optimizeCmd)
}
