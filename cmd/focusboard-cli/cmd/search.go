package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"focusboard/internal/application/commands"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search notes across all tabs",
	Long: `Search note titles and content across every tab.

Results are ranked by relevance using fuzzy matching. Queries shorter
than two characters return nothing.

Examples:
  focusboard-cli search groceries
  focusboard-cli search "stand up"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		results, err := commands.NewSearchCommand(GetBackend(), args[0]).Execute(cmd.Context())
		if err != nil {
			return err
		}

		if len(results) == 0 {
			fmt.Println("No results found")
			return nil
		}

		for _, r := range results {
			fmt.Printf("[%s] %d %s\n", r.Tab.Name, r.Note.ID, r.Note.Title)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)
}
