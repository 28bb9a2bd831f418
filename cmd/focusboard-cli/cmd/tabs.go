package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"focusboard/internal/application/commands"
)

var tabsCmd = &cobra.Command{
	Use:   "tabs",
	Short: "Manage tabs",
	Long: `List, create, rename, reorder, and delete tabs.

Examples:
  focusboard-cli tabs list
  focusboard-cli tabs create "Work"
  focusboard-cli tabs move 3 0`,
}

var tabsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tabs in display order",
	RunE: func(cmd *cobra.Command, args []string) error {
		tabs, err := commands.NewListTabsCommand(GetBackend()).Execute(cmd.Context())
		if err != nil {
			return err
		}
		for _, t := range tabs {
			fmt.Printf("%d %s\n", t.ID, t.Name)
		}
		return nil
	},
}

var tabsCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a tab at the end of the tab bar",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := commands.NewCreateTabCommand(GetBackend(), args[0]).Execute(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

var tabsRenameCmd = &cobra.Command{
	Use:   "rename <tab-id> <name>",
	Short: "Rename a tab",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID("tab ID", args[0])
		if err != nil {
			return err
		}
		result, err := commands.NewRenameTabCommand(GetBackend(), id, args[1]).Execute(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

var tabsMoveCmd = &cobra.Command{
	Use:   "move <tab-id> <index>",
	Short: "Move a tab to a 0-based position",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID("tab ID", args[0])
		if err != nil {
			return err
		}
		index, err := parseIndex(args[1])
		if err != nil {
			return err
		}
		result, err := commands.NewMoveTabCommand(GetBackend(), id, index).Execute(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

var tabsDeleteCmd = &cobra.Command{
	Use:   "delete <tab-id>",
	Short: "Delete a tab and all of its notes",
	Long: `Delete a tab and every note in it.

Warning: This operation cannot be undone.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID("tab ID", args[0])
		if err != nil {
			return err
		}
		result, err := commands.NewDeleteTabCommand(GetBackend(), id).Execute(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tabsCmd)
	tabsCmd.AddCommand(tabsListCmd)
	tabsCmd.AddCommand(tabsCreateCmd)
	tabsCmd.AddCommand(tabsRenameCmd)
	tabsCmd.AddCommand(tabsMoveCmd)
	tabsCmd.AddCommand(tabsDeleteCmd)
}
