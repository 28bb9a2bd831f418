package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"focusboard/internal/application"
	"focusboard/internal/application/commands"
)

var treeTab int64

var treeCmd = &cobra.Command{
	Use:   "tree",
	Short: "Display tabs and notes as a tree",
	Long: `Display every tab with its notes in display order. Categorical
notes are marked with a trailing slash and list their sub-notes.

Example:
  focusboard-cli tree
  focusboard-cli tree --tab 2`,
	RunE: func(cmd *cobra.Command, args []string) error {
		trees, err := commands.NewListTreeCommand(GetBackend(), treeTab).Execute(cmd.Context())
		if err != nil {
			return err
		}
		for _, tree := range trees {
			fmt.Printf("%d %s\n", tree.Tab.ID, tree.Tab.Name)
			for _, node := range tree.Forest {
				printTree(node, 1)
			}
		}
		return nil
	},
}

func printTree(node *application.TreeNode, depth int) {
	if node == nil {
		return
	}

	indent := strings.Repeat("  ", depth)
	name := node.Note.Title
	if node.Note.IsCategorical() {
		name += "/"
	}
	fmt.Printf("%s%d %s\n", indent, node.Note.ID, name)

	for _, child := range node.Children {
		printTree(child, depth+1)
	}
}

func init() {
	rootCmd.AddCommand(treeCmd)
	treeCmd.Flags().Int64Var(&treeTab, "tab", 0, "only show this tab")
}
