package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"focusboard/internal/application"
	"focusboard/internal/application/commands"
)

var notesCmd = &cobra.Command{
	Use:   "notes",
	Short: "Manage notes",
	Long: `Create, update, reorder, and delete notes.

Notes are either basic or categorical. Categorical top-level notes can
hold sub-notes one level deep.

Examples:
  focusboard-cli notes create 1 "Groceries" --type categorical
  focusboard-cli notes create 1 "Milk" --parent 4
  focusboard-cli notes move 1 5 0`,
}

var (
	noteParent  int64
	noteType    string
	noteTitle   string
	noteContent string
)

var notesCreateCmd = &cobra.Command{
	Use:   "create <tab-id> <title>",
	Short: "Create a note at the end of its sibling list",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		tabID, err := parseID("tab ID", args[0])
		if err != nil {
			return err
		}
		typ, err := application.ParseNoteType(noteType)
		if err != nil {
			return err
		}
		create := commands.NewCreateNoteCommand(GetBackend(), tabID, noteParent, args[1], noteContent, typ)
		result, err := create.Execute(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Printf("%s (id %d)\n", result.Message, result.Note.ID)
		return nil
	},
}

var notesUpdateCmd = &cobra.Command{
	Use:   "update <tab-id> <note-id>",
	Short: "Change a note's title or content",
	Long: `Change a note's title, content, or both. Fields without a flag keep
their stored value.

Example:
  focusboard-cli notes update 1 5 --content "buy oat milk"`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		tabID, err := parseID("tab ID", args[0])
		if err != nil {
			return err
		}
		noteID, err := parseID("note ID", args[1])
		if err != nil {
			return err
		}
		var title, content *string
		if cmd.Flags().Changed("title") {
			title = &noteTitle
		}
		if cmd.Flags().Changed("content") {
			content = &noteContent
		}
		result, err := commands.NewUpdateNoteCommand(GetBackend(), tabID, noteID, title, content).Execute(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

var notesMoveCmd = &cobra.Command{
	Use:   "move <tab-id> <note-id> <index>",
	Short: "Move a note to a 0-based position among its siblings",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		tabID, err := parseID("tab ID", args[0])
		if err != nil {
			return err
		}
		noteID, err := parseID("note ID", args[1])
		if err != nil {
			return err
		}
		index, err := parseIndex(args[2])
		if err != nil {
			return err
		}
		result, err := commands.NewMoveNoteCommand(GetBackend(), tabID, noteID, index).Execute(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

var notesDeleteCmd = &cobra.Command{
	Use:   "delete <note-id>",
	Short: "Delete a note and its sub-notes",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID("note ID", args[0])
		if err != nil {
			return err
		}
		result, err := commands.NewDeleteNoteCommand(GetBackend(), id).Execute(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(notesCmd)
	notesCmd.AddCommand(notesCreateCmd)
	notesCmd.AddCommand(notesUpdateCmd)
	notesCmd.AddCommand(notesMoveCmd)
	notesCmd.AddCommand(notesDeleteCmd)

	notesCreateCmd.Flags().Int64VarP(&noteParent, "parent", "p", 0, "categorical note to nest under")
	notesCreateCmd.Flags().StringVarP(&noteType, "type", "t", "basic", "note type (basic or categorical)")
	notesCreateCmd.Flags().StringVarP(&noteContent, "content", "c", "", "note body")

	notesUpdateCmd.Flags().StringVar(&noteTitle, "title", "", "new title")
	notesUpdateCmd.Flags().StringVarP(&noteContent, "content", "c", "", "new content")
}
