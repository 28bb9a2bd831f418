package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"focusboard/internal/application/commands"
	"focusboard/internal/domain"
	"focusboard/internal/ports"
)

// RegisterWriteTools adds all board mutation tools to the MCP server.
func RegisterWriteTools(s *server.MCPServer, backend ports.Backend) {
	s.AddTool(createTabTool(), createTabHandler(backend))
	s.AddTool(createNoteTool(), createNoteHandler(backend))
	s.AddTool(renameTabTool(), renameTabHandler(backend))
	s.AddTool(updateNoteTool(), updateNoteHandler(backend))
	s.AddTool(moveTabTool(), moveTabHandler(backend))
	s.AddTool(moveNoteTool(), moveNoteHandler(backend))
	s.AddTool(deleteTabTool(), deleteTabHandler(backend))
	s.AddTool(deleteNoteTool(), deleteNoteHandler(backend))
	s.AddTool(backupTool(), backupHandler(backend))
}

// --- create_tab ---

func createTabTool() mcp.Tool {
	return mcp.NewTool("create_tab",
		mcp.WithDescription("Create a tab at the end of the tab bar."),
		mcp.WithString("name",
			mcp.Description("Tab name"),
			mcp.Required(),
		),
	)
}

func createTabHandler(backend ports.Backend) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result, err := commands.NewCreateTabCommand(backend, req.GetString("name", "")).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(fmt.Sprintf("%s (id %d)", result.Message, result.Tab.ID)), nil
	}
}

// --- create_note ---

func createNoteTool() mcp.Tool {
	return mcp.NewTool("create_note",
		mcp.WithDescription("Create a note at the end of its sibling list. With a parent_id the note becomes a sub-note of that categorical note."),
		mcp.WithNumber("tab_id",
			mcp.Description("Tab to add the note to"),
			mcp.Required(),
		),
		mcp.WithNumber("parent_id",
			mcp.Description("Categorical note to nest under. Omit for a top-level note."),
		),
		mcp.WithString("title",
			mcp.Description("Note title"),
			mcp.Required(),
		),
		mcp.WithString("content",
			mcp.Description("Note body"),
		),
		mcp.WithString("type",
			mcp.Description("basic or categorical"),
			mcp.Enum(string(domain.NoteTypeBasic), string(domain.NoteTypeCategorical)),
		),
	)
}

func createNoteHandler(backend ports.Backend) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		typ, err := domain.ParseNoteType(req.GetString("type", string(domain.NoteTypeBasic)))
		if err != nil {
			return toolError(err)
		}

		cmd := commands.NewCreateNoteCommand(backend,
			int64(req.GetInt("tab_id", 0)),
			int64(req.GetInt("parent_id", 0)),
			req.GetString("title", ""),
			req.GetString("content", ""),
			typ,
		)
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(fmt.Sprintf("%s (id %d)", result.Message, result.Note.ID)), nil
	}
}

// --- rename_tab ---

func renameTabTool() mcp.Tool {
	return mcp.NewTool("rename_tab",
		mcp.WithDescription("Rename a tab."),
		mcp.WithNumber("tab_id",
			mcp.Description("Tab ID"),
			mcp.Required(),
		),
		mcp.WithString("name",
			mcp.Description("New name"),
			mcp.Required(),
		),
	)
}

func renameTabHandler(backend ports.Backend) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cmd := commands.NewRenameTabCommand(backend, int64(req.GetInt("tab_id", 0)), req.GetString("name", ""))
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- update_note ---

func updateNoteTool() mcp.Tool {
	return mcp.NewTool("update_note",
		mcp.WithDescription("Change a note's title, content, or both. Omitted fields keep their value."),
		mcp.WithNumber("tab_id",
			mcp.Description("Tab holding the note"),
			mcp.Required(),
		),
		mcp.WithNumber("note_id",
			mcp.Description("Note ID"),
			mcp.Required(),
		),
		mcp.WithString("title",
			mcp.Description("New title"),
		),
		mcp.WithString("content",
			mcp.Description("New content"),
		),
	)
}

func updateNoteHandler(backend ports.Backend) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cmd := commands.NewUpdateNoteCommand(backend,
			int64(req.GetInt("tab_id", 0)),
			int64(req.GetInt("note_id", 0)),
			optionalString(req, "title"),
			optionalString(req, "content"),
		)
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- move_tab ---

func moveTabTool() mcp.Tool {
	return mcp.NewTool("move_tab",
		mcp.WithDescription("Move a tab to a 0-based position in the tab bar."),
		mcp.WithNumber("tab_id",
			mcp.Description("Tab to move"),
			mcp.Required(),
		),
		mcp.WithNumber("index",
			mcp.Description("Target position, 0 is first"),
			mcp.Required(),
		),
	)
}

func moveTabHandler(backend ports.Backend) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cmd := commands.NewMoveTabCommand(backend, int64(req.GetInt("tab_id", 0)), req.GetInt("index", 0))
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- move_note ---

func moveNoteTool() mcp.Tool {
	return mcp.NewTool("move_note",
		mcp.WithDescription("Move a note to a 0-based position among its siblings. Notes never change parent or tab."),
		mcp.WithNumber("tab_id",
			mcp.Description("Tab holding the note"),
			mcp.Required(),
		),
		mcp.WithNumber("note_id",
			mcp.Description("Note to move"),
			mcp.Required(),
		),
		mcp.WithNumber("index",
			mcp.Description("Target position among siblings, 0 is first"),
			mcp.Required(),
		),
	)
}

func moveNoteHandler(backend ports.Backend) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cmd := commands.NewMoveNoteCommand(backend,
			int64(req.GetInt("tab_id", 0)),
			int64(req.GetInt("note_id", 0)),
			req.GetInt("index", 0),
		)
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- delete_tab ---

func deleteTabTool() mcp.Tool {
	return mcp.NewTool("delete_tab",
		mcp.WithDescription("Delete a tab and every note in it. This cannot be undone."),
		mcp.WithNumber("tab_id",
			mcp.Description("Tab ID"),
			mcp.Required(),
		),
	)
}

func deleteTabHandler(backend ports.Backend) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result, err := commands.NewDeleteTabCommand(backend, int64(req.GetInt("tab_id", 0))).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- delete_note ---

func deleteNoteTool() mcp.Tool {
	return mcp.NewTool("delete_note",
		mcp.WithDescription("Delete a note and its sub-notes. This cannot be undone."),
		mcp.WithNumber("note_id",
			mcp.Description("Note ID"),
			mcp.Required(),
		),
	)
}

func deleteNoteHandler(backend ports.Backend) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result, err := commands.NewDeleteNoteCommand(backend, int64(req.GetInt("note_id", 0))).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- backup ---

func backupTool() mcp.Tool {
	return mcp.NewTool("backup",
		mcp.WithDescription("Write a timestamped copy of the database to the backup directory."),
	)
}

func backupHandler(backend ports.Backend) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result, err := commands.NewBackupCommand(backend).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(fmt.Sprintf("%s: %s", result.Message, result.Path)), nil
	}
}

// optionalString returns nil when the argument was not passed
func optionalString(req mcp.CallToolRequest, name string) *string {
	if _, ok := req.GetArguments()[name]; !ok {
		return nil
	}
	v := req.GetString(name, "")
	return &v
}
