package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"focusboard/internal/application/commands"
	"focusboard/internal/domain"
	"focusboard/internal/ports"
)

// RegisterReadTools adds all read-only board tools to the MCP server.
func RegisterReadTools(s *server.MCPServer, backend ports.Backend) {
	s.AddTool(listTabsTool(), listTabsHandler(backend))
	s.AddTool(treeTool(), treeHandler(backend))
	s.AddTool(searchTool(), searchHandler(backend))
	s.AddTool(readNoteTool(), readNoteHandler(backend))
}

// --- list_tabs ---

func listTabsTool() mcp.Tool {
	return mcp.NewTool("list_tabs",
		mcp.WithDescription("List tabs in display order with their IDs."),
	)
}

func listTabsHandler(backend ports.Backend) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		tabs, err := commands.NewListTabsCommand(backend).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return formatEntities(tabs, formatTab)
	}
}

// --- tree ---

func treeTool() mcp.Tool {
	return mcp.NewTool("tree",
		mcp.WithDescription("Display tabs and their notes as a tree. Categorical notes list their sub-notes."),
		mcp.WithNumber("tab_id",
			mcp.Description("Only show this tab. Omit to show every tab."),
		),
	)
}

func treeHandler(backend ports.Backend) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		trees, err := commands.NewListTreeCommand(backend, int64(req.GetInt("tab_id", 0))).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		if len(trees) == 0 {
			return mcp.NewToolResultText("No tabs."), nil
		}

		var sb strings.Builder
		for _, tree := range trees {
			fmt.Fprintf(&sb, "%s\n", formatTab(tree.Tab))
			for _, node := range tree.Forest {
				renderTree(&sb, node, "  ")
			}
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

func renderTree(sb *strings.Builder, node *domain.TreeNode, prefix string) {
	fmt.Fprintf(sb, "%s%s\n", prefix, formatNote(node.Note))
	for _, child := range node.Children {
		renderTree(sb, child, prefix+"  ")
	}
}

// --- search ---

func searchTool() mcp.Tool {
	return mcp.NewTool("search",
		mcp.WithDescription("Search note titles and content across all tabs. Returns matches best first."),
		mcp.WithString("query",
			mcp.Description("Search query, at least 2 characters"),
			mcp.Required(),
		),
	)
}

func searchHandler(backend ports.Backend) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		query := req.GetString("query", "")
		if query == "" {
			return toolError(fmt.Errorf("query is required"))
		}

		results, err := commands.NewSearchCommand(backend, query).Execute(ctx)
		if err != nil {
			return toolError(err)
		}

		if len(results) == 0 {
			return mcp.NewToolResultText("No results found."), nil
		}

		var sb strings.Builder
		for _, r := range results {
			fmt.Fprintf(&sb, "%d  %s  (tab %d %s)\n", r.Note.ID, r.Note.Title, r.Tab.ID, r.Tab.Name)
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- read_note ---

func readNoteTool() mcp.Tool {
	return mcp.NewTool("read_note",
		mcp.WithDescription("Read the full content of a note."),
		mcp.WithNumber("tab_id",
			mcp.Description("Tab holding the note"),
			mcp.Required(),
		),
		mcp.WithNumber("note_id",
			mcp.Description("Note ID"),
			mcp.Required(),
		),
	)
}

func readNoteHandler(backend ports.Backend) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		tabID := int64(req.GetInt("tab_id", 0))
		noteID := int64(req.GetInt("note_id", 0))

		notes, err := backend.ListNotes(ctx, tabID)
		if err != nil {
			return toolError(err)
		}
		i := domain.IndexOfNote(notes, noteID)
		if i < 0 {
			return toolError(fmt.Errorf("note %d in tab %d: %w", noteID, tabID, ports.ErrNotFound))
		}
		n := notes[i]
		return mcp.NewToolResultText(fmt.Sprintf("# %s\n\n%s", n.Title, n.Content)), nil
	}
}

// --- helpers ---

func toolError(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}

func formatEntities[T any](entities []T, format func(T) string) (*mcp.CallToolResult, error) {
	if len(entities) == 0 {
		return mcp.NewToolResultText("No results."), nil
	}
	var sb strings.Builder
	for _, e := range entities {
		sb.WriteString(format(e))
		sb.WriteByte('\n')
	}
	return mcp.NewToolResultText(sb.String()), nil
}

func formatTab(t domain.Tab) string {
	return fmt.Sprintf("%d  %s", t.ID, t.Name)
}

func formatNote(n domain.Note) string {
	if n.IsCategorical() {
		return fmt.Sprintf("%d  %s/", n.ID, n.Title)
	}
	return fmt.Sprintf("%d  %s", n.ID, n.Title)
}
