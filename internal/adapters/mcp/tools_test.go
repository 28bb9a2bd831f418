package mcp

import (
	"context"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"focusboard/internal/domain"
	"focusboard/internal/testutil"
)

func call(t *testing.T, h server.ToolHandlerFunc, args map[string]any) (string, bool) {
	t.Helper()
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	res, err := h(context.Background(), req)
	require.NoError(t, err)
	require.NotEmpty(t, res.Content)
	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok)
	return text.Text, res.IsError
}

func seed(b *testutil.Backend) (domain.Tab, domain.Note, domain.Note) {
	tab := b.SeedTab("Work", domain.Ptr[int64](0))
	cat := b.SeedNote(domain.Note{Title: "Groceries", TabID: domain.Ptr(tab.ID), OrderID: domain.Ptr[int64](1), Type: domain.NoteTypeCategorical})
	milk := b.SeedNote(domain.Note{Title: "Milk", Content: "two litres", TabID: domain.Ptr(tab.ID), ParentID: domain.Ptr(cat.ID), OrderID: domain.Ptr[int64](1)})
	return tab, cat, milk
}

func TestReadTools(t *testing.T) {
	b := testutil.NewBackend()
	tab, cat, milk := seed(b)

	out, isErr := call(t, listTabsHandler(b), nil)
	assert.False(t, isErr)
	assert.Contains(t, out, "Work")

	out, _ = call(t, treeHandler(b), nil)
	assert.Contains(t, out, "Groceries/")
	assert.Contains(t, out, "    "+formatNote(milk))

	out, _ = call(t, searchHandler(b), map[string]any{"query": "milk"})
	assert.Contains(t, out, "Milk")

	out, _ = call(t, searchHandler(b), map[string]any{"query": "zzz"})
	assert.Equal(t, "No results found.", out)

	_, isErr = call(t, searchHandler(b), nil)
	assert.True(t, isErr)

	out, isErr = call(t, readNoteHandler(b), map[string]any{"tab_id": float64(tab.ID), "note_id": float64(milk.ID)})
	assert.False(t, isErr)
	assert.Equal(t, "# Milk\n\ntwo litres", out)

	out, isErr = call(t, readNoteHandler(b), map[string]any{"tab_id": float64(tab.ID), "note_id": float64(cat.ID + 100)})
	assert.True(t, isErr)
	assert.Contains(t, out, "not found")
}

func TestWriteTools(t *testing.T) {
	b := testutil.NewBackend()
	tab, cat, milk := seed(b)

	t.Run("create note under categorical parent", func(t *testing.T) {
		out, isErr := call(t, createNoteHandler(b), map[string]any{
			"tab_id": float64(tab.ID), "parent_id": float64(cat.ID), "title": "Eggs",
		})
		require.False(t, isErr, out)
		assert.Contains(t, out, "Added sub-note successfully")
	})

	t.Run("child of basic note is rejected", func(t *testing.T) {
		_, isErr := call(t, createNoteHandler(b), map[string]any{
			"tab_id": float64(tab.ID), "parent_id": float64(milk.ID), "title": "Nope",
		})
		assert.True(t, isErr)
	})

	t.Run("unknown type", func(t *testing.T) {
		out, isErr := call(t, createNoteHandler(b), map[string]any{
			"tab_id": float64(tab.ID), "title": "x", "type": "folder",
		})
		assert.True(t, isErr)
		assert.Contains(t, out, "unknown note type")
	})

	t.Run("update keeps omitted fields", func(t *testing.T) {
		_, isErr := call(t, updateNoteHandler(b), map[string]any{
			"tab_id": float64(tab.ID), "note_id": float64(milk.ID), "title": "Oat milk",
		})
		require.False(t, isErr)
		n, ok := b.Note(milk.ID)
		require.True(t, ok)
		assert.Equal(t, "Oat milk", n.Title)
		assert.Equal(t, "two litres", n.Content)
	})

	t.Run("move note among siblings", func(t *testing.T) {
		_, isErr := call(t, moveNoteHandler(b), map[string]any{
			"tab_id": float64(tab.ID), "note_id": float64(milk.ID), "index": float64(1),
		})
		require.False(t, isErr)
		calls := b.CallsOf(testutil.OpReorderNotes)
		require.Len(t, calls, 1)
		assert.Equal(t, milk.ID, calls[0].IDs[1])
	})

	t.Run("create and move tab", func(t *testing.T) {
		out, isErr := call(t, createTabHandler(b), map[string]any{"name": "Home"})
		require.False(t, isErr)
		assert.Contains(t, out, "Added tab Home successfully")

		home := b.Tabs()[1]
		_, isErr = call(t, moveTabHandler(b), map[string]any{"tab_id": float64(home.ID), "index": float64(0)})
		require.False(t, isErr)
		assert.Len(t, b.CallsOf(testutil.OpReorderTabs), 1)
	})

	t.Run("rename and delete tab", func(t *testing.T) {
		out, _ := call(t, renameTabHandler(b), map[string]any{"tab_id": float64(tab.ID), "name": "Jobs"})
		assert.Contains(t, out, "Updated tab name to Jobs")

		out, isErr := call(t, deleteTabHandler(b), map[string]any{"tab_id": float64(tab.ID)})
		require.False(t, isErr)
		assert.Contains(t, out, "Deleted tab Jobs")
	})

	t.Run("backup", func(t *testing.T) {
		out, isErr := call(t, backupHandler(b), nil)
		require.False(t, isErr)
		assert.Contains(t, out, "Backup successful")
	})
}
