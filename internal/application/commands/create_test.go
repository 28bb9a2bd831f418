package commands

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"focusboard/internal/application"
	"focusboard/internal/domain"
	"focusboard/internal/testutil"
)

func TestCreateTabCommand(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "valid", input: "Work"},
		{name: "trims", input: "  Home "},
		{name: "empty", input: "", wantErr: true},
		{name: "whitespace", input: "   ", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := testutil.NewBackend()
			result, err := NewCreateTabCommand(b, tt.input).Execute(context.Background())
			if tt.wantErr {
				var valErr *application.ValidationError
				assert.ErrorAs(t, err, &valErr)
				assert.Empty(t, b.Tabs())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, result.Tab.Name, b.Tabs()[0].Name)
			assert.NotContains(t, result.Tab.Name, " ")
		})
	}
}

func TestCreateNoteCommand_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cmd     CreateNoteCommand
		wantErr string
	}{
		{name: "valid top-level", cmd: CreateNoteCommand{TabID: 1}},
		{name: "valid child", cmd: CreateNoteCommand{TabID: 1, ParentID: 2}},
		{name: "missing tab", cmd: CreateNoteCommand{}, wantErr: "tab ID must be positive"},
		{name: "negative parent", cmd: CreateNoteCommand{TabID: 1, ParentID: -1}, wantErr: "parent ID must be positive"},
		{
			name:    "categorical child",
			cmd:     CreateNoteCommand{TabID: 1, ParentID: 2, Type: domain.NoteTypeCategorical},
			wantErr: "child notes cannot be categorical",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cmd.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestCreateNoteCommand_Execute(t *testing.T) {
	ctx := context.Background()
	b := testutil.NewBackend()
	tab := b.SeedTab("T", nil)
	cat := b.SeedNote(domain.Note{TabID: domain.Ptr(tab.ID), OrderID: domain.Ptr[int64](1), Type: domain.NoteTypeCategorical})
	basic := b.SeedNote(domain.Note{TabID: domain.Ptr(tab.ID), OrderID: domain.Ptr[int64](2)})

	t.Run("top-level lands last", func(t *testing.T) {
		result, err := NewCreateNoteCommand(b, tab.ID, 0, "", "", "").Execute(ctx)
		require.NoError(t, err)
		assert.Equal(t, domain.DefaultNoteTitle, result.Note.Title)
		assert.Equal(t, domain.NoteTypeBasic, result.Note.Type)
		assert.Equal(t, int64(3), *result.Note.OrderID)
		assert.Equal(t, "Created note successfully", result.Message)
	})

	t.Run("child of categorical", func(t *testing.T) {
		result, err := NewCreateNoteCommand(b, tab.ID, cat.ID, "Milk", "", domain.NoteTypeBasic).Execute(ctx)
		require.NoError(t, err)
		assert.Equal(t, cat.ID, *result.Note.ParentID)
		assert.Equal(t, int64(1), *result.Note.OrderID)
		assert.Equal(t, "Added sub-note successfully", result.Message)
	})

	t.Run("child of basic", func(t *testing.T) {
		_, err := NewCreateNoteCommand(b, tab.ID, basic.ID, "x", "", "").Execute(ctx)
		assert.ErrorIs(t, err, application.ErrNotCategorical)
	})

	t.Run("unknown parent", func(t *testing.T) {
		_, err := NewCreateNoteCommand(b, tab.ID, 999, "x", "", "").Execute(ctx)
		assert.ErrorIs(t, err, application.ErrNotFound)
	})
}
