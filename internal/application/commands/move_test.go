package commands

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"focusboard/internal/application"
	"focusboard/internal/domain"
	"focusboard/internal/testutil"
)

func TestMoveTabCommand(t *testing.T) {
	ctx := context.Background()
	b := testutil.NewBackend()
	a := b.SeedTab("A", domain.Ptr[int64](0))
	bb := b.SeedTab("B", domain.Ptr[int64](1))
	c := b.SeedTab("C", domain.Ptr[int64](2))

	result, err := NewMoveTabCommand(b, c.ID, 0).Execute(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int64{c.ID, a.ID, bb.ID}, result.IDs)
	assert.Equal(t, "Tabs reordered successfully", result.Message)

	sorted := domain.SortTabs(b.Tabs())
	assert.Equal(t, []int64{c.ID, a.ID, bb.ID}, domain.TabIDs(sorted))
	assert.Equal(t, int64(0), *sorted[0].OrderID)

	_, err = NewMoveTabCommand(b, c.ID, 3).Execute(ctx)
	var valErr *application.ValidationError
	assert.ErrorAs(t, err, &valErr)

	_, err = NewMoveTabCommand(b, 42, 0).Execute(ctx)
	assert.ErrorIs(t, err, application.ErrNotFound)
}

func TestMoveNoteCommand(t *testing.T) {
	ctx := context.Background()
	b := testutil.NewBackend()
	tab := b.SeedTab("T", nil)
	seed := func(parent *int64, order int64, typ domain.NoteType) domain.Note {
		return b.SeedNote(domain.Note{TabID: domain.Ptr(tab.ID), ParentID: parent, OrderID: domain.Ptr(order), Type: typ})
	}
	cat := seed(nil, 1, domain.NoteTypeCategorical)
	n2 := seed(nil, 2, domain.NoteTypeBasic)
	c1 := seed(domain.Ptr(cat.ID), 1, domain.NoteTypeBasic)
	c2 := seed(domain.Ptr(cat.ID), 2, domain.NoteTypeBasic)

	t.Run("top-level", func(t *testing.T) {
		result, err := NewMoveNoteCommand(b, tab.ID, n2.ID, 0).Execute(ctx)
		require.NoError(t, err)
		assert.Equal(t, []int64{n2.ID, cat.ID}, result.IDs)
		assert.True(t, result.Scope.IsTopLevel())

		got, _ := b.Note(n2.ID)
		assert.Equal(t, int64(1), *got.OrderID)
	})

	t.Run("children stay in their scope", func(t *testing.T) {
		result, err := NewMoveNoteCommand(b, tab.ID, c2.ID, 0).Execute(ctx)
		require.NoError(t, err)
		assert.Equal(t, []int64{c2.ID, c1.ID}, result.IDs)
		assert.Equal(t, "Sub-notes reordered successfully", result.Message)
	})

	t.Run("backend rejects", func(t *testing.T) {
		b.SetFail(testutil.OpReorderNotes, errors.New("busy"))
		defer b.SetFail(testutil.OpReorderNotes, nil)

		_, err := NewMoveNoteCommand(b, tab.ID, c2.ID, 1).Execute(ctx)
		var reorderErr *application.ReorderError
		require.ErrorAs(t, err, &reorderErr)
		assert.Equal(t, domain.NoteScope(tab.ID, domain.Ptr(cat.ID)), reorderErr.Scope)
	})

	t.Run("unknown note", func(t *testing.T) {
		_, err := NewMoveNoteCommand(b, tab.ID, 999, 0).Execute(ctx)
		assert.ErrorIs(t, err, application.ErrNotFound)
	})
}
