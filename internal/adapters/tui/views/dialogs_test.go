package views

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"focusboard/internal/domain"
	"focusboard/internal/testutil"
)

func TestDeleteModel(t *testing.T) {
	t.Run("confirm deletes note and children", func(t *testing.T) {
		b := newBoard(t)
		m := NewDeleteModel(b.model.ctx, b.sess)
		m.SetTarget(DeleteTarget{Kind: domain.ParticipantNote, ID: b.cat.ID, Label: b.cat.Title, Children: 1})
		assert.Contains(t, m.View(), "Its sub-note will be permanently deleted.")

		_, cmd := m.Update(keyMsg("y"))
		require.NotNil(t, cmd)
		msg := cmd()
		b.sess.Wait()

		require.IsType(t, DeleteDoneMsg{}, msg)
		assert.NoError(t, msg.(DeleteDoneMsg).Err)
		assert.Equal(t, []int64{b.basic.ID}, domain.NoteIDs(b.backend.Notes()))
	})

	t.Run("cancel returns to board", func(t *testing.T) {
		b := newBoard(t)
		m := NewDeleteModel(b.model.ctx, b.sess)
		m.SetTarget(DeleteTarget{Kind: domain.ParticipantTab, ID: b.work.ID, Label: b.work.Name})
		assert.Contains(t, m.View(), "All notes in this tab")

		_, cmd := m.Update(keyMsg("esc"))
		require.NotNil(t, cmd)
		assert.IsType(t, SwitchToBoardMsg{}, cmd())
		assert.Empty(t, b.backend.CallsOf(testutil.OpDeleteTab))
	})

	t.Run("no target", func(t *testing.T) {
		b := newBoard(t)
		m := NewDeleteModel(b.model.ctx, b.sess)
		_, cmd := m.Update(keyMsg("y"))
		assert.Error(t, cmd().(DeleteDoneMsg).Err)
	})
}

func TestRenameModel(t *testing.T) {
	b := newBoard(t)
	m := NewRenameModel(b.model.ctx, b.sess)
	m.SetTab(b.work)
	assert.Contains(t, m.View(), "Rename Tab")

	m.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	m.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	m.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	m.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	m.Update(keyMsg("Jobs"))

	_, cmd := m.Update(keyMsg("enter"))
	require.NotNil(t, cmd)
	msg := cmd()
	require.IsType(t, RenameDoneMsg{}, msg)
	require.NoError(t, msg.(RenameDoneMsg).Err)

	tab, ok := b.sess.CurrentTab()
	require.True(t, ok)
	assert.Equal(t, "Jobs", tab.Name)
}

func TestRenameModel_RequiresName(t *testing.T) {
	b := newBoard(t)
	m := NewRenameModel(b.model.ctx, b.sess)
	m.SetTab(domain.Tab{ID: b.work.ID})

	_, cmd := m.Update(keyMsg("enter"))
	assert.Nil(t, cmd)
	assert.Equal(t, "Name is required", m.Message)
	assert.True(t, m.MessageErr)
	assert.Empty(t, b.backend.CallsOf(testutil.OpRenameTab))
}
