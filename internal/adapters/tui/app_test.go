package tui

import (
	"context"
	"errors"
	"os/exec"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"focusboard/internal/adapters/tui/views"
	"focusboard/internal/application/session"
	"focusboard/internal/domain"
	"focusboard/internal/ports"
	"focusboard/internal/testutil"
)

type fakeEditor struct {
	drafts  map[string]domain.Note
	title   string
	content string
	cmdErr  error
}

func (e *fakeEditor) WriteDraft(n domain.Note) (string, error) {
	path := "/tmp/draft.md"
	e.drafts[path] = n
	return path, nil
}

func (e *fakeEditor) Command(string) (*exec.Cmd, error) {
	if e.cmdErr != nil {
		return nil, e.cmdErr
	}
	return exec.Command("true"), nil
}

func (e *fakeEditor) ReadDraft(string) (string, string, error) {
	return e.title, e.content, nil
}

type fixture struct {
	backend *testutil.Backend
	sess    *session.Session
	editor  *fakeEditor
	app     *App
	note    domain.Note
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{backend: testutil.NewBackend(), editor: &fakeEditor{drafts: map[string]domain.Note{}}}
	tab := f.backend.SeedTab("Work", domain.Ptr[int64](0))
	f.note = f.backend.SeedNote(domain.Note{Title: "Standup", TabID: domain.Ptr(tab.ID), OrderID: domain.Ptr[int64](1)})

	logger, _ := logtest.NewNullLogger()
	f.sess = session.New(session.Options{
		Backend:  f.backend,
		Prefs:    testutil.NewPrefs(ports.Preferences{UI: ports.DefaultUIVisibility()}),
		Logger:   logger,
		Debounce: 10 * time.Millisecond,
	})
	require.NoError(t, f.sess.Start(context.Background()))
	t.Cleanup(f.sess.Wait)

	f.app = NewApp(context.Background(), f.sess, f.editor, nil)
	return f
}

// send feeds msg to the app and follows returned commands while they
// produce app messages. Cursor blink ticks are not followed.
func (f *fixture) send(msg tea.Msg) {
	for appMsg(msg) {
		_, cmd := f.app.Update(msg)
		if cmd == nil {
			return
		}
		msg = cmd()
		f.sess.Wait()
	}
}

func appMsg(msg tea.Msg) bool {
	switch msg.(type) {
	case tea.KeyMsg, editorFinishedMsg,
		views.SwitchToBoardMsg, views.SwitchToHelpMsg, views.SwitchToRenameMsg, views.SwitchToDeleteMsg,
		views.OpenEditorMsg, views.RenameDoneMsg, views.DeleteDoneMsg,
		views.DoneMsg, views.SnapshotMsg, views.StatusMsg:
		return true
	}
	return false
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestApp_DeleteFlow(t *testing.T) {
	f := newFixture(t)

	f.send(runes("d"))
	assert.Equal(t, ViewDelete, f.app.state)
	assert.Contains(t, f.app.View(), "Standup")

	f.send(runes("y"))
	assert.Equal(t, ViewBoard, f.app.state)
	assert.Empty(t, f.backend.Notes())
	assert.Contains(t, f.app.View(), "No notes yet")
}

func TestApp_HelpOpensAndCloses(t *testing.T) {
	f := newFixture(t)

	f.send(runes("?"))
	assert.Equal(t, ViewHelp, f.app.state)

	f.send(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, ViewBoard, f.app.state)
}

func TestApp_RenameFlow(t *testing.T) {
	f := newFixture(t)

	f.send(runes("r"))
	assert.Equal(t, ViewRename, f.app.state)

	f.send(runes("!"))
	f.send(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, ViewBoard, f.app.state)

	tab, ok := f.sess.CurrentTab()
	require.True(t, ok)
	assert.Equal(t, "Work!", tab.Name)
}

func TestApp_SaveDraft(t *testing.T) {
	f := newFixture(t)
	f.editor.title = "Daily standup"
	f.editor.content = "notes"

	f.send(editorFinishedMsg{noteID: f.note.ID, path: "/tmp/draft.md"})

	n, ok := f.backend.Note(f.note.ID)
	require.True(t, ok)
	assert.Equal(t, "Daily standup", n.Title)
	assert.Equal(t, "notes", n.Content)
}

func TestApp_EditorMissing(t *testing.T) {
	f := newFixture(t)
	f.editor.cmdErr = errors.New("no editor found")

	f.send(runes("e"))
	assert.Contains(t, f.editor.drafts, "/tmp/draft.md")
	assert.Contains(t, f.app.View(), "Editor failed: no editor found")
}

func TestApp_NoEditor(t *testing.T) {
	f := newFixture(t)
	f.app = NewApp(context.Background(), f.sess, nil, nil)

	f.send(runes("e"))
	assert.Contains(t, f.app.View(), "No editor configured")
}
