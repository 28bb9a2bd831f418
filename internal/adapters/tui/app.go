package tui

import (
	"context"
	"fmt"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"focusboard/internal/adapters/tui/views"
	"focusboard/internal/application/session"
	"focusboard/internal/domain"
	"focusboard/internal/ports"
)

// ViewState represents the current view
type ViewState int

const (
	ViewBoard ViewState = iota
	ViewRename
	ViewDelete
	ViewHelp
)

// App is the main TUI application model
type App struct {
	ctx    context.Context
	sess   *session.Session
	editor ports.NoteEditor

	state  ViewState
	board  *views.BoardModel
	rename *views.RenameModel
	delete *views.DeleteModel
	help   *views.HelpModel

	width  int
	height int
}

// NewApp creates a new TUI application over a started session. ed may be
// nil, which disables editing. clip writes to the system clipboard.
func NewApp(ctx context.Context, sess *session.Session, ed ports.NoteEditor, clip func(string) error) *App {
	return &App{
		ctx:    ctx,
		sess:   sess,
		editor: ed,
		state:  ViewBoard,
		board:  views.NewBoardModel(ctx, sess, clip),
		rename: views.NewRenameModel(ctx, sess),
		delete: views.NewDeleteModel(ctx, sess),
		help:   views.NewHelpModel(),
	}
}

// Init initializes the application
func (a *App) Init() tea.Cmd {
	return a.board.Init()
}

// Update handles messages for the application
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.board.SetSize(msg.Width, msg.Height)
		a.rename.SetSize(msg.Width, msg.Height)
		a.delete.SetSize(msg.Width, msg.Height)
		a.help.SetSize(msg.Width, msg.Height)
		return a, nil

	// Board state changes reach the board whatever view is showing
	case views.SnapshotMsg, views.StatusMsg, views.DoneMsg:
		_, cmd := a.board.Update(msg)
		return a, cmd

	// View switching messages
	case views.SwitchToHelpMsg:
		a.state = ViewHelp
		return a, nil

	case views.SwitchToRenameMsg:
		a.state = ViewRename
		a.rename.SetTab(msg.Tab)
		return a, a.rename.Init()

	case views.SwitchToDeleteMsg:
		a.state = ViewDelete
		a.delete.SetTarget(msg.Target)
		return a, nil

	case views.SwitchToBoardMsg:
		a.state = ViewBoard
		a.board.Refresh()
		return a, nil

	case views.RenameDoneMsg:
		if msg.Err != nil {
			a.rename.SetMessage(msg.Err.Error(), true)
			return a, nil
		}
		a.state = ViewBoard
		a.board.Refresh()
		return a, nil

	case views.DeleteDoneMsg:
		a.state = ViewBoard
		_, cmd := a.board.Update(views.DoneMsg{Err: msg.Err})
		return a, cmd

	case views.OpenEditorMsg:
		return a, a.openEditor(msg)

	case editorFinishedMsg:
		return a, a.saveDraft(msg)
	}

	// Delegate to current view
	var cmd tea.Cmd
	switch a.state {
	case ViewBoard:
		_, cmd = a.board.Update(msg)
	case ViewRename:
		_, cmd = a.rename.Update(msg)
	case ViewDelete:
		_, cmd = a.delete.Update(msg)
	case ViewHelp:
		_, cmd = a.help.Update(msg)
	}

	return a, cmd
}

type editorFinishedMsg struct {
	noteID int64
	path   string
	err    error
}

func (a *App) openEditor(msg views.OpenEditorMsg) tea.Cmd {
	if a.editor == nil {
		a.board.SetMessage("No editor configured", true)
		return nil
	}

	path, err := a.editor.WriteDraft(msg.Note)
	if err != nil {
		a.board.SetMessage(fmt.Sprintf("Failed to open editor: %v", err), true)
		return nil
	}

	cmd, err := a.editor.Command(path)
	if err != nil {
		return func() tea.Msg {
			return editorFinishedMsg{noteID: msg.Note.ID, path: path, err: err}
		}
	}

	id := msg.Note.ID
	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		return editorFinishedMsg{noteID: id, path: path, err: err}
	})
}

// saveDraft reads the edited draft back and stores it on the note
func (a *App) saveDraft(msg editorFinishedMsg) tea.Cmd {
	if msg.err != nil {
		a.board.SetMessage(fmt.Sprintf("Editor failed: %v", msg.err), true)
		return nil
	}
	return func() tea.Msg {
		title, content, err := a.editor.ReadDraft(msg.path)
		if err != nil {
			return views.DoneMsg{Err: err}
		}
		return views.DoneMsg{Err: a.sess.UpdateNote(a.ctx, msg.noteID, title, content)}
	}
}

// View renders the current view
func (a *App) View() string {
	switch a.state {
	case ViewRename:
		return a.rename.View()
	case ViewDelete:
		return a.delete.View()
	case ViewHelp:
		return a.help.View()
	default:
		return a.board.View()
	}
}

// Bridge forwards session events to a running program. Sends happen on
// their own goroutine so session callbacks never wait on the UI loop.
type Bridge struct {
	mu sync.Mutex
	p  *tea.Program
}

// Attach starts forwarding to p
func (b *Bridge) Attach(p *tea.Program) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.p = p
}

// Status forwards a session status message
func (b *Bridge) Status(st session.Status) {
	b.send(views.StatusMsg{Status: st})
}

// Snapshot forwards a store commit
func (b *Bridge) Snapshot(*session.Snapshot) {
	b.send(views.SnapshotMsg{})
}

// ReorderState forwards reorder progress so sync indicators update
func (b *Bridge) ReorderState(domain.Scope, session.ReorderState) {
	b.send(views.SnapshotMsg{})
}

func (b *Bridge) send(msg tea.Msg) {
	b.mu.Lock()
	p := b.p
	b.mu.Unlock()
	if p != nil {
		go p.Send(msg)
	}
}
