package views

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"focusboard/internal/adapters/tui/styles"
	"focusboard/internal/application/session"
	"focusboard/internal/domain"
)

// DeleteTarget is the tab or note awaiting delete confirmation
type DeleteTarget struct {
	Kind     domain.ParticipantKind
	ID       int64
	Label    string
	Children int
}

// consequence describes what else goes away with the target
func (t DeleteTarget) consequence() string {
	switch {
	case t.Kind == domain.ParticipantTab:
		return "All notes in this tab will be permanently deleted."
	case t.Children == 1:
		return "Its sub-note will be permanently deleted."
	case t.Children > 1:
		return fmt.Sprintf("Its %d sub-notes will be permanently deleted.", t.Children)
	}
	return ""
}

// DeleteModel confirms and runs the deletion of a tab or note
type DeleteModel struct {
	Confirmation
	ctx    context.Context
	sess   *session.Session
	target DeleteTarget
}

func NewDeleteModel(ctx context.Context, sess *session.Session) *DeleteModel {
	return &DeleteModel{Confirmation: NewConfirmation(), ctx: ctx, sess: sess}
}

func (m *DeleteModel) SetTarget(t DeleteTarget) {
	m.target = t
}

func (m *DeleteModel) Init() tea.Cmd {
	return nil
}

func (m *DeleteModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
	case tea.KeyMsg:
		return m, m.Answer(msg, m.doDelete, func() tea.Msg { return SwitchToBoardMsg{} })
	}
	return m, nil
}

func (m *DeleteModel) doDelete() tea.Msg {
	t := m.target
	var err error
	switch t.Kind {
	case domain.ParticipantTab:
		err = m.sess.DeleteTab(m.ctx, t.ID)
	case domain.ParticipantNote:
		err = m.sess.DeleteNote(m.ctx, t.ID)
	default:
		err = fmt.Errorf("no target selected")
	}
	return DeleteDoneMsg{Err: err}
}

// DeleteDoneMsg reports the outcome of a confirmed deletion
type DeleteDoneMsg struct {
	Err error
}

func (m *DeleteModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render(fmt.Sprintf("Delete %s", m.target.Kind)))
	b.WriteString("\n\n  ")
	b.WriteString(styles.InputLabel.Render(m.target.Label))
	b.WriteString("\n\n")

	if c := m.target.consequence(); c != "" {
		b.WriteString("  " + RenderMuted(c))
		b.WriteString("\n")
	}
	b.WriteString("  " + styles.ErrorMsg.Render("This cannot be undone."))
	b.WriteString("\n\n")

	b.WriteString(m.Prompt("Delete?"))

	return styles.App.Render(b.String())
}
