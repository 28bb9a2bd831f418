package views

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"focusboard/internal/adapters/tui/styles"
	"focusboard/internal/application/session"
	"focusboard/internal/domain"
)

// RenameKeyMap defines key bindings for the rename view
type RenameKeyMap struct {
	Submit key.Binding
	Cancel key.Binding
}

var RenameKeys = RenameKeyMap{
	Submit: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "rename"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "cancel"),
	),
}

// RenameModel edits the name of a tab
type RenameModel struct {
	ViewState
	ctx   context.Context
	sess  *session.Session
	tab   domain.Tab
	input textinput.Model
}

// NewRenameModel creates a new rename view model
func NewRenameModel(ctx context.Context, sess *session.Session) *RenameModel {
	input := textinput.New()
	input.Placeholder = "Tab name"
	input.CharLimit = 60
	return &RenameModel{ctx: ctx, sess: sess, input: input}
}

// SetTab prefills the form with the tab being renamed
func (m *RenameModel) SetTab(t domain.Tab) {
	m.tab = t
	m.ClearMessage()
	m.input.SetValue(t.Name)
	m.input.CursorEnd()
	m.input.Focus()
}

// Init initializes the rename view
func (m *RenameModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages for the rename view
func (m *RenameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, RenameKeys.Cancel):
			m.input.Blur()
			return m, func() tea.Msg { return SwitchToBoardMsg{} }

		case key.Matches(msg, RenameKeys.Submit):
			name := strings.TrimSpace(m.input.Value())
			if name == "" {
				m.SetMessage("Name is required", true)
				return m, nil
			}
			m.input.Blur()
			id := m.tab.ID
			return m, func() tea.Msg {
				return RenameDoneMsg{Err: m.sess.RenameTab(m.ctx, id, name)}
			}
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// RenameDoneMsg reports the outcome of a rename
type RenameDoneMsg struct {
	Err error
}

// View renders the rename view
func (m *RenameModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("Rename Tab"))
	b.WriteString("\n\n")

	b.WriteString(styles.InputLabel.Render("Name"))
	b.WriteString("\n")
	b.WriteString(styles.InputFocused.Render(m.input.View()))
	b.WriteString("\n\n")

	if m.Message != "" {
		b.WriteString(RenderMessage(m.Message, m.MessageErr))
		b.WriteString("\n\n")
	}

	b.WriteString(RenderHelpLine(RenameKeys.Submit, RenameKeys.Cancel))

	return styles.App.Render(b.String())
}
