package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"focusboard/internal/adapters/tui/styles"
)

// HelpKeyMap defines key bindings for the help view
type HelpKeyMap struct {
	Close key.Binding
}

var HelpKeys = HelpKeyMap{
	Close: key.NewBinding(
		key.WithKeys("esc", "q", "?"),
		key.WithHelp("esc/q/?", "close"),
	),
}

// HelpModel is the model for the help view
type HelpModel struct {
	ViewState
}

// NewHelpModel creates a new help view model
func NewHelpModel() *HelpModel {
	return &HelpModel{}
}

// Init initializes the help view
func (m *HelpModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the help view
func (m *HelpModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, HelpKeys.Close) {
			return m, func() tea.Msg {
				return SwitchToBoardMsg{}
			}
		}
	}

	return m, nil
}

type helpSection struct {
	title    string
	bindings []key.Binding
}

var helpSections = []helpSection{
	{"Navigation", []key.Binding{
		BoardKeys.Up, BoardKeys.Down, BoardKeys.Left, BoardKeys.Right, BoardKeys.Toggle,
		BoardKeys.Focus, BoardKeys.PrevTab, BoardKeys.NextTab,
	}},
	{"Reordering", []key.Binding{BoardKeys.Grab, BoardKeys.Cancel}},
	{"Notes", []key.Binding{
		BoardKeys.NewNote, BoardKeys.NewCategory, BoardKeys.NewChild,
		BoardKeys.Edit, BoardKeys.Delete, BoardKeys.Copy,
	}},
	{"Tabs", []key.Binding{BoardKeys.NewTab, BoardKeys.RenameTab, BoardKeys.DeleteTab, BoardKeys.ToggleTabBar}},
	{"General", []key.Binding{BoardKeys.Backup, BoardKeys.Help, BoardKeys.Quit}},
}

// View renders the help sections in two columns
func (m *HelpModel) View() string {
	var left, right strings.Builder
	for i, s := range helpSections {
		col := &left
		if i%2 == 1 {
			col = &right
		}
		col.WriteString(styles.InputLabel.Render(s.title))
		col.WriteString("\n")
		for _, kb := range s.bindings {
			h := kb.Help()
			col.WriteString(helpLine(h.Key, h.Desc))
		}
		col.WriteString("\n")
	}

	var b strings.Builder
	b.WriteString(styles.Title.Render("Focusboard Help"))
	b.WriteString("\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().Width(40).Render(left.String()),
		right.String(),
	))
	b.WriteString("\n")

	b.WriteString(styles.InputLabel.Render("Dragging"))
	b.WriteString("\n")
	b.WriteString(RenderMuted("  Press space on a note or tab, move onto another item of the"))
	b.WriteString("\n")
	b.WriteString(RenderMuted("  same list and press space again. Notes only move among siblings."))
	b.WriteString("\n\n")

	b.WriteString(RenderHelpLine(HelpKeys.Close))

	return styles.App.Render(b.String())
}

func helpLine(key, desc string) string {
	return "  " + styles.HelpKey.Width(10).Render(key) + styles.HelpDesc.Render(desc) + "\n"
}
