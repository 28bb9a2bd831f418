package views

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"focusboard/internal/adapters/tui/styles"
	"focusboard/internal/application/session"
	"focusboard/internal/domain"
)

// BoardKeyMap defines key bindings for the board view
type BoardKeyMap struct {
	Up           key.Binding
	Down         key.Binding
	Left         key.Binding
	Right        key.Binding
	Toggle       key.Binding
	Focus        key.Binding
	PrevTab      key.Binding
	NextTab      key.Binding
	Grab         key.Binding
	Cancel       key.Binding
	NewNote      key.Binding
	NewCategory  key.Binding
	NewChild     key.Binding
	NewTab       key.Binding
	RenameTab    key.Binding
	Edit         key.Binding
	Delete       key.Binding
	DeleteTab    key.Binding
	Copy         key.Binding
	Backup       key.Binding
	ToggleTabBar key.Binding
	Help         key.Binding
	Quit         key.Binding
}

var BoardKeys = BoardKeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	Left: key.NewBinding(
		key.WithKeys("h", "left"),
		key.WithHelp("h/←", "collapse"),
	),
	Right: key.NewBinding(
		key.WithKeys("l", "right"),
		key.WithHelp("l/→", "expand"),
	),
	Toggle: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "toggle/select"),
	),
	Focus: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "tabs/notes"),
	),
	PrevTab: key.NewBinding(
		key.WithKeys("["),
		key.WithHelp("[", "prev tab"),
	),
	NextTab: key.NewBinding(
		key.WithKeys("]"),
		key.WithHelp("]", "next tab"),
	),
	Grab: key.NewBinding(
		key.WithKeys(" "),
		key.WithHelp("space", "grab/drop"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "cancel drag"),
	),
	NewNote: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "new note"),
	),
	NewCategory: key.NewBinding(
		key.WithKeys("N"),
		key.WithHelp("N", "new category"),
	),
	NewChild: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "add sub-note"),
	),
	NewTab: key.NewBinding(
		key.WithKeys("t"),
		key.WithHelp("t", "new tab"),
	),
	RenameTab: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "rename tab"),
	),
	Edit: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "edit"),
	),
	Delete: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "delete note"),
	),
	DeleteTab: key.NewBinding(
		key.WithKeys("D"),
		key.WithHelp("D", "delete tab"),
	),
	Copy: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "copy"),
	),
	Backup: key.NewBinding(
		key.WithKeys("b"),
		key.WithHelp("b", "backup"),
	),
	ToggleTabBar: key.NewBinding(
		key.WithKeys("v"),
		key.WithHelp("v", "tab bar"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// Focus is the board pane receiving navigation keys
type Focus int

const (
	FocusNotes Focus = iota
	FocusTabs
)

// keyboardDrag is a pick-up/move/drop gesture driven from the keyboard
type keyboardDrag struct {
	active   string
	originID int64
}

// BoardModel is the model for the tab bar and note tree
type BoardModel struct {
	ViewState
	ctx  context.Context
	sess *session.Session
	clip func(string) error

	focus     Focus
	tabs      []domain.Tab
	flat      []*domain.TreeNode
	cursorID  int64
	tabCursor int64
	drag      *keyboardDrag
	status    session.Status
}

// NewBoardModel creates a board over a started session. clip writes text
// to the clipboard.
func NewBoardModel(ctx context.Context, sess *session.Session, clip func(string) error) *BoardModel {
	m := &BoardModel{ctx: ctx, sess: sess, clip: clip}
	m.Refresh()
	return m
}

// Init initializes the board
func (m *BoardModel) Init() tea.Cmd {
	return nil
}

// Refresh re-reads tabs, notes and status from the session, keeping the
// cursors on the same entities where they still exist
func (m *BoardModel) Refresh() {
	snap := m.sess.Snapshot()
	m.tabs = snap.Tabs
	m.flat = domain.FlattenForest(m.sess.Forest())
	m.status = m.sess.Status()

	if m.noteIndex(m.cursorID) < 0 {
		m.cursorID = 0
		if len(m.flat) > 0 {
			m.cursorID = m.flat[0].Note.ID
		}
	}
	if domain.IndexOfTab(m.tabs, m.tabCursor) < 0 {
		m.tabCursor, _ = m.sess.CurrentTabID()
	}
}

// Update handles messages for the board
func (m *BoardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case DoneMsg:
		if msg.Err != nil {
			m.SetMessage(msg.Err.Error(), true)
		}
		m.Refresh()
		return m, nil

	case SnapshotMsg, StatusMsg:
		m.Refresh()
		return m, nil

	case tea.KeyMsg:
		m.ClearMessage()
		if m.drag != nil {
			return m, m.updateDrag(msg)
		}
		return m, m.updateKeys(msg)
	}
	return m, nil
}

func (m *BoardModel) updateKeys(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, BoardKeys.Quit):
		return tea.Quit

	case key.Matches(msg, BoardKeys.Help):
		return func() tea.Msg { return SwitchToHelpMsg{} }

	case key.Matches(msg, BoardKeys.Focus):
		if m.focus == FocusNotes {
			m.focus = FocusTabs
			m.tabCursor, _ = m.sess.CurrentTabID()
		} else {
			m.focus = FocusNotes
		}
		return nil

	case key.Matches(msg, BoardKeys.Up):
		m.moveNoteCursor(-1)
		return nil

	case key.Matches(msg, BoardKeys.Down):
		m.moveNoteCursor(1)
		return nil

	case key.Matches(msg, BoardKeys.Left):
		if m.focus == FocusTabs {
			m.moveTabCursor(-1)
			return nil
		}
		m.collapse()
		return nil

	case key.Matches(msg, BoardKeys.Right):
		if m.focus == FocusTabs {
			m.moveTabCursor(1)
			return nil
		}
		if node := m.selectedNode(); node != nil && len(node.Children) > 0 && !node.IsExpanded {
			m.setOpen(node, true)
		}
		return nil

	case key.Matches(msg, BoardKeys.Toggle):
		if m.focus == FocusTabs {
			return m.selectTab(m.tabCursor)
		}
		if node := m.selectedNode(); node != nil {
			m.sess.ToggleOpen(node.Note.ID)
			m.Refresh()
		}
		return nil

	case key.Matches(msg, BoardKeys.PrevTab):
		return m.stepTab(-1)

	case key.Matches(msg, BoardKeys.NextTab):
		return m.stepTab(1)

	case key.Matches(msg, BoardKeys.Grab):
		m.startDrag()
		return nil

	case key.Matches(msg, BoardKeys.NewNote):
		return m.run(func(ctx context.Context) error {
			_, err := m.sess.AddNote(ctx, domain.NoteTypeBasic)
			return err
		})

	case key.Matches(msg, BoardKeys.NewCategory):
		return m.run(func(ctx context.Context) error {
			_, err := m.sess.AddNote(ctx, domain.NoteTypeCategorical)
			return err
		})

	case key.Matches(msg, BoardKeys.NewChild):
		node := m.selectedNode()
		if node == nil || !node.Note.CanOwnChildren() {
			m.SetMessage("Sub-notes can only be added to categorical notes", true)
			return nil
		}
		id := node.Note.ID
		return m.run(func(ctx context.Context) error {
			_, err := m.sess.AddChild(ctx, id)
			return err
		})

	case key.Matches(msg, BoardKeys.NewTab):
		return m.run(func(ctx context.Context) error {
			_, err := m.sess.AddTab(ctx)
			return err
		})

	case key.Matches(msg, BoardKeys.RenameTab):
		if tab, ok := m.sess.CurrentTab(); ok {
			return func() tea.Msg { return SwitchToRenameMsg{Tab: tab} }
		}
		return nil

	case key.Matches(msg, BoardKeys.DeleteTab):
		if tab, ok := m.sess.CurrentTab(); ok {
			target := DeleteTarget{Kind: domain.ParticipantTab, ID: tab.ID, Label: tab.Name}
			return func() tea.Msg { return SwitchToDeleteMsg{Target: target} }
		}
		return nil

	case key.Matches(msg, BoardKeys.Delete):
		if node := m.selectedNode(); node != nil {
			target := DeleteTarget{
				Kind:     domain.ParticipantNote,
				ID:       node.Note.ID,
				Label:    node.Note.Title,
				Children: len(node.Children),
			}
			return func() tea.Msg { return SwitchToDeleteMsg{Target: target} }
		}
		return nil

	case key.Matches(msg, BoardKeys.Edit):
		if node := m.selectedNode(); node != nil {
			n := node.Note
			return func() tea.Msg { return OpenEditorMsg{Note: n} }
		}
		return nil

	case key.Matches(msg, BoardKeys.Copy):
		if node := m.selectedNode(); node != nil && m.clip != nil {
			if err := m.clip(node.Note.Content); err != nil {
				m.SetMessage(fmt.Sprintf("Failed to copy note: %v", err), true)
			} else {
				m.SetMessage(fmt.Sprintf("Copied %s to clipboard", node.Note.Title), false)
			}
		}
		return nil

	case key.Matches(msg, BoardKeys.Backup):
		return m.run(func(ctx context.Context) error {
			_, err := m.sess.Backup(ctx)
			return err
		})

	case key.Matches(msg, BoardKeys.ToggleTabBar):
		m.sess.ToggleTabBar()
		if !m.sess.UI().TabBar {
			m.focus = FocusNotes
		}
		return nil
	}
	return nil
}

// updateDrag handles keys while an item is picked up. Movement keys move
// the drop target, grab or enter drops, esc puts the item back.
func (m *BoardModel) updateDrag(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, BoardKeys.Cancel):
		m.sess.DragCancel()
		m.restoreCursor(m.drag.originID)
		m.drag = nil
		m.SetMessage("Drag cancelled", false)
		return nil

	case key.Matches(msg, BoardKeys.Grab), key.Matches(msg, BoardKeys.Toggle):
		return m.drop()

	case key.Matches(msg, BoardKeys.Up), key.Matches(msg, BoardKeys.Left):
		m.moveDragTarget(-1)
		return nil

	case key.Matches(msg, BoardKeys.Down), key.Matches(msg, BoardKeys.Right):
		m.moveDragTarget(1)
		return nil

	case key.Matches(msg, BoardKeys.Quit):
		m.sess.DragCancel()
		m.drag = nil
		return tea.Quit
	}
	return nil
}

func (m *BoardModel) startDrag() {
	over := m.hovered()
	if over == "" {
		return
	}
	origin := m.cursorID
	if m.focus == FocusTabs {
		origin = m.tabCursor
	}
	m.drag = &keyboardDrag{active: over, originID: origin}
	m.sess.DragStart(over)
	m.sess.DragOver(over)
}

func (m *BoardModel) moveDragTarget(delta int) {
	if m.focus == FocusTabs {
		m.moveTabCursor(delta)
	} else {
		m.moveNoteCursor(delta)
	}
	m.sess.DragOver(m.hovered())
}

// drop ends the drag on the hovered item. The cursor follows the moved item.
func (m *BoardModel) drop() tea.Cmd {
	active, over := m.drag.active, m.hovered()
	m.drag = nil
	if p, ok := domain.ParseParticipant(active); ok {
		if p.Kind == domain.ParticipantTab {
			m.tabCursor = p.ID
		} else {
			m.cursorID = p.ID
		}
	}
	return func() tea.Msg {
		op, err := m.sess.DragEnd(m.ctx, active, over)
		if err != nil {
			return DoneMsg{Err: err}
		}
		if op != nil {
			// the optimistic order is already applied; persistence
			// finishes in the background and reports through status
			return SnapshotMsg{}
		}
		return DoneMsg{}
	}
}

// hovered returns the participant identifier under the active cursor
func (m *BoardModel) hovered() string {
	if m.focus == FocusTabs {
		if domain.IndexOfTab(m.tabs, m.tabCursor) < 0 {
			return ""
		}
		return domain.TabParticipant(m.tabCursor)
	}
	if node := m.selectedNode(); node != nil {
		return domain.NoteParticipant(node.Note.ID)
	}
	return ""
}

func (m *BoardModel) run(fn func(ctx context.Context) error) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		return DoneMsg{Err: fn(ctx)}
	}
}

func (m *BoardModel) selectTab(id int64) tea.Cmd {
	if id == 0 {
		return nil
	}
	return m.run(func(ctx context.Context) error {
		return m.sess.SelectTab(ctx, id)
	})
}

func (m *BoardModel) stepTab(delta int) tea.Cmd {
	if len(m.tabs) == 0 {
		return nil
	}
	cur, _ := m.sess.CurrentTabID()
	i := domain.IndexOfTab(m.tabs, cur) + delta
	if i < 0 || i >= len(m.tabs) {
		return nil
	}
	m.tabCursor = m.tabs[i].ID
	return m.selectTab(m.tabs[i].ID)
}

func (m *BoardModel) collapse() {
	node := m.selectedNode()
	if node == nil {
		return
	}
	if node.IsExpanded && len(node.Children) > 0 {
		m.setOpen(node, false)
		return
	}
	if node.Parent != nil {
		m.cursorID = node.Parent.Note.ID
	}
}

func (m *BoardModel) setOpen(node *domain.TreeNode, open bool) {
	if tabID, ok := m.sess.CurrentTabID(); ok {
		m.sess.SetOpen(tabID, node.Note.ID, open)
		m.Refresh()
	}
}

func (m *BoardModel) moveNoteCursor(delta int) {
	i := m.noteIndex(m.cursorID) + delta
	if i >= 0 && i < len(m.flat) {
		m.cursorID = m.flat[i].Note.ID
	}
}

func (m *BoardModel) moveTabCursor(delta int) {
	i := domain.IndexOfTab(m.tabs, m.tabCursor) + delta
	if i >= 0 && i < len(m.tabs) {
		m.tabCursor = m.tabs[i].ID
	}
}

func (m *BoardModel) restoreCursor(id int64) {
	if m.focus == FocusTabs {
		m.tabCursor = id
	} else {
		m.cursorID = id
	}
}

func (m *BoardModel) noteIndex(id int64) int {
	for i, n := range m.flat {
		if n.Note.ID == id {
			return i
		}
	}
	return -1
}

func (m *BoardModel) selectedNode() *domain.TreeNode {
	if i := m.noteIndex(m.cursorID); i >= 0 {
		return m.flat[i]
	}
	return nil
}

// Dragging reports whether an item is currently picked up
func (m *BoardModel) Dragging() bool {
	return m.drag != nil
}

// View renders the board
func (m *BoardModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("Focusboard"))
	b.WriteString("\n")

	if m.sess.UI().TabBar {
		b.WriteString(m.renderTabBar())
		b.WriteString("\n")
	}

	if _, ok := m.sess.CurrentTabID(); !ok {
		b.WriteString(RenderMuted("No tab selected. Press t to add a tab."))
		b.WriteString("\n")
	} else if len(m.flat) == 0 {
		b.WriteString(RenderMuted("No notes yet. Press n to add one."))
		b.WriteString("\n")
	} else {
		start, end := window(len(m.flat), m.noteIndex(m.cursorID), m.treeHeight())
		for _, node := range m.flat[start:end] {
			b.WriteString(m.renderNode(node))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	switch {
	case m.Message != "":
		b.WriteString(RenderMessage(m.Message, m.MessageErr))
	case m.status.Message != "":
		b.WriteString(RenderMessage(m.status.Message, m.status.IsError()))
	}
	if state := m.syncState(); state != "" {
		b.WriteString(" ")
		b.WriteString(RenderMuted(state))
	}
	b.WriteString("\n")

	if m.drag != nil {
		b.WriteString(RenderHelpLine(BoardKeys.Up, BoardKeys.Down, BoardKeys.Grab, BoardKeys.Cancel))
	} else {
		b.WriteString(RenderHelpLine(BoardKeys.Grab, BoardKeys.Focus, BoardKeys.NewNote, BoardKeys.NewChild,
			BoardKeys.Edit, BoardKeys.Delete, BoardKeys.Help, BoardKeys.Quit))
	}

	return styles.App.Render(b.String())
}

func (m *BoardModel) treeHeight() int {
	if m.Height == 0 {
		return 0
	}
	return max(3, m.Height-12)
}

// syncState describes reorders still being persisted
func (m *BoardModel) syncState() string {
	scopes := []domain.Scope{domain.TabScope()}
	if node := m.selectedNode(); node != nil {
		scopes = append(scopes, node.Note.Scope())
	}
	for _, scope := range scopes {
		if st := m.sess.ReorderState(scope); st != session.ReorderIdle {
			return fmt.Sprintf("(%s: %s)", scope, st)
		}
	}
	return ""
}

func (m *BoardModel) renderTabBar() string {
	current, _ := m.sess.CurrentTabID()
	var activeID int64
	if m.drag != nil {
		if p, ok := domain.ParseParticipant(m.drag.active); ok && p.Kind == domain.ParticipantTab {
			activeID = p.ID
		}
	}

	parts := make([]string, 0, len(m.tabs))
	for _, t := range m.tabs {
		style := styles.Tab
		switch {
		case t.ID == activeID:
			style = styles.Dragged
		case m.focus == FocusTabs && t.ID == m.tabCursor:
			if m.drag != nil {
				style = styles.DropTarget
			} else {
				style = styles.TabCursor
			}
		case t.ID == current:
			style = styles.TabActive
		}
		parts = append(parts, style.Render(t.Name))
	}
	return styles.TabBar.Render(lipgloss.JoinHorizontal(lipgloss.Top, parts...))
}

func (m *BoardModel) renderNode(node *domain.TreeNode) string {
	indent := strings.Repeat("  ", node.Depth())

	var prefix string
	switch {
	case !node.Note.IsCategorical():
		prefix = styles.TreeLeaf
	case node.IsExpanded:
		prefix = styles.TreeExpanded
	default:
		prefix = styles.TreeCollapsed
	}

	text := node.Note.Title
	if node.Note.IsCategorical() && len(node.Children) > 0 {
		text = fmt.Sprintf("%s (%d)", text, len(node.Children))
	}

	style := styles.NoteBasic
	if node.Note.IsCategorical() {
		style = styles.NoteCategorical
	}

	selected := m.focus == FocusNotes && node.Note.ID == m.cursorID
	if m.drag != nil {
		if node.Note.ID == m.dragNoteID() {
			style = styles.Dragged
		} else if selected {
			style = styles.DropTarget
		}
	} else if selected {
		style = styles.NoteSelected
	}

	line := fmt.Sprintf("%s%s%s", indent, styles.TreeBranch.Render(prefix), style.Render(text))
	if !node.Note.IsCategorical() {
		if preview := firstLine(node.Note.Content, 40); preview != "" {
			line += "  " + styles.NotePreview.Render(preview)
		}
	}
	return line
}

func (m *BoardModel) dragNoteID() int64 {
	if m.drag == nil {
		return 0
	}
	if p, ok := domain.ParseParticipant(m.drag.active); ok && p.Kind == domain.ParticipantNote {
		return p.ID
	}
	return 0
}
