// Package styles holds the board's lipgloss palette and styles.
package styles

import "github.com/charmbracelet/lipgloss"

// Palette. Each color has a light and a dark terminal variant.
var (
	Accent   = lipgloss.AdaptiveColor{Light: "#5B21B6", Dark: "#A78BFA"}
	Category = lipgloss.AdaptiveColor{Light: "#1D4ED8", Dark: "#60A5FA"}
	Positive = lipgloss.AdaptiveColor{Light: "#047857", Dark: "#34D399"}
	Dim      = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"}
	Carry    = lipgloss.AdaptiveColor{Light: "#B45309", Dark: "#FBBF24"}
	Danger   = lipgloss.AdaptiveColor{Light: "#B91C1C", Dark: "#F87171"}
	Inverse  = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#111827"}
)

var (
	App   = lipgloss.NewStyle().Padding(1, 2)
	Title = lipgloss.NewStyle().Bold(true).Foreground(Accent).MarginBottom(1)

	// Tab bar. The active tab is the selected one, the cursor marks the
	// tab under keyboard focus.
	Tab       = lipgloss.NewStyle().Foreground(Dim).Padding(0, 1)
	TabActive = Tab.Foreground(Inverse).Background(Accent).Bold(true)
	TabCursor = Tab.Foreground(Accent).Underline(true)
	TabBar    = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(Dim).
			MarginBottom(1)

	// Note tree
	NoteBasic       = lipgloss.NewStyle()
	NoteCategorical = lipgloss.NewStyle().Foreground(Category).Bold(true)
	NoteSelected    = lipgloss.NewStyle().Foreground(Inverse).Background(Accent).Bold(true)
	NotePreview     = lipgloss.NewStyle().Foreground(Dim).Italic(true)

	TreeBranch    = lipgloss.NewStyle().Foreground(Dim)
	TreeExpanded  = "▾ "
	TreeCollapsed = "▸ "
	TreeLeaf      = "· "

	// Keyboard drag: the picked-up item and the current drop target
	Dragged    = lipgloss.NewStyle().Foreground(Inverse).Background(Carry).Bold(true)
	DropTarget = lipgloss.NewStyle().Foreground(Carry).Underline(true)

	// Dialogs
	InputLabel   = lipgloss.NewStyle().Foreground(Positive).Bold(true)
	InputFocused = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Positive).
			Padding(0, 1)

	// Help line
	HelpKey       = lipgloss.NewStyle().Foreground(Accent).Bold(true)
	HelpDesc      = lipgloss.NewStyle().Foreground(Dim)
	HelpSeparator = lipgloss.NewStyle().Foreground(Dim).SetString(" · ")

	// Messages
	Success   = lipgloss.NewStyle().Foreground(Positive).Bold(true)
	ErrorMsg  = lipgloss.NewStyle().Foreground(Danger).Bold(true)
	MutedText = lipgloss.NewStyle().Foreground(Dim)
)
