package application

import "focusboard/internal/domain"

// Re-export domain types for use by adapters
type (
	Tab        = domain.Tab
	Note       = domain.Note
	NoteType   = domain.NoteType
	Scope      = domain.Scope
	TreeNode   = domain.TreeNode
	OpenStates = domain.OpenStates
)

const (
	NoteTypeBasic       = domain.NoteTypeBasic
	NoteTypeCategorical = domain.NoteTypeCategorical
)

// ParseNoteType converts user input to a note type
func ParseNoteType(raw string) (NoteType, error) {
	return domain.ParseNoteType(raw)
}
