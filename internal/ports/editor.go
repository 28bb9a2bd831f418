package ports

import (
	"os/exec"

	"focusboard/internal/domain"
)

// NoteEditor edits a note in an external editor through a scratch file
type NoteEditor interface {
	// WriteDraft writes the note to a scratch file and returns its path
	WriteDraft(n domain.Note) (string, error)

	// Command returns an exec.Cmd for opening a file in the editor
	// This is useful for integrating with bubbletea's ExecProcess
	Command(path string) (*exec.Cmd, error)

	// ReadDraft reads the edited title and content back and removes the file
	ReadDraft(path string) (title, content string, err error)
}
