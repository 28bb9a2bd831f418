package views

import (
	"focusboard/internal/application/session"
	"focusboard/internal/domain"
)

// ViewState contains common state shared by all view models.
// Embed this struct in view models to get width/height and message handling.
type ViewState struct {
	Width      int
	Height     int
	Message    string
	MessageErr bool
}

// SetSize updates the view dimensions
func (s *ViewState) SetSize(width, height int) {
	s.Width = width
	s.Height = height
}

// SetMessage sets a message to display in the view
func (s *ViewState) SetMessage(msg string, isErr bool) {
	s.Message = msg
	s.MessageErr = isErr
}

// ClearMessage clears the current message
func (s *ViewState) ClearMessage() {
	s.Message = ""
	s.MessageErr = false
}

// SnapshotMsg signals that the board state changed
type SnapshotMsg struct{}

// StatusMsg carries a session status message
type StatusMsg struct {
	Status session.Status
}

// DoneMsg reports the end of a session call started by a view. Failures
// have already been reported as session status.
type DoneMsg struct {
	Err error
}

// Messages for view switching
type SwitchToBoardMsg struct{}

type SwitchToHelpMsg struct{}

type SwitchToRenameMsg struct {
	Tab domain.Tab
}

type SwitchToDeleteMsg struct {
	Target DeleteTarget
}

// OpenEditorMsg asks the app to edit a note in the external editor
type OpenEditorMsg struct {
	Note domain.Note
}
