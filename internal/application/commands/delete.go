package commands

import (
	"context"
	"fmt"

	"focusboard/internal/application"
	"focusboard/internal/ports"
)

// DeleteResult contains the result of a delete operation
type DeleteResult struct {
	DeletedID int64
	Message   string
}

// DeleteTabCommand deletes a tab and all of its notes
type DeleteTabCommand struct {
	backend ports.Backend
	TabID   int64
}

// NewDeleteTabCommand creates a new DeleteTabCommand
func NewDeleteTabCommand(backend ports.Backend, tabID int64) *DeleteTabCommand {
	return &DeleteTabCommand{backend: backend, TabID: tabID}
}

// Validate checks if the delete operation is valid
func (c *DeleteTabCommand) Validate() error {
	return application.ValidateID("tabID", c.TabID)
}

// Execute runs the delete tab command
func (c *DeleteTabCommand) Execute(ctx context.Context) (*DeleteResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	tab, err := findTab(ctx, c.backend, c.TabID)
	if err != nil {
		return nil, err
	}

	if err := c.backend.DeleteTab(ctx, c.TabID); err != nil {
		return nil, fmt.Errorf("failed to delete tab: %w", err)
	}

	return &DeleteResult{
		DeletedID: c.TabID,
		Message:   fmt.Sprintf("Deleted tab %s successfully", tab.Name),
	}, nil
}

// DeleteNoteCommand deletes a note and its children
type DeleteNoteCommand struct {
	backend ports.Backend
	NoteID  int64
}

// NewDeleteNoteCommand creates a new DeleteNoteCommand
func NewDeleteNoteCommand(backend ports.Backend, noteID int64) *DeleteNoteCommand {
	return &DeleteNoteCommand{backend: backend, NoteID: noteID}
}

// Validate checks if the delete operation is valid
func (c *DeleteNoteCommand) Validate() error {
	return application.ValidateID("noteID", c.NoteID)
}

// Execute runs the delete note command
func (c *DeleteNoteCommand) Execute(ctx context.Context) (*DeleteResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	if err := c.backend.DeleteNote(ctx, c.NoteID); err != nil {
		return nil, fmt.Errorf("failed to delete note %d: %w", c.NoteID, err)
	}

	return &DeleteResult{
		DeletedID: c.NoteID,
		Message:   fmt.Sprintf("Deleted note %d successfully", c.NoteID),
	}, nil
}
