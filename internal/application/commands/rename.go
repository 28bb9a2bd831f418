package commands

import (
	"context"
	"fmt"
	"strings"

	"focusboard/internal/application"
	"focusboard/internal/ports"
)

// RenameTabResult contains the result of renaming a tab
type RenameTabResult struct {
	TabID   int64
	OldName string
	NewName string
	Message string
}

// RenameTabCommand renames a tab
type RenameTabCommand struct {
	backend ports.Backend
	TabID   int64
	NewName string
}

// NewRenameTabCommand creates a new RenameTabCommand
func NewRenameTabCommand(backend ports.Backend, tabID int64, newName string) *RenameTabCommand {
	return &RenameTabCommand{backend: backend, TabID: tabID, NewName: newName}
}

// Validate checks if the rename operation is valid
func (c *RenameTabCommand) Validate() error {
	if err := application.ValidateID("tabID", c.TabID); err != nil {
		return err
	}
	return application.ValidateRequired("name", c.NewName)
}

// Execute runs the rename tab command
func (c *RenameTabCommand) Execute(ctx context.Context) (*RenameTabResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	tab, err := findTab(ctx, c.backend, c.TabID)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(c.NewName)
	if tab.Name == name {
		return &RenameTabResult{
			TabID:   c.TabID,
			OldName: tab.Name,
			NewName: name,
			Message: "No changes made (name unchanged)",
		}, nil
	}

	if err := c.backend.RenameTab(ctx, c.TabID, name); err != nil {
		return nil, fmt.Errorf("failed to update tab: %w", err)
	}

	return &RenameTabResult{
		TabID:   c.TabID,
		OldName: tab.Name,
		NewName: name,
		Message: fmt.Sprintf("Updated tab name to %s successfully", name),
	}, nil
}

// UpdateNoteResult contains the result of updating a note
type UpdateNoteResult struct {
	NoteID  int64
	Message string
}

// UpdateNoteCommand replaces a note's title and content. A nil field keeps
// the stored value.
type UpdateNoteCommand struct {
	backend ports.Backend
	TabID   int64
	NoteID  int64
	Title   *string
	Content *string
}

// NewUpdateNoteCommand creates a new UpdateNoteCommand
func NewUpdateNoteCommand(backend ports.Backend, tabID, noteID int64, title, content *string) *UpdateNoteCommand {
	return &UpdateNoteCommand{
		backend: backend,
		TabID:   tabID,
		NoteID:  noteID,
		Title:   title,
		Content: content,
	}
}

// Validate checks if the update operation is valid
func (c *UpdateNoteCommand) Validate() error {
	if err := application.ValidateID("tabID", c.TabID); err != nil {
		return err
	}
	if err := application.ValidateID("noteID", c.NoteID); err != nil {
		return err
	}
	if c.Title == nil && c.Content == nil {
		return &application.ValidationError{
			Field:   "title",
			Message: "nothing to update",
		}
	}
	return nil
}

// Execute runs the update note command
func (c *UpdateNoteCommand) Execute(ctx context.Context) (*UpdateNoteResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	note, err := findNote(ctx, c.backend, c.TabID, c.NoteID)
	if err != nil {
		return nil, err
	}

	title, content := note.Title, note.Content
	if c.Title != nil {
		title = *c.Title
	}
	if c.Content != nil {
		content = *c.Content
	}

	if err := c.backend.UpdateNote(ctx, c.NoteID, title, content); err != nil {
		return nil, fmt.Errorf("failed to update note: %w", err)
	}

	return &UpdateNoteResult{
		NoteID:  c.NoteID,
		Message: fmt.Sprintf("Updated note %s successfully", title),
	}, nil
}
