package commands

import (
	"context"
	"fmt"

	"focusboard/internal/application"
	"focusboard/internal/domain"
	"focusboard/internal/ports"
)

// MoveResult contains the result of a reorder
type MoveResult struct {
	Scope   domain.Scope
	IDs     []int64
	Message string
}

// MoveTabCommand moves a tab to a position in the tab order
type MoveTabCommand struct {
	backend ports.Backend
	TabID   int64
	Index   int
}

// NewMoveTabCommand creates a new MoveTabCommand
func NewMoveTabCommand(backend ports.Backend, tabID int64, index int) *MoveTabCommand {
	return &MoveTabCommand{backend: backend, TabID: tabID, Index: index}
}

// Validate checks if the move operation is valid
func (c *MoveTabCommand) Validate() error {
	if err := application.ValidateID("tabID", c.TabID); err != nil {
		return err
	}
	if c.Index < 0 {
		return &application.ValidationError{Field: "index", Message: "index must not be negative"}
	}
	return nil
}

// Execute runs the move tab command
func (c *MoveTabCommand) Execute(ctx context.Context) (*MoveResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	tabs, err := c.backend.ListTabs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load tabs: %w", err)
	}
	seq := domain.TabIDs(domain.SortTabs(tabs))

	ids, err := moveInSequence(seq, c.TabID, c.Index)
	if err != nil {
		return nil, err
	}

	if err := c.backend.ReorderTabs(ctx, ids); err != nil {
		return nil, fmt.Errorf("failed to reorder tabs: %w", err)
	}

	return &MoveResult{
		Scope:   domain.TabScope(),
		IDs:     ids,
		Message: "Tabs reordered successfully",
	}, nil
}

// MoveNoteCommand moves a note to a position among its siblings
type MoveNoteCommand struct {
	backend ports.Backend
	TabID   int64
	NoteID  int64
	Index   int
}

// NewMoveNoteCommand creates a new MoveNoteCommand
func NewMoveNoteCommand(backend ports.Backend, tabID, noteID int64, index int) *MoveNoteCommand {
	return &MoveNoteCommand{backend: backend, TabID: tabID, NoteID: noteID, Index: index}
}

// Validate checks if the move operation is valid
func (c *MoveNoteCommand) Validate() error {
	if err := application.ValidateID("tabID", c.TabID); err != nil {
		return err
	}
	if err := application.ValidateID("noteID", c.NoteID); err != nil {
		return err
	}
	if c.Index < 0 {
		return &application.ValidationError{Field: "index", Message: "index must not be negative"}
	}
	return nil
}

// Execute runs the move note command
func (c *MoveNoteCommand) Execute(ctx context.Context) (*MoveResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	notes, err := c.backend.ListNotes(ctx, c.TabID)
	if err != nil {
		return nil, fmt.Errorf("failed to load notes: %w", err)
	}
	i := domain.IndexOfNote(notes, c.NoteID)
	if i < 0 {
		return nil, fmt.Errorf("note %d in tab %d: %w", c.NoteID, c.TabID, application.ErrNotFound)
	}

	scope := notes[i].Scope()
	seq := domain.NoteIDs(domain.Project(notes).Siblings(scope))

	ids, err := moveInSequence(seq, c.NoteID, c.Index)
	if err != nil {
		return nil, err
	}

	if err := c.backend.ReorderNotes(ctx, c.TabID, ids); err != nil {
		return nil, &application.ReorderError{Scope: scope, Err: err}
	}

	msg := "Notes reordered successfully"
	if scope.IsChildren() {
		msg = "Sub-notes reordered successfully"
	}
	return &MoveResult{Scope: scope, IDs: ids, Message: msg}, nil
}

// moveInSequence relocates id to index within seq
func moveInSequence(seq []int64, id int64, index int) ([]int64, error) {
	from := -1
	for i, v := range seq {
		if v == id {
			from = i
			break
		}
	}
	if from < 0 {
		return nil, fmt.Errorf("%d: %w", id, application.ErrNotFound)
	}
	if index >= len(seq) {
		return nil, &application.ValidationError{
			Field:   "index",
			Message: fmt.Sprintf("index %d out of range for %d items", index, len(seq)),
		}
	}
	return domain.Move(seq, from, index), nil
}
