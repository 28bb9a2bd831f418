package commands

import (
	"context"
	"fmt"
	"strings"

	"focusboard/internal/application"
	"focusboard/internal/domain"
	"focusboard/internal/ports"
)

// CreateTabResult contains the result of creating a tab
type CreateTabResult struct {
	Tab     *domain.Tab
	Message string
}

// CreateTabCommand creates a tab
type CreateTabCommand struct {
	backend ports.Backend
	Name    string
}

// NewCreateTabCommand creates a new CreateTabCommand
func NewCreateTabCommand(backend ports.Backend, name string) *CreateTabCommand {
	return &CreateTabCommand{backend: backend, Name: name}
}

// Validate checks if the create operation is valid
func (c *CreateTabCommand) Validate() error {
	return application.ValidateRequired("name", c.Name)
}

// Execute runs the create tab command
func (c *CreateTabCommand) Execute(ctx context.Context) (*CreateTabResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	tab, err := c.backend.CreateTab(ctx, strings.TrimSpace(c.Name))
	if err != nil {
		return nil, fmt.Errorf("failed to create tab: %w", err)
	}

	return &CreateTabResult{
		Tab:     tab,
		Message: fmt.Sprintf("Added tab %s successfully", tab.Name),
	}, nil
}

// CreateNoteResult contains the result of creating a note
type CreateNoteResult struct {
	Note    *domain.Note
	Message string
}

// CreateNoteCommand creates a note at the end of its sibling list. With a
// ParentID the note becomes a child of that categorical note.
type CreateNoteCommand struct {
	backend  ports.Backend
	TabID    int64
	ParentID int64
	Title    string
	Content  string
	Type     domain.NoteType
}

// NewCreateNoteCommand creates a new CreateNoteCommand
func NewCreateNoteCommand(backend ports.Backend, tabID, parentID int64, title, content string, typ domain.NoteType) *CreateNoteCommand {
	return &CreateNoteCommand{
		backend:  backend,
		TabID:    tabID,
		ParentID: parentID,
		Title:    title,
		Content:  content,
		Type:     typ,
	}
}

// Validate checks if the create operation is valid
func (c *CreateNoteCommand) Validate() error {
	if err := application.ValidateID("tabID", c.TabID); err != nil {
		return err
	}
	if c.ParentID < 0 {
		return application.ValidateID("parentID", c.ParentID)
	}
	if c.ParentID != 0 && c.Type == domain.NoteTypeCategorical {
		return &application.ValidationError{
			Field:   "type",
			Message: "child notes cannot be categorical",
		}
	}
	return nil
}

// Execute runs the create note command
func (c *CreateNoteCommand) Execute(ctx context.Context) (*CreateNoteResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	nn := domain.NewNote{
		Title:   c.Title,
		Content: c.Content,
		TabID:   domain.Ptr(c.TabID),
		Type:    c.Type,
	}
	if nn.Title == "" {
		nn.Title = domain.DefaultNoteTitle
	}
	if nn.Type == "" {
		nn.Type = domain.NoteTypeBasic
	}

	if c.ParentID != 0 {
		parent, err := findNote(ctx, c.backend, c.TabID, c.ParentID)
		if err != nil {
			return nil, err
		}
		if err := application.ValidateChildParent(parent); err != nil {
			return nil, err
		}
		nn.ParentID = domain.Ptr(c.ParentID)
	}

	note, err := c.backend.CreateNote(ctx, nn)
	if err != nil {
		return nil, fmt.Errorf("failed to create note: %w", err)
	}

	msg := "Created note successfully"
	if nn.ParentID != nil {
		msg = "Added sub-note successfully"
	}
	return &CreateNoteResult{Note: note, Message: msg}, nil
}

// findNote loads one note of a tab
func findNote(ctx context.Context, backend ports.Backend, tabID, id int64) (domain.Note, error) {
	notes, err := backend.ListNotes(ctx, tabID)
	if err != nil {
		return domain.Note{}, fmt.Errorf("failed to load notes: %w", err)
	}
	i := domain.IndexOfNote(notes, id)
	if i < 0 {
		return domain.Note{}, fmt.Errorf("note %d in tab %d: %w", id, tabID, application.ErrNotFound)
	}
	return notes[i], nil
}

// findTab loads one tab
func findTab(ctx context.Context, backend ports.Backend, id int64) (domain.Tab, error) {
	tabs, err := backend.ListTabs(ctx)
	if err != nil {
		return domain.Tab{}, fmt.Errorf("failed to load tabs: %w", err)
	}
	i := domain.IndexOfTab(tabs, id)
	if i < 0 {
		return domain.Tab{}, fmt.Errorf("tab %d: %w", id, application.ErrNotFound)
	}
	return tabs[i], nil
}
