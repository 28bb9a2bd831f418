package session

import (
	"context"
	"fmt"

	"focusboard/internal/application"
	"focusboard/internal/domain"
)

// LoadNotes re-fetches the notes of the selected tab. A result that arrives
// after the selection moved to another tab is dropped.
func (s *Session) LoadNotes(ctx context.Context) error {
	tabID, ok := s.CurrentTabID()
	if !ok {
		s.store.ReplaceNotes(0, nil)
		return nil
	}

	notes, err := s.backend.ListNotes(ctx, tabID)
	if err != nil {
		s.report(fmt.Sprintf("Failed to load notes: %v", err), err)
		return err
	}

	if !s.replaceNotesIfCurrent(tabID, notes) {
		return nil
	}

	s.mu.Lock()
	name := s.currentTabName
	s.mu.Unlock()
	s.report(fmt.Sprintf("Loaded notes for tab %s", name), nil)
	return nil
}

// replaceNotesIfCurrent commits notes only while tabID is still selected
func (s *Session) replaceNotesIfCurrent(tabID int64, notes []domain.Note) bool {
	s.selMu.Lock()
	defer s.selMu.Unlock()
	if cur, ok := s.CurrentTabID(); !ok || cur != tabID {
		s.log.WithField("tab", tabID).Debug("Dropping notes of a tab that is no longer selected")
		return false
	}
	s.store.ReplaceNotes(tabID, notes)
	return true
}

// AddNote creates an "Untitled" top-level note in the selected tab
func (s *Session) AddNote(ctx context.Context, typ domain.NoteType) (*domain.Note, error) {
	tabID, ok := s.CurrentTabID()
	if !ok {
		return nil, application.ErrNoTabSelected
	}
	if typ == "" {
		typ = domain.NoteTypeBasic
	}

	n, err := s.backend.CreateNote(ctx, domain.NewNote{
		Title: domain.DefaultNoteTitle,
		TabID: domain.Ptr(tabID),
		Type:  typ,
	})
	if err != nil {
		s.report(fmt.Sprintf("Failed to create note: %v", err), err)
		return nil, err
	}

	if err := s.LoadNotes(ctx); err != nil {
		s.store.AppendNote(*n)
	}
	s.report("Created note successfully", nil)
	return n, nil
}

// AddChild creates an "Untitled" basic note under a categorical parent and
// expands the parent
func (s *Session) AddChild(ctx context.Context, parentID int64) (*domain.Note, error) {
	parent, ok := s.store.Snapshot().Note(parentID)
	if !ok {
		return nil, fmt.Errorf("note %d: %w", parentID, application.ErrNotFound)
	}
	if err := application.ValidateChildParent(parent); err != nil {
		return nil, err
	}

	n, err := s.backend.CreateNote(ctx, domain.NewNote{
		Title:    domain.DefaultNoteTitle,
		TabID:    parent.TabID,
		ParentID: domain.Ptr(parent.ID),
		Type:     domain.NoteTypeBasic,
	})
	if err != nil {
		s.report(fmt.Sprintf("Failed to add sub-note: %v", err), err)
		return nil, err
	}

	s.store.AppendNote(*n)
	if parent.TabID != nil {
		s.SetOpen(*parent.TabID, parent.ID, true)
	}
	s.report("Added sub-note successfully", nil)
	return n, nil
}

// UpdateNote saves a note's title and content and expands it
func (s *Session) UpdateNote(ctx context.Context, id int64, title, content string) error {
	n, ok := s.store.Snapshot().Note(id)
	if !ok {
		return fmt.Errorf("note %d: %w", id, application.ErrNotFound)
	}

	if err := s.backend.UpdateNote(ctx, id, title, content); err != nil {
		s.report(fmt.Sprintf("Failed to update %s note: %v", n.Title, err), err)
		return err
	}

	now := s.now()
	s.store.PatchNote(id, domain.NotePatch{Title: &title, Content: &content, UpdatedAt: &now})
	if n.TabID != nil {
		s.SetOpen(*n.TabID, id, true)
	}
	s.report(fmt.Sprintf("Updated note %s successfully", title), nil)
	return nil
}

// DeleteNote deletes a note and its children
func (s *Session) DeleteNote(ctx context.Context, id int64) error {
	n, ok := s.store.Snapshot().Note(id)
	if !ok {
		return fmt.Errorf("note %d: %w", id, application.ErrNotFound)
	}

	if err := s.backend.DeleteNote(ctx, id); err != nil {
		s.report(fmt.Sprintf("Failed to delete %s: %v", n.Title, err), err)
		return err
	}

	if err := s.LoadNotes(ctx); err != nil {
		s.store.RemoveNote(id)
	}
	s.report(fmt.Sprintf("Deleted note %s successfully", n.Title), nil)
	return nil
}

// Backup asks the backend for a database backup
func (s *Session) Backup(ctx context.Context) (string, error) {
	path, err := s.backend.Backup(ctx)
	if err != nil {
		s.report(fmt.Sprintf("Failed to backup database: %v", err), err)
		return "", err
	}
	s.log.WithField("path", path).Info("Database backup completed")
	s.report("Backup successful", nil)
	return path, nil
}
