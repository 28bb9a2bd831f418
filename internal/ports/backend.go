package ports

import (
	"context"
	"errors"

	"focusboard/internal/domain"
)

// ErrNotFound is returned by a Backend when the addressed entity does not exist
var ErrNotFound = errors.New("not found")

// Backend is the persistence collaborator behind the board. Every call may
// fail; callers treat failures as recoverable.
type Backend interface {
	// Tabs
	ListTabs(ctx context.Context) ([]domain.Tab, error)
	CreateTab(ctx context.Context, name string) (*domain.Tab, error)
	RenameTab(ctx context.Context, id int64, name string) error
	DeleteTab(ctx context.Context, id int64) error
	// ReorderTabs stores each tab's index in ids as its order ID
	ReorderTabs(ctx context.Context, ids []int64) error

	// Notes
	ListNotes(ctx context.Context, tabID int64) ([]domain.Note, error)
	CreateNote(ctx context.Context, n domain.NewNote) (*domain.Note, error)
	UpdateNote(ctx context.Context, id int64, title, content string) error
	DeleteNote(ctx context.Context, id int64) error
	// ReorderNotes stores index+1 as each note's order ID. tabID 0 leaves
	// the update unscoped.
	ReorderNotes(ctx context.Context, tabID int64, ids []int64) error

	// Maintenance
	Backup(ctx context.Context) (string, error)
	Optimize(ctx context.Context) error
}
