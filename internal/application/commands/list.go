package commands

import (
	"context"
	"fmt"

	"focusboard/internal/domain"
	"focusboard/internal/ports"
)

// TabTree is one tab with its ordered note forest
type TabTree struct {
	Tab    domain.Tab
	Forest []*domain.TreeNode
}

// ListTabsCommand lists all tabs in display order
type ListTabsCommand struct {
	backend ports.Backend
}

// NewListTabsCommand creates a new ListTabsCommand
func NewListTabsCommand(backend ports.Backend) *ListTabsCommand {
	return &ListTabsCommand{backend: backend}
}

// Execute runs the list tabs command
func (c *ListTabsCommand) Execute(ctx context.Context) ([]domain.Tab, error) {
	tabs, err := c.backend.ListTabs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load tabs: %w", err)
	}
	return domain.SortTabs(tabs), nil
}

// ListTreeCommand builds the note forest of one tab, or of every tab when
// TabID is 0
type ListTreeCommand struct {
	backend ports.Backend
	TabID   int64
}

// NewListTreeCommand creates a new ListTreeCommand
func NewListTreeCommand(backend ports.Backend, tabID int64) *ListTreeCommand {
	return &ListTreeCommand{backend: backend, TabID: tabID}
}

// Execute runs the list tree command. Every note is expanded.
func (c *ListTreeCommand) Execute(ctx context.Context) ([]TabTree, error) {
	tabs, err := NewListTabsCommand(c.backend).Execute(ctx)
	if err != nil {
		return nil, err
	}

	var out []TabTree
	for _, tab := range tabs {
		if c.TabID != 0 && tab.ID != c.TabID {
			continue
		}
		notes, err := c.backend.ListNotes(ctx, tab.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to load notes for tab %d: %w", tab.ID, err)
		}
		out = append(out, TabTree{
			Tab:    tab,
			Forest: domain.BuildForest(domain.Project(notes), tab.ID, nil),
		})
	}
	return out, nil
}

// BackupResult contains the result of a backup
type BackupResult struct {
	Path    string
	Message string
}

// BackupCommand snapshots the database
type BackupCommand struct {
	backend ports.Backend
}

// NewBackupCommand creates a new BackupCommand
func NewBackupCommand(backend ports.Backend) *BackupCommand {
	return &BackupCommand{backend: backend}
}

// Execute runs the backup command
func (c *BackupCommand) Execute(ctx context.Context) (*BackupResult, error) {
	path, err := c.backend.Backup(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to backup database: %w", err)
	}
	return &BackupResult{Path: path, Message: "Backup successful"}, nil
}
