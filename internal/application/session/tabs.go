package session

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"focusboard/internal/application"
	"focusboard/internal/domain"
	"focusboard/internal/ports"
)

// CurrentTabID returns the selected tab
func (s *Session) CurrentTabID() (int64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.currentTabID == nil {
		return 0, false
	}
	return *s.currentTabID, true
}

// CurrentTab returns the selected tab as currently stored
func (s *Session) CurrentTab() (domain.Tab, bool) {
	id, ok := s.CurrentTabID()
	if !ok {
		return domain.Tab{}, false
	}
	return s.store.Snapshot().Tab(id)
}

// UI returns the panel visibility
func (s *Session) UI() ports.UIVisibility {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ui
}

// SelectTab makes id the current tab, saves the selection and loads its notes
func (s *Session) SelectTab(ctx context.Context, id int64) error {
	tab, ok := s.store.Snapshot().Tab(id)
	if !ok {
		return fmt.Errorf("tab %d: %w", id, application.ErrNotFound)
	}

	s.setSelection(&tab.ID, tab.Name)
	return s.LoadNotes(ctx)
}

func (s *Session) setSelection(id *int64, name string) {
	s.selMu.Lock()
	s.mu.Lock()
	s.currentTabID = id
	s.currentTabName = name
	s.mu.Unlock()
	s.selMu.Unlock()

	if err := s.prefs.SaveSelection(id, name); err != nil {
		s.log.WithError(err).Warn("Failed to save selected tab")
	}
}

// LoadTabs re-fetches every tab
func (s *Session) LoadTabs(ctx context.Context) error {
	tabs, err := s.backend.ListTabs(ctx)
	if err != nil {
		s.report(fmt.Sprintf("Failed to load tabs: %v", err), err)
		return fmt.Errorf("failed to load tabs: %w", err)
	}
	s.store.ReplaceTabs(tabs)
	s.log.WithField("tabs", domain.TabIDs(s.store.Snapshot().Tabs)).Debug("Loaded tabs")
	return nil
}

// AddTab creates a "New Tab" and selects it
func (s *Session) AddTab(ctx context.Context) (*domain.Tab, error) {
	tab, err := s.backend.CreateTab(ctx, domain.NewTabName)
	if err != nil {
		s.report(fmt.Sprintf("Failed to create tab: %v", err), err)
		return nil, err
	}
	if err := s.LoadTabs(ctx); err != nil {
		s.store.AppendTab(*tab)
	}
	if err := s.SelectTab(ctx, tab.ID); err != nil {
		return tab, err
	}
	s.report(fmt.Sprintf("Added tab %s successfully", tab.Name), nil)
	return tab, nil
}

// RenameTab renames a tab. Renaming the selected tab updates the saved name.
func (s *Session) RenameTab(ctx context.Context, id int64, name string) error {
	name = strings.TrimSpace(name)
	if err := application.ValidateRequired("name", name); err != nil {
		return err
	}

	if err := s.backend.RenameTab(ctx, id, name); err != nil {
		s.report(fmt.Sprintf("Failed to update tab: %v", err), err)
		return err
	}
	s.store.PatchTab(id, domain.TabPatch{Name: &name})

	if cur, ok := s.CurrentTabID(); ok && cur == id {
		s.setSelection(domain.Ptr(id), name)
	}
	s.report(fmt.Sprintf("Updated tab name to %s successfully", name), nil)
	return nil
}

// DeleteTab deletes a tab and its notes. When the selected tab goes, the
// first remaining tab by order is selected, or the selection is cleared.
func (s *Session) DeleteTab(ctx context.Context, id int64) error {
	tab, ok := s.store.Snapshot().Tab(id)
	if !ok {
		return fmt.Errorf("tab %d: %w", id, application.ErrNotFound)
	}

	if err := s.backend.DeleteTab(ctx, id); err != nil {
		s.report(fmt.Sprintf("Failed to delete tab: %v", err), err)
		return err
	}

	if err := s.LoadTabs(ctx); err != nil {
		s.store.RemoveTab(id)
	}
	s.updateOpenStates(func(o domain.OpenStates) domain.OpenStates { return o.DropTab(id) })

	if cur, ok := s.CurrentTabID(); ok && cur == id {
		remaining := s.store.Snapshot().Tabs
		if len(remaining) > 0 {
			next := remaining[0]
			s.log.WithFields(logrus.Fields{"deleted": id, "selected": next.ID}).Info("Switched tab after deletion")
			if err := s.SelectTab(ctx, next.ID); err != nil {
				return err
			}
		} else {
			s.setSelection(nil, "")
			s.store.ReplaceNotes(0, nil)
		}
	}

	s.report(fmt.Sprintf("Deleted tab %s successfully", tab.Name), nil)
	return nil
}

// ToggleTabBar shows or hides the tab bar and saves the choice
func (s *Session) ToggleTabBar() bool {
	s.mu.Lock()
	s.ui.TabBar = !s.ui.TabBar
	ui := s.ui
	s.mu.Unlock()

	if err := s.prefs.SaveUI(ui); err != nil {
		s.log.WithError(err).Warn("Failed to save UI visibility")
	}
	return ui.TabBar
}
