package session

import (
	"focusboard/internal/domain"
)

// OpenStates returns the current open-state value
func (s *Session) OpenStates() domain.OpenStates {
	s.openMu.Lock()
	defer s.openMu.Unlock()
	return s.open
}

// IsOpen reports whether a note of the selected tab is expanded
func (s *Session) IsOpen(noteID int64) bool {
	tabID, _ := s.CurrentTabID()
	return s.OpenStates().Get(tabID, noteID)
}

// ToggleOpen flips a note of the selected tab between expanded and collapsed
func (s *Session) ToggleOpen(noteID int64) bool {
	tabID, ok := s.CurrentTabID()
	if !ok {
		return false
	}
	var open bool
	s.updateOpenStates(func(o domain.OpenStates) domain.OpenStates {
		next := o.Toggle(tabID, noteID)
		open = next.Get(tabID, noteID)
		return next
	})
	return open
}

// SetOpen expands or collapses a note
func (s *Session) SetOpen(tabID, noteID int64, open bool) {
	s.updateOpenStates(func(o domain.OpenStates) domain.OpenStates {
		return o.Set(tabID, noteID, open)
	})
}

// updateOpenStates swaps in fn's result and schedules a save when it changed
func (s *Session) updateOpenStates(fn func(domain.OpenStates) domain.OpenStates) {
	s.openMu.Lock()
	prev := s.open
	next := fn(prev)
	s.open = next
	s.openMu.Unlock()

	if !sameOpenStates(prev, next) {
		s.saver.Trigger()
	}
}

// pruneOpenStates drops entries for notes that no longer exist in the loaded
// tab. It runs on every store commit.
func (s *Session) pruneOpenStates(snap *Snapshot) {
	if snap.NotesTab == 0 {
		return
	}
	live := snap.LiveNoteIDs()
	s.updateOpenStates(func(o domain.OpenStates) domain.OpenStates {
		return o.PruneTab(snap.NotesTab, live)
	})
}

func (s *Session) saveOpenStates() error {
	if err := s.prefs.SaveOpenStates(s.OpenStates()); err != nil {
		s.log.WithError(err).Warn("Failed to save note open states")
		return err
	}
	s.log.Debug("Saved note open states")
	return nil
}

// sameOpenStates reports whether a and b hold the same entries
func sameOpenStates(a, b domain.OpenStates) bool {
	if len(a) != len(b) {
		return false
	}
	for tab, inner := range a {
		other, ok := b[tab]
		if !ok || len(other) != len(inner) {
			return false
		}
		for id, v := range inner {
			if ov, ok := other[id]; !ok || ov != v {
				return false
			}
		}
	}
	return true
}
