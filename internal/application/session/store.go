package session

import (
	"slices"
	"sync"
	"sync/atomic"

	"focusboard/internal/domain"
)

// Snapshot is one committed state of the board. Snapshots are never
// modified after they are published; every mutation builds a new one.
type Snapshot struct {
	Version uint64
	// Tabs are sorted by order ID
	Tabs []domain.Tab
	// Notes are the notes of NotesTab, in the order they were loaded
	Notes []domain.Note
	// NotesTab is the tab whose notes are loaded, 0 when none are
	NotesTab int64
	// NotesGen changes whenever Notes does. Snapshots committed by tab
	// mutations share Notes and NotesGen with their predecessor.
	NotesGen uint64

	noteIdx map[int64]int
}

// notesGen numbers note collections across every store
var notesGen atomic.Uint64

// Note looks up a loaded note by ID
func (s *Snapshot) Note(id int64) (domain.Note, bool) {
	i, ok := s.noteIdx[id]
	if !ok {
		return domain.Note{}, false
	}
	return s.Notes[i], true
}

// Tab looks up a tab by ID
func (s *Snapshot) Tab(id int64) (domain.Tab, bool) {
	i := domain.IndexOfTab(s.Tabs, id)
	if i < 0 {
		return domain.Tab{}, false
	}
	return s.Tabs[i], true
}

// LiveNoteIDs returns the set of loaded note IDs
func (s *Snapshot) LiveNoteIDs() map[int64]struct{} {
	live := make(map[int64]struct{}, len(s.Notes))
	for _, n := range s.Notes {
		live[n.ID] = struct{}{}
	}
	return live
}

func (s *Snapshot) reindex() {
	s.noteIdx = make(map[int64]int, len(s.Notes))
	for i, n := range s.Notes {
		s.noteIdx[n.ID] = i
	}
}

type subscriber struct {
	id int
	fn func(*Snapshot)
}

// Store holds the current Snapshot and notifies subscribers of each commit.
// Subscribers run on the committing goroutine, in commit order, and must not
// call Store mutators.
type Store struct {
	pubMu sync.Mutex // serializes commits and their notifications
	mu    sync.Mutex // guards snap and subs
	snap  *Snapshot
	subs  []subscriber
	next  int
}

// NewStore creates an empty store
func NewStore() *Store {
	s := &Store{snap: &Snapshot{NotesGen: notesGen.Add(1)}}
	s.snap.reindex()
	return s
}

// Snapshot returns the current snapshot
func (s *Store) Snapshot() *Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap
}

// Version returns the version of the current snapshot
func (s *Store) Version() uint64 {
	return s.Snapshot().Version
}

// Subscribe registers fn for every future commit and returns a func that
// removes it
func (s *Store) Subscribe(fn func(*Snapshot)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next++
	id := s.next
	s.subs = append(s.subs, subscriber{id: id, fn: fn})
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.subs = slices.DeleteFunc(s.subs, func(sub subscriber) bool { return sub.id == id })
	}
}

// commit applies mutate to a copy of the current snapshot and publishes it.
// Tabs are always copied; Notes are copied only when notes is true and are
// shared with the previous snapshot otherwise. Nothing is published when
// mutate returns false.
func (s *Store) commit(notes bool, mutate func(next *Snapshot) bool) bool {
	s.pubMu.Lock()
	defer s.pubMu.Unlock()

	s.mu.Lock()
	cur := s.snap
	next := &Snapshot{
		Version:  cur.Version + 1,
		Tabs:     domain.CloneTabs(cur.Tabs),
		Notes:    cur.Notes,
		NotesTab: cur.NotesTab,
		NotesGen: cur.NotesGen,
		noteIdx:  cur.noteIdx,
	}
	if notes {
		next.Notes = domain.CloneNotes(cur.Notes)
	}
	if !mutate(next) {
		s.mu.Unlock()
		return false
	}
	if notes {
		next.NotesGen = notesGen.Add(1)
		next.reindex()
	}
	s.snap = next
	subs := slices.Clone(s.subs)
	s.mu.Unlock()

	for _, sub := range subs {
		sub.fn(next)
	}
	return true
}

// commitTabs commits a mutation that leaves the notes untouched
func (s *Store) commitTabs(mutate func(next *Snapshot) bool) bool {
	return s.commit(false, mutate)
}

// commitNotes commits a mutation of the note collection
func (s *Store) commitNotes(mutate func(next *Snapshot) bool) bool {
	return s.commit(true, mutate)
}

// ReplaceTabs replaces the tab collection
func (s *Store) ReplaceTabs(tabs []domain.Tab) {
	s.commitTabs(func(next *Snapshot) bool {
		next.Tabs = domain.SortTabs(tabs)
		return true
	})
}

// AppendTab adds a tab
func (s *Store) AppendTab(t domain.Tab) {
	s.commitTabs(func(next *Snapshot) bool {
		next.Tabs = domain.SortTabs(append(next.Tabs, t))
		return true
	})
}

// PatchTab applies p to one tab. It reports false if the tab is unknown.
func (s *Store) PatchTab(id int64, p domain.TabPatch) bool {
	return s.commitTabs(func(next *Snapshot) bool {
		i := domain.IndexOfTab(next.Tabs, id)
		if i < 0 {
			return false
		}
		next.Tabs[i] = next.Tabs[i].Apply(p)
		next.Tabs = domain.SortTabs(next.Tabs)
		return true
	})
}

// RemoveTab drops one tab
func (s *Store) RemoveTab(id int64) bool {
	return s.commitTabs(func(next *Snapshot) bool {
		i := domain.IndexOfTab(next.Tabs, id)
		if i < 0 {
			return false
		}
		next.Tabs = slices.Delete(next.Tabs, i, i+1)
		return true
	})
}

// ApplyTabOrder gives each tab in ids the order ID base+index and re-sorts
func (s *Store) ApplyTabOrder(ids []int64, base int64) {
	order := domain.OrderMap(ids, base)
	s.commitTabs(func(next *Snapshot) bool {
		for i, t := range next.Tabs {
			if o, ok := order[t.ID]; ok {
				next.Tabs[i].OrderID = domain.Ptr(o)
			}
		}
		next.Tabs = domain.SortTabs(next.Tabs)
		return true
	})
}

// ReplaceNotes replaces the loaded notes with those of tabID. tabID 0 clears
// the collection.
func (s *Store) ReplaceNotes(tabID int64, notes []domain.Note) {
	s.commitNotes(func(next *Snapshot) bool {
		next.NotesTab = tabID
		next.Notes = domain.CloneNotes(notes)
		if tabID == 0 {
			next.Notes = nil
		}
		return true
	})
}

// AppendNote adds a note to the loaded collection
func (s *Store) AppendNote(n domain.Note) {
	s.commitNotes(func(next *Snapshot) bool {
		next.Notes = append(next.Notes, n.Clone())
		return true
	})
}

// PatchNote applies p to one note. It reports false if the note is unknown.
func (s *Store) PatchNote(id int64, p domain.NotePatch) bool {
	return s.commitNotes(func(next *Snapshot) bool {
		i := domain.IndexOfNote(next.Notes, id)
		if i < 0 {
			return false
		}
		next.Notes[i] = next.Notes[i].Apply(p)
		return true
	})
}

// RemoveNote drops a note and its children
func (s *Store) RemoveNote(id int64) bool {
	return s.commitNotes(func(next *Snapshot) bool {
		before := len(next.Notes)
		next.Notes = slices.DeleteFunc(next.Notes, func(n domain.Note) bool {
			return n.ID == id || (n.ParentID != nil && *n.ParentID == id)
		})
		return len(next.Notes) != before
	})
}

// ApplyNoteOrder gives each member of scope listed in ids the order ID
// base+index. Notes outside the scope are left alone. Nothing is committed
// when the scope's tab is not the loaded one.
func (s *Store) ApplyNoteOrder(scope domain.Scope, ids []int64, base int64) bool {
	order := domain.OrderMap(ids, base)
	return s.commitNotes(func(next *Snapshot) bool {
		if next.NotesTab != scope.TabID {
			return false
		}
		for i, n := range next.Notes {
			if !scope.Contains(n) {
				continue
			}
			if o, ok := order[n.ID]; ok {
				next.Notes[i].OrderID = domain.Ptr(o)
			}
		}
		return true
	})
}
