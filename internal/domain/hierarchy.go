package domain

import "slices"

// Hierarchy is the parent/child view derived from a flat note list.
// It is immutable once built; callers must not modify returned slices.
type Hierarchy struct {
	topLevel map[int64][]Note
	children map[int64][]Note
}

// Project derives the hierarchy from notes. Siblings are ordered by order ID
// (missing counts as 0); equal order IDs keep their position in notes.
func Project(notes []Note) *Hierarchy {
	h := &Hierarchy{
		topLevel: make(map[int64][]Note),
		children: make(map[int64][]Note),
	}

	for _, n := range notes {
		n = n.Clone()
		if n.ParentID == nil {
			tabID := valueOr(n.TabID, 0)
			h.topLevel[tabID] = append(h.topLevel[tabID], n)
			continue
		}
		h.children[*n.ParentID] = append(h.children[*n.ParentID], n)
	}

	for _, list := range h.topLevel {
		slices.SortStableFunc(list, CompareNotes)
	}
	for _, list := range h.children {
		slices.SortStableFunc(list, CompareNotes)
	}

	return h
}

// TopLevel returns the ordered top-level notes of a tab
func (h *Hierarchy) TopLevel(tabID int64) []Note {
	return h.topLevel[tabID]
}

// Children returns the ordered children of a parent note
func (h *Hierarchy) Children(parentID int64) []Note {
	return h.children[parentID]
}

// HasChildren reports whether the parent has at least one child
func (h *Hierarchy) HasChildren(parentID int64) bool {
	return len(h.children[parentID]) > 0
}

// Siblings returns the ordered members of a note scope. Children are
// filtered by tab so a scope never mixes tabs.
func (h *Hierarchy) Siblings(s Scope) []Note {
	if s.Kind != ScopeNotes {
		return nil
	}
	if s.IsTopLevel() {
		return h.TopLevel(s.TabID)
	}
	children := h.Children(s.ParentID)
	for _, c := range children {
		if valueOr(c.TabID, 0) != s.TabID {
			return filterScope(children, s)
		}
	}
	return children
}

func filterScope(notes []Note, s Scope) []Note {
	var out []Note
	for _, n := range notes {
		if s.Contains(n) {
			out = append(out, n)
		}
	}
	return out
}
