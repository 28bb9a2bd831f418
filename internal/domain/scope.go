package domain

import "fmt"

// ScopeKind identifies which ordering a scope belongs to
type ScopeKind int

const (
	ScopeTabs  ScopeKind = iota // the global tab ordering
	ScopeNotes                  // notes sharing one tab and parent
)

func (k ScopeKind) String() string {
	switch k {
	case ScopeTabs:
		return "tabs"
	case ScopeNotes:
		return "notes"
	default:
		return "unknown"
	}
}

// Scope is the sibling set an order ID is relative to. IDs assigned by the
// backing store are positive, so zero stands for "none" in TabID/ParentID.
type Scope struct {
	Kind     ScopeKind
	TabID    int64
	ParentID int64
}

// TabScope returns the scope of the global tab ordering
func TabScope() Scope {
	return Scope{Kind: ScopeTabs}
}

// NoteScope returns the scope of notes in tabID under parentID (nil = top level)
func NoteScope(tabID int64, parentID *int64) Scope {
	return Scope{Kind: ScopeNotes, TabID: tabID, ParentID: valueOr(parentID, 0)}
}

// IsTopLevel reports whether a note scope holds a tab's top-level notes
func (s Scope) IsTopLevel() bool {
	return s.Kind == ScopeNotes && s.ParentID == 0
}

// IsChildren reports whether a note scope holds one parent's children
func (s Scope) IsChildren() bool {
	return s.Kind == ScopeNotes && s.ParentID != 0
}

// OrderBase is the order ID given to the first member of the scope.
// Tabs count from 0, notes from 1.
func (s Scope) OrderBase() int64 {
	if s.Kind == ScopeTabs {
		return 0
	}
	return 1
}

// Contains reports whether the note is a member of the scope
func (s Scope) Contains(n Note) bool {
	return s.Kind == ScopeNotes && n.Scope() == s
}

func (s Scope) String() string {
	switch {
	case s.Kind == ScopeTabs:
		return "tabs"
	case s.IsTopLevel():
		return fmt.Sprintf("tab:%d", s.TabID)
	default:
		return fmt.Sprintf("tab:%d/parent:%d", s.TabID, s.ParentID)
	}
}
