package domain

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"time"
)

// NoteType tells whether a note holds text or groups child notes
type NoteType string

const (
	NoteTypeBasic       NoteType = "basic"
	NoteTypeCategorical NoteType = "categorical"
)

// DefaultNoteTitle is the title given to freshly created notes
const DefaultNoteTitle = "Untitled"

// AllNoteTypes returns the supported note types
func AllNoteTypes() []NoteType {
	return []NoteType{NoteTypeBasic, NoteTypeCategorical}
}

// ParseNoteType converts a string to a NoteType. Empty input is basic.
func ParseNoteType(raw string) (NoteType, error) {
	t := NoteType(strings.ToLower(strings.TrimSpace(raw)))
	if t == "" {
		return NoteTypeBasic, nil
	}
	if slices.Contains(AllNoteTypes(), t) {
		return t, nil
	}
	return NoteTypeBasic, fmt.Errorf("unknown note type %q", raw)
}

// NoteTypeOf reads a stored note type, treating anything unknown as basic
func NoteTypeOf(raw string) NoteType {
	t, _ := ParseNoteType(raw)
	return t
}

// Note is a single note. Top-level notes have no parent; child notes hang
// off a categorical note in the same tab.
type Note struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	TabID     *int64    `json:"tab_id"`
	ParentID  *int64    `json:"parent_id"`
	OrderID   *int64    `json:"order_id"`
	Type      NoteType  `json:"note_type"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NotePatch holds the fields to overwrite on a note. Nil fields are left alone.
type NotePatch struct {
	Title     *string
	Content   *string
	OrderID   *int64
	UpdatedAt *time.Time
}

// NewNote describes a note to be created by the backing store
type NewNote struct {
	Title    string
	Content  string
	TabID    *int64
	ParentID *int64
	Type     NoteType
}

// IsTopLevel reports whether the note sits directly under its tab
func (n Note) IsTopLevel() bool {
	return n.ParentID == nil
}

// IsCategorical reports whether the note is a container note
func (n Note) IsCategorical() bool {
	return n.Type == NoteTypeCategorical
}

// CanOwnChildren reports whether children may be added under the note.
// Only top-level categorical notes qualify; nesting is one level deep.
func (n Note) CanOwnChildren() bool {
	return n.IsCategorical() && n.IsTopLevel()
}

// Scope returns the sibling set the note's order ID is relative to
func (n Note) Scope() Scope {
	return NoteScope(valueOr(n.TabID, 0), n.ParentID)
}

// DisplayTitle returns the title, or "Untitled" when it is blank
func (n Note) DisplayTitle() string {
	if n.Title == "" {
		return DefaultNoteTitle
	}
	return n.Title
}

// Clone returns a copy of the note that shares no memory with the original
func (n Note) Clone() Note {
	n.TabID = clonePtr(n.TabID)
	n.ParentID = clonePtr(n.ParentID)
	n.OrderID = clonePtr(n.OrderID)
	return n
}

// Apply returns the note with the patch applied
func (n Note) Apply(p NotePatch) Note {
	n = n.Clone()
	if p.Title != nil {
		n.Title = *p.Title
	}
	if p.Content != nil {
		n.Content = *p.Content
	}
	if p.OrderID != nil {
		n.OrderID = Ptr(*p.OrderID)
	}
	if p.UpdatedAt != nil {
		n.UpdatedAt = *p.UpdatedAt
	}
	return n
}

// CompareNotes orders siblings by order ID; a missing order ID counts as 0
func CompareNotes(a, b Note) int {
	return cmp.Compare(valueOr(a.OrderID, 0), valueOr(b.OrderID, 0))
}

// SortNotes returns a stably sorted copy of notes
func SortNotes(notes []Note) []Note {
	out := CloneNotes(notes)
	slices.SortStableFunc(out, CompareNotes)
	return out
}

// CloneNotes deep-copies a note slice
func CloneNotes(notes []Note) []Note {
	if notes == nil {
		return nil
	}
	out := make([]Note, len(notes))
	for i, n := range notes {
		out[i] = n.Clone()
	}
	return out
}

// NoteIDs returns the IDs of notes in slice order
func NoteIDs(notes []Note) []int64 {
	ids := make([]int64, len(notes))
	for i, n := range notes {
		ids[i] = n.ID
	}
	return ids
}

// IndexOfNote returns the position of the note with the given ID, or -1
func IndexOfNote(notes []Note, id int64) int {
	return slices.IndexFunc(notes, func(n Note) bool { return n.ID == id })
}
