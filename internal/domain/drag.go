package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// ParticipantKind is the entity type behind a drag participant
type ParticipantKind string

const (
	ParticipantTab  ParticipantKind = "tab"
	ParticipantNote ParticipantKind = "note"
)

// Participant is a parsed drag participant identifier such as "tab-3"
type Participant struct {
	Kind ParticipantKind
	ID   int64
}

// TabParticipant returns the participant identifier of a tab
func TabParticipant(id int64) string {
	return fmt.Sprintf("%s-%d", ParticipantTab, id)
}

// NoteParticipant returns the participant identifier of a note
func NoteParticipant(id int64) string {
	return fmt.Sprintf("%s-%d", ParticipantNote, id)
}

// ParseParticipant parses "tab-<id>" or "note-<id>"
func ParseParticipant(raw string) (Participant, bool) {
	kind, id, ok := strings.Cut(raw, "-")
	if !ok {
		return Participant{}, false
	}
	k := ParticipantKind(kind)
	if k != ParticipantTab && k != ParticipantNote {
		return Participant{}, false
	}
	n, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return Participant{}, false
	}
	return Participant{Kind: k, ID: n}, true
}

func (p Participant) String() string {
	return fmt.Sprintf("%s-%d", p.Kind, p.ID)
}

// GestureKind is the outcome of classifying a drag
type GestureKind int

const (
	GestureNone GestureKind = iota
	GestureTabReorder
	GestureNoteReorder
)

func (k GestureKind) String() string {
	switch k {
	case GestureTabReorder:
		return "tab-reorder"
	case GestureNoteReorder:
		return "note-reorder"
	default:
		return "none"
	}
}

// Gesture is a classified drag: move MovedID from OldIndex to NewIndex
// within Scope
type Gesture struct {
	Kind     GestureKind
	Scope    Scope
	MovedID  int64
	TargetID int64
	OldIndex int
	NewIndex int
	// Reason explains a GestureNone outcome, for debug logging
	Reason string
}

// IsNoop reports whether the gesture changes nothing
func (g Gesture) IsNoop() bool {
	return g.Kind == GestureNone
}

// DragEvent is the end of a drag. LastOver is the last target seen while
// dragging and stands in when Over is empty.
type DragEvent struct {
	Active   string
	Over     string
	LastOver string
}

// ScopeResolver answers scope questions about the current board
type ScopeResolver interface {
	// NoteScope returns the sibling scope of a note, false if unknown
	NoteScope(id int64) (Scope, bool)
	// Sequence returns the ordered member IDs of a scope
	Sequence(s Scope) []int64
}

// ClassifyDrag turns a drag end into a reorder gesture. Anything that is
// not a same-kind, same-scope move yields GestureNone.
func ClassifyDrag(ev DragEvent, r ScopeResolver) Gesture {
	over := ev.Over
	if over == "" {
		over = ev.LastOver
	}
	if ev.Active == "" || over == "" {
		return noop("no drop target")
	}
	if ev.Active == over {
		return noop("dropped on itself")
	}

	active, ok := ParseParticipant(ev.Active)
	if !ok {
		return noop("unparsable active " + ev.Active)
	}
	target, ok := ParseParticipant(over)
	if !ok {
		return noop("unparsable target " + over)
	}
	if active.Kind != target.Kind {
		return noop("kind mismatch")
	}

	var (
		scope Scope
		kind  GestureKind
	)
	switch active.Kind {
	case ParticipantTab:
		scope, kind = TabScope(), GestureTabReorder
	case ParticipantNote:
		as, ok := r.NoteScope(active.ID)
		if !ok {
			return noop("unknown note")
		}
		ts, ok := r.NoteScope(target.ID)
		if !ok {
			return noop("unknown note")
		}
		if as != ts {
			return noop("scope mismatch")
		}
		scope, kind = as, GestureNoteReorder
	}

	seq := r.Sequence(scope)
	oldIndex := indexOf(seq, active.ID)
	newIndex := indexOf(seq, target.ID)
	if oldIndex < 0 || newIndex < 0 {
		return noop("not in sequence")
	}

	return Gesture{
		Kind:     kind,
		Scope:    scope,
		MovedID:  active.ID,
		TargetID: target.ID,
		OldIndex: oldIndex,
		NewIndex: newIndex,
	}
}

func noop(reason string) Gesture {
	return Gesture{Kind: GestureNone, Reason: reason}
}

func indexOf(ids []int64, id int64) int {
	for i, v := range ids {
		if v == id {
			return i
		}
	}
	return -1
}
