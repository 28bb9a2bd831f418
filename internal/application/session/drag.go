package session

import (
	"context"

	"github.com/sirupsen/logrus"

	"focusboard/internal/domain"
)

type dragState struct {
	active   string
	lastOver string
}

// DragStart begins tracking a drag of the participant active
func (s *Session) DragStart(active string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drag = dragState{active: active}
}

// DragOver records the participant currently under the pointer
func (s *Session) DragOver(over string) {
	if over == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drag.lastOver = over
}

// DragCancel forgets the current drag
func (s *Session) DragCancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drag = dragState{}
}

// DragEnd classifies the finished drag and starts the reorder it implies.
// Drops that do not form a same-scope reorder return a nil op and no error.
func (s *Session) DragEnd(ctx context.Context, active, over string) (*ReorderOp, error) {
	s.mu.Lock()
	var lastOver string
	if s.drag.active == active {
		lastOver = s.drag.lastOver
	}
	s.drag = dragState{}
	s.mu.Unlock()

	snap := s.store.Snapshot()
	resolver := boardResolver{snap: snap, h: s.proj.Project(snap)}
	g := domain.ClassifyDrag(domain.DragEvent{Active: active, Over: over, LastOver: lastOver}, resolver)

	log := s.log.WithFields(logrus.Fields{"active": active, "over": over, "last_over": lastOver})
	if g.IsNoop() {
		log.WithField("reason", g.Reason).Debug("Ignoring drag")
		return nil, nil
	}
	log.WithField("gesture", g.Kind.String()).Debug("Classified drag")

	return s.reorder(ctx, g.Scope, resolver.Sequence(g.Scope), g.OldIndex, g.NewIndex)
}

// boardResolver answers scope questions against one snapshot
type boardResolver struct {
	snap *Snapshot
	h    *domain.Hierarchy
}

func (r boardResolver) NoteScope(id int64) (domain.Scope, bool) {
	n, ok := r.snap.Note(id)
	if !ok {
		return domain.Scope{}, false
	}
	return n.Scope(), true
}

func (r boardResolver) Sequence(scope domain.Scope) []int64 {
	if scope.Kind == domain.ScopeTabs {
		return domain.TabIDs(r.snap.Tabs)
	}
	return domain.NoteIDs(r.h.Siblings(scope))
}
