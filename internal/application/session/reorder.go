package session

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"focusboard/internal/application"
	"focusboard/internal/domain"
)

// ReorderState is the per-scope reorder lifecycle
type ReorderState int

const (
	ReorderIdle ReorderState = iota
	ReorderComputing
	ReorderOptimisticallyApplied
	ReorderConfirmed
	ReorderReconciling
)

func (s ReorderState) String() string {
	switch s {
	case ReorderIdle:
		return "idle"
	case ReorderComputing:
		return "computing"
	case ReorderOptimisticallyApplied:
		return "optimistically-applied"
	case ReorderConfirmed:
		return "confirmed"
	case ReorderReconciling:
		return "reconciling"
	default:
		return "unknown"
	}
}

// ReorderOp tracks one reorder whose persistence runs in the background
type ReorderOp struct {
	ID    uuid.UUID
	Scope domain.Scope
	ids   []int64
	done  chan struct{}
	err   error
}

// IDs returns the scope's member IDs in their new order
func (o *ReorderOp) IDs() []int64 {
	return o.ids
}

// Done is closed once persistence and any reconciliation have finished
func (o *ReorderOp) Done() <-chan struct{} {
	return o.done
}

// Err returns the persistence failure. Only valid after Done is closed.
func (o *ReorderOp) Err() error {
	return o.err
}

// Wait blocks until the operation finishes or ctx ends
func (o *ReorderOp) Wait(ctx context.Context) error {
	select {
	case <-o.done:
		return o.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// ReorderState returns the current state of a scope
func (s *Session) ReorderState(scope domain.Scope) ReorderState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reorders[scope]
}

// ReorderTabs moves the tab at from to position to. The new order is in the
// store when this returns; persistence completes on the returned op. A move
// onto itself returns a nil op.
func (s *Session) ReorderTabs(ctx context.Context, from, to int) (*ReorderOp, error) {
	seq := domain.TabIDs(s.store.Snapshot().Tabs)
	return s.reorder(ctx, domain.TabScope(), seq, from, to)
}

// ReorderNotes moves the note at from to position to among the members of
// scope, which must belong to the loaded tab
func (s *Session) ReorderNotes(ctx context.Context, scope domain.Scope, from, to int) (*ReorderOp, error) {
	if scope.Kind != domain.ScopeNotes {
		return nil, fmt.Errorf("%w: %s is not a note scope", application.ErrInvalidOperation, scope)
	}
	snap := s.store.Snapshot()
	if scope.TabID != snap.NotesTab {
		return nil, fmt.Errorf("%w: tab %d is not loaded", application.ErrInvalidOperation, scope.TabID)
	}
	seq := domain.NoteIDs(s.proj.Project(snap).Siblings(scope))
	return s.reorder(ctx, scope, seq, from, to)
}

func (s *Session) reorder(ctx context.Context, scope domain.Scope, seq []int64, from, to int) (*ReorderOp, error) {
	if !domain.ValidMove(len(seq), from, to) {
		return nil, &application.ValidationError{
			Field:   "index",
			Message: fmt.Sprintf("move %d to %d out of range for %d items", from, to, len(seq)),
		}
	}
	if from == to {
		return nil, nil
	}

	op := &ReorderOp{ID: uuid.New(), Scope: scope, done: make(chan struct{})}
	log := s.log.WithFields(logrus.Fields{
		"op":    op.ID.String(),
		"scope": scope.String(),
		"from":  from,
		"to":    to,
	})

	s.beginReorder(scope)
	op.ids = domain.Move(seq, from, to)

	if scope.Kind == domain.ScopeTabs {
		s.store.ApplyTabOrder(op.ids, scope.OrderBase())
	} else if !s.store.ApplyNoteOrder(scope, op.ids, scope.OrderBase()) {
		s.endReorder(scope)
		log.Debug("Loaded tab changed before reorder was applied")
		return nil, fmt.Errorf("%w: tab %d is not loaded", application.ErrInvalidOperation, scope.TabID)
	}
	s.setReorderState(scope, ReorderOptimisticallyApplied)
	log.WithField("ids", op.ids).Debug("Applied reorder optimistically")

	s.wg.Add(1)
	go s.persistReorder(context.WithoutCancel(ctx), op, log)
	return op, nil
}

func (s *Session) persistReorder(ctx context.Context, op *ReorderOp, log logrus.FieldLogger) {
	defer s.wg.Done()
	defer close(op.done)
	defer s.endReorder(op.Scope)

	var err error
	if op.Scope.Kind == domain.ScopeTabs {
		err = s.backend.ReorderTabs(ctx, op.ids)
	} else {
		err = s.backend.ReorderNotes(ctx, op.Scope.TabID, op.ids)
	}

	if err == nil {
		s.setReorderState(op.Scope, ReorderConfirmed)
		s.report(reorderMessage(op.Scope), nil)
		return
	}

	op.err = &application.ReorderError{Scope: op.Scope, Err: err}
	s.setReorderState(op.Scope, ReorderReconciling)
	log.WithError(err).Warn("Reorder rejected, reconciling")
	s.reconcile(ctx, op.Scope, log)
	s.report(fmt.Sprintf("Failed to reorder %s: %v", reorderNoun(op.Scope), err), op.err)
}

// reconcile replaces the scope's collection with what the backend holds
func (s *Session) reconcile(ctx context.Context, scope domain.Scope, log logrus.FieldLogger) {
	if scope.Kind == domain.ScopeTabs {
		tabs, err := s.backend.ListTabs(ctx)
		if err != nil {
			log.WithError(err).Error("Failed to reload tabs")
			return
		}
		s.store.ReplaceTabs(tabs)
		return
	}

	notes, err := s.backend.ListNotes(ctx, scope.TabID)
	if err != nil {
		log.WithError(err).Error("Failed to reload notes")
		return
	}
	s.replaceNotesIfCurrent(scope.TabID, notes)
}

func (s *Session) beginReorder(scope domain.Scope) {
	s.mu.Lock()
	s.inflight[scope]++
	s.mu.Unlock()
	s.setReorderState(scope, ReorderComputing)
}

func (s *Session) endReorder(scope domain.Scope) {
	s.mu.Lock()
	s.inflight[scope]--
	idle := s.inflight[scope] == 0
	if idle {
		delete(s.inflight, scope)
	}
	s.mu.Unlock()
	if idle {
		s.setReorderState(scope, ReorderIdle)
	}
}

func (s *Session) setReorderState(scope domain.Scope, st ReorderState) {
	s.mu.Lock()
	if st == ReorderIdle {
		delete(s.reorders, scope)
	} else {
		s.reorders[scope] = st
	}
	s.mu.Unlock()

	if s.onReorder != nil {
		s.onReorder(scope, st)
	}
}

func reorderNoun(scope domain.Scope) string {
	switch {
	case scope.Kind == domain.ScopeTabs:
		return "tabs"
	case scope.IsChildren():
		return "sub-notes"
	default:
		return "notes"
	}
}

func reorderMessage(scope domain.Scope) string {
	switch {
	case scope.Kind == domain.ScopeTabs:
		return "Tabs reordered successfully"
	case scope.IsChildren():
		return "Sub-notes reordered successfully"
	default:
		return "Notes reordered successfully"
	}
}
