package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"focusboard/internal/application"
	"focusboard/internal/domain"
	"focusboard/internal/testutil"
)

func waitOp(t *testing.T, op *ReorderOp) error {
	t.Helper()
	require.NotNil(t, op)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	select {
	case <-op.Done():
		return op.Err()
	case <-ctx.Done():
		t.Fatalf("reorder %s did not finish", op.ID)
		return nil
	}
}

type stateLog struct {
	mu     sync.Mutex
	states map[domain.Scope][]ReorderState
}

func (l *stateLog) add(scope domain.Scope, st ReorderState) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.states[scope] = append(l.states[scope], st)
}

func (l *stateLog) of(scope domain.Scope) []ReorderState {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]ReorderState(nil), l.states[scope]...)
}

func TestReorderTabs_DragCOntoA(t *testing.T) {
	f := newFixture(t)
	a := f.backend.SeedTab("A", domain.Ptr[int64](0))
	b := f.backend.SeedTab("B", domain.Ptr[int64](1))
	c := f.backend.SeedTab("C", domain.Ptr[int64](2))
	s := f.start(t)

	op, err := s.DragEnd(context.Background(), domain.TabParticipant(c.ID), domain.TabParticipant(a.ID))
	require.NoError(t, err)
	require.NotNil(t, op)

	tabs := s.Snapshot().Tabs
	assert.Equal(t, []int64{c.ID, a.ID, b.ID}, domain.TabIDs(tabs))
	for i, tab := range tabs {
		assert.Equal(t, int64(i), *tab.OrderID)
	}

	require.NoError(t, waitOp(t, op))
	calls := f.backend.CallsOf(testutil.OpReorderTabs)
	require.Len(t, calls, 1)
	assert.Equal(t, []int64{c.ID, a.ID, b.ID}, calls[0].IDs)
	assert.Equal(t, op.IDs(), calls[0].IDs)
	assert.Equal(t, "Tabs reordered successfully", s.Status().Message)
	assert.Contains(t, f.status.messages(), "App setup complete")
}

func TestReorderNotes_N2BeforeN1(t *testing.T) {
	t.Run("persisted", func(t *testing.T) {
		f := newFixture(t)
		tab := f.backend.SeedTab("T", nil)
		n1 := f.seedNote(tab.ID, nil, 1, domain.NoteTypeBasic)
		n2 := f.seedNote(tab.ID, nil, 2, domain.NoteTypeBasic)
		s := f.start(t)

		op, err := s.DragEnd(context.Background(), domain.NoteParticipant(n2.ID), domain.NoteParticipant(n1.ID))
		require.NoError(t, err)

		assert.Equal(t, int64(1), orderOf(t, s, n2.ID))
		assert.Equal(t, int64(2), orderOf(t, s, n1.ID))

		require.NoError(t, waitOp(t, op))
		calls := f.backend.CallsOf(testutil.OpReorderNotes)
		require.Len(t, calls, 1)
		assert.Equal(t, tab.ID, calls[0].TabID)
		assert.Equal(t, []int64{n2.ID, n1.ID}, calls[0].IDs)
		assert.Equal(t, "Notes reordered successfully", s.Status().Message)
	})

	t.Run("rejected", func(t *testing.T) {
		f := newFixture(t)
		tab := f.backend.SeedTab("T", nil)
		n1 := f.seedNote(tab.ID, nil, 1, domain.NoteTypeBasic)
		n2 := f.seedNote(tab.ID, nil, 2, domain.NoteTypeBasic)
		s := f.start(t)
		f.backend.SetFail(testutil.OpReorderNotes, errors.New("constraint failed"))

		op, err := s.DragEnd(context.Background(), domain.NoteParticipant(n2.ID), domain.NoteParticipant(n1.ID))
		require.NoError(t, err)
		assert.Equal(t, int64(1), orderOf(t, s, n2.ID))

		opErr := waitOp(t, op)
		require.Error(t, opErr)
		var reorderErr *application.ReorderError
		require.ErrorAs(t, opErr, &reorderErr)
		assert.Equal(t, domain.NoteScope(tab.ID, nil), reorderErr.Scope)

		assert.Equal(t, int64(1), orderOf(t, s, n1.ID))
		assert.Equal(t, int64(2), orderOf(t, s, n2.ID))
		assert.Equal(t, []int64{n1.ID, n2.ID}, domain.NoteIDs(s.Hierarchy().TopLevel(tab.ID)))

		st := s.Status()
		assert.True(t, st.IsError())
		assert.Equal(t, "Failed to reorder notes: constraint failed", st.Message)
	})
}

func TestReorderTabs_RejectedConvergesToBackend(t *testing.T) {
	f := newFixture(t)
	a := f.backend.SeedTab("A", domain.Ptr[int64](0))
	b := f.backend.SeedTab("B", domain.Ptr[int64](1))
	s := f.start(t)
	f.backend.SetFail(testutil.OpReorderTabs, errors.New("disk full"))

	op, err := s.ReorderTabs(context.Background(), 0, 1)
	require.NoError(t, err)
	assert.Equal(t, []int64{b.ID, a.ID}, domain.TabIDs(s.Snapshot().Tabs))

	require.Error(t, waitOp(t, op))
	assert.Equal(t, []int64{a.ID, b.ID}, domain.TabIDs(s.Snapshot().Tabs))
	assert.Equal(t, "Failed to reorder tabs: disk full", s.Status().Message)
}

func TestReorder_StateTransitions(t *testing.T) {
	tests := []struct {
		name string
		fail error
		want []ReorderState
	}{
		{
			name: "confirmed",
			want: []ReorderState{ReorderComputing, ReorderOptimisticallyApplied, ReorderConfirmed, ReorderIdle},
		},
		{
			name: "reconciled",
			fail: errors.New("nope"),
			want: []ReorderState{ReorderComputing, ReorderOptimisticallyApplied, ReorderReconciling, ReorderIdle},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			log := &stateLog{states: make(map[domain.Scope][]ReorderState)}
			f.opts.OnReorderState = log.add
			f.backend.SeedTab("A", domain.Ptr[int64](0))
			f.backend.SeedTab("B", domain.Ptr[int64](1))
			s := f.start(t)
			f.backend.SetFail(testutil.OpReorderTabs, tt.fail)

			op, err := s.ReorderTabs(context.Background(), 1, 0)
			require.NoError(t, err)
			_ = waitOp(t, op)

			assert.Equal(t, tt.want, log.of(domain.TabScope()))
			assert.Equal(t, ReorderIdle, s.ReorderState(domain.TabScope()))
		})
	}
}

func TestReorder_OptimisticBeforePersistence(t *testing.T) {
	f := newFixture(t)
	a := f.backend.SeedTab("A", domain.Ptr[int64](0))
	b := f.backend.SeedTab("B", domain.Ptr[int64](1))
	s := f.start(t)
	gate := f.backend.Block(testutil.OpReorderTabs)

	op, err := s.ReorderTabs(context.Background(), 1, 0)
	require.NoError(t, err)
	<-gate.Entered()

	assert.Equal(t, []int64{b.ID, a.ID}, domain.TabIDs(s.Snapshot().Tabs))
	assert.Equal(t, ReorderOptimisticallyApplied, s.ReorderState(domain.TabScope()))
	select {
	case <-op.Done():
		t.Fatal("op finished before persistence returned")
	default:
	}

	gate.Release()
	require.NoError(t, waitOp(t, op))
	assert.Equal(t, ReorderIdle, s.ReorderState(domain.TabScope()))
}

func TestReorder_CrossScopeDoesNotWait(t *testing.T) {
	f := newFixture(t)
	tab := f.backend.SeedTab("A", domain.Ptr[int64](0))
	f.backend.SeedTab("B", domain.Ptr[int64](1))
	n1 := f.seedNote(tab.ID, nil, 1, domain.NoteTypeBasic)
	n2 := f.seedNote(tab.ID, nil, 2, domain.NoteTypeBasic)
	s := f.start(t)
	gate := f.backend.Block(testutil.OpReorderTabs)
	defer gate.Release()

	tabOp, err := s.ReorderTabs(context.Background(), 0, 1)
	require.NoError(t, err)
	<-gate.Entered()

	noteOp, err := s.ReorderNotes(context.Background(), domain.NoteScope(tab.ID, nil), 0, 1)
	require.NoError(t, err)
	require.NoError(t, waitOp(t, noteOp))
	assert.Equal(t, []int64{n2.ID, n1.ID}, domain.NoteIDs(s.Hierarchy().TopLevel(tab.ID)))

	// the session stays usable while the tab reorder is in flight
	assert.False(t, s.ToggleOpen(n1.ID))
	_, err = s.AddNote(context.Background(), domain.NoteTypeBasic)
	require.NoError(t, err)

	gate.Release()
	require.NoError(t, waitOp(t, tabOp))
}

func TestReorder_StaleTabReloadIsDropped(t *testing.T) {
	f := newFixture(t)
	t1 := f.backend.SeedTab("One", domain.Ptr[int64](0))
	t2 := f.backend.SeedTab("Two", domain.Ptr[int64](1))
	f.seedNote(t1.ID, nil, 1, domain.NoteTypeBasic)
	f.seedNote(t1.ID, nil, 2, domain.NoteTypeBasic)
	other := f.seedNote(t2.ID, nil, 1, domain.NoteTypeBasic)
	s := f.start(t)

	f.backend.SetFail(testutil.OpReorderNotes, errors.New("rejected"))
	gate := f.backend.Block(testutil.OpReorderNotes)

	op, err := s.ReorderNotes(context.Background(), domain.NoteScope(t1.ID, nil), 0, 1)
	require.NoError(t, err)
	<-gate.Entered()

	require.NoError(t, s.SelectTab(context.Background(), t2.ID))
	gate.Release()
	require.Error(t, waitOp(t, op))

	snap := s.Snapshot()
	assert.Equal(t, t2.ID, snap.NotesTab)
	assert.Equal(t, []int64{other.ID}, domain.NoteIDs(snap.Notes))

	lists := f.backend.CallsOf(testutil.OpListNotes)
	assert.Equal(t, t1.ID, lists[len(lists)-1].TabID, "reconcile still fetched the old tab")
}

func TestReorderNotes_ChildrenScope(t *testing.T) {
	f := newFixture(t)
	tab := f.backend.SeedTab("T", nil)
	parent := f.seedNote(tab.ID, nil, 1, domain.NoteTypeCategorical)
	sibling := f.seedNote(tab.ID, nil, 2, domain.NoteTypeBasic)
	c1 := f.seedNote(tab.ID, domain.Ptr(parent.ID), 1, domain.NoteTypeBasic)
	c2 := f.seedNote(tab.ID, domain.Ptr(parent.ID), 2, domain.NoteTypeBasic)
	c3 := f.seedNote(tab.ID, domain.Ptr(parent.ID), 3, domain.NoteTypeBasic)
	s := f.start(t)

	op, err := s.DragEnd(context.Background(), domain.NoteParticipant(c1.ID), domain.NoteParticipant(c3.ID))
	require.NoError(t, err)
	require.NoError(t, waitOp(t, op))

	assert.Equal(t, []int64{c2.ID, c3.ID, c1.ID}, domain.NoteIDs(s.Hierarchy().Children(parent.ID)))
	assert.Equal(t, int64(1), orderOf(t, s, parent.ID))
	assert.Equal(t, int64(2), orderOf(t, s, sibling.ID))
	assert.Equal(t, "Sub-notes reordered successfully", s.Status().Message)
}

func TestReorderNotes_Errors(t *testing.T) {
	f := newFixture(t)
	tab := f.backend.SeedTab("T", nil)
	f.seedNote(tab.ID, nil, 1, domain.NoteTypeBasic)
	f.seedNote(tab.ID, nil, 2, domain.NoteTypeBasic)
	s := f.start(t)
	ctx := context.Background()

	t.Run("tab not loaded", func(t *testing.T) {
		_, err := s.ReorderNotes(ctx, domain.NoteScope(tab.ID+100, nil), 0, 1)
		assert.ErrorIs(t, err, application.ErrInvalidOperation)
	})

	t.Run("tab scope", func(t *testing.T) {
		_, err := s.ReorderNotes(ctx, domain.TabScope(), 0, 1)
		assert.ErrorIs(t, err, application.ErrInvalidOperation)
	})

	t.Run("out of range", func(t *testing.T) {
		_, err := s.ReorderNotes(ctx, domain.NoteScope(tab.ID, nil), 0, 5)
		var valErr *application.ValidationError
		assert.ErrorAs(t, err, &valErr)
	})

	t.Run("same index is a no-op", func(t *testing.T) {
		op, err := s.ReorderNotes(ctx, domain.NoteScope(tab.ID, nil), 1, 1)
		assert.NoError(t, err)
		assert.Nil(t, op)
		assert.Empty(t, f.backend.CallsOf(testutil.OpReorderNotes))
	})
}

func TestReorderNotes_LoadedTabChangedBeforeApply(t *testing.T) {
	f := newFixture(t)
	log := &stateLog{states: make(map[domain.Scope][]ReorderState)}
	f.opts.OnReorderState = log.add
	tab := f.backend.SeedTab("T", nil)
	other := f.backend.SeedTab("U", nil)
	n1 := f.seedNote(tab.ID, nil, 1, domain.NoteTypeBasic)
	n2 := f.seedNote(tab.ID, nil, 2, domain.NoteTypeBasic)
	s := f.start(t)
	before := s.Snapshot()
	require.Equal(t, tab.ID, before.NotesTab)

	// sequence computed for a tab that is no longer the loaded one
	scope := domain.NoteScope(other.ID, nil)
	op, err := s.reorder(context.Background(), scope, []int64{n1.ID, n2.ID}, 1, 0)
	assert.ErrorIs(t, err, application.ErrInvalidOperation)
	assert.Nil(t, op)

	s.wg.Wait()
	assert.Empty(t, f.backend.CallsOf(testutil.OpReorderNotes))
	assert.Equal(t, before.Version, s.Snapshot().Version)
	assert.Equal(t, ReorderIdle, s.ReorderState(scope))
	assert.NotContains(t, log.of(scope), ReorderOptimisticallyApplied)
}
