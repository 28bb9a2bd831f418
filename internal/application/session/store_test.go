package session

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"focusboard/internal/domain"
)

func ptr(v int64) *int64 { return domain.Ptr(v) }

func TestStore_SnapshotsDoNotAlias(t *testing.T) {
	s := NewStore()
	s.ReplaceNotes(1, []domain.Note{{ID: 1, Title: "a", TabID: ptr(1), OrderID: ptr(1)}})

	before := s.Snapshot()
	require.True(t, s.PatchNote(1, domain.NotePatch{Title: domain.Ptr("b"), OrderID: ptr(5)}))
	after := s.Snapshot()

	assert.Equal(t, before.Version+1, after.Version)
	assert.Equal(t, "a", before.Notes[0].Title)
	assert.Equal(t, int64(1), *before.Notes[0].OrderID)
	assert.Equal(t, "b", after.Notes[0].Title)
	assert.Equal(t, int64(5), *after.Notes[0].OrderID)
}

func TestStore_ReplaceTabsSorts(t *testing.T) {
	s := NewStore()
	s.ReplaceTabs([]domain.Tab{
		{ID: 1, Name: "A"},
		{ID: 2, Name: "B", OrderID: ptr(1)},
		{ID: 3, Name: "C", OrderID: ptr(0)},
	})

	assert.Equal(t, []int64{3, 2, 1}, domain.TabIDs(s.Snapshot().Tabs))
}

func TestStore_ReplaceNotesZeroClears(t *testing.T) {
	s := NewStore()
	s.ReplaceNotes(1, []domain.Note{{ID: 1, TabID: ptr(1)}})
	s.ReplaceNotes(0, []domain.Note{{ID: 2}})

	snap := s.Snapshot()
	assert.Zero(t, snap.NotesTab)
	assert.Empty(t, snap.Notes)
}

func TestStore_RemoveNoteCascades(t *testing.T) {
	s := NewStore()
	s.ReplaceNotes(1, []domain.Note{
		{ID: 1, TabID: ptr(1), Type: domain.NoteTypeCategorical},
		{ID: 2, TabID: ptr(1), ParentID: ptr(1)},
		{ID: 3, TabID: ptr(1)},
	})

	assert.True(t, s.RemoveNote(1))
	assert.Equal(t, []int64{3}, domain.NoteIDs(s.Snapshot().Notes))

	v := s.Version()
	assert.False(t, s.RemoveNote(42))
	assert.Equal(t, v, s.Version(), "no-op removal does not commit")
}

func TestStore_ApplyNoteOrderOnlyTouchesScope(t *testing.T) {
	s := NewStore()
	s.ReplaceNotes(1, []domain.Note{
		{ID: 1, TabID: ptr(1), OrderID: ptr(1), Type: domain.NoteTypeCategorical},
		{ID: 2, TabID: ptr(1), OrderID: ptr(2)},
		{ID: 3, TabID: ptr(1), ParentID: ptr(1), OrderID: ptr(7)},
	})

	ok := s.ApplyNoteOrder(domain.NoteScope(1, nil), []int64{2, 1, 3}, 1)
	require.True(t, ok)

	snap := s.Snapshot()
	n1, _ := snap.Note(1)
	n2, _ := snap.Note(2)
	n3, _ := snap.Note(3)
	assert.Equal(t, int64(2), *n1.OrderID)
	assert.Equal(t, int64(1), *n2.OrderID)
	assert.Equal(t, int64(7), *n3.OrderID, "child is outside the top-level scope")

	assert.False(t, s.ApplyNoteOrder(domain.NoteScope(9, nil), []int64{1}, 1), "tab not loaded")
}

func TestStore_ApplyTabOrder(t *testing.T) {
	s := NewStore()
	s.ReplaceTabs([]domain.Tab{
		{ID: 1, OrderID: ptr(0)},
		{ID: 2, OrderID: ptr(1)},
		{ID: 3, OrderID: ptr(2)},
	})

	s.ApplyTabOrder([]int64{3, 1, 2}, 0)

	tabs := s.Snapshot().Tabs
	assert.Equal(t, []int64{3, 1, 2}, domain.TabIDs(tabs))
	for i, tab := range tabs {
		assert.Equal(t, int64(i), *tab.OrderID)
	}
}

func TestStore_SubscribersSeeEveryCommitInOrder(t *testing.T) {
	s := NewStore()

	var (
		mu       sync.Mutex
		versions []uint64
	)
	unsubscribe := s.Subscribe(func(snap *Snapshot) {
		mu.Lock()
		versions = append(versions, snap.Version)
		mu.Unlock()
	})

	var wg sync.WaitGroup
	for i := 1; i <= 50; i++ {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			s.AppendNote(domain.Note{ID: id, TabID: ptr(1)})
		}(int64(i))
	}
	wg.Wait()

	assert.Len(t, s.Snapshot().Notes, 50)
	mu.Lock()
	require.Len(t, versions, 50)
	for i := 1; i < len(versions); i++ {
		assert.Equal(t, versions[i-1]+1, versions[i])
	}
	mu.Unlock()

	unsubscribe()
	s.AppendNote(domain.Note{ID: 99})
	mu.Lock()
	assert.Len(t, versions, 50)
	mu.Unlock()
}
