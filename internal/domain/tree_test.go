package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildForest(t *testing.T) {
	notes := []Note{
		note(1, 1, nil, Ptr[int64](1)),
		note(2, 1, nil, Ptr[int64](2)),
		note(3, 1, Ptr[int64](1), Ptr[int64](2)),
		note(4, 1, Ptr[int64](1), Ptr[int64](1)),
	}
	h := Project(notes)

	t.Run("expanded by default", func(t *testing.T) {
		forest := BuildForest(h, 1, nil)
		require.Len(t, forest, 2)

		flat := FlattenForest(forest)
		ids := make([]int64, len(flat))
		for i, n := range flat {
			ids[i] = n.Note.ID
		}
		assert.Equal(t, []int64{1, 4, 3, 2}, ids)
		assert.Equal(t, 1, flat[1].Depth())
		assert.Equal(t, 0, flat[0].Depth())
	})

	t.Run("collapsed parent hides children", func(t *testing.T) {
		open := OpenStates{}.Set(1, 1, false)
		flat := FlattenForest(BuildForest(h, 1, open))
		require.Len(t, flat, 2)
		assert.Equal(t, int64(2), flat[1].Note.ID)
	})

	t.Run("toggle", func(t *testing.T) {
		forest := BuildForest(h, 1, nil)
		forest[0].Toggle()
		assert.Len(t, forest[0].Flatten(), 1)
	})
}

func TestBuildForest_SkipsChildrenOfOtherTabs(t *testing.T) {
	h := Project([]Note{
		note(1, 1, nil, Ptr[int64](1)),
		note(2, 1, Ptr[int64](1), Ptr[int64](1)),
		note(3, 2, Ptr[int64](1), Ptr[int64](2)),
	})

	forest := BuildForest(h, 1, nil)
	require.Len(t, forest, 1)
	require.Len(t, forest[0].Children, 1)
	assert.Equal(t, int64(2), forest[0].Children[0].Note.ID)
	assert.Len(t, h.Children(1), 2, "hierarchy still links the stray child")
}
