package prefs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"focusboard/internal/domain"
	"focusboard/internal/ports"
)

func TestLoad_Empty(t *testing.T) {
	s := Open(t.TempDir())

	p, err := s.Load()
	require.NoError(t, err)
	assert.Nil(t, p.CurrentTabID)
	assert.Empty(t, p.CurrentTabName)
	assert.Nil(t, p.OpenStates)
	assert.Equal(t, ports.DefaultUIVisibility(), p.UI)
}

func TestRoundTrip(t *testing.T) {
	dir := t.TempDir()
	s := Open(dir)

	open := domain.OpenStates{}.Set(1, 10, false).Set(2, 20, true)
	require.NoError(t, s.SaveSelection(domain.Ptr[int64](1), "Work"))
	require.NoError(t, s.SaveOpenStates(open))
	require.NoError(t, s.SaveUI(ports.UIVisibility{TabBar: false}))

	// a fresh store skips the cache and reads the files
	p, err := Open(dir).Load()
	require.NoError(t, err)
	require.NotNil(t, p.CurrentTabID)
	assert.Equal(t, int64(1), *p.CurrentTabID)
	assert.Equal(t, "Work", p.CurrentTabName)
	assert.Equal(t, open, p.OpenStates)
	assert.False(t, p.UI.TabBar)

	raw, err := os.ReadFile(filepath.Join(dir, KeyOpenStates))
	require.NoError(t, err)
	assert.JSONEq(t, `{"1":{"10":false},"2":{"20":true}}`, string(raw))
}

func TestSaveSelection_Clear(t *testing.T) {
	s := Open(t.TempDir())
	require.NoError(t, s.SaveSelection(domain.Ptr[int64](3), "X"))
	require.NoError(t, s.SaveSelection(nil, ""))

	p, err := s.Load()
	require.NoError(t, err)
	assert.Nil(t, p.CurrentTabID)
	assert.Empty(t, p.CurrentTabName)
}

func TestLoad_Corrupt(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, KeyUIVisibility), []byte("{"), 0o644))

	_, err := Open(dir).Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode ui_visibility")
}
