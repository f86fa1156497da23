package persist

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryBackend_LoadSaveRoundTrip(t *testing.T) {
	b := NewMemoryBackend()

	_, ok, err := b.Load("settings")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, b.Save("settings", []byte{1, 2, 3}))
	data, ok, err := b.Load("settings")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte{1, 2, 3}, data)
}

func TestFileBackend_LoadSaveRoundTrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nvs")
	b := NewFileBackend(dir)

	_, ok, err := b.Load("lifetime")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, b.Save("lifetime", []byte{9, 8, 7}))
	data, ok, err := b.Load("lifetime")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte{9, 8, 7}, data)
}
