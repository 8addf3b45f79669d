package prefs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.json")
	f := NewFile(path)

	_, ok, err := f.Get(CurrentUserKey)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, f.Set(CurrentUserKey, []byte(`{"full_name":"Max"}`)))
	require.NoError(t, f.Set("theme", []byte(`"dark"`)))

	// a second handle sees what the first wrote
	again := NewFile(path)
	v, ok, err := again.Get(CurrentUserKey)
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `{"full_name":"Max"}`, string(v))

	v, ok, err = again.Get("theme")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `"dark"`, string(v))
}

func TestFileRejectsInvalidJSON(t *testing.T) {
	f := NewFile(filepath.Join(t.TempDir(), "session.json"))
	assert.Error(t, f.Set("k", []byte("not json")))
}

func TestFileCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{"), 0o600))

	_, _, err := NewFile(path).Get("k")
	assert.ErrorContains(t, err, "failed to parse preferences")
}

func TestMemoryCopies(t *testing.T) {
	m := NewMemory()
	value := []byte(`1`)
	require.NoError(t, m.Set("k", value))
	value[0] = '2'

	v, ok, err := m.Get("k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "1", string(v))
}
