package identity

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const testID = "5f0c4f0a-9e9e-4b8f-8f2a-cf8745b2a001"

func TestStore_GetBeforeAssignmentIsAbsent(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "player.json"))

	id, ok := s.Get()
	require.False(t, ok)
	require.Empty(t, id)
}

func TestStore_SurvivesRestart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "player.json")

	s := NewStore(path)
	require.NoError(t, s.Set(testID))

	// A fresh store over the same path models a process restart.
	restarted := NewStore(path)
	id, ok := restarted.Get()
	require.True(t, ok)
	require.Equal(t, testID, id)
}

func TestStore_RejectsNonUUID(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "player.json"))

	require.ErrorIs(t, s.Set("not-a-uuid"), ErrInvalidID)
	_, ok := s.Get()
	require.False(t, ok)
}

func TestStore_IgnoresCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "player.json")
	require.NoError(t, os.WriteFile(path, []byte("{{{"), 0o600))

	s := NewStore(path)
	_, ok := s.Get()
	require.False(t, ok)
}

func TestStore_Clear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "player.json")

	s := NewStore(path)
	require.NoError(t, s.Set(testID))
	require.NoError(t, s.Clear())

	_, ok := s.Get()
	require.False(t, ok)
	_, err := os.Stat(path)
	require.True(t, os.IsNotExist(err))
}
