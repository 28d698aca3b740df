package sessions

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"pinpilot/domain/entities"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (string, *fileStore) {
	t.Helper()
	dir := t.TempDir()
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return dir, NewFileStore(dir, logger).(*fileStore)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	_, store := newTestStore(t)

	require.NoError(t, store.Save("user1", []byte(`{"cookies":[]}`)))

	data, err := store.Load("user1")
	require.NoError(t, err)
	assert.Equal(t, `{"cookies":[]}`, string(data))
	assert.True(t, store.Exists("user1"))
}

func TestLoadMissingSession(t *testing.T) {
	_, store := newTestStore(t)

	_, err := store.Load("nobody")
	assert.ErrorIs(t, err, entities.ErrSessionNotFound)
	assert.False(t, store.Exists("nobody"))
}

func TestSaveOverwrites(t *testing.T) {
	_, store := newTestStore(t)

	require.NoError(t, store.Save("user1", []byte("old")))
	require.NoError(t, store.Save("user1", []byte("new")))

	data, err := store.Load("user1")
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))
}

func TestSaveLeavesNoTempFiles(t *testing.T) {
	dir, store := newTestStore(t)

	require.NoError(t, store.Save("user1", []byte("state")))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "user1.json", entries[0].Name())
}

func TestSavePermissions(t *testing.T) {
	dir, store := newTestStore(t)

	require.NoError(t, store.Save("user1", []byte("state")))

	info, err := os.Stat(filepath.Join(dir, "user1.json"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestInvalidUserIDs(t *testing.T) {
	_, store := newTestStore(t)

	for _, id := range []string{"", ".", "..", "../escape", "a/b", `a\b`, "user 1", "user\x00"} {
		_, err := store.Path(id)
		assert.ErrorIs(t, err, entities.ErrInvalidUserID, "id %q", id)

		assert.False(t, store.Exists(id))
		assert.ErrorIs(t, store.Save(id, []byte("x")), entities.ErrInvalidUserID)
	}
}

func TestPathIsDeterministic(t *testing.T) {
	dir, store := newTestStore(t)

	path, err := store.Path("user-1.a_b")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "user-1.a_b.json"), path)
}

func TestDelete(t *testing.T) {
	_, store := newTestStore(t)

	require.NoError(t, store.Save("user1", []byte("state")))
	require.NoError(t, store.Delete("user1"))
	assert.False(t, store.Exists("user1"))

	// deleting again is not an error
	assert.NoError(t, store.Delete("user1"))
}

func TestInfo(t *testing.T) {
	_, store := newTestStore(t)

	_, ok := store.Info("user1")
	assert.False(t, ok)

	require.NoError(t, store.Save("user1", []byte("state")))

	info, ok := store.Info("user1")
	require.True(t, ok)
	assert.Equal(t, "user1", info.UserID)
	assert.False(t, info.ModifiedAt.IsZero())
}

func TestDefaultDir(t *testing.T) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	store := NewFileStore("", logger).(*fileStore)
	assert.Equal(t, defaultSessionDir, store.dir)
}
