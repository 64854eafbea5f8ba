package session

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFile(t *testing.T) {
	m, err := Load(filepath.Join(t.TempDir(), "session.json"))
	require.NoError(t, err)

	assert.False(t, m.IsAuthenticated())
	assert.False(t, m.IsAdmin())

	_, ok := m.Token()
	assert.False(t, ok)
}

func TestSaveAndRestore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")

	m, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, m.Save("admin", "T1"))

	assert.True(t, m.IsAuthenticated())
	assert.True(t, m.IsAdmin())
	token, ok := m.Token()
	assert.True(t, ok)
	assert.Equal(t, "T1", token)

	// A fresh manager restores the same session from disk.
	restored, err := Load(path)
	require.NoError(t, err)
	assert.True(t, restored.IsAuthenticated())
	assert.Equal(t, "admin", restored.Role())
	token, ok = restored.Token()
	assert.True(t, ok)
	assert.Equal(t, "T1", token)
}

func TestSaveOverwritesPriorSession(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")

	m, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, m.Save("admin", "T1"))
	require.NoError(t, m.Save("user", "T2"))

	assert.False(t, m.IsAdmin())
	token, _ := m.Token()
	assert.Equal(t, "T2", token)

	restored, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "user", restored.Role())
}

func TestClear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")

	m, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, m.Save("admin", "T1"))
	require.NoError(t, m.Clear())

	assert.False(t, m.IsAuthenticated())
	assert.False(t, m.IsAdmin())
	_, ok := m.Token()
	assert.False(t, ok)

	// The session file is gone, so a restart stays logged out.
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	// Clearing an already clear session is fine.
	require.NoError(t, m.Clear())
}

func TestLoadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	m, err := Load(path)
	require.NoError(t, err)
	assert.False(t, m.IsAuthenticated())
}

func TestLoadRecordWithoutToken(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"logged_in":true,"role":"admin"}`), 0o600))

	m, err := Load(path)
	require.NoError(t, err)

	// Authenticated without a token violates the session invariant, so the
	// record is discarded.
	assert.False(t, m.IsAuthenticated())
	assert.False(t, m.IsAdmin())
}

func TestConcurrentReadsSeeWholeRecords(t *testing.T) {
	m, err := Load("")
	require.NoError(t, err)
	require.NoError(t, m.Save("user", "T1"))

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				token, ok := m.Token()
				if ok {
					// A token must never be observed without its role.
					assert.NotEmpty(t, token)
					assert.NotEmpty(t, m.Role())
				}
			}
		}()
	}

	for range 50 {
		require.NoError(t, m.Save("admin", "T2"))
		require.NoError(t, m.Save("user", "T1"))
	}
	wg.Wait()
}
