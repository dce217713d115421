package backup

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeDoc(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0600))
}

func TestCreateSnapshotsJSONDocuments(t *testing.T) {
	data := t.TempDir()
	writeDoc(t, data, "today.json", `{"content":"hi"}`)
	writeDoc(t, data, "goals.json", `[]`)
	writeDoc(t, data, "readme.txt", "not a document")
	require.NoError(t, os.MkdirAll(filepath.Join(data, "attachments", "1"), 0700))
	writeDoc(t, filepath.Join(data, "attachments", "1"), "x.pdf", "payload")

	m := NewManager(data, DefaultKeep)
	dest, err := m.Create()
	require.NoError(t, err)

	entries, err := os.ReadDir(dest)
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	// Only the top-level *.json documents are copied.
	assert.ElementsMatch(t, []string{"today.json", "goals.json"}, names)
}

func TestCreateWithNothingToBackUp(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "absent")
	m := NewManager(missing, DefaultKeep)
	_, err := m.Create()
	assert.Error(t, err)
}

func TestListNewestFirstAndRotate(t *testing.T) {
	data := t.TempDir()
	writeDoc(t, data, "today.json", `{}`)

	m := NewManager(data, 1)
	for i := 0; i < 3; i++ {
		_, err := m.Create()
		require.NoError(t, err)
	}

	backups, err := m.List()
	require.NoError(t, err)
	// keep=1 means older snapshots were rotated away.
	assert.Len(t, backups, 1)
	assert.Positive(t, backups[0].Size)
}

func TestRestoreRoundTrip(t *testing.T) {
	data := t.TempDir()
	writeDoc(t, data, "today.json", `{"content":"original"}`)

	m := NewManager(data, DefaultKeep)
	snap, err := m.Create()
	require.NoError(t, err)

	writeDoc(t, data, "today.json", `{"content":"clobbered"}`)

	require.NoError(t, m.Restore(snap))

	got, err := os.ReadFile(filepath.Join(data, "today.json"))
	require.NoError(t, err)
	assert.Equal(t, `{"content":"original"}`, string(got))

	// Restore snapshots the pre-restore state first.
	backups, err := m.List()
	require.NoError(t, err)
	assert.GreaterOrEqual(t, len(backups), 2)
}

func TestRestoreMissingSnapshot(t *testing.T) {
	m := NewManager(t.TempDir(), DefaultKeep)
	assert.Error(t, m.Restore(filepath.Join(t.TempDir(), "nope")))
}

func TestDatabaseFileMode(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "daybook.db")
	require.NoError(t, os.WriteFile(dbPath, []byte("sqlite bits"), 0600))

	m := NewManager(dbPath, DefaultKeep)
	assert.Equal(t, filepath.Join(dir, BackupDirName), m.BackupDir())

	dest, err := m.Create()
	require.NoError(t, err)
	assert.Equal(t, ".db", filepath.Ext(dest))

	info, err := os.Stat(dest)
	require.NoError(t, err)
	assert.False(t, info.IsDir())
	assert.Equal(t, int64(len("sqlite bits")), info.Size())
}
