package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileBridgeRoundTrip(t *testing.T) {
	fb, err := NewFileBridge(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, fb.WriteDocument("today.json", []byte(`{"content":"hi"}`)))

	data, err := fb.ReadDocument("today.json")
	require.NoError(t, err)
	assert.Equal(t, `{"content":"hi"}`, string(data))
}

func TestFileBridgeMissingDocument(t *testing.T) {
	fb, err := NewFileBridge(t.TempDir())
	require.NoError(t, err)

	_, err = fb.ReadDocument("nope.json")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFileBridgeNestedPaths(t *testing.T) {
	fb, err := NewFileBridge(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, fb.WriteDocument("attachments/42/1_a.pdf", []byte("pdf")))
	require.NoError(t, fb.WriteDocument("attachments/42/2_b.pdf", []byte("pdf")))
	require.NoError(t, fb.WriteDocument("attachments/7/1_c.png", []byte("png")))

	names, err := fb.ListDirectory("attachments")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"42", "7"}, names)
}

func TestFileBridgeOverwriteLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	fb, err := NewFileBridge(dir)
	require.NoError(t, err)

	require.NoError(t, fb.WriteDocument("goals.json", []byte("old")))
	require.NoError(t, fb.WriteDocument("goals.json", []byte("new")))

	data, err := fb.ReadDocument("goals.json")
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))

	leftovers, err := filepath.Glob(filepath.Join(dir, ".doc-*.tmp"))
	require.NoError(t, err)
	assert.Empty(t, leftovers)
}

func TestFileBridgeDelete(t *testing.T) {
	fb, err := NewFileBridge(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, fb.WriteDocument("notes.json", []byte("{}")))
	require.NoError(t, fb.DeleteDocument("notes.json"))

	_, err = fb.ReadDocument("notes.json")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, fb.DeleteDocument("notes.json"), ErrNotFound)
}

func TestFileBridgeCreatesBaseDirectory(t *testing.T) {
	base := filepath.Join(t.TempDir(), "deep", "daybook")
	fb, err := NewFileBridge(base)
	require.NoError(t, err)
	assert.Equal(t, base, fb.BaseDirectory())

	info, err := os.Stat(base)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
