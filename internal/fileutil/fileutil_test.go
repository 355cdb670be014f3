package fileutil

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteAtomicReplacesContentAndKeepsMode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Scopes.json")
	require.NoError(t, os.WriteFile(path, []byte("old content that is longer"), 0600))

	require.NoError(t, WriteAtomic(path, []byte("{}\n")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{}\n", string(data))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary file should not be left behind")
}

func TestWriteIfMissingNeverOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "refprune.yaml")

	created, err := WriteIfMissing(path, []byte("first"), 0644)
	require.NoError(t, err)
	assert.True(t, created)

	created, err = WriteIfMissing(path, []byte("second"), 0644)
	require.NoError(t, err)
	assert.False(t, created)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "first", string(data))
}

func TestStringHelpers(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, DedupeStrings([]string{"a", "b", "a"}))
	assert.Equal(t, []string{"a", "b"}, MapKeysSorted(map[string]bool{"b": true, "a": true}))
	assert.Equal(t, map[string]bool{"ak.json": true}, FoldSet([]string{" AK.json ", ""}))
	assert.Equal(t, "AK.json", EnsureJSONExt("AK"))
	assert.Equal(t, "AK.JSON", EnsureJSONExt("AK.JSON"))
	assert.Equal(t, "", EnsureJSONExt("  "))
}

func TestPrintJSONIndents(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, PrintJSON(&buf, map[string]int{"a": 1}))
	assert.Equal(t, "{\n  \"a\": 1\n}\n", buf.String())
}
