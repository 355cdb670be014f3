package corpus

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustWriteFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func newTestReader(t *testing.T, dryRun bool) *Reader {
	t.Helper()
	r, err := NewReader(Options{CacheSize: 8, DryRun: dryRun})
	require.NoError(t, err)
	return r
}

func TestFilesAppliesDirectoryAndNameExclusions(t *testing.T) {
	root := t.TempDir()
	mustWriteFile(t, filepath.Join(root, "Items", "AK.json"), `{"AK":{}}`)
	mustWriteFile(t, filepath.Join(root, "Items", "Scopes.json"), `{}`)
	mustWriteFile(t, filepath.Join(root, "Quests", "q1.json"), `{}`)
	mustWriteFile(t, filepath.Join(root, "Quests", "deep", "q2.json"), `{}`)
	mustWriteFile(t, filepath.Join(root, "locales", "en", "strings.json"), `{}`)
	mustWriteFile(t, filepath.Join(root, "Quests", "notes.txt"), `AK`)

	r := newTestReader(t, false)

	files, err := r.Files(Query{
		Dir:         root,
		Pattern:     DeepJSON,
		ExcludeDirs: []string{filepath.Join(root, "Items"), filepath.Join(root, "LOCALES")},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(root, "Quests", "deep", "q2.json"),
		filepath.Join(root, "Quests", "q1.json"),
	}, files)

	flat, err := r.Files(Query{
		Dir:          filepath.Join(root, "Items"),
		Pattern:      FlatJSON,
		ExcludeFiles: []string{"scopes.JSON"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(root, "Items", "AK.json")}, flat)
}

func TestFilesHonoursUserPatterns(t *testing.T) {
	root := t.TempDir()
	mustWriteFile(t, filepath.Join(root, "Quests", "q1.json"), `{}`)
	mustWriteFile(t, filepath.Join(root, "Quests", "drafts", "q2.json"), `{}`)

	files, err := newTestReader(t, false).Files(Query{
		Dir:             root,
		Pattern:         DeepJSON,
		ExcludePatterns: []string{"Quests/drafts/**"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(root, "Quests", "q1.json")}, files)
}

func TestFilesFailsOnMissingDirectory(t *testing.T) {
	_, err := newTestReader(t, false).Files(Query{Dir: filepath.Join(t.TempDir(), "Quests")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to enumerate")
}

func TestBlobConcatenatesContent(t *testing.T) {
	root := t.TempDir()
	mustWriteFile(t, filepath.Join(root, "a.json"), `{"a":"Scope_4x"}`)
	mustWriteFile(t, filepath.Join(root, "b.json"), `{"b":"Mag30"}`)

	blob, err := newTestReader(t, false).Blob(Query{Dir: root})
	require.NoError(t, err)
	assert.True(t, strings.Contains(blob, "Scope_4x"))
	assert.True(t, strings.Contains(blob, "Mag30"))
}

func TestWriteGoesThroughCache(t *testing.T) {
	root := t.TempDir()
	file := filepath.Join(root, "q.json")
	mustWriteFile(t, file, `{"old":true}`)

	r := newTestReader(t, false)
	_, err := r.Read(file)
	require.NoError(t, err)

	require.NoError(t, r.Write(file, []byte(`{"new":true}`)))
	data, err := r.Read(file)
	require.NoError(t, err)
	assert.Equal(t, `{"new":true}`, string(data))

	onDisk, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Equal(t, `{"new":true}`, string(onDisk))
	assert.Equal(t, []string{file}, r.Written())
}

func TestDryRunKeepsDiskUntouched(t *testing.T) {
	root := t.TempDir()
	file := filepath.Join(root, "q.json")
	mustWriteFile(t, file, `{"old":true}`)

	r := newTestReader(t, true)
	require.True(t, r.DryRun())
	require.NoError(t, r.Write(file, []byte(`{"new":true}`)))

	data, err := r.Read(file)
	require.NoError(t, err)
	assert.Equal(t, `{"new":true}`, string(data))

	onDisk, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Equal(t, `{"old":true}`, string(onDisk))
}
