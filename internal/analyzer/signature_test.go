package analyzer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestStatFileEntry(t *testing.T) {
	dir := t.TempDir()
	path := writeTempFile(t, dir, "data.bin", "hello world")

	entry, err := StatFileEntry(path)
	require.NoError(t, err)

	assert.Equal(t, path, entry.Path)
	assert.Equal(t, "data.bin", entry.Name)
	assert.Equal(t, uint64(11), entry.Size)
	assert.NotZero(t, entry.LastModified)

	_, ok := entry.Hash()
	assert.False(t, ok, "hash must not be computed before EnsureHash")
}

func TestStatFileEntryMissing(t *testing.T) {
	_, err := StatFileEntry(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}

func TestEnsureHashMemoized(t *testing.T) {
	dir := t.TempDir()
	path := writeTempFile(t, dir, "a.txt", "same content")

	entry, err := StatFileEntry(path)
	require.NoError(t, err)
	require.NoError(t, entry.EnsureHash())

	first, ok := entry.Hash()
	require.True(t, ok)
	require.NotEmpty(t, first)

	// Rewriting the file must not change the memoized digest.
	require.NoError(t, os.WriteFile(path, []byte("changed"), 0o644))
	require.NoError(t, entry.EnsureHash())
	second, _ := entry.Hash()
	assert.Equal(t, first, second)
}

func TestIdenticalContentSameHash(t *testing.T) {
	dir := t.TempDir()
	pathA := writeTempFile(t, dir, "original.jpg", "identical bytes")
	pathB := writeTempFile(t, dir, "copy (1).jpg", "identical bytes")
	pathC := writeTempFile(t, dir, "other.jpg", "different bytes")

	var entries []*FileEntry
	for _, p := range []string{pathA, pathB, pathC} {
		e, err := StatFileEntry(p)
		require.NoError(t, err)
		require.NoError(t, e.EnsureHash())
		entries = append(entries, e)
	}

	hashA, _ := entries[0].Hash()
	hashB, _ := entries[1].Hash()
	hashC, _ := entries[2].Hash()
	assert.Equal(t, hashA, hashB)
	assert.NotEqual(t, hashA, hashC)
}

func TestTieredClusteringWithRealFiles(t *testing.T) {
	dir := t.TempDir()
	pathA := writeTempFile(t, dir, "vacation_photo.jpg", "identical bytes")
	pathB := writeTempFile(t, dir, "totally-different-name.bin", "identical bytes")
	pathC := writeTempFile(t, dir, "standalone.txt", "something else entirely")

	var entries []*FileEntry
	for _, p := range []string{pathA, pathB, pathC} {
		e, err := StatFileEntry(p)
		require.NoError(t, err)
		require.NoError(t, e.EnsureHash())
		entries = append(entries, e)
	}

	clusters := NewTieredClustering().Cluster(entries)

	require.Len(t, clusters, 1)
	assert.Equal(t, "identical", string(clusters[0].Tier))
	assert.Equal(t, 1.0, clusters[0].Similarity)
	assert.Equal(t, []int{0, 1}, clusters[0].Members)
}
