package fs_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/docsync"
	"github.com/fwojciec/docsync/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSafelyClearDirectory(t *testing.T) {
	t.Parallel()

	t.Run("never follows symlinks", func(t *testing.T) {
		t.Parallel()

		external := t.TempDir()
		externalFiles := map[string]string{
			"one.md":          "1",
			"two.md":          "2",
			"nested/three.md": "3",
			"nested/x/four":   "4",
		}
		writeTree(t, external, externalFiles)

		target := filepath.Join(t.TempDir(), "docset")
		writeTree(t, target, map[string]string{"README.md": "r", "docs/guide.md": "g"})
		require.NoError(t, os.Symlink(external, filepath.Join(target, "local")))
		require.NoError(t, os.Symlink(external, filepath.Join(target, "docs", "deep-link")))
		require.NoError(t, os.Symlink(filepath.Join(external, "one.md"), filepath.Join(target, "file-link.md")))

		err := fs.SafelyClearDirectory(target)

		require.NoError(t, err)
		_, statErr := os.Lstat(target)
		assert.True(t, os.IsNotExist(statErr))
		assertTree(t, external, externalFiles)
	})

	t.Run("missing directory is a no-op", func(t *testing.T) {
		t.Parallel()

		err := fs.SafelyClearDirectory(filepath.Join(t.TempDir(), "missing"))

		require.NoError(t, err)
	})

	t.Run("dangling symlink", func(t *testing.T) {
		t.Parallel()

		target := t.TempDir()
		require.NoError(t, os.Symlink(filepath.Join(target, "gone"), filepath.Join(target, "dangling")))

		require.NoError(t, fs.SafelyClearDirectory(target))

		_, statErr := os.Lstat(target)
		assert.True(t, os.IsNotExist(statErr))
	})
}

func TestGetDirectoryInfo(t *testing.T) {
	t.Parallel()

	t.Run("counts direct entries by type", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeTree(t, dir, map[string]string{"a.md": "a", "b.md": "b", "sub/c.md": "c"})
		require.NoError(t, os.Symlink(t.TempDir(), filepath.Join(dir, "link")))

		info, err := fs.GetDirectoryInfo(dir)

		require.NoError(t, err)
		assert.Equal(t, docsync.DirectoryInfo{Files: 2, Directories: 1, Symlinks: 1, Total: 4}, info)
	})

	t.Run("missing directory is all zero", func(t *testing.T) {
		t.Parallel()

		info, err := fs.GetDirectoryInfo(filepath.Join(t.TempDir(), "missing"))

		require.NoError(t, err)
		assert.Equal(t, docsync.DirectoryInfo{}, info)
	})
}

func TestContainsSymlinks(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"a.md": "a"})
	assert.False(t, fs.ContainsSymlinks(dir))

	require.NoError(t, os.Symlink(t.TempDir(), filepath.Join(dir, "link")))
	assert.True(t, fs.ContainsSymlinks(dir))

	assert.False(t, fs.ContainsSymlinks(filepath.Join(dir, "missing")))
}

func TestRemoveFiles(t *testing.T) {
	t.Parallel()

	t.Run("removes listed files and prunes empty directories", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeTree(t, dir, map[string]string{
			"README.md":         "r",
			"docs/guide/a.md":   "a",
			"docs/other.md":     "o",
			"keep/unrelated.md": "k",
		})

		n, err := fs.RemoveFiles(dir, []string{"README.md", "docs/guide/a.md", "docs/other.md", "already/gone.md"})

		require.NoError(t, err)
		assert.Equal(t, 3, n)
		_, statErr := os.Stat(filepath.Join(dir, "docs"))
		assert.True(t, os.IsNotExist(statErr))
		assertTree(t, dir, map[string]string{"keep/unrelated.md": "k"})
		_, statErr = os.Stat(dir)
		assert.NoError(t, statErr)
	})

	t.Run("refuses paths escaping the target", func(t *testing.T) {
		t.Parallel()

		parent := t.TempDir()
		dir := filepath.Join(parent, "docset")
		writeTree(t, parent, map[string]string{"outside.md": "o", "docset/in.md": "i"})

		_, err := fs.RemoveFiles(dir, []string{"../outside.md"})

		require.Error(t, err)
		assert.Equal(t, docsync.EUNSAFE, docsync.ErrorCode(err))
		assertTree(t, parent, map[string]string{"outside.md": "o"})
	})

	t.Run("leaves files behind a linked directory", func(t *testing.T) {
		t.Parallel()

		external := t.TempDir()
		writeTree(t, external, map[string]string{"guide.md": "USER"})
		dir := t.TempDir()
		writeTree(t, dir, map[string]string{"own.md": "o"})
		require.NoError(t, os.Symlink(external, filepath.Join(dir, "docs")))

		n, err := fs.RemoveFiles(dir, []string{"docs/guide.md", "own.md"})

		require.NoError(t, err)
		assert.Equal(t, 1, n)
		assertTree(t, external, map[string]string{"guide.md": "USER"})
		fi, err := os.Lstat(filepath.Join(dir, "docs"))
		require.NoError(t, err)
		assert.NotZero(t, fi.Mode()&os.ModeSymlink)
	})

	t.Run("unlinks a listed symlink without touching its target", func(t *testing.T) {
		t.Parallel()

		external := t.TempDir()
		writeTree(t, external, map[string]string{"x.md": "x"})
		dir := t.TempDir()
		require.NoError(t, os.Symlink(filepath.Join(external, "x.md"), filepath.Join(dir, "x.md")))

		n, err := fs.RemoveFiles(dir, []string{"x.md"})

		require.NoError(t, err)
		assert.Equal(t, 1, n)
		assertTree(t, external, map[string]string{"x.md": "x"})
	})
}
