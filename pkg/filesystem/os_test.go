package filesystem

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOS(t *testing.T) {
	fs := NewOS()
	assert.NotNil(t, fs)

	tmpDir := t.TempDir()
	testFile := filepath.Join(tmpDir, "test.txt")
	require.NoError(t, os.WriteFile(testFile, []byte("hello world"), 0644))

	// Lstat and Stat agree on a regular file
	info, err := fs.Lstat(testFile)
	require.NoError(t, err)
	assert.Equal(t, "test.txt", info.Name())

	// Symlink / Readlink round trip
	link := filepath.Join(tmpDir, "link")
	require.NoError(t, fs.Symlink(testFile, link))

	target, err := fs.Readlink(link)
	require.NoError(t, err)
	assert.Equal(t, testFile, target)

	linfo, err := fs.Lstat(link)
	require.NoError(t, err)
	assert.NotZero(t, linfo.Mode()&os.ModeSymlink)

	// MkdirAll and Rename
	subDir := filepath.Join(tmpDir, "sub", "dir")
	require.NoError(t, fs.MkdirAll(subDir, 0755))
	moved := filepath.Join(subDir, "moved.txt")
	require.NoError(t, fs.Rename(testFile, moved))
	_, err = fs.Lstat(testFile)
	assert.True(t, os.IsNotExist(err))
}

func TestCanonicalize(t *testing.T) {
	fs := NewOS()
	tmpDir, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)

	realDir := filepath.Join(tmpDir, "real")
	require.NoError(t, os.Mkdir(realDir, 0755))
	hop := filepath.Join(tmpDir, "hop")
	require.NoError(t, os.Symlink(realDir, hop))

	t.Run("resolves symlinks and dot segments", func(t *testing.T) {
		got, err := fs.Canonicalize(filepath.Join(hop, ".", "..", "hop"))
		require.NoError(t, err)
		assert.Equal(t, realDir, got)
	})

	t.Run("relative paths become absolute", func(t *testing.T) {
		wd, err := os.Getwd()
		require.NoError(t, err)
		require.NoError(t, os.Chdir(tmpDir))
		t.Cleanup(func() { _ = os.Chdir(wd) })

		got, err := fs.Canonicalize("hop")
		require.NoError(t, err)
		assert.Equal(t, realDir, got)
	})

	t.Run("missing path fails", func(t *testing.T) {
		_, err := fs.Canonicalize(filepath.Join(tmpDir, "missing"))
		assert.True(t, os.IsNotExist(err))
	})
}
