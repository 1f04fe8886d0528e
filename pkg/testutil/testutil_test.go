package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHelpers(t *testing.T) {
	dir := TempDir(t)

	file := CreateFile(t, dir, "a/b.txt", "content")
	AssertFileContent(t, file, "content")

	sub := CreateDir(t, dir, "x/y")
	info, err := os.Stat(sub)
	assert.NoError(t, err)
	assert.True(t, info.IsDir())

	link := filepath.Join(dir, "links", "l")
	CreateSymlink(t, file, link)
	assert.True(t, SymlinkExists(t, link))
	assert.False(t, SymlinkExists(t, file))
	AssertSymlink(t, link, file)

	dangling := filepath.Join(dir, "dangling")
	CreateSymlink(t, filepath.Join(dir, "nope"), dangling)
	assert.True(t, SymlinkExists(t, dangling))

	AssertNoFile(t, filepath.Join(dir, "missing"))
}

func TestNewEnvironment(t *testing.T) {
	env := NewEnvironment(t)

	assert.Equal(t, env.Home, os.Getenv("HOME"))
	assert.Equal(t, env.ConfigHome, os.Getenv("XDG_CONFIG_HOME"))
	assert.Equal(t, env.Root, os.Getenv("DOTFILES_ROOT"))
	assert.Equal(t, filepath.Join(env.Home, ".zshenv"), env.InHome(".zshenv"))

	path := env.Source(t, "home/.zshenv", "x")
	assert.Equal(t, filepath.Join(env.Root, "home", ".zshenv"), path)
	AssertFileContent(t, path, "x")
}
