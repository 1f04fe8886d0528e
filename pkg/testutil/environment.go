package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// Environment is an isolated home and dotfiles root under one temp dir
type Environment struct {
	Base       string
	Root       string
	Home       string
	ConfigHome string
	StateHome  string
}

// NewEnvironment creates the directories and points HOME, XDG_CONFIG_HOME,
// XDG_STATE_HOME and DOTFILES_ROOT at them for the duration of the test.
// DOTLINK_* overrides that would change configuration are cleared.
func NewEnvironment(t *testing.T) *Environment {
	t.Helper()

	base := TempDir(t)
	env := &Environment{
		Base:       base,
		Root:       CreateDir(t, base, "dotfiles"),
		Home:       CreateDir(t, base, "home"),
		ConfigHome: filepath.Join(base, "home", ".config"),
		StateHome:  filepath.Join(base, "state"),
	}

	t.Setenv("HOME", env.Home)
	t.Setenv("XDG_CONFIG_HOME", env.ConfigHome)
	t.Setenv("XDG_STATE_HOME", env.StateHome)
	t.Setenv("DOTFILES_ROOT", env.Root)
	for _, key := range []string{"DOTLINK_LOG", "DOTLINK_LINKS", "DOTLINK_CREATE_PARENTS", "DOTLINK_OUTPUT__FORMAT"} {
		t.Setenv(key, "")
		_ = os.Unsetenv(key)
	}
	return env
}

// Source creates a file under the dotfiles root
func (e *Environment) Source(t *testing.T, rel, content string) string {
	t.Helper()
	return CreateFile(t, e.Root, rel, content)
}

// SourceDir creates a directory under the dotfiles root
func (e *Environment) SourceDir(t *testing.T, rel string) string {
	t.Helper()
	return CreateDir(t, e.Root, rel)
}

// InHome returns a path under the test home directory
func (e *Environment) InHome(rel string) string {
	return filepath.Join(e.Home, rel)
}

// Config writes dotlink.toml to the dotfiles root
func (e *Environment) Config(t *testing.T, content string) string {
	t.Helper()
	return CreateFile(t, e.Root, "dotlink.toml", content)
}
