// Package testutil provides filesystem helpers for dotlink tests.
//
// Tests run against real temporary directories: symlink behaviour is the
// thing under test and in-memory filesystems do not model it faithfully.
// NewEnvironment additionally points HOME and the XDG variables into the
// temporary tree so nothing outside it is touched.
package testutil
