package symlink_test

import (
	"io/fs"
	"os"
	"path/filepath"
	"syscall"
	"testing"
	"time"

	"github.com/arthur-debert/dotlink/pkg/filesystem"
	"github.com/arthur-debert/dotlink/pkg/symlink"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local)

const fixedStamp = "2024-01-01T00_00_00"

func fixedClock() time.Time { return fixedNow }

// faultFS wraps the OS filesystem and injects failures for selected calls.
type faultFS struct {
	filesystem.FS
	lstatErr     map[string]error
	renameErr    error
	symlinkHook  func(oldname, newname string)
	symlinkErr   error
	renameCalls  int
	symlinkCalls int
}

func newFaultFS() *faultFS {
	return &faultFS{FS: filesystem.NewOS(), lstatErr: map[string]error{}}
}

func (f *faultFS) Lstat(name string) (fs.FileInfo, error) {
	if err, ok := f.lstatErr[name]; ok {
		return nil, &fs.PathError{Op: "lstat", Path: name, Err: err}
	}
	return f.FS.Lstat(name)
}

func (f *faultFS) Rename(oldpath, newpath string) error {
	f.renameCalls++
	if f.renameErr != nil {
		return &os.LinkError{Op: "rename", Old: oldpath, New: newpath, Err: f.renameErr}
	}
	return f.FS.Rename(oldpath, newpath)
}

func (f *faultFS) Symlink(oldname, newname string) error {
	f.symlinkCalls++
	if f.symlinkHook != nil {
		f.symlinkHook(oldname, newname)
	}
	if f.symlinkErr != nil {
		return &os.LinkError{Op: "symlink", Old: oldname, New: newname, Err: f.symlinkErr}
	}
	return f.FS.Symlink(oldname, newname)
}

var _ filesystem.FS = (*faultFS)(nil)

// tempDir returns a canonical temporary directory so paths compare equal
// after symlink resolution on systems where the temp root is itself a link.
func tempDir(t *testing.T) string {
	t.Helper()
	dir, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	return dir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func newReconciler(opts ...symlink.Option) *symlink.Reconciler {
	base := []symlink.Option{
		symlink.WithClock(fixedClock),
		symlink.WithLogger(zerolog.Nop()),
	}
	return symlink.New(append(base, opts...)...)
}

func readlink(t *testing.T, path string) string {
	t.Helper()
	target, err := os.Readlink(path)
	require.NoError(t, err)
	return target
}

func listDir(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

var errPermission = syscall.EACCES
