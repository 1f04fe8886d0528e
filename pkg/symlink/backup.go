package symlink

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/arthur-debert/dotlink/pkg/errors"
)

// BackupTimeLayout is the timestamp appended to backup names. Colons are
// avoided so the names are safe on every filesystem.
const BackupTimeLayout = "2006-01-02T15_04_05"

// BackupPathFor returns a free sibling path for path using the current time.
// See Reconciler.BackupPathFor.
func BackupPathFor(path string) (string, error) {
	return New().BackupPathFor(path)
}

// BackupPathFor returns a sibling of path named <basename>-<timestamp>,
// suffixed with -1, -2, ... until no entry exists under that name. Dangling
// symlinks count as existing entries.
func (r *Reconciler) BackupPathFor(path string) (string, error) {
	// A trailing ".." names a different directory once cleaned
	cleaned := filepath.Clean(path)
	base := filepath.Base(cleaned)
	if path == "" || filepath.Base(path) == ".." || base == "." || base == ".." || base == string(filepath.Separator) {
		return "", errors.Newf(errors.ErrInvalidBackupTarget,
			"failed to get basename of %q", path).WithDetail("path", path)
	}

	dir := filepath.Dir(cleaned)
	stem := base + "-" + r.now().Format(BackupTimeLayout)

	candidate := filepath.Join(dir, stem)
	for i := 1; ; i++ {
		taken, err := r.exists(candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
		candidate = filepath.Join(dir, fmt.Sprintf("%s-%d", stem, i))
	}
}

func (r *Reconciler) exists(path string) (bool, error) {
	_, err := r.fs.Lstat(path)
	if err == nil {
		return true, nil
	}
	if stderrors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, errors.Wrapf(err, errors.ErrBackupFailed,
		"cannot probe backup candidate %s", path).WithOSError(err)
}
