package symlink

import (
	stderrors "errors"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/arthur-debert/dotlink/pkg/errors"
	"github.com/arthur-debert/dotlink/pkg/filesystem"
	"github.com/arthur-debert/dotlink/pkg/logging"
	"github.com/rs/zerolog"
)

// Reconciler drives link paths to the "symlink points at original" state.
// A Reconciler holds no per-call state and can be reused.
type Reconciler struct {
	fs            filesystem.FS
	now           func() time.Time
	logger        zerolog.Logger
	dryRun        bool
	createParents bool
}

// Option configures a Reconciler.
type Option func(*Reconciler)

// WithFS replaces the OS filesystem.
func WithFS(fsys filesystem.FS) Option {
	return func(r *Reconciler) { r.fs = fsys }
}

// WithClock sets the time source used for backup names.
func WithClock(now func() time.Time) Option {
	return func(r *Reconciler) { r.now = now }
}

// WithLogger sets the logger used for diagnostics.
func WithLogger(logger zerolog.Logger) Option {
	return func(r *Reconciler) { r.logger = logger }
}

// WithDryRun makes Ensure report the planned action without touching the filesystem.
func WithDryRun(dryRun bool) Option {
	return func(r *Reconciler) { r.dryRun = dryRun }
}

// WithCreateParents makes Ensure create a missing parent directory of the link.
func WithCreateParents(create bool) Option {
	return func(r *Reconciler) { r.createParents = create }
}

// New creates a Reconciler over the OS filesystem.
func New(opts ...Option) *Reconciler {
	r := &Reconciler{
		fs:     filesystem.NewOS(),
		now:    time.Now,
		logger: logging.GetLogger("symlink"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// EnsureSymlink makes link a symbolic link to original using a default
// Reconciler. See Reconciler.Ensure.
func EnsureSymlink(original, link string) error {
	_, err := New().Ensure(original, link)
	return err
}

// Ensure makes link a symbolic link to original. An entry already at link
// that does not resolve to original is renamed to a backup first.
func (r *Reconciler) Ensure(original, link string) (*Result, error) {
	logger := r.logger.With().Str("original", original).Str("link", link).Logger()
	logger.Debug().Msg("Ensuring symlink exists")

	result, canonical, err := r.plan(original, link)
	if err != nil {
		return nil, err
	}

	if result.State == StateLinked {
		logger.Debug().Str("canonical", canonical).Msg("Symlink already exists")
		return result, nil
	}

	if r.dryRun {
		result.DryRun = true
		if result.State.NeedsReplacement() {
			backupPath, err := r.backupPathFor(link)
			if err != nil {
				return nil, err
			}
			result.BackupPath = backupPath
		}
		logger.Info().
			Str("action", string(result.Action)).
			Str("backup", result.BackupPath).
			Msg("Dry run, not changing anything")
		return result, nil
	}

	if result.State.NeedsReplacement() {
		backupPath, err := r.backup(link, logger)
		if err != nil {
			return nil, err
		}
		result.BackupPath = backupPath
	} else if r.createParents {
		parent := filepath.Dir(link)
		if err := r.fs.MkdirAll(parent, 0755); err != nil {
			return nil, errors.Wrapf(err, errors.ErrLinkCreationFailed,
				"failed to create parent directory %s", parent).
				WithOSError(err).
				WithDetail("link", link)
		}
	}

	return r.create(original, link, canonical, result, logger)
}

// Inspect classifies link against original without changing anything. The
// returned Action is the one Ensure would take.
func (r *Reconciler) Inspect(original, link string) (*Result, error) {
	result, _, err := r.plan(original, link)
	return result, err
}

// plan checks the original, probes the link and decides the action.
func (r *Reconciler) plan(original, link string) (*Result, string, error) {
	if _, err := r.fs.Lstat(original); err != nil {
		return nil, "", errors.Wrapf(err, errors.ErrOriginalNotFound,
			"error calling stat on original %s", original).
			WithOSError(err).
			WithDetail("original", original)
	}

	canonical, err := r.fs.Canonicalize(original)
	if err != nil {
		return nil, "", errors.Wrapf(err, errors.ErrCanonicalizationFailed,
			"failed to canonicalize %s", original).
			WithOSError(err).
			WithDetail("original", original)
	}

	state, current, err := r.probe(link, canonical)
	if err != nil {
		return nil, "", err
	}

	result := &Result{
		Original:      original,
		Link:          link,
		State:         state,
		CurrentTarget: current,
	}
	switch {
	case state == StateLinked:
		result.Action = ActionAlreadyLinked
	case state.NeedsReplacement():
		result.Action = ActionReplaced
	default:
		result.Action = ActionCreated
	}
	return result, canonical, nil
}

// probe classifies the entry at link. Only a not-found lstat means missing;
// any other failure is fatal.
func (r *Reconciler) probe(link, canonical string) (State, string, error) {
	info, err := r.fs.Lstat(link)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return StateMissing, "", nil
		}
		return "", "", errors.Wrapf(err, errors.ErrLinkProbeFailed, "can't stat %s", link).
			WithOSError(err).
			WithDetail("link", link)
	}

	if info.Mode()&fs.ModeSymlink == 0 {
		r.logger.Debug().Str("link", link).Msg("File exists but isn't a symlink")
		return StateNotSymlink, "", nil
	}

	target, err := r.fs.Readlink(link)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return StateMissing, "", nil
		}
		return "", "", errors.Wrapf(err, errors.ErrLinkProbeFailed, "can't read symlink %s", link).
			WithOSError(err).
			WithDetail("link", link)
	}

	resolved, err := r.resolveTarget(link, target)
	if err != nil {
		r.logger.Debug().
			Str("link", link).
			Str("target", target).
			Err(err).
			Msg("Symlink target cannot be resolved")
		return StateDangling, target, nil
	}
	if resolved == canonical {
		return StateLinked, target, nil
	}

	r.logger.Debug().
		Str("link", link).
		Str("target", resolved).
		Msg("Symlink pointing to different path")
	return StateWrongTarget, target, nil
}

// resolveTarget canonicalizes a stored symlink target. Relative targets are
// interpreted against the real directory holding the link, as the kernel does.
func (r *Reconciler) resolveTarget(link, target string) (string, error) {
	if !filepath.IsAbs(target) {
		parent, err := r.fs.Canonicalize(filepath.Dir(link))
		if err != nil {
			return "", err
		}
		target = filepath.Join(parent, target)
	}
	return r.fs.Canonicalize(target)
}

// backupPathFor keeps the naming error's code: INVALID_BACKUP_TARGET or
// BACKUP_FAILED.
func (r *Reconciler) backupPathFor(link string) (string, error) {
	backupPath, err := r.BackupPathFor(link)
	if err != nil {
		return "", errors.Wrapf(err, errors.GetErrorCode(err),
			"failed to get backup path for %s", link).WithDetail("link", link)
	}
	return backupPath, nil
}

// backup renames the entry at path to a fresh sibling name.
func (r *Reconciler) backup(path string, logger zerolog.Logger) (string, error) {
	backupPath, err := r.backupPathFor(path)
	if err != nil {
		return "", err
	}

	logger.Warn().
		Str("from", path).
		Str("to", backupPath).
		Msg("Renaming to avoid name collision")

	if err := r.fs.Rename(path, backupPath); err != nil {
		return "", errors.Wrapf(err, errors.ErrBackupFailed,
			"failed to rename %s to %s", path, backupPath).
			WithOSError(err).
			WithDetail("link", path).
			WithDetail("backup", backupPath)
	}
	return backupPath, nil
}

// create installs the symlink, tolerating a concurrent creator that produced
// the same link.
func (r *Reconciler) create(original, link, canonical string, result *Result, logger zerolog.Logger) (*Result, error) {
	err := r.fs.Symlink(original, link)
	if err == nil {
		logger.Info().Msg("Created symlink")
		return result, nil
	}

	if !stderrors.Is(err, fs.ErrExist) {
		return nil, errors.Wrapf(err, errors.ErrLinkCreationFailed,
			"error creating symlink %s -> %s", link, original).
			WithOSError(err).
			WithDetail("link", link).
			WithDetail("original", original).
			WithDetail("backup", result.BackupPath)
	}

	current, readErr := r.fs.Readlink(link)
	if readErr != nil {
		return nil, errors.Wrapf(readErr, errors.ErrLinkInconsistent,
			"%s appeared while creating the symlink and cannot be read", link).
			WithOSError(readErr).
			WithDetail("link", link)
	}

	if current == original {
		logger.Debug().Msg("Symlink already exists")
		result.Action = ActionRaceSatisfied
		result.CurrentTarget = current
		return result, nil
	}
	if resolved, err := r.resolveTarget(link, current); err == nil && resolved == canonical {
		logger.Debug().Str("target", current).Msg("Symlink already exists")
		result.Action = ActionRaceSatisfied
		result.CurrentTarget = current
		return result, nil
	}

	return nil, errors.Newf(errors.ErrLinkInconsistent,
		"symlink not correct: %s -> %s, expected %s", link, current, original).
		WithDetail("link", link).
		WithDetail("target", current).
		WithDetail("original", original)
}
