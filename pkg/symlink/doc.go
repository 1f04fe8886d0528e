// Package symlink reconciles a single (original, link) pair so that link is
// a symbolic link pointing at original.
//
// # Overview
//
// EnsureSymlink is idempotent and non-destructive. It inspects the link path,
// classifies it, and only mutates the filesystem when the link is not already
// satisfied:
//
//	link state             action
//	---------------------  ---------------------------------------------
//	missing                create the symlink
//	linked (same target)   nothing
//	wrong_target           rename the existing link to a backup, create
//	dangling               rename the existing link to a backup, create
//	not_symlink            rename the file/directory to a backup, create
//
// "Same target" is decided on canonical paths: the original and the link's
// target are both fully resolved before comparison, so a link reaching the
// original through a chain of intermediate symlinks is already satisfied even
// when the stored target string differs. The symlink that gets created stores
// the original exactly as the caller passed it.
//
// # Backups
//
// Anything in the way is renamed, never deleted. The backup is a sibling of
// the link named
//
//	<basename>-<YYYY-MM-DD>T<HH>_<MM>_<SS>
//
// in local time. When that name is taken, -1, -2, ... is appended until a free
// name is found. The probe loop has no upper bound: collisions need one
// pre-existing sibling per attempt within the same second, which does not
// happen in practice for a dotfiles tool. If the rename fails the symlink is
// not created.
//
// # Races
//
// The reconciler assumes nobody else mutates the same link path while it
// runs, with one tolerated exception: if another process creates the correct
// link between the probe and the creation, the call still succeeds.
//
// # Errors
//
// Failures are *errors.DotlinkError values with one of the reconciliation
// codes (ORIGINAL_NOT_FOUND, CANONICALIZATION_FAILED, LINK_PROBE_FAILED,
// BACKUP_FAILED, INVALID_BACKUP_TARGET, LINK_CREATION_FAILED,
// LINK_INCONSISTENT) and carry the paths involved plus the OS errno.
// A missing link is never confused with a link that cannot be probed.
package symlink
