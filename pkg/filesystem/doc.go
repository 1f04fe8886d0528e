// Package filesystem provides the filesystem abstraction used by dotlink.
//
// The FS interface covers exactly the calls link reconciliation needs:
// lstat/stat probes, readlink, rename, symlink creation, parent directory
// creation and canonicalization. NewOS returns the implementation backed by
// the real operating system; tests wrap it to inject failures.
package filesystem
