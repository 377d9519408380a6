// Package atomicfile implements crash-safe in-place file replacement.
//
// Replace swaps a file's content so that any reader of the path sees either
// the old content or the new content in full, never a partial write. The
// original file's ownership and permission bits are carried onto the new
// content. A hard-link backup of the original inode is held for the duration
// of the swap so that a failed swap can be rolled back without data loss.
//
// The protocol is not transactional across every step: a process killed
// between the unlink of the original path and the re-link of the new content
// leaves no entry at the target path. The backup link (<target><suffix>)
// survives in that window and recovery is a manual re-link from it.
//
// Replace provides no mutual exclusion against other processes racing on the
// same path. Callers needing multi-writer safety must serialize externally.
package atomicfile

import (
	"errors"
	"fmt"
)

// DefaultBackupSuffix is appended to the target's base name to form the
// backup link name when Replacer.BackupSuffix is empty.
const DefaultBackupSuffix = "_orig"

var (
	// ErrSymlinkGuard is returned when the target path is or traverses a
	// symlink and FollowSymlinks is false. The absolute path is compared
	// against its fully resolved form, so a symlinked parent directory
	// trips the guard as well. Nothing has been mutated.
	ErrSymlinkGuard = errors.New("atomicfile: path resolves through a symlink")

	// ErrBackupConflict is returned when a file already exists at the
	// computed backup path. Backups are never overwritten and nothing has
	// been mutated.
	ErrBackupConflict = errors.New("atomicfile: backup path already exists")

	// ErrInvalidPath is returned when a path has no usable file name
	// portion (for example "/" or an empty string).
	ErrInvalidPath = errors.New("atomicfile: path has no file name portion")
)

// SwapError reports a failure to install the new content after the original
// directory entry was removed. If RollbackErr is nil the backup link was
// restored onto the original path and the file is unchanged from the
// caller's perspective. If RollbackErr is non-nil the original path is
// missing and the backup link at Backup is the only remaining reference to
// the old content; operator intervention is required.
type SwapError struct {
	Path        string
	Backup      string
	LinkErr     error
	RollbackErr error
}

// Rolled reports whether the original content was restored at Path.
func (e *SwapError) Rolled() bool { return e.RollbackErr == nil }

func (e *SwapError) Error() string {
	if e.Rolled() {
		return fmt.Sprintf("atomicfile: swap of %s failed, original content restored: %v", e.Path, e.LinkErr)
	}
	return fmt.Sprintf("atomicfile: swap of %s failed and rollback failed, original path is missing, backup retained at %s: link: %v, rollback: %v",
		e.Path, e.Backup, e.LinkErr, e.RollbackErr)
}

func (e *SwapError) Unwrap() error { return e.LinkErr }

// Logger is the logging capability consumed by this package. It is satisfied
// by logger.Ops. A nil Logger falls back to a writer that prints error and
// critical diagnostics directly to stderr so fatal conditions are never
// silently lost.
type Logger interface {
	Debug(msg string, args ...any)
	Error(msg string, args ...any)
	Critical(msg string, args ...any)
}

// Replacer performs atomic file replacement. The zero value is usable: it
// refuses symlinks, places backups next to the target with the default
// suffix, and logs through the fallback writer.
type Replacer struct {
	// FollowSymlinks permits the target path to be or traverse a
	// symlink. The replacement is applied to the fully resolved path,
	// leaving the symlinks themselves intact.
	FollowSymlinks bool

	// BackupDir is the directory for the transient backup link. Empty
	// means the target's directory. It must reside on the same filesystem
	// as the target for the hard link to succeed.
	BackupDir string

	// BackupSuffix is appended to the target's base name to form the
	// backup name. Empty means DefaultBackupSuffix.
	BackupSuffix string

	// Logger receives debug lines at each swap decision point and a
	// critical line if rollback fails. Nil selects the fallback writer.
	Logger Logger

	// linkfn is the swap-in primitive, replaceable for fault injection in
	// tests. Nil means the platform default.
	linkfn func(oldname, newname string) error
}

func (r *Replacer) suffix() string {
	if r.BackupSuffix == "" {
		return DefaultBackupSuffix
	}
	return r.BackupSuffix
}

func (r *Replacer) log() Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return fallbackLogger{}
}

// Replace swaps the content of path using a zero-value Replacer.
func Replace(path string, content []byte) error {
	var r Replacer
	return r.Replace(path, content)
}
