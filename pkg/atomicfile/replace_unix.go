//go:build !windows

package atomicfile

import (
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"
)

// modeMask keeps the standard permission range: rwx bits plus setuid,
// setgid, and sticky. File type bits never leak onto the replacement.
const modeMask = 0o7777

// Replace swaps the content of path with content. On return with a nil
// error the path refers to the new content with the original owner uid,
// group gid, and permission bits.
//
// Failure modes, in protocol order:
//   - ErrSymlinkGuard: path is or traverses a symlink and FollowSymlinks is
//     false; nothing was touched. The whole path is resolved, so a
//     symlinked parent directory trips the guard too.
//   - wrapped I/O errors from stat, temp creation, chown, or chmod; the
//     original file is untouched (chown requires privilege when the caller
//     does not own the file).
//   - ErrBackupConflict: the backup name is taken; the original is untouched.
//   - *SwapError: the new content could not be linked into place. Rolled()
//     distinguishes a successful rollback from the unrecovered case where
//     the original path is left missing and the backup link survives.
func (r *Replacer) Replace(path string, content []byte) error {
	log := r.log()

	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("atomicfile: resolving %s: %w", path, err)
	}
	real, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return fmt.Errorf("atomicfile: resolving %s: %w", abs, err)
	}
	if abs != real {
		if !r.FollowSymlinks {
			return fmt.Errorf("%w: %s resolves to %s", ErrSymlinkGuard, abs, real)
		}
		// The swap applies to the resolved file; symlinks along the
		// path stay in place.
		abs = real
	}
	dir := filepath.Dir(abs)

	var st unix.Stat_t
	if err := unix.Stat(abs, &st); err != nil {
		return fmt.Errorf("atomicfile: stat %s: %w", abs, err)
	}
	perms := uint32(st.Mode) & modeMask

	temp, err := WriteTemp(dir, content)
	if err != nil {
		return err
	}
	log.Debug("created temp file", "path", temp)

	if err := unix.Chown(temp, int(st.Uid), int(st.Gid)); err != nil {
		os.Remove(temp)
		return fmt.Errorf("atomicfile: chown %s to %d:%d: %w", temp, st.Uid, st.Gid, err)
	}
	if err := unix.Chmod(temp, perms); err != nil {
		os.Remove(temp)
		return fmt.Errorf("atomicfile: chmod %s to %o: %w", temp, perms, err)
	}

	backup, err := BackUp(abs, r.BackupDir, r.suffix())
	if err != nil {
		os.Remove(temp)
		return err
	}

	// Destructive step. The content stays reachable through the backup
	// link until the swap completes.
	if err := os.Remove(abs); err != nil {
		os.Remove(temp)
		os.Remove(backup)
		return fmt.Errorf("atomicfile: unlinking %s: %w", abs, err)
	}

	link := r.linkfn
	if link == nil {
		link = os.Link
	}

	log.Debug("linking temp file to original path", "temp", temp, "path", abs)
	if linkErr := link(temp, abs); linkErr != nil {
		log.Debug("linking backup file to original path", "backup", backup, "path", abs)
		if rbErr := link(backup, abs); rbErr != nil {
			swapErr := &SwapError{Path: abs, Backup: backup, LinkErr: linkErr, RollbackErr: rbErr}
			log.Critical("swap and rollback both failed, original path missing",
				"path", abs, "backup", backup, "link_error", linkErr, "rollback_error", rbErr)
			// The temp file is kept too: with the original entry
			// gone, every remaining link is potential recovery
			// material.
			return swapErr
		}
		log.Error("swap failed, original content restored", "path", abs, "error", linkErr)
		os.Remove(temp)
		os.Remove(backup)
		return &SwapError{Path: abs, Backup: backup, LinkErr: linkErr}
	}

	log.Debug("deleting temp file and backup", "temp", temp, "backup", backup)
	os.Remove(temp)
	os.Remove(backup)

	return nil
}
