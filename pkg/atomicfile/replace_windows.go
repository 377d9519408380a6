//go:build windows

package atomicfile

import (
	"fmt"
	"os"
	"path/filepath"
)

// Replace swaps the content of path with content. Windows lacks the unlink
// and re-link sequence used on unix, so the swap primitive is an atomic
// rename of the temp file over the target, which keeps the same contract: a
// failed swap leaves the original entry in place and removes the scratch
// artifacts. Ownership is not carried (no uid/gid on this platform);
// permission bits are.
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
		abs = real
	}
	dir := filepath.Dir(abs)

	st, err := os.Stat(abs)
	if err != nil {
		return fmt.Errorf("atomicfile: stat %s: %w", abs, err)
	}

	temp, err := WriteTemp(dir, content)
	if err != nil {
		return err
	}
	log.Debug("created temp file", "path", temp)

	if err := os.Chmod(temp, st.Mode().Perm()); err != nil {
		os.Remove(temp)
		return fmt.Errorf("atomicfile: chmod %s: %w", temp, err)
	}

	backup, err := BackUp(abs, r.BackupDir, r.suffix())
	if err != nil {
		os.Remove(temp)
		return err
	}

	log.Debug("renaming temp file over original path", "temp", temp, "path", abs)
	if renameErr := os.Rename(temp, abs); renameErr != nil {
		// Rename never removed the original entry, so the file is
		// already in its pre-call state.
		log.Error("swap failed, original content untouched", "path", abs, "error", renameErr)
		os.Remove(temp)
		os.Remove(backup)
		return &SwapError{Path: abs, Backup: backup, LinkErr: renameErr}
	}

	log.Debug("deleting backup", "backup", backup)
	os.Remove(backup)

	return nil
}
