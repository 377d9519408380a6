package atomicfile

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// BackUp creates a hard link to path so the original inode stays reachable
// while the path itself is mutated. The link is named Base(path)+suffix and
// placed in targetDir (empty means the directory of path). It returns the
// backup path.
//
// An existing file at the backup path is never overwritten: link creation
// fails and the error wraps ErrBackupConflict. The source file is not
// modified on any failure path.
func BackUp(path, targetDir, suffix string) (string, error) {
	if suffix == "" {
		suffix = DefaultBackupSuffix
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("atomicfile: resolving %s: %w", path, err)
	}

	name := filepath.Base(abs)
	if name == "." || name == string(filepath.Separator) {
		return "", fmt.Errorf("%w: %s", ErrInvalidPath, path)
	}

	if targetDir == "" {
		targetDir = filepath.Dir(abs)
	}
	backup := filepath.Join(targetDir, name+suffix)

	if err := os.Link(abs, backup); err != nil {
		if errors.Is(err, fs.ErrExist) {
			return "", fmt.Errorf("%w: %s", ErrBackupConflict, backup)
		}
		return "", fmt.Errorf("atomicfile: linking backup %s: %w", backup, err)
	}

	return backup, nil
}
