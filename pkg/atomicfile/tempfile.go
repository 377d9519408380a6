package atomicfile

import (
	"fmt"
	"os"
)

// tempPattern names scratch files so leftovers from a crashed swap are
// recognizable. The directory entry lives only for the duration of Replace.
const tempPattern = ".opskit-*.tmp"

// WriteTemp writes content to a uniquely named file in dir and returns its
// path. The file is fully written, synced, and closed before WriteTemp
// returns, so a concurrent reader opening the returned path never observes a
// partial write.
//
// Replace requires dir to be the target's own directory so the later hard
// link stays on one filesystem.
func WriteTemp(dir string, content []byte) (string, error) {
	f, err := os.CreateTemp(dir, tempPattern)
	if err != nil {
		return "", fmt.Errorf("atomicfile: creating temp file in %s: %w", dir, err)
	}

	if _, err := f.Write(content); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", fmt.Errorf("atomicfile: writing temp file %s: %w", f.Name(), err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", fmt.Errorf("atomicfile: syncing temp file %s: %w", f.Name(), err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("atomicfile: closing temp file %s: %w", f.Name(), err)
	}

	return f.Name(), nil
}
