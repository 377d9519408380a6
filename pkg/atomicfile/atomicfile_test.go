//go:build !windows

package atomicfile

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// tempDir returns a canonical per-test directory. The guard compares paths
// against their resolved form, and t.TempDir can itself sit behind a symlink
// (macOS TMPDIR), which would trip it for every target.
func tempDir(t *testing.T) string {
	t.Helper()
	dir, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	return dir
}

func writeTarget(t *testing.T, dir, name, content string, mode os.FileMode) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), mode))
	// WriteFile applies the umask; force the exact mode.
	require.NoError(t, os.Chmod(path, mode))
	return path
}

func dirEntries(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestReplace_EndToEnd(t *testing.T) {
	dir := tempDir(t)
	path := writeTarget(t, dir, "x", "old", 0o640)

	before, err := os.Stat(path)
	require.NoError(t, err)
	beforeSys := before.Sys().(*syscall.Stat_t)

	require.NoError(t, Replace(path, []byte("new")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))

	after, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o640), after.Mode().Perm())

	afterSys := after.Sys().(*syscall.Stat_t)
	assert.Equal(t, beforeSys.Uid, afterSys.Uid)
	assert.Equal(t, beforeSys.Gid, afterSys.Gid)

	// No temp or backup residue.
	assert.Equal(t, []string{"x"}, dirEntries(t, dir))
}

func TestReplace_Idempotent(t *testing.T) {
	dir := tempDir(t)
	path := writeTarget(t, dir, "x", "old", 0o644)

	require.NoError(t, Replace(path, []byte("new")))
	require.NoError(t, Replace(path, []byte("new")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))
	assert.Equal(t, []string{"x"}, dirEntries(t, dir))
}

func TestReplace_SymlinkGuard(t *testing.T) {
	dir := tempDir(t)
	target := writeTarget(t, dir, "real", "old", 0o644)
	link := filepath.Join(dir, "alias")
	require.NoError(t, os.Symlink(target, link))

	err := Replace(link, []byte("new"))
	require.ErrorIs(t, err, ErrSymlinkGuard)

	// Both the symlink and its target are untouched.
	fi, err := os.Lstat(link)
	require.NoError(t, err)
	assert.NotZero(t, fi.Mode()&os.ModeSymlink)

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "old", string(data))
}

func TestReplace_FollowSymlink(t *testing.T) {
	dir := tempDir(t)
	target := writeTarget(t, dir, "real", "old", 0o644)
	link := filepath.Join(dir, "alias")
	require.NoError(t, os.Symlink(target, link))

	r := Replacer{FollowSymlinks: true}
	require.NoError(t, r.Replace(link, []byte("new")))

	// The symlink survives and the resolved file carries the new content.
	fi, err := os.Lstat(link)
	require.NoError(t, err)
	assert.NotZero(t, fi.Mode()&os.ModeSymlink)

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))
}

func TestReplace_SymlinkedParentGuard(t *testing.T) {
	dir := tempDir(t)
	realDir := filepath.Join(dir, "real")
	require.NoError(t, os.Mkdir(realDir, 0o755))
	target := writeTarget(t, realDir, "f", "old", 0o644)
	alias := filepath.Join(dir, "alias")
	require.NoError(t, os.Symlink(realDir, alias))

	// The final component is a regular file, but the path traverses a
	// symlinked directory.
	err := Replace(filepath.Join(alias, "f"), []byte("new"))
	require.ErrorIs(t, err, ErrSymlinkGuard)

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "old", string(data))
	assert.Equal(t, []string{"f"}, dirEntries(t, realDir))
}

func TestReplace_FollowSymlinkedParent(t *testing.T) {
	dir := tempDir(t)
	realDir := filepath.Join(dir, "real")
	require.NoError(t, os.Mkdir(realDir, 0o755))
	target := writeTarget(t, realDir, "f", "old", 0o644)
	alias := filepath.Join(dir, "alias")
	require.NoError(t, os.Symlink(realDir, alias))

	r := Replacer{FollowSymlinks: true}
	require.NoError(t, r.Replace(filepath.Join(alias, "f"), []byte("new")))

	// The directory symlink survives and the resolved file was swapped.
	fi, err := os.Lstat(alias)
	require.NoError(t, err)
	assert.NotZero(t, fi.Mode()&os.ModeSymlink)

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))
}

func TestReplace_BackupConflict(t *testing.T) {
	dir := tempDir(t)
	path := writeTarget(t, dir, "x", "old", 0o644)
	conflict := writeTarget(t, dir, "x_orig", "keep me", 0o644)

	err := Replace(path, []byte("new"))
	require.ErrorIs(t, err, ErrBackupConflict)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "old", string(data))

	data, err = os.ReadFile(conflict)
	require.NoError(t, err)
	assert.Equal(t, "keep me", string(data))

	// The temp file was cleaned up before returning.
	assert.ElementsMatch(t, []string{"x", "x_orig"}, dirEntries(t, dir))
}

func TestReplace_RollbackOnSwapFailure(t *testing.T) {
	dir := tempDir(t)
	path := writeTarget(t, dir, "x", "old", 0o644)

	r := Replacer{
		linkfn: func(oldname, newname string) error {
			if strings.Contains(filepath.Base(oldname), ".opskit-") {
				return errors.New("injected link failure")
			}
			return os.Link(oldname, newname)
		},
	}

	err := r.Replace(path, []byte("new"))
	var swapErr *SwapError
	require.ErrorAs(t, err, &swapErr)
	assert.True(t, swapErr.Rolled())

	// Original content restored, scratch links gone.
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "old", string(data))
	assert.Equal(t, []string{"x"}, dirEntries(t, dir))
}

func TestReplace_UnrecoveredSwapFailure(t *testing.T) {
	dir := tempDir(t)
	path := writeTarget(t, dir, "x", "old", 0o644)

	r := Replacer{
		linkfn: func(oldname, newname string) error {
			return errors.New("injected link failure")
		},
	}

	err := r.Replace(path, []byte("new"))
	var swapErr *SwapError
	require.ErrorAs(t, err, &swapErr)
	assert.False(t, swapErr.Rolled())

	// The original path is gone; the backup still holds the old content
	// for manual recovery.
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))

	data, err := os.ReadFile(swapErr.Backup)
	require.NoError(t, err)
	assert.Equal(t, "old", string(data))
}

func TestReplace_MissingTarget(t *testing.T) {
	dir := tempDir(t)
	err := Replace(filepath.Join(dir, "absent"), []byte("new"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrSymlinkGuard)
}

func TestReplace_CustomSuffixAndDir(t *testing.T) {
	dir := tempDir(t)
	backupDir := tempDir(t)
	path := writeTarget(t, dir, "x", "old", 0o644)

	r := Replacer{BackupDir: backupDir, BackupSuffix: ".bak"}
	require.NoError(t, r.Replace(path, []byte("new")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))

	// Backup was transient in its custom directory too.
	assert.Empty(t, dirEntries(t, backupDir))
	assert.Equal(t, []string{"x"}, dirEntries(t, dir))
}
