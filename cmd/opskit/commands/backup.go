package commands

import (
	"fmt"

	"github.com/opskit/opskit/pkg/atomicfile"
	"github.com/spf13/cobra"
)

var (
	backupDir    string
	backupSuffix string
)

var backupCmd = &cobra.Command{
	Use:   "backup <path>",
	Short: "Create a hard-link backup of a file",
	Long: `Create a hard link to a file under its name plus a suffix, either in
the file's own directory or in a target directory on the same filesystem.

The backup never overwrites an existing file: if the backup name is
already taken, the command fails and both files are left untouched.

Examples:
  # Back up next to the original (creates /etc/motd_orig)
  opskit backup /etc/motd

  # Back up into another directory with a custom suffix
  opskit backup /etc/motd --dir /var/backups --suffix .bak`,
	Args: cobra.ExactArgs(1),
	RunE: runBackup,
}

func init() {
	backupCmd.Flags().StringVar(&backupDir, "dir", "", "Directory for the backup link (default: the file's directory)")
	backupCmd.Flags().StringVar(&backupSuffix, "suffix", "", "Backup name suffix (default: _orig)")
}

func runBackup(cmd *cobra.Command, args []string) error {
	dir := backupDir
	if dir == "" {
		dir = cfg.Backup.Dir
	}
	suffix := backupSuffix
	if suffix == "" {
		suffix = cfg.Backup.Suffix
	}

	backup, err := atomicfile.BackUp(args[0], dir, suffix)
	if err != nil {
		return err
	}

	fmt.Println(backup)
	return nil
}
