package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/opskit/opskit/internal/cli/prompt"
	"github.com/opskit/opskit/internal/logger"
	"github.com/opskit/opskit/pkg/atomicfile"
	"github.com/opskit/opskit/pkg/fatal"
	"github.com/spf13/cobra"
)

var (
	replaceContentFile    string
	replaceFollowSymlinks bool
	replaceBackupDir      string
	replaceSuffix         string
	replaceYes            bool
	replaceForce          bool
)

var replaceCmd = &cobra.Command{
	Use:   "replace <path>",
	Short: "Atomically replace a file's content",
	Long: `Replace the content of a file in place, preserving its owner, group,
and permission bits.

The new content is written to a temporary file in the target's directory,
a hard-link backup of the original is taken, and the temporary file is
linked into place. If the swap fails, the original is restored from the
backup. The target must not be a symlink unless --follow-symlinks is set.

Examples:
  # Replace from a file
  opskit replace /etc/motd --content-file new-motd.txt

  # Replace from stdin
  cat new-motd.txt | opskit replace /etc/motd --content-file -

  # Replace through a symlink, keeping the backup elsewhere
  opskit replace /etc/alternatives/editor --content-file ed.txt \
    --follow-symlinks --backup-dir /var/backups`,
	Args: cobra.ExactArgs(1),
	RunE: runReplace,
}

func init() {
	replaceCmd.Flags().StringVar(&replaceContentFile, "content-file", "", "File holding the new content ('-' for stdin)")
	replaceCmd.Flags().BoolVar(&replaceFollowSymlinks, "follow-symlinks", false, "Replace the symlink's resolved target instead of refusing")
	replaceCmd.Flags().StringVar(&replaceBackupDir, "backup-dir", "", "Directory for the transient backup link (default: target's directory)")
	replaceCmd.Flags().StringVar(&replaceSuffix, "suffix", "", "Backup name suffix (default: _orig)")
	replaceCmd.Flags().BoolVarP(&replaceYes, "yes", "y", false, "Skip the confirmation prompt")
	replaceCmd.Flags().BoolVarP(&replaceForce, "force", "f", false, "Skip the confirmation prompt")
	_ = replaceCmd.MarkFlagRequired("content-file")
}

// readContent reads the replacement content from a file or stdin.
func readContent(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

func runReplace(cmd *cobra.Command, args []string) error {
	target := args[0]

	content, err := readContent(replaceContentFile)
	if err != nil {
		return fmt.Errorf("failed to read content: %w", err)
	}

	ok, err := prompt.ConfirmWithForce(
		fmt.Sprintf("Replace content of %s", target),
		replaceYes || replaceForce,
	)
	if err != nil {
		// promptui swallows the Ctrl+C signal in raw mode, so map the
		// abort to the interrupt exit code here.
		if prompt.IsAborted(err) {
			return fatal.New(fatal.ExitInterrupt, "Halted via interrupt.")
		}
		return err
	}
	if !ok {
		logger.Info("replace declined by operator", "path", target)
		return nil
	}

	r := atomicfile.Replacer{
		FollowSymlinks: replaceFollowSymlinks || cfg.Replace.FollowSymlinks,
		BackupDir:      replaceBackupDir,
		BackupSuffix:   replaceSuffix,
		Logger:         logger.Ops{},
	}
	if r.BackupDir == "" {
		r.BackupDir = cfg.Backup.Dir
	}
	if r.BackupSuffix == "" {
		r.BackupSuffix = cfg.Backup.Suffix
	}

	if err := r.Replace(target, content); err != nil {
		return err
	}

	logger.Info("file replaced", "path", target)
	return nil
}
