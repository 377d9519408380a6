package commands

import (
	"fmt"

	"github.com/opskit/opskit/internal/cli/prompt"
	"github.com/opskit/opskit/pkg/run"
	"github.com/spf13/cobra"
)

var (
	execCwd    string
	execUID    int
	execGID    int
	execOnFail string
	execYes    bool
	execForce  bool
)

var execCmd = &cobra.Command{
	Use:   "exec [flags] -- <command> [args...]",
	Short: "Execute a command with failure handling",
	Long: `Execute a command, optionally in another working directory or as
another uid/gid, and handle a non-zero exit status per --on-fail:

  hard    fail immediately with the command's exit status (default)
  prompt  ask the operator whether to continue
  debug   log the outcome and continue regardless

With --on-fail prompt, --yes treats a failure as fatal (continuing was
never confirmed) and --force continues without asking.

Examples:
  # Fail hard on error
  opskit exec -- systemctl reload nginx

  # Run as another user, asking on failure
  opskit exec --uid 33 --gid 33 --on-fail prompt -- rm /var/www/cache.lock

  # Best-effort cleanup
  opskit exec --on-fail debug -- tmpwatch 24 /tmp`,
	Args: cobra.MinimumNArgs(1),
	RunE: runExec,
}

func init() {
	execCmd.Flags().StringVar(&execCwd, "cwd", "", "Working directory for the command")
	execCmd.Flags().IntVar(&execUID, "uid", -1, "Run as this uid (requires privilege)")
	execCmd.Flags().IntVar(&execGID, "gid", -1, "Run as this gid (requires privilege)")
	execCmd.Flags().StringVar(&execOnFail, "on-fail", "hard", "Failure handling (hard|prompt|debug)")
	execCmd.Flags().BoolVarP(&execYes, "yes", "y", false, "With --on-fail prompt, treat failure as fatal")
	execCmd.Flags().BoolVarP(&execForce, "force", "f", false, "With --on-fail prompt, continue without asking")
}

func runExec(cmd *cobra.Command, args []string) error {
	c := run.Command{
		Args: args,
		Dir:  execCwd,
	}
	if execUID >= 0 {
		uid := uint32(execUID)
		c.UID = &uid
	}
	if execGID >= 0 {
		gid := uint32(execGID)
		c.GID = &gid
	}

	ctx := cmd.Context()

	switch execOnFail {
	case "hard":
		res, err := run.RunFailHard(ctx, c)
		if err != nil {
			return err
		}
		if res.Stdout != "" {
			fmt.Println(res.Stdout)
		}
		return nil
	case "debug":
		_, err := run.RunDebug(ctx, c)
		return err
	case "prompt":
		p := prompt.Prompter{
			In:       cmd.InOrStdin(),
			Out:      cmd.OutOrStdout(),
			Timeout:  cfg.Prompt.Timeout,
			Attempts: cfg.Prompt.Attempts,
		}
		opts := run.PromptOptions{Yes: execYes, Force: execForce}
		res, err := run.RunFailPrompt(ctx, c, opts, p.RequestYes)
		if err != nil {
			return err
		}
		if res.Stdout != "" {
			fmt.Println(res.Stdout)
		}
		return nil
	default:
		return fmt.Errorf("invalid --on-fail mode: %q (valid: hard, prompt, debug)", execOnFail)
	}
}
