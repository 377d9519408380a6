package commands

import (
	"os"

	"github.com/opskit/opskit/internal/cli/output"
	"github.com/opskit/opskit/pkg/fatal"
	"github.com/opskit/opskit/pkg/hostname"
	"github.com/spf13/cobra"
)

var hostnameQuiet bool

var hostnameCmd = &cobra.Command{
	Use:   "hostname <name>...",
	Short: "Validate hostnames",
	Long: `Check each name against the hostname rules: at most 253 characters,
labels of 1-63 characters built from letters, digits, and hyphens, no
label starting or ending with a hyphen, and not entirely numeric.

Exits non-zero if any name is invalid.

Examples:
  # Validate one name
  opskit hostname web-01.example.com

  # Validate several, printing a verdict table
  opskit hostname web-01 db_02 10.0.0.1

  # Scripted check, no output
  opskit hostname --quiet "$NEW_HOSTNAME"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runHostname,
}

func init() {
	hostnameCmd.Flags().BoolVarP(&hostnameQuiet, "quiet", "q", false, "Suppress output, report via exit status only")
}

func runHostname(cmd *cobra.Command, args []string) error {
	table := output.NewTableData("NAME", "VALID", "REASON")

	invalid := 0
	for _, name := range args {
		if err := hostname.Validate(name); err != nil {
			invalid++
			table.AddRow(name, "no", err.Error())
		} else {
			table.AddRow(name, "yes", "")
		}
	}

	if !hostnameQuiet {
		if err := output.PrintTable(os.Stdout, table); err != nil {
			return err
		}
	}

	if invalid > 0 {
		return fatal.Newf(fatal.ExitGeneric, "%d invalid hostname(s)", invalid)
	}
	return nil
}
