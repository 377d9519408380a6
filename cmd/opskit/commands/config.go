package commands

import (
	"fmt"

	"github.com/opskit/opskit/internal/cli/output"
	"github.com/opskit/opskit/pkg/config"
	"github.com/spf13/cobra"
)

var (
	configShowOutput string
	configInitForce  bool
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage opskit configuration",
	Long:  `Inspect and initialize the opskit configuration file.`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	Long: `Display the configuration after merging file, environment, and
defaults.

Examples:
  # Human-readable table
  opskit config show

  # Machine-readable
  opskit config show -o yaml`,
	RunE: runConfigShow,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default configuration file",
	Long: `Write the default configuration to the default location
($XDG_CONFIG_HOME/opskit/config.yaml). Refuses to overwrite an existing
file unless --force is given.`,
	RunE: runConfigInit,
}

func init() {
	configShowCmd.Flags().StringVarP(&configShowOutput, "output", "o", "table", "Output format (table|json|yaml)")
	configInitCmd.Flags().BoolVarP(&configInitForce, "force", "f", false, "Overwrite an existing config file")

	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
}

// configView renders the effective configuration as key-value rows.
type configView struct {
	cfg *config.Config
}

func (v configView) Headers() []string {
	return []string{"KEY", "VALUE"}
}

func (v configView) Rows() [][]string {
	return [][]string{
		{"logging.level", v.cfg.Logging.Level},
		{"logging.format", v.cfg.Logging.Format},
		{"logging.output", v.cfg.Logging.Output},
		{"backup.suffix", v.cfg.Backup.Suffix},
		{"backup.dir", v.cfg.Backup.Dir},
		{"prompt.timeout", v.cfg.Prompt.Timeout.String()},
		{"prompt.attempts", fmt.Sprintf("%d", v.cfg.Prompt.Attempts)},
		{"replace.follow_symlinks", fmt.Sprintf("%t", v.cfg.Replace.FollowSymlinks)},
	}
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	format, err := output.ParseFormat(configShowOutput)
	if err != nil {
		return err
	}

	printer := output.NewPrinter(cmd.OutOrStdout(), format)
	if format == output.FormatTable {
		return printer.Print(configView{cfg: cfg})
	}
	return printer.Print(cfg)
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := config.GetDefaultConfigPath()

	if config.DefaultConfigExists() && !configInitForce {
		return fmt.Errorf("config file already exists at %s (use --force to overwrite)", path)
	}

	if err := config.SaveConfig(config.GetDefaultConfig(), path); err != nil {
		return err
	}

	fmt.Printf("Wrote %s\n", path)
	return nil
}
