// Package commands implements the CLI commands for the opskit binary.
package commands

import (
	"fmt"

	"github.com/opskit/opskit/internal/logger"
	"github.com/opskit/opskit/pkg/config"
	"github.com/spf13/cobra"
)

var (
	// Version information injected at build time.
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"

	// Global flags.
	cfgFile   string
	logLevel  string
	logFormat string

	// cfg is loaded by the root PersistentPreRunE and read by subcommands.
	cfg *config.Config
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "opskit",
	Short: "opskit - Operations scripting helpers",
	Long: `opskit bundles the primitives operations scripts keep reinventing:
atomic in-place file replacement with rollback, non-clobbering hard-link
backups, command execution with working-directory and privilege control,
timed operator confirmation, and hostname validation.

Use "opskit [command] --help" for more information about a command.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		// CLI flags take precedence over file and environment.
		if logLevel != "" {
			cfg.Logging.Level = logLevel
		}
		if logFormat != "" {
			cfg.Logging.Format = logFormat
		}

		return logger.Init(logger.Config{
			Level:  cfg.Logging.Level,
			Format: cfg.Logging.Format,
			Output: cfg.Logging.Output,
		})
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

// GetRootCmd returns the root command for testing purposes.
func GetRootCmd() *cobra.Command {
	return rootCmd
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $XDG_CONFIG_HOME/opskit/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (DEBUG|INFO|WARN|ERROR|CRITICAL)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "log format (text|json)")

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(replaceCmd)
	rootCmd.AddCommand(backupCmd)
	rootCmd.AddCommand(execCmd)
	rootCmd.AddCommand(hostnameCmd)
	rootCmd.AddCommand(configCmd)
}
