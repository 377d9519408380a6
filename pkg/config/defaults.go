package config

import (
	"strings"

	"github.com/opskit/opskit/internal/cli/prompt"
	"github.com/opskit/opskit/pkg/atomicfile"
)

// ApplyDefaults sets default values for any unspecified configuration fields.
//
// Zero values (0, "", false) are replaced with defaults; explicit values are
// preserved.
func ApplyDefaults(cfg *Config) {
	applyLoggingDefaults(&cfg.Logging)
	applyBackupDefaults(&cfg.Backup)
	applyPromptDefaults(&cfg.Prompt)
}

// applyLoggingDefaults sets logging defaults and normalizes values.
func applyLoggingDefaults(cfg *LoggingConfig) {
	if cfg.Level == "" {
		cfg.Level = "INFO"
	}
	// Normalize log level to uppercase for consistent internal representation
	cfg.Level = strings.ToUpper(cfg.Level)

	if cfg.Format == "" {
		cfg.Format = "text"
	}
	cfg.Format = strings.ToLower(cfg.Format)

	if cfg.Output == "" {
		cfg.Output = "stderr"
	}
}

func applyBackupDefaults(cfg *BackupConfig) {
	if cfg.Suffix == "" {
		cfg.Suffix = atomicfile.DefaultBackupSuffix
	}
}

func applyPromptDefaults(cfg *PromptConfig) {
	if cfg.Timeout == 0 {
		cfg.Timeout = prompt.DefaultTimeout
	}
	if cfg.Attempts == 0 {
		cfg.Attempts = prompt.DefaultAttempts
	}
}

// GetDefaultConfig returns a configuration with every field at its default.
func GetDefaultConfig() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}
