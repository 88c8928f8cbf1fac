package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Default check settings. PMD priorities run 1..5 with 1 the most severe;
// a failure priority of 5 fails the check on any violation.
const (
	// DefaultPmdFailPriority fails on any reported violation
	DefaultPmdFailPriority = 5

	// DefaultCpdFailPriority sits above the fixed duplication priority (0),
	// so any duplication is a failure candidate
	DefaultCpdFailPriority = 10

	// DefaultReportDir is the build output directory reports are read from
	DefaultReportDir = "target"

	// DefaultLanguage is the unit language the checks apply to
	DefaultLanguage = "java"

	// DefaultConcurrency bounds workspace-mode fan-out
	DefaultConcurrency = 4
)

// Config represents the main configuration structure
type Config struct {
	// Check holds settings shared by every check invocation
	Check CheckConfig `json:"check" mapstructure:"check" yaml:"check"`

	// Pmd holds settings specific to the PMD findings check
	Pmd GateConfig `json:"pmd" mapstructure:"pmd" yaml:"pmd"`

	// Cpd holds settings specific to the CPD duplication check
	Cpd GateConfig `json:"cpd" mapstructure:"cpd" yaml:"cpd"`

	// Output holds output formatting configuration
	Output OutputConfig `json:"output" mapstructure:"output" yaml:"output"`

	// Workspace holds multi-module discovery configuration
	Workspace WorkspaceConfig `json:"workspace,omitempty" mapstructure:"workspace" yaml:"workspace"`
}

// CheckConfig holds settings shared by the PMD and CPD checks
type CheckConfig struct {
	// FailOnViolation controls whether a failing check blocks the build
	FailOnViolation bool `json:"failOnViolation" mapstructure:"fail_on_violation" yaml:"fail_on_violation"`

	// Aggregate runs one consolidated check at the execution root
	Aggregate bool `json:"aggregate" mapstructure:"aggregate" yaml:"aggregate"`

	// Verbose prints every warning and failure after classification
	Verbose bool `json:"verbose" mapstructure:"verbose" yaml:"verbose"`

	// PrintFailingErrors prints failures immediately as they are classified
	PrintFailingErrors bool `json:"printFailingErrors" mapstructure:"print_failing_errors" yaml:"print_failing_errors"`

	// Language is the language tag of the current unit
	Language string `json:"language" mapstructure:"language" yaml:"language"`

	// ReportDir is the directory report files are expected in,
	// relative to the checked module
	ReportDir string `json:"reportDir" mapstructure:"report_dir" yaml:"report_dir"`
}

// GateConfig holds per-check threshold and exclusion settings
type GateConfig struct {
	// FailPriority is the priority at or below which a finding fails
	// the check (inclusive)
	FailPriority int `json:"failPriority" mapstructure:"fail_priority" yaml:"fail_priority"`

	// ExcludeFromFailureFile is the optional exclusion file path
	ExcludeFromFailureFile string `json:"excludeFromFailureFile,omitempty" mapstructure:"exclude_from_failure_file" yaml:"exclude_from_failure_file"`

	// ExcludePathsFile is an optional gitignore-style pattern file;
	// findings in matching source files never fail the check
	ExcludePathsFile string `json:"excludePathsFile,omitempty" mapstructure:"exclude_paths_file" yaml:"exclude_paths_file"`
}

// OutputConfig holds configuration for output formatting
type OutputConfig struct {
	// Format specifies the output format: text, json, yaml
	Format string `json:"format" mapstructure:"format" yaml:"format"`
}

// WorkspaceConfig holds configuration for multi-module workspace mode
type WorkspaceConfig struct {
	// Concurrency bounds how many module checks run at once
	Concurrency int `json:"concurrency" mapstructure:"concurrency" yaml:"concurrency"`
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() *Config {
	return &Config{
		Check: CheckConfig{
			FailOnViolation: true,
			Language:        DefaultLanguage,
			ReportDir:       DefaultReportDir,
		},
		Pmd: GateConfig{
			FailPriority: DefaultPmdFailPriority,
		},
		Cpd: GateConfig{
			FailPriority: DefaultCpdFailPriority,
		},
		Output: OutputConfig{
			Format: "text",
		},
		Workspace: WorkspaceConfig{
			Concurrency: DefaultConcurrency,
		},
	}
}

// LoadConfig loads configuration from the specified path.
// An empty path falls back to discovery from the current directory.
func LoadConfig(configPath string) (*Config, error) {
	return LoadConfigWithTarget(configPath, "")
}

// LoadConfigWithTarget loads configuration with target path context:
// when no explicit config path is given, candidate files are searched
// from the target directory upward.
func LoadConfigWithTarget(configPath string, targetPath string) (*Config, error) {
	if configPath == "" {
		configPath = findDefaultConfig(targetPath)
	}
	return loadConfigFromFile(configPath)
}

// loadConfigFromFile reads and parses a configuration file
func loadConfigFromFile(configPath string) (*Config, error) {
	if configPath == "" {
		return DefaultConfig(), nil
	}

	// New viper instance per load to avoid shared state
	v := viper.New()
	config := DefaultConfig()
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
	}

	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// Validate validates the configuration values
func (c *Config) Validate() error {
	if c.Pmd.FailPriority < 1 || c.Pmd.FailPriority > 5 {
		return fmt.Errorf("pmd fail_priority must be between 1 and 5, got %d", c.Pmd.FailPriority)
	}
	if c.Cpd.FailPriority < 0 {
		return fmt.Errorf("cpd fail_priority cannot be negative, got %d", c.Cpd.FailPriority)
	}
	if c.Check.ReportDir == "" {
		return fmt.Errorf("report_dir must not be empty")
	}

	switch c.Output.Format {
	case "text", "json", "yaml":
	default:
		return fmt.Errorf("invalid output format: %s (must be one of: text, json, yaml)", c.Output.Format)
	}

	if c.Workspace.Concurrency < 1 {
		return fmt.Errorf("workspace concurrency must be >= 1, got %d", c.Workspace.Concurrency)
	}

	return nil
}

// searchConfigInDirectory searches for configuration files in a specific directory
func searchConfigInDirectory(dir string, candidates []string) string {
	for _, candidate := range candidates {
		path := filepath.Join(dir, candidate)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// findDefaultConfig looks for configuration files in common locations.
// targetPath is the module directory being checked.
func findDefaultConfig(targetPath string) string {
	candidates := []string{
		"pmdcheck.yaml",
		"pmdcheck.yml",
		".pmdcheck.yaml",
		".pmdcheck.yml",
	}

	// Search from the target directory up to the filesystem root
	if targetPath != "" {
		absPath, err := filepath.Abs(targetPath)
		if err == nil {
			info, err := os.Stat(absPath)
			if err == nil && !info.IsDir() {
				absPath = filepath.Dir(absPath)
			}

			for dir := absPath; ; dir = filepath.Dir(dir) {
				if config := searchConfigInDirectory(dir, candidates); config != "" {
					return config
				}
				if parent := filepath.Dir(dir); parent == dir {
					break
				}
			}
		}
	}

	// Fallback to current directory
	if config := searchConfigInDirectory(".", candidates); config != "" {
		return config
	}

	// Check XDG config directory
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		if config := searchConfigInDirectory(filepath.Join(xdgConfig, "pmdcheck"), candidates); config != "" {
			return config
		}
	}

	if home, err := os.UserHomeDir(); err == nil {
		if config := searchConfigInDirectory(filepath.Join(home, ".config", "pmdcheck"), candidates); config != "" {
			return config
		}
	}

	return ""
}
