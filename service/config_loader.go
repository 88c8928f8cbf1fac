package service

import (
	"path/filepath"

	"github.com/ludo-technologies/pmdcheck/domain"
	"github.com/ludo-technologies/pmdcheck/internal/config"
)

// ConfigurationLoader loads configuration files and converts them into
// check requests
type ConfigurationLoader struct{}

// NewConfigurationLoader creates a new configuration loader service
func NewConfigurationLoader() *ConfigurationLoader {
	return &ConfigurationLoader{}
}

// Load loads configuration from configPath, discovering a config file from
// targetPath upward when no explicit path is given
func (c *ConfigurationLoader) Load(configPath, targetPath string) (*config.Config, error) {
	cfg, err := config.LoadConfigWithTarget(configPath, targetPath)
	if err != nil {
		return nil, domain.NewConfigError("failed to load configuration file", err)
	}
	return cfg, nil
}

// ToCheckRequest maps the loaded configuration onto one invocation request
// for the given check kind and module directory
func (c *ConfigurationLoader) ToCheckRequest(cfg *config.Config, kind domain.CheckKind,
	moduleDir string, executionRoot bool) domain.CheckRequest {

	gate := cfg.Pmd
	if kind == domain.KindCPD {
		gate = cfg.Cpd
	}

	return domain.CheckRequest{
		Kind:                   kind,
		ReportDir:              filepath.Join(moduleDir, cfg.Check.ReportDir),
		FailurePriority:        gate.FailPriority,
		FailOnViolation:        cfg.Check.FailOnViolation,
		Aggregate:              cfg.Check.Aggregate,
		ExecutionRoot:          executionRoot,
		Language:               cfg.Check.Language,
		Verbose:                cfg.Check.Verbose,
		PrintFailingErrors:     cfg.Check.PrintFailingErrors,
		ExcludeFromFailureFile: gate.ExcludeFromFailureFile,
		ExcludePathsFile:       gate.ExcludePathsFile,
	}
}
