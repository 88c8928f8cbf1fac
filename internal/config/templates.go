package config

import "fmt"

// Strictness represents how aggressively the gate blocks builds
type Strictness string

const (
	// StrictnessRelaxed only blocks on the most severe findings
	StrictnessRelaxed Strictness = "relaxed"

	// StrictnessStandard blocks on medium severity and worse
	StrictnessStandard Strictness = "standard"

	// StrictnessStrict blocks on every reported finding
	StrictnessStrict Strictness = "strict"
)

// StrictnessPreset holds threshold values for a strictness level
type StrictnessPreset struct {
	PmdFailPriority int
	Verbose         bool
}

// GetStrictnessPresets returns presets for the supported strictness levels.
// Lower priority values are more severe, so a relaxed gate uses a low
// failure priority and a strict gate the maximum.
func GetStrictnessPresets() map[Strictness]StrictnessPreset {
	return map[Strictness]StrictnessPreset{
		StrictnessRelaxed:  {PmdFailPriority: 1},
		StrictnessStandard: {PmdFailPriority: 3},
		StrictnessStrict:   {PmdFailPriority: 5, Verbose: true},
	}
}

// GetMinimalConfigTemplate returns a small config with essential options only
func GetMinimalConfigTemplate() string {
	return `# pmdcheck configuration
check:
  fail_on_violation: true
  report_dir: target

pmd:
  fail_priority: 5

cpd:
  fail_priority: 10
`
}

// GetFullConfigTemplate returns a documented configuration file for the
// given strictness level
func GetFullConfigTemplate(strictness Strictness) string {
	preset, ok := GetStrictnessPresets()[strictness]
	if !ok {
		preset = GetStrictnessPresets()[StrictnessStandard]
	}

	return fmt.Sprintf(`# pmdcheck configuration
# Checks PMD/CPD analysis reports against failure thresholds.

check:
  # Fail the run when the failure threshold is exceeded.
  # With false, violations are reported but never block.
  fail_on_violation: true

  # Run one consolidated check at the execution root instead of one
  # check per module.
  aggregate: false

  # Print every warning and failure after classification.
  verbose: %t

  # Print failing findings immediately as they are classified,
  # independently of verbose.
  print_failing_errors: false

  # Language tag of the checked unit. Non-matching units are skipped
  # unless aggregate is enabled.
  language: java

  # Directory the report files are read from, relative to the module.
  report_dir: target

pmd:
  # Findings with priority <= fail_priority fail the check (1 = most
  # severe, 5 = least). 5 fails on any violation.
  fail_priority: %d

  # Properties file listing rule names excluded from failure.
  # Matching findings are downgraded to warnings, not dropped.
  # exclude_from_failure_file: pmd-exclusions.properties

  # Gitignore-style pattern file; findings in matching source files are
  # downgraded to warnings.
  # exclude_paths_file: .pmdcheckignore

cpd:
  # Duplications carry priority 0, so any value >= 0 gates them.
  fail_priority: 10

  # Text file of comma-separated class lists allowed to duplicate.
  # exclude_from_failure_file: cpd-exclusions.txt

output:
  # Output format: text, json, yaml.
  format: text

workspace:
  # Bounded concurrency for --modules workspace checking.
  concurrency: 4
`, preset.Verbose, preset.PmdFailPriority)
}
