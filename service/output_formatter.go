package service

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	"github.com/ludo-technologies/pmdcheck/domain"
	"github.com/ludo-technologies/pmdcheck/internal/version"
)

// CheckReport wraps check results with output metadata for structured formats
type CheckReport struct {
	Version     string                `json:"version" yaml:"version"`
	GeneratedAt string                `json:"generated_at" yaml:"generated_at"`
	Passed      bool                  `json:"passed" yaml:"passed"`
	Results     []*domain.CheckResult `json:"results" yaml:"results"`
}

// OutputFormatter writes check results in the configured format
type OutputFormatter struct {
	passLabel *color.Color
	failLabel *color.Color
	skipLabel *color.Color
}

// NewOutputFormatter creates a new output formatter
func NewOutputFormatter() *OutputFormatter {
	return &OutputFormatter{
		passLabel: color.New(color.FgGreen, color.Bold),
		failLabel: color.New(color.FgRed, color.Bold),
		skipLabel: color.New(color.Faint),
	}
}

// Write writes the results of one run (one or more invocations) to w
func (f *OutputFormatter) Write(results []*domain.CheckResult, format string, w io.Writer) error {
	switch format {
	case "json":
		return f.writeJSON(results, w)
	case "yaml":
		return f.writeYAML(results, w)
	default:
		return f.writeText(results, w)
	}
}

func (f *OutputFormatter) writeText(results []*domain.CheckResult, w io.Writer) error {
	for _, r := range results {
		if r.Skipped {
			f.skipLabel.Fprint(w, "SKIP")
			fmt.Fprintf(w, ": %s check skipped\n", r.Kind.Noun())
			continue
		}
		if r.Passed {
			f.passLabel.Fprint(w, "PASS")
		} else {
			f.failLabel.Fprint(w, "FAIL")
		}
		if r.Message != "" {
			fmt.Fprintf(w, ": %s\n", r.Message)
		} else {
			fmt.Fprintf(w, ": no %ss found\n", r.Kind.Noun())
		}
	}
	return nil
}

func (f *OutputFormatter) writeJSON(results []*domain.CheckResult, w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(f.report(results))
}

func (f *OutputFormatter) writeYAML(results []*domain.CheckResult, w io.Writer) error {
	encoder := yaml.NewEncoder(w)
	defer encoder.Close()
	return encoder.Encode(f.report(results))
}

func (f *OutputFormatter) report(results []*domain.CheckResult) CheckReport {
	report := CheckReport{
		Version:     version.GetVersion(),
		GeneratedAt: time.Now().Format(time.RFC3339),
		Passed:      true,
		Results:     results,
	}
	for _, r := range results {
		if !r.Passed {
			report.Passed = false
		}
	}
	return report
}
