package service

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	"github.com/ludo-technologies/pmdcheck/domain"
)

func sampleResult(passed bool) *domain.CheckResult {
	return &domain.CheckResult{
		Kind:         domain.KindPMD,
		Passed:       passed,
		Message:      "You have 2 PMD violations. For more details see:target/pmd.xml",
		ReportPath:   "target/pmd.xml",
		FailureCount: 2,
	}
}

func TestWriteText(t *testing.T) {
	color.NoColor = true

	var buf bytes.Buffer
	f := NewOutputFormatter()
	if err := f.Write([]*domain.CheckResult{sampleResult(false)}, "text", &buf); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	out := buf.String()
	if !strings.HasPrefix(out, "FAIL: ") {
		t.Errorf("failing result should print FAIL, got %q", out)
	}
	if !strings.Contains(out, "You have 2 PMD violations") {
		t.Errorf("text output should contain the composed message, got %q", out)
	}
}

func TestWriteText_PassAndSkip(t *testing.T) {
	color.NoColor = true

	passed := sampleResult(true)
	skipped := &domain.CheckResult{Kind: domain.KindCPD, Skipped: true, Passed: true}

	var buf bytes.Buffer
	if err := NewOutputFormatter().Write([]*domain.CheckResult{passed, skipped}, "text", &buf); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "PASS: ") {
		t.Errorf("passing result should print PASS, got %q", out)
	}
	if !strings.Contains(out, "SKIP: ") {
		t.Errorf("skipped result should print SKIP, got %q", out)
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := NewOutputFormatter().Write([]*domain.CheckResult{sampleResult(false)}, "json", &buf); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	var report CheckReport
	if err := json.Unmarshal(buf.Bytes(), &report); err != nil {
		t.Fatalf("output should be valid JSON: %v", err)
	}
	if report.Passed {
		t.Error("report should not pass when a result failed")
	}
	if len(report.Results) != 1 || report.Results[0].FailureCount != 2 {
		t.Errorf("unexpected report results: %+v", report.Results)
	}
	if report.GeneratedAt == "" || report.Version == "" {
		t.Error("report should carry version and timestamp metadata")
	}
}

func TestWriteYAML(t *testing.T) {
	var buf bytes.Buffer
	if err := NewOutputFormatter().Write([]*domain.CheckResult{sampleResult(true)}, "yaml", &buf); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	var report CheckReport
	if err := yaml.Unmarshal(buf.Bytes(), &report); err != nil {
		t.Fatalf("output should be valid YAML: %v", err)
	}
	if !report.Passed {
		t.Error("report should pass when every result passed")
	}
}
