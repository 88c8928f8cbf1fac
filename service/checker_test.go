package service

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ludo-technologies/pmdcheck/domain"
)

// writeReport lays out <module>/target/pmd.xml (or cpd.xml) and returns the
// report directory.
func writeReport(t *testing.T, kind domain.CheckKind, content string) string {
	t.Helper()
	reportDir := filepath.Join(t.TempDir(), "target")
	if err := os.MkdirAll(reportDir, 0755); err != nil {
		t.Fatalf("failed to create report dir: %v", err)
	}
	writeFile(t, reportDir, kind.ReportFilename(), content)
	return reportDir
}

func baseRequest(kind domain.CheckKind, reportDir string) domain.CheckRequest {
	return domain.CheckRequest{
		Kind:            kind,
		ReportDir:       reportDir,
		FailurePriority: 5,
		FailOnViolation: true,
		ExecutionRoot:   true,
		Language:        "java",
	}
}

func TestRun_AggregateNonRootSkips(t *testing.T) {
	// The report intentionally does not exist: a skipped check must never
	// try to read it.
	req := baseRequest(domain.KindPMD, "/nonexistent/target")
	req.Aggregate = true
	req.ExecutionRoot = false

	result, err := NewCheckService(nil, nil).Run(req)
	if err != nil {
		t.Fatalf("skipped check should not fail: %v", err)
	}
	if !result.Skipped || !result.Passed {
		t.Error("aggregate non-root unit should skip and pass")
	}
	if result.Message != "" {
		t.Errorf("skipped check should carry no message, got %q", result.Message)
	}
}

func TestRun_LanguageMismatchSkips(t *testing.T) {
	req := baseRequest(domain.KindPMD, "/nonexistent/target")
	req.Language = "scala"

	result, err := NewCheckService(nil, nil).Run(req)
	if err != nil {
		t.Fatalf("skipped check should not fail: %v", err)
	}
	if !result.Skipped || !result.Passed {
		t.Error("non-matching language without aggregation should skip and pass")
	}
}

func TestRun_AggregateOverridesLanguageGate(t *testing.T) {
	reportDir := writeReport(t, domain.KindPMD, samplePmdReport)
	req := baseRequest(domain.KindPMD, reportDir)
	req.Language = "scala"
	req.Aggregate = true

	result, err := NewCheckService(nil, nil).Run(req)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if result.Skipped {
		t.Error("aggregation at the root should run regardless of language")
	}
}

func TestRun_MissingReportIsFatal(t *testing.T) {
	req := baseRequest(domain.KindPMD, t.TempDir())
	// Missing report blocks even when violations would not
	req.FailOnViolation = false

	_, err := NewCheckService(nil, nil).Run(req)
	if err == nil {
		t.Fatal("missing report must be a fatal error")
	}
	if !domain.IsReportMissing(err) {
		t.Errorf("expected REPORT_MISSING error, got %v", err)
	}
}

func TestRun_FailsOnViolations(t *testing.T) {
	reportDir := writeReport(t, domain.KindPMD, samplePmdReport)
	req := baseRequest(domain.KindPMD, reportDir)

	result, err := NewCheckService(nil, nil).Run(req)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if result.Passed {
		t.Error("check should fail when failures exist and fail_on_violation is true")
	}
	if result.FailureCount != 3 || result.WarningCount != 0 {
		t.Errorf("expected 3 failures, 0 warnings, got %d/%d",
			result.FailureCount, result.WarningCount)
	}
	want := "You have 3 PMD violations. For more details see:" + result.ReportPath
	if result.Message != want {
		t.Errorf("unexpected message:\n got %q\nwant %q", result.Message, want)
	}
}

func TestRun_FailOnViolationFalsePassesWithCounts(t *testing.T) {
	reportDir := writeReport(t, domain.KindPMD, samplePmdReport)
	req := baseRequest(domain.KindPMD, reportDir)
	req.FailOnViolation = false

	result, err := NewCheckService(nil, nil).Run(req)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if !result.Passed {
		t.Error("check should pass when fail_on_violation is false")
	}
	if result.FailureCount != 3 {
		t.Errorf("message must still report the failure count, got %d", result.FailureCount)
	}
	if !strings.Contains(result.Message, "You have 3 PMD violations") {
		t.Errorf("message should report violations even when non-blocking, got %q", result.Message)
	}
}

func TestRun_ThresholdSplitsFailuresAndWarnings(t *testing.T) {
	reportDir := writeReport(t, domain.KindPMD, samplePmdReport)
	req := baseRequest(domain.KindPMD, reportDir)
	// Only the GodClass finding (priority 1) is at or below 2
	req.FailurePriority = 2

	result, err := NewCheckService(nil, nil).Run(req)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if result.FailureCount != 1 || result.WarningCount != 2 {
		t.Errorf("expected 1 failure and 2 warnings, got %d/%d",
			result.FailureCount, result.WarningCount)
	}
	if len(result.Failures) != 1 || result.Failures[0].Key != "GodClass" {
		t.Errorf("unexpected failures: %+v", result.Failures)
	}
}

func TestRun_ExclusionsDowngrade(t *testing.T) {
	reportDir := writeReport(t, domain.KindPMD, samplePmdReport)
	exclusionFile := writeFile(t, t.TempDir(), "exclusions.properties", "GodClass\n")

	req := baseRequest(domain.KindPMD, reportDir)
	req.ExcludeFromFailureFile = exclusionFile

	result, err := NewCheckService(nil, nil).Run(req)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if result.FailureCount != 2 {
		t.Errorf("expected 2 failures after exclusion, got %d", result.FailureCount)
	}
	if result.WarningCount != 1 {
		t.Errorf("excluded finding should surface as a warning, got %d warnings", result.WarningCount)
	}
	if result.Warnings[0].Key != "GodClass" {
		t.Errorf("excluded finding should keep its identity, got %+v", result.Warnings[0])
	}
}

func TestRun_MissingExclusionFileIsFatal(t *testing.T) {
	reportDir := writeReport(t, domain.KindPMD, samplePmdReport)
	req := baseRequest(domain.KindPMD, reportDir)
	req.ExcludeFromFailureFile = "/nonexistent/exclusions.properties"

	_, err := NewCheckService(nil, nil).Run(req)
	if !domain.IsExclusionLoad(err) {
		t.Errorf("expected EXCLUSIONS_LOAD error, got %v", err)
	}
}

func TestRun_VerbosePrintsWarningsThenFailures(t *testing.T) {
	reportDir := writeReport(t, domain.KindPMD, samplePmdReport)
	req := baseRequest(domain.KindPMD, reportDir)
	req.FailurePriority = 2
	req.Verbose = true

	var out bytes.Buffer
	_, err := NewCheckService(&out, nil).Run(req)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	text := out.String()
	firstWarning := strings.Index(text, "PMD Warning:")
	lastFailure := strings.LastIndex(text, "PMD Failure:")
	if firstWarning < 0 || lastFailure < 0 {
		t.Fatalf("verbose output should contain warnings and failures, got:\n%s", text)
	}
	if firstWarning > lastFailure {
		t.Error("verbose output must print warnings before failures")
	}
}

func TestRun_PrintFailingErrors(t *testing.T) {
	reportDir := writeReport(t, domain.KindPMD, samplePmdReport)
	req := baseRequest(domain.KindPMD, reportDir)
	req.FailurePriority = 2
	req.PrintFailingErrors = true

	var out bytes.Buffer
	_, err := NewCheckService(&out, nil).Run(req)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if !strings.Contains(out.String(), "PMD Failure: Main:40 Rule:GodClass") {
		t.Errorf("failing findings should print as classified, got:\n%s", out.String())
	}
	if strings.Contains(out.String(), "PMD Warning:") {
		t.Error("print_failing_errors alone should not print warnings")
	}
}

func TestRun_CpdCheck(t *testing.T) {
	reportDir := writeReport(t, domain.KindCPD, sampleCpdReport)
	req := baseRequest(domain.KindCPD, reportDir)
	req.FailurePriority = 10

	result, err := NewCheckService(nil, nil).Run(req)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if result.Passed {
		t.Error("duplications should fail the CPD check")
	}
	want := "You have 1 CPD duplication. For more details see:" + result.ReportPath
	if result.Message != want {
		t.Errorf("unexpected message:\n got %q\nwant %q", result.Message, want)
	}
}

func TestRun_CpdClassExclusion(t *testing.T) {
	reportDir := writeReport(t, domain.KindCPD, sampleCpdReport)
	exclusionFile := writeFile(t, t.TempDir(), "cpd-exclusions.txt", "Foo, Bar\n")

	req := baseRequest(domain.KindCPD, reportDir)
	req.FailurePriority = 10
	req.ExcludeFromFailureFile = exclusionFile

	result, err := NewCheckService(nil, nil).Run(req)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if !result.Passed {
		t.Error("excluded duplication should not fail the check")
	}
	if result.WarningCount != 1 {
		t.Errorf("excluded duplication should stay visible as a warning, got %d", result.WarningCount)
	}
}

func TestRun_CleanReportPassesSilently(t *testing.T) {
	reportDir := writeReport(t, domain.KindPMD,
		`<?xml version="1.0"?><pmd version="5.0"></pmd>`)
	req := baseRequest(domain.KindPMD, reportDir)

	result, err := NewCheckService(nil, nil).Run(req)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if !result.Passed {
		t.Error("clean report should pass")
	}
	if result.Message != "" {
		t.Errorf("clean report should produce no message, got %q", result.Message)
	}
}
