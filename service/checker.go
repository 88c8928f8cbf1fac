package service

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/ludo-technologies/pmdcheck/domain"
	"github.com/ludo-technologies/pmdcheck/internal/logging"
)

// targetLanguage is the unit language the checks apply to. Units with a
// different language tag are skipped unless aggregation is enabled.
const targetLanguage = "java"

// CheckService orchestrates one check invocation: gating, report location,
// exclusion loading, classification and the pass/fail decision.
type CheckService struct {
	reader     *ReportReader
	classifier *ViolationClassifier
	out        io.Writer
	log        *zap.SugaredLogger
}

// NewCheckService creates a check service writing finding details to out.
// A nil out defaults to stdout; a nil logger discards debug output.
func NewCheckService(out io.Writer, log *zap.SugaredLogger) *CheckService {
	if out == nil {
		out = os.Stdout
	}
	if log == nil {
		log = logging.NewNop()
	}
	return &CheckService{
		reader:     NewReportReader(),
		classifier: NewViolationClassifier(),
		out:        out,
		log:        log,
	}
}

// Run executes the check described by req. The returned error is non-nil
// only for fatal execution errors (missing report, parse failure, bad
// exclusion list); a check that ran and found violations is reported
// through CheckResult.Passed, never as an error. Classification always
// completes fully before the decision, so counts are accurate either way.
func (s *CheckService) Run(req domain.CheckRequest) (*domain.CheckResult, error) {
	// Gate: in aggregation mode only the designated root unit checks;
	// without aggregation only matching-language units check.
	if req.Aggregate && !req.ExecutionRoot {
		return &domain.CheckResult{Kind: req.Kind, Skipped: true, Passed: true}, nil
	}
	if req.Language != targetLanguage && !req.Aggregate {
		return &domain.CheckResult{Kind: req.Kind, Skipped: true, Passed: true}, nil
	}

	reportPath := filepath.Join(req.ReportDir, req.Kind.ReportFilename())
	if _, err := os.Stat(reportPath); err != nil {
		// The analysis never ran. Always fatal, regardless of
		// fail_on_violation.
		return nil, domain.NewReportMissingError(reportPath)
	}

	exclusions, err := s.loadExclusions(req)
	if err != nil {
		return nil, err
	}

	findings, err := s.reader.Read(req.Kind, reportPath)
	if err != nil {
		return nil, err
	}

	var onFailure FailureSink
	if req.PrintFailingErrors {
		onFailure = func(f domain.Finding) {
			s.printFinding(req.Kind, f, "Failure")
		}
	}

	classified := s.classifier.Classify(findings, req.FailurePriority, exclusions, onFailure)

	if req.Verbose {
		// Warnings first, failures last. A failing finding may already
		// have been printed by print_failing_errors above; both print
		// paths are kept as independent triggers.
		for _, w := range classified.Warnings {
			s.printFinding(req.Kind, w, "Warning")
		}
		for _, f := range classified.Failures {
			s.printFinding(req.Kind, f, "Failure")
		}
	}

	failureCount := len(classified.Failures)
	warningCount := len(classified.Warnings)
	s.log.Debugf("%s failureCount: %d, warningCount: %d",
		strings.ToUpper(string(req.Kind)), failureCount, warningCount)

	result := &domain.CheckResult{
		Kind:         req.Kind,
		Passed:       !(failureCount > 0 && req.FailOnViolation),
		Message:      ComposeMessage(failureCount, warningCount, req.Kind.Noun(), reportPath),
		ReportPath:   reportPath,
		FailureCount: failureCount,
		WarningCount: warningCount,
	}
	for _, f := range classified.Failures {
		result.Failures = append(result.Failures, domain.Summarize(f))
	}
	for _, w := range classified.Warnings {
		result.Warnings = append(result.Warnings, domain.Summarize(w))
	}
	return result, nil
}

// loadExclusions builds the registry for this invocation. Exclusion files
// are loaded at most once; a missing or malformed file is fatal.
func (s *CheckService) loadExclusions(req domain.CheckRequest) (*ExclusionRegistry, error) {
	exclusions := NewExclusionRegistry()
	if req.ExcludeFromFailureFile != "" {
		var err error
		if req.Kind == domain.KindCPD {
			err = exclusions.LoadClassExclusions(req.ExcludeFromFailureFile)
		} else {
			err = exclusions.LoadRuleExclusions(req.ExcludeFromFailureFile)
		}
		if err != nil {
			return nil, err
		}
	}
	if req.ExcludePathsFile != "" {
		if err := exclusions.LoadPathPatterns(req.ExcludePathsFile); err != nil {
			return nil, err
		}
	}
	return exclusions, nil
}

func (s *CheckService) printFinding(kind domain.CheckKind, f domain.Finding, severity string) {
	fmt.Fprintf(s.out, "%s %s: %s\n", strings.ToUpper(string(kind)), severity, f.Describe())
}
