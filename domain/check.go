package domain

// CheckKind selects which report flavor a check invocation runs against
type CheckKind string

const (
	// KindPMD checks the PMD findings report (pmd.xml)
	KindPMD CheckKind = "pmd"

	// KindCPD checks the CPD duplication report (cpd.xml)
	KindCPD CheckKind = "cpd"
)

// ReportFilename returns the fixed report filename for the check kind
func (k CheckKind) ReportFilename() string {
	if k == KindCPD {
		return "cpd.xml"
	}
	return "pmd.xml"
}

// Noun returns the user-facing noun used in summary messages
func (k CheckKind) Noun() string {
	if k == KindCPD {
		return "CPD duplication"
	}
	return "PMD violation"
}

// CheckRequest carries the full configuration of one check invocation.
// It is built once by the caller and treated as immutable by the pipeline.
type CheckRequest struct {
	// Kind selects the report flavor to check
	Kind CheckKind `json:"kind"`

	// ReportDir is the directory the report file is expected in
	ReportDir string `json:"report_dir"`

	// FailurePriority is the priority at or below which a finding fails
	// the check (inclusive)
	FailurePriority int `json:"failure_priority"`

	// FailOnViolation controls whether failures block the check
	FailOnViolation bool `json:"fail_on_violation"`

	// Aggregate enables one consolidated check at the execution root
	Aggregate bool `json:"aggregate"`

	// ExecutionRoot marks the current unit as the designated root unit
	ExecutionRoot bool `json:"execution_root"`

	// Language is the language tag of the current unit
	Language string `json:"language"`

	// Verbose prints every warning and failure after classification
	Verbose bool `json:"verbose"`

	// PrintFailingErrors prints each failure as it is classified,
	// independently of Verbose
	PrintFailingErrors bool `json:"print_failing_errors"`

	// ExcludeFromFailureFile is an optional exclusion file path: a
	// properties file keyed by rule name for PMD, a comma-separated
	// class list file for CPD. Empty means no exclusions.
	ExcludeFromFailureFile string `json:"exclude_from_failure_file,omitempty"`

	// ExcludePathsFile is an optional gitignore-style pattern file;
	// findings in matching source files are downgraded to warnings
	ExcludePathsFile string `json:"exclude_paths_file,omitempty"`
}

// ClassificationResult partitions a finding set into failures and warnings.
// Every finding lands in exactly one of the two sequences, in input order.
type ClassificationResult struct {
	Failures []Finding
	Warnings []Finding
}

// Total returns the number of classified findings
func (r ClassificationResult) Total() int {
	return len(r.Failures) + len(r.Warnings)
}

// CheckResult is the outcome of one check invocation
type CheckResult struct {
	// Kind is the report flavor that was checked
	Kind CheckKind `json:"kind" yaml:"kind"`

	// Skipped is true when gating prevented the check from running
	Skipped bool `json:"skipped" yaml:"skipped"`

	// Passed is the pass/fail decision. A skipped check passes.
	Passed bool `json:"passed" yaml:"passed"`

	// Message is the composed summary, empty when there is nothing to say
	Message string `json:"message,omitempty" yaml:"message,omitempty"`

	// ReportPath is the report file that was checked
	ReportPath string `json:"report_path,omitempty" yaml:"report_path,omitempty"`

	// FailureCount and WarningCount are the classified counts
	FailureCount int `json:"failure_count" yaml:"failure_count"`
	WarningCount int `json:"warning_count" yaml:"warning_count"`

	// Failures and Warnings list the classified findings for structured output
	Failures []FindingSummary `json:"failures,omitempty" yaml:"failures,omitempty"`
	Warnings []FindingSummary `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// FindingSummary is the serializable projection of a classified finding
type FindingSummary struct {
	Priority int    `json:"priority" yaml:"priority"`
	Key      string `json:"key" yaml:"key"`
	Detail   string `json:"detail" yaml:"detail"`
}

// Summarize projects a finding for structured output
func Summarize(f Finding) FindingSummary {
	return FindingSummary{
		Priority: f.Priority(),
		Key:      f.Identity(),
		Detail:   f.Describe(),
	}
}
