package service

import (
	"github.com/ludo-technologies/pmdcheck/domain"
)

// FailureSink receives each failure immediately as it is classified
type FailureSink func(f domain.Finding)

// ViolationClassifier partitions findings into failures and warnings
type ViolationClassifier struct{}

// NewViolationClassifier creates a new classifier
func NewViolationClassifier() *ViolationClassifier {
	return &ViolationClassifier{}
}

// Classify splits findings into failures and warnings. A finding fails when
// its priority is at or below failurePriority (inclusive) and it is not
// excluded; everything else, including excluded findings that meet the
// threshold, becomes a warning. The partition is total and stable: every
// finding lands in exactly one sequence, in input order.
//
// onFailure, if non-nil, is invoked for each failure as it is classified.
func (c *ViolationClassifier) Classify(findings []domain.Finding, failurePriority int,
	exclusions *ExclusionRegistry, onFailure FailureSink) domain.ClassificationResult {

	var result domain.ClassificationResult
	for _, f := range findings {
		if f.Priority() <= failurePriority && !exclusions.IsExcluded(f) {
			result.Failures = append(result.Failures, f)
			if onFailure != nil {
				onFailure(f)
			}
		} else {
			result.Warnings = append(result.Warnings, f)
		}
	}
	return result
}
