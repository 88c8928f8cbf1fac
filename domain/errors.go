package domain

import (
	"errors"
	"fmt"
)

// Error codes for fatal execution errors. A fatal error means the check
// could not run; it is distinct from a check that ran and failed.
const (
	// ErrCodeReportMissing: the report file does not exist, meaning the
	// analysis never ran. Always blocks, regardless of fail_on_violation.
	ErrCodeReportMissing = "REPORT_MISSING"

	// ErrCodeReportRead: the report file exists but could not be read
	ErrCodeReportRead = "REPORT_READ"

	// ErrCodeReportParse: the report file is structurally malformed
	ErrCodeReportParse = "REPORT_PARSE"

	// ErrCodeExclusionLoad: an exclusion file is missing or malformed
	ErrCodeExclusionLoad = "EXCLUSIONS_LOAD"

	// ErrCodeConfig: the configuration is invalid or could not be loaded
	ErrCodeConfig = "CONFIG_ERROR"
)

// DomainError is a typed error with a stable code
type DomainError struct {
	Code    string
	Message string
	Cause   error
}

// Error implements the error interface
func (e DomainError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause
func (e DomainError) Unwrap() error {
	return e.Cause
}

// NewDomainError creates a DomainError with the given code, message and cause
func NewDomainError(code, message string, cause error) error {
	return DomainError{Code: code, Message: message, Cause: cause}
}

// NewReportMissingError reports an absent report file
func NewReportMissingError(path string) error {
	return NewDomainError(ErrCodeReportMissing,
		fmt.Sprintf("unable to perform check, unable to find %s", path), nil)
}

// NewReportReadError reports an unreadable report file
func NewReportReadError(path string, cause error) error {
	return NewDomainError(ErrCodeReportRead,
		fmt.Sprintf("unable to read analysis results: %s", path), cause)
}

// NewReportParseError reports a malformed report file
func NewReportParseError(path string, cause error) error {
	return NewDomainError(ErrCodeReportParse,
		fmt.Sprintf("unable to parse analysis results: %s", path), cause)
}

// NewExclusionLoadError reports a missing or malformed exclusion file
func NewExclusionLoadError(path string, cause error) error {
	return NewDomainError(ErrCodeExclusionLoad,
		fmt.Sprintf("unable to load exclusions: %s", path), cause)
}

// NewConfigError reports an invalid configuration
func NewConfigError(message string, cause error) error {
	return NewDomainError(ErrCodeConfig, message, cause)
}

func hasCode(err error, code string) bool {
	var de DomainError
	return errors.As(err, &de) && de.Code == code
}

// IsReportMissing reports whether err means the report file was absent
func IsReportMissing(err error) bool {
	return hasCode(err, ErrCodeReportMissing)
}

// IsReportParse reports whether err means the report was malformed
func IsReportParse(err error) bool {
	return hasCode(err, ErrCodeReportParse)
}

// IsExclusionLoad reports whether err means an exclusion file failed to load
func IsExclusionLoad(err error) bool {
	return hasCode(err, ErrCodeExclusionLoad)
}
