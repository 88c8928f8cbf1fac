package domain

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Finding is one reported issue parsed from an analysis report.
// Implementations are immutable once parsed.
type Finding interface {
	// Priority returns the severity as an ordered integer (lower = more severe)
	Priority() int

	// Identity returns the key used for exclusion matching
	Identity() string

	// Describe returns a one-line human-readable description
	Describe() string
}

// RuleViolation is a single rule violation from a PMD findings report
type RuleViolation struct {
	// Rule is the name of the violated rule
	Rule string `json:"rule" yaml:"rule"`

	// Ruleset is the ruleset the rule belongs to
	Ruleset string `json:"ruleset" yaml:"ruleset"`

	// Package is the package of the offending class
	Package string `json:"package,omitempty" yaml:"package,omitempty"`

	// Class is the offending class name
	Class string `json:"class,omitempty" yaml:"class,omitempty"`

	// Method is the offending method, if any
	Method string `json:"method,omitempty" yaml:"method,omitempty"`

	// File is the path of the analyzed source file
	File string `json:"file" yaml:"file"`

	// BeginLine and EndLine delimit the violation in the source file
	BeginLine int `json:"begin_line" yaml:"begin_line"`
	EndLine   int `json:"end_line" yaml:"end_line"`

	// RulePriority is the PMD priority (1 = most severe, 5 = least)
	RulePriority int `json:"priority" yaml:"priority"`

	// Text is the free-form description from the report
	Text string `json:"text" yaml:"text"`
}

// Priority returns the PMD rule priority
func (v RuleViolation) Priority() int {
	return v.RulePriority
}

// Identity returns the rule name
func (v RuleViolation) Identity() string {
	return v.Rule
}

// Describe formats the violation for display
func (v RuleViolation) Describe() string {
	name := v.Class
	if name == "" {
		name = v.File
	}
	return fmt.Sprintf("%s:%d Rule:%s Priority:%d %s",
		name, v.BeginLine, v.Rule, v.RulePriority, v.Text)
}

// DuplicatedFile is one occurrence of a duplicated block
type DuplicatedFile struct {
	// Path is the source file containing the duplication
	Path string `json:"path" yaml:"path"`

	// Line is the 1-based line the duplication starts at
	Line int `json:"line" yaml:"line"`
}

// ClassName derives the class name from the file path (base name without
// extension), matching how duplication exclusion lists identify classes.
func (f DuplicatedFile) ClassName() string {
	base := filepath.Base(f.Path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Duplication is a duplicated code block from a CPD report
type Duplication struct {
	// Lines is the number of duplicated lines
	Lines int `json:"lines" yaml:"lines"`

	// Tokens is the number of duplicated tokens
	Tokens int `json:"tokens" yaml:"tokens"`

	// Files are the occurrences of the duplicated block, in report order
	Files []DuplicatedFile `json:"files" yaml:"files"`

	// CodeFragment is the duplicated source excerpt
	CodeFragment string `json:"code_fragment,omitempty" yaml:"code_fragment,omitempty"`
}

// Priority returns 0: duplications carry no priority in the report, so they
// always sit at or below any failure threshold.
func (d Duplication) Priority() int {
	return 0
}

// Identity returns the comma-joined class names involved in the duplication
func (d Duplication) Identity() string {
	return strings.Join(d.Classes(), ",")
}

// Classes returns the class names involved in the duplication, in report order
func (d Duplication) Classes() []string {
	classes := make([]string, 0, len(d.Files))
	for _, f := range d.Files {
		classes = append(classes, f.ClassName())
	}
	return classes
}

// Describe formats the duplication for display
func (d Duplication) Describe() string {
	paths := make([]string, 0, len(d.Files))
	for _, f := range d.Files {
		paths = append(paths, fmt.Sprintf("%s:%d", f.Path, f.Line))
	}
	return fmt.Sprintf("Duplication of %d lines (%d tokens) in %s",
		d.Lines, d.Tokens, strings.Join(paths, ", "))
}
