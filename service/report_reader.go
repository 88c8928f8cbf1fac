package service

import (
	"encoding/xml"
	"os"
	"strings"

	"github.com/ludo-technologies/pmdcheck/domain"
)

// pmdReport mirrors the PMD findings report schema (pmd.xml)
type pmdReport struct {
	XMLName xml.Name  `xml:"pmd"`
	Files   []pmdFile `xml:"file"`
}

type pmdFile struct {
	Name       string         `xml:"name,attr"`
	Violations []pmdViolation `xml:"violation"`
}

type pmdViolation struct {
	BeginLine int    `xml:"beginline,attr"`
	EndLine   int    `xml:"endline,attr"`
	Rule      string `xml:"rule,attr"`
	Ruleset   string `xml:"ruleset,attr"`
	Package   string `xml:"package,attr"`
	Class     string `xml:"class,attr"`
	Method    string `xml:"method,attr"`
	Priority  int    `xml:"priority,attr"`
	Text      string `xml:",chardata"`
}

// cpdReport mirrors the CPD duplication report schema (cpd.xml)
type cpdReport struct {
	XMLName      xml.Name         `xml:"pmd-cpd"`
	Duplications []cpdDuplication `xml:"duplication"`
}

type cpdDuplication struct {
	Lines        int           `xml:"lines,attr"`
	Tokens       int           `xml:"tokens,attr"`
	Files        []cpdFile     `xml:"file"`
	CodeFragment string        `xml:"codefragment"`
}

type cpdFile struct {
	Line int    `xml:"line,attr"`
	Path string `xml:"path,attr"`
}

// ReportReader parses on-disk analysis reports into finding sequences
type ReportReader struct{}

// NewReportReader creates a new report reader
func NewReportReader() *ReportReader {
	return &ReportReader{}
}

// Read parses the report at path for the given check kind.
// Findings are returned in report order.
func (r *ReportReader) Read(kind domain.CheckKind, path string) ([]domain.Finding, error) {
	if kind == domain.KindCPD {
		return r.readDuplications(path)
	}
	return r.readViolations(path)
}

func (r *ReportReader) readViolations(path string) ([]domain.Finding, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, domain.NewReportReadError(path, err)
	}
	defer f.Close()

	var report pmdReport
	if err := xml.NewDecoder(f).Decode(&report); err != nil {
		return nil, domain.NewReportParseError(path, err)
	}

	var findings []domain.Finding
	for _, file := range report.Files {
		for _, v := range file.Violations {
			findings = append(findings, domain.RuleViolation{
				Rule:         v.Rule,
				Ruleset:      v.Ruleset,
				Package:      v.Package,
				Class:        v.Class,
				Method:       v.Method,
				File:         file.Name,
				BeginLine:    v.BeginLine,
				EndLine:      v.EndLine,
				RulePriority: v.Priority,
				Text:         strings.TrimSpace(v.Text),
			})
		}
	}
	return findings, nil
}

func (r *ReportReader) readDuplications(path string) ([]domain.Finding, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, domain.NewReportReadError(path, err)
	}
	defer f.Close()

	var report cpdReport
	if err := xml.NewDecoder(f).Decode(&report); err != nil {
		return nil, domain.NewReportParseError(path, err)
	}

	var findings []domain.Finding
	for _, d := range report.Duplications {
		files := make([]domain.DuplicatedFile, 0, len(d.Files))
		for _, df := range d.Files {
			files = append(files, domain.DuplicatedFile{
				Path: df.Path,
				Line: df.Line,
			})
		}
		findings = append(findings, domain.Duplication{
			Lines:        d.Lines,
			Tokens:       d.Tokens,
			Files:        files,
			CodeFragment: strings.TrimSpace(d.CodeFragment),
		})
	}
	return findings, nil
}
