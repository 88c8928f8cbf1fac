package service

import (
	"bufio"
	"os"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"

	"github.com/ludo-technologies/pmdcheck/domain"
)

// ExclusionRegistry answers membership queries for findings that must not
// fail the check. It is loaded at most once per invocation and read-only
// afterwards. Matching findings are downgraded to warnings, never dropped.
type ExclusionRegistry struct {
	// rules holds excluded rule names, lowercased (PMD flavor)
	rules map[string]bool

	// classLines holds one class-name set per exclusion line (CPD flavor)
	classLines []map[string]bool

	// paths matches source file paths excluded by pattern
	paths *ignore.GitIgnore
}

// NewExclusionRegistry creates an empty registry that excludes nothing
func NewExclusionRegistry() *ExclusionRegistry {
	return &ExclusionRegistry{rules: make(map[string]bool)}
}

// LoadRuleExclusions loads a properties-style exclusion file for the PMD
// check. Each non-comment line names an excluded rule, optionally with a
// "=value" remainder that is ignored. Matching is case-insensitive.
func (x *ExclusionRegistry) LoadRuleExclusions(path string) error {
	lines, err := readExclusionLines(path)
	if err != nil {
		return err
	}
	for _, line := range lines {
		key := line
		if i := strings.IndexAny(line, "=:"); i >= 0 {
			key = line[:i]
		}
		key = strings.ToLower(strings.TrimSpace(key))
		if key != "" {
			x.rules[key] = true
		}
	}
	return nil
}

// LoadClassExclusions loads a duplication exclusion file for the CPD check.
// Each non-comment line is a comma-separated class list; a duplication is
// excluded when every class involved in it appears in one line's set.
func (x *ExclusionRegistry) LoadClassExclusions(path string) error {
	lines, err := readExclusionLines(path)
	if err != nil {
		return err
	}
	for _, line := range lines {
		set := make(map[string]bool)
		for _, class := range strings.Split(line, ",") {
			class = strings.ToLower(strings.TrimSpace(class))
			if class != "" {
				set[class] = true
			}
		}
		if len(set) > 0 {
			x.classLines = append(x.classLines, set)
		}
	}
	return nil
}

// LoadPathPatterns loads a gitignore-style pattern file. Findings whose
// source files all match the patterns are excluded from failure.
func (x *ExclusionRegistry) LoadPathPatterns(path string) error {
	gi, err := ignore.CompileIgnoreFile(path)
	if err != nil {
		return domain.NewExclusionLoadError(path, err)
	}
	x.paths = gi
	return nil
}

// IsExcluded reports whether the finding must be downgraded to a warning
func (x *ExclusionRegistry) IsExcluded(f domain.Finding) bool {
	switch v := f.(type) {
	case domain.RuleViolation:
		if x.rules[strings.ToLower(v.Rule)] {
			return true
		}
		return x.paths != nil && x.paths.MatchesPath(v.File)
	case domain.Duplication:
		for _, set := range x.classLines {
			if containsAllClasses(set, v.Classes()) {
				return true
			}
		}
		// Excluded by path only when every occurrence matches, otherwise
		// a non-excluded file is still implicated in the duplication.
		if x.paths != nil && len(v.Files) > 0 {
			for _, df := range v.Files {
				if !x.paths.MatchesPath(df.Path) {
					return false
				}
			}
			return true
		}
	}
	return false
}

func containsAllClasses(set map[string]bool, classes []string) bool {
	if len(classes) == 0 {
		return false
	}
	for _, class := range classes {
		if !set[strings.ToLower(class)] {
			return false
		}
	}
	return true
}

// readExclusionLines reads a line-oriented exclusion file, dropping blank
// lines and comments. A missing or unreadable file is a configuration
// error, fatal to the run.
func readExclusionLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, domain.NewExclusionLoadError(path, err)
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "!") {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, domain.NewExclusionLoadError(path, err)
	}
	return lines, nil
}
