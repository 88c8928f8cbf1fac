package service

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ludo-technologies/pmdcheck/domain"
)

// TaskError represents a single module check failure
type TaskError struct {
	Module string
	Err    error
}

// Error implements the error interface
func (e TaskError) Error() string {
	return fmt.Sprintf("[%s] %v", e.Module, e.Err)
}

// Unwrap returns the underlying error
func (e TaskError) Unwrap() error {
	return e.Err
}

// AggregatedError collects all module check failures
type AggregatedError struct {
	Errors []TaskError
}

// Error implements the error interface
func (e *AggregatedError) Error() string {
	if len(e.Errors) == 0 {
		return "no errors"
	}
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d module checks failed:\n", len(e.Errors)))
	for i, err := range e.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

// Unwrap returns the first error for errors.Is/As compatibility
func (e *AggregatedError) Unwrap() error {
	if len(e.Errors) == 0 {
		return nil
	}
	return e.Errors[0].Err
}

// ModuleCheck is the outcome of one module's check invocation
type ModuleCheck struct {
	// Module is the module directory, relative to the workspace root
	Module string

	// Result is the check outcome; nil when the invocation failed fatally
	Result *domain.CheckResult

	// Output holds the finding lines printed during classification
	Output string

	// Err is the fatal execution error, if any
	Err error
}

// WorkspaceRunner discovers per-module reports under a multi-module tree
// and runs one isolated check invocation per module. Invocations share no
// classifier state; only the fan-out is concurrent.
type WorkspaceRunner struct {
	concurrency int
	progress    domain.ProgressManager
	log         *zap.SugaredLogger
}

// NewWorkspaceRunner creates a workspace runner with bounded concurrency
func NewWorkspaceRunner(concurrency int, progress domain.ProgressManager, log *zap.SugaredLogger) *WorkspaceRunner {
	if concurrency < 1 {
		concurrency = 1
	}
	if progress == nil {
		progress = &NoOpProgressManager{}
	}
	return &WorkspaceRunner{
		concurrency: concurrency,
		progress:    progress,
		log:         log,
	}
}

// DiscoverModules finds every directory under root containing the expected
// report file, returning module paths in sorted order.
func DiscoverModules(root string, reportDir string, kind domain.CheckKind) ([]string, error) {
	var modules []string
	reportRel := filepath.Join(reportDir, kind.ReportFilename())

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		name := d.Name()
		if path != root && (strings.HasPrefix(name, ".") || name == "node_modules") {
			return filepath.SkipDir
		}
		candidate := filepath.Join(path, reportRel)
		if fileExists(candidate) {
			modules = append(modules, path)
		}
		// Nested modules keep their own reports; the report directory
		// itself never contains one.
		if name == filepath.Base(reportDir) {
			return filepath.SkipDir
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(modules)
	return modules, nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// Run checks every discovered module using base as the per-module request
// template. The base ReportDir is interpreted relative to each module.
// Fatal errors from individual modules are aggregated; the check continues
// for the remaining modules.
func (r *WorkspaceRunner) Run(ctx context.Context, root string, base domain.CheckRequest) ([]ModuleCheck, error) {
	modules, err := DiscoverModules(root, base.ReportDir, base.Kind)
	if err != nil {
		return nil, err
	}
	if len(modules) == 0 {
		return nil, domain.NewDomainError(domain.ErrCodeReportMissing,
			fmt.Sprintf("no %s reports found under %s", base.Kind.ReportFilename(), root), nil)
	}

	task := r.progress.StartTask(fmt.Sprintf("Checking %s reports", base.Kind), len(modules))
	defer task.Complete()

	checks := make([]ModuleCheck, len(modules))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)

	for i, module := range modules {
		i, module := i, module
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				checks[i] = ModuleCheck{Module: module, Err: err}
				return nil
			}

			// Isolated invocation: fresh service and buffered output per
			// module, flushed sequentially by the caller.
			var buf bytes.Buffer
			svc := NewCheckService(&buf, r.log)

			req := base
			req.ReportDir = filepath.Join(module, base.ReportDir)

			result, err := svc.Run(req)
			checks[i] = ModuleCheck{
				Module: module,
				Result: result,
				Output: buf.String(),
				Err:    err,
			}
			task.Increment(1)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	var agg AggregatedError
	for _, c := range checks {
		if c.Err != nil {
			agg.Errors = append(agg.Errors, TaskError{Module: c.Module, Err: c.Err})
		}
	}
	if len(agg.Errors) > 0 {
		return checks, &agg
	}
	return checks, nil
}
