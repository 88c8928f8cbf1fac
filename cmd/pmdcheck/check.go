package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ludo-technologies/pmdcheck/domain"
	"github.com/ludo-technologies/pmdcheck/internal/config"
	"github.com/ludo-technologies/pmdcheck/internal/logging"
	"github.com/ludo-technologies/pmdcheck/service"
)

// checkOptions holds the flag values shared by the pmd and cpd commands
type checkOptions struct {
	failOnViolation    bool
	aggregate          bool
	executionRoot      bool
	language           string
	verbose            bool
	printFailingErrors bool
	excludeFile        string
	excludePathsFile   string
	failPriority       int
	reportDir          string
	format             string
	configPath         string
	modules            bool
	concurrency        int
	debug              bool
}

// addCheckFlags registers the shared check flag set on cmd
func addCheckFlags(cmd *cobra.Command, opts *checkOptions, defaultPriority int) {
	cmd.Flags().BoolVar(&opts.failOnViolation, "fail-on-violation", true,
		"Fail the run when the failure threshold is exceeded")
	cmd.Flags().BoolVar(&opts.aggregate, "aggregate", false,
		"Run one consolidated check at the execution root")
	cmd.Flags().BoolVar(&opts.executionRoot, "execution-root", true,
		"Treat the current unit as the designated root unit")
	cmd.Flags().StringVar(&opts.language, "language", config.DefaultLanguage,
		"Language tag of the checked unit")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false,
		"Print every warning and failure after classification")
	cmd.Flags().BoolVar(&opts.printFailingErrors, "print-failing-errors", false,
		"Print failing findings immediately as they are classified")
	cmd.Flags().StringVar(&opts.excludeFile, "exclude-from-failure-file", "",
		"Exclusion file; matching findings are downgraded to warnings")
	cmd.Flags().StringVar(&opts.excludePathsFile, "exclude-paths-file", "",
		"Gitignore-style pattern file excluding findings by source path")
	cmd.Flags().IntVar(&opts.failPriority, "fail-priority", defaultPriority,
		"Priority at or below which a finding fails the check (lower = more severe)")
	cmd.Flags().StringVar(&opts.reportDir, "report-dir", config.DefaultReportDir,
		"Directory the report file is read from, relative to the module")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "",
		"Output format: text, json, yaml")
	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "",
		"Path to config file")
	cmd.Flags().BoolVar(&opts.modules, "modules", false,
		"Discover and check every module report under the given directory")
	cmd.Flags().IntVar(&opts.concurrency, "concurrency", config.DefaultConcurrency,
		"Bounded concurrency for --modules")
	cmd.Flags().BoolVar(&opts.debug, "debug", false,
		"Enable debug logging")
}

// applyFlags overrides loaded config values with flags explicitly set on
// the command line
func applyFlags(cmd *cobra.Command, opts *checkOptions, cfg *config.Config, kind domain.CheckKind) {
	gate := &cfg.Pmd
	if kind == domain.KindCPD {
		gate = &cfg.Cpd
	}

	if cmd.Flags().Changed("fail-on-violation") {
		cfg.Check.FailOnViolation = opts.failOnViolation
	}
	if cmd.Flags().Changed("aggregate") {
		cfg.Check.Aggregate = opts.aggregate
	}
	if cmd.Flags().Changed("language") {
		cfg.Check.Language = opts.language
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Check.Verbose = opts.verbose
	}
	if cmd.Flags().Changed("print-failing-errors") {
		cfg.Check.PrintFailingErrors = opts.printFailingErrors
	}
	if cmd.Flags().Changed("report-dir") {
		cfg.Check.ReportDir = opts.reportDir
	}
	if cmd.Flags().Changed("fail-priority") {
		gate.FailPriority = opts.failPriority
	}
	if cmd.Flags().Changed("exclude-from-failure-file") {
		gate.ExcludeFromFailureFile = opts.excludeFile
	}
	if cmd.Flags().Changed("exclude-paths-file") {
		gate.ExcludePathsFile = opts.excludePathsFile
	}
	if cmd.Flags().Changed("format") {
		cfg.Output.Format = opts.format
	}
	if cmd.Flags().Changed("concurrency") {
		cfg.Workspace.Concurrency = opts.concurrency
	}
}

// runCheck executes one check command invocation for the given kind
func runCheck(cmd *cobra.Command, args []string, opts *checkOptions, kind domain.CheckKind) error {
	target := "."
	if len(args) > 0 {
		target = args[0]
	}

	log, err := logging.New(opts.debug)
	if err != nil {
		return &CheckExitError{Code: 2, Message: fmt.Sprintf("failed to initialize logging: %v", err)}
	}
	defer log.Sync()

	loader := service.NewConfigurationLoader()
	cfg, err := loader.Load(opts.configPath, target)
	if err != nil {
		return &CheckExitError{Code: 2, Message: err.Error()}
	}
	applyFlags(cmd, opts, cfg, kind)
	if err := cfg.Validate(); err != nil {
		return &CheckExitError{Code: 2, Message: err.Error()}
	}

	formatter := service.NewOutputFormatter()

	if opts.modules {
		return runWorkspaceCheck(cfg, loader, formatter, log, target, kind)
	}

	req := loader.ToCheckRequest(cfg, kind, target, opts.executionRoot)
	svc := service.NewCheckService(os.Stdout, log)

	result, err := svc.Run(req)
	if err != nil {
		return &CheckExitError{Code: 2, Message: err.Error()}
	}

	if err := formatter.Write([]*domain.CheckResult{result}, cfg.Output.Format, os.Stdout); err != nil {
		return &CheckExitError{Code: 2, Message: fmt.Sprintf("failed to write output: %v", err)}
	}

	if !result.Passed {
		return &CheckExitError{Code: 1, Message: ""}
	}
	return nil
}

// runWorkspaceCheck fans the check out over every module report found
// under root, one isolated invocation per module
func runWorkspaceCheck(cfg *config.Config, loader *service.ConfigurationLoader,
	formatter *service.OutputFormatter, log *zap.SugaredLogger,
	root string, kind domain.CheckKind) error {

	base := loader.ToCheckRequest(cfg, kind, "", true)

	pm := service.NewProgressManager(cfg.Output.Format == "text")
	defer pm.Close()

	runner := service.NewWorkspaceRunner(cfg.Workspace.Concurrency, pm, log)
	checks, err := runner.Run(context.Background(), root, base)
	if err != nil && checks == nil {
		return &CheckExitError{Code: 2, Message: err.Error()}
	}

	var results []*domain.CheckResult
	fatal := false
	for _, c := range checks {
		if c.Output != "" {
			fmt.Print(c.Output)
		}
		if c.Err != nil {
			fatal = true
			fmt.Fprintf(os.Stderr, "Error: %s: %v\n", c.Module, c.Err)
			continue
		}
		results = append(results, c.Result)
	}

	if len(results) > 0 {
		if err := formatter.Write(results, cfg.Output.Format, os.Stdout); err != nil {
			return &CheckExitError{Code: 2, Message: fmt.Sprintf("failed to write output: %v", err)}
		}
	}

	if fatal {
		return &CheckExitError{Code: 2, Message: ""}
	}
	for _, r := range results {
		if !r.Passed {
			return &CheckExitError{Code: 1, Message: ""}
		}
	}
	return nil
}
