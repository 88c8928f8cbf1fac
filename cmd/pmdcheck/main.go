package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ludo-technologies/pmdcheck/internal/version"
)

// CheckExitError carries an explicit process exit code for check commands
type CheckExitError struct {
	Code    int
	Message string
}

func (e *CheckExitError) Error() string {
	return e.Message
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "pmdcheck",
		Short: "pmdcheck - quality gate for PMD and CPD analysis reports",
		Long: `pmdcheck reads PMD/CPD analysis reports and fails the build when
violations exceed the configured severity threshold.

Exit codes:
  0 - Check passed (or violations are non-blocking)
  1 - Failure threshold exceeded
  2 - Execution error (missing report, parse error, bad configuration)`,
		Version: version.GetVersion(),
	}

	rootCmd.AddCommand(pmdCmd())
	rootCmd.AddCommand(cpdCmd())
	rootCmd.AddCommand(initCmd())
	rootCmd.AddCommand(versionCmd())

	if err := rootCmd.Execute(); err != nil {
		// Handle custom exit codes from check commands
		if exitErr, ok := err.(*CheckExitError); ok {
			if exitErr.Message != "" {
				fmt.Fprintf(os.Stderr, "Error: %s\n", exitErr.Message)
			}
			// Output has already been printed; exit with the code
			os.Exit(exitErr.Code)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func versionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			verbose, _ := cmd.Flags().GetBool("verbose")
			if verbose {
				fmt.Println(version.GetFullVersion())
			} else {
				fmt.Printf("pmdcheck version %s\n", version.GetVersion())
			}
		},
	}

	cmd.Flags().BoolP("verbose", "v", false, "Show detailed version information")
	return cmd
}
