package main

import (
	"github.com/spf13/cobra"

	"github.com/ludo-technologies/pmdcheck/domain"
	"github.com/ludo-technologies/pmdcheck/internal/config"
)

func pmdCmd() *cobra.Command {
	opts := &checkOptions{}

	cmd := &cobra.Command{
		Use:   "pmd [dir]",
		Short: "Check the PMD findings report against the failure threshold",
		Long: `Check a PMD findings report (pmd.xml) against the configured failure
threshold. Findings with priority at or below the threshold fail the
check unless excluded; excluded findings are downgraded to warnings,
not dropped.

Examples:
  # Check ./target/pmd.xml with defaults
  pmdcheck pmd

  # Only the most severe findings block
  pmdcheck pmd --fail-priority 2

  # Report violations without blocking
  pmdcheck pmd --fail-on-violation=false

  # Downgrade listed rules to warnings
  pmdcheck pmd --exclude-from-failure-file pmd-exclusions.properties

  # Check every module report under a workspace
  pmdcheck pmd --modules .`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true, // Don't print usage on errors (we handle our own output)
		SilenceErrors: true, // Don't print error messages (we handle our own output)
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, args, opts, domain.KindPMD)
		},
	}

	addCheckFlags(cmd, opts, config.DefaultPmdFailPriority)
	return cmd
}
