package main

import (
	"github.com/spf13/cobra"

	"github.com/ludo-technologies/pmdcheck/domain"
	"github.com/ludo-technologies/pmdcheck/internal/config"
)

func cpdCmd() *cobra.Command {
	opts := &checkOptions{}

	cmd := &cobra.Command{
		Use:   "cpd [dir]",
		Short: "Check the CPD duplication report against the failure threshold",
		Long: `Check a CPD duplication report (cpd.xml). Duplications carry no
priority, so any duplication fails the check unless its classes are
listed in the exclusion file.

Examples:
  # Check ./target/cpd.xml with defaults
  pmdcheck cpd

  # Allow listed class pairs to duplicate
  pmdcheck cpd --exclude-from-failure-file cpd-exclusions.txt

  # Report duplications without blocking
  pmdcheck cpd --fail-on-violation=false`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, args, opts, domain.KindCPD)
		},
	}

	addCheckFlags(cmd, opts, config.DefaultCpdFailPriority)
	return cmd
}
