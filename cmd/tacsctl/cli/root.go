// Package cli implements the tacsctl command tree: local administration of
// the TACS console database (setup, login, announcements, IP reputation,
// audit trail).
package cli

import (
	"github.com/spf13/cobra"
)

var dataDir string

// Execute creates the root command tree and runs it.
func Execute(version string) error {
	rootCmd := newRootCmd(version)
	return rootCmd.Execute()
}

func newRootCmd(version string) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "tacsctl",
		Short:   "Administer the TACS console database",
		Long:    "tacsctl manages the local TACS admin console database: bootstrap the first admin account, authenticate, and manage announcements, IP reputation records and the audit trail.",
		Version: version,

		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "data directory for the console database (default from config)")

	cmd.AddCommand(newSetupCmd())
	cmd.AddCommand(newLoginCmd())
	cmd.AddCommand(newTokenCmd())
	cmd.AddCommand(newAnnounceCmd())
	cmd.AddCommand(newIPCmd())
	cmd.AddCommand(newUsersCmd())
	cmd.AddCommand(newAuditCmd())
	cmd.AddCommand(newDBCmd())

	return cmd
}
