package cli

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/tacslabs/tacs-console/internal/model"
)

func newAuditCmd() *cobra.Command {
	var (
		limit int
		user  string
	)

	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Show the security audit trail",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			ctx := context.Background()
			var logs []model.AuditLog
			if user != "" {
				logs, err = a.audit.ListByUser(ctx, user)
			} else {
				logs, err = a.audit.List(ctx, limit)
			}
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "TIME\tSEVERITY\tACTION\tUSER\tTARGET\tDETAILS")
			for _, l := range logs {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
					l.Timestamp.Format("2006-01-02 15:04:05"), l.Severity, l.Action, l.User, l.Target, l.Details)
			}
			return w.Flush()
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 100, "Maximum number of entries to show")
	cmd.Flags().StringVar(&user, "user", "", "Only show entries for one username")

	return cmd
}

func newDBCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "db",
		Short: "Inspect the console database",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show the applied schema version",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			version, dirty, err := a.store.SchemaVersion()
			if err != nil {
				return err
			}
			fmt.Printf("schema version: %d (dirty: %v)\n", version, dirty)
			return nil
		},
	})

	return cmd
}
