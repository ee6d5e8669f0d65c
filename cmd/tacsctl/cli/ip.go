package cli

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/tacslabs/tacs-console/internal/model"
)

func newIPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ip",
		Short: "Manage IP reputation records",
	}

	cmd.AddCommand(newIPListCmd())
	cmd.AddCommand(newIPSetCmd())
	cmd.AddCommand(newIPDeleteCmd())

	return cmd
}

func newIPListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List IP reputation records",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			records, err := a.ips.List(context.Background())
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "IP\tSTATUS\tRISK\tREQUESTS\tREASON")
			for _, r := range records {
				fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%s\n", r.IP, r.Status, r.RiskScore, r.Requests, r.Reason)
			}
			return w.Flush()
		},
	}
}

func newIPSetCmd() *cobra.Command {
	var (
		status string
		reason string
	)

	cmd := &cobra.Command{
		Use:   "set [ip]",
		Short: "Set the reputation status for an address (upsert)",
		Args:  cobra.ExactArgs(1),
		Example: `  tacsctl ip set 203.0.113.7 --status blocked --reason "credential stuffing"
  tacsctl ip set 198.51.100.2 --status monitored`,
		RunE: func(cmd *cobra.Command, args []string) error {
			switch model.IPStatus(status) {
			case model.IPStatusAllowed, model.IPStatusBlocked, model.IPStatusMonitored:
			default:
				return fmt.Errorf("invalid status %q (allowed|blocked|monitored)", status)
			}

			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.ips.UpdateStatus(context.Background(), args[0], model.IPStatus(status), reason); err != nil {
				return err
			}
			fmt.Printf("IP %s status set to %s\n", args[0], status)
			return nil
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "New status (allowed|blocked|monitored, required)")
	cmd.Flags().StringVar(&reason, "reason", "", "Reason for the change")
	cmd.MarkFlagRequired("status")

	return cmd
}

func newIPDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [ip]",
		Short: "Delete the reputation record for an address",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			ok, err := a.ips.Delete(context.Background(), args[0])
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("no record for IP %q", args[0])
			}
			fmt.Println("Deleted record for", args[0])
			return nil
		},
	}
}
