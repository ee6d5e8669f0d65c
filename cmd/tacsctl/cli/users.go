package cli

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/tacslabs/tacs-console/internal/model"
)

func newUsersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Manage admin accounts",
	}

	cmd.AddCommand(newUsersListCmd())
	cmd.AddCommand(newUsersStatusCmd())

	return cmd
}

func newUsersListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List admin accounts",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			users, err := a.auth.ListUsers(context.Background())
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tUSERNAME\tROLE\tSTATUS\tLAST LOGIN")
			for _, u := range users {
				lastLogin := "never"
				if u.LastLogin != nil {
					lastLogin = u.LastLogin.Format("2006-01-02 15:04")
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", u.ID, u.Username, u.Role, u.Status, lastLogin)
			}
			return w.Flush()
		},
	}
}

func newUsersStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status [id] [active|suspended|disabled]",
		Short: "Change an account's status",
		Long:  "Transition an admin account between active, suspended and disabled. Accounts are never deleted; status changes are the only lifecycle control.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			status := model.UserStatus(args[1])
			switch status {
			case model.UserStatusActive, model.UserStatusSuspended, model.UserStatusDisabled:
			default:
				return fmt.Errorf("invalid status %q (active|suspended|disabled)", args[1])
			}

			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			ok, err := a.auth.UpdateUserStatus(context.Background(), args[0], status)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("no user with id %q", args[0])
			}
			fmt.Printf("User %s status set to %s\n", args[0], status)
			return nil
		},
	}
}
