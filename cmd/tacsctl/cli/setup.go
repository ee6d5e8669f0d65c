package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tacslabs/tacs-console/internal/service"
)

func newSetupCmd() *cobra.Command {
	var (
		username string
		email    string
		password string
	)

	cmd := &cobra.Command{
		Use:   "setup",
		Short: "Create the first super admin account",
		Long:  "Bootstrap the console by creating the first super_admin account. Only available while no admin account exists; once one does, setup is permanently disabled.",
		Example: `  tacsctl setup --username alice --email alice@example.com
  tacsctl setup --username alice --email alice@example.com --password '...'  # non-interactive`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSetup(username, email, password)
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "Username for the first admin (required)")
	cmd.Flags().StringVar(&email, "email", "", "Email address for the first admin (required)")
	cmd.Flags().StringVar(&password, "password", "", "Password (prompted if omitted)")
	cmd.MarkFlagRequired("username")
	cmd.MarkFlagRequired("email")

	return cmd
}

func runSetup(username, email, password string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := context.Background()

	if has, err := a.auth.HasAdminUsers(ctx); err != nil {
		return err
	} else if has {
		return service.ErrAlreadyInitialized
	}

	if password == "" {
		password, err = promptPassword(true)
		if err != nil {
			return err
		}
	}

	id, err := a.auth.InitializeFirstAdmin(ctx, service.SetupRequest{
		Username: username,
		Password: password,
		Email:    email,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Created super admin %q (%s)\n", username, id)
	return nil
}
