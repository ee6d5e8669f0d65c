package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newLoginCmd() *cobra.Command {
	var (
		username string
		password string
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate against the console database",
		Long:  "Validate a username/password pair and print a session token on success.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLogin(username, password)
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "Username (required)")
	cmd.Flags().StringVar(&password, "password", "", "Password (prompted if omitted)")
	cmd.MarkFlagRequired("username")

	return cmd
}

func runLogin(username, password string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if password == "" {
		password, err = promptPassword(false)
		if err != nil {
			return err
		}
	}

	resp, err := a.auth.Authenticate(context.Background(), username, password)
	if err != nil {
		return err
	}

	token, err := a.auth.Tokens().GenerateSecureToken()
	if err != nil {
		return err
	}

	fmt.Printf("Logged in as %s (role: %s)\n", username, resp.Role)
	fmt.Printf("Permissions: %s\n", strings.Join(resp.Permissions, ", "))
	fmt.Printf("Session token: %s\n", token)
	return nil
}

func newTokenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Work with session tokens",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "validate [token]",
		Short: "Check whether a session token is still valid",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			if a.auth.Tokens().ValidateToken(args[0]) {
				fmt.Println("valid")
				return nil
			}
			return fmt.Errorf("token is invalid or expired")
		},
	})

	return cmd
}
