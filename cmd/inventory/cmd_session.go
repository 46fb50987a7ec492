package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/light-bringer/procat-inventory/internal/app/session/usecases/login"
)

var (
	loginEmail    string
	loginPassword string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Start a session",
	Long: `Validates the email and password format and marks the shared store as
logged in. Every instance using the same store follows the change.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		opts, err := openServices(ctx)
		if err != nil {
			return err
		}
		defer opts.Close()

		state, err := opts.Login.Execute(ctx, &login.Request{
			Email:    loginEmail,
			Password: loginPassword,
		})
		if err != nil {
			return err
		}
		opts.Session.Accept(state)

		fmt.Fprintln(cmd.OutOrStdout(), "Logged in")
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "End the session",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		opts, err := openServices(ctx)
		if err != nil {
			return err
		}
		defer opts.Close()

		state, err := opts.Logout.Execute(ctx)
		if err != nil {
			return err
		}
		opts.Session.Accept(state)

		fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
		return nil
	},
}

func init() {
	loginCmd.Flags().StringVarP(&loginEmail, "email", "e", "", "email address")
	loginCmd.Flags().StringVarP(&loginPassword, "password", "p", "", "password")
	_ = loginCmd.MarkFlagRequired("email")
	_ = loginCmd.MarkFlagRequired("password")
}
