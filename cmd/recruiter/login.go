package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"hrml/recruiter-service/internal/session"
)

var (
	loginEmail    string
	loginPassword string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in to the HRML platform",
	Long:  "Log in with a recruiter account. The e-mail address is remembered until logout.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		d, err := bootstrap(ctx)
		if err != nil {
			return err
		}
		defer d.Close()

		if err := d.sessions.Login(ctx, session.Credentials{Email: loginEmail, Password: loginPassword}); err != nil {
			return err
		}
		fmt.Printf("Logged in as %s.\n", loginEmail)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the remembered login",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		d, err := bootstrap(ctx)
		if err != nil {
			return err
		}
		defer d.Close()

		if err := d.sessions.Logout(ctx); err != nil {
			return err
		}
		fmt.Println("Logged out.")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the login state and last viewed job",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		d, err := bootstrap(ctx)
		if err != nil {
			return err
		}
		defer d.Close()

		if d.sessions.IsLoggedIn(ctx) {
			fmt.Printf("Logged in as %s.\n", d.sessions.Email(ctx))
		} else {
			fmt.Println("Not logged in.")
		}
		fmt.Printf("Last viewed job: %s\n", d.svc.LastJobID(ctx))
		return nil
	},
}

func init() {
	loginCmd.Flags().StringVarP(&loginEmail, "email", "e", "", "account e-mail address")
	loginCmd.Flags().StringVarP(&loginPassword, "password", "p", "", "account password")
	rootCmd.AddCommand(loginCmd, logoutCmd, whoamiCmd)
}
