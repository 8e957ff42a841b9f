package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	loginEmail    string
	loginPassword string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in and store the session",
	RunE: func(cmd *cobra.Command, args []string) error {
		p := newPrompter(os.Stdin, os.Stdout)
		email := loginEmail
		if email == "" {
			email = p.required("Email")
		}
		password := loginPassword
		if password == "" {
			password = p.required("Password")
		}
		if email == "" || password == "" {
			return fmt.Errorf("email and password are required")
		}

		resp, err := client.Login(cmd.Context(), email, password)
		if err != nil {
			return err
		}
		if err := store.Login(resp.User, resp.Token); err != nil {
			return err
		}
		fmt.Printf("Signed in as %s (%s)\n", resp.User.Name, resp.User.Role)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Clear the stored session",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := store.Logout(); err != nil {
			return err
		}
		fmt.Println("Signed out.")
		return nil
	},
}

func init() {
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "account email")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "account password")
	rootCmd.AddCommand(loginCmd, logoutCmd)
}
