package cmd

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/paoloronco/lynx/client"
)

func init() {
	rootCmd.AddCommand(loginCmd, setupCmd, logoutCmd, passwdCmd)
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Authenticate against the server and store the session locally",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession()
		if err != nil {
			return err
		}
		defer s.Close()

		status, err := s.client.AuthStatus(cmd.Context())
		if err != nil {
			return err
		}
		if status.SetupRequired {
			return fmt.Errorf("this server has no admin password yet: run %s first",
				color.YellowString("lynx setup"))
		}

		password, err := readPassword("Password: ")
		if err != nil {
			return err
		}

		_, cleanup := startSpinner("Logging in...")
		err = s.client.Login(cmd.Context(), password)
		cleanup()
		if err != nil {
			var apiErr *client.APIError
			if errors.As(err, &apiErr) && errors.Is(err, client.ErrAuthExpired) {
				return fmt.Errorf("%s invalid password", color.RedString("✗"))
			}
			return err
		}
		fmt.Println(color.GreenString("✓") + " Logged in; session stored encrypted in the local profile")
		return nil
	},
}

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Set the initial admin password on a fresh server",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession()
		if err != nil {
			return err
		}
		defer s.Close()

		password, err := readPassword("New admin password: ")
		if err != nil {
			return err
		}
		confirm, err := readPassword("Repeat password: ")
		if err != nil {
			return err
		}
		if password != confirm {
			return fmt.Errorf("passwords do not match")
		}

		_, cleanup := startSpinner("Setting up...")
		err = s.client.Setup(cmd.Context(), password)
		cleanup()
		if err != nil {
			return err
		}
		fmt.Println(color.GreenString("✓") + " Server initialized and session stored")
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Discard the local session",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession()
		if err != nil {
			return err
		}
		defer s.Close()

		if err := s.client.Logout(cmd.Context()); err != nil {
			return err
		}
		fmt.Println(color.GreenString("✓") + " Logged out")
		return nil
	},
}

var passwdCmd = &cobra.Command{
	Use:   "passwd",
	Short: "Change the admin password",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession()
		if err != nil {
			return err
		}
		defer s.Close()

		current, err := readPassword("Current password: ")
		if err != nil {
			return err
		}
		updated, err := readPassword("New password: ")
		if err != nil {
			return err
		}

		_, cleanup := startSpinner("Changing password...")
		err = s.client.ChangePassword(cmd.Context(), current, updated)
		cleanup()
		if err != nil {
			return err
		}
		fmt.Println(color.GreenString("✓") + " Password changed; session rotated")
		return nil
	},
}
