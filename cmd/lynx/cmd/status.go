package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(statusCmd)
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show server and local session state",
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

		fmt.Printf("Server:  %s\n", serverURL)
		if status.SetupRequired {
			fmt.Println("State:   " + color.YellowString("setup required"))
			return nil
		}
		fmt.Println("State:   " + color.GreenString("ready"))

		// The async read is authoritative; the sync cache alone cannot
		// distinguish "logged out" from "not yet decrypted".
		if _, ok, err := s.creds.Token(cmd.Context()); err != nil {
			return err
		} else if ok {
			fmt.Println("Session: " + color.GreenString("present (encrypted at rest)"))
		} else {
			fmt.Println("Session: " + color.RedString("none"))
			fmt.Println(color.CyanString("→") + " Run " + color.YellowString("lynx login") + " to authenticate")
		}
		return nil
	},
}
