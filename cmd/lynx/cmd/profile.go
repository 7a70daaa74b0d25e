package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	profileName   string
	profileBio    string
	profileAvatar string
)

func init() {
	profileSetCmd.Flags().StringVar(&profileName, "name", "", "display name")
	profileSetCmd.Flags().StringVar(&profileBio, "bio", "", "short bio")
	profileSetCmd.Flags().StringVar(&profileAvatar, "avatar", "", "avatar image URL")
	profileCmd.AddCommand(profileShowCmd, profileSetCmd)
	rootCmd.AddCommand(profileCmd)
}

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage the public profile",
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the current profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession()
		if err != nil {
			return err
		}
		defer s.Close()

		p, err := s.client.Profile(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Printf("Name:   %s\n", p.Name)
		fmt.Printf("Bio:    %s\n", p.Bio)
		fmt.Printf("Avatar: %s\n", p.AvatarURL)
		return nil
	},
}

var profileSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Update profile fields",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession()
		if err != nil {
			return err
		}
		defer s.Close()

		current, err := s.client.Profile(cmd.Context())
		if err != nil {
			return err
		}

		updated := *current
		if cmd.Flags().Changed("name") {
			updated.Name = profileName
		}
		if cmd.Flags().Changed("bio") {
			updated.Bio = profileBio
		}
		if cmd.Flags().Changed("avatar") {
			updated.AvatarURL = profileAvatar
		}

		_, cleanup := startSpinner("Updating profile...")
		_, err = s.client.UpdateProfile(cmd.Context(), updated)
		cleanup()
		if err != nil {
			return err
		}
		fmt.Println(color.GreenString("✓") + " Profile updated")
		return nil
	},
}
