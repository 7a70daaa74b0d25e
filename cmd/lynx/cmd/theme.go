package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	themeBackground string
	themeText       string
	themeAccent     string
	themeFont       string
	themeButton     string
)

func init() {
	themeSetCmd.Flags().StringVar(&themeBackground, "background", "", "background color")
	themeSetCmd.Flags().StringVar(&themeText, "text", "", "text color")
	themeSetCmd.Flags().StringVar(&themeAccent, "accent", "", "accent color")
	themeSetCmd.Flags().StringVar(&themeFont, "font", "", "font family")
	themeSetCmd.Flags().StringVar(&themeButton, "button", "", "button style")
	themeCmd.AddCommand(themeShowCmd, themeSetCmd)
	rootCmd.AddCommand(themeCmd)
}

var themeCmd = &cobra.Command{
	Use:   "theme",
	Short: "Manage the page appearance",
}

var themeShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the current theme",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession()
		if err != nil {
			return err
		}
		defer s.Close()

		t, err := s.client.Theme(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Printf("Background: %s\n", t.BackgroundColor)
		fmt.Printf("Text:       %s\n", t.TextColor)
		fmt.Printf("Accent:     %s\n", t.AccentColor)
		fmt.Printf("Font:       %s\n", t.FontFamily)
		fmt.Printf("Buttons:    %s\n", t.ButtonStyle)
		return nil
	},
}

var themeSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Update theme fields",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession()
		if err != nil {
			return err
		}
		defer s.Close()

		current, err := s.client.Theme(cmd.Context())
		if err != nil {
			return err
		}

		updated := *current
		if cmd.Flags().Changed("background") {
			updated.BackgroundColor = themeBackground
		}
		if cmd.Flags().Changed("text") {
			updated.TextColor = themeText
		}
		if cmd.Flags().Changed("accent") {
			updated.AccentColor = themeAccent
		}
		if cmd.Flags().Changed("font") {
			updated.FontFamily = themeFont
		}
		if cmd.Flags().Changed("button") {
			updated.ButtonStyle = themeButton
		}

		_, cleanup := startSpinner("Updating theme...")
		_, err = s.client.UpdateTheme(cmd.Context(), updated)
		cleanup()
		if err != nil {
			return err
		}
		fmt.Println(color.GreenString("✓") + " Theme updated")
		return nil
	},
}
