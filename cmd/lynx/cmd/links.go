package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/paoloronco/lynx/client"
)

var (
	linkTitle string
	linkURL   string
	linkText  string
	linkKind  string
)

func init() {
	linksAddCmd.Flags().StringVar(&linkTitle, "title", "", "card title (required)")
	linksAddCmd.Flags().StringVar(&linkURL, "url", "", "target URL for link cards")
	linksAddCmd.Flags().StringVar(&linkText, "text", "", "body for text cards")
	linksAddCmd.Flags().StringVar(&linkKind, "kind", "link", `card kind: "link" or "text"`)
	linksCmd.AddCommand(linksListCmd, linksAddCmd, linksRemoveCmd, linksReorderCmd)
	rootCmd.AddCommand(linksCmd)
}

var linksCmd = &cobra.Command{
	Use:   "links",
	Short: "Manage the cards on the page",
}

var linksListCmd = &cobra.Command{
	Use:   "list",
	Short: "List cards in display order",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession()
		if err != nil {
			return err
		}
		defer s.Close()

		links, err := s.client.Links(cmd.Context())
		if err != nil {
			return err
		}
		if len(links) == 0 {
			fmt.Println("no cards yet")
			return nil
		}
		for _, l := range links {
			marker := color.GreenString("●")
			if !l.Active {
				marker = color.RedString("○")
			}
			target := l.URL
			if l.Kind == "text" {
				target = l.Text
			}
			fmt.Printf("%s %-12s %-24s %s\n", marker, l.ID, l.Title, target)
		}
		return nil
	},
}

var linksAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Append a card",
	RunE: func(cmd *cobra.Command, args []string) error {
		if linkTitle == "" {
			return fmt.Errorf("--title is required")
		}
		if linkKind == "link" && linkURL == "" {
			return fmt.Errorf("--url is required for link cards")
		}

		s, err := openSession()
		if err != nil {
			return err
		}
		defer s.Close()

		_, cleanup := startSpinner("Adding card...")
		created, err := s.client.CreateLink(cmd.Context(), client.Link{
			Kind:   linkKind,
			Title:  linkTitle,
			URL:    linkURL,
			Text:   linkText,
			Active: true,
		})
		cleanup()
		if err != nil {
			return err
		}
		fmt.Printf("%s Added %s (%s)\n", color.GreenString("✓"), created.Title, created.ID)
		return nil
	},
}

var linksRemoveCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Remove a card",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession()
		if err != nil {
			return err
		}
		defer s.Close()

		_, cleanup := startSpinner("Removing card...")
		err = s.client.DeleteLink(cmd.Context(), args[0])
		cleanup()
		if err != nil {
			return err
		}
		fmt.Println(color.GreenString("✓") + " Removed " + args[0])
		return nil
	},
}

var linksReorderCmd = &cobra.Command{
	Use:   "reorder <id>...",
	Short: "Set the display order to the given ID sequence",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession()
		if err != nil {
			return err
		}
		defer s.Close()

		_, cleanup := startSpinner("Reordering...")
		err = s.client.ReorderLinks(cmd.Context(), args)
		cleanup()
		if err != nil {
			return err
		}
		fmt.Println(color.GreenString("✓") + " Order updated")
		return nil
	},
}
