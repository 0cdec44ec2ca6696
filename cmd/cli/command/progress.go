package command

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rdxa101ou/bookvibe/cmd/cli/command/client"
)

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Track your personal reading progress",
}

var progressGetCmd = &cobra.Command{
	Use:   "get <book-id>",
	Short: "Show your saved progress for a book",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		httpClient := client.NewHTTPClient(apiURL)
		httpClient.SetToken(token)

		p, err := httpClient.GetProgress(args[0])
		if err != nil {
			return err
		}

		fmt.Printf("Page %d of %d", p.CurrentPage, p.TotalPages)
		if p.Percent != nil {
			fmt.Printf(" (%d%%)", *p.Percent)
		}
		fmt.Println()
		return nil
	},
}

var progressSetCmd = &cobra.Command{
	Use:   "set <book-id>",
	Short: "Save your progress for a book",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		current, _ := cmd.Flags().GetInt("current")
		total, _ := cmd.Flags().GetInt("total")

		httpClient := client.NewHTTPClient(apiURL)
		httpClient.SetToken(token)

		p, err := httpClient.SaveProgress(args[0], current, total)
		if err != nil {
			return err
		}

		fmt.Printf("✓ Saved: page %d of %d", p.CurrentPage, p.TotalPages)
		if p.Percent != nil {
			fmt.Printf(" (%d%%)", *p.Percent)
		}
		fmt.Println()
		return nil
	},
}

func init() {
	progressSetCmd.Flags().IntP("current", "c", 0, "Current page")
	progressSetCmd.Flags().IntP("total", "t", 0, "Total pages")
	progressSetCmd.MarkFlagRequired("current")
	progressSetCmd.MarkFlagRequired("total")

	progressCmd.AddCommand(progressGetCmd)
	progressCmd.AddCommand(progressSetCmd)

	rootCmd.AddCommand(progressCmd)
}
