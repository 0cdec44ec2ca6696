package command

// book.go handles catalog commands for bookvibectl. Admin mutations follow
// the same lifecycle as the web forms: edit loads the stored row first and
// submits the full field set back, delete asks for confirmation and reports
// failure before any refresh.

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rdxa101ou/bookvibe/cmd/cli/command/client"
	"github.com/rdxa101ou/bookvibe/internal/dto"
)

var bookCmd = &cobra.Command{
	Use:   "book",
	Short: "Browse and manage the book catalog",
}

var bookListCmd = &cobra.Command{
	Use:   "list",
	Short: "List books in the catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		term, _ := cmd.Flags().GetString("query")
		status, _ := cmd.Flags().GetString("status")

		httpClient := client.NewHTTPClient(apiURL)
		books, err := httpClient.ListBooks(term, status)
		if err != nil {
			return err
		}

		if len(books) == 0 {
			fmt.Println("No books matched.")
			return nil
		}

		for _, b := range books {
			fmt.Printf("%s  [%s]  %s — %s\n", b.ID, b.Status, b.Title, b.Author)
		}
		fmt.Printf("%d book(s)\n", len(books))
		return nil
	},
}

var bookGetCmd = &cobra.Command{
	Use:   "get <book-id>",
	Short: "Show one book with its derived progress and rating",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		httpClient := client.NewHTTPClient(apiURL)
		b, err := httpClient.GetBook(args[0])
		if err != nil {
			return err
		}

		fmt.Printf("Title:   %s\n", b.Title)
		fmt.Printf("Author:  %s\n", b.Author)
		fmt.Printf("Status:  %s\n", b.Status)
		if b.Progress != nil {
			fmt.Printf("Progress: %d%%\n", *b.Progress)
		}
		fmt.Printf("Stars:   %s\n", strings.Repeat("★", b.Stars)+strings.Repeat("☆", 5-b.Stars))
		if b.Notes != nil {
			fmt.Printf("Notes:   %s\n", *b.Notes)
		}
		return nil
	},
}

var bookAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a book to the catalog (admin)",
	RunE: func(cmd *cobra.Command, args []string) error {
		form := dto.BookForm{}
		form.Title, _ = cmd.Flags().GetString("title")
		form.Author, _ = cmd.Flags().GetString("author")
		form.Status, _ = cmd.Flags().GetString("status")
		applyOptionalFlags(cmd, &form)

		httpClient := client.NewHTTPClient(apiURL)
		httpClient.SetToken(token)
		created, err := httpClient.CreateBook(form)
		if err != nil {
			return err
		}

		fmt.Printf("✓ Added %q (%s)\n", created.Title, created.ID)
		return nil
	},
}

var bookUpdateCmd = &cobra.Command{
	Use:   "update <book-id>",
	Short: "Edit a book; unspecified flags keep their stored values (admin)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := args[0]

		httpClient := client.NewHTTPClient(apiURL)
		httpClient.SetToken(token)

		// Load the stored row first, exactly like opening the edit form,
		// then submit the full field set back.
		form, err := httpClient.EditSource(id)
		if err != nil {
			return err
		}

		if cmd.Flags().Changed("title") {
			form.Title, _ = cmd.Flags().GetString("title")
		}
		if cmd.Flags().Changed("author") {
			form.Author, _ = cmd.Flags().GetString("author")
		}
		if cmd.Flags().Changed("status") {
			form.Status, _ = cmd.Flags().GetString("status")
		}
		applyOptionalFlags(cmd, form)

		updated, err := httpClient.ReplaceBook(id, *form)
		if err != nil {
			return err
		}

		fmt.Printf("✓ Updated %q (%s)\n", updated.Title, updated.ID)
		return nil
	},
}

var bookDeleteCmd = &cobra.Command{
	Use:   "delete <book-id>",
	Short: "Delete a book from the catalog (admin)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := args[0]

		yes, _ := cmd.Flags().GetBool("yes")
		if !yes && !confirm(fmt.Sprintf("Delete book %s? This cannot be undone", id)) {
			fmt.Println("Aborted.")
			return nil
		}

		httpClient := client.NewHTTPClient(apiURL)
		httpClient.SetToken(token)

		// Surface a failed delete before refreshing anything
		if err := httpClient.DeleteBook(id); err != nil {
			return err
		}
		fmt.Printf("✓ Deleted %s\n", id)

		books, err := httpClient.ListBooks("", "")
		if err != nil {
			return fmt.Errorf("deleted, but refreshing the list failed: %w", err)
		}
		fmt.Printf("%d book(s) remain in the catalog\n", len(books))
		return nil
	},
}

// applyOptionalFlags copies only the flags the user actually set into the
// form, so an update leaves untouched fields at their loaded values.
func applyOptionalFlags(cmd *cobra.Command, form *dto.BookForm) {
	if cmd.Flags().Changed("description") {
		v, _ := cmd.Flags().GetString("description")
		form.Description = &v
	}
	if cmd.Flags().Changed("start-date") {
		v, _ := cmd.Flags().GetString("start-date")
		form.StartDate = &v
	}
	if cmd.Flags().Changed("finish-date") {
		v, _ := cmd.Flags().GetString("finish-date")
		form.FinishDate = &v
	}
	if cmd.Flags().Changed("purchase-date") {
		v, _ := cmd.Flags().GetString("purchase-date")
		form.PurchaseDate = &v
	}
	if cmd.Flags().Changed("price") {
		v, _ := cmd.Flags().GetFloat64("price")
		form.Price = &v
	}
	if cmd.Flags().Changed("current-page") {
		v, _ := cmd.Flags().GetInt("current-page")
		form.CurrentPage = &v
	}
	if cmd.Flags().Changed("total-pages") {
		v, _ := cmd.Flags().GetInt("total-pages")
		form.TotalPages = &v
	}
	if cmd.Flags().Changed("rating") {
		v, _ := cmd.Flags().GetInt("rating")
		form.Rating = &v
	}
	if cmd.Flags().Changed("notes") {
		v, _ := cmd.Flags().GetString("notes")
		form.Notes = &v
	}
	if cmd.Flags().Changed("cover-url") {
		v, _ := cmd.Flags().GetString("cover-url")
		form.CoverURL = &v
	}
}

func confirm(prompt string) bool {
	fmt.Printf("%s [y/N]: ", prompt)
	scanner := bufio.NewScanner(os.Stdin)
	if !scanner.Scan() {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(scanner.Text()))
	return answer == "y" || answer == "yes"
}

func addBookFormFlags(cmd *cobra.Command) {
	cmd.Flags().String("title", "", "Book title")
	cmd.Flags().String("author", "", "Book author")
	cmd.Flags().String("description", "", "Description")
	cmd.Flags().String("status", "", "Reading status: wishlist, reading or completed")
	cmd.Flags().String("start-date", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().String("finish-date", "", "Finish date (YYYY-MM-DD)")
	cmd.Flags().String("purchase-date", "", "Purchase date (YYYY-MM-DD)")
	cmd.Flags().Float64("price", 0, "Purchase price")
	cmd.Flags().Int("current-page", 0, "Current page")
	cmd.Flags().Int("total-pages", 0, "Total pages")
	cmd.Flags().Int("rating", 0, "Rating (1-5)")
	cmd.Flags().String("notes", "", "Reading notes")
	cmd.Flags().String("cover-url", "", "Cover image URL")
}

func init() {
	bookListCmd.Flags().StringP("query", "q", "", "Search term for title or author")
	bookListCmd.Flags().StringP("status", "s", "", "Status filter: wishlist, reading, completed or all")

	addBookFormFlags(bookAddCmd)
	bookAddCmd.MarkFlagRequired("title")
	bookAddCmd.MarkFlagRequired("author")

	addBookFormFlags(bookUpdateCmd)

	bookDeleteCmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")

	bookCmd.AddCommand(bookListCmd)
	bookCmd.AddCommand(bookGetCmd)
	bookCmd.AddCommand(bookAddCmd)
	bookCmd.AddCommand(bookUpdateCmd)
	bookCmd.AddCommand(bookDeleteCmd)

	rootCmd.AddCommand(bookCmd)
}
