package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/streamworks/streamctl/filter"
	"github.com/streamworks/streamctl/streaming"
)

var (
	filterExpr string

	contentTitle       string
	contentDescription string
	contentFilePath    string

	noConfirmDelete bool
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List content items in the catalog",
	Long: `List the content catalog, optionally narrowed by a filter expression.

Filter expressions see the fields of each item (Title, Description,
Category, FilePath, ID, HasFile) plus string helpers:

  streamctl list --filter 'contains(Title, "live")'
  streamctl list --filter 'Category == "news" && HasFile'`,
	RunE: runList,
}

// addCmd represents the add command
var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a content item (admin)",
	Long: `Create a content item referencing an already-uploaded media file.

Upload the video first (streamctl upload), then pass the returned file
path here, or use streamctl publish to do both in one step.`,
	RunE: runAdd,
}

// updateCmd represents the update command
var updateCmd = &cobra.Command{
	Use:   "update ID",
	Short: "Update a content item (admin)",
	Long: `Update an existing content item.

The media path is only changed when --file-path is given; omitting the
flag leaves the stored path untouched.`,
	Args: cobra.ExactArgs(1),
	RunE: runUpdate,
}

// deleteCmd represents the delete command
var deleteCmd = &cobra.Command{
	Use:   "delete ID",
	Short: "Delete a content item (admin)",
	Args:  cobra.ExactArgs(1),
	RunE:  runDelete,
}

// urlCmd represents the url command
var urlCmd = &cobra.Command{
	Use:   "url ID",
	Short: "Print the stream URL for a content item",
	Long: `Print the playback URL for a content item.

The URL is composed locally; hand it to your player together with the
bearer token.`,
	Args: cobra.ExactArgs(1),
	RunE: runURL,
}

func init() {
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(urlCmd)

	listCmd.Flags().StringVarP(&filterExpr, "filter", "f", "", "filter expression")

	addCmd.Flags().StringVarP(&contentTitle, "title", "t", "", "content title")
	addCmd.Flags().StringVarP(&contentDescription, "description", "d", "", "content description")
	addCmd.Flags().StringVar(&contentFilePath, "file-path", "", "server path of the uploaded media")

	updateCmd.Flags().StringVarP(&contentTitle, "title", "t", "", "content title")
	updateCmd.Flags().StringVarP(&contentDescription, "description", "d", "", "content description")
	updateCmd.Flags().StringVar(&contentFilePath, "file-path", "", "server path of the uploaded media")

	deleteCmd.Flags().BoolVar(&noConfirmDelete, "yes", false, "skip the confirmation prompt")
}

func runList(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	items, err := client.ListContent(ctx)
	if err != nil {
		return fmt.Errorf("failed to list content: %s", streaming.Message(err))
	}

	if filterExpr != "" {
		f, err := filter.Compile(filterExpr)
		if err != nil {
			return fmt.Errorf("invalid filter expression: %w", err)
		}
		items, err = f.Apply(items)
		if err != nil {
			return err
		}
	}

	if len(items) == 0 {
		fmt.Println("No content found.")
		return nil
	}

	itemText := "item"
	if len(items) != 1 {
		itemText = "items"
	}
	fmt.Printf("\n%d %s:\n", len(items), itemText)
	fmt.Println(strings.Repeat("-", 80))

	for _, item := range items {
		id := "-"
		if item.ID != nil {
			id = strconv.Itoa(*item.ID)
		}
		fmt.Printf("• [%s] %s", id, item.Title)
		if item.Category != nil && *item.Category != "" {
			fmt.Printf(" (%s)", *item.Category)
		}
		if !item.HasFile() {
			fmt.Printf(" [NO MEDIA]")
		}
		fmt.Println()
		if item.Description != "" {
			fmt.Printf("  %s\n", item.Description)
		}
	}

	return nil
}

func runAdd(cmd *cobra.Command, args []string) error {
	if strings.TrimSpace(contentTitle) == "" {
		return fmt.Errorf("title is required")
	}
	if contentFilePath == "" {
		return fmt.Errorf("file-path is required; upload the video first")
	}

	if err := client.AddContent(context.Background(), contentTitle, contentDescription, contentFilePath); err != nil {
		return fmt.Errorf("failed to add content: %s", streaming.Message(err))
	}

	fmt.Printf("Added %q\n", contentTitle)
	return nil
}

func runUpdate(cmd *cobra.Command, args []string) error {
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid content id: %s", args[0])
	}
	if strings.TrimSpace(contentTitle) == "" {
		return fmt.Errorf("title is required")
	}

	// Only resupply the media path when the flag was given; a nil path
	// leaves the server-side value untouched.
	var filePath *string
	if cmd.Flags().Changed("file-path") {
		filePath = &contentFilePath
	}

	if err := client.UpdateContent(context.Background(), id, contentTitle, contentDescription, filePath); err != nil {
		return fmt.Errorf("failed to update content %d: %s", id, streaming.Message(err))
	}

	fmt.Printf("Updated content %d\n", id)
	return nil
}

func runDelete(cmd *cobra.Command, args []string) error {
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid content id: %s", args[0])
	}

	if !noConfirmDelete {
		fmt.Printf("Delete content %d? [y/N]: ", id)
		scanner := bufio.NewScanner(os.Stdin)
		if !scanner.Scan() || strings.ToLower(strings.TrimSpace(scanner.Text())) != "y" {
			fmt.Println("Cancelled.")
			return nil
		}
	}

	if err := client.DeleteContent(context.Background(), id); err != nil {
		return fmt.Errorf("failed to delete content %d: %s", id, streaming.Message(err))
	}

	fmt.Printf("Deleted content %d\n", id)
	return nil
}

func runURL(cmd *cobra.Command, args []string) error {
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid content id: %s", args[0])
	}

	fmt.Println(client.StreamURL(id))
	return nil
}
