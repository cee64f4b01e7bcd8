package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/maximkravchenko/fintui/financery"
)

// tagsCmd represents the tags command.
var tagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "Tag management commands",
	Long:  `Commands for managing tags on the Financery backend.`,
}

var tagsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tags for a user",
	RunE:  tagsListRun,
}

var tagsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new tag",
	RunE:  tagsCreateRun,
}

var tagsUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a tag",
	Args:  cobra.ExactArgs(1),
	RunE:  tagsUpdateRun,
}

var tagsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a tag",
	Long:  `Delete a tag. Transactions keep the tag reference until their next edit; totals simply stop grouping under it.`,
	Args:  cobra.ExactArgs(1),
	RunE:  tagsDeleteRun,
}

func init() {
	tagsCmd.AddCommand(tagsListCmd)
	tagsCmd.AddCommand(tagsCreateCmd)
	tagsCmd.AddCommand(tagsUpdateCmd)
	tagsCmd.AddCommand(tagsDeleteCmd)

	tagsListCmd.Flags().StringP("output", "o", tableOutputFormat, "Output format: table or json")
	tagsListCmd.Flags().Int64("user", 0, "user ID to list tags for")
	_ = tagsListCmd.MarkFlagRequired("user")

	tagsCreateCmd.Flags().String("title", "", "tag title")
	tagsCreateCmd.Flags().Int64("user", 0, "owning user ID")
	_ = tagsCreateCmd.MarkFlagRequired("title")
	_ = tagsCreateCmd.MarkFlagRequired("user")

	tagsUpdateCmd.Flags().String("title", "", "tag title")
	tagsUpdateCmd.Flags().Int64("user", 0, "owning user ID")
	_ = tagsUpdateCmd.MarkFlagRequired("title")
	_ = tagsUpdateCmd.MarkFlagRequired("user")
}

func tagsListRun(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	outputFormat, err := validateOutputFormat(cmd)
	if err != nil {
		return err
	}

	userID, _ := cmd.Flags().GetInt64("user")

	tags, err := client.GetTagsByUser(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to fetch tags: %w", err)
	}

	switch outputFormat {
	case jsonOutputFormat:
		return outputJSON(cmd, tags)
	case tableOutputFormat:
		return outputTagsTable(cmd, tags)
	default:
		return errors.New("unsupported output format")
	}
}

func tagsCreateRun(cmd *cobra.Command, _ []string) error {
	title, _ := cmd.Flags().GetString("title")
	userID, _ := cmd.Flags().GetInt64("user")

	created, err := client.CreateTag(cmd.Context(), financery.TagRequest{Title: title, UserID: userID})
	if err != nil {
		return fmt.Errorf("failed to create tag: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created tag %q with ID %d\n", created.Title, created.ID)
	return nil
}

func tagsUpdateRun(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid tag ID %q: %w", args[0], err)
	}

	title, _ := cmd.Flags().GetString("title")
	userID, _ := cmd.Flags().GetInt64("user")

	updated, err := client.UpdateTag(cmd.Context(), id, financery.TagRequest{Title: title, UserID: userID})
	if err != nil {
		return fmt.Errorf("failed to update tag: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Updated tag %q\n", updated.Title)
	return nil
}

func tagsDeleteRun(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid tag ID %q: %w", args[0], err)
	}

	if err := client.DeleteTag(cmd.Context(), id); err != nil {
		return fmt.Errorf("failed to delete tag: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Deleted tag %d\n", id)
	return nil
}

func outputTagsTable(cmd *cobra.Command, tags []financery.Tag) error {
	t := createStyledTable("ID", "TITLE", "USER ID")

	for _, tag := range tags {
		t.Row(strconv.FormatInt(tag.ID, 10), tag.Title, strconv.FormatInt(tag.UserID, 10))
	}

	fmt.Fprintln(cmd.OutOrStdout(), t)
	return nil
}
