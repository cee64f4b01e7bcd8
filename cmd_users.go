package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/maximkravchenko/fintui/financery"
)

// usersCmd represents the users command.
var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "User management commands",
	Long:  `Commands for managing users on the Financery backend.`,
}

var usersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all users",
	RunE:  usersListRun,
}

var usersCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new user",
	RunE:  usersCreateRun,
}

var usersUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a user",
	Long:  `Replace a user's name and email. Both values are sent as given.`,
	Args:  cobra.ExactArgs(1),
	RunE:  usersUpdateRun,
}

var usersDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a user",
	Args:  cobra.ExactArgs(1),
	RunE:  usersDeleteRun,
}

func init() {
	usersCmd.AddCommand(usersListCmd)
	usersCmd.AddCommand(usersCreateCmd)
	usersCmd.AddCommand(usersUpdateCmd)
	usersCmd.AddCommand(usersDeleteCmd)

	usersListCmd.Flags().StringP("output", "o", tableOutputFormat, "Output format: table or json")

	usersCreateCmd.Flags().String("name", "", "user name")
	usersCreateCmd.Flags().String("email", "", "user email")
	_ = usersCreateCmd.MarkFlagRequired("name")

	usersUpdateCmd.Flags().String("name", "", "user name")
	usersUpdateCmd.Flags().String("email", "", "user email")
	_ = usersUpdateCmd.MarkFlagRequired("name")
}

func usersListRun(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	outputFormat, err := validateOutputFormat(cmd)
	if err != nil {
		return err
	}

	us, err := client.GetUsers(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch users: %w", err)
	}

	switch outputFormat {
	case jsonOutputFormat:
		return outputJSON(cmd, us)
	case tableOutputFormat:
		return outputUsersTable(cmd, us)
	default:
		return errors.New("unsupported output format")
	}
}

func usersCreateRun(cmd *cobra.Command, _ []string) error {
	name, _ := cmd.Flags().GetString("name")
	email, _ := cmd.Flags().GetString("email")

	created, err := client.CreateUser(cmd.Context(), financery.UserRequest{Name: name, Email: email})
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created user %q with ID %d\n", created.Name, created.ID)
	return nil
}

func usersUpdateRun(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid user ID %q: %w", args[0], err)
	}

	name, _ := cmd.Flags().GetString("name")
	email, _ := cmd.Flags().GetString("email")

	updated, err := client.UpdateUser(cmd.Context(), id, financery.UserRequest{Name: name, Email: email})
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Updated user %q\n", updated.Name)
	return nil
}

func usersDeleteRun(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid user ID %q: %w", args[0], err)
	}

	if err := client.DeleteUser(cmd.Context(), id); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Deleted user %d\n", id)
	return nil
}

func outputUsersTable(cmd *cobra.Command, us []financery.User) error {
	t := createStyledTable("ID", "NAME", "EMAIL")

	for _, u := range us {
		email := u.Email
		if email == "" {
			email = "-"
		}
		t.Row(strconv.FormatInt(u.ID, 10), u.Name, email)
	}

	fmt.Fprintln(cmd.OutOrStdout(), t)
	return nil
}
