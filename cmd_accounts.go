package main

import (
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/Rhymond/go-money"
	"github.com/spf13/cobra"

	"github.com/maximkravchenko/fintui/financery"
)

// accountsCmd represents the accounts command.
var accountsCmd = &cobra.Command{
	Use:   "accounts",
	Short: "Account management commands",
	Long:  `Commands for managing accounts on the Financery backend.`,
}

var accountsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List accounts for a user",
	RunE:  accountsListRun,
}

var accountsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new account",
	RunE:  accountsCreateRun,
}

var accountsUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update an account",
	Long:  `Replace an account's name, balance, and owning user. All values are sent as given.`,
	Args:  cobra.ExactArgs(1),
	RunE:  accountsUpdateRun,
}

var accountsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an account",
	Args:  cobra.ExactArgs(1),
	RunE:  accountsDeleteRun,
}

func init() {
	accountsCmd.AddCommand(accountsListCmd)
	accountsCmd.AddCommand(accountsCreateCmd)
	accountsCmd.AddCommand(accountsUpdateCmd)
	accountsCmd.AddCommand(accountsDeleteCmd)

	accountsListCmd.Flags().StringP("output", "o", tableOutputFormat, "Output format: table or json")
	accountsListCmd.Flags().Int64("user", 0, "user ID to list accounts for")
	_ = accountsListCmd.MarkFlagRequired("user")

	accountsCreateCmd.Flags().String("name", "", "account name")
	accountsCreateCmd.Flags().Int64("user", 0, "owning user ID")
	accountsCreateCmd.Flags().Float64("balance", 0, "starting balance")
	_ = accountsCreateCmd.MarkFlagRequired("name")
	_ = accountsCreateCmd.MarkFlagRequired("user")

	accountsUpdateCmd.Flags().String("name", "", "account name")
	accountsUpdateCmd.Flags().Int64("user", 0, "owning user ID")
	accountsUpdateCmd.Flags().Float64("balance", 0, "account balance")
	_ = accountsUpdateCmd.MarkFlagRequired("name")
	_ = accountsUpdateCmd.MarkFlagRequired("user")
}

func accountsListRun(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	outputFormat, err := validateOutputFormat(cmd)
	if err != nil {
		return err
	}

	userID, _ := cmd.Flags().GetInt64("user")

	accounts, err := client.GetAccountsByUser(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to fetch accounts: %w", err)
	}

	// Sort accounts by name for consistent output
	sort.Slice(accounts, func(i, j int) bool {
		return accounts[i].Name < accounts[j].Name
	})

	switch outputFormat {
	case jsonOutputFormat:
		return outputJSON(cmd, accounts)
	case tableOutputFormat:
		return outputAccountsTable(cmd, accounts)
	default:
		return errors.New("unsupported output format")
	}
}

func accountsCreateRun(cmd *cobra.Command, _ []string) error {
	name, _ := cmd.Flags().GetString("name")
	userID, _ := cmd.Flags().GetInt64("user")
	balance, _ := cmd.Flags().GetFloat64("balance")

	created, err := client.CreateAccount(cmd.Context(), financery.AccountRequest{
		Name:    name,
		UserID:  userID,
		Balance: money.NewFromFloat(balance, client.Currency()),
	})
	if err != nil {
		return fmt.Errorf("failed to create account: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created account %q with ID %d\n", created.Name, created.ID)
	return nil
}

func accountsUpdateRun(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid account ID %q: %w", args[0], err)
	}

	name, _ := cmd.Flags().GetString("name")
	userID, _ := cmd.Flags().GetInt64("user")
	balance, _ := cmd.Flags().GetFloat64("balance")

	updated, err := client.UpdateAccount(cmd.Context(), id, financery.AccountRequest{
		Name:    name,
		UserID:  userID,
		Balance: money.NewFromFloat(balance, client.Currency()),
	})
	if err != nil {
		return fmt.Errorf("failed to update account: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Updated account %q\n", updated.Name)
	return nil
}

func accountsDeleteRun(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid account ID %q: %w", args[0], err)
	}

	if err := client.DeleteAccount(cmd.Context(), id); err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Deleted account %d\n", id)
	return nil
}

func outputAccountsTable(cmd *cobra.Command, accounts []financery.Account) error {
	t := createStyledTable("ID", "NAME", "BALANCE", "USER ID")

	for _, a := range accounts {
		balance := "-"
		if a.Balance != nil {
			balance = a.Balance.Display()
		}
		t.Row(
			strconv.FormatInt(a.ID, 10),
			a.Name,
			balance,
			strconv.FormatInt(a.UserID, 10),
		)
	}

	fmt.Fprintln(cmd.OutOrStdout(), t)
	return nil
}
