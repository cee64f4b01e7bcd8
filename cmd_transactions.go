package main

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/Rhymond/go-money"
	"github.com/spf13/cobra"

	"github.com/maximkravchenko/fintui/financery"
)

// transactionsCmd represents the transactions command.
var transactionsCmd = &cobra.Command{
	Use:   "transactions",
	Short: "Transaction management commands",
	Long:  `Commands for managing transactions on the Financery backend.`,
}

var transactionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List transactions for a user",
	RunE:  transactionsListRun,
}

var transactionsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new transaction",
	RunE:  transactionsCreateRun,
}

var transactionsUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a transaction",
	Long:  `Replace a transaction. All fields are sent as given; moving it to a different account corrects both balances on the next fetch.`,
	Args:  cobra.ExactArgs(1),
	RunE:  transactionsUpdateRun,
}

var transactionsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a transaction",
	Args:  cobra.ExactArgs(1),
	RunE:  transactionsDeleteRun,
}

func init() {
	transactionsCmd.AddCommand(transactionsListCmd)
	transactionsCmd.AddCommand(transactionsCreateCmd)
	transactionsCmd.AddCommand(transactionsUpdateCmd)
	transactionsCmd.AddCommand(transactionsDeleteCmd)

	transactionsListCmd.Flags().StringP("output", "o", tableOutputFormat, "Output format: table or json")
	transactionsListCmd.Flags().Int64("user", 0, "user ID to list transactions for")
	_ = transactionsListCmd.MarkFlagRequired("user")

	transactionsCreateCmd.Flags().String("name", "", "transaction name")
	transactionsCreateCmd.Flags().Float64("amount", 0, "positive amount; direction comes from --type")
	transactionsCreateCmd.Flags().String("type", "expense", "transaction type: income or expense")
	transactionsCreateCmd.Flags().String("date", time.Now().Format(financery.DateFormat), "transaction date (DD.MM.YYYY)")
	transactionsCreateCmd.Flags().String("description", "", "transaction description")
	transactionsCreateCmd.Flags().Int64("user", 0, "owning user ID")
	transactionsCreateCmd.Flags().Int64("account", 0, "owning account ID")
	transactionsCreateCmd.Flags().Int64Slice("tag", nil, "tag ID, repeatable")
	_ = transactionsCreateCmd.MarkFlagRequired("name")
	_ = transactionsCreateCmd.MarkFlagRequired("amount")
	_ = transactionsCreateCmd.MarkFlagRequired("user")
	_ = transactionsCreateCmd.MarkFlagRequired("account")

	transactionsUpdateCmd.Flags().String("name", "", "transaction name")
	transactionsUpdateCmd.Flags().Float64("amount", 0, "positive amount; direction comes from --type")
	transactionsUpdateCmd.Flags().String("type", "expense", "transaction type: income or expense")
	transactionsUpdateCmd.Flags().String("date", time.Now().Format(financery.DateFormat), "transaction date (DD.MM.YYYY)")
	transactionsUpdateCmd.Flags().String("description", "", "transaction description")
	transactionsUpdateCmd.Flags().Int64("user", 0, "owning user ID")
	transactionsUpdateCmd.Flags().Int64("account", 0, "owning account ID")
	transactionsUpdateCmd.Flags().Int64Slice("tag", nil, "tag ID, repeatable")
	_ = transactionsUpdateCmd.MarkFlagRequired("name")
	_ = transactionsUpdateCmd.MarkFlagRequired("amount")
	_ = transactionsUpdateCmd.MarkFlagRequired("user")
	_ = transactionsUpdateCmd.MarkFlagRequired("account")
}

func transactionsListRun(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	outputFormat, err := validateOutputFormat(cmd)
	if err != nil {
		return err
	}

	userID, _ := cmd.Flags().GetInt64("user")

	ts, err := client.GetTransactionsByUser(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to fetch transactions: %w", err)
	}

	// most recent first
	sort.Slice(ts, func(i, j int) bool {
		return ts[i].Date.After(ts[j].Date)
	})

	switch outputFormat {
	case jsonOutputFormat:
		return outputJSON(cmd, ts)
	case tableOutputFormat:
		return outputTransactionsTable(cmd, ts)
	default:
		return errors.New("unsupported output format")
	}
}

// transactionRequestFromFlags validates the shared create/update flags and
// builds the request.
func transactionRequestFromFlags(cmd *cobra.Command) (financery.TransactionRequest, error) {
	name, _ := cmd.Flags().GetString("name")
	amount, _ := cmd.Flags().GetFloat64("amount")
	typeStr, _ := cmd.Flags().GetString("type")
	dateStr, _ := cmd.Flags().GetString("date")
	description, _ := cmd.Flags().GetString("description")
	userID, _ := cmd.Flags().GetInt64("user")
	accountID, _ := cmd.Flags().GetInt64("account")
	tagIDs, _ := cmd.Flags().GetInt64Slice("tag")

	if amount <= 0 || amount > maxTransactionAmount {
		return financery.TransactionRequest{}, fmt.Errorf("amount must be between 0 and %d exclusive", maxTransactionAmount)
	}

	typ := financery.TransactionType(typeStr)
	if typ != financery.Income && typ != financery.Expense {
		return financery.TransactionRequest{}, fmt.Errorf("unknown transaction type %q, expected income or expense", typeStr)
	}

	date, err := time.Parse(financery.DateFormat, dateStr)
	if err != nil {
		return financery.TransactionRequest{}, fmt.Errorf("invalid date %q, expected DD.MM.YYYY: %w", dateStr, err)
	}

	return financery.TransactionRequest{
		Name:        name,
		Amount:      money.NewFromFloat(amount, client.Currency()),
		Description: description,
		Date:        date,
		Type:        typ,
		UserID:      userID,
		AccountID:   accountID,
		TagIDs:      tagIDs,
	}, nil
}

func transactionsCreateRun(cmd *cobra.Command, _ []string) error {
	req, err := transactionRequestFromFlags(cmd)
	if err != nil {
		return err
	}

	created, err := client.CreateTransaction(cmd.Context(), req)
	if err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created transaction %q with ID %d\n", created.Name, created.ID)
	return nil
}

func transactionsUpdateRun(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid transaction ID %q: %w", args[0], err)
	}

	req, err := transactionRequestFromFlags(cmd)
	if err != nil {
		return err
	}

	updated, err := client.UpdateTransaction(cmd.Context(), id, req)
	if err != nil {
		return fmt.Errorf("failed to update transaction: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Updated transaction %q\n", updated.Name)
	return nil
}

func transactionsDeleteRun(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid transaction ID %q: %w", args[0], err)
	}

	if err := client.DeleteTransaction(cmd.Context(), id); err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Deleted transaction %d\n", id)
	return nil
}

func outputTransactionsTable(cmd *cobra.Command, ts []financery.Transaction) error {
	t := createStyledTable("ID", "DATE", "NAME", "TYPE", "AMOUNT", "ACCOUNT ID", "TAGS")

	for _, tr := range ts {
		amount := "-"
		if tr.Amount != nil {
			amount = tr.Amount.Display()
		}

		titles := make([]string, len(tr.Tags))
		for i, tag := range tr.Tags {
			titles[i] = tag.Title
		}
		tags := strings.Join(titles, ", ")
		if tags == "" {
			tags = "-"
		}

		t.Row(
			strconv.FormatInt(tr.ID, 10),
			tr.Date.Format(financery.DateFormat),
			tr.Name,
			string(tr.Type),
			amount,
			strconv.FormatInt(tr.AccountID, 10),
			tags,
		)
	}

	fmt.Fprintln(cmd.OutOrStdout(), t)
	return nil
}
