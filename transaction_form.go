package main

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/Rhymond/go-money"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/log"

	"github.com/maximkravchenko/fintui/financery"
)

// maxTransactionAmount is the backend's ceiling on a single transaction.
const maxTransactionAmount = 1_000_000

func newTransactionForm(accounts []financery.Account, tags []financery.Tag) *huh.Form {
	accountOpts := make([]huh.Option[int64], len(accounts))
	for i, a := range accounts {
		label := a.Name
		if a.Balance != nil {
			label = fmt.Sprintf("%s (%s)", a.Name, a.Balance.Display())
		}
		accountOpts[i] = huh.NewOption(label, a.ID)
	}
	sort.Slice(accountOpts, func(i, j int) bool {
		return accountOpts[i].Key < accountOpts[j].Key
	})

	tagOpts := make([]huh.Option[int64], len(tags))
	for i, t := range tags {
		tagOpts[i] = huh.NewOption(t.Title, t.ID)
	}
	sort.Slice(tagOpts, func(i, j int) bool {
		return tagOpts[i].Key < tagOpts[j].Key
	})

	typeOpts := []huh.Option[string]{
		huh.NewOption("Expense", string(financery.Expense)),
		huh.NewOption("Income", string(financery.Income)),
	}

	today := time.Now().Format(financery.DateFormat)

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Description("What the transaction was for").
				Key("name").
				Placeholder("Enter a name...").
				Validate(validateName),

			huh.NewInput().
				Title("Amount").
				Description("Positive amount, direction comes from the type").
				Key("amount").
				Placeholder("12.50").
				Validate(validateAmount),

			huh.NewInput().
				Title("Date").
				Description("Transaction date (DD.MM.YYYY)").
				Key("date").
				Value(&today).
				Placeholder("DD.MM.YYYY").
				Validate(validateDate),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Type").
				Description("Income adds to the account, expense subtracts").
				Options(typeOpts...).
				Key("type"),

			huh.NewSelect[int64]().
				Title("Account").
				Description("The account the transaction belongs to").
				Options(accountOpts...).
				Key("account"),
		),
		huh.NewGroup(
			huh.NewMultiSelect[int64]().
				Title("Tags (Optional)").
				Options(tagOpts...).
				Key("tags"),

			huh.NewText().
				Title("Description (Optional)").
				Key("description").
				Placeholder("Enter a description..."),
		),
	)
}

func validateName(s string) error {
	if s == "" {
		return errors.New("name is required")
	}
	return nil
}

func validateAmount(s string) error {
	if s == "" {
		return errors.New("amount is required")
	}

	amount, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return errors.New("amount must be a valid number")
	}
	if amount <= 0 {
		return errors.New("amount must be greater than zero")
	}
	if amount > maxTransactionAmount {
		return fmt.Errorf("amount must not exceed %d", maxTransactionAmount)
	}

	return nil
}

func validateDate(s string) error {
	if s == "" {
		return errors.New("date is required")
	}
	if _, err := time.Parse(financery.DateFormat, s); err != nil {
		return errors.New("date must be in DD.MM.YYYY format")
	}
	return nil
}

func openTransactionForm(m *model) (tea.Model, tea.Cmd) {
	if m.state.CurrentUser == nil || len(m.state.Accounts) == 0 {
		return m, m.transactions.NewStatusMessage("Create an account before adding transactions")
	}

	m.transactionForm = newTransactionForm(m.state.Accounts, m.state.Tags)
	m.previousSessionState = m.sessionState
	m.sessionState = transactionForm

	return m, tea.Batch(m.transactionForm.Init(), tea.WindowSize())
}

// submitTransactionForm reads the completed form and sends the create
// request. Values were validated by the form already.
func (m model) submitTransactionForm() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		amount, err := strconv.ParseFloat(m.transactionForm.GetString("amount"), 64)
		if err != nil {
			return transactionSavedMsg{err: fmt.Errorf("invalid amount: %w", err)}
		}

		date, err := time.Parse(financery.DateFormat, m.transactionForm.GetString("date"))
		if err != nil {
			return transactionSavedMsg{err: fmt.Errorf("invalid date: %w", err)}
		}

		accountID, ok := m.transactionForm.Get("account").(int64)
		if !ok {
			return transactionSavedMsg{err: errors.New("account not found in form")}
		}

		var tagIDs []int64
		if v, isIDs := m.transactionForm.Get("tags").([]int64); isIDs {
			tagIDs = v
		}

		req := financery.TransactionRequest{
			Name:        m.transactionForm.GetString("name"),
			Amount:      money.NewFromFloat(amount, m.client.Currency()),
			Description: m.transactionForm.GetString("description"),
			Date:        date,
			Type:        financery.TransactionType(m.transactionForm.GetString("type")),
			UserID:      m.state.CurrentUser.ID,
			AccountID:   accountID,
			TagIDs:      tagIDs,
		}

		log.Debug("creating transaction", "name", req.Name, "account", accountID)

		created, err := m.client.CreateTransaction(ctx, req)
		if err != nil {
			return transactionSavedMsg{err: err}
		}

		return transactionSavedMsg{transaction: created}
	}
}

func transactionFormView(m model) string {
	if m.transactionForm == nil {
		return ""
	}
	return m.transactionForm.View()
}
