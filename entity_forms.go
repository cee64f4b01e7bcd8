package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/Rhymond/go-money"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/maximkravchenko/fintui/financery"
)

func newAccountForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Key("name").
				Placeholder("Enter an account name...").
				Validate(validateName),

			huh.NewInput().
				Title("Starting Balance").
				Key("balance").
				Placeholder("0").
				Validate(validateBalance),
		),
	)
}

func newTagForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Key("title").
				Placeholder("Enter a tag title...").
				Validate(validateName),
		),
	)
}

// validateBalance accepts an empty value, starting balances default to zero.
func validateBalance(s string) error {
	if s == "" {
		return nil
	}
	if _, err := strconv.ParseFloat(s, 64); err != nil {
		return errors.New("balance must be a valid number")
	}
	return nil
}

func openAccountForm(m *model) (tea.Model, tea.Cmd) {
	if m.state.CurrentUser == nil {
		return m, m.transactions.NewStatusMessage("Select a user before adding accounts")
	}

	m.accountForm = newAccountForm()
	m.previousSessionState = m.sessionState
	m.sessionState = accountForm

	return m, tea.Batch(m.accountForm.Init(), tea.WindowSize())
}

func openTagForm(m *model) (tea.Model, tea.Cmd) {
	if m.state.CurrentUser == nil {
		return m, m.transactions.NewStatusMessage("Select a user before adding tags")
	}

	m.tagForm = newTagForm()
	m.previousSessionState = m.sessionState
	m.sessionState = tagForm

	return m, tea.Batch(m.tagForm.Init(), tea.WindowSize())
}

func (m model) submitAccountForm() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		balance := 0.0
		if s := m.accountForm.GetString("balance"); s != "" {
			parsed, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return accountSavedMsg{err: fmt.Errorf("invalid balance: %w", err)}
			}
			balance = parsed
		}

		created, err := m.client.CreateAccount(ctx, financery.AccountRequest{
			Name:    m.accountForm.GetString("name"),
			Balance: money.NewFromFloat(balance, m.client.Currency()),
			UserID:  m.state.CurrentUser.ID,
		})
		if err != nil {
			return accountSavedMsg{err: err}
		}

		return accountSavedMsg{account: created}
	}
}

func (m model) submitTagForm() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		created, err := m.client.CreateTag(ctx, financery.TagRequest{
			Title:  m.tagForm.GetString("title"),
			UserID: m.state.CurrentUser.ID,
		})
		if err != nil {
			return tagSavedMsg{err: err}
		}

		return tagSavedMsg{tag: created}
	}
}

func accountFormView(m model) string {
	if m.accountForm == nil {
		return ""
	}
	return m.accountForm.View()
}

func tagFormView(m model) string {
	if m.tagForm == nil {
		return ""
	}
	return m.tagForm.View()
}
