package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/maximkravchenko/fintui/financery"
)

type transactionItem struct {
	t       financery.Transaction
	account financery.Account
}

func (t transactionItem) Title() string {
	return t.t.Name
}

func (t transactionItem) Description() string {
	var amount string
	if t.t.Amount != nil {
		amount = t.t.Amount.Display()
	}

	direction := "-"
	if t.t.Type == financery.Income {
		direction = "+"
	}

	parts := []string{
		t.t.Date.Format(financery.DateFormat),
		t.account.Name,
		direction + amount,
	}

	if len(t.t.Tags) > 0 {
		titles := make([]string, len(t.t.Tags))
		for i, tag := range t.t.Tags {
			titles[i] = tag.Title
		}
		parts = append(parts, strings.Join(titles, ", "))
	}

	return strings.Join(parts, " | ")
}

func (t transactionItem) FilterValue() string {
	return t.t.Name
}

type transactionListKeyMap struct {
	overview       key.Binding
	newTransaction key.Binding
}

func newTransactionListKeyMap() *transactionListKeyMap {
	return &transactionListKeyMap{
		overview: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "overview"),
		),
		newTransaction: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new transaction"),
		),
	}
}

func updateTransactions(msg tea.Msg, m model) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		h, v := m.styles.docStyle.GetFrameSize()
		m.transactions.SetSize(msg.Width-h, msg.Height-v)
		return m, nil

	case tea.KeyMsg:
		// if the list is filtering, don't process key events
		if m.transactions.FilterState() == list.Filtering {
			break
		}

		if key.Matches(msg, m.transactionsListKeys.overview) {
			m.sessionState = overviewState
			return m, nil
		}

		if key.Matches(msg, m.transactionsListKeys.newTransaction) {
			return openTransactionForm(&m)
		}
	}

	var cmd tea.Cmd
	m.transactions, cmd = m.transactions.Update(msg)

	return m, cmd
}

func transactionsView(m model) string {
	if len(m.transactions.Items()) == 0 {
		return fmt.Sprintf("No transactions yet. Press %q to add one.", "n")
	}

	return m.transactions.View()
}
