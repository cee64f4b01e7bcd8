// Package overview renders the landing screen: a greeting, an
// income/expense summary, the account tree with balances, and a spending
// breakdown by tag.
package overview

import (
	"fmt"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/tree"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/maximkravchenko/fintui/aggregate"
	"github.com/maximkravchenko/fintui/financery"
)

var titleCaser = cases.Title(language.English)

// Model is the state for the overview widget.
type Model struct {
	Styles   Styles
	Viewport viewport.Model

	user         *financery.User
	accounts     []financery.Account
	transactions []financery.Transaction
	summary      aggregate.Summary
}

// Theme is the subset of application colors the widget uses.
type Theme struct {
	Income  lipgloss.Color
	Expense lipgloss.Color
	Muted   lipgloss.Color
	Border  lipgloss.Color
}

type Styles struct {
	IncomeStyle   lipgloss.Style
	ExpenseStyle  lipgloss.Style
	TreeRootStyle lipgloss.Style
	AccountStyle  lipgloss.Style
	BoxStyle      lipgloss.Style
}

func defaultStyles() Styles {
	return Styles{
		IncomeStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color("#00ff00")),
		ExpenseStyle:  lipgloss.NewStyle().Foreground(lipgloss.Color("#ff0000")),
		TreeRootStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("#828282")),
		AccountStyle:  lipgloss.NewStyle().Foreground(lipgloss.Color("#d29b1d")),

		BoxStyle: lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(1, 2),
	}
}

type Option func(*Model)

// WithTheme colors the widget from the application theme.
func WithTheme(t Theme) Option {
	return func(m *Model) {
		m.Styles.IncomeStyle = lipgloss.NewStyle().Foreground(t.Income)
		m.Styles.ExpenseStyle = lipgloss.NewStyle().Foreground(t.Expense)
		m.Styles.TreeRootStyle = lipgloss.NewStyle().Foreground(t.Muted)
		m.Styles.BoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Border).Padding(1, 2)
	}
}

func New(opts ...Option) Model {
	m := Model{
		Styles:   defaultStyles(),
		Viewport: viewport.New(0, 20),
		// zero-valued money keeps the currency set before first data
		summary: aggregate.Totals(nil),
	}

	for _, opt := range opts {
		opt(&m)
	}

	m.UpdateViewport()

	return m
}

func (m *Model) SetUser(user *financery.User) {
	m.user = user
	m.UpdateViewport()
}

func (m *Model) SetAccounts(accounts []financery.Account) {
	m.accounts = accounts
	m.UpdateViewport()
}

func (m *Model) SetTransactions(transactions []financery.Transaction) {
	m.transactions = transactions
	m.summary = aggregate.Totals(transactions)
	m.UpdateViewport()
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.Viewport, cmd = m.Viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	return m.Viewport.View()
}

func (m *Model) SetSize(width, height int) {
	m.Viewport.Width = width
	m.Viewport.Height = height
}

func (m *Model) UpdateViewport() {
	accountTreeContent := m.Styles.BoxStyle.Render(
		lipgloss.JoinVertical(lipgloss.Top,
			m.accountTree().String(),
			fmt.Sprintf("Total Balance: %s", m.Styles.IncomeStyle.Render(m.totalBalance().Display())),
		),
	)

	tagBreakdown := m.Styles.BoxStyle.Render(
		lipgloss.JoinVertical(lipgloss.Top,
			lipgloss.NewStyle().Bold(true).Render("Spending by Tag"),
			m.tagBreakdownTable().View(),
		),
	)

	mainContent := lipgloss.JoinHorizontal(lipgloss.Top,
		m.summaryView(),
		accountTreeContent,
		tagBreakdown,
	)

	m.Viewport.SetContent(
		lipgloss.JoinVertical(lipgloss.Top,
			m.headerView(),
			mainContent,
		),
	)
}

func (m *Model) headerView() string {
	if m.user == nil {
		return "Overview"
	}

	return fmt.Sprintf("Welcome - %s!", titleCaser.String(m.user.Name))
}

func (m Model) summaryView() string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Income: %s\n", m.Styles.IncomeStyle.Render(m.summary.Income.Display())))
	b.WriteString(fmt.Sprintf("Spent: %s\n", m.Styles.ExpenseStyle.Render(m.summary.Expense.Display())))
	if m.summary.Net.IsNegative() {
		b.WriteString(fmt.Sprintf("Net: %s", m.Styles.ExpenseStyle.Render(m.summary.Net.Display())))
	} else {
		b.WriteString(fmt.Sprintf("Net: %s", m.Styles.IncomeStyle.Render(m.summary.Net.Display())))
	}

	return m.Styles.BoxStyle.Render(b.String())
}

func (m *Model) accountTree() *tree.Tree {
	t := tree.New().Root(m.Styles.TreeRootStyle.Render("Accounts"))

	for _, a := range m.accounts {
		balance := "-"
		if a.Balance != nil {
			balance = a.Balance.Display()
		}

		text := fmt.Sprintf("%s (%s)", a.Name, balance)
		t.Child(m.Styles.AccountStyle.Render(text))
	}

	return t
}

// totalBalance sums the balances of every account, skipping accounts the
// backend sent without one.
func (m *Model) totalBalance() *money.Money {
	currency := financery.DefaultCurrency
	for _, a := range m.accounts {
		if a.Balance != nil {
			currency = a.Balance.Currency().Code
			break
		}
	}

	total := money.New(0, currency)
	for _, a := range m.accounts {
		if a.Balance == nil {
			continue
		}
		if sum, err := total.Add(a.Balance); err == nil {
			total = sum
		}
	}
	return total
}

func (m *Model) tagBreakdownTable() table.Model {
	buckets := aggregate.TagBreakdown(m.transactions, financery.Expense)

	rows := make([]table.Row, len(buckets))
	for i, b := range buckets {
		rows[i] = table.Row{b.Title, b.Total.Display()}
	}

	return table.New(
		table.WithColumns([]table.Column{
			{Title: "Tag", Width: 20},
			{Title: "Total Spent", Width: 15},
		}),
		table.WithRows(rows),
	)
}
