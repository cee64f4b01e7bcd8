package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/maximkravchenko/fintui/aggregate"
	"github.com/maximkravchenko/fintui/financery"
)

func updateStats(msg tea.Msg, m model) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.statsViewport, cmd = m.statsViewport.Update(msg)
	return m, cmd
}

func statsView(m model) string {
	return m.statsViewport.View()
}

// filterByAccount keeps transactions belonging to the given account.
// accountID 0 means no filter.
func filterByAccount(ts []financery.Transaction, accountID int64) []financery.Transaction {
	if accountID == 0 {
		return ts
	}

	var out []financery.Transaction
	for _, t := range ts {
		if t.AccountID == accountID {
			out = append(out, t)
		}
	}
	return out
}

// filterThisMonth keeps transactions dated in the calendar month of now.
func filterThisMonth(ts []financery.Transaction, now time.Time) []financery.Transaction {
	var out []financery.Transaction
	for _, t := range ts {
		if t.Date.Year() == now.Year() && t.Date.Month() == now.Month() {
			out = append(out, t)
		}
	}
	return out
}

// nextAccountFilter cycles all accounts -> first -> second -> ... -> all.
func nextAccountFilter(accounts []financery.Account, current int64) int64 {
	if len(accounts) == 0 {
		return 0
	}

	if current == 0 {
		return accounts[0].ID
	}

	for i, a := range accounts {
		if a.ID == current {
			if i == len(accounts)-1 {
				return 0
			}
			return accounts[i+1].ID
		}
	}
	return 0
}

// filteredTransactions applies the stats screen's account and period
// filters to the snapshot.
func (m model) filteredTransactions(now time.Time) []financery.Transaction {
	ts := filterByAccount(m.state.Transactions, m.statsAccountID)
	if m.statsThisMonth {
		ts = filterThisMonth(ts, now)
	}
	return ts
}

func (m model) statsFilterLine() string {
	period := "all time"
	if m.statsThisMonth {
		period = "this month"
	}

	account := "all accounts"
	for _, a := range m.state.Accounts {
		if a.ID == m.statsAccountID {
			account = a.Name
			break
		}
	}

	return fmt.Sprintf("Period: %s | Account: %s", period, account)
}

// renderStats builds the statistics screen: totals, a per-tag expense
// breakdown, and a time-bucketed income/expense chart at the selected
// granularity, restricted by the active period and account filters.
func (m model) renderStats() string {
	ts := m.filteredTransactions(time.Now())
	summary := aggregate.Totals(ts)

	boxStyle := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(1, 2)
	incomeStyle := lipgloss.NewStyle().Foreground(m.theme.Income)
	expenseStyle := lipgloss.NewStyle().Foreground(m.theme.Expense)

	var totals strings.Builder
	totals.WriteString(fmt.Sprintf("Income: %s\n", incomeStyle.Render(summary.Income.Display())))
	totals.WriteString(fmt.Sprintf("Spent: %s\n", expenseStyle.Render(summary.Expense.Display())))
	if summary.Net.IsNegative() {
		totals.WriteString(fmt.Sprintf("Net: %s", expenseStyle.Render(summary.Net.Display())))
	} else {
		totals.WriteString(fmt.Sprintf("Net: %s", incomeStyle.Render(summary.Net.Display())))
	}

	breakdown := boxStyle.Render(
		lipgloss.JoinVertical(lipgloss.Top,
			lipgloss.NewStyle().Bold(true).Render("Spending by Tag"),
			tagBreakdownTable(ts).View(),
		),
	)

	chart := boxStyle.Render(
		lipgloss.JoinVertical(lipgloss.Top,
			lipgloss.NewStyle().Bold(true).Render(fmt.Sprintf("Cash Flow (%s)", m.granularity)),
			m.renderSeries(ts),
		),
	)

	top := lipgloss.JoinHorizontal(lipgloss.Top, boxStyle.Render(totals.String()), breakdown)

	return lipgloss.JoinVertical(lipgloss.Top, m.statsFilterLine(), top, chart)
}

func tagBreakdownTable(ts []financery.Transaction) table.Model {
	buckets := aggregate.TagBreakdown(ts, financery.Expense)

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
		table.WithHeight(len(rows)+1),
	)
}

// renderSeries draws one line per non-empty bucket with bars scaled to
// the largest bucket in the window.
func (m model) renderSeries(ts []financery.Transaction) string {
	buckets := aggregate.Series(ts, m.granularity, time.Now())

	var peak int64 = 1
	for _, b := range buckets {
		if v := b.Income.Amount(); v > peak {
			peak = v
		}
		if v := b.Expense.Amount(); v > peak {
			peak = v
		}
	}

	const barWidth = 20
	incomeStyle := lipgloss.NewStyle().Foreground(m.theme.Income)
	expenseStyle := lipgloss.NewStyle().Foreground(m.theme.Expense)

	var b strings.Builder
	empty := true
	for _, bucket := range buckets {
		if bucket.Income.IsZero() && bucket.Expense.IsZero() {
			continue
		}
		empty = false

		label := bucket.Start.Format(bucketLabelFormat(m.granularity))
		incomeBar := strings.Repeat("█", int(bucket.Income.Amount()*barWidth/peak))
		expenseBar := strings.Repeat("█", int(bucket.Expense.Amount()*barWidth/peak))

		b.WriteString(fmt.Sprintf("%s  %s %s\n", label,
			incomeStyle.Render(fmt.Sprintf("%-*s", barWidth, incomeBar)),
			expenseStyle.Render(expenseBar),
		))
	}

	if empty {
		return "No transactions in this window."
	}

	return strings.TrimRight(b.String(), "\n")
}

func bucketLabelFormat(g aggregate.Granularity) string {
	switch g {
	case aggregate.Day, aggregate.Week:
		return "02.01 15:04"
	case aggregate.Year:
		return "Jan 2006"
	default:
		return "02.01"
	}
}
