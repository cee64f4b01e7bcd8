package main

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/log"

	"github.com/maximkravchenko/fintui/aggregate"
)

type keyMap struct {
	transactions    key.Binding
	overview        key.Binding
	users           key.Binding
	stats           key.Binding
	newTransaction  key.Binding
	newAccount      key.Binding
	newTag          key.Binding
	nextGranularity key.Binding
	togglePeriod    key.Binding
	nextAccount     key.Binding
	escape          key.Binding
	fullHelp        key.Binding
	quit            key.Binding
}

func (km keyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		km.overview,
		km.transactions,
		km.stats,
		km.users,
		km.quit,
		km.fullHelp,
	}
}

func (km keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{
			km.overview,
			km.transactions,
			km.stats,
			km.users,
			km.quit,
			km.fullHelp,
		},
		{
			km.newTransaction,
			km.newAccount,
			km.newTag,
		},
		{
			km.nextGranularity,
			km.togglePeriod,
			km.nextAccount,
		},
	}
}

func initializeKeyMap() keyMap {
	keys := keyMap{
		transactions: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "transactions"),
		),
		overview: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "overview"),
		),
		users: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "switch user"),
		),
		stats: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "statistics"),
		),
		newTransaction: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new transaction"),
		),
		newAccount: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "new account"),
		),
		newTag: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "new tag"),
		),
		nextGranularity: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "chart range"),
		),
		togglePeriod: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "all time/this month"),
		),
		nextAccount: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "account filter"),
		),
		escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "escape"),
		),
		fullHelp: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
	return keys
}

func handleKeyPress(msg tea.KeyMsg, m *model) (tea.Model, tea.Cmd) {
	k := msg.String()
	log.Debug("key pressed", "key", k)

	// Handle special keys first
	if model, cmd := handleSpecialKeys(msg, m); cmd != nil {
		return model, cmd
	}

	// Check if input is blocked by active forms
	if isInputBlocked(m) {
		return m, nil
	}

	// Handle session state changes
	if model, cmd := handleSessionStateKeys(msg, m); cmd != nil {
		return model, cmd
	}

	return m, nil
}

func handleSpecialKeys(msg tea.KeyMsg, m *model) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.quit) {
		if m.sessionState == transactions && m.transactions.FilterState() == list.Filtering {
			return m, nil
		}
		return m, tea.Quit
	}

	if key.Matches(msg, m.keys.escape) {
		return handleEscape(msg, m)
	}

	return m, nil
}

func isInputBlocked(m *model) bool {
	if m.sessionState == transactions && m.transactions.FilterState() == list.Filtering {
		return true
	}

	if m.transactionForm != nil && m.transactionForm.State == huh.StateNormal {
		return true
	}

	if m.accountForm != nil && m.accountForm.State == huh.StateNormal {
		return true
	}

	if m.tagForm != nil && m.tagForm.State == huh.StateNormal {
		return true
	}

	if m.sessionState == loading {
		return true
	}

	return false
}

func handleSessionStateKeys(msg tea.KeyMsg, m *model) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.transactions):
		if m.sessionState != transactions {
			m.previousSessionState = m.sessionState
			m.sessionState = transactions
			return m, tea.WindowSize()
		}

	case key.Matches(msg, m.keys.overview):
		if m.sessionState != overviewState {
			m.previousSessionState = m.sessionState
			m.sessionState = overviewState
			return m, tea.WindowSize()
		}

	case key.Matches(msg, m.keys.users):
		if m.sessionState != users {
			m.previousSessionState = m.sessionState
			m.sessionState = users
			return m, tea.WindowSize()
		}

	case key.Matches(msg, m.keys.stats):
		if m.sessionState != stats {
			m.previousSessionState = m.sessionState
			m.sessionState = stats
			m.statsViewport.SetContent(m.renderStats())
			return m, tea.WindowSize()
		}

	case key.Matches(msg, m.keys.newTransaction):
		if m.sessionState != transactionForm {
			return openTransactionForm(m)
		}

	case key.Matches(msg, m.keys.newAccount):
		if m.sessionState != accountForm {
			return openAccountForm(m)
		}

	case key.Matches(msg, m.keys.newTag):
		if m.sessionState != tagForm {
			return openTagForm(m)
		}

	case key.Matches(msg, m.keys.nextGranularity):
		if m.sessionState == stats {
			m.granularity = nextGranularity(m.granularity)
			m.statsViewport.SetContent(m.renderStats())
			return m, tea.WindowSize()
		}

	case key.Matches(msg, m.keys.togglePeriod):
		if m.sessionState == stats {
			m.statsThisMonth = !m.statsThisMonth
			m.statsViewport.SetContent(m.renderStats())
			return m, tea.WindowSize()
		}

	case key.Matches(msg, m.keys.nextAccount):
		if m.sessionState == stats {
			m.statsAccountID = nextAccountFilter(m.state.Accounts, m.statsAccountID)
			m.statsViewport.SetContent(m.renderStats())
			return m, tea.WindowSize()
		}

	case key.Matches(msg, m.keys.fullHelp):
		if m.sessionState != transactions {
			m.help.ShowAll = !m.help.ShowAll
			return m, tea.WindowSize()
		}
	}

	return m, nil
}

func nextGranularity(g aggregate.Granularity) aggregate.Granularity {
	switch g {
	case aggregate.Day:
		return aggregate.Week
	case aggregate.Week:
		return aggregate.Month
	case aggregate.Month:
		return aggregate.Year
	default:
		return aggregate.Day
	}
}

// handleEscape resets the session state to the overview state.
func handleEscape(msg tea.KeyMsg, m *model) (tea.Model, tea.Cmd) {
	if m.sessionState == transactionForm {
		log.Debug("handling escape in transaction form state")
		m.previousSessionState = overviewState
		m.sessionState = transactions
		if m.transactionForm != nil {
			m.transactionForm.State = huh.StateAborted
		}
		return m, tea.WindowSize()
	}

	if m.sessionState == accountForm || m.sessionState == tagForm {
		if m.accountForm != nil {
			m.accountForm.State = huh.StateAborted
		}
		if m.tagForm != nil {
			m.tagForm.State = huh.StateAborted
		}
		m.sessionState = overviewState
		return m, tea.WindowSize()
	}

	// handle if user is filtering transactions and presses escape
	if m.sessionState == transactions && m.transactions.FilterState() == list.Filtering {
		log.Debug("handling escape in transactions filtering")
		var cmd tea.Cmd
		m.transactions, cmd = m.transactions.Update(msg)
		return m, cmd
	}

	m.previousSessionState = m.sessionState
	m.sessionState = overviewState
	return m, tea.WindowSize()
}
