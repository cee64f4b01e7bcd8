package main

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/maximkravchenko/fintui/aggregate"
	"github.com/maximkravchenko/fintui/financery"
	"github.com/maximkravchenko/fintui/overview"
	"github.com/maximkravchenko/fintui/store"
)

type model struct {
	// client talks to the Financery backend
	client *financery.Client
	// state is the finance snapshot; every mutation goes through dispatch
	state store.State

	// loadingSpinner is a spinner model for the initial loading state
	loadingSpinner spinner.Model

	keys   keyMap
	help   help.Model
	styles styles
	theme  Theme

	// sessionState is the current state of the session
	sessionState         sessionState
	previousSessionState sessionState

	overview overview.Model
	// transactions is a bubbletea list model of financial transactions
	transactions list.Model
	// transactionsListKeys is the keybindings for the transactions list
	transactionsListKeys *transactionListKeyMap
	// userList picks the current user
	userList list.Model
	// transactionForm is the active new-transaction form, nil when closed
	transactionForm *huh.Form
	// accountForm and tagForm are the active entity forms, nil when closed
	accountForm *huh.Form
	tagForm     *huh.Form

	statsViewport viewport.Model
	// granularity selects the chart window on the stats screen
	granularity aggregate.Granularity
	// statsThisMonth restricts the stats screen to the current month
	statsThisMonth bool
	// statsAccountID restricts the stats screen to one account, 0 for all
	statsAccountID int64

	loadingState loadingState
	// fetchEpoch tags in-flight fetches; results from a superseded
	// user switch carry an old epoch and are discarded
	fetchEpoch int
	// rememberedUserID biases initial user selection, 0 when absent
	rememberedUserID int64

	errorMsg string
}

func newModel(client *financery.Client, cfg Config) model {
	theme := newTheme(cfg.Colors)
	appStyles := createStyles(theme)

	m := model{
		client:       client,
		keys:         initializeKeyMap(),
		help:         createHelpModel(theme),
		styles:       appStyles,
		theme:        theme,
		sessionState: loading,
		granularity:  aggregate.Month,
		loadingState: newLoadingState("accounts", "transactions", "tags"),
		loadingSpinner: spinner.New(
			spinner.WithSpinner(spinner.Dot),
		),
		overview:      overview.New(overview.WithTheme(overview.Theme{Income: theme.Income, Expense: theme.Expense, Muted: theme.Muted, Border: theme.Border})),
		statsViewport: viewport.New(0, 20),
	}

	m.rememberedUserID = loadRememberedUser()

	tlKeyMap := newTransactionListKeyMap()
	m.transactionsListKeys = tlKeyMap

	delegate := m.newItemDelegate(newTransactionDelegateKeyMap())
	transactionList := list.New([]list.Item{}, delegate, 0, 0)
	transactionList.SetShowTitle(false)
	transactionList.StatusMessageLifetime = 3 * time.Second
	transactionList.AdditionalFullHelpKeys = func() []key.Binding {
		return []key.Binding{tlKeyMap.overview, tlKeyMap.newTransaction}
	}
	m.transactions = transactionList

	userList := list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0)
	userList.SetShowTitle(false)
	m.userList = userList

	return m
}

func (m model) Init() tea.Cmd {
	return tea.Batch(
		m.getUsers,
		m.loadingSpinner.Tick,
	)
}

// dispatch applies one intent to the snapshot.
func (m *model) dispatch(in store.Intent) {
	m.state = store.Apply(m.state, in)
}

// checkIfLoading keeps the loading screen up until every slice of the
// current user's data has arrived.
func (m model) checkIfLoading() sessionState {
	if done, _ := m.loadingState.allLoaded(); !done {
		return loading
	}

	return overviewState
}
