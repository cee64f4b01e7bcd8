package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/maximkravchenko/fintui/financery"
	"github.com/maximkravchenko/fintui/store"
)

const fetchTimeout = 30 * time.Second

var errNoUsers = errors.New("no users found")

// Message types for backend responses. The per-user messages carry the
// fetch epoch they were started under so stale results from a superseded
// user switch can be discarded.
type (
	getUsersMsg struct {
		users []financery.User
		err   error
	}

	getAccountsMsg struct {
		epoch    int
		accounts []financery.Account
		err      error
	}

	getTransactionsMsg struct {
		epoch        int
		transactions []financery.Transaction
		err          error
	}

	getTagsMsg struct {
		epoch int
		tags  []financery.Tag
		err   error
	}

	transactionSavedMsg struct {
		transaction financery.Transaction
		err         error
	}

	accountSavedMsg struct {
		account financery.Account
		err     error
	}

	tagSavedMsg struct {
		tag financery.Tag
		err error
	}

	transactionDeletedMsg struct {
		id  int64
		err error
	}
)

// Message handlers.
func (m model) handleWindowSize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	h, v := m.styles.docStyle.GetFrameSize()

	takenHeight := 5
	m.overview.SetSize(msg.Width-h, msg.Height-v-takenHeight)
	m.overview.Viewport.Width = msg.Width
	m.overview.Viewport.Height = msg.Height - takenHeight

	m.transactions.SetSize(msg.Width-h, msg.Height-v-takenHeight)
	m.userList.SetSize(msg.Width-h, msg.Height-v-takenHeight)
	m.statsViewport.Width = msg.Width - h
	m.statsViewport.Height = msg.Height - v - takenHeight

	m.help.Width = msg.Width

	if m.transactionForm != nil {
		m.transactionForm = m.transactionForm.WithHeight(msg.Height - 5).WithWidth(msg.Width)
	}
	if m.accountForm != nil {
		m.accountForm = m.accountForm.WithHeight(msg.Height - 5).WithWidth(msg.Width)
	}
	if m.tagForm != nil {
		m.tagForm = m.tagForm.WithHeight(msg.Height - 5).WithWidth(msg.Width)
	}

	return m, nil
}

func (m model) handleSpinnerTick(msg spinner.TickMsg) (tea.Model, tea.Cmd) {
	if m.sessionState != loading {
		return m, nil
	}

	var cmd tea.Cmd
	m.loadingSpinner, cmd = m.loadingSpinner.Update(msg)
	return m, cmd
}

func (m model) handleGetUsers(msg getUsersMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		return m.handleFetchError(msg.err)
	}

	if len(msg.users) == 0 {
		m.dispatch(store.SetError{Err: errNoUsers})
		m.errorMsg = "no users found on the backend, create one with 'fintui users create'"
		m.sessionState = errorState
		return m, nil
	}

	m.dispatch(store.SetUsers{Users: msg.users})

	current := msg.users[0]
	for _, u := range msg.users {
		if u.ID == m.rememberedUserID {
			current = u
			break
		}
	}

	m.setUserItems()
	return m.switchUser(current)
}

// switchUser makes the given user current and starts a fresh fetch of
// their data under a new epoch.
func (m model) switchUser(u financery.User) (tea.Model, tea.Cmd) {
	m.fetchEpoch++
	u2 := u
	m.dispatch(store.SetCurrentUser{User: &u2})
	m.dispatch(store.SetCurrentAccount{Account: nil})
	m.dispatch(store.SetLoading{Loading: true})
	m.statsAccountID = 0

	m.rememberedUserID = u.ID
	if err := saveRememberedUser(u.ID); err != nil {
		log.Debug("could not persist current user", "error", err)
	}

	m.loadingState = newLoadingState("accounts", "transactions", "tags")
	m.sessionState = loading

	return m, tea.Batch(m.getAccounts(u.ID, m.fetchEpoch), m.loadingSpinner.Tick)
}

func (m model) handleGetAccounts(msg getAccountsMsg) (tea.Model, tea.Cmd) {
	if msg.epoch != m.fetchEpoch {
		log.Debug("dropping stale accounts fetch", "epoch", msg.epoch)
		return m, nil
	}

	if msg.err != nil {
		return m.handleFetchError(msg.err)
	}

	m.dispatch(store.SetAccounts{Accounts: msg.accounts})
	m.loadingState.set("accounts")

	if m.state.CurrentAccount == nil && len(m.state.Accounts) > 0 {
		first := m.state.Accounts[0]
		m.dispatch(store.SetCurrentAccount{Account: &first})
	}

	// accounts, then transactions, then tags: a failure partway leaves a
	// partially refreshed snapshot until the next full fetch
	userID := m.state.CurrentUser.ID
	return m, m.getTransactions(userID, msg.epoch)
}

func (m model) handleGetTransactions(msg getTransactionsMsg) (tea.Model, tea.Cmd) {
	if msg.epoch != m.fetchEpoch {
		log.Debug("dropping stale transactions fetch", "epoch", msg.epoch)
		return m, nil
	}

	if msg.err != nil {
		return m.handleFetchError(msg.err)
	}

	m.dispatch(store.SetTransactions{Transactions: msg.transactions})
	m.loadingState.set("transactions")

	userID := m.state.CurrentUser.ID
	return m, m.getTags(userID, msg.epoch)
}

func (m model) handleGetTags(msg getTagsMsg) (tea.Model, tea.Cmd) {
	if msg.epoch != m.fetchEpoch {
		log.Debug("dropping stale tags fetch", "epoch", msg.epoch)
		return m, nil
	}

	if msg.err != nil {
		return m.handleFetchError(msg.err)
	}

	m.dispatch(store.SetTags{Tags: msg.tags})
	m.loadingState.set("tags")
	m.dispatch(store.SetLoading{Loading: false})

	cmd := m.syncWidgets()
	m.sessionState = m.checkIfLoading()

	return m, tea.Batch(cmd, tea.WindowSize())
}

func (m model) handleTransactionSaved(msg transactionSavedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		return m, m.transactions.NewStatusMessage(
			fmt.Sprintf("Error saving transaction: %s", msg.err.Error()),
		)
	}

	m.dispatch(store.AddTransaction{Transaction: msg.transaction})
	cmd := m.syncWidgets()

	return m, tea.Batch(cmd, m.transactions.NewStatusMessage("Transaction saved!"))
}

func (m model) handleAccountSaved(msg accountSavedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		return m, m.transactions.NewStatusMessage(
			fmt.Sprintf("Error saving account: %s", msg.err.Error()),
		)
	}

	m.dispatch(store.AddAccount{Account: msg.account})
	if m.state.CurrentAccount == nil {
		a := msg.account
		m.dispatch(store.SetCurrentAccount{Account: &a})
	}
	cmd := m.syncWidgets()

	return m, tea.Batch(cmd, m.transactions.NewStatusMessage("Account saved!"))
}

func (m model) handleTagSaved(msg tagSavedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		return m, m.transactions.NewStatusMessage(
			fmt.Sprintf("Error saving tag: %s", msg.err.Error()),
		)
	}

	m.dispatch(store.AddTag{Tag: msg.tag})
	cmd := m.syncWidgets()

	return m, tea.Batch(cmd, m.transactions.NewStatusMessage("Tag saved!"))
}

func (m model) handleTransactionDeleted(msg transactionDeletedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		return m, m.transactions.NewStatusMessage(
			fmt.Sprintf("Error deleting transaction: %s", msg.err.Error()),
		)
	}

	m.dispatch(store.DeleteTransaction{ID: msg.id})
	cmd := m.syncWidgets()

	return m, tea.Batch(cmd, m.transactions.NewStatusMessage("Transaction deleted"))
}

// handleFetchError surfaces the failure and keeps whatever data the
// snapshot already holds.
func (m model) handleFetchError(err error) (tea.Model, tea.Cmd) {
	m.dispatch(store.SetError{Err: err})

	if len(m.state.Accounts) == 0 && len(m.state.Users) == 0 {
		m.errorMsg = err.Error()
		m.sessionState = errorState
		return m, nil
	}

	m.sessionState = m.previousSessionState
	if m.sessionState == loading {
		m.sessionState = overviewState
	}

	return m, m.transactions.NewStatusMessage(fmt.Sprintf("Fetch failed: %s", err.Error()))
}

// syncWidgets pushes the current snapshot into the widgets that keep
// their own copy of it.
func (m *model) syncWidgets() tea.Cmd {
	m.overview.SetUser(m.state.CurrentUser)
	m.overview.SetAccounts(m.state.Accounts)
	m.overview.SetTransactions(m.state.Transactions)

	m.statsViewport.SetContent(m.renderStats())

	return m.setTransactionItems()
}

func (m *model) setTransactionItems() tea.Cmd {
	accounts := make(map[int64]financery.Account, len(m.state.Accounts))
	for _, a := range m.state.Accounts {
		accounts[a.ID] = a
	}

	items := make([]list.Item, len(m.state.Transactions))
	for i, t := range m.state.Transactions {
		items[i] = transactionItem{t: t, account: accounts[t.AccountID]}
	}

	return m.transactions.SetItems(items)
}

func (m *model) setUserItems() {
	items := make([]list.Item, len(m.state.Users))
	for i, u := range m.state.Users {
		items[i] = userItem{u: u}
	}
	m.userList.SetItems(items)
}

// Backend call functions.
func (m model) getUsers() tea.Msg {
	ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
	defer cancel()

	us, err := m.client.GetUsers(ctx)
	return getUsersMsg{users: us, err: err}
}

func (m model) getAccounts(userID int64, epoch int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		as, err := m.client.GetAccountsByUser(ctx, userID)
		return getAccountsMsg{epoch: epoch, accounts: as, err: err}
	}
}

func (m model) getTransactions(userID int64, epoch int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		ts, err := m.client.GetTransactionsByUser(ctx, userID)
		return getTransactionsMsg{epoch: epoch, transactions: ts, err: err}
	}
}

func (m model) getTags(userID int64, epoch int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		tags, err := m.client.GetTagsByUser(ctx, userID)
		return getTagsMsg{epoch: epoch, tags: tags, err: err}
	}
}

func (m model) deleteTransaction(id int64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		err := m.client.DeleteTransaction(ctx, id)
		return transactionDeletedMsg{id: id, err: err}
	}
}
