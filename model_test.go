package main

import (
	"errors"
	"testing"
	"time"

	"github.com/Rhymond/go-money"
	"github.com/carlmjohnson/be"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/maximkravchenko/fintui/financery"
	"github.com/maximkravchenko/fintui/store"
)

func newTestModel(t *testing.T) model {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	c, err := financery.NewClient("http://localhost:8080")
	be.NilErr(t, err)

	return newModel(c, Config{})
}

func asModel(t *testing.T, tm tea.Model) model {
	t.Helper()
	m, ok := tm.(model)
	be.True(t, ok)
	return m
}

func testAccount(id int64, balanceMinor int64) financery.Account {
	return financery.Account{
		ID:      id,
		Name:    "Main",
		Balance: money.New(balanceMinor, financery.DefaultCurrency),
		UserID:  1,
	}
}

func TestHandleGetUsersSelectsRememberedUser(t *testing.T) {
	m := newTestModel(t)
	m.rememberedUserID = 2

	result, cmd := m.handleGetUsers(getUsersMsg{users: []financery.User{
		{ID: 1, Name: "Ann"},
		{ID: 2, Name: "Ben"},
	}})

	m = asModel(t, result)
	be.Nonzero(t, m.state.CurrentUser)
	be.Equal(t, int64(2), m.state.CurrentUser.ID)
	be.Equal(t, loading, m.sessionState)
	be.Nonzero(t, cmd)
}

func TestHandleGetUsersFallsBackToFirst(t *testing.T) {
	m := newTestModel(t)
	m.rememberedUserID = 99

	result, _ := m.handleGetUsers(getUsersMsg{users: []financery.User{
		{ID: 1, Name: "Ann"},
		{ID: 2, Name: "Ben"},
	}})

	m = asModel(t, result)
	be.Equal(t, int64(1), m.state.CurrentUser.ID)
}

func TestHandleGetUsersEmpty(t *testing.T) {
	m := newTestModel(t)

	result, _ := m.handleGetUsers(getUsersMsg{})

	m = asModel(t, result)
	be.Equal(t, errorState, m.sessionState)
	be.True(t, errors.Is(m.state.Err, errNoUsers))
}

func TestStaleEpochFetchesAreDiscarded(t *testing.T) {
	m := newTestModel(t)
	m.fetchEpoch = 2
	u := financery.User{ID: 1, Name: "Ann"}
	m.dispatch(store.SetCurrentUser{User: &u})
	m.dispatch(store.SetAccounts{Accounts: []financery.Account{testAccount(1, 100)}})

	result, cmd := m.handleGetAccounts(getAccountsMsg{
		epoch:    1,
		accounts: []financery.Account{testAccount(9, 0)},
	})

	m = asModel(t, result)
	be.Equal(t, 1, len(m.state.Accounts))
	be.Equal(t, int64(1), m.state.Accounts[0].ID)
	be.True(t, cmd == nil)
}

func TestSequentialLoadCompletes(t *testing.T) {
	m := newTestModel(t)
	m.fetchEpoch = 1
	m.sessionState = loading
	u := financery.User{ID: 1, Name: "Ann"}
	m.dispatch(store.SetCurrentUser{User: &u})
	m.dispatch(store.SetLoading{Loading: true})

	result, cmd := m.handleGetAccounts(getAccountsMsg{epoch: 1, accounts: []financery.Account{testAccount(1, 100)}})
	m = asModel(t, result)
	be.Nonzero(t, cmd)
	be.Equal(t, loading, m.sessionState)

	result, cmd = m.handleGetTransactions(getTransactionsMsg{epoch: 1})
	m = asModel(t, result)
	be.Nonzero(t, cmd)
	be.Equal(t, loading, m.sessionState)

	result, _ = m.handleGetTags(getTagsMsg{epoch: 1})
	m = asModel(t, result)
	be.Equal(t, overviewState, m.sessionState)
	be.False(t, m.state.Loading)
}

func TestAccountsFetchSelectsFirstAccount(t *testing.T) {
	m := newTestModel(t)
	m.fetchEpoch = 1
	u := financery.User{ID: 1, Name: "Ann"}
	m.dispatch(store.SetCurrentUser{User: &u})

	result, _ := m.handleGetAccounts(getAccountsMsg{epoch: 1, accounts: []financery.Account{
		testAccount(5, 100),
		testAccount(6, 200),
	}})

	m = asModel(t, result)
	be.Nonzero(t, m.state.CurrentAccount)
	be.Equal(t, int64(5), m.state.CurrentAccount.ID)
}

func TestAccountSavedBecomesCurrentWhenNoneSelected(t *testing.T) {
	m := newTestModel(t)

	result, _ := m.handleAccountSaved(accountSavedMsg{account: testAccount(4, 500)})

	m = asModel(t, result)
	be.Equal(t, 1, len(m.state.Accounts))
	be.Nonzero(t, m.state.CurrentAccount)
	be.Equal(t, int64(4), m.state.CurrentAccount.ID)
}

func TestTagSavedAppendsTag(t *testing.T) {
	m := newTestModel(t)

	result, _ := m.handleTagSaved(tagSavedMsg{tag: financery.Tag{ID: 2, Title: "food", UserID: 1}})

	m = asModel(t, result)
	be.Equal(t, 1, len(m.state.Tags))
	be.Equal(t, "food", m.state.Tags[0].Title)
}

func TestFetchErrorKeepsPriorData(t *testing.T) {
	m := newTestModel(t)
	m.previousSessionState = transactions
	m.dispatch(store.SetAccounts{Accounts: []financery.Account{testAccount(1, 100)}})

	fetchErr := errors.New("backend unreachable")
	result, _ := m.handleFetchError(fetchErr)

	m = asModel(t, result)
	be.True(t, errors.Is(m.state.Err, fetchErr))
	be.Equal(t, 1, len(m.state.Accounts))
	be.Equal(t, transactions, m.sessionState)
}

func TestFetchErrorWithNoDataShowsErrorState(t *testing.T) {
	m := newTestModel(t)

	result, _ := m.handleFetchError(errors.New("backend unreachable"))

	m = asModel(t, result)
	be.Equal(t, errorState, m.sessionState)
	be.In(t, "backend unreachable", m.errorMsg)
}

func TestTransactionSavedAdjustsBalance(t *testing.T) {
	m := newTestModel(t)
	m.dispatch(store.SetAccounts{Accounts: []financery.Account{testAccount(1, 10000)}})

	result, _ := m.handleTransactionSaved(transactionSavedMsg{transaction: financery.Transaction{
		ID:        1,
		AccountID: 1,
		UserID:    1,
		Type:      financery.Expense,
		Amount:    money.New(2500, financery.DefaultCurrency),
		Date:      time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		Name:      "Groceries",
	}})

	m = asModel(t, result)
	be.Equal(t, 1, len(m.state.Transactions))
	be.Equal(t, int64(7500), m.state.Accounts[0].Balance.Amount())
}

func TestTransactionDeletedRestoresBalance(t *testing.T) {
	m := newTestModel(t)
	m.dispatch(store.SetAccounts{Accounts: []financery.Account{testAccount(1, 10000)}})
	m.dispatch(store.AddTransaction{Transaction: financery.Transaction{
		ID:        1,
		AccountID: 1,
		Type:      financery.Expense,
		Amount:    money.New(2500, financery.DefaultCurrency),
	}})
	be.Equal(t, int64(7500), m.state.Accounts[0].Balance.Amount())

	result, _ := m.handleTransactionDeleted(transactionDeletedMsg{id: 1})

	m = asModel(t, result)
	be.Equal(t, 0, len(m.state.Transactions))
	be.Equal(t, int64(10000), m.state.Accounts[0].Balance.Amount())
}
