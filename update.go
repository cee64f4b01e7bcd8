package main

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/log"
)

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// always check for quit key first
	if msg, ok := msg.(tea.KeyMsg); ok {
		if model, cmd := handleKeyPress(msg, &m); cmd != nil {
			log.Debug("key press handled, cmd returned")
			return model, cmd
		}
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleWindowSize(msg)

	case spinner.TickMsg:
		return m.handleSpinnerTick(msg)

	case getUsersMsg:
		return m.handleGetUsers(msg)

	case getAccountsMsg:
		return m.handleGetAccounts(msg)

	case getTransactionsMsg:
		return m.handleGetTransactions(msg)

	case getTagsMsg:
		return m.handleGetTags(msg)

	case transactionSavedMsg:
		return m.handleTransactionSaved(msg)

	case accountSavedMsg:
		return m.handleAccountSaved(msg)

	case tagSavedMsg:
		return m.handleTagSaved(msg)

	case transactionDeletedMsg:
		return m.handleTransactionDeleted(msg)
	}

	var cmd tea.Cmd
	switch m.sessionState {
	case overviewState:
		m.overview, cmd = m.overview.Update(msg)
		return m, cmd

	case transactions:
		return updateTransactions(msg, m)

	case users:
		return updateUsers(msg, m)

	case transactionForm:
		form, formCmd := m.transactionForm.Update(msg)
		if f, ok := form.(*huh.Form); ok {
			m.transactionForm = f
		} else {
			log.Debug("transactionForm did not return a form, returning nil")
			return m, nil
		}

		if m.transactionForm.State == huh.StateCompleted {
			m.previousSessionState = m.sessionState
			m.sessionState = transactions
			return m, m.submitTransactionForm()
		}

		return m, formCmd

	case accountForm:
		form, formCmd := m.accountForm.Update(msg)
		if f, ok := form.(*huh.Form); ok {
			m.accountForm = f
		} else {
			return m, nil
		}

		if m.accountForm.State == huh.StateCompleted {
			m.sessionState = overviewState
			return m, m.submitAccountForm()
		}

		return m, formCmd

	case tagForm:
		form, formCmd := m.tagForm.Update(msg)
		if f, ok := form.(*huh.Form); ok {
			m.tagForm = f
		} else {
			return m, nil
		}

		if m.tagForm.State == huh.StateCompleted {
			m.sessionState = overviewState
			return m, m.submitTagForm()
		}

		return m, formCmd

	case stats:
		return updateStats(msg, m)

	case loading:
		m.loadingSpinner, cmd = m.loadingSpinner.Update(msg)
		return m, cmd
	}

	return m, nil
}
