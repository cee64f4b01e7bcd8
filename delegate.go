package main

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

func (m model) newItemDelegate(keys *transactionDelegateKeyMap) list.DefaultDelegate {
	d := list.NewDefaultDelegate()
	d.Styles.SelectedTitle = lipgloss.NewStyle().
		Border(lipgloss.NormalBorder(), false, false, false, true).
		BorderForeground(lipgloss.AdaptiveColor{Light: string(m.theme.Primary), Dark: string(m.theme.Primary)}).
		Foreground(lipgloss.AdaptiveColor{Light: string(m.theme.Primary), Dark: string(m.theme.Primary)}).
		Padding(0, 0, 0, 1)

	d.Styles.SelectedDesc = lipgloss.NewStyle().
		Foreground(lipgloss.AdaptiveColor{Light: string(m.theme.Primary), Dark: string(m.theme.Primary)})

	d.UpdateFunc = func(msg tea.Msg, listModel *list.Model) tea.Cmd {
		if msg, ok := msg.(tea.KeyMsg); ok {
			if key.Matches(msg, keys.deleteTransaction) {
				return deleteSelectedTransaction(listModel, m)
			}
		}

		return nil
	}

	help := []key.Binding{keys.deleteTransaction}

	d.ShortHelpFunc = func() []key.Binding {
		return help
	}

	d.FullHelpFunc = func() [][]key.Binding {
		return [][]key.Binding{help}
	}

	return d
}

func deleteSelectedTransaction(listModel *list.Model, m model) tea.Cmd {
	ti, isValidTransactionItem := listModel.SelectedItem().(transactionItem)
	if !isValidTransactionItem {
		return nil
	}

	return m.deleteTransaction(ti.t.ID)
}

type transactionDelegateKeyMap struct {
	deleteTransaction key.Binding
}

func (d transactionDelegateKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		d.deleteTransaction,
	}
}

func (d transactionDelegateKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{
			d.deleteTransaction,
		},
	}
}

func newTransactionDelegateKeyMap() *transactionDelegateKeyMap {
	return &transactionDelegateKeyMap{
		deleteTransaction: key.NewBinding(
			key.WithKeys("D"),
			key.WithHelp("<shift-d>", "delete"),
		),
	}
}
