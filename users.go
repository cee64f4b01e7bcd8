package main

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/maximkravchenko/fintui/financery"
)

type userItem struct {
	u financery.User
}

func (u userItem) Title() string       { return u.u.Name }
func (u userItem) Description() string { return u.u.Email }
func (u userItem) FilterValue() string { return u.u.Name }

func updateUsers(msg tea.Msg, m model) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.String() == "enter" {
		item, isUserItem := m.userList.SelectedItem().(userItem)
		if !isUserItem {
			return m, nil
		}

		if m.state.CurrentUser != nil && m.state.CurrentUser.ID == item.u.ID {
			m.sessionState = overviewState
			return m, nil
		}

		return m.switchUser(item.u)
	}

	var cmd tea.Cmd
	m.userList, cmd = m.userList.Update(msg)
	return m, cmd
}

func usersView(m model) string {
	return m.userList.View()
}
