package main

import (
	"fmt"
	"strings"
)

func (m model) View() string {
	var b strings.Builder

	b.WriteString(m.renderTitle())
	b.WriteString("\n\n")

	switch m.sessionState {
	case overviewState:
		b.WriteString(m.overview.View())
	case transactions:
		b.WriteString(transactionsView(m))
	case transactionForm:
		b.WriteString(transactionFormView(m))
	case accountForm:
		b.WriteString(accountFormView(m))
	case tagForm:
		b.WriteString(tagFormView(m))
	case users:
		b.WriteString(usersView(m))
	case stats:
		b.WriteString(statsView(m))
	case loading:
		b.WriteString(fmt.Sprintf("%s Loading data...", m.loadingSpinner.View()))
	case errorState:
		b.WriteString(m.styles.errorStyle.Render(fmt.Sprintf("%s - 'q' to quit", m.errorMsg)))
		return m.styles.docStyle.Render(b.String())
	}

	b.WriteString("\n\n")
	b.WriteString(m.help.View(m.keys))

	return m.styles.docStyle.Render(b.String())
}

func (m model) renderTitle() string {
	title := fmt.Sprintf("fintui | %s", m.sessionState.String())

	if m.state.CurrentUser != nil {
		title = fmt.Sprintf("%s | %s", title, m.state.CurrentUser.Name)
	}

	if m.sessionState == stats {
		title = fmt.Sprintf("%s | %s", title, m.granularity)
	}

	return m.styles.titleStyle.Render(title)
}
