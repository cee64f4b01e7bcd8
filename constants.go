package main

const standardMargin = 2

// Session states
type sessionState int

const (
	overviewState sessionState = iota
	transactions
	transactionForm
	accountForm
	tagForm
	users
	stats
	loading
	errorState
)

func (ss sessionState) String() string {
	switch ss {
	case overviewState:
		return "overview"
	case transactions:
		return "transactions"
	case transactionForm:
		return "new transaction"
	case accountForm:
		return "new account"
	case tagForm:
		return "new tag"
	case users:
		return "users"
	case stats:
		return "statistics"
	case loading:
		return "loading"
	case errorState:
		return "error"
	}

	return "unknown"
}
