package financery

import (
	"time"

	"github.com/Rhymond/go-money"
)

// DateFormat is the calendar-date layout the backend speaks. Transactions
// carry no time-of-day.
const DateFormat = "02.01.2006"

// DefaultCurrency is the currency the backend keeps its amounts in.
const DefaultCurrency = "BYN"

// TransactionType is the direction of a transaction. The amount is always a
// positive magnitude; the sign lives here.
type TransactionType string

const (
	Income  TransactionType = "income"
	Expense TransactionType = "expense"
)

// User is an account holder. IDs are assigned by the backend; the client
// never generates them.
type User struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Account is a user-owned money account, called a "bill" on the wire.
type Account struct {
	ID      int64        `json:"id"`
	Name    string       `json:"name"`
	Balance *money.Money `json:"balance"`
	UserID  int64        `json:"userId"`
}

// Transaction is a single income or expense entry on an account.
type Transaction struct {
	ID          int64           `json:"id"`
	AccountID   int64           `json:"accountId"`
	UserID      int64           `json:"userId"`
	Type        TransactionType `json:"type"`
	Amount      *money.Money    `json:"amount"`
	Date        time.Time       `json:"date"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Tags        []Tag           `json:"tags"`
}

// Tag is a user-scoped label. A tag may be attached to any number of the
// user's transactions.
type Tag struct {
	ID     int64  `json:"id"`
	Title  string `json:"title"`
	UserID int64  `json:"userId"`
}

// Signed returns the transaction's effect on its account balance: the amount
// for income, the negated amount for expense. A nil amount counts as zero.
func (t Transaction) Signed() *money.Money {
	if t.Amount == nil {
		return money.New(0, DefaultCurrency)
	}
	if t.Type == Income {
		return t.Amount
	}
	return t.Amount.Negative()
}

// HasTag reports whether the transaction carries the given tag id.
func (t Transaction) HasTag(tagID int64) bool {
	for _, tag := range t.Tags {
		if tag.ID == tagID {
			return true
		}
	}
	return false
}
