// Package store holds the client-side finance snapshot and the reducer
// that transitions it. The snapshot is the single source of truth for the
// UI: users, the selected user, that user's accounts, transactions, and
// tags, plus loading and error status.
//
// All mutation goes through Apply, which is a pure function: it never does
// I/O, never blocks, and never mutates its input. Account balances are a
// local projection kept current incrementally as transaction intents are
// applied; an authoritative refetch replaces them wholesale.
package store

import (
	"slices"

	"github.com/Rhymond/go-money"

	"github.com/maximkravchenko/fintui/financery"
)

// State is one immutable snapshot of client-side data.
type State struct {
	Users          []financery.User
	CurrentUser    *financery.User
	Accounts       []financery.Account
	CurrentAccount *financery.Account
	Transactions   []financery.Transaction
	Tags           []financery.Tag
	Loading        bool
	Err            error
}

// Intent is a request to transition the State. The variant set is closed:
// only types in this package implement it, so Apply handles every case.
type Intent interface {
	intent()
}

type (
	// SetLoading toggles the loading flag.
	SetLoading struct{ Loading bool }
	// SetError records a failure and clears loading. Existing data is
	// kept so the UI can keep showing the last good snapshot.
	SetError struct{ Err error }

	// SetUsers replaces the user collection wholesale.
	SetUsers struct{ Users []financery.User }
	// SetAccounts replaces the account collection wholesale.
	SetAccounts struct{ Accounts []financery.Account }
	// SetTransactions replaces the transaction collection wholesale.
	SetTransactions struct{ Transactions []financery.Transaction }
	// SetTags replaces the tag collection wholesale.
	SetTags struct{ Tags []financery.Tag }

	// AddUser appends a user.
	AddUser struct{ User financery.User }
	// AddAccount appends an account.
	AddAccount struct{ Account financery.Account }
	// AddTag appends a tag.
	AddTag struct{ Tag financery.Tag }
	// AddTransaction appends a transaction and adjusts the owning
	// account's balance by the transaction's signed amount.
	AddTransaction struct{ Transaction financery.Transaction }

	// UpdateUser replaces the matching user, and the current-user
	// pointer when it is the one selected.
	UpdateUser struct{ User financery.User }
	// UpdateAccount replaces the matching account.
	UpdateAccount struct{ Account financery.Account }
	// UpdateTag replaces the matching tag.
	UpdateTag struct{ Tag financery.Tag }
	// UpdateTransaction replaces the matching transaction, reversing the
	// old version's balance effect on its old account and applying the
	// new version's effect on its new account. Editing a transaction
	// onto a different account therefore corrects both balances.
	UpdateTransaction struct{ Transaction financery.Transaction }

	// DeleteUser removes the user; if it was current, the selection is
	// cleared.
	DeleteUser struct{ ID int64 }
	// DeleteAccount removes the account and cascades to every
	// transaction that belonged to it.
	DeleteAccount struct{ ID int64 }
	// DeleteTransaction removes the transaction and reverses its balance
	// effect on its owning account.
	DeleteTransaction struct{ ID int64 }
	// DeleteTag removes the tag only. Transactions keep any reference to
	// it; aggregation tolerates the dangling reference.
	DeleteTag struct{ ID int64 }

	// SetCurrentUser replaces the current-user pointer, nil to clear.
	SetCurrentUser struct{ User *financery.User }
	// SetCurrentAccount replaces the current-account pointer, nil to
	// clear.
	SetCurrentAccount struct{ Account *financery.Account }
)

func (SetLoading) intent()        {}
func (SetError) intent()          {}
func (SetUsers) intent()          {}
func (SetAccounts) intent()       {}
func (SetTransactions) intent()   {}
func (SetTags) intent()           {}
func (AddUser) intent()           {}
func (AddAccount) intent()        {}
func (AddTag) intent()            {}
func (AddTransaction) intent()    {}
func (UpdateUser) intent()        {}
func (UpdateAccount) intent()     {}
func (UpdateTag) intent()         {}
func (UpdateTransaction) intent() {}
func (DeleteUser) intent()        {}
func (DeleteAccount) intent()     {}
func (DeleteTransaction) intent() {}
func (DeleteTag) intent()         {}
func (SetCurrentUser) intent()    {}
func (SetCurrentAccount) intent() {}

// Apply transitions the state with one intent and returns the new
// snapshot. The input state is never modified; collections touched by the
// intent are copied first. A nil or unrecognized intent is a no-op.
func Apply(s State, in Intent) State {
	switch in := in.(type) {
	case SetLoading:
		s.Loading = in.Loading

	case SetError:
		s.Err = in.Err
		s.Loading = false

	case SetUsers:
		s.Users = slices.Clone(in.Users)

	case SetAccounts:
		s.Accounts = slices.Clone(in.Accounts)
		s.CurrentAccount = refreshAccount(s.Accounts, s.CurrentAccount)

	case SetTransactions:
		s.Transactions = slices.Clone(in.Transactions)

	case SetTags:
		s.Tags = slices.Clone(in.Tags)

	case AddUser:
		s.Users = append(slices.Clone(s.Users), in.User)

	case AddAccount:
		s.Accounts = append(slices.Clone(s.Accounts), in.Account)

	case AddTag:
		s.Tags = append(slices.Clone(s.Tags), in.Tag)

	case AddTransaction:
		s.Transactions = append(slices.Clone(s.Transactions), in.Transaction)
		s.Accounts = adjustBalance(s.Accounts, in.Transaction.AccountID, in.Transaction.Signed())
		s.CurrentAccount = refreshAccount(s.Accounts, s.CurrentAccount)

	case UpdateUser:
		s.Users = replaceUser(s.Users, in.User)
		if s.CurrentUser != nil && s.CurrentUser.ID == in.User.ID {
			u := in.User
			s.CurrentUser = &u
		}

	case UpdateAccount:
		s.Accounts = replaceAccount(s.Accounts, in.Account)
		s.CurrentAccount = refreshAccount(s.Accounts, s.CurrentAccount)

	case UpdateTag:
		s.Tags = replaceTag(s.Tags, in.Tag)

	case UpdateTransaction:
		old, found := findTransaction(s.Transactions, in.Transaction.ID)
		if !found {
			break
		}
		s.Transactions = replaceTransaction(s.Transactions, in.Transaction)
		s.Accounts = adjustBalance(s.Accounts, old.AccountID, old.Signed().Multiply(-1))
		s.Accounts = adjustBalance(s.Accounts, in.Transaction.AccountID, in.Transaction.Signed())
		s.CurrentAccount = refreshAccount(s.Accounts, s.CurrentAccount)

	case DeleteUser:
		s.Users = slices.DeleteFunc(slices.Clone(s.Users), func(u financery.User) bool {
			return u.ID == in.ID
		})
		if s.CurrentUser != nil && s.CurrentUser.ID == in.ID {
			s.CurrentUser = nil
		}

	case DeleteAccount:
		s.Accounts = slices.DeleteFunc(slices.Clone(s.Accounts), func(a financery.Account) bool {
			return a.ID == in.ID
		})
		s.Transactions = slices.DeleteFunc(slices.Clone(s.Transactions), func(t financery.Transaction) bool {
			return t.AccountID == in.ID
		})
		if s.CurrentAccount != nil && s.CurrentAccount.ID == in.ID {
			s.CurrentAccount = nil
		}

	case DeleteTransaction:
		old, found := findTransaction(s.Transactions, in.ID)
		if !found {
			break
		}
		s.Transactions = slices.DeleteFunc(slices.Clone(s.Transactions), func(t financery.Transaction) bool {
			return t.ID == in.ID
		})
		s.Accounts = adjustBalance(s.Accounts, old.AccountID, old.Signed().Multiply(-1))
		s.CurrentAccount = refreshAccount(s.Accounts, s.CurrentAccount)

	case DeleteTag:
		s.Tags = slices.DeleteFunc(slices.Clone(s.Tags), func(t financery.Tag) bool {
			return t.ID == in.ID
		})

	case SetCurrentUser:
		s.CurrentUser = in.User

	case SetCurrentAccount:
		s.CurrentAccount = in.Account
	}

	return s
}

// adjustBalance returns a copy of accounts with the matching account's
// balance moved by delta. A nil prior balance counts as zero; an unknown
// account id leaves the slice unchanged apart from the copy.
func adjustBalance(accounts []financery.Account, accountID int64, delta *money.Money) []financery.Account {
	out := slices.Clone(accounts)
	for i := range out {
		if out[i].ID != accountID {
			continue
		}
		balance := out[i].Balance
		if balance == nil {
			balance = money.New(0, delta.Currency().Code)
		}
		out[i].Balance, _ = balance.Add(delta)
		break
	}
	return out
}

// refreshAccount re-resolves the current-account pointer against the
// latest slice so it never shows a stale balance. The pointer is kept
// as-is when the account is no longer present; DeleteAccount clears it
// explicitly.
func refreshAccount(accounts []financery.Account, current *financery.Account) *financery.Account {
	if current == nil {
		return nil
	}
	for i := range accounts {
		if accounts[i].ID == current.ID {
			a := accounts[i]
			return &a
		}
	}
	return current
}

func findTransaction(ts []financery.Transaction, id int64) (financery.Transaction, bool) {
	for _, t := range ts {
		if t.ID == id {
			return t, true
		}
	}
	return financery.Transaction{}, false
}

func replaceUser(users []financery.User, u financery.User) []financery.User {
	out := slices.Clone(users)
	for i := range out {
		if out[i].ID == u.ID {
			out[i] = u
			break
		}
	}
	return out
}

func replaceAccount(accounts []financery.Account, a financery.Account) []financery.Account {
	out := slices.Clone(accounts)
	for i := range out {
		if out[i].ID == a.ID {
			out[i] = a
			break
		}
	}
	return out
}

func replaceTag(tags []financery.Tag, tag financery.Tag) []financery.Tag {
	out := slices.Clone(tags)
	for i := range out {
		if out[i].ID == tag.ID {
			out[i] = tag
			break
		}
	}
	return out
}

func replaceTransaction(ts []financery.Transaction, t financery.Transaction) []financery.Transaction {
	out := slices.Clone(ts)
	for i := range out {
		if out[i].ID == t.ID {
			out[i] = t
			break
		}
	}
	return out
}
