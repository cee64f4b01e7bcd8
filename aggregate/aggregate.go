// Package aggregate computes derived statistics over transaction
// collections: income/expense totals, per-tag breakdowns, and fixed-length
// time-bucketed series for charting. Every function is pure; callers filter
// the transaction slice to the relevant user or account first.
package aggregate

import (
	"github.com/Rhymond/go-money"

	"github.com/maximkravchenko/fintui/financery"
)

// Summary holds the income and expense totals of a transaction collection
// and their difference.
type Summary struct {
	Income  *money.Money
	Expense *money.Money
	Net     *money.Money
}

// Totals sums the given transactions by type. Income and Expense are both
// non-negative magnitudes; Net is income minus expense. Transactions with a
// nil amount count as zero.
func Totals(ts []financery.Transaction) Summary {
	currency := currencyOf(ts)
	income := money.New(0, currency)
	expense := money.New(0, currency)

	for _, t := range ts {
		if t.Amount == nil {
			continue
		}

		switch t.Type {
		case financery.Income:
			income, _ = income.Add(t.Amount)
		case financery.Expense:
			expense, _ = expense.Add(t.Amount)
		}
	}

	net, _ := income.Subtract(expense)

	return Summary{Income: income, Expense: expense, Net: net}
}

// currencyOf picks the accumulator currency: the first priced transaction's
// currency, or the backend default when the collection is empty.
func currencyOf(ts []financery.Transaction) string {
	for _, t := range ts {
		if t.Amount != nil {
			return t.Amount.Currency().Code
		}
	}
	return financery.DefaultCurrency
}
