package main

import (
	"testing"
	"time"

	"github.com/carlmjohnson/be"

	"github.com/maximkravchenko/fintui/financery"
)

func statsTx(id, accountID int64, date time.Time) financery.Transaction {
	return financery.Transaction{ID: id, AccountID: accountID, Type: financery.Expense, Date: date}
}

func TestFilterByAccount(t *testing.T) {
	ts := []financery.Transaction{
		statsTx(1, 1, time.Time{}),
		statsTx(2, 2, time.Time{}),
		statsTx(3, 1, time.Time{}),
	}

	be.Equal(t, 3, len(filterByAccount(ts, 0)))

	filtered := filterByAccount(ts, 1)
	be.Equal(t, 2, len(filtered))
	be.Equal(t, int64(1), filtered[0].ID)
	be.Equal(t, int64(3), filtered[1].ID)

	be.Equal(t, 0, len(filterByAccount(ts, 9)))
}

func TestFilterThisMonth(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	ts := []financery.Transaction{
		statsTx(1, 1, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)),
		statsTx(2, 1, time.Date(2025, 5, 31, 0, 0, 0, 0, time.UTC)),
		statsTx(3, 1, time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)),
		statsTx(4, 1, time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)),
	}

	filtered := filterThisMonth(ts, now)
	be.Equal(t, 2, len(filtered))
	be.Equal(t, int64(1), filtered[0].ID)
	be.Equal(t, int64(4), filtered[1].ID)
}

func TestNextAccountFilterCycles(t *testing.T) {
	accounts := []financery.Account{{ID: 3}, {ID: 7}}

	be.Equal(t, int64(3), nextAccountFilter(accounts, 0))
	be.Equal(t, int64(7), nextAccountFilter(accounts, 3))
	be.Equal(t, int64(0), nextAccountFilter(accounts, 7))

	// an id no longer in the list resets to all
	be.Equal(t, int64(0), nextAccountFilter(accounts, 99))

	be.Equal(t, int64(0), nextAccountFilter(nil, 5))
}
