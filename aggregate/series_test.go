package aggregate

import (
	"testing"
	"time"

	"github.com/carlmjohnson/be"

	"github.com/maximkravchenko/fintui/financery"
)

func TestSeriesFixedBucketCounts(t *testing.T) {
	now := time.Date(2025, 6, 15, 14, 30, 0, 0, time.UTC)

	tests := []struct {
		granularity Granularity
		count       int
	}{
		{Day, 24},
		{Week, 21},
		{Month, 30},
		{Year, 12},
	}

	for _, tt := range tests {
		t.Run(string(tt.granularity), func(t *testing.T) {
			buckets := Series(nil, tt.granularity, now)
			be.Equal(t, tt.count, len(buckets))

			for i, b := range buckets {
				be.Equal(t, i, b.Index)
				be.True(t, b.Start.Before(b.End))
				if i > 0 {
					be.True(t, buckets[i-1].End.Equal(b.Start))
				}
				be.Equal(t, int64(0), amount(t, b.Income))
				be.Equal(t, int64(0), amount(t, b.Expense))
			}
		})
	}
}

func TestSeriesUnknownGranularity(t *testing.T) {
	buckets := Series(nil, Granularity("decade"), time.Now())
	be.Equal(t, 0, len(buckets))
}

func TestSeriesMonthPlacesTransactionsByDay(t *testing.T) {
	now := time.Date(2025, 6, 30, 12, 0, 0, 0, time.UTC)

	spend := tx(1, financery.Expense, 700)
	spend.Date = time.Date(2025, 6, 28, 9, 45, 0, 0, time.UTC)
	earn := tx(2, financery.Income, 2000)
	earn.Date = time.Date(2025, 6, 30, 23, 0, 0, 0, time.UTC)
	old := tx(3, financery.Expense, 999)
	old.Date = time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)

	buckets := Series([]financery.Transaction{spend, earn, old}, Month, now)
	be.Equal(t, 30, len(buckets))

	// 30 daily buckets ending on the 30th: the 28th is two from the end.
	be.Equal(t, int64(700), amount(t, buckets[27].Expense))
	be.Equal(t, int64(2000), amount(t, buckets[29].Income))

	var total int64
	for _, b := range buckets {
		total += amount(t, b.Expense)
	}
	be.Equal(t, int64(700), total)
}

func TestSeriesYearPlacesTransactionsByMonth(t *testing.T) {
	now := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

	january := tx(1, financery.Income, 100)
	january.Date = time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	june := tx(2, financery.Expense, 50)
	june.Date = time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	lastJuly := tx(3, financery.Income, 30)
	lastJuly.Date = time.Date(2024, 7, 20, 0, 0, 0, 0, time.UTC)

	buckets := Series([]financery.Transaction{january, june, lastJuly}, Year, now)
	be.Equal(t, 12, len(buckets))

	// Window spans July 2024 through June 2025.
	be.Equal(t, int64(30), amount(t, buckets[0].Income))
	be.Equal(t, int64(100), amount(t, buckets[6].Income))
	be.Equal(t, int64(50), amount(t, buckets[11].Expense))
}

func TestSeriesDayKeepsTodayInNewestBucket(t *testing.T) {
	now := time.Date(2025, 6, 15, 0, 30, 0, 0, time.UTC)

	today := tx(1, financery.Expense, 400)
	today.Date = now

	buckets := Series([]financery.Transaction{today}, Day, now)
	be.Equal(t, int64(400), amount(t, buckets[23].Expense))
}

func TestSeriesSkipsNilAmounts(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	ts := []financery.Transaction{{ID: 1, Type: financery.Expense, Date: now}}

	buckets := Series(ts, Month, now)
	for _, b := range buckets {
		be.Equal(t, int64(0), amount(t, b.Expense))
	}
}
