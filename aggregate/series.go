package aggregate

import (
	"time"

	"github.com/Rhymond/go-money"

	"github.com/maximkravchenko/fintui/financery"
)

// Granularity selects the window and bucket width of a Series.
type Granularity string

const (
	Day   Granularity = "day"
	Week  Granularity = "week"
	Month Granularity = "month"
	Year  Granularity = "year"
)

// BucketCount reports the fixed number of buckets a Series produces for
// this granularity.
func (g Granularity) BucketCount() int {
	switch g {
	case Day:
		return 24
	case Week:
		return 21
	case Month:
		return 30
	case Year:
		return 12
	}
	return 0
}

// Valid reports whether g is one of the supported granularities.
func (g Granularity) Valid() bool {
	return g.BucketCount() > 0
}

// Bucket is one time slice of a Series. Start is inclusive, End exclusive.
type Bucket struct {
	Index   int
	Start   time.Time
	End     time.Time
	Income  *money.Money
	Expense *money.Money
}

// Series buckets the transactions into a fixed-length, oldest-first
// timeline ending at now: 24 hourly buckets for a day, 21 eight-hour
// buckets for a week, 30 daily buckets for a month, 12 monthly buckets
// for a year. The bucket count never varies with the data; empty buckets
// carry zero totals.
//
// Transactions are placed by calendar day, so sub-day granularities put a
// day's transactions into the bucket holding that day's midnight. Now is
// a parameter so callers can pin the window in tests.
func Series(ts []financery.Transaction, g Granularity, now time.Time) []Bucket {
	count := g.BucketCount()
	if count == 0 {
		return nil
	}

	currency := currencyOf(ts)
	buckets := make([]Bucket, count)
	for i := range buckets {
		buckets[i] = Bucket{
			Index:   i,
			Start:   bucketStart(g, now, count-1-i),
			Income:  money.New(0, currency),
			Expense: money.New(0, currency),
		}
	}
	for i := range buckets {
		if i+1 < count {
			buckets[i].End = buckets[i+1].Start
		} else {
			buckets[i].End = bucketStart(g, now, -1)
		}
	}

	for _, t := range ts {
		if t.Amount == nil {
			continue
		}

		day := midnight(t.Date)
		idx := -1
		for i := range buckets {
			if !day.Before(buckets[i].Start) && day.Before(buckets[i].End) {
				idx = i
				break
			}
		}
		if idx < 0 {
			continue
		}

		switch t.Type {
		case financery.Income:
			buckets[idx].Income, _ = buckets[idx].Income.Add(t.Amount)
		case financery.Expense:
			buckets[idx].Expense, _ = buckets[idx].Expense.Add(t.Amount)
		}
	}

	return buckets
}

// bucketStart computes the start of the bucket stepsBack steps before the
// newest one. The newest bucket is anchored to now truncated to the bucket
// width, so the window always ends just past now.
func bucketStart(g Granularity, now time.Time, stepsBack int) time.Time {
	switch g {
	case Day:
		anchor := now.Truncate(time.Hour)
		return anchor.Add(-time.Duration(stepsBack) * time.Hour)
	case Week:
		anchor := now.Truncate(8 * time.Hour)
		return anchor.Add(-time.Duration(stepsBack) * 8 * time.Hour)
	case Month:
		anchor := midnight(now)
		return anchor.AddDate(0, 0, -stepsBack)
	case Year:
		anchor := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		return anchor.AddDate(0, -stepsBack, 0)
	}
	return time.Time{}
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
