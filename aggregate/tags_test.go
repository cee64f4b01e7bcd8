package aggregate

import (
	"testing"

	"github.com/carlmjohnson/be"

	"github.com/maximkravchenko/fintui/financery"
)

func TestTagBreakdownSingleTagSumsMatchTotal(t *testing.T) {
	food := financery.Tag{ID: 1, Title: "food"}
	travel := financery.Tag{ID: 2, Title: "travel"}

	ts := []financery.Transaction{
		tx(1, financery.Expense, 1200, food),
		tx(2, financery.Expense, 800, food),
		tx(3, financery.Expense, 3000, travel),
		tx(4, financery.Income, 5000, travel),
	}

	buckets := TagBreakdown(ts, financery.Expense)
	be.Equal(t, 2, len(buckets))

	var sum int64
	for _, b := range buckets {
		sum += amount(t, b.Total)
	}
	be.Equal(t, amount(t, Totals(ts).Expense), sum)
}

func TestTagBreakdownSortsByTotalThenTitle(t *testing.T) {
	ts := []financery.Transaction{
		tx(1, financery.Expense, 100, financery.Tag{ID: 1, Title: "zoo"}),
		tx(2, financery.Expense, 100, financery.Tag{ID: 2, Title: "art"}),
		tx(3, financery.Expense, 900, financery.Tag{ID: 3, Title: "rent"}),
	}

	buckets := TagBreakdown(ts, financery.Expense)
	be.Equal(t, 3, len(buckets))
	be.Equal(t, "rent", buckets[0].Title)
	be.Equal(t, "art", buckets[1].Title)
	be.Equal(t, "zoo", buckets[2].Title)
}

func TestTagBreakdownFansOutMultiTagged(t *testing.T) {
	food := financery.Tag{ID: 1, Title: "food"}
	work := financery.Tag{ID: 2, Title: "work"}

	ts := []financery.Transaction{
		tx(1, financery.Expense, 500, food, work),
	}

	buckets := TagBreakdown(ts, financery.Expense)
	be.Equal(t, 2, len(buckets))
	be.Equal(t, int64(500), amount(t, buckets[0].Total))
	be.Equal(t, int64(500), amount(t, buckets[1].Total))
}

func TestTagBreakdownSyntheticBuckets(t *testing.T) {
	ts := []financery.Transaction{
		tx(1, financery.Expense, 300),
		tx(2, financery.Expense, 200, financery.Tag{ID: 9}),
	}

	buckets := TagBreakdown(ts, financery.Expense)
	be.Equal(t, 2, len(buckets))
	be.Equal(t, NoTagTitle, buckets[0].Title)
	be.Equal(t, int64(300), amount(t, buckets[0].Total))
	be.Equal(t, UnknownTagTitle, buckets[1].Title)
	be.Equal(t, int64(200), amount(t, buckets[1].Total))
}

func TestTagBreakdownFiltersByType(t *testing.T) {
	ts := []financery.Transaction{
		tx(1, financery.Income, 1000, financery.Tag{ID: 1, Title: "salary"}),
		tx(2, financery.Expense, 400, financery.Tag{ID: 2, Title: "food"}),
	}

	buckets := TagBreakdown(ts, financery.Income)
	be.Equal(t, 1, len(buckets))
	be.Equal(t, "salary", buckets[0].Title)
}
