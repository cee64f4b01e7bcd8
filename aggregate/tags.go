package aggregate

import (
	"sort"

	"github.com/Rhymond/go-money"

	"github.com/maximkravchenko/fintui/financery"
)

const (
	// NoTagTitle is the synthetic bucket for transactions without tags.
	NoTagTitle = "No Tag"
	// UnknownTagTitle stands in for tag references whose title is gone,
	// e.g. after the tag itself was deleted.
	UnknownTagTitle = "Unknown Tag"
)

// TagBucket is one slice of a per-tag breakdown.
type TagBucket struct {
	Title string
	Total *money.Money
}

// TagBreakdown groups the transactions of the given type by tag title.
// A transaction without tags lands in the "No Tag" bucket. A transaction
// with several tags contributes its full amount to every one of them, so
// with multi-tagged transactions the bucket totals can sum to more than
// the type total.
//
// Buckets come back sorted by total descending, then title.
func TagBreakdown(ts []financery.Transaction, typ financery.TransactionType) []TagBucket {
	currency := currencyOf(ts)
	totals := make(map[string]*money.Money)

	for _, t := range ts {
		if t.Type != typ {
			continue
		}

		amount := t.Amount
		if amount == nil {
			amount = money.New(0, currency)
		}

		titles := bucketTitles(t)
		for _, title := range titles {
			total, ok := totals[title]
			if !ok {
				total = money.New(0, currency)
			}
			totals[title], _ = total.Add(amount)
		}
	}

	buckets := make([]TagBucket, 0, len(totals))
	for title, total := range totals {
		buckets = append(buckets, TagBucket{Title: title, Total: total})
	}

	sort.Slice(buckets, func(i, j int) bool {
		if buckets[i].Total.Amount() != buckets[j].Total.Amount() {
			return buckets[i].Total.Amount() > buckets[j].Total.Amount()
		}
		return buckets[i].Title < buckets[j].Title
	})

	return buckets
}

func bucketTitles(t financery.Transaction) []string {
	if len(t.Tags) == 0 {
		return []string{NoTagTitle}
	}

	titles := make([]string, 0, len(t.Tags))
	for _, tag := range t.Tags {
		title := tag.Title
		if title == "" {
			title = UnknownTagTitle
		}
		titles = append(titles, title)
	}
	return titles
}
