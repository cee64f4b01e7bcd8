package financery

import (
	"testing"

	"github.com/Rhymond/go-money"
	"github.com/carlmjohnson/be"
)

func TestSigned(t *testing.T) {
	tests := []struct {
		name string
		tx   Transaction
		want int64
	}{
		{
			name: "income stays positive",
			tx:   Transaction{Type: Income, Amount: money.New(1500, DefaultCurrency)},
			want: 1500,
		},
		{
			name: "expense turns negative",
			tx:   Transaction{Type: Expense, Amount: money.New(1500, DefaultCurrency)},
			want: -1500,
		},
		{
			name: "nil amount is zero",
			tx:   Transaction{Type: Expense},
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			be.Equal(t, tt.want, tt.tx.Signed().Amount())
		})
	}
}

func TestHasTag(t *testing.T) {
	tx := Transaction{Tags: []Tag{{ID: 1, Title: "food"}, {ID: 3, Title: "rent"}}}

	be.True(t, tx.HasTag(1))
	be.True(t, tx.HasTag(3))
	be.True(t, !tx.HasTag(2))
	be.True(t, !Transaction{}.HasTag(1))
}
