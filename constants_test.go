package main

import (
	"testing"

	"github.com/carlmjohnson/be"
)

func TestSessionStateString(t *testing.T) {
	tests := []struct {
		state    sessionState
		expected string
	}{
		{overviewState, "overview"},
		{transactions, "transactions"},
		{transactionForm, "new transaction"},
		{accountForm, "new account"},
		{tagForm, "new tag"},
		{users, "users"},
		{stats, "statistics"},
		{loading, "loading"},
		{errorState, "error"},
		{sessionState(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			be.Equal(t, tt.expected, tt.state.String())
		})
	}
}
