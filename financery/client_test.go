package financery

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Rhymond/go-money"
	"github.com/carlmjohnson/be"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(server.URL)
	be.NilErr(t, err)
	return client
}

func TestNewClientRequiresBaseURL(t *testing.T) {
	_, err := NewClient("")
	be.Nonzero(t, err)
}

func TestGetTransactionsByUserNormalizesWireShape(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		be.Equal(t, "/transactions/get-all-user-transactions/4", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"id": 1, "name": "Salary", "amount": 50.0, "date": "02.05.2025",
			 "type": true, "userId": 4, "billId": 7,
			 "tags": [{"id": 2, "name": "work", "userId": 4}]},
			{"id": 2, "amount": 12.5, "date": "03.05.2025",
			 "type": false, "userId": 4, "billId": 7}
		]`))
	})

	transactions, err := client.GetTransactionsByUser(context.Background(), 4)
	be.NilErr(t, err)
	be.Equal(t, 2, len(transactions))

	salary := transactions[0]
	be.Equal(t, Income, salary.Type)
	be.Equal(t, int64(7), salary.AccountID)
	be.Equal(t, "Salary", salary.Name)
	be.True(t, mustEquals(salary.Amount, money.New(5000, DefaultCurrency)))
	be.Equal(t, time.Date(2025, 5, 2, 0, 0, 0, 0, time.UTC), salary.Date)
	be.Equal(t, 1, len(salary.Tags))
	be.Equal(t, "work", salary.Tags[0].Title)

	groceries := transactions[1]
	be.Equal(t, Expense, groceries.Type)
	be.Equal(t, "Unnamed", groceries.Name)
	be.Equal(t, 0, len(groceries.Tags))
}

func mustEquals(a, b *money.Money) bool {
	eq, err := a.Equals(b)
	return err == nil && eq
}

func TestGetTransactionsByUserCollapsesDuplicateTags(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`[
			{"id": 1, "amount": 5, "type": false, "billId": 1,
			 "tags": [{"id": 3, "title": "food"}, {"id": 3, "title": "food"}]}
		]`))
	})

	transactions, err := client.GetTransactionsByUser(context.Background(), 1)
	be.NilErr(t, err)
	be.Equal(t, 1, len(transactions[0].Tags))
}

func TestCreateTransactionSendsWirePayload(t *testing.T) {
	var got map[string]any
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		be.Equal(t, http.MethodPost, r.Method)
		be.Equal(t, "/transactions/create", r.URL.Path)
		be.NilErr(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte(`{"id": 9, "name": "Coffee", "amount": 3.5, "date": "01.06.2025",
			"type": false, "userId": 4, "billId": 7}`))
	})

	created, err := client.CreateTransaction(context.Background(), TransactionRequest{
		Name:      "Coffee",
		Amount:    money.New(350, DefaultCurrency),
		Date:      time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		Type:      Expense,
		UserID:    4,
		AccountID: 7,
		TagIDs:    []int64{2},
	})
	be.NilErr(t, err)

	be.Equal(t, false, got["type"].(bool))
	be.Equal(t, float64(7), got["billId"].(float64))
	be.Equal(t, "01.06.2025", got["date"].(string))
	be.Equal(t, 3.5, got["amount"].(float64))
	be.Equal(t, 1, len(got["tagIds"].([]any)))

	be.Equal(t, int64(9), created.ID)
	be.Equal(t, Expense, created.Type)
	be.Equal(t, int64(7), created.AccountID)
}

func TestDeleteConfirmation(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		expectErr bool
	}{
		{name: "confirmed", body: "1", expectErr: false},
		{name: "unexpected number", body: "0", expectErr: true},
		{name: "unexpected body", body: `"deleted"`, expectErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				be.Equal(t, http.MethodDelete, r.Method)
				w.Write([]byte(tt.body))
			})

			err := client.DeleteTransaction(context.Background(), 3)
			if tt.expectErr {
				be.True(t, errors.Is(err, ErrDeleteNotConfirmed))
			} else {
				be.NilErr(t, err)
			}
		})
	}
}

func TestErrorStatusSurfacesBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte("user not found"))
	})

	_, err := client.GetUsers(context.Background())
	be.Nonzero(t, err)
	be.In(t, "status 404", err.Error())
	be.In(t, "user not found", err.Error())
}

func TestGetTagsByUserFallsBackToNameField(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		be.Equal(t, "/tags/get-all-user-tags/4", r.URL.Path)
		w.Write([]byte(`[{"id": 1, "name": "travel", "userId": 4},
			{"id": 2, "title": "food", "userId": 4}]`))
	})

	tags, err := client.GetTagsByUser(context.Background(), 4)
	be.NilErr(t, err)
	be.Equal(t, "travel", tags[0].Title)
	be.Equal(t, "food", tags[1].Title)
}
