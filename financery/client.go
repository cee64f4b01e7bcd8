// Package financery is a typed client for the Financery REST backend. The
// backend owns persistence; this package owns the wire format, including the
// normalization of its quirks into the canonical entity shapes.
package financery

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Rhymond/go-money"
)

// deleteConfirmation is the only response body the backend sends for a
// successful delete. Anything else is treated as a failure.
const deleteConfirmation = 1

// ErrDeleteNotConfirmed is returned when a delete call succeeds at the HTTP
// level but the backend does not send the expected confirmation value.
var ErrDeleteNotConfirmed = errors.New("financery: delete not confirmed by backend")

// Client talks to the Financery backend.
type Client struct {
	baseURL  string
	currency string

	// HTTP is the underlying client. Exposed so callers can install a
	// logging transport.
	HTTP *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithCurrency sets the currency code amounts are decoded into.
func WithCurrency(code string) Option {
	return func(c *Client) { c.currency = code }
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.HTTP = hc }
}

// NewClient creates a client for the backend at baseURL.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, errors.New("financery: base URL is required")
	}

	c := &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		currency: DefaultCurrency,
		HTTP:     &http.Client{Timeout: 30 * time.Second},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// Currency reports the currency code amounts are decoded into.
func (c *Client) Currency() string {
	return c.currency
}

// Users

func (c *Client) GetUsers(ctx context.Context) ([]User, error) {
	var records []userRecord
	if err := c.get(ctx, "/users/get-all-users", &records); err != nil {
		return nil, err
	}

	users := make([]User, len(records))
	for i, r := range records {
		users[i] = r.toUser()
	}
	return users, nil
}

func (c *Client) GetUser(ctx context.Context, id int64) (User, error) {
	var record userRecord
	if err := c.get(ctx, fmt.Sprintf("/users/search-by-id/%d", id), &record); err != nil {
		return User{}, err
	}
	return record.toUser(), nil
}

func (c *Client) CreateUser(ctx context.Context, req UserRequest) (User, error) {
	var record userRecord
	if err := c.send(ctx, http.MethodPost, "/users/create", req, &record); err != nil {
		return User{}, err
	}
	return record.toUser(), nil
}

func (c *Client) UpdateUser(ctx context.Context, id int64, req UserRequest) (User, error) {
	var record userRecord
	if err := c.send(ctx, http.MethodPut, fmt.Sprintf("/users/update-by-id/%d", id), req, &record); err != nil {
		return User{}, err
	}
	return record.toUser(), nil
}

func (c *Client) DeleteUser(ctx context.Context, id int64) error {
	return c.delete(ctx, fmt.Sprintf("/users/delete-by-id/%d", id))
}

// Accounts ("bills" on the wire)

func (c *Client) GetAccounts(ctx context.Context) ([]Account, error) {
	return c.getAccounts(ctx, "/bills/get-all-bills")
}

func (c *Client) GetAccountsByUser(ctx context.Context, userID int64) ([]Account, error) {
	return c.getAccounts(ctx, fmt.Sprintf("/bills/get-all-user-bills/%d", userID))
}

func (c *Client) getAccounts(ctx context.Context, path string) ([]Account, error) {
	var records []accountRecord
	if err := c.get(ctx, path, &records); err != nil {
		return nil, err
	}

	accounts := make([]Account, len(records))
	for i, r := range records {
		accounts[i] = r.toAccount(c.currency)
	}
	return accounts, nil
}

func (c *Client) CreateAccount(ctx context.Context, req AccountRequest) (Account, error) {
	var record accountRecord
	if err := c.send(ctx, http.MethodPost, "/bills/create", req.payload(), &record); err != nil {
		return Account{}, err
	}
	return record.toAccount(c.currency), nil
}

func (c *Client) UpdateAccount(ctx context.Context, id int64, req AccountRequest) (Account, error) {
	var record accountRecord
	if err := c.send(ctx, http.MethodPut, fmt.Sprintf("/bills/update-by-id/%d", id), req.payload(), &record); err != nil {
		return Account{}, err
	}
	return record.toAccount(c.currency), nil
}

func (c *Client) DeleteAccount(ctx context.Context, id int64) error {
	return c.delete(ctx, fmt.Sprintf("/bills/delete-by-id/%d", id))
}

// Transactions

func (c *Client) GetTransactionsByUser(ctx context.Context, userID int64) ([]Transaction, error) {
	return c.getTransactions(ctx, fmt.Sprintf("/transactions/get-all-user-transactions/%d", userID))
}

func (c *Client) GetTransactionsByAccount(ctx context.Context, accountID int64) ([]Transaction, error) {
	return c.getTransactions(ctx, fmt.Sprintf("/transactions/get-all-bill-transactions/%d", accountID))
}

func (c *Client) getTransactions(ctx context.Context, path string) ([]Transaction, error) {
	var records []transactionRecord
	if err := c.get(ctx, path, &records); err != nil {
		return nil, err
	}

	transactions := make([]Transaction, len(records))
	for i, r := range records {
		transactions[i] = r.toTransaction(c.currency)
	}
	return transactions, nil
}

func (c *Client) CreateTransaction(ctx context.Context, req TransactionRequest) (Transaction, error) {
	var record transactionRecord
	if err := c.send(ctx, http.MethodPost, "/transactions/create", req.payload(), &record); err != nil {
		return Transaction{}, err
	}
	return record.toTransaction(c.currency), nil
}

func (c *Client) UpdateTransaction(ctx context.Context, id int64, req TransactionRequest) (Transaction, error) {
	var record transactionRecord
	if err := c.send(ctx, http.MethodPut, fmt.Sprintf("/transactions/update-by-id/%d", id), req.payload(), &record); err != nil {
		return Transaction{}, err
	}
	return record.toTransaction(c.currency), nil
}

func (c *Client) DeleteTransaction(ctx context.Context, id int64) error {
	return c.delete(ctx, fmt.Sprintf("/transactions/delete-by-id/%d", id))
}

// Tags

func (c *Client) GetTagsByUser(ctx context.Context, userID int64) ([]Tag, error) {
	var records []tagRecord
	if err := c.get(ctx, fmt.Sprintf("/tags/get-all-user-tags/%d", userID), &records); err != nil {
		return nil, err
	}

	tags := make([]Tag, len(records))
	for i, r := range records {
		tags[i] = r.toTag()
	}
	return tags, nil
}

func (c *Client) CreateTag(ctx context.Context, req TagRequest) (Tag, error) {
	var record tagRecord
	if err := c.send(ctx, http.MethodPost, "/tags/create", req, &record); err != nil {
		return Tag{}, err
	}
	return record.toTag(), nil
}

func (c *Client) UpdateTag(ctx context.Context, id int64, req TagRequest) (Tag, error) {
	var record tagRecord
	if err := c.send(ctx, http.MethodPut, fmt.Sprintf("/tags/update-by-id/%d", id), req, &record); err != nil {
		return Tag{}, err
	}
	return record.toTag(), nil
}

func (c *Client) DeleteTag(ctx context.Context, id int64) error {
	return c.delete(ctx, fmt.Sprintf("/tags/delete-by-id/%d", id))
}

// Plumbing

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.send(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) send(ctx context.Context, method, path string, body, out any) error {
	data, err := c.roundTrip(ctx, method, path, body)
	if err != nil {
		return err
	}
	return decodeNormalized(data, out)
}

func (c *Client) delete(ctx context.Context, path string) error {
	data, err := c.roundTrip(ctx, http.MethodDelete, path, nil)
	if err != nil {
		return err
	}

	var confirmation int
	if err := json.Unmarshal(bytes.TrimSpace(data), &confirmation); err != nil {
		return fmt.Errorf("%w: %s", ErrDeleteNotConfirmed, strings.TrimSpace(string(data)))
	}
	if confirmation != deleteConfirmation {
		return fmt.Errorf("%w: got %d", ErrDeleteNotConfirmed, confirmation)
	}

	return nil
}

func (c *Client) roundTrip(ctx context.Context, method, path string, body any) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("financery: encoding %s %s request: %w", method, path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("financery: building %s %s request: %w", method, path, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("financery: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("financery: reading %s %s response: %w", method, path, err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("financery: %s %s: status %d: %s",
			method, path, resp.StatusCode, strings.TrimSpace(string(data)))
	}

	return data, nil
}

// decodeNormalized runs raw response JSON through Normalize before decoding
// it into the typed record, so every consumer sees canonical field names and
// canonical transaction types.
func decodeNormalized(data []byte, out any) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("financery: decoding response: %w", err)
	}

	normalized, err := json.Marshal(Normalize(raw))
	if err != nil {
		return fmt.Errorf("financery: re-encoding normalized response: %w", err)
	}

	if err := json.Unmarshal(normalized, out); err != nil {
		return fmt.Errorf("financery: decoding response: %w", err)
	}
	return nil
}

// Wire records and requests

// UserRequest is the create/update payload for users.
type UserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// AccountRequest is the create/update payload for accounts.
type AccountRequest struct {
	Name    string
	Balance *money.Money
	UserID  int64
}

func (r AccountRequest) payload() map[string]any {
	balance := 0.0
	if r.Balance != nil {
		balance = r.Balance.AsMajorUnits()
	}
	return map[string]any{
		"name":    r.Name,
		"balance": balance,
		"userId":  r.UserID,
	}
}

// TransactionRequest is the create/update payload for transactions. It is
// expressed in canonical terms and converted to the wire shape (boolean
// direction, billId, tag ids) when sent.
type TransactionRequest struct {
	Name        string
	Amount      *money.Money
	Description string
	Date        time.Time
	Type        TransactionType
	UserID      int64
	AccountID   int64
	TagIDs      []int64
}

func (r TransactionRequest) payload() map[string]any {
	amount := 0.0
	if r.Amount != nil {
		amount = r.Amount.AsMajorUnits()
	}

	tagIDs := r.TagIDs
	if tagIDs == nil {
		tagIDs = []int64{}
	}

	return map[string]any{
		"name":        r.Name,
		"amount":      amount,
		"description": r.Description,
		"date":        r.Date.Format(DateFormat),
		"type":        r.Type == Income,
		"userId":      r.UserID,
		"billId":      r.AccountID,
		"tagIds":      tagIDs,
	}
}

// TagRequest is the create/update payload for tags.
type TagRequest struct {
	Title  string `json:"title"`
	UserID int64  `json:"userId"`
}

type userRecord struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (r userRecord) toUser() User {
	return User{ID: r.ID, Name: r.Name, Email: r.Email}
}

type accountRecord struct {
	ID      int64   `json:"id"`
	Name    string  `json:"name"`
	Balance float64 `json:"balance"`
	UserID  int64   `json:"userId"`
}

func (r accountRecord) toAccount(currency string) Account {
	return Account{
		ID:      r.ID,
		Name:    r.Name,
		Balance: money.NewFromFloat(r.Balance, currency),
		UserID:  r.UserID,
	}
}

type tagRecord struct {
	ID int64 `json:"id"`
	// Some backend endpoints send the tag title under "name".
	Title  string `json:"title"`
	Name   string `json:"name"`
	UserID int64  `json:"userId"`
}

func (r tagRecord) toTag() Tag {
	title := r.Title
	if title == "" {
		title = r.Name
	}
	return Tag{ID: r.ID, Title: title, UserID: r.UserID}
}

type transactionRecord struct {
	ID          int64       `json:"id"`
	Name        string      `json:"name"`
	Amount      float64     `json:"amount"`
	Description string      `json:"description"`
	Date        string      `json:"date"`
	Type        string      `json:"type"`
	UserID      int64       `json:"userId"`
	AccountID   int64       `json:"accountId"`
	Tags        []tagRecord `json:"tags"`
}

func (r transactionRecord) toTransaction(currency string) Transaction {
	name := r.Name
	if name == "" {
		name = "Unnamed"
	}

	// Duplicate tag references collapse; the set is keyed by id.
	tags := make([]Tag, 0, len(r.Tags))
	seen := make(map[int64]bool, len(r.Tags))
	for _, tr := range r.Tags {
		if seen[tr.ID] {
			continue
		}
		seen[tr.ID] = true
		tags = append(tags, tr.toTag())
	}

	// A malformed date degrades to the zero time rather than failing the
	// whole fetch.
	date, _ := time.Parse(DateFormat, r.Date)

	return Transaction{
		ID:          r.ID,
		AccountID:   r.AccountID,
		UserID:      r.UserID,
		Type:        TransactionType(r.Type),
		Amount:      money.NewFromFloat(r.Amount, currency),
		Date:        date,
		Name:        name,
		Description: r.Description,
		Tags:        tags,
	}
}
