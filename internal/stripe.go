package internal

import (
	"encoding/json"
	"fmt"
	"io"
	"iter"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// DefaultBaseURL is the production Stripe API endpoint.
const DefaultBaseURL = "https://api.stripe.com"

// DefaultPageSize is the maximum page size Stripe allows per list call.
const DefaultPageSize = 1000

// Window is a half-open-ended time range for fetching transactions.
// A zero End means "no upper bound".
type Window struct {
	Start time.Time
	End   time.Time
}

// BalanceTransaction is the wire shape of a single Stripe balance transaction.
// Amount is in minor currency units (cents).
type BalanceTransaction struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Created  int64  `json:"created"` // unix seconds
	Currency string `json:"currency"`
	Status   string `json:"status"`
	Type     string `json:"type"`
}

// TransactionSource produces all balance transactions created within a window.
// The sequence is finite and restartable per call; every record in range is
// visited exactly once per iteration. A transport failure is yielded as the
// error half of the sequence and ends the iteration.
type TransactionSource interface {
	Transactions(w Window) iter.Seq2[BalanceTransaction, error]
}

// Client fetches balance transactions from the Stripe API, following
// cursor pagination until the listing is exhausted.
type Client struct {
	Key      string
	BaseURL  string // defaults to DefaultBaseURL
	PageSize int    // defaults to DefaultPageSize
	HTTP     *http.Client
}

// NewClient returns a Client with default endpoint and page size.
func NewClient(apiKey string) *Client {
	return &Client{Key: apiKey}
}

type txnList struct {
	Data    []BalanceTransaction `json:"data"`
	HasMore bool                 `json:"has_more"`
}

// Transactions implements TransactionSource.
func (c *Client) Transactions(w Window) iter.Seq2[BalanceTransaction, error] {
	return func(yield func(BalanceTransaction, error) bool) {
		cursor := ""
		for {
			page, err := c.listPage(w, cursor)
			if err != nil {
				yield(BalanceTransaction{}, err)
				return
			}
			for _, tx := range page.Data {
				if !yield(tx, nil) {
					return
				}
			}
			if !page.HasMore || len(page.Data) == 0 {
				return
			}
			cursor = page.Data[len(page.Data)-1].ID
		}
	}
}

func (c *Client) listPage(w Window, cursor string) (*txnList, error) {
	base := c.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	size := c.PageSize
	if size <= 0 {
		size = DefaultPageSize
	}

	q := url.Values{}
	q.Set("limit", strconv.Itoa(size))
	q.Set("created[gte]", strconv.FormatInt(w.Start.Unix(), 10))
	if !w.End.IsZero() {
		q.Set("created[lte]", strconv.FormatInt(w.End.Unix(), 10))
	}
	if cursor != "" {
		q.Set("starting_after", cursor)
	}
	addr := base + "/v1/balance_transactions?" + q.Encode()

	req, err := http.NewRequest(http.MethodGet, addr, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.Key)

	httpClient := c.HTTP
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("listing balance transactions: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("listing balance transactions: %s: %s", resp.Status, body)
	}

	var page txnList
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, fmt.Errorf("decoding balance transactions: %w", err)
	}
	return &page, nil
}
