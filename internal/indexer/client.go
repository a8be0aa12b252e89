// Package indexer talks to the third-party rune indexer HTTP APIs.
package indexer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/dogwatch/dogwatch-backend/internal/model"
)

// ErrRateLimited signals an HTTP 429 from the indexer. The fetcher handles
// it with capped exponential backoff instead of failing the run.
var ErrRateLimited = errors.New("indexer rate limited")

const defaultRequestTimeout = 15 * time.Second

type Metrics interface {
	Observe(endpoint string, err error, started time.Time)
}

// ActivityPage is one page of the paginated rune activity feed.
type ActivityPage struct {
	Offset int                   `json:"offset"`
	Limit  int                   `json:"limit"`
	Items  []model.ActivityEvent `json:"items"`
}

type valueItems struct {
	Items []struct {
		Value int64 `json:"value"`
	} `json:"items"`
}

// Client consumes the primary rune indexer API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	runeID     string
	timeout    time.Duration
	metrics    Metrics
}

// NewClient builds a primary indexer client.
func NewClient(baseURL, apiKey, runeID string, timeout time.Duration, metrics Metrics) (*Client, error) {
	if baseURL == "" {
		return nil, errors.New("indexer base url is required")
	}
	if runeID == "" {
		return nil, errors.New("rune id is required")
	}
	if metrics == nil {
		return nil, errors.New("indexer metrics is required")
	}
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("parse indexer base url: %w", err)
	}
	return &Client{
		httpClient: &http.Client{},
		baseURL:    baseURL,
		apiKey:     apiKey,
		runeID:     runeID,
		timeout:    timeout,
		metrics:    metrics,
	}, nil
}

// ActivityPage fetches one page of rune activity events at the given offset.
func (c *Client) ActivityPage(ctx context.Context, offset, limit int) (*ActivityPage, error) {
	start := time.Now()
	var err error
	defer func() {
		c.metrics.Observe("activity", err, start)
	}()

	endpoint := fmt.Sprintf("%s/v1/indexer/runes/%s/activity?offset=%d&limit=%d",
		c.baseURL, url.PathEscape(c.runeID), offset, limit)

	var page ActivityPage
	if err = c.getJSON(ctx, endpoint, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// TxInputSats returns the total input value of a transaction in satoshis.
func (c *Client) TxInputSats(ctx context.Context, txid string) (int64, error) {
	start := time.Now()
	var err error
	defer func() {
		c.metrics.Observe("tx_inputs", err, start)
	}()

	endpoint := fmt.Sprintf("%s/v1/indexer/tx/%s/ins", c.baseURL, url.PathEscape(txid))
	var sats int64
	sats, err = c.sumValues(ctx, endpoint)
	return sats, err
}

// TxOutputSats returns the total output value of a transaction in satoshis.
func (c *Client) TxOutputSats(ctx context.Context, txid string) (int64, error) {
	start := time.Now()
	var err error
	defer func() {
		c.metrics.Observe("tx_outputs", err, start)
	}()

	endpoint := fmt.Sprintf("%s/v1/indexer/tx/%s/outs", c.baseURL, url.PathEscape(txid))
	var sats int64
	sats, err = c.sumValues(ctx, endpoint)
	return sats, err
}

func (c *Client) sumValues(ctx context.Context, endpoint string) (int64, error) {
	var payload valueItems
	if err := c.getJSON(ctx, endpoint, &payload); err != nil {
		return 0, err
	}
	var total int64
	for _, item := range payload.Items {
		if item.Value > 0 {
			total += item.Value
		}
	}
	return total, nil
}

func (c *Client) getJSON(ctx context.Context, endpoint string, out any) error {
	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("indexer request: %w", err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return ErrRateLimited
	case resp.StatusCode != http.StatusOK:
		return fmt.Errorf("indexer status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode indexer response: %w", err)
	}
	return nil
}
