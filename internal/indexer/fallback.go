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

// FallbackEvent is one entry of the secondary indexer's flat event feed.
// Unlike the primary feed it carries a send/receive direction instead of the
// grouped input/output model.
type FallbackEvent struct {
	TxID        string          `json:"txId"`
	BlockHeight int64           `json:"height"`
	BlockTime   int64           `json:"transactionTime"`
	Type        string          `json:"type"` // send | receive
	Address     string          `json:"address"`
	Amount      model.RawAmount `json:"amount"`
}

type fallbackEnvelope struct {
	Code int `json:"code"`
	Data struct {
		Detail []FallbackEvent `json:"detail"`
		Total  int             `json:"total"`
	} `json:"data"`
}

// FallbackClient consumes the secondary event API used when the primary
// indexer is unreachable.
type FallbackClient struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	runeID     string
	timeout    time.Duration
	metrics    Metrics
}

// NewFallbackClient builds a fallback indexer client.
func NewFallbackClient(baseURL, apiKey, runeID string, timeout time.Duration, metrics Metrics) (*FallbackClient, error) {
	if baseURL == "" {
		return nil, errors.New("fallback base url is required")
	}
	if runeID == "" {
		return nil, errors.New("rune id is required")
	}
	if metrics == nil {
		return nil, errors.New("fallback metrics is required")
	}
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}
	return &FallbackClient{
		httpClient: &http.Client{},
		baseURL:    baseURL,
		apiKey:     apiKey,
		runeID:     runeID,
		timeout:    timeout,
		metrics:    metrics,
	}, nil
}

// Events fetches one page of send/receive events.
func (c *FallbackClient) Events(ctx context.Context, page, limit int) ([]FallbackEvent, int, error) {
	start := time.Now()
	var err error
	defer func() {
		c.metrics.Observe("fallback_events", err, start)
	}()

	endpoint := fmt.Sprintf("%s/api/v5/explorer/runes/transaction-list?runeId=%s&page=%d&limit=%d",
		c.baseURL, url.QueryEscape(c.runeID), page, limit)

	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, reqErr := http.NewRequestWithContext(reqCtx, http.MethodGet, endpoint, nil)
	if reqErr != nil {
		err = fmt.Errorf("build request: %w", reqErr)
		return nil, 0, err
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Ok-Access-Key", c.apiKey)
	}

	resp, doErr := c.httpClient.Do(req)
	if doErr != nil {
		err = fmt.Errorf("fallback request: %w", doErr)
		return nil, 0, err
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode == http.StatusTooManyRequests {
		err = ErrRateLimited
		return nil, 0, err
	}
	if resp.StatusCode != http.StatusOK {
		err = fmt.Errorf("fallback status %d", resp.StatusCode)
		return nil, 0, err
	}

	var envelope fallbackEnvelope
	if decErr := json.NewDecoder(resp.Body).Decode(&envelope); decErr != nil {
		err = fmt.Errorf("decode fallback response: %w", decErr)
		return nil, 0, err
	}
	if envelope.Code != 0 {
		err = fmt.Errorf("fallback api code %d", envelope.Code)
		return nil, 0, err
	}
	return envelope.Data.Detail, envelope.Data.Total, nil
}
