package transport

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/dogwatch/dogwatch-backend/internal/ingest"
	"github.com/dogwatch/dogwatch-backend/internal/model"
)

type fakeUpdater struct {
	result *model.TransactionStore
	err    error
	calls  int
}

func (f *fakeUpdater) Run(context.Context) (*model.TransactionStore, error) {
	f.calls++
	return f.result, f.err
}

type fakeStore struct {
	doc *model.TransactionStore
	err error
}

func (f *fakeStore) Load(context.Context) (*model.TransactionStore, error) {
	return f.doc, f.err
}

func newTestHandler(t *testing.T, updater UpdateRunner, store StoreReader) http.Handler {
	t.Helper()
	h, err := NewHandler(updater, store, "s3cret", zap.NewNop())
	require.NoError(t, err)
	return h.Router()
}

func get(t *testing.T, router http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestNewHandlerRequiresDependencies(t *testing.T) {
	logger := zap.NewNop()

	_, err := NewHandler(nil, &fakeStore{}, "s", logger)
	assert.Error(t, err)

	_, err = NewHandler(&fakeUpdater{}, nil, "s", logger)
	assert.Error(t, err)

	_, err = NewHandler(&fakeUpdater{}, &fakeStore{}, "", logger)
	assert.Error(t, err, "empty secret must not be accepted")
}

func TestHandleHealth(t *testing.T) {
	router := newTestHandler(t, &fakeUpdater{}, &fakeStore{})

	rec := get(t, router, "/healthz")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", decodeBody(t, rec)["status"])
}

func TestHandleUpdateRejectsBadSecret(t *testing.T) {
	updater := &fakeUpdater{}
	router := newTestHandler(t, updater, &fakeStore{})

	tests := []struct {
		name   string
		target string
	}{
		{name: "missing key", target: "/api/update"},
		{name: "wrong key", target: "/api/update?key=nope"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(t, router, tt.target)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Equal(t, "unauthorized", decodeBody(t, rec)["error"])
		})
	}
	assert.Zero(t, updater.calls, "cycle must not run without the secret")
}

func TestHandleUpdateSuccess(t *testing.T) {
	updater := &fakeUpdater{result: &model.TransactionStore{
		TotalTransactions: 2,
		LastBlock:         850001,
	}}
	router := newTestHandler(t, updater, &fakeStore{})

	rec := get(t, router, "/api/update?key=s3cret")

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, true, body["success"])
	data, ok := body["data"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(2), data["total_transactions"])
	assert.Equal(t, 1, updater.calls)
}

func TestHandleUpdateNoDataIsSoftFailure(t *testing.T) {
	router := newTestHandler(t, &fakeUpdater{err: ingest.ErrNoData}, &fakeStore{})

	rec := get(t, router, "/api/update?key=s3cret")

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "no transaction data available", body["message"])
}

func TestHandleUpdateFailure(t *testing.T) {
	router := newTestHandler(t, &fakeUpdater{err: errors.New("redis down")}, &fakeStore{})

	rec := get(t, router, "/api/update?key=s3cret")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, false, body["success"])
	assert.NotContains(t, rec.Body.String(), "redis down", "internal errors stay internal")
}

func TestHandleTransactions(t *testing.T) {
	lastUpdate := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	store := &fakeStore{doc: &model.TransactionStore{
		Transactions: []model.Transaction{{TxID: "aa", BlockHeight: 850000}},
		LastUpdate:   lastUpdate,
		Metrics:      model.StoreMetrics{Last24h: model.Metrics24h{TxCount: 1}},
	}}
	router := newTestHandler(t, &fakeUpdater{}, store)

	rec := get(t, router, "/api/transactions")

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	txs, ok := body["transactions"].([]any)
	require.True(t, ok)
	assert.Len(t, txs, 1)
	assert.Equal(t, "2024-06-01T12:00:00Z", body["last_update"])
	metrics, ok := body["metrics"].(map[string]any)
	require.True(t, ok)
	last24h, ok := metrics["last24h"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(1), last24h["txCount"])
	assert.Equal(t, true, body["stale"], "a 2024 snapshot is long past the freshness window")
}

func TestHandleTransactionsStaleFlag(t *testing.T) {
	tests := []struct {
		name       string
		lastUpdate time.Time
		want       bool
	}{
		{name: "fresh document", lastUpdate: time.Now(), want: false},
		{name: "stalled pipeline", lastUpdate: time.Now().Add(-time.Hour), want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakeStore{doc: &model.TransactionStore{LastUpdate: tt.lastUpdate}}
			router := newTestHandler(t, &fakeUpdater{}, store)

			rec := get(t, router, "/api/transactions")

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tt.want, decodeBody(t, rec)["stale"])
		})
	}
}

func TestHandleTransactionsAlwaysWellFormed(t *testing.T) {
	tests := []struct {
		name  string
		store *fakeStore
	}{
		{name: "empty store", store: &fakeStore{}},
		{name: "load error", store: &fakeStore{err: errors.New("redis down")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTestHandler(t, &fakeUpdater{}, tt.store)

			rec := get(t, router, "/api/transactions")

			assert.Equal(t, http.StatusOK, rec.Code)
			body := decodeBody(t, rec)
			txs, ok := body["transactions"].([]any)
			require.True(t, ok)
			assert.Empty(t, txs)
			_, hasMetrics := body["metrics"]
			assert.True(t, hasMetrics)
			assert.Equal(t, true, body["stale"], "no document means nothing fresh to serve")
		})
	}
}
