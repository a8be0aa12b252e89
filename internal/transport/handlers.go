package transport

import (
	"crypto/subtle"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/dogwatch/dogwatch-backend/internal/ingest"
	"github.com/dogwatch/dogwatch-backend/internal/model"
)

// staleAfter marks the served document stale once no update cycle has
// refreshed it for this long. The scheduler runs far more often, so a stale
// flag means the pipeline is stuck, not merely between cycles.
const staleAfter = 15 * time.Minute

type summaryResponse struct {
	Transactions []model.Transaction `json:"transactions"`
	Metrics      summaryMetrics      `json:"metrics"`
	LastUpdate   string              `json:"last_update,omitempty"`
	Stale        bool                `json:"stale"`
}

type summaryMetrics struct {
	Last24h model.Metrics24h `json:"last24h"`
}

func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleUpdate runs one ingestion cycle. The shared secret arrives as a
// query parameter; a bad secret returns 401 with no side effects.
func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get("key")
	if subtle.ConstantTimeCompare([]byte(key), []byte(h.secret)) != 1 {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"error": "unauthorized"})
		return
	}

	result, err := h.updater.Run(r.Context())
	switch {
	case errors.Is(err, ingest.ErrNoData):
		writeJSON(w, http.StatusOK, map[string]any{
			"success": false,
			"message": "no transaction data available",
		})
	case err != nil:
		h.logger.Error("update cycle failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"success": false,
			"error":   "update failed",
		})
	default:
		writeJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"data":    result,
		})
	}
}

// handleTransactions serves the persisted transactions and the 24h rollup.
// The response shape is always well-formed so the dashboard stays up even
// when no data has been ingested yet.
func (h *Handler) handleTransactions(w http.ResponseWriter, r *http.Request) {
	doc, err := h.store.Load(r.Context())
	if err != nil {
		h.logger.Error("failed to load transaction store", zap.Error(err))
		doc = nil
	}

	resp := summaryResponse{
		Transactions: []model.Transaction{},
		Stale:        doc.Stale(time.Now(), staleAfter),
	}
	if doc != nil {
		if doc.Transactions != nil {
			resp.Transactions = doc.Transactions
		}
		resp.Metrics = summaryMetrics{Last24h: doc.Metrics.Last24h}
		if !doc.LastUpdate.IsZero() {
			resp.LastUpdate = doc.LastUpdate.UTC().Format(time.RFC3339)
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
