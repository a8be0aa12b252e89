// Package transport exposes the HTTP API: the secret-guarded update trigger
// and the read-only summary endpoints consumed by the dashboard.
package transport

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"github.com/dogwatch/dogwatch-backend/internal/model"
)

// UpdateRunner triggers one ingestion cycle.
type UpdateRunner interface {
	Run(ctx context.Context) (*model.TransactionStore, error)
}

// StoreReader serves the persisted document to the summary endpoints.
type StoreReader interface {
	Load(ctx context.Context) (*model.TransactionStore, error)
}

// Handler carries the HTTP dependencies.
type Handler struct {
	updater UpdateRunner
	store   StoreReader
	secret  string
	logger  *zap.Logger
}

// NewHandler builds the API handler. secret guards the update trigger.
func NewHandler(updater UpdateRunner, store StoreReader, secret string, logger *zap.Logger) (*Handler, error) {
	if updater == nil {
		return nil, errors.New("update runner is required")
	}
	if store == nil {
		return nil, errors.New("store reader is required")
	}
	if secret == "" {
		return nil, errors.New("update secret is required")
	}
	return &Handler{
		updater: updater,
		store:   store,
		secret:  secret,
		logger:  logger.Named("http"),
	}, nil
}

// Router assembles the chi router with CORS and the prometheus endpoint.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/healthz", h.handleHealth)
	r.Get("/api/update", h.handleUpdate)
	r.Get("/api/transactions", h.handleTransactions)
	r.Handle("/metrics", promhttp.Handler())

	return cors.Default().Handler(r)
}
