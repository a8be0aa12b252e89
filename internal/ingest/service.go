package ingest

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/dogwatch/dogwatch-backend/internal/model"
	"github.com/dogwatch/dogwatch-backend/internal/stats"
)

// ErrNoData reports that neither indexer yielded transactions and no usable
// cached data exists. The trigger endpoint maps it to a soft failure, not an
// error status.
var ErrNoData = errors.New("no transaction data available")

// UpdateService runs one ingestion cycle: load the persisted store, fetch
// fresh activity (falling back to the secondary source on primary failure),
// build, merge, validate, derive the 24h rollup and persist the result.
type UpdateService struct {
	fetcher  *Fetcher
	fallback FallbackSource
	store    Store
	archive  Archive
	metrics  UpdateMetrics
	logger   *zap.Logger
	now      func() time.Time
}

// NewUpdateService wires an UpdateService. archive may be nil.
func NewUpdateService(
	fetcher *Fetcher,
	fallback FallbackSource,
	store Store,
	archive Archive,
	metrics UpdateMetrics,
	logger *zap.Logger,
) (*UpdateService, error) {
	if fetcher == nil {
		return nil, errors.New("fetcher is required")
	}
	if store == nil {
		return nil, errors.New("store is required")
	}
	if metrics == nil {
		return nil, errors.New("update metrics is required")
	}
	return &UpdateService{
		fetcher:  fetcher,
		fallback: fallback,
		store:    store,
		archive:  archive,
		metrics:  metrics,
		logger:   logger.Named("update"),
		now:      time.Now,
	}, nil
}

// Run executes one cycle and returns the persisted store content.
func (s *UpdateService) Run(ctx context.Context) (*model.TransactionStore, error) {
	started := s.now()
	result, err := s.run(ctx)
	txCount := 0
	if result != nil {
		txCount = result.TotalTransactions
	}
	s.metrics.ObserveCycle(err, txCount, started)
	return result, err
}

func (s *UpdateService) run(ctx context.Context) (*model.TransactionStore, error) {
	existing, err := s.store.Load(ctx)
	if err != nil {
		s.logger.Warn("failed to load persisted store, continuing without cache", zap.Error(err))
		existing = nil
	}

	fresh, err := s.fetchFresh(ctx, existing)
	if err != nil {
		return nil, err
	}
	if len(fresh) == 0 && (existing == nil || len(existing.Transactions) == 0) {
		return nil, ErrNoData
	}

	if err := s.fetcher.EnrichFees(ctx, fresh, existing.KnownFees()); err != nil {
		// Only context cancellation propagates out of enrichment.
		return nil, err
	}

	var existingTxs []model.Transaction
	if existing != nil {
		existingTxs = existing.Transactions
	}
	merged := Merge(fresh, existingTxs)
	valid := ValidateTransactions(merged, s.logger)
	trimmed := SortAndTrim(valid, MaxStoredTransactions)

	var lookup stats.HolderLookup
	if holders, holdersErr := s.store.Holders(ctx); holdersErr != nil {
		s.logger.Warn("holders snapshot unavailable, skipping retention filter", zap.Error(holdersErr))
	} else if holders != nil {
		lookup = holders
	}

	now := s.now()
	var lastBlock int64
	if len(trimmed) > 0 {
		lastBlock = trimmed[0].BlockHeight
	}
	result := &model.TransactionStore{
		Timestamp:         now,
		TotalTransactions: len(trimmed),
		LastBlock:         lastBlock,
		LastUpdate:        now,
		Transactions:      trimmed,
		Metrics: model.StoreMetrics{
			Last24h: stats.Compute24h(trimmed, now, lookup),
		},
	}

	if err := s.store.Save(ctx, result); err != nil {
		s.logger.Error("failed to persist transaction store", zap.Error(err))
	}

	s.archiveFresh(ctx, fresh, trimmed)

	s.logger.Info("update cycle complete",
		zap.Int("fresh", len(fresh)),
		zap.Int("merged", len(merged)),
		zap.Int("persisted", len(trimmed)),
		zap.Int64("last_block", lastBlock))

	return result, nil
}

// fetchFresh tries the primary paginated feed first and reshapes the
// fallback event feed into the same transaction structure when the primary
// is unreachable.
func (s *UpdateService) fetchFresh(ctx context.Context, existing *model.TransactionStore) ([]model.Transaction, error) {
	started := s.now()
	grouper, err := s.fetcher.FetchRecent(ctx, existing.KnownTxIDs())
	if err == nil {
		fresh := s.buildAll(grouper)
		s.metrics.ObserveFetch("primary", nil, len(fresh), started)
		return fresh, nil
	}
	if ctx.Err() != nil {
		return nil, err
	}
	s.metrics.ObserveFetch("primary", err, 0, started)
	s.logger.Warn("primary indexer failed, switching to fallback", zap.Error(err))

	started = s.now()
	fresh, fallbackErr := s.fetchFallback(ctx)
	s.metrics.ObserveFetch("fallback", fallbackErr, len(fresh), started)
	if fallbackErr != nil {
		if existing != nil && len(existing.Transactions) > 0 {
			s.logger.Warn("fallback indexer failed, serving cached data", zap.Error(fallbackErr))
			return nil, nil
		}
		return nil, fmt.Errorf("both indexer sources failed: %w", fallbackErr)
	}
	return fresh, nil
}

func (s *UpdateService) buildAll(grouper *Grouper) []model.Transaction {
	groups := grouper.Groups()
	fresh := make([]model.Transaction, 0, len(groups))
	for txid, group := range groups {
		fresh = append(fresh, BuildTransaction(txid, group, s.logger))
	}
	return fresh
}

func (s *UpdateService) fetchFallback(ctx context.Context) ([]model.Transaction, error) {
	if s.fallback == nil {
		return nil, errors.New("no fallback source configured")
	}
	events, _, err := s.fallback.Events(ctx, 1, s.fetcher.cfg.PageLimit)
	if err != nil {
		return nil, err
	}

	// Reshape the flat send/receive feed through the same grouper/builder
	// path the primary uses.
	grouper := NewGrouper()
	for _, ev := range events {
		activityType := model.ActivityType("")
		switch ev.Type {
		case "send":
			activityType = model.ActivityInput
		case "receive":
			activityType = model.ActivityOutput
		}
		grouper.Add(model.ActivityEvent{
			BlockHeight: ev.BlockHeight,
			BlockTime:   ev.BlockTime,
			TxID:        ev.TxID,
			Type:        activityType,
			Amount:      ev.Amount,
			Address:     ev.Address,
		})
	}
	return s.buildAll(grouper), nil
}

func (s *UpdateService) archiveFresh(ctx context.Context, fresh, persisted []model.Transaction) {
	if s.archive == nil || len(fresh) == 0 {
		return
	}
	kept := make(map[string]struct{}, len(persisted))
	for _, tx := range persisted {
		kept[tx.TxID] = struct{}{}
	}
	batch := make([]model.Transaction, 0, len(fresh))
	for _, tx := range fresh {
		if _, ok := kept[tx.TxID]; ok {
			batch = append(batch, tx)
		}
	}
	if len(batch) == 0 {
		return
	}
	if err := s.archive.InsertTransactions(ctx, batch); err != nil {
		s.logger.Warn("archive insert failed", zap.Int("transactions", len(batch)), zap.Error(err))
	}
}
