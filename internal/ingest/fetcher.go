package ingest

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/ratelimit"
	"go.uber.org/zap"

	"github.com/dogwatch/dogwatch-backend/internal/clock"
	"github.com/dogwatch/dogwatch-backend/internal/indexer"
	"github.com/dogwatch/dogwatch-backend/internal/model"
)

// FetcherConfig bounds one pagination walk over the indexer activity feed.
type FetcherConfig struct {
	PageLimit           int
	MaxPages            int
	MaxTransactions     int
	KnownStopCount      int
	PagesPerSecond      int
	BackoffBase         time.Duration
	MaxRateLimitRetries int
	FeeDelay            time.Duration
	MaxFeeLookups       int
}

// DefaultFetcherConfig returns the production pagination bounds.
func DefaultFetcherConfig() FetcherConfig {
	return FetcherConfig{
		PageLimit:           100,
		MaxPages:            20,
		MaxTransactions:     2000,
		KnownStopCount:      25,
		PagesPerSecond:      4,
		BackoffBase:         500 * time.Millisecond,
		MaxRateLimitRetries: 5,
		FeeDelay:            150 * time.Millisecond,
		MaxFeeLookups:       50,
	}
}

// Fetcher walks the paginated activity feed into a Grouper, backing off on
// rate limits and stopping early once enough already-known transactions are
// re-observed.
type Fetcher struct {
	source ActivitySource
	cfg    FetcherConfig
	rl     ratelimit.Limiter
	sleep  func(context.Context, time.Duration) error
	logger *zap.Logger
}

// NewFetcher builds a Fetcher over the given activity source.
func NewFetcher(source ActivitySource, cfg FetcherConfig, logger *zap.Logger) (*Fetcher, error) {
	if source == nil {
		return nil, errors.New("activity source is required")
	}
	def := DefaultFetcherConfig()
	if cfg.PageLimit <= 0 {
		cfg.PageLimit = def.PageLimit
	}
	if cfg.MaxPages <= 0 {
		cfg.MaxPages = def.MaxPages
	}
	if cfg.MaxTransactions <= 0 {
		cfg.MaxTransactions = def.MaxTransactions
	}
	if cfg.KnownStopCount <= 0 {
		cfg.KnownStopCount = def.KnownStopCount
	}
	if cfg.PagesPerSecond <= 0 {
		cfg.PagesPerSecond = def.PagesPerSecond
	}
	if cfg.BackoffBase <= 0 {
		cfg.BackoffBase = def.BackoffBase
	}
	if cfg.MaxRateLimitRetries <= 0 {
		cfg.MaxRateLimitRetries = def.MaxRateLimitRetries
	}
	if cfg.MaxFeeLookups <= 0 {
		cfg.MaxFeeLookups = def.MaxFeeLookups
	}
	return &Fetcher{
		source: source,
		cfg:    cfg,
		rl:     ratelimit.New(cfg.PagesPerSecond),
		sleep:  clock.SleepWithContext,
		logger: logger.Named("fetcher"),
	}, nil
}

// FetchRecent accumulates activity pages into a Grouper until a stop
// condition triggers: page budget, distinct-transaction budget, an empty
// page, or KnownStopCount already-persisted txids re-observed.
func (f *Fetcher) FetchRecent(ctx context.Context, known map[string]struct{}) (*Grouper, error) {
	grouper := NewGrouper()
	knownSeen := make(map[string]struct{})
	offset := 0

	for page := 0; page < f.cfg.MaxPages; page++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		f.rl.Take()

		result, err := f.fetchPage(ctx, offset)
		if err != nil {
			if page == 0 {
				return nil, err
			}
			// Later pages degrade to partial data instead of failing the run.
			f.logger.Warn("activity page failed, keeping partial result",
				zap.Int("offset", offset), zap.Error(err))
			break
		}
		if len(result.Items) == 0 {
			break
		}

		for _, ev := range result.Items {
			if _, ok := known[ev.TxID]; ok {
				knownSeen[ev.TxID] = struct{}{}
			}
			grouper.Add(ev)
		}

		f.logger.Debug("activity page ingested",
			zap.Int("offset", offset),
			zap.Int("events", len(result.Items)),
			zap.Int("transactions", grouper.Len()),
			zap.Int("known_reobserved", len(knownSeen)))

		if len(knownSeen) >= f.cfg.KnownStopCount {
			f.logger.Debug("known transaction tail reached", zap.Int("known", len(knownSeen)))
			break
		}
		if grouper.Len() >= f.cfg.MaxTransactions {
			break
		}
		if len(result.Items) < f.cfg.PageLimit {
			break
		}
		offset += f.cfg.PageLimit
	}

	return grouper, nil
}

// fetchPage retries one offset on rate limiting with capped exponential
// backoff, aborting after MaxRateLimitRetries consecutive 429s.
func (f *Fetcher) fetchPage(ctx context.Context, offset int) (*indexer.ActivityPage, error) {
	streak := 0
	for {
		page, err := f.source.ActivityPage(ctx, offset, f.cfg.PageLimit)
		if err == nil {
			return page, nil
		}
		if !errors.Is(err, indexer.ErrRateLimited) {
			return nil, fmt.Errorf("activity page at offset %d: %w", offset, err)
		}

		streak++
		if streak >= f.cfg.MaxRateLimitRetries {
			return nil, fmt.Errorf("rate limited %d times in a row at offset %d: %w", streak, offset, err)
		}
		delay := clock.BackoffDelay(f.cfg.BackoffBase, streak)
		f.logger.Warn("indexer rate limited, backing off",
			zap.Int("offset", offset),
			zap.Int("streak", streak),
			zap.Duration("delay", delay))
		if sleepErr := f.sleep(ctx, delay); sleepErr != nil {
			return nil, sleepErr
		}
	}
}

// EnrichFees resolves the Bitcoin network fee for transactions that do not
// have one yet. Fees already known from a previous cycle are reused without
// network calls; lookup failures leave the fee unset for a future cycle.
func (f *Fetcher) EnrichFees(ctx context.Context, txs []model.Transaction, knownFees map[string]int64) error {
	lookups := 0
	for i := range txs {
		tx := &txs[i]
		if tx.FeeSats != nil {
			continue
		}
		if fee, ok := knownFees[tx.TxID]; ok {
			cached := fee
			tx.FeeSats = &cached
			continue
		}
		if lookups >= f.cfg.MaxFeeLookups {
			continue
		}
		lookups++

		inSats, err := f.source.TxInputSats(ctx, tx.TxID)
		if err != nil {
			f.logger.Debug("fee input lookup failed", zap.String("txid", tx.TxID), zap.Error(err))
			if err := f.sleep(ctx, f.cfg.FeeDelay); err != nil {
				return err
			}
			continue
		}
		if err := f.sleep(ctx, f.cfg.FeeDelay); err != nil {
			return err
		}

		outSats, err := f.source.TxOutputSats(ctx, tx.TxID)
		if err != nil {
			f.logger.Debug("fee output lookup failed", zap.String("txid", tx.TxID), zap.Error(err))
			if err := f.sleep(ctx, f.cfg.FeeDelay); err != nil {
				return err
			}
			continue
		}

		fee := inSats - outSats
		if fee < 0 {
			fee = 0
		}
		tx.FeeSats = &fee

		if err := f.sleep(ctx, f.cfg.FeeDelay); err != nil {
			return err
		}
	}
	return nil
}
