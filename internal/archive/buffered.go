package archive

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/dogwatch/dogwatch-backend/internal/model"
	"github.com/dogwatch/dogwatch-backend/pkg/batcher"
)

const (
	defaultFlushSize     = 500
	defaultFlushInterval = 30 * time.Second
	// ClickHouse prefers few large inserts; one flush per second is plenty.
	flushesPerSecond = 1
)

// Buffered coalesces the small per-cycle insert batches into larger
// ClickHouse inserts, flushing by size or interval.
type Buffered struct {
	batcher *batcher.Batcher[model.Transaction]
}

// NewBuffered wraps a Repository behind a background batcher. Zero values
// for flushSize and flushInterval select the defaults.
func NewBuffered(repo *Repository, flushSize int, flushInterval time.Duration, logger *zap.Logger) (*Buffered, error) {
	if repo == nil {
		return nil, errors.New("archive repository is required")
	}
	if flushSize <= 0 {
		flushSize = defaultFlushSize
	}
	if flushInterval <= 0 {
		flushInterval = defaultFlushInterval
	}
	b := batcher.New(logger.Named("archive"), repo.InsertTransactions, flushSize, flushInterval, flushesPerSecond)
	return &Buffered{batcher: b}, nil
}

// Start launches the background flush loop.
func (b *Buffered) Start(ctx context.Context) {
	b.batcher.Start(ctx)
}

// Stop flushes the remaining buffer and stops the loop.
func (b *Buffered) Stop() {
	b.batcher.Stop()
}

// InsertTransactions queues transactions for the next flush.
func (b *Buffered) InsertTransactions(ctx context.Context, txs []model.Transaction) error {
	for _, tx := range txs {
		if err := b.batcher.Add(ctx, tx); err != nil {
			return err
		}
	}
	return nil
}
