// Package batcher buffers items and flushes them through a rate-limited
// callback in size- or time-bounded batches.
package batcher

import (
	"context"
	"sync"
	"time"

	"go.uber.org/ratelimit"
	"go.uber.org/zap"
)

// Batcher accumulates items and invokes the flush callback whenever the size
// bound or the interval elapses, whichever comes first.
type Batcher[T any] struct {
	flush         func(context.Context, []T) error
	items         chan T
	flushSize     int
	flushInterval time.Duration
	rl            ratelimit.Limiter
	logger        *zap.Logger

	wg   sync.WaitGroup
	stop chan struct{}
}

// New constructs a Batcher. flushesPerSecond caps how often the callback can
// fire back to back.
func New[T any](
	logger *zap.Logger,
	flush func(context.Context, []T) error,
	flushSize int,
	flushInterval time.Duration,
	flushesPerSecond int,
) *Batcher[T] {
	return &Batcher[T]{
		logger:        logger,
		flush:         flush,
		items:         make(chan T, flushSize*2),
		flushSize:     flushSize,
		flushInterval: flushInterval,
		rl:            ratelimit.New(flushesPerSecond),
		stop:          make(chan struct{}),
	}
}

// Start launches the background flush loop.
func (b *Batcher[T]) Start(ctx context.Context) {
	b.wg.Add(1)
	go b.run(ctx)
}

// Stop drains the buffer with a final flush and waits for the loop to exit.
func (b *Batcher[T]) Stop() {
	close(b.stop)
	b.wg.Wait()
}

// Add queues one item, honoring context cancellation. A stopped batcher
// rejects new items.
func (b *Batcher[T]) Add(ctx context.Context, item T) error {
	select {
	case <-b.stop:
		return context.Canceled
	default:
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case b.items <- item:
		return nil
	}
}

func (b *Batcher[T]) run(ctx context.Context) {
	defer b.wg.Done()

	ticker := time.NewTicker(b.flushInterval)
	defer ticker.Stop()

	buf := make([]T, 0, b.flushSize)

	doFlush := func() {
		if len(buf) == 0 {
			return
		}

		b.rl.Take()
		if err := b.flush(ctx, buf); err != nil {
			// A failed flush drops the batch; the loop keeps running.
			b.logger.Error("batch flush failed", zap.Int("size", len(buf)), zap.Error(err))
		} else {
			b.logger.Debug("batch flushed", zap.Int("size", len(buf)))
		}
		buf = buf[:0]
	}

	for {
		select {
		case <-ctx.Done():
			doFlush()
			return

		case <-b.stop:
			// Items still queued in the channel join the final flush.
			for {
				select {
				case item := <-b.items:
					buf = append(buf, item)
				default:
					doFlush()
					return
				}
			}

		case item := <-b.items:
			buf = append(buf, item)
			if len(buf) >= b.flushSize {
				doFlush()
			}

		case <-ticker.C:
			doFlush()
		}
	}
}
