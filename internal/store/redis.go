// Package store persists the transaction document and reads the holders
// snapshot from Redis.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dogwatch/dogwatch-backend/internal/model"
)

const (
	// TransactionsKey is the fixed cache key for the persisted
	// TransactionStore document, overwritten wholesale each cycle.
	TransactionsKey = "dog:transactions"

	// HoldersKey is the fixed cache key of the holder ranking document
	// maintained by the holders collaborator; this service only reads it.
	HoldersKey = "dog:holders"
)

type Metrics interface {
	Observe(operation string, err error, started time.Time)
}

// Redis is the single-writer document store backing the pipeline.
type Redis struct {
	client  *redis.Client
	metrics Metrics
}

// NewRedis connects a Redis document store.
func NewRedis(addr, password string, db int, metrics Metrics) (*Redis, error) {
	if addr == "" {
		return nil, errors.New("redis addr is required")
	}
	if metrics == nil {
		return nil, errors.New("store metrics is required")
	}
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &Redis{client: client, metrics: metrics}, nil
}

// Ping verifies connectivity.
func (r *Redis) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Load reads the persisted transaction store. A missing key returns
// (nil, nil): first run with no prior data.
func (r *Redis) Load(ctx context.Context) (*model.TransactionStore, error) {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("load_transactions", err, start)
	}()

	raw, getErr := r.client.Get(ctx, TransactionsKey).Result()
	if errors.Is(getErr, redis.Nil) {
		return nil, nil
	}
	if getErr != nil {
		err = fmt.Errorf("get %s: %w", TransactionsKey, getErr)
		return nil, err
	}

	var doc model.TransactionStore
	if unmarshalErr := json.Unmarshal([]byte(raw), &doc); unmarshalErr != nil {
		err = fmt.Errorf("decode %s: %w", TransactionsKey, unmarshalErr)
		return nil, err
	}
	return &doc, nil
}

// Save overwrites the persisted transaction store atomically.
func (r *Redis) Save(ctx context.Context, doc *model.TransactionStore) error {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("save_transactions", err, start)
	}()

	if doc == nil {
		err = errors.New("nil transaction store")
		return err
	}
	payload, marshalErr := json.Marshal(doc)
	if marshalErr != nil {
		err = fmt.Errorf("encode %s: %w", TransactionsKey, marshalErr)
		return err
	}
	if setErr := r.client.Set(ctx, TransactionsKey, payload, 0).Err(); setErr != nil {
		err = fmt.Errorf("set %s: %w", TransactionsKey, setErr)
		return err
	}
	return nil
}

// Holders reads the holder ranking snapshot. A missing key returns
// (nil, nil); the aggregator then skips the retention filter.
func (r *Redis) Holders(ctx context.Context) (*model.HoldersSnapshot, error) {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("load_holders", err, start)
	}()

	raw, getErr := r.client.Get(ctx, HoldersKey).Result()
	if errors.Is(getErr, redis.Nil) {
		return nil, nil
	}
	if getErr != nil {
		err = fmt.Errorf("get %s: %w", HoldersKey, getErr)
		return nil, err
	}

	var snapshot model.HoldersSnapshot
	if unmarshalErr := json.Unmarshal([]byte(raw), &snapshot); unmarshalErr != nil {
		err = fmt.Errorf("decode %s: %w", HoldersKey, unmarshalErr)
		return nil, err
	}
	return &snapshot, nil
}

// Close releases the underlying connection pool.
func (r *Redis) Close() error {
	return r.client.Close()
}
