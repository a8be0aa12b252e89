// Package archive appends validated transactions to a ClickHouse table for
// ad-hoc analytics. The archive is optional and never fails an update cycle.
package archive

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"

	"github.com/dogwatch/dogwatch-backend/internal/model"
	"github.com/dogwatch/dogwatch-backend/pkg/safe"
)

type (
	Metrics interface {
		Observe(operation string, err error, started time.Time)
	}

	// Conn is the subset of the ClickHouse driver the repository uses.
	Conn interface {
		PrepareBatch(ctx context.Context, query string, opts ...driver.PrepareBatchOption) (driver.Batch, error)
	}
)

type Repository struct {
	conn    Conn
	metrics Metrics
}

// NewRepository opens a ClickHouse connection from a DSN.
func NewRepository(dsn string, metrics Metrics) (*Repository, error) {
	if dsn == "" {
		return nil, errors.New("clickhouse dsn is required")
	}
	if metrics == nil {
		return nil, errors.New("archive metrics is required")
	}

	options, err := clickhouse.ParseDSN(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse clickhouse dsn: %w", err)
	}
	conn, err := clickhouse.Open(options)
	if err != nil {
		return nil, fmt.Errorf("open clickhouse connection: %w", err)
	}

	return &Repository{conn: conn, metrics: metrics}, nil
}

func insertTransactionsQuery() string {
	return `
INSERT INTO rune_transactions (
	txid,
	block_height,
	timestamp,
	sender_count,
	receiver_count,
	total_dog_in,
	total_dog_out,
	net_transfer,
	change_amount,
	has_change,
	fee_sats
) VALUES`
}

// InsertTransactions appends one batch of transactions to the archive.
func (r *Repository) InsertTransactions(ctx context.Context, txs []model.Transaction) error {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("insert_transactions", err, start)
	}()

	if len(txs) == 0 {
		return nil
	}

	batch, err := r.conn.PrepareBatch(ctx, insertTransactionsQuery())
	if err != nil {
		return fmt.Errorf("prepare transactions batch: %w", err)
	}

	for _, tx := range txs {
		var senderCount, receiverCount uint16
		if senderCount, err = safe.Uint16(tx.SenderCount); err != nil {
			return fmt.Errorf("sender count for %s: %w", tx.TxID, err)
		}
		if receiverCount, err = safe.Uint16(tx.ReceiverCount); err != nil {
			return fmt.Errorf("receiver count for %s: %w", tx.TxID, err)
		}
		if err = batch.Append(
			tx.TxID,
			tx.BlockHeight,
			tx.Timestamp,
			senderCount,
			receiverCount,
			tx.TotalDogIn,
			tx.TotalDogOut,
			tx.NetTransfer,
			tx.ChangeAmount,
			tx.HasChange,
			tx.FeeSats,
		); err != nil {
			return fmt.Errorf("append transaction: %w", err)
		}
	}

	if err = batch.Send(); err != nil {
		return fmt.Errorf("insert transactions: %w", err)
	}
	return nil
}
