package ingest

import (
	"context"
	"time"

	"github.com/dogwatch/dogwatch-backend/internal/indexer"
	"github.com/dogwatch/dogwatch-backend/internal/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// ActivitySource is the primary indexer surface the fetcher consumes.
	ActivitySource interface {
		ActivityPage(ctx context.Context, offset, limit int) (*indexer.ActivityPage, error)
		TxInputSats(ctx context.Context, txid string) (int64, error)
		TxOutputSats(ctx context.Context, txid string) (int64, error)
	}

	// FallbackSource is the secondary flat event feed used when the primary
	// indexer is unreachable.
	FallbackSource interface {
		Events(ctx context.Context, page, limit int) ([]indexer.FallbackEvent, int, error)
	}

	// Store persists the transaction document and exposes the read-only
	// holders snapshot maintained by the holders collaborator.
	Store interface {
		Load(ctx context.Context) (*model.TransactionStore, error)
		Save(ctx context.Context, store *model.TransactionStore) error
		Holders(ctx context.Context) (*model.HoldersSnapshot, error)
	}

	// Archive is the optional append-only analytic sink for validated
	// transactions. Failures never fail a cycle.
	Archive interface {
		InsertTransactions(ctx context.Context, txs []model.Transaction) error
	}

	// UpdateMetrics observes update cycle phases.
	UpdateMetrics interface {
		ObserveFetch(source string, err error, transactions int, started time.Time)
		ObserveCycle(err error, transactions int, started time.Time)
	}
)
