package model

import "time"

// Sender is a deduplicated transaction input attributed to one address.
type Sender struct {
	Address   string  `json:"address"`
	Amount    int64   `json:"amount"`
	AmountDog float64 `json:"amount_dog"`
	HasDog    bool    `json:"has_dog"`
}

// Receiver is a deduplicated transaction output attributed to one address.
// IsChange marks outputs returning funds to an address that also appears
// among the transaction's senders.
type Receiver struct {
	Address   string  `json:"address"`
	Amount    int64   `json:"amount"`
	AmountDog float64 `json:"amount_dog"`
	HasDog    bool    `json:"has_dog"`
	IsChange  bool    `json:"is_change"`
}

// Transaction is the persisted per-txid record built from grouped activity.
//
// NetTransfer is the authoritative volume figure: gross output minus change.
// TotalDogMoved is kept as a legacy alias of NetTransfer and is always
// assigned the same value by the builder.
type Transaction struct {
	TxID          string     `json:"txid"`
	BlockHeight   int64      `json:"block_height"`
	Timestamp     time.Time  `json:"timestamp"`
	Senders       []Sender   `json:"senders"`
	Receivers     []Receiver `json:"receivers"`
	SenderCount   int        `json:"sender_count"`
	ReceiverCount int        `json:"receiver_count"`
	TotalDogIn    float64    `json:"total_dog_in"`
	TotalDogOut   float64    `json:"total_dog_out"`
	TotalDogMoved float64    `json:"total_dog_moved"`
	NetTransfer   float64    `json:"net_transfer"`
	ChangeAmount  float64    `json:"change_amount"`
	HasChange     bool       `json:"has_change"`
	FeeSats       *int64     `json:"fee_sats,omitempty"`
}

// TransactionStore is the single persisted document holding the merged
// transaction set and the derived metrics for the presentation layer.
type TransactionStore struct {
	Timestamp         time.Time     `json:"timestamp"`
	TotalTransactions int           `json:"total_transactions"`
	LastBlock         int64         `json:"last_block"`
	LastUpdate        time.Time     `json:"last_update"`
	Transactions      []Transaction `json:"transactions"`
	Metrics           StoreMetrics  `json:"metrics"`
}

// StoreMetrics wraps the derived rollups persisted alongside the transactions.
type StoreMetrics struct {
	Last24h Metrics24h `json:"last24h"`
}

// Stale reports whether the store content is older than ttl at the given time.
func (s *TransactionStore) Stale(now time.Time, ttl time.Duration) bool {
	if s == nil {
		return true
	}
	return now.Sub(s.LastUpdate) > ttl
}

// KnownTxIDs returns the set of txids already present in the store.
func (s *TransactionStore) KnownTxIDs() map[string]struct{} {
	if s == nil {
		return map[string]struct{}{}
	}
	known := make(map[string]struct{}, len(s.Transactions))
	for _, tx := range s.Transactions {
		known[tx.TxID] = struct{}{}
	}
	return known
}

// KnownFees returns txid -> fee for transactions whose fee was already
// resolved in a previous cycle, so enrichment can skip them.
func (s *TransactionStore) KnownFees() map[string]int64 {
	if s == nil {
		return map[string]int64{}
	}
	fees := make(map[string]int64)
	for _, tx := range s.Transactions {
		if tx.FeeSats != nil {
			fees[tx.TxID] = *tx.FeeSats
		}
	}
	return fees
}
