package ingest

import (
	"sort"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"go.uber.org/zap"

	"github.com/dogwatch/dogwatch-backend/internal/model"
	"github.com/dogwatch/dogwatch-backend/internal/runes"
)

// MaxStoredTransactions caps the persisted transaction set. Oldest entries
// (lowest block height) fall off first.
const MaxStoredTransactions = 5000

// deniedTxIDs lists transactions with known-corrupt indexer data that must
// never reach the persisted store.
var deniedTxIDs = map[string]struct{}{
	"0b0ad91ac8a43571ae7bc4f4fae92cc3f61bbd17d677da86bd29aa53eb4971bf": {},
	"5f3c1c76a063d7ea06b2e6bb6b281ae714c1ddbb096fba69e6dd1f4326b7be04": {},
}

// Merge combines freshly built transactions with the previously persisted
// set, keyed by txid. Fresh entries win ties; an existing entry replaces a
// fresh one only when it carries a strictly higher block height, so a
// transaction is never downgraded to stale block data.
func Merge(fresh, existing []model.Transaction) []model.Transaction {
	byTxID := make(map[string]model.Transaction, len(fresh)+len(existing))
	order := make([]string, 0, len(fresh)+len(existing))

	for _, tx := range fresh {
		if _, ok := byTxID[tx.TxID]; !ok {
			order = append(order, tx.TxID)
		}
		byTxID[tx.TxID] = tx
	}
	for _, tx := range existing {
		current, ok := byTxID[tx.TxID]
		if !ok {
			order = append(order, tx.TxID)
			byTxID[tx.TxID] = tx
			continue
		}
		if tx.BlockHeight > current.BlockHeight {
			byTxID[tx.TxID] = tx
		}
	}

	merged := make([]model.Transaction, 0, len(byTxID))
	for _, txid := range order {
		merged = append(merged, byTxID[txid])
	}
	return merged
}

// ValidateTransactions is the strict post-merge gate. Unlike the builder's
// zeroing gate it drops entries outright: denylisted or malformed txids,
// out-of-range totals, malformed sender/receiver amounts, empty receiver
// sets despite funded senders, and duplicate receiver pairs.
func ValidateTransactions(txs []model.Transaction, logger *zap.Logger) []model.Transaction {
	valid := make([]model.Transaction, 0, len(txs))
	for _, tx := range txs {
		if reason := validationFailure(&tx); reason != "" {
			logger.Warn("dropping invalid transaction",
				zap.String("txid", tx.TxID),
				zap.String("reason", reason))
			continue
		}
		valid = append(valid, tx)
	}
	return valid
}

func validationFailure(tx *model.Transaction) string {
	if _, denied := deniedTxIDs[tx.TxID]; denied {
		return "denylisted txid"
	}
	if _, err := chainhash.NewHashFromStr(tx.TxID); err != nil {
		return "malformed txid"
	}
	if !runes.Plausible(tx.NetTransfer) || !runes.Plausible(tx.TotalDogOut) || !runes.Plausible(tx.TotalDogIn) {
		return "totals out of range"
	}

	sendersFunded := false
	for _, s := range tx.Senders {
		if !runes.Plausible(s.AmountDog) {
			return "sender amount out of range"
		}
		if s.AmountDog > 0 {
			sendersFunded = true
		}
	}

	if len(tx.Receivers) == 0 && sendersFunded {
		return "no receivers despite funded senders"
	}

	seen := make(map[string]map[float64]struct{}, len(tx.Receivers))
	for _, r := range tx.Receivers {
		if !runes.Plausible(r.AmountDog) {
			return "receiver amount out of range"
		}
		amounts, ok := seen[r.Address]
		if !ok {
			amounts = make(map[float64]struct{})
			seen[r.Address] = amounts
		}
		if _, dup := amounts[r.AmountDog]; dup {
			return "duplicate receiver entry"
		}
		amounts[r.AmountDog] = struct{}{}
	}
	return ""
}

// SortAndTrim orders transactions by block height then timestamp, both
// descending, and truncates to the retention cap.
func SortAndTrim(txs []model.Transaction, limit int) []model.Transaction {
	sort.SliceStable(txs, func(i, j int) bool {
		if txs[i].BlockHeight != txs[j].BlockHeight {
			return txs[i].BlockHeight > txs[j].BlockHeight
		}
		return txs[i].Timestamp.After(txs[j].Timestamp)
	})
	if limit > 0 && len(txs) > limit {
		txs = txs[:limit]
	}
	return txs
}
