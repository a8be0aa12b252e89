// Package stats derives the 24-hour rollup metrics from the persisted
// transaction set.
package stats

import (
	"sort"
	"time"

	"github.com/dogwatch/dogwatch-backend/internal/model"
	"github.com/dogwatch/dogwatch-backend/internal/runes"
)

// Window is the trailing period the rollup covers.
const Window = 24 * time.Hour

// topListSize is the published leaderboard length; candidatePool is how many
// inflow candidates are considered before the retention filter so five valid
// entries usually survive it.
const (
	topListSize   = 5
	candidatePool = 20
)

// HolderLookup resolves current balances and ranks for the inflow retention
// filter and leaderboard metadata. A nil lookup disables the filter.
type HolderLookup interface {
	Balance(address string) (float64, bool)
	Rank(address string) (int, bool)
}

type walletAccumulator struct {
	outflow  map[string]float64
	inflow   map[string]float64
	txCounts map[string]int
	active   map[string]struct{}
	volume   map[string]struct{}
}

// Compute24h scans transactions within the trailing window and derives the
// full rollup. It is a pure function of its inputs; "now" is passed in so
// cycles are reproducible in tests.
func Compute24h(txs []model.Transaction, now time.Time, holders HolderLookup) model.Metrics24h {
	cutoff := now.Add(-Window)

	acc := walletAccumulator{
		outflow:  make(map[string]float64),
		inflow:   make(map[string]float64),
		txCounts: make(map[string]int),
		active:   make(map[string]struct{}),
		volume:   make(map[string]struct{}),
	}
	blocks := make(map[int64]*model.BlockPoint)

	var (
		txCount    int
		totalMoved float64
		feesSats   int64
	)

	for i := range txs {
		tx := &txs[i]
		if !tx.Timestamp.After(cutoff) {
			continue
		}

		volume := tx.NetTransfer
		if volume == 0 && tx.TotalDogMoved > 0 {
			volume = tx.TotalDogMoved
		}

		txCount++
		totalMoved += volume

		point, ok := blocks[tx.BlockHeight]
		if !ok {
			point = &model.BlockPoint{BlockHeight: tx.BlockHeight}
			blocks[tx.BlockHeight] = point
		}
		point.TxCount++
		point.Volume = runes.Round(point.Volume + volume)

		attributeSenders(&acc, tx, volume)
		for _, r := range tx.Receivers {
			if r.IsChange || r.Address == "" {
				continue
			}
			acc.inflow[r.Address] += r.AmountDog
			acc.volume[r.Address] = struct{}{}
		}

		if tx.FeeSats != nil {
			feesSats += *tx.FeeSats
		}
	}

	metrics := model.Metrics24h{
		TxCount:           txCount,
		TotalDogMoved:     runes.Round(totalMoved),
		BlockCount:        len(blocks),
		ActiveWalletCount: len(acc.active),
		VolumeWalletCount: len(acc.volume),
		FeesSats:          feesSats,
		FeesBtc:           float64(feesSats) / 1e8,
		SeriesPerBlock:    blockSeries(blocks),
		TopOutWallets:     []model.WalletFlow{},
		TopInWallets:      []model.WalletFlow{},
	}
	if len(blocks) > 0 {
		metrics.AvgTxPerBlock = float64(txCount) / float64(len(blocks))
	}
	if txCount > 0 {
		metrics.AvgDogPerTx = runes.Round(totalMoved / float64(txCount))
	}

	metrics.TopActiveWallet = topByCount(acc.txCounts, holders)

	outFlows := sortedFlows(acc.outflow, holders)
	inFlows := retainedInflows(sortedFlows(acc.inflow, holders), holders)

	if len(outFlows) > 0 {
		top := outFlows[0]
		metrics.TopOutWallet = &top
		metrics.TopOutWallets = capList(outFlows, topListSize)
	}
	if len(inFlows) > 0 {
		top := inFlows[0]
		metrics.TopInWallet = &top
		metrics.TopInWallets = capList(inFlows, topListSize)
	}

	metrics.TopVolumeWallet = pickVolumeWallet(metrics.TopOutWallet, metrics.TopInWallet)

	return metrics
}

// attributeSenders spreads a transaction's volume across its senders
// proportionally to each sender's share of total input; when the total input
// is zero but senders exist, the volume is split equally.
func attributeSenders(acc *walletAccumulator, tx *model.Transaction, volume float64) {
	var totalIn float64
	for _, s := range tx.Senders {
		totalIn += s.AmountDog
	}

	for _, s := range tx.Senders {
		if s.Address == "" {
			continue
		}
		var share float64
		switch {
		case totalIn > 0:
			share = volume * (s.AmountDog / totalIn)
		case len(tx.Senders) > 0:
			share = volume / float64(len(tx.Senders))
		}
		acc.outflow[s.Address] += share
		acc.txCounts[s.Address]++
		acc.active[s.Address] = struct{}{}
		acc.volume[s.Address] = struct{}{}
	}
}

// retainedInflows applies the retention filter: an inflow wallet is reported
// only while its current balance still covers the 24h inflow, i.e. it has
// not since emptied the wallet.
func retainedInflows(flows []model.WalletFlow, holders HolderLookup) []model.WalletFlow {
	if holders == nil {
		return flows
	}
	if len(flows) > candidatePool {
		flows = flows[:candidatePool]
	}
	retained := make([]model.WalletFlow, 0, len(flows))
	for _, flow := range flows {
		balance, ok := holders.Balance(flow.Address)
		if !ok || balance < flow.Amount {
			continue
		}
		retained = append(retained, flow)
	}
	return retained
}

func sortedFlows(amounts map[string]float64, holders HolderLookup) []model.WalletFlow {
	flows := make([]model.WalletFlow, 0, len(amounts))
	for addr, amount := range amounts {
		flow := model.WalletFlow{Address: addr, Amount: runes.Round(amount)}
		if holders != nil {
			if rank, ok := holders.Rank(addr); ok {
				flow.Rank = rank
			}
		}
		flows = append(flows, flow)
	}
	sort.SliceStable(flows, func(i, j int) bool {
		if flows[i].Amount != flows[j].Amount {
			return flows[i].Amount > flows[j].Amount
		}
		return flows[i].Address < flows[j].Address
	})
	return flows
}

func topByCount(txCounts map[string]int, holders HolderLookup) *model.WalletFlow {
	var top *model.WalletFlow
	for addr, count := range txCounts {
		if top == nil || count > top.TxCount || (count == top.TxCount && addr < top.Address) {
			top = &model.WalletFlow{Address: addr, TxCount: count}
		}
	}
	if top != nil && holders != nil {
		if rank, ok := holders.Rank(top.Address); ok {
			top.Rank = rank
		}
	}
	return top
}

func pickVolumeWallet(out, in *model.WalletFlow) *model.WalletFlow {
	switch {
	case out == nil && in == nil:
		return nil
	case in == nil || (out != nil && out.Amount >= in.Amount):
		top := *out
		top.Direction = "out"
		return &top
	default:
		top := *in
		top.Direction = "in"
		return &top
	}
}

func capList(flows []model.WalletFlow, limit int) []model.WalletFlow {
	if len(flows) > limit {
		flows = flows[:limit]
	}
	out := make([]model.WalletFlow, len(flows))
	copy(out, flows)
	return out
}

func blockSeries(blocks map[int64]*model.BlockPoint) []model.BlockPoint {
	series := make([]model.BlockPoint, 0, len(blocks))
	for _, point := range blocks {
		series = append(series, *point)
	}
	sort.Slice(series, func(i, j int) bool {
		return series[i].BlockHeight < series[j].BlockHeight
	})
	return series
}
