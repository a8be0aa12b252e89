package ingest

import (
	"sort"

	"go.uber.org/zap"

	"github.com/dogwatch/dogwatch-backend/internal/model"
	"github.com/dogwatch/dogwatch-backend/internal/runes"
)

// BuildTransaction turns one grouped activity bundle into a Transaction
// record: senders and receivers per address, change detection, gross and net
// totals, and the plausibility gate.
func BuildTransaction(txid string, group *model.GroupedActivity, logger *zap.Logger) model.Transaction {
	senders := buildSenders(group.Inputs)
	senderSet := make(map[string]struct{}, len(senders))
	for _, s := range senders {
		senderSet[s.Address] = struct{}{}
	}

	receivers, totalOut, changeAmount := buildReceivers(group.Outputs, senderSet)

	totalIn := 0.0
	for _, s := range senders {
		totalIn += s.AmountDog
	}
	totalIn = runes.Round(totalIn)
	if len(senders) == 0 {
		// Mint-like transactions have no rune inputs.
		totalIn = totalOut
	}

	netTransfer := runes.Round(totalOut - changeAmount)
	if netTransfer < 0 {
		netTransfer = 0
	}

	tx := model.Transaction{
		TxID:          txid,
		BlockHeight:   group.BlockHeight,
		Timestamp:     group.Time(),
		Senders:       senders,
		Receivers:     receivers,
		SenderCount:   len(senders),
		ReceiverCount: len(receivers),
		TotalDogIn:    totalIn,
		TotalDogOut:   totalOut,
		TotalDogMoved: netTransfer,
		NetTransfer:   netTransfer,
		ChangeAmount:  changeAmount,
		HasChange:     changeAmount > 0,
	}

	if !runes.Plausible(totalOut) || !runes.Plausible(totalIn) || !runes.Plausible(netTransfer) {
		logger.Warn("implausible transaction totals, zeroing",
			zap.String("txid", txid),
			zap.Float64("total_dog_in", totalIn),
			zap.Float64("total_dog_out", totalOut))
		return zeroedTransaction(txid, group)
	}

	return tx
}

// zeroedTransaction keeps a placeholder for a known txid whose computed
// magnitudes failed the plausibility gate, so corrupt indexer data cannot
// pollute the aggregates while the txid stays accounted for.
func zeroedTransaction(txid string, group *model.GroupedActivity) model.Transaction {
	return model.Transaction{
		TxID:        txid,
		BlockHeight: group.BlockHeight,
		Timestamp:   group.Time(),
		Senders:     []model.Sender{},
		Receivers:   []model.Receiver{},
	}
}

func buildSenders(inputs []model.ActivityEvent) []model.Sender {
	byAddress := make(map[string]int64)
	order := make([]string, 0, len(inputs))
	for _, ev := range inputs {
		if ev.Address == "" {
			continue
		}
		if _, ok := byAddress[ev.Address]; !ok {
			order = append(order, ev.Address)
		}
		byAddress[ev.Address] += runes.ParseRaw(string(ev.Amount))
	}

	senders := make([]model.Sender, 0, len(byAddress))
	for _, addr := range order {
		raw := byAddress[addr]
		amount := runes.ToAmount(raw)
		senders = append(senders, model.Sender{
			Address:   addr,
			Amount:    raw,
			AmountDog: amount,
			HasDog:    amount > 0,
		})
	}
	sort.SliceStable(senders, func(i, j int) bool {
		return senders[i].AmountDog > senders[j].AmountDog
	})
	return senders
}

func buildReceivers(outputs []model.ActivityEvent, senderSet map[string]struct{}) ([]model.Receiver, float64, float64) {
	byAddress := make(map[string]int64)
	order := make([]string, 0, len(outputs))
	for _, ev := range outputs {
		if ev.Address == "" {
			continue
		}
		if _, ok := byAddress[ev.Address]; !ok {
			order = append(order, ev.Address)
		}
		byAddress[ev.Address] += runes.ParseRaw(string(ev.Amount))
	}

	receivers := make([]model.Receiver, 0, len(byAddress))
	var totalOut, changeAmount float64
	for _, addr := range order {
		raw := byAddress[addr]
		amount := runes.ToAmount(raw)
		_, isChange := senderSet[addr]
		receivers = append(receivers, model.Receiver{
			Address:   addr,
			Amount:    raw,
			AmountDog: amount,
			HasDog:    amount > 0,
			IsChange:  isChange,
		})
		totalOut += amount
		if isChange {
			changeAmount += amount
		}
	}
	sort.SliceStable(receivers, func(i, j int) bool {
		return receivers[i].AmountDog > receivers[j].AmountDog
	})
	return receivers, runes.Round(totalOut), runes.Round(changeAmount)
}
