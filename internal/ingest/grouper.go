// Package ingest implements the rune activity ingestion pipeline: grouping
// raw indexer events into transactions, merging them with the persisted set
// and validating the result.
package ingest

import (
	"fmt"
	"sort"

	"github.com/dogwatch/dogwatch-backend/internal/model"
	"github.com/dogwatch/dogwatch-backend/internal/runes"
)

// Grouper accumulates raw activity events into per-txid bundles. The indexer
// may emit the same (address, index) event more than once with diverging
// amounts; only the largest observation is retained, never the sum.
type Grouper struct {
	groups map[string]*txGroup
}

type txGroup struct {
	blockHeight int64
	blockTime   int64
	inputs      map[string]model.ActivityEvent
	outputs     map[string]model.ActivityEvent
	others      []model.ActivityEvent
}

// NewGrouper returns an empty Grouper.
func NewGrouper() *Grouper {
	return &Grouper{groups: make(map[string]*txGroup)}
}

// Add routes one event into its transaction bundle.
func (g *Grouper) Add(ev model.ActivityEvent) {
	if ev.TxID == "" {
		return
	}

	grp, ok := g.groups[ev.TxID]
	if !ok {
		grp = &txGroup{
			blockHeight: ev.BlockHeight,
			blockTime:   ev.BlockTime,
			inputs:      make(map[string]model.ActivityEvent),
			outputs:     make(map[string]model.ActivityEvent),
		}
		g.groups[ev.TxID] = grp
	}

	// First-seen block metadata wins; later events only fill gaps.
	if grp.blockHeight == 0 && ev.BlockHeight > 0 {
		grp.blockHeight = ev.BlockHeight
	}
	if grp.blockTime == 0 && ev.BlockTime > 0 {
		grp.blockTime = ev.BlockTime
	}

	switch ev.Type {
	case model.ActivityInput:
		upsertMax(grp.inputs, ev)
	case model.ActivityOutput, model.ActivityMint:
		upsertMax(grp.outputs, ev)
	default:
		grp.others = append(grp.others, ev)
	}
}

// Len returns the number of distinct transactions accumulated so far.
func (g *Grouper) Len() int {
	return len(g.groups)
}

// Groups materializes the accumulated bundles, with event lists ordered by
// output index for determinism.
func (g *Grouper) Groups() map[string]*model.GroupedActivity {
	out := make(map[string]*model.GroupedActivity, len(g.groups))
	for txid, grp := range g.groups {
		out[txid] = &model.GroupedActivity{
			BlockHeight: grp.blockHeight,
			BlockTime:   grp.blockTime,
			Inputs:      sortedEvents(grp.inputs),
			Outputs:     sortedEvents(grp.outputs),
			Others:      grp.others,
		}
	}
	return out
}

func upsertMax(events map[string]model.ActivityEvent, ev model.ActivityEvent) {
	key := fmt.Sprintf("%s:%d", ev.Address, ev.Index)
	existing, ok := events[key]
	if !ok || runes.ParseRaw(string(ev.Amount)) > runes.ParseRaw(string(existing.Amount)) {
		events[key] = ev
	}
}

func sortedEvents(events map[string]model.ActivityEvent) []model.ActivityEvent {
	list := make([]model.ActivityEvent, 0, len(events))
	for _, ev := range events {
		list = append(list, ev)
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].Index != list[j].Index {
			return list[i].Index < list[j].Index
		}
		return list[i].Address < list[j].Address
	})
	return list
}
