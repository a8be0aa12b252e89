package model

import (
	"encoding/json"
	"time"
)

// ActivityType classifies a raw indexer activity event.
type ActivityType string

const (
	ActivityInput  ActivityType = "input"
	ActivityOutput ActivityType = "output"
	ActivityMint   ActivityType = "mint"
)

// RawAmount holds an amount of raw integer rune units as reported upstream.
// Indexers disagree on the JSON type for this field, so it decodes from
// either a string or a bare number and keeps the textual form.
type RawAmount string

func (a *RawAmount) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*a = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*a = RawAmount(s)
		return nil
	}
	*a = RawAmount(data)
	return nil
}

// ActivityEvent is a single raw event from the indexer activity feed.
type ActivityEvent struct {
	BlockHeight int64        `json:"blockHeight"`
	BlockTime   int64        `json:"blockTime"`
	TxID        string       `json:"txid"`
	Index       uint32       `json:"index"`
	Type        ActivityType `json:"type"`
	Amount      RawAmount    `json:"amount"`
	Address     string       `json:"address"`
}

// GroupedActivity collects all events observed for one transaction during a
// single ingestion pass. Inputs and outputs are deduplicated by the grouper;
// Others holds event types the builder ignores.
type GroupedActivity struct {
	BlockHeight int64
	BlockTime   int64
	Inputs      []ActivityEvent
	Outputs     []ActivityEvent
	Others      []ActivityEvent
}

// Time returns the block time as UTC, or the zero time when unknown.
func (g *GroupedActivity) Time() time.Time {
	if g.BlockTime <= 0 {
		return time.Time{}
	}
	return time.Unix(g.BlockTime, 0).UTC()
}
