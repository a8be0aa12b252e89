// Package runes holds the token denomination rules for the tracked rune.
package runes

import (
	"math"
	"strconv"
	"strings"
)

const (
	// Divisibility is the power-of-ten factor between raw indexer units and
	// the human-denominated amount.
	Divisibility = 5

	// MaxPlausibleAmount is the hard ceiling on any denominated amount.
	// The upstream indexer has known data-quality bugs; anything above this
	// bound is treated as corrupt rather than propagated.
	MaxPlausibleAmount = 100_000_000_000
)

var divisor = math.Pow10(Divisibility)

// ToAmount converts a raw integer amount to the denominated decimal amount,
// rounded to Divisibility decimal places. Negative or implausibly large raw
// values yield 0.
func ToAmount(raw int64) float64 {
	if raw < 0 {
		return 0
	}
	amount := Round(float64(raw) / divisor)
	if amount > MaxPlausibleAmount {
		return 0
	}
	return amount
}

// Round truncates an amount to Divisibility decimal places.
func Round(amount float64) float64 {
	return math.Round(amount*divisor) / divisor
}

// Plausible reports whether a denominated amount is finite, non-negative and
// within the plausibility bound.
func Plausible(amount float64) bool {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return false
	}
	return amount >= 0 && amount <= MaxPlausibleAmount
}

// ParseRaw parses a raw amount as emitted by the indexer. Upstream sends the
// field as a decimal string but has been observed emitting numbers too, so
// fractional input is floored. Malformed or negative input parses to 0.
func ParseRaw(s string) int64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	if v, err := strconv.ParseInt(s, 10, 64); err == nil {
		if v < 0 {
			return 0
		}
		return v
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return 0
	}
	if f > math.MaxInt64 {
		return 0
	}
	return int64(f)
}
