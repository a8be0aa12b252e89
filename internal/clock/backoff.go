package clock

import "time"

// BackoffMaxFactor caps the exponential backoff multiplier.
const BackoffMaxFactor = 8

// BackoffDelay returns the delay before retry number attempt (1-based) of a
// rate-limited call: base doubled per consecutive failure, capped at 8x base.
func BackoffDelay(base time.Duration, attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	factor := 1 << (attempt - 1)
	if factor > BackoffMaxFactor {
		factor = BackoffMaxFactor
	}
	return base * time.Duration(factor)
}
