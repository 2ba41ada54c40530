// Package retryhttp implements the resilient HTTP request layer: a pure
// jittered exponential backoff and a bounded retry executor driven by
// response status codes.
//
// If the backoff factor is set to:
//
//	0 seconds (default) the retries happen without any sleep between them
//	1 second  - successive sleeps of 0.5, 1, 2, 4, 8, 16, 32, 64, 128, 256
//	2 seconds - 1, 2, 4, 8, 16, 32, 64, 128, 256, 512
//
// Jitter spreads out retries across a pool of workers hitting the same API
// to avoid a thundering herd.
package retryhttp

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
)

// ErrNegativeJitter reports a malformed jitter argument. It is never retried.
var ErrNegativeJitter = errors.New("max jitter percent cannot be less than zero")

// Backoff calculates a sleep duration in seconds from the 0-indexed attempt
// number, the backoff factor, and a random jitter bounded by maxJitterPct.
// A maxSleepSeconds of 0 leaves the result uncapped.
func Backoff(attempt int, backoffFactor float64, maxJitterPct int, maxSleepSeconds float64) (float64, error) {
	if maxJitterPct < 0 {
		return 0, fmt.Errorf("%w: got %d", ErrNegativeJitter, maxJitterPct)
	}

	// A random scale in [1, 1+maxJitterPct/100).
	jitterScale := 1 + rand.Float64()*float64(maxJitterPct)/100

	sleep := backoffFactor * math.Pow(2, float64(attempt-1)) * jitterScale

	if maxSleepSeconds > 0 {
		return math.Min(sleep, maxSleepSeconds), nil
	}
	return sleep, nil
}
