package retryhttp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func backoffSequence(t *testing.T, attempts int, factor float64, jitterPct int, maxSleep float64) []float64 {
	t.Helper()

	got := make([]float64, 0, attempts)
	for attempt := 0; attempt < attempts; attempt++ {
		sleep, err := Backoff(attempt, factor, jitterPct, maxSleep)
		require.NoError(t, err)
		got = append(got, sleep)
	}
	return got
}

func TestBackoffImmediateNoJitterNoMax(t *testing.T) {
	t.Parallel()

	want := []float64{0, 0, 0, 0, 0, 0, 0, 0, 0, 0}
	assert.Equal(t, want, backoffSequence(t, 10, 0, 0, 0))
}

func TestBackoffFactor1NoJitterNoMax(t *testing.T) {
	t.Parallel()

	want := []float64{0.5, 1, 2, 4, 8, 16, 32, 64, 128, 256}
	assert.Equal(t, want, backoffSequence(t, 10, 1, 0, 0))
}

func TestBackoffFactor10NoJitter180SecondMax(t *testing.T) {
	t.Parallel()

	want := []float64{5, 10, 20, 40, 80, 160, 180, 180, 180, 180}
	assert.Equal(t, want, backoffSequence(t, 10, 10, 0, 180))
}

func TestBackoffFactor1With25PctJitterStaysInBounds(t *testing.T) {
	t.Parallel()

	unjittered := []float64{0.5, 1, 2, 4, 8, 16, 32, 64, 128, 256}
	jittered := backoffSequence(t, 10, 1, 25, 0)

	for i, uval := range unjittered {
		assert.GreaterOrEqual(t, jittered[i], uval)
		assert.LessOrEqual(t, jittered[i], uval*1.25)
	}
}

func TestBackoffWithJitterNeverExceedsMax(t *testing.T) {
	t.Parallel()

	const maxSleep = 180.0
	jittered := backoffSequence(t, 10, 10, 25, maxSleep)

	observedMax := 0.0
	for _, val := range jittered {
		assert.LessOrEqual(t, val, maxSleep)
		if val > observedMax {
			observedMax = val
		}
	}
	// Late attempts blow well past the cap even before jitter, so the cap
	// itself must be the observed maximum.
	assert.InDelta(t, maxSleep, observedMax, 0)
}

func TestBackoffNegativeJitter(t *testing.T) {
	t.Parallel()

	_, err := Backoff(0, 1, -1, 0)
	require.ErrorIs(t, err, ErrNegativeJitter)
}
