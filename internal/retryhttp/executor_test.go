package retryhttp

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// scriptedOp returns the queued results in order, counting attempts.
type scriptedOp struct {
	results  []error
	attempts int
}

func (s *scriptedOp) run(_ context.Context) ([]byte, error) {
	idx := s.attempts
	s.attempts++
	if idx >= len(s.results) {
		return nil, errors.New("script exhausted")
	}
	if s.results[idx] != nil {
		return nil, s.results[idx]
	}
	return []byte("ok"), nil
}

// newTestExecutor swaps the real sleep for a recorder.
func newTestExecutor(opts Options) (*Executor, *[]time.Duration) {
	e := NewExecutor(opts, zap.NewNop())
	var sleeps []time.Duration
	e.sleep = func(_ context.Context, d time.Duration) error {
		sleeps = append(sleeps, d)
		return nil
	}
	return e, &sleeps
}

func statusErr(code int) *StatusError {
	return &StatusError{StatusCode: code}
}

func TestDoSuccessDoesNotRetry(t *testing.T) {
	t.Parallel()

	e, sleeps := newTestExecutor(Options{MaxAttempts: 5})
	op := &scriptedOp{results: []error{nil}}

	body, err := e.Do(context.Background(), op.run)
	require.NoError(t, err)
	assert.Equal(t, []byte("ok"), body)
	assert.Equal(t, 1, op.attempts)
	assert.Empty(t, *sleeps)
}

func TestDoUnsupportedCodePropagatesImmediately(t *testing.T) {
	t.Parallel()

	e, sleeps := newTestExecutor(Options{MaxAttempts: 5})
	op := &scriptedOp{results: []error{statusErr(511)}}

	_, err := e.Do(context.Background(), op.run)
	require.Error(t, err)

	var sErr *StatusError
	require.ErrorAs(t, err, &sErr)
	assert.Equal(t, 511, sErr.StatusCode)
	assert.Equal(t, 1, op.attempts)
	assert.Empty(t, *sleeps)
}

func TestDoRetriesThenSucceeds(t *testing.T) {
	t.Parallel()

	e, sleeps := newTestExecutor(Options{MaxAttempts: 5})
	op := &scriptedOp{results: []error{statusErr(500), statusErr(502), nil}}

	body, err := e.Do(context.Background(), op.run)
	require.NoError(t, err)
	assert.Equal(t, []byte("ok"), body)
	assert.Equal(t, 3, op.attempts)
	assert.Len(t, *sleeps, 2)
}

func TestDoExhaustsAttemptsAndReturnsFirstError(t *testing.T) {
	t.Parallel()

	e, sleeps := newTestExecutor(Options{MaxAttempts: 5, BackoffFactor: 1})
	results := make([]error, 0, 6)
	for i := 0; i < 5; i++ {
		results = append(results, &StatusError{
			StatusCode: 500,
			Body:       []byte(fmt.Sprintf("err-%d", i)),
		})
	}
	results = append(results, nil) // must never be reached
	op := &scriptedOp{results: results}

	_, err := e.Do(context.Background(), op.run)
	require.Error(t, err)
	assert.Equal(t, 5, op.attempts)

	// Sleeps happen between attempts, not after the last one.
	want := []time.Duration{
		500 * time.Millisecond,
		time.Second,
		2 * time.Second,
		4 * time.Second,
	}
	assert.Equal(t, want, *sleeps)

	// The first recorded error is the one surfaced.
	var sErr *StatusError
	require.ErrorAs(t, err, &sErr)
	assert.Equal(t, []byte("err-0"), sErr.Body)
}

func TestDo429UsesRetryAfterHeader(t *testing.T) {
	t.Parallel()

	e, sleeps := newTestExecutor(Options{MaxAttempts: 5, BackoffFactor: 1})
	op := &scriptedOp{results: []error{
		&StatusError{StatusCode: 429, RetryAfter: "42"},
		nil,
	}}

	_, err := e.Do(context.Background(), op.run)
	require.NoError(t, err)
	assert.Equal(t, 2, op.attempts)
	assert.Equal(t, []time.Duration{42 * time.Second}, *sleeps)
}

func TestDo429FallsBackToBackoffWithoutHeader(t *testing.T) {
	t.Parallel()

	e, sleeps := newTestExecutor(Options{MaxAttempts: 5, BackoffFactor: 1})
	op := &scriptedOp{results: []error{statusErr(429), nil}}

	_, err := e.Do(context.Background(), op.run)
	require.NoError(t, err)
	assert.Equal(t, []time.Duration{500 * time.Millisecond}, *sleeps)
}

func TestDo429FallsBackToBackoffOnGarbageHeader(t *testing.T) {
	t.Parallel()

	e, sleeps := newTestExecutor(Options{MaxAttempts: 5, BackoffFactor: 1})
	op := &scriptedOp{results: []error{
		&StatusError{StatusCode: 429, RetryAfter: "Wed, 21 Oct 2026 07:28:00 GMT"},
		nil,
	}}

	_, err := e.Do(context.Background(), op.run)
	require.NoError(t, err)
	assert.Equal(t, []time.Duration{500 * time.Millisecond}, *sleeps)
}

func TestDoTransportErrorIsNotRetried(t *testing.T) {
	t.Parallel()

	e, sleeps := newTestExecutor(Options{MaxAttempts: 5})
	transport := errors.New("connection refused")
	op := &scriptedOp{results: []error{transport}}

	_, err := e.Do(context.Background(), op.run)
	require.ErrorIs(t, err, transport)
	assert.Equal(t, 1, op.attempts)
	assert.Empty(t, *sleeps)
}

func TestSleepContextHonorsCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := sleepContext(ctx, time.Minute)
	require.ErrorIs(t, err, context.Canceled)
}
