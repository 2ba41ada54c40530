package retryhttp

import (
	"context"
	"errors"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/JakeFAU/nhl-stats-crawler/internal/metrics"
)

// Operation is a single no-argument network call. It returns the response
// body on success, a *StatusError for a non-2xx response, or any other error
// for a connection-level failure.
type Operation func(ctx context.Context) ([]byte, error)

// Options tune the retry loop. A zero MaxAttempts means 5; a zero
// BackoffFactor retries without sleeping; a zero MaxSleepSeconds leaves the
// backoff uncapped.
type Options struct {
	MaxAttempts     int
	BackoffFactor   float64
	MaxJitterPct    int
	MaxSleepSeconds float64
}

// Executor runs Operations with bounded retries and jittered backoff.
type Executor struct {
	opts   Options
	logger *zap.Logger

	// sleep is swapped out by tests to avoid real delays.
	sleep func(ctx context.Context, d time.Duration) error
}

// NewExecutor builds an Executor with the given options.
func NewExecutor(opts Options, logger *zap.Logger) *Executor {
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = 5
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Executor{
		opts:   opts,
		logger: logger,
		sleep:  sleepContext,
	}
}

// Do executes op up to MaxAttempts times. Retries apply only to retryable
// status codes (429, 500, 502, 503, 504); everything else propagates
// immediately. After exhausting all attempts the first recorded retryable
// error is returned, which favors surfacing the original failure mode.
func (e *Executor) Do(ctx context.Context, op Operation) ([]byte, error) {
	// Keep every error we receive for post-mortem analysis.
	var errList []*StatusError

	for attempt := 0; attempt < e.opts.MaxAttempts; attempt++ {
		body, err := op(ctx)
		if err == nil {
			return body, nil
		}

		var statusErr *StatusError
		if !errors.As(err, &statusErr) {
			// Connection-level failure with no status code; not retried.
			return nil, err
		}

		e.logger.Info("request returned status code",
			zap.Int("status_code", statusErr.StatusCode),
			zap.Int("attempt", attempt))
		metrics.RecordUpstreamRequest(statusErr.StatusCode)
		errList = append(errList, statusErr)

		if !statusErr.Retryable() {
			return nil, statusErr
		}
		if attempt == e.opts.MaxAttempts-1 {
			break
		}

		sleepSeconds, err := e.sleepDuration(statusErr, attempt)
		if err != nil {
			return nil, err
		}
		e.logger.Info("sleeping before retry", zap.Float64("seconds", sleepSeconds))
		metrics.RecordRetrySleep()
		if err := e.sleep(ctx, secondsToDuration(sleepSeconds)); err != nil {
			return nil, err
		}
	}

	// It's not happening; log the codes and re-raise the first error.
	for idx, recorded := range errList {
		e.logger.Error("HTTP retry attempt returned status code",
			zap.Int("attempt", idx),
			zap.Int("status_code", recorded.StatusCode))
	}
	e.logger.Error("re-raising the first error encountered")
	return nil, errList[0]
}

// sleepDuration picks the delay before the next attempt. A 429 carrying a
// parseable Retry-After value wins over the backoff formula.
func (e *Executor) sleepDuration(statusErr *StatusError, attempt int) (float64, error) {
	if statusErr.StatusCode == 429 && statusErr.RetryAfter != "" {
		if seconds, err := strconv.ParseFloat(statusErr.RetryAfter, 64); err == nil && seconds >= 0 {
			return seconds, nil
		}
		e.logger.Warn("unparseable Retry-After header; falling back to backoff",
			zap.String("retry_after", statusErr.RetryAfter))
	}
	return Backoff(attempt, e.opts.BackoffFactor, e.opts.MaxJitterPct, e.opts.MaxSleepSeconds)
}

func secondsToDuration(seconds float64) time.Duration {
	return time.Duration(seconds * float64(time.Second))
}

// sleepContext blocks for d or until the context finishes.
func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
