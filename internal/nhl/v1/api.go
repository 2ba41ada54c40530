// Package v1 targets version 1 of the NHL statsapi schema: the schedule and
// boxscore operations, the flattening of boxscores onto the fixed column
// schema, and the crawler that drives them.
package v1

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/JakeFAU/nhl-stats-crawler/internal/retryhttp"
)

const dateLayout = "2006-01-02"

// Client issues the two upstream operations through the retry executor.
type Client struct {
	endpoint   string
	httpClient *http.Client
	executor   *retryhttp.Executor
	logger     *zap.Logger
}

// NewClient builds a Client against the given statsapi base URL.
func NewClient(endpoint string, executor *retryhttp.Executor, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		executor:   executor,
		logger:     logger,
	}
}

// Schedule queries the games between start and end, inclusive. Ordering of
// the two dates is the caller's responsibility.
func (c *Client) Schedule(ctx context.Context, start, end time.Time) (*ScheduleResponse, error) {
	query := url.Values{}
	query.Set("startDate", start.Format(dateLayout))
	query.Set("endDate", end.Format(dateLayout))
	requestURL := fmt.Sprintf("%s/schedule?%s", c.endpoint, query.Encode())

	body, err := c.executor.Do(ctx, func(ctx context.Context) ([]byte, error) {
		return c.get(ctx, requestURL)
	})
	if err != nil {
		return nil, fmt.Errorf("fetch schedule: %w", err)
	}

	var schedule ScheduleResponse
	if err := json.Unmarshal(body, &schedule); err != nil {
		return nil, fmt.Errorf("decode schedule: %w", err)
	}
	return &schedule, nil
}

// Boxscore looks up the per-player statistics document for one game.
func (c *Client) Boxscore(ctx context.Context, gameID string) (*BoxscoreResponse, error) {
	requestURL := fmt.Sprintf("%s/game/%s/boxscore", c.endpoint, gameID)

	body, err := c.executor.Do(ctx, func(ctx context.Context) ([]byte, error) {
		return c.get(ctx, requestURL)
	})
	if err != nil {
		return nil, fmt.Errorf("fetch boxscore for game %s: %w", gameID, err)
	}

	var box BoxscoreResponse
	if err := json.Unmarshal(body, &box); err != nil {
		return nil, fmt.Errorf("decode boxscore for game %s: %w", gameID, err)
	}
	return &box, nil
}

// get performs one GET. A non-2xx response becomes a *retryhttp.StatusError
// so the executor can decide whether it is worth another attempt.
func (c *Client) get(ctx context.Context, requestURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck // read-only body

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &retryhttp.StatusError{
			StatusCode: resp.StatusCode,
			Body:       body,
			RetryAfter: resp.Header.Get("Retry-After"),
		}
	}
	return body, nil
}
