package v1

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/JakeFAU/nhl-stats-crawler/internal/metrics"
	"github.com/JakeFAU/nhl-stats-crawler/internal/storage"
)

// API is the slice of the upstream client the crawler consumes.
type API interface {
	Schedule(ctx context.Context, start, end time.Time) (*ScheduleResponse, error)
	Boxscore(ctx context.Context, gameID string) (*BoxscoreResponse, error)
}

// Crawler retrieves game data from the NHL statsapi and writes one flattened
// CSV per game to storage. It owns no state between runs; everything it
// touches is constructed and consumed within a single Crawl call.
type Crawler struct {
	api    API
	store  *storage.Storage
	logger *zap.Logger
}

// NewCrawler constructs a Crawler.
func NewCrawler(api API, store *storage.Storage, logger *zap.Logger) *Crawler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Crawler{
		api:    api,
		store:  store,
		logger: logger,
	}
}

// Crawl fetches the schedule for the window, then for each game in schedule
// order fetches its boxscore, flattens it, and stores the CSV. Games are
// processed strictly sequentially; the first unrecovered error aborts the
// remaining sequence and propagates to the caller.
func (c *Crawler) Crawl(ctx context.Context, start, end time.Time) error {
	schedule, err := c.api.Schedule(ctx, start, end)
	if err != nil {
		return err
	}

	if schedule.TotalGames == 0 {
		c.logger.Info("no NHL games found in window",
			zap.Time("start", start), zap.Time("end", end))
		return nil
	}

	keys, err := extractGameKeys(schedule)
	if err != nil {
		return err
	}

	for _, key := range keys {
		box, err := c.api.Boxscore(ctx, key.GameID)
		if err != nil {
			return err
		}

		rows, err := FlattenPlayers(box)
		if err != nil {
			return fmt.Errorf("normalize game %s: %w", key.GameID, err)
		}

		data, err := RenderCSV(rows)
		if err != nil {
			return fmt.Errorf("serialize game %s: %w", key.GameID, err)
		}

		if err := c.store.StoreGame(ctx, key, data); err != nil {
			return fmt.Errorf("store game %s: %w", key.GameID, err)
		}
		metrics.RecordGameStored()
		c.logger.Info("stored game",
			zap.String("key", key.Object()), zap.Int("players", len(rows)))
	}
	return nil
}

// extractGameKeys derives the ordered storage keys from a schedule response,
// preserving day order and within-day game order.
func extractGameKeys(schedule *ScheduleResponse) ([]storage.Key, error) {
	var keys []storage.Key
	for _, date := range schedule.Dates {
		parts := strings.Split(date.Date, "-")
		if len(parts) != 3 {
			return nil, fmt.Errorf("malformed schedule date %q", date.Date)
		}
		for _, game := range date.Games {
			keys = append(keys, storage.Key{
				GameYear:  parts[0],
				GameMonth: parts[1],
				GameDay:   parts[2],
				GameID:    strconv.FormatInt(game.GamePk, 10),
			})
		}
	}
	return keys, nil
}
