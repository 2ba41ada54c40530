// Package nhl maps statsapi schema versions to their adapter
// implementations. The registry is an explicit, immutable mapping built once
// at process start and handed to whatever constructs the crawler.
package nhl

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/JakeFAU/nhl-stats-crawler/internal/config"
	v1 "github.com/JakeFAU/nhl-stats-crawler/internal/nhl/v1"
	"github.com/JakeFAU/nhl-stats-crawler/internal/retryhttp"
	"github.com/JakeFAU/nhl-stats-crawler/internal/storage"
)

// Crawler is the version-independent crawl operation.
type Crawler interface {
	Crawl(ctx context.Context, start, end time.Time) error
}

// Adapter constructs one schema version's crawler, wired to the configured
// endpoint, retry policy, and storage gateway.
type Adapter struct {
	NewCrawler func(cfg config.Config, store *storage.Storage, logger *zap.Logger) Crawler
}

// Registry holds the supported schema versions.
type Registry struct {
	adapters map[string]Adapter
}

// NewRegistry builds the registry of supported versions.
func NewRegistry() *Registry {
	return &Registry{
		adapters: map[string]Adapter{
			"v1": {
				NewCrawler: func(cfg config.Config, store *storage.Storage, logger *zap.Logger) Crawler {
					executor := retryhttp.NewExecutor(retryhttp.Options{
						MaxAttempts:     cfg.Retry.MaxAttempts,
						BackoffFactor:   cfg.Retry.BackoffFactor,
						MaxJitterPct:    cfg.Retry.MaxJitterPct,
						MaxSleepSeconds: cfg.Retry.MaxSleepSeconds,
					}, logger)
					api := v1.NewClient(cfg.API.BaseURL, executor, logger)
					return v1.NewCrawler(api, store, logger)
				},
			},
		},
	}
}

// Versions lists the supported schema versions in sorted order.
func (r *Registry) Versions() []string {
	versions := make([]string, 0, len(r.adapters))
	for version := range r.adapters {
		versions = append(versions, version)
	}
	sort.Strings(versions)
	return versions
}

// AdapterFor returns the adapter for a version, or an error naming the
// supported ones.
func (r *Registry) AdapterFor(version string) (Adapter, error) {
	adapter, ok := r.adapters[strings.ToLower(version)]
	if !ok {
		return Adapter{}, fmt.Errorf("version %s is unsupported, please choose from [%s]",
			version, strings.Join(r.Versions(), ", "))
	}
	return adapter, nil
}
