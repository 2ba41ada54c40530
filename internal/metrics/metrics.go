// Package metrics exposes Prometheus collectors for the crawler.
package metrics

import (
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	upstreamRequestsTotal *prometheus.CounterVec
	retrySleepsTotal      prometheus.Counter
	gamesStoredTotal      prometheus.Counter
	jobsTotal             *prometheus.CounterVec

	once sync.Once
)

// Init initializes the Prometheus metrics collectors.
// It is safe to call this function multiple times.
func Init() {
	once.Do(func() {
		upstreamRequestsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "nhldata_upstream_requests_total",
				Help: "Total number of upstream API responses, labeled by status code.",
			},
			[]string{"code"},
		)

		retrySleepsTotal = promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "nhldata_retry_sleeps_total",
				Help: "Total number of backoff sleeps taken between retry attempts.",
			},
		)

		gamesStoredTotal = promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "nhldata_games_stored_total",
				Help: "Total number of per-game CSVs written to storage.",
			},
		)

		jobsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "nhldata_jobs_total",
				Help: "Total number of crawl jobs, labeled by outcome.",
			},
			[]string{"outcome"},
		)
	})
}

// RecordUpstreamRequest counts one upstream response by status code.
func RecordUpstreamRequest(statusCode int) {
	if upstreamRequestsTotal == nil {
		return
	}
	upstreamRequestsTotal.WithLabelValues(strconv.Itoa(statusCode)).Inc()
}

// RecordRetrySleep counts one backoff sleep.
func RecordRetrySleep() {
	if retrySleepsTotal == nil {
		return
	}
	retrySleepsTotal.Inc()
}

// RecordGameStored counts one stored per-game CSV.
func RecordGameStored() {
	if gamesStoredTotal == nil {
		return
	}
	gamesStoredTotal.Inc()
}

// RecordJob counts one finished job run by outcome ("success" or "failure").
func RecordJob(outcome string) {
	if jobsTotal == nil {
		return
	}
	jobsTotal.WithLabelValues(outcome).Inc()
}
