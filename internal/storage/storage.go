// Package storage is the durability boundary of the crawler: a two-bucket
// gateway over a pluggable blob putter. This abstraction keeps the pipeline
// independent of a specific blob service (Google Cloud Storage, an emulator,
// or in-memory stores for tests).
package storage

import (
	"context"
	"strings"
)

// BlobPutter uploads one object to a bucket. Implementations must be safe
// for sequential reuse across many puts within one job run.
type BlobPutter interface {
	Put(ctx context.Context, bucket, object string, data []byte) error
}

// Key identifies one game's record set in the data bucket.
type Key struct {
	GameYear  string
	GameMonth string
	GameDay   string
	GameID    string
}

// Object renders the blob path for the given set of properties.
func (k Key) Object() string {
	return strings.Join([]string{k.GameYear, k.GameMonth, k.GameDay, k.GameID + ".csv"}, "/")
}

// Storage routes per-game data and per-run audit records to their buckets.
type Storage struct {
	putter     BlobPutter
	dataBucket string
	jobsBucket string
}

// New constructs a Storage over the given putter and bucket names.
func New(putter BlobPutter, dataBucket, jobsBucket string) *Storage {
	return &Storage{
		putter:     putter,
		dataBucket: dataBucket,
		jobsBucket: jobsBucket,
	}
}

// StoreGame writes one game's CSV into the data bucket.
func (s *Storage) StoreGame(ctx context.Context, key Key, data []byte) error {
	return s.putter.Put(ctx, s.dataBucket, key.Object(), data)
}

// StoreJob writes one run's audit CSV into the jobs bucket.
func (s *Storage) StoreJob(ctx context.Context, object string, data []byte) error {
	return s.putter.Put(ctx, s.jobsBucket, object, data)
}

// NoOpPutter discards everything. Useful for dry runs where games are
// fetched but nothing is persisted.
type NoOpPutter struct{}

// Put for NoOpPutter does nothing and always returns nil.
func (NoOpPutter) Put(_ context.Context, _, _ string, _ []byte) error {
	return nil
}
