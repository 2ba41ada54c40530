package storage

import (
	"context"
	"fmt"

	gcs "cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

// GCSPutter implements BlobPutter for Google Cloud Storage.
type GCSPutter struct {
	Client *gcs.Client
}

// NewGCSPutter initializes a new GCS client. Authentication is handled via
// Google's Application Default Credentials. A non-empty endpoint overrides
// the service URL, which is how emulators and tests are pointed at.
func NewGCSPutter(ctx context.Context, endpoint string) (*GCSPutter, error) {
	var opts []option.ClientOption
	if endpoint != "" {
		opts = append(opts, option.WithEndpoint(endpoint), option.WithoutAuthentication())
	}
	client, err := gcs.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCS client: %w", err)
	}
	return &GCSPutter{Client: client}, nil
}

// Put uploads the given data to an object in the named bucket.
func (g *GCSPutter) Put(ctx context.Context, bucket, object string, data []byte) error {
	wc := g.Client.Bucket(bucket).Object(object).NewWriter(ctx)
	wc.ContentType = "text/csv"

	if _, err := wc.Write(data); err != nil {
		// Still close the writer to clean up; the write failure is the
		// primary error.
		_ = wc.Close()
		return fmt.Errorf("failed to write data to object %s: %w", object, err)
	}

	// Close must be called to finalize the upload. It flushes any buffered data.
	if err := wc.Close(); err != nil {
		return fmt.Errorf("failed to close writer for object %s: %w", object, err)
	}
	return nil
}

// Close releases the underlying client connection.
func (g *GCSPutter) Close() error {
	if err := g.Client.Close(); err != nil {
		return fmt.Errorf("close GCS client: %w", err)
	}
	return nil
}
