package storage_test

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	gcs "cloud.google.com/go/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"

	"github.com/JakeFAU/nhl-stats-crawler/internal/storage"
)

// newTestGCSPutter creates a GCSPutter pointed at a test server.
func newTestGCSPutter(t *testing.T, handler http.Handler) (*storage.GCSPutter, func()) {
	t.Helper()

	server := httptest.NewServer(handler)

	client, err := gcs.NewClient(context.Background(),
		option.WithEndpoint(server.URL), option.WithoutAuthentication())
	require.NoError(t, err)

	return &storage.GCSPutter{Client: client}, server.Close
}

func TestGCSPutterPut(t *testing.T) {
	bucketName := "test-bucket"
	objectName := "2020/09/13/2019030314.csv"
	objectData := []byte("header\nrow")

	// Simulates the GCS JSON API for multipart uploads.
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.Path, fmt.Sprintf("/upload/storage/v1/b/%s/o", bucketName))
		assert.Equal(t, objectName, r.URL.Query().Get("name"))
		assert.Equal(t, "multipart", r.URL.Query().Get("uploadType"))

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		assert.Contains(t, string(body), string(objectData))

		fmt.Fprintln(w, `{ "name": "`+objectName+`" }`)
	})

	putter, cleanup := newTestGCSPutter(t, handler)
	defer cleanup()

	err := putter.Put(context.Background(), bucketName, objectName, objectData)
	require.NoError(t, err)
}

func TestGCSPutterPutServerError(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	putter, cleanup := newTestGCSPutter(t, handler)
	defer cleanup()

	err := putter.Put(context.Background(), "test-bucket", "object", []byte("data"))
	require.Error(t, err)
}
