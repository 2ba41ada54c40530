package storage

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockPutter is a mock implementation of the BlobPutter interface for testing.
type MockPutter struct {
	mock.Mock
}

// Put is the mock implementation of the Put method.
func (m *MockPutter) Put(ctx context.Context, bucket, object string, data []byte) error {
	args := m.Called(ctx, bucket, object, data)
	return args.Error(0) //nolint:wrapcheck
}
