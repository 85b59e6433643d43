package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"
)

// MockBackupSink is a mock implementation of port.BackupSink.
type MockBackupSink struct {
	mock.Mock
}

func (m *MockBackupSink) Upload(ctx context.Context, key, contentType string, body io.Reader) (string, error) {
	args := m.Called(ctx, key, contentType, body)
	return args.String(0), args.Error(1)
}
