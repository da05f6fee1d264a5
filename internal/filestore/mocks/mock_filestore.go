package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"formapi/internal/filestore"
	"formapi/internal/storage"
)

type MockFileStore struct {
	mock.Mock
}

func (m *MockFileStore) Initialize(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockFileStore) Save(ctx context.Context, up filestore.Upload, category filestore.Category) (string, error) {
	args := m.Called(ctx, up, category)
	return args.String(0), args.Error(1)
}

func (m *MockFileStore) Delete(ctx context.Context, url string) error {
	args := m.Called(ctx, url)
	return args.Error(0)
}

func (m *MockFileStore) Open(ctx context.Context, url string) (io.ReadCloser, storage.ObjectInfo, error) {
	args := m.Called(ctx, url)
	var rc io.ReadCloser
	if v := args.Get(0); v != nil {
		rc = v.(io.ReadCloser)
	}
	return rc, args.Get(1).(storage.ObjectInfo), args.Error(2)
}
