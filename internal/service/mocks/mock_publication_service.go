package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"formapi/internal/model"
	"formapi/internal/pagination"
	"formapi/internal/service"
)

type MockPublicationService struct {
	mock.Mock
}

var _ service.PublicationService = (*MockPublicationService)(nil)

func (m *MockPublicationService) publication(args mock.Arguments) (*model.Publication, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Publication), args.Error(1)
}

func (m *MockPublicationService) page(args mock.Arguments) (*pagination.Response[model.Publication], error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pagination.Response[model.Publication]), args.Error(1)
}

func (m *MockPublicationService) Create(ctx context.Context, in service.PublicationFields) (*model.Publication, error) {
	return m.publication(m.Called(ctx, in))
}

func (m *MockPublicationService) Update(ctx context.Context, id int64, in service.PublicationFields) (*model.Publication, error) {
	return m.publication(m.Called(ctx, id, in))
}

func (m *MockPublicationService) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockPublicationService) Get(ctx context.Context, id int64) (*model.Publication, error) {
	return m.publication(m.Called(ctx, id))
}

func (m *MockPublicationService) List(ctx context.Context, req pagination.Request) (*pagination.Response[model.Publication], error) {
	return m.page(m.Called(ctx, req))
}

func (m *MockPublicationService) ListAll(ctx context.Context) ([]model.Publication, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Publication), args.Error(1)
}

func (m *MockPublicationService) Search(ctx context.Context, keyword string, req pagination.Request) (*pagination.Response[model.Publication], error) {
	return m.page(m.Called(ctx, keyword, req))
}

func (m *MockPublicationService) ListByMediaType(ctx context.Context, mediaType model.MediaType, req pagination.Request) (*pagination.Response[model.Publication], error) {
	return m.page(m.Called(ctx, mediaType, req))
}

func (m *MockPublicationService) ListByFormation(ctx context.Context, formationID int64, req pagination.Request) (*pagination.Response[model.Publication], error) {
	return m.page(m.Called(ctx, formationID, req))
}

func (m *MockPublicationService) ListWithoutMedia(ctx context.Context, req pagination.Request) (*pagination.Response[model.Publication], error) {
	return m.page(m.Called(ctx, req))
}

func (m *MockPublicationService) ListWithMedia(ctx context.Context, req pagination.Request) (*pagination.Response[model.Publication], error) {
	return m.page(m.Called(ctx, req))
}

func (m *MockPublicationService) ListRecent(ctx context.Context, req pagination.Request) (*pagination.Response[model.Publication], error) {
	return m.page(m.Called(ctx, req))
}

func (m *MockPublicationService) CountByFormation(ctx context.Context, formationID int64) (int64, error) {
	args := m.Called(ctx, formationID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPublicationService) CreateWithMedia(ctx context.Context, in service.PublicationInput) (*model.Publication, error) {
	return m.publication(m.Called(ctx, in))
}

func (m *MockPublicationService) UpdateWithMedia(ctx context.Context, id int64, in service.PublicationInput) (*model.Publication, error) {
	return m.publication(m.Called(ctx, id, in))
}

func (m *MockPublicationService) DeleteWithMedia(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}
