package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"formapi/internal/model"
	"formapi/internal/repository"
)

type MockPublicationRepository struct {
	mock.Mock
}

func (m *MockPublicationRepository) Create(ctx context.Context, p *model.Publication) (*model.Publication, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Publication), args.Error(1)
}

func (m *MockPublicationRepository) Update(ctx context.Context, p *model.Publication) (*model.Publication, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Publication), args.Error(1)
}

func (m *MockPublicationRepository) FindByID(ctx context.Context, id int64) (*model.Publication, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Publication), args.Error(1)
}

func (m *MockPublicationRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockPublicationRepository) FindAll(ctx context.Context) ([]model.Publication, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Publication), args.Error(1)
}

func (m *MockPublicationRepository) List(ctx context.Context, filter repository.PublicationFilter, pq repository.PageQuery) (*repository.PageResult[model.Publication], error) {
	args := m.Called(ctx, filter, pq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PageResult[model.Publication]), args.Error(1)
}

func (m *MockPublicationRepository) CountByFormation(ctx context.Context, formationID int64) (int64, error) {
	args := m.Called(ctx, formationID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPublicationRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
