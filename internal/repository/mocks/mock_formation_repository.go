package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"formapi/internal/model"
	"formapi/internal/repository"
)

type MockFormationRepository struct {
	mock.Mock
}

func (m *MockFormationRepository) Create(ctx context.Context, f *model.Formation) (*model.Formation, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Formation), args.Error(1)
}

func (m *MockFormationRepository) Update(ctx context.Context, f *model.Formation) (*model.Formation, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Formation), args.Error(1)
}

func (m *MockFormationRepository) FindByID(ctx context.Context, id int64) (*model.Formation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Formation), args.Error(1)
}

func (m *MockFormationRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockFormationRepository) ExistsByTitle(ctx context.Context, titre string) (bool, error) {
	args := m.Called(ctx, titre)
	return args.Bool(0), args.Error(1)
}

func (m *MockFormationRepository) FindAll(ctx context.Context) ([]model.Formation, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Formation), args.Error(1)
}

func (m *MockFormationRepository) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.Formation], error) {
	args := m.Called(ctx, pq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PageResult[model.Formation]), args.Error(1)
}

func (m *MockFormationRepository) Search(ctx context.Context, keyword string, pq repository.PageQuery) (*repository.PageResult[model.Formation], error) {
	args := m.Called(ctx, keyword, pq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PageResult[model.Formation]), args.Error(1)
}

func (m *MockFormationRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
