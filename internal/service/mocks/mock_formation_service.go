package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"formapi/internal/model"
	"formapi/internal/pagination"
	"formapi/internal/service"
)

type MockFormationService struct {
	mock.Mock
}

var _ service.FormationService = (*MockFormationService)(nil)

func (m *MockFormationService) Create(ctx context.Context, in service.FormationFields) (*model.Formation, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Formation), args.Error(1)
}

func (m *MockFormationService) Update(ctx context.Context, id int64, in service.FormationFields) (*model.Formation, error) {
	args := m.Called(ctx, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Formation), args.Error(1)
}

func (m *MockFormationService) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockFormationService) Get(ctx context.Context, id int64) (*model.Formation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Formation), args.Error(1)
}

func (m *MockFormationService) List(ctx context.Context, req pagination.Request) (*pagination.Response[model.Formation], error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pagination.Response[model.Formation]), args.Error(1)
}

func (m *MockFormationService) ListAll(ctx context.Context) ([]model.Formation, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Formation), args.Error(1)
}

func (m *MockFormationService) Search(ctx context.Context, keyword string, req pagination.Request) (*pagination.Response[model.Formation], error) {
	args := m.Called(ctx, keyword, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pagination.Response[model.Formation]), args.Error(1)
}

func (m *MockFormationService) CreateWithFiles(ctx context.Context, in service.FormationInput) (*model.Formation, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Formation), args.Error(1)
}

func (m *MockFormationService) UpdateWithFiles(ctx context.Context, id int64, in service.FormationInput) (*model.Formation, error) {
	args := m.Called(ctx, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Formation), args.Error(1)
}

func (m *MockFormationService) DeleteWithFiles(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
