package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"gstsuite/internal/domain"
	"gstsuite/internal/port"
	"gstsuite/internal/service"
)

// MockSettingsService is a mock implementation of service.SettingsService.
type MockSettingsService struct {
	mock.Mock
}

func (m *MockSettingsService) Upsert(ctx context.Context, businessID uuid.UUID, input *service.SettingsInput) (*domain.GstSettings, error) {
	args := m.Called(ctx, businessID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GstSettings), args.Error(1)
}

func (m *MockSettingsService) Get(ctx context.Context, businessID uuid.UUID) (*domain.GstSettings, error) {
	args := m.Called(ctx, businessID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GstSettings), args.Error(1)
}

func (m *MockSettingsService) ResolveProvider(ctx context.Context, businessID uuid.UUID) (port.GSPProvider, *domain.GstSettings, error) {
	args := m.Called(ctx, businessID)
	var provider port.GSPProvider
	if args.Get(0) != nil {
		provider = args.Get(0).(port.GSPProvider)
	}
	var settings *domain.GstSettings
	if args.Get(1) != nil {
		settings = args.Get(1).(*domain.GstSettings)
	}
	return provider, settings, args.Error(2)
}
