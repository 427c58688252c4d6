package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"gstsuite/internal/domain"
)

// MockGstSettingsRepo is a mock implementation of port.GstSettingsRepository.
type MockGstSettingsRepo struct {
	mock.Mock
}

func (m *MockGstSettingsRepo) Upsert(ctx context.Context, settings *domain.GstSettings) error {
	args := m.Called(ctx, settings)
	return args.Error(0)
}

func (m *MockGstSettingsRepo) GetByBusiness(ctx context.Context, businessID uuid.UUID) (*domain.GstSettings, error) {
	args := m.Called(ctx, businessID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GstSettings), args.Error(1)
}
