package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"gstsuite/internal/domain"
)

// MockReconciliationRepo is a mock implementation of port.ReconciliationRepository.
type MockReconciliationRepo struct {
	mock.Mock
}

func (m *MockReconciliationRepo) ReplaceForImport(ctx context.Context, importID uuid.UUID, records []domain.ReconciliationRecord) error {
	args := m.Called(ctx, importID, records)
	return args.Error(0)
}

func (m *MockReconciliationRepo) ListByImport(ctx context.Context, importID uuid.UUID) ([]domain.ReconciliationRecord, error) {
	args := m.Called(ctx, importID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ReconciliationRecord), args.Error(1)
}

func (m *MockReconciliationRepo) GetByID(ctx context.Context, businessID, recordID uuid.UUID) (*domain.ReconciliationRecord, error) {
	args := m.Called(ctx, businessID, recordID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReconciliationRecord), args.Error(1)
}

func (m *MockReconciliationRepo) Update(ctx context.Context, record *domain.ReconciliationRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}
