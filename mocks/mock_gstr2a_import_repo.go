package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"gstsuite/internal/domain"
)

// MockGstr2aImportRepo is a mock implementation of port.Gstr2aImportRepository.
type MockGstr2aImportRepo struct {
	mock.Mock
}

func (m *MockGstr2aImportRepo) Upsert(ctx context.Context, imp *domain.Gstr2aImport) error {
	args := m.Called(ctx, imp)
	return args.Error(0)
}

func (m *MockGstr2aImportRepo) GetByKey(ctx context.Context, businessID uuid.UUID, periodToken string, importType domain.ImportType) (*domain.Gstr2aImport, error) {
	args := m.Called(ctx, businessID, periodToken, importType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Gstr2aImport), args.Error(1)
}

func (m *MockGstr2aImportRepo) GetLatest(ctx context.Context, businessID uuid.UUID, periodToken string) (*domain.Gstr2aImport, error) {
	args := m.Called(ctx, businessID, periodToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Gstr2aImport), args.Error(1)
}

func (m *MockGstr2aImportRepo) UpdateCounts(ctx context.Context, imp *domain.Gstr2aImport) error {
	args := m.Called(ctx, imp)
	return args.Error(0)
}
