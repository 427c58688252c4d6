package mocks

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"gstsuite/internal/domain"
	"gstsuite/internal/service"
)

// MockReconciliationService is a mock implementation of service.ReconciliationService.
type MockReconciliationService struct {
	mock.Mock
}

func (m *MockReconciliationService) ImportStatement(ctx context.Context, businessID uuid.UUID, periodToken string, importType domain.ImportType, raw json.RawMessage, userID uuid.UUID, authToken string) (*domain.Gstr2aImport, error) {
	args := m.Called(ctx, businessID, periodToken, importType, raw, userID, authToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Gstr2aImport), args.Error(1)
}

func (m *MockReconciliationService) GetReconciliation(ctx context.Context, businessID uuid.UUID, periodToken, authToken string) (*service.ReconciliationResult, error) {
	args := m.Called(ctx, businessID, periodToken, authToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ReconciliationResult), args.Error(1)
}

func (m *MockReconciliationService) ManualMatch(ctx context.Context, businessID, recordID, invoiceID uuid.UUID, authToken string) (*domain.ReconciliationRecord, error) {
	args := m.Called(ctx, businessID, recordID, invoiceID, authToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReconciliationRecord), args.Error(1)
}
