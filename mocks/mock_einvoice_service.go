package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"gstsuite/internal/domain"
)

// MockEInvoiceService is a mock implementation of service.EInvoiceService.
type MockEInvoiceService struct {
	mock.Mock
}

func (m *MockEInvoiceService) Generate(ctx context.Context, businessID, invoiceID uuid.UUID, authToken string) (*domain.EInvoiceRequest, error) {
	args := m.Called(ctx, businessID, invoiceID, authToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EInvoiceRequest), args.Error(1)
}

func (m *MockEInvoiceService) Cancel(ctx context.Context, businessID, invoiceID uuid.UUID, reason, authToken string) (*domain.EInvoiceRequest, error) {
	args := m.Called(ctx, businessID, invoiceID, reason, authToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EInvoiceRequest), args.Error(1)
}

func (m *MockEInvoiceService) GetStatus(ctx context.Context, businessID, invoiceID uuid.UUID) (*domain.EInvoiceRequest, error) {
	args := m.Called(ctx, businessID, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EInvoiceRequest), args.Error(1)
}
