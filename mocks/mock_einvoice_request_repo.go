package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"gstsuite/internal/domain"
)

// MockEInvoiceRequestRepo is a mock implementation of port.EInvoiceRequestRepository.
type MockEInvoiceRequestRepo struct {
	mock.Mock
}

func (m *MockEInvoiceRequestRepo) Create(ctx context.Context, req *domain.EInvoiceRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *MockEInvoiceRequestRepo) Update(ctx context.Context, req *domain.EInvoiceRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *MockEInvoiceRequestRepo) GetByID(ctx context.Context, businessID, requestID uuid.UUID) (*domain.EInvoiceRequest, error) {
	args := m.Called(ctx, businessID, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EInvoiceRequest), args.Error(1)
}

func (m *MockEInvoiceRequestRepo) GetLatestByInvoice(ctx context.Context, businessID, invoiceID uuid.UUID) (*domain.EInvoiceRequest, error) {
	args := m.Called(ctx, businessID, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EInvoiceRequest), args.Error(1)
}
