package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"gstsuite/internal/domain"
)

// MockEWayBillRequestRepo is a mock implementation of port.EWayBillRequestRepository.
type MockEWayBillRequestRepo struct {
	mock.Mock
}

func (m *MockEWayBillRequestRepo) Create(ctx context.Context, req *domain.EWayBillRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *MockEWayBillRequestRepo) Update(ctx context.Context, req *domain.EWayBillRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *MockEWayBillRequestRepo) GetByID(ctx context.Context, businessID, requestID uuid.UUID) (*domain.EWayBillRequest, error) {
	args := m.Called(ctx, businessID, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EWayBillRequest), args.Error(1)
}

func (m *MockEWayBillRequestRepo) GetLatestByInvoice(ctx context.Context, businessID, invoiceID uuid.UUID) (*domain.EWayBillRequest, error) {
	args := m.Called(ctx, businessID, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EWayBillRequest), args.Error(1)
}

func (m *MockEWayBillRequestRepo) GetByInvoiceAndStatus(ctx context.Context, businessID, invoiceID uuid.UUID, status domain.EWayBillStatus) (*domain.EWayBillRequest, error) {
	args := m.Called(ctx, businessID, invoiceID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EWayBillRequest), args.Error(1)
}
