package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"gstsuite/internal/domain"
	"gstsuite/internal/formatter"
	"gstsuite/internal/port"
)

// MockEWayBillService is a mock implementation of service.EWayBillService.
type MockEWayBillService struct {
	mock.Mock
}

func (m *MockEWayBillService) Generate(ctx context.Context, businessID, invoiceID uuid.UUID, transport *formatter.TransportInput, authToken string) (*domain.EWayBillRequest, error) {
	args := m.Called(ctx, businessID, invoiceID, transport, authToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EWayBillRequest), args.Error(1)
}

func (m *MockEWayBillService) Update(ctx context.Context, businessID, invoiceID uuid.UUID, input *port.EWayBillUpdateInput) (*domain.EWayBillRequest, error) {
	args := m.Called(ctx, businessID, invoiceID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EWayBillRequest), args.Error(1)
}

func (m *MockEWayBillService) Cancel(ctx context.Context, businessID, invoiceID uuid.UUID, reason string) (*domain.EWayBillRequest, error) {
	args := m.Called(ctx, businessID, invoiceID, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EWayBillRequest), args.Error(1)
}

func (m *MockEWayBillService) GetStatus(ctx context.Context, businessID, invoiceID uuid.UUID) (*domain.EWayBillRequest, error) {
	args := m.Called(ctx, businessID, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EWayBillRequest), args.Error(1)
}
