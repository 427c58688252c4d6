package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"gstsuite/internal/port"
)

// MockGSPProvider is a mock implementation of port.GSPProvider.
type MockGSPProvider struct {
	mock.Mock
}

func (m *MockGSPProvider) Name() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockGSPProvider) Authenticate(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockGSPProvider) GenerateIRN(ctx context.Context, payload *port.EInvoicePayload) (*port.IRNResult, error) {
	args := m.Called(ctx, payload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*port.IRNResult), args.Error(1)
}

func (m *MockGSPProvider) CancelIRN(ctx context.Context, irn, reason string) (*port.IRNResult, error) {
	args := m.Called(ctx, irn, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*port.IRNResult), args.Error(1)
}

func (m *MockGSPProvider) GetIRNStatus(ctx context.Context, irn string) (*port.IRNResult, error) {
	args := m.Called(ctx, irn)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*port.IRNResult), args.Error(1)
}

func (m *MockGSPProvider) GenerateEWayBill(ctx context.Context, payload *port.EWayBillPayload) (*port.EWayBillResult, error) {
	args := m.Called(ctx, payload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*port.EWayBillResult), args.Error(1)
}

func (m *MockGSPProvider) CancelEWayBill(ctx context.Context, ewbNo, reason string) (*port.EWayBillResult, error) {
	args := m.Called(ctx, ewbNo, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*port.EWayBillResult), args.Error(1)
}

func (m *MockGSPProvider) UpdateEWayBill(ctx context.Context, input *port.EWayBillUpdateInput) (*port.EWayBillResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*port.EWayBillResult), args.Error(1)
}

func (m *MockGSPProvider) GetEWayBillStatus(ctx context.Context, ewbNo string) (*port.EWayBillResult, error) {
	args := m.Called(ctx, ewbNo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*port.EWayBillResult), args.Error(1)
}
