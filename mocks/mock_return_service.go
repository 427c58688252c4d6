package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"gstsuite/internal/domain"
)

// MockReturnService is a mock implementation of service.ReturnService.
type MockReturnService struct {
	mock.Mock
}

func (m *MockReturnService) GenerateGSTR1(ctx context.Context, businessID uuid.UUID, periodToken, authToken string) (*domain.Gstr1Report, error) {
	args := m.Called(ctx, businessID, periodToken, authToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Gstr1Report), args.Error(1)
}

func (m *MockReturnService) GenerateGSTR3B(ctx context.Context, businessID uuid.UUID, periodToken, authToken string) (*domain.Gstr3bReport, error) {
	args := m.Called(ctx, businessID, periodToken, authToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Gstr3bReport), args.Error(1)
}

func (m *MockReturnService) GenerateGSTR4(ctx context.Context, businessID uuid.UUID, periodToken, authToken string) (*domain.Gstr4Report, error) {
	args := m.Called(ctx, businessID, periodToken, authToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Gstr4Report), args.Error(1)
}
