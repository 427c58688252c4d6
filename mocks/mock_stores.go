package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"gstsuite/internal/domain"
)

// MockInvoiceStore is a mock implementation of port.InvoiceStore.
type MockInvoiceStore struct {
	mock.Mock
}

func (m *MockInvoiceStore) GetByID(ctx context.Context, businessID, invoiceID uuid.UUID, authToken string) (*domain.Invoice, error) {
	args := m.Called(ctx, businessID, invoiceID, authToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceStore) ListByDateRange(ctx context.Context, businessID uuid.UUID, from, to time.Time, authToken string) ([]domain.Invoice, error) {
	args := m.Called(ctx, businessID, from, to, authToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Invoice), args.Error(1)
}

// MockPartyStore is a mock implementation of port.PartyStore.
type MockPartyStore struct {
	mock.Mock
}

func (m *MockPartyStore) GetByID(ctx context.Context, businessID, partyID uuid.UUID, authToken string) (*domain.Party, error) {
	args := m.Called(ctx, businessID, partyID, authToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Party), args.Error(1)
}

func (m *MockPartyStore) GetByGSTINs(ctx context.Context, businessID uuid.UUID, gstins []string, authToken string) (map[string]*domain.Party, error) {
	args := m.Called(ctx, businessID, gstins, authToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]*domain.Party), args.Error(1)
}

// MockBusinessStore is a mock implementation of port.BusinessStore.
type MockBusinessStore struct {
	mock.Mock
}

func (m *MockBusinessStore) GetProfile(ctx context.Context, businessID uuid.UUID, authToken string) (*domain.BusinessProfile, error) {
	args := m.Called(ctx, businessID, authToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BusinessProfile), args.Error(1)
}
