package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"gstsuite/internal/domain"
)

// MockReportCacheRepo is a mock implementation of port.ReportCacheRepository.
type MockReportCacheRepo struct {
	mock.Mock
}

func (m *MockReportCacheRepo) Upsert(ctx context.Context, report *domain.GeneratedReport) error {
	args := m.Called(ctx, report)
	return args.Error(0)
}

func (m *MockReportCacheRepo) Get(ctx context.Context, businessID uuid.UUID, reportType domain.ReportType, periodToken string) (*domain.GeneratedReport, error) {
	args := m.Called(ctx, businessID, reportType, periodToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GeneratedReport), args.Error(1)
}
