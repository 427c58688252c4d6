package port

import (
	"context"

	"github.com/google/uuid"

	"gstsuite/internal/domain"
)

// ReportCacheRepository persists generated returns keyed by
// (business, report type, period). At most one row exists per key.
type ReportCacheRepository interface {
	Upsert(ctx context.Context, report *domain.GeneratedReport) error
	Get(ctx context.Context, businessID uuid.UUID, reportType domain.ReportType, periodToken string) (*domain.GeneratedReport, error)
}

// GstSettingsRepository persists the engine-owned per-business GSP settings.
// Settings are created on first configuration and updated via upsert, never deleted.
type GstSettingsRepository interface {
	Upsert(ctx context.Context, settings *domain.GstSettings) error
	GetByBusiness(ctx context.Context, businessID uuid.UUID) (*domain.GstSettings, error)
}

// Gstr2aImportRepository persists one logical statement import per
// (business, period, import type).
type Gstr2aImportRepository interface {
	Upsert(ctx context.Context, imp *domain.Gstr2aImport) error
	GetByKey(ctx context.Context, businessID uuid.UUID, periodToken string, importType domain.ImportType) (*domain.Gstr2aImport, error)
	GetLatest(ctx context.Context, businessID uuid.UUID, periodToken string) (*domain.Gstr2aImport, error)
	UpdateCounts(ctx context.Context, imp *domain.Gstr2aImport) error
}

// ReconciliationRepository persists the per-statement-line reconciliation records.
type ReconciliationRepository interface {
	ReplaceForImport(ctx context.Context, importID uuid.UUID, records []domain.ReconciliationRecord) error
	ListByImport(ctx context.Context, importID uuid.UUID) ([]domain.ReconciliationRecord, error)
	GetByID(ctx context.Context, businessID, recordID uuid.UUID) (*domain.ReconciliationRecord, error)
	Update(ctx context.Context, record *domain.ReconciliationRecord) error
}

// EInvoiceRequestRepository persists e-invoice registration attempts.
// Rows are updated in place and never deleted.
type EInvoiceRequestRepository interface {
	Create(ctx context.Context, req *domain.EInvoiceRequest) error
	Update(ctx context.Context, req *domain.EInvoiceRequest) error
	GetByID(ctx context.Context, businessID, requestID uuid.UUID) (*domain.EInvoiceRequest, error)
	GetLatestByInvoice(ctx context.Context, businessID, invoiceID uuid.UUID) (*domain.EInvoiceRequest, error)
}

// EWayBillRequestRepository persists e-way-bill registration attempts.
// Rows are updated in place and never deleted.
type EWayBillRequestRepository interface {
	Create(ctx context.Context, req *domain.EWayBillRequest) error
	Update(ctx context.Context, req *domain.EWayBillRequest) error
	GetByID(ctx context.Context, businessID, requestID uuid.UUID) (*domain.EWayBillRequest, error)
	GetLatestByInvoice(ctx context.Context, businessID, invoiceID uuid.UUID) (*domain.EWayBillRequest, error)
	GetByInvoiceAndStatus(ctx context.Context, businessID, invoiceID uuid.UUID, status domain.EWayBillStatus) (*domain.EWayBillRequest, error)
}
