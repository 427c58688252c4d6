package port

import (
	"context"
	"time"

	"github.com/google/uuid"

	"gstsuite/internal/domain"
)

// InvoiceStore is the narrow read-only view of the suite's invoice service.
// The caller's bearer token is forwarded on every request.
type InvoiceStore interface {
	GetByID(ctx context.Context, businessID, invoiceID uuid.UUID, authToken string) (*domain.Invoice, error)
	ListByDateRange(ctx context.Context, businessID uuid.UUID, from, to time.Time, authToken string) ([]domain.Invoice, error)
}

// PartyStore is the narrow read-only view of the suite's party service.
type PartyStore interface {
	GetByID(ctx context.Context, businessID, partyID uuid.UUID, authToken string) (*domain.Party, error)
	// GetByGSTINs resolves parties for multiple GSTINs concurrently with
	// all-settle semantics: a failed lookup is omitted, never aborts the batch.
	GetByGSTINs(ctx context.Context, businessID uuid.UUID, gstins []string, authToken string) (map[string]*domain.Party, error)
}

// BusinessStore is the narrow read-only view of the suite's business service.
type BusinessStore interface {
	GetProfile(ctx context.Context, businessID uuid.UUID, authToken string) (*domain.BusinessProfile, error)
}
