package store

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/google/uuid"

	"gstsuite/internal/domain"
	"gstsuite/internal/port"
)

type invoiceStore struct {
	client
}

// NewInvoiceStore creates an HTTP-backed InvoiceStore against the invoice
// service at baseURL.
func NewInvoiceStore(baseURL string, timeout time.Duration) port.InvoiceStore {
	return &invoiceStore{client: newClient(baseURL, timeout)}
}

func (s *invoiceStore) GetByID(ctx context.Context, businessID, invoiceID uuid.UUID, authToken string) (*domain.Invoice, error) {
	path := fmt.Sprintf("/api/v1/businesses/%s/invoices/%s", businessID, invoiceID)
	var inv domain.Invoice
	if err := s.get(ctx, path, authToken, &inv); err != nil {
		return nil, fmt.Errorf("invoiceStore.GetByID: %w", err)
	}
	return &inv, nil
}

func (s *invoiceStore) ListByDateRange(ctx context.Context, businessID uuid.UUID, from, to time.Time, authToken string) ([]domain.Invoice, error) {
	q := url.Values{}
	q.Set("from", from.Format("2006-01-02"))
	q.Set("to", to.Format("2006-01-02"))
	path := fmt.Sprintf("/api/v1/businesses/%s/invoices?%s", businessID, q.Encode())
	var invoices []domain.Invoice
	if err := s.get(ctx, path, authToken, &invoices); err != nil {
		return nil, fmt.Errorf("invoiceStore.ListByDateRange: %w", err)
	}
	return invoices, nil
}
