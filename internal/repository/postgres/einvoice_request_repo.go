package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"gstsuite/internal/domain"
	"gstsuite/internal/port"
)

type einvoiceRequestRepo struct {
	db *sqlx.DB
}

// NewEInvoiceRequestRepo creates a new PostgreSQL-backed EInvoiceRequestRepository.
func NewEInvoiceRequestRepo(db *sqlx.DB) port.EInvoiceRequestRepository {
	return &einvoiceRequestRepo{db: db}
}

func (r *einvoiceRequestRepo) Create(ctx context.Context, req *domain.EInvoiceRequest) error {
	if req.ID == uuid.Nil {
		req.ID = uuid.New()
	}
	now := time.Now().UTC()
	req.CreatedAt = now
	req.UpdatedAt = now

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO einvoice_requests (
			id, business_id, invoice_id, provider, status, irn, ack_no, ack_date,
			signed_qr_code, signed_invoice, error_code, error_message,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		req.ID, req.BusinessID, req.InvoiceID, req.Provider, req.Status,
		req.IRN, req.AckNo, req.AckDate, req.SignedQRCode, req.SignedInvoice,
		req.ErrorCode, req.ErrorMessage, req.CreatedAt, req.UpdatedAt)
	if err != nil {
		return fmt.Errorf("einvoiceRequestRepo.Create: %w", err)
	}
	return nil
}

func (r *einvoiceRequestRepo) Update(ctx context.Context, req *domain.EInvoiceRequest) error {
	req.UpdatedAt = time.Now().UTC()
	_, err := r.db.ExecContext(ctx,
		`UPDATE einvoice_requests SET
			status = $1, irn = $2, ack_no = $3, ack_date = $4,
			signed_qr_code = $5, signed_invoice = $6,
			error_code = $7, error_message = $8, updated_at = $9
		 WHERE id = $10`,
		req.Status, req.IRN, req.AckNo, req.AckDate,
		req.SignedQRCode, req.SignedInvoice,
		req.ErrorCode, req.ErrorMessage, req.UpdatedAt, req.ID)
	if err != nil {
		return fmt.Errorf("einvoiceRequestRepo.Update: %w", err)
	}
	return nil
}

func (r *einvoiceRequestRepo) GetByID(ctx context.Context, businessID, requestID uuid.UUID) (*domain.EInvoiceRequest, error) {
	var req domain.EInvoiceRequest
	err := r.db.GetContext(ctx, &req,
		"SELECT * FROM einvoice_requests WHERE id = $1 AND business_id = $2",
		requestID, businessID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NotFoundf("e-invoice request not found")
		}
		return nil, fmt.Errorf("einvoiceRequestRepo.GetByID: %w", err)
	}
	return &req, nil
}

func (r *einvoiceRequestRepo) GetLatestByInvoice(ctx context.Context, businessID, invoiceID uuid.UUID) (*domain.EInvoiceRequest, error) {
	var req domain.EInvoiceRequest
	err := r.db.GetContext(ctx, &req,
		`SELECT * FROM einvoice_requests
		 WHERE business_id = $1 AND invoice_id = $2
		 ORDER BY created_at DESC
		 LIMIT 1`, businessID, invoiceID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NotFoundf("no e-invoice request for invoice")
		}
		return nil, fmt.Errorf("einvoiceRequestRepo.GetLatestByInvoice: %w", err)
	}
	return &req, nil
}
