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

type ewaybillRequestRepo struct {
	db *sqlx.DB
}

// NewEWayBillRequestRepo creates a new PostgreSQL-backed EWayBillRequestRepository.
func NewEWayBillRequestRepo(db *sqlx.DB) port.EWayBillRequestRepository {
	return &ewaybillRequestRepo{db: db}
}

func (r *ewaybillRequestRepo) Create(ctx context.Context, req *domain.EWayBillRequest) error {
	if req.ID == uuid.Nil {
		req.ID = uuid.New()
	}
	now := time.Now().UTC()
	req.CreatedAt = now
	req.UpdatedAt = now

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO ewaybill_requests (
			id, business_id, invoice_id, provider, status, ewaybill_no, valid_until,
			vehicle_no, transporter_id, trans_mode, error_code, error_message,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		req.ID, req.BusinessID, req.InvoiceID, req.Provider, req.Status,
		req.EWayBillNo, req.ValidUntil, req.VehicleNo, req.TransporterID,
		req.TransMode, req.ErrorCode, req.ErrorMessage, req.CreatedAt, req.UpdatedAt)
	if err != nil {
		return fmt.Errorf("ewaybillRequestRepo.Create: %w", err)
	}
	return nil
}

func (r *ewaybillRequestRepo) Update(ctx context.Context, req *domain.EWayBillRequest) error {
	req.UpdatedAt = time.Now().UTC()
	_, err := r.db.ExecContext(ctx,
		`UPDATE ewaybill_requests SET
			status = $1, ewaybill_no = $2, valid_until = $3, vehicle_no = $4,
			transporter_id = $5, trans_mode = $6,
			error_code = $7, error_message = $8, updated_at = $9
		 WHERE id = $10`,
		req.Status, req.EWayBillNo, req.ValidUntil, req.VehicleNo,
		req.TransporterID, req.TransMode,
		req.ErrorCode, req.ErrorMessage, req.UpdatedAt, req.ID)
	if err != nil {
		return fmt.Errorf("ewaybillRequestRepo.Update: %w", err)
	}
	return nil
}

func (r *ewaybillRequestRepo) GetByID(ctx context.Context, businessID, requestID uuid.UUID) (*domain.EWayBillRequest, error) {
	var req domain.EWayBillRequest
	err := r.db.GetContext(ctx, &req,
		"SELECT * FROM ewaybill_requests WHERE id = $1 AND business_id = $2",
		requestID, businessID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NotFoundf("e-way bill request not found")
		}
		return nil, fmt.Errorf("ewaybillRequestRepo.GetByID: %w", err)
	}
	return &req, nil
}

func (r *ewaybillRequestRepo) GetLatestByInvoice(ctx context.Context, businessID, invoiceID uuid.UUID) (*domain.EWayBillRequest, error) {
	var req domain.EWayBillRequest
	err := r.db.GetContext(ctx, &req,
		`SELECT * FROM ewaybill_requests
		 WHERE business_id = $1 AND invoice_id = $2
		 ORDER BY created_at DESC
		 LIMIT 1`, businessID, invoiceID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NotFoundf("no e-way bill request for invoice")
		}
		return nil, fmt.Errorf("ewaybillRequestRepo.GetLatestByInvoice: %w", err)
	}
	return &req, nil
}

func (r *ewaybillRequestRepo) GetByInvoiceAndStatus(ctx context.Context, businessID, invoiceID uuid.UUID, status domain.EWayBillStatus) (*domain.EWayBillRequest, error) {
	var req domain.EWayBillRequest
	err := r.db.GetContext(ctx, &req,
		`SELECT * FROM ewaybill_requests
		 WHERE business_id = $1 AND invoice_id = $2 AND status = $3
		 ORDER BY created_at DESC
		 LIMIT 1`, businessID, invoiceID, status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NotFoundf("no e-way bill request for invoice with status %s", status)
		}
		return nil, fmt.Errorf("ewaybillRequestRepo.GetByInvoiceAndStatus: %w", err)
	}
	return &req, nil
}
