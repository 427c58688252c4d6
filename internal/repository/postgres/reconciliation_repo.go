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

type reconciliationRepo struct {
	db *sqlx.DB
}

// NewReconciliationRepo creates a new PostgreSQL-backed ReconciliationRepository.
func NewReconciliationRepo(db *sqlx.DB) port.ReconciliationRepository {
	return &reconciliationRepo{db: db}
}

// ReplaceForImport atomically swaps all reconciliation records of an import.
// Re-running the matcher after a re-import must not leave rows from the
// previous statement behind.
func (r *reconciliationRepo) ReplaceForImport(ctx context.Context, importID uuid.UUID, records []domain.ReconciliationRecord) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("reconciliationRepo.ReplaceForImport begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		"DELETE FROM gstr2a_reconciliation_records WHERE import_id = $1", importID); err != nil {
		return fmt.Errorf("reconciliationRepo.ReplaceForImport delete: %w", err)
	}

	now := time.Now().UTC()
	query := `INSERT INTO gstr2a_reconciliation_records (
		id, import_id, business_id, period, supplier_gstin, supplier_name,
		invoice_number, invoice_date, taxable_value, igst, cgst, sgst, cess,
		total, invoice_id, match_status, match_detail, is_manual_match,
		created_at, updated_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)`

	for i := range records {
		rec := &records[i]
		if rec.ID == uuid.Nil {
			rec.ID = uuid.New()
		}
		rec.ImportID = importID
		rec.CreatedAt = now
		rec.UpdatedAt = now
		if _, err := tx.ExecContext(ctx, query,
			rec.ID, rec.ImportID, rec.BusinessID, rec.Period, rec.SupplierGSTIN,
			rec.SupplierName, rec.InvoiceNumber, rec.InvoiceDate, rec.TaxableValue,
			rec.IGST, rec.CGST, rec.SGST, rec.Cess, rec.Total, rec.InvoiceID,
			rec.MatchStatus, rec.MatchDetail, rec.IsManualMatch,
			rec.CreatedAt, rec.UpdatedAt); err != nil {
			return fmt.Errorf("reconciliationRepo.ReplaceForImport insert: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("reconciliationRepo.ReplaceForImport commit: %w", err)
	}
	return nil
}

func (r *reconciliationRepo) ListByImport(ctx context.Context, importID uuid.UUID) ([]domain.ReconciliationRecord, error) {
	var records []domain.ReconciliationRecord
	err := r.db.SelectContext(ctx, &records,
		`SELECT * FROM gstr2a_reconciliation_records
		 WHERE import_id = $1
		 ORDER BY supplier_gstin, invoice_number`, importID)
	if err != nil {
		return nil, fmt.Errorf("reconciliationRepo.ListByImport: %w", err)
	}
	return records, nil
}

func (r *reconciliationRepo) GetByID(ctx context.Context, businessID, recordID uuid.UUID) (*domain.ReconciliationRecord, error) {
	var rec domain.ReconciliationRecord
	err := r.db.GetContext(ctx, &rec,
		"SELECT * FROM gstr2a_reconciliation_records WHERE id = $1 AND business_id = $2",
		recordID, businessID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NotFoundf("reconciliation record not found")
		}
		return nil, fmt.Errorf("reconciliationRepo.GetByID: %w", err)
	}
	return &rec, nil
}

func (r *reconciliationRepo) Update(ctx context.Context, record *domain.ReconciliationRecord) error {
	record.UpdatedAt = time.Now().UTC()
	_, err := r.db.ExecContext(ctx,
		`UPDATE gstr2a_reconciliation_records SET
			invoice_id = $1, match_status = $2, match_detail = $3,
			is_manual_match = $4, updated_at = $5
		 WHERE id = $6`,
		record.InvoiceID, record.MatchStatus, record.MatchDetail,
		record.IsManualMatch, record.UpdatedAt, record.ID)
	if err != nil {
		return fmt.Errorf("reconciliationRepo.Update: %w", err)
	}
	return nil
}
