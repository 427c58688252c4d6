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

type gstr2aImportRepo struct {
	db *sqlx.DB
}

// NewGstr2aImportRepo creates a new PostgreSQL-backed Gstr2aImportRepository.
func NewGstr2aImportRepo(db *sqlx.DB) port.Gstr2aImportRepository {
	return &gstr2aImportRepo{db: db}
}

func (r *gstr2aImportRepo) Upsert(ctx context.Context, imp *domain.Gstr2aImport) error {
	now := time.Now().UTC()
	if imp.ID == uuid.Nil {
		imp.ID = uuid.New()
		imp.CreatedAt = now
	}
	imp.UpdatedAt = now

	// One logical import per (business, period, type); re-import replaces the
	// payload and counts but keeps the original row id so reconciliation
	// records stay attached to a stable import.
	query := `INSERT INTO gstr2a_imports (
		id, business_id, period, import_type, raw_payload, archive_key,
		total_count, matched_count, missing_count, mismatched_count,
		imported_by, created_at, updated_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	ON CONFLICT (business_id, period, import_type) DO UPDATE SET
		raw_payload = EXCLUDED.raw_payload,
		archive_key = EXCLUDED.archive_key,
		total_count = EXCLUDED.total_count,
		matched_count = EXCLUDED.matched_count,
		missing_count = EXCLUDED.missing_count,
		mismatched_count = EXCLUDED.mismatched_count,
		imported_by = EXCLUDED.imported_by,
		updated_at = EXCLUDED.updated_at
	RETURNING id, created_at`

	row := r.db.QueryRowxContext(ctx, query,
		imp.ID, imp.BusinessID, imp.Period, imp.ImportType, imp.RawPayload,
		imp.ArchiveKey, imp.TotalCount, imp.MatchedCount, imp.MissingCount,
		imp.MismatchedCount, imp.ImportedBy, imp.CreatedAt, imp.UpdatedAt)
	if err := row.Scan(&imp.ID, &imp.CreatedAt); err != nil {
		return fmt.Errorf("gstr2aImportRepo.Upsert: %w", err)
	}
	return nil
}

func (r *gstr2aImportRepo) GetByKey(ctx context.Context, businessID uuid.UUID, periodToken string, importType domain.ImportType) (*domain.Gstr2aImport, error) {
	var imp domain.Gstr2aImport
	err := r.db.GetContext(ctx, &imp,
		`SELECT * FROM gstr2a_imports
		 WHERE business_id = $1 AND period = $2 AND import_type = $3`,
		businessID, periodToken, importType)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NotFoundf("no %s import for period %s", importType, periodToken)
		}
		return nil, fmt.Errorf("gstr2aImportRepo.GetByKey: %w", err)
	}
	return &imp, nil
}

func (r *gstr2aImportRepo) GetLatest(ctx context.Context, businessID uuid.UUID, periodToken string) (*domain.Gstr2aImport, error) {
	var imp domain.Gstr2aImport
	err := r.db.GetContext(ctx, &imp,
		`SELECT * FROM gstr2a_imports
		 WHERE business_id = $1 AND period = $2
		 ORDER BY updated_at DESC LIMIT 1`,
		businessID, periodToken)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NotFoundf("no statement import for period %s", periodToken)
		}
		return nil, fmt.Errorf("gstr2aImportRepo.GetLatest: %w", err)
	}
	return &imp, nil
}

func (r *gstr2aImportRepo) UpdateCounts(ctx context.Context, imp *domain.Gstr2aImport) error {
	imp.UpdatedAt = time.Now().UTC()
	_, err := r.db.ExecContext(ctx,
		`UPDATE gstr2a_imports SET
			total_count = $1, matched_count = $2, missing_count = $3,
			mismatched_count = $4, updated_at = $5
		 WHERE id = $6`,
		imp.TotalCount, imp.MatchedCount, imp.MissingCount,
		imp.MismatchedCount, imp.UpdatedAt, imp.ID)
	if err != nil {
		return fmt.Errorf("gstr2aImportRepo.UpdateCounts: %w", err)
	}
	return nil
}
