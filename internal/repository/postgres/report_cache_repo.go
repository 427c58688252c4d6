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

type reportCacheRepo struct {
	db *sqlx.DB
}

// NewReportCacheRepo creates a new PostgreSQL-backed ReportCacheRepository.
func NewReportCacheRepo(db *sqlx.DB) port.ReportCacheRepository {
	return &reportCacheRepo{db: db}
}

func (r *reportCacheRepo) Upsert(ctx context.Context, report *domain.GeneratedReport) error {
	if report.ID == uuid.Nil {
		report.ID = uuid.New()
	}
	report.GeneratedAt = time.Now().UTC()

	query := `INSERT INTO generated_reports (
		id, business_id, report_type, period, payload, generated_at
	) VALUES ($1, $2, $3, $4, $5, $6)
	ON CONFLICT (business_id, report_type, period) DO UPDATE SET
		payload = EXCLUDED.payload,
		generated_at = EXCLUDED.generated_at`

	_, err := r.db.ExecContext(ctx, query,
		report.ID, report.BusinessID, report.ReportType, report.Period,
		report.Payload, report.GeneratedAt)
	if err != nil {
		return fmt.Errorf("reportCacheRepo.Upsert: %w", err)
	}
	return nil
}

func (r *reportCacheRepo) Get(ctx context.Context, businessID uuid.UUID, reportType domain.ReportType, periodToken string) (*domain.GeneratedReport, error) {
	var report domain.GeneratedReport
	err := r.db.GetContext(ctx, &report,
		`SELECT * FROM generated_reports
		 WHERE business_id = $1 AND report_type = $2 AND period = $3`,
		businessID, reportType, periodToken)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NotFoundf("no cached report for %s/%s", reportType, periodToken)
		}
		return nil, fmt.Errorf("reportCacheRepo.Get: %w", err)
	}
	return &report, nil
}
