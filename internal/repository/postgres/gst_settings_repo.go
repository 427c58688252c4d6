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

type gstSettingsRepo struct {
	db *sqlx.DB
}

// NewGstSettingsRepo creates a new PostgreSQL-backed GstSettingsRepository.
func NewGstSettingsRepo(db *sqlx.DB) port.GstSettingsRepository {
	return &gstSettingsRepo{db: db}
}

func (r *gstSettingsRepo) Upsert(ctx context.Context, settings *domain.GstSettings) error {
	now := time.Now().UTC()
	if settings.ID == uuid.Nil {
		settings.ID = uuid.New()
		settings.CreatedAt = now
	}
	settings.UpdatedAt = now

	query := `INSERT INTO gst_settings (
		id, business_id, provider, credentials, provider_base_url,
		einvoice_enabled, ewaybill_enabled, created_at, updated_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	ON CONFLICT (business_id) DO UPDATE SET
		provider = EXCLUDED.provider,
		credentials = EXCLUDED.credentials,
		provider_base_url = EXCLUDED.provider_base_url,
		einvoice_enabled = EXCLUDED.einvoice_enabled,
		ewaybill_enabled = EXCLUDED.ewaybill_enabled,
		updated_at = EXCLUDED.updated_at`

	_, err := r.db.ExecContext(ctx, query,
		settings.ID, settings.BusinessID, settings.Provider, settings.Credentials,
		settings.ProviderBaseURL, settings.EInvoiceEnabled, settings.EWayBillEnabled,
		settings.CreatedAt, settings.UpdatedAt)
	if err != nil {
		return fmt.Errorf("gstSettingsRepo.Upsert: %w", err)
	}
	return nil
}

func (r *gstSettingsRepo) GetByBusiness(ctx context.Context, businessID uuid.UUID) (*domain.GstSettings, error) {
	var settings domain.GstSettings
	err := r.db.GetContext(ctx, &settings,
		"SELECT * FROM gst_settings WHERE business_id = $1", businessID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NotFoundf("gst settings not configured")
		}
		return nil, fmt.Errorf("gstSettingsRepo.GetByBusiness: %w", err)
	}
	return &settings, nil
}
