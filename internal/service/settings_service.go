package service

import (
	"context"
	"encoding/json"
	"log"

	"github.com/google/uuid"

	"gstsuite/internal/crypto"
	"gstsuite/internal/domain"
	"gstsuite/internal/gsp"
	"gstsuite/internal/port"
)

// SettingsInput is the write shape for per-business GSP configuration.
// Credentials are accepted in plaintext and stored encrypted. An empty
// provider selects the deployment's default GSP.
type SettingsInput struct {
	Provider        string               `json:"provider"`
	Credentials     *port.GSPCredentials `json:"credentials"`
	ProviderBaseURL string               `json:"provider_base_url"`
	EInvoiceEnabled bool                 `json:"einvoice_enabled"`
	EWayBillEnabled bool                 `json:"ewaybill_enabled"`
}

// SettingsService manages the engine-owned per-business GSP settings and
// resolves configured provider instances for the registration workflows.
type SettingsService interface {
	Upsert(ctx context.Context, businessID uuid.UUID, input *SettingsInput) (*domain.GstSettings, error)
	Get(ctx context.Context, businessID uuid.UUID) (*domain.GstSettings, error)
	// ResolveProvider returns the business's settings plus a provider
	// instance constructed with its decrypted credentials.
	ResolveProvider(ctx context.Context, businessID uuid.UUID) (port.GSPProvider, *domain.GstSettings, error)
}

type settingsService struct {
	repo            port.GstSettingsRepository
	cipher          crypto.Cipher
	defaultProvider string
	defaultBaseURL  string
}

// NewSettingsService creates a SettingsService using cipher for credential
// encryption at rest. defaultProvider and defaultBaseURL are the
// deployment-wide GSP defaults, applied when a business's settings row leaves
// them unset.
func NewSettingsService(repo port.GstSettingsRepository, cipher crypto.Cipher, defaultProvider, defaultBaseURL string) SettingsService {
	return &settingsService{
		repo:            repo,
		cipher:          cipher,
		defaultProvider: defaultProvider,
		defaultBaseURL:  defaultBaseURL,
	}
}

func (s *settingsService) Upsert(ctx context.Context, businessID uuid.UUID, input *SettingsInput) (*domain.GstSettings, error) {
	provider := input.Provider
	if provider == "" {
		provider = s.defaultProvider
	}
	if !gsp.Registered(provider) {
		return nil, domain.Validationf("unknown GSP provider %q", provider)
	}

	settings := &domain.GstSettings{
		BusinessID:      businessID,
		Provider:        provider,
		ProviderBaseURL: input.ProviderBaseURL,
		EInvoiceEnabled: input.EInvoiceEnabled,
		EWayBillEnabled: input.EWayBillEnabled,
	}

	if input.Credentials != nil {
		plaintext, err := json.Marshal(input.Credentials)
		if err != nil {
			return nil, domain.Validationf("invalid credentials: %v", err)
		}
		encrypted, err := s.cipher.Encrypt(plaintext)
		if err != nil {
			return nil, err
		}
		settings.Credentials = encrypted
	} else if existing, err := s.repo.GetByBusiness(ctx, businessID); err == nil {
		// No new credentials supplied: keep the stored blob.
		settings.Credentials = existing.Credentials
	}

	if err := s.repo.Upsert(ctx, settings); err != nil {
		return nil, err
	}
	return settings, nil
}

func (s *settingsService) Get(ctx context.Context, businessID uuid.UUID) (*domain.GstSettings, error) {
	return s.repo.GetByBusiness(ctx, businessID)
}

// decryptCredentials unwraps the stored blob. A decryption failure is logged
// and treated as "no credentials configured", never surfaced as a crypto error.
func (s *settingsService) decryptCredentials(settings *domain.GstSettings) *port.GSPCredentials {
	if settings.Credentials == "" {
		return nil
	}
	plaintext, err := s.cipher.Decrypt(settings.Credentials)
	if err != nil {
		log.Printf("settingsService.decryptCredentials: decrypt failed for business %s: %v", settings.BusinessID, err)
		return nil
	}
	var creds port.GSPCredentials
	if err := json.Unmarshal(plaintext, &creds); err != nil {
		log.Printf("settingsService.decryptCredentials: unmarshal failed for business %s: %v", settings.BusinessID, err)
		return nil
	}
	return &creds
}

func (s *settingsService) ResolveProvider(ctx context.Context, businessID uuid.UUID) (port.GSPProvider, *domain.GstSettings, error) {
	settings, err := s.repo.GetByBusiness(ctx, businessID)
	if err != nil {
		return nil, nil, err
	}
	creds := s.decryptCredentials(settings)
	if creds == nil {
		return nil, nil, domain.Validationf("no GSP credentials configured for business %s", businessID)
	}
	baseURL := settings.ProviderBaseURL
	if baseURL == "" {
		baseURL = s.defaultBaseURL
	}
	provider, err := gsp.New(settings.Provider, creds, baseURL)
	if err != nil {
		return nil, nil, err
	}
	return provider, settings, nil
}
