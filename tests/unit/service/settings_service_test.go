package service_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"gstsuite/internal/crypto"
	"gstsuite/internal/domain"
	"gstsuite/internal/gsp"
	"gstsuite/internal/port"
	"gstsuite/internal/service"
	"gstsuite/mocks"

	_ "gstsuite/internal/gsp/cleartax"
	_ "gstsuite/internal/gsp/mastergst"
)

func newSettingsService(t *testing.T, repo *mocks.MockGstSettingsRepo) (service.SettingsService, crypto.Cipher) {
	t.Helper()
	return newSettingsServiceWithDefaults(t, repo, "", "")
}

func newSettingsServiceWithDefaults(t *testing.T, repo *mocks.MockGstSettingsRepo, defaultProvider, defaultBaseURL string) (service.SettingsService, crypto.Cipher) {
	t.Helper()
	cipher, err := crypto.NewAESCipher("test-secret")
	require.NoError(t, err)
	return service.NewSettingsService(repo, cipher, defaultProvider, defaultBaseURL), cipher
}

func testCredentials() *port.GSPCredentials {
	return &port.GSPCredentials{
		ClientID:     "client-1",
		ClientSecret: "secret-1",
		Username:     "acme",
		Password:     "pass",
		GSTIN:        "27AAAAA0000A1Z5",
	}
}

func TestSettingsService_Upsert_EncryptsCredentials(t *testing.T) {
	repo := new(mocks.MockGstSettingsRepo)
	svc, cipher := newSettingsService(t, repo)

	businessID := uuid.New()
	repo.On("Upsert", mock.Anything, mock.AnythingOfType("*domain.GstSettings")).Return(nil)

	settings, err := svc.Upsert(context.Background(), businessID, &service.SettingsInput{
		Provider:        "mastergst",
		Credentials:     testCredentials(),
		EInvoiceEnabled: true,
	})

	require.NoError(t, err)
	assert.Equal(t, "mastergst", settings.Provider)
	assert.True(t, settings.EInvoiceEnabled)
	require.NotEmpty(t, settings.Credentials)
	assert.NotContains(t, settings.Credentials, "secret-1")

	// The stored blob round-trips through the cipher.
	plaintext, err := cipher.Decrypt(settings.Credentials)
	require.NoError(t, err)
	var creds port.GSPCredentials
	require.NoError(t, json.Unmarshal(plaintext, &creds))
	assert.Equal(t, "client-1", creds.ClientID)
	assert.Equal(t, "secret-1", creds.ClientSecret)
}

func TestSettingsService_Upsert_UnknownProvider(t *testing.T) {
	repo := new(mocks.MockGstSettingsRepo)
	svc, _ := newSettingsService(t, repo)

	_, err := svc.Upsert(context.Background(), uuid.New(), &service.SettingsInput{Provider: "acmegsp"})

	assert.True(t, domain.IsKind(err, domain.KindValidation))
	repo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

func TestSettingsService_Upsert_KeepsStoredCredentials(t *testing.T) {
	repo := new(mocks.MockGstSettingsRepo)
	svc, _ := newSettingsService(t, repo)

	businessID := uuid.New()
	repo.On("GetByBusiness", mock.Anything, businessID).
		Return(&domain.GstSettings{BusinessID: businessID, Provider: "mastergst", Credentials: "stored-blob"}, nil)
	repo.On("Upsert", mock.Anything, mock.Anything).Return(nil)

	settings, err := svc.Upsert(context.Background(), businessID, &service.SettingsInput{
		Provider:        "cleartax",
		EWayBillEnabled: true,
	})

	require.NoError(t, err)
	assert.Equal(t, "cleartax", settings.Provider)
	assert.Equal(t, "stored-blob", settings.Credentials)
}

func TestSettingsService_ResolveProvider(t *testing.T) {
	repo := new(mocks.MockGstSettingsRepo)
	svc, cipher := newSettingsService(t, repo)

	raw, err := json.Marshal(testCredentials())
	require.NoError(t, err)
	encrypted, err := cipher.Encrypt(raw)
	require.NoError(t, err)

	businessID := uuid.New()
	repo.On("GetByBusiness", mock.Anything, businessID).Return(&domain.GstSettings{
		BusinessID:  businessID,
		Provider:    "mastergst",
		Credentials: encrypted,
	}, nil)

	provider, settings, err := svc.ResolveProvider(context.Background(), businessID)

	require.NoError(t, err)
	assert.Equal(t, "mastergst", provider.Name())
	assert.Equal(t, businessID, settings.BusinessID)
}

func TestSettingsService_ResolveProvider_BaseURLFallback(t *testing.T) {
	var hits int32
	gateway := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		assert.Equal(t, "/einvoice/authenticate", r.URL.Path)
		_, _ = w.Write([]byte(`{"status_cd":"1","data":{"AuthToken":"tok-1"}}`))
	}))
	defer gateway.Close()

	repo := new(mocks.MockGstSettingsRepo)
	svc, cipher := newSettingsServiceWithDefaults(t, repo, "mastergst", gateway.URL)

	raw, err := json.Marshal(testCredentials())
	require.NoError(t, err)
	encrypted, err := cipher.Encrypt(raw)
	require.NoError(t, err)

	businessID := uuid.New()
	// The settings row carries no base URL of its own.
	repo.On("GetByBusiness", mock.Anything, businessID).Return(&domain.GstSettings{
		BusinessID:  businessID,
		Provider:    "mastergst",
		Credentials: encrypted,
	}, nil)

	provider, _, err := svc.ResolveProvider(context.Background(), businessID)
	require.NoError(t, err)

	token, err := provider.Authenticate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "tok-1", token)
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
}

func TestSettingsService_ResolveProvider_RowBaseURLWins(t *testing.T) {
	var hits int32
	gateway := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		_, _ = w.Write([]byte(`{"status_cd":"1","data":{"AuthToken":"tok-2"}}`))
	}))
	defer gateway.Close()

	repo := new(mocks.MockGstSettingsRepo)
	svc, cipher := newSettingsServiceWithDefaults(t, repo, "mastergst", "http://default.invalid")

	raw, err := json.Marshal(testCredentials())
	require.NoError(t, err)
	encrypted, err := cipher.Encrypt(raw)
	require.NoError(t, err)

	businessID := uuid.New()
	repo.On("GetByBusiness", mock.Anything, businessID).Return(&domain.GstSettings{
		BusinessID:      businessID,
		Provider:        "mastergst",
		ProviderBaseURL: gateway.URL,
		Credentials:     encrypted,
	}, nil)

	provider, _, err := svc.ResolveProvider(context.Background(), businessID)
	require.NoError(t, err)

	token, err := provider.Authenticate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "tok-2", token)
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
}

func TestSettingsService_Upsert_DefaultProvider(t *testing.T) {
	repo := new(mocks.MockGstSettingsRepo)
	svc, _ := newSettingsServiceWithDefaults(t, repo, "cleartax", "")

	businessID := uuid.New()
	repo.On("GetByBusiness", mock.Anything, businessID).
		Return(nil, domain.NotFoundf("no settings"))
	repo.On("Upsert", mock.Anything, mock.AnythingOfType("*domain.GstSettings")).Return(nil)

	settings, err := svc.Upsert(context.Background(), businessID, &service.SettingsInput{})

	require.NoError(t, err)
	assert.Equal(t, "cleartax", settings.Provider)
}

func TestSettingsService_ResolveProvider_NoCredentials(t *testing.T) {
	repo := new(mocks.MockGstSettingsRepo)
	svc, _ := newSettingsService(t, repo)

	businessID := uuid.New()
	repo.On("GetByBusiness", mock.Anything, businessID).
		Return(&domain.GstSettings{BusinessID: businessID, Provider: "mastergst"}, nil)

	_, _, err := svc.ResolveProvider(context.Background(), businessID)

	assert.True(t, domain.IsKind(err, domain.KindValidation))
}

func TestSettingsService_ResolveProvider_CorruptBlob(t *testing.T) {
	repo := new(mocks.MockGstSettingsRepo)
	svc, _ := newSettingsService(t, repo)

	businessID := uuid.New()
	repo.On("GetByBusiness", mock.Anything, businessID).Return(&domain.GstSettings{
		BusinessID:  businessID,
		Provider:    "mastergst",
		Credentials: "deadbeef:deadbeef",
	}, nil)

	// A corrupt blob degrades to "no credentials", never a crypto error.
	_, _, err := svc.ResolveProvider(context.Background(), businessID)

	assert.True(t, domain.IsKind(err, domain.KindValidation))
}

func TestGSPRegistry(t *testing.T) {
	assert.True(t, gsp.Registered("mastergst"))
	assert.True(t, gsp.Registered("cleartax"))
	assert.False(t, gsp.Registered("acmegsp"))

	provider, err := gsp.New("cleartax", testCredentials(), "")
	require.NoError(t, err)
	assert.Equal(t, "cleartax", provider.Name())
}
