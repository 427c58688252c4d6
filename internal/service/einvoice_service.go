package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"gstsuite/internal/domain"
	"gstsuite/internal/formatter"
	"gstsuite/internal/port"
)

// EInvoiceTurnoverThreshold auto-enables e-invoicing for businesses at or
// above this annual turnover (5 crore), regardless of the settings flag.
var EInvoiceTurnoverThreshold = decimal.NewFromInt(50000000)

// EInvoiceService drives IRN registration through the configured GSP.
type EInvoiceService interface {
	Generate(ctx context.Context, businessID, invoiceID uuid.UUID, authToken string) (*domain.EInvoiceRequest, error)
	Cancel(ctx context.Context, businessID, invoiceID uuid.UUID, reason, authToken string) (*domain.EInvoiceRequest, error)
	GetStatus(ctx context.Context, businessID, invoiceID uuid.UUID) (*domain.EInvoiceRequest, error)
}

type einvoiceService struct {
	requests   port.EInvoiceRequestRepository
	invoices   port.InvoiceStore
	parties    port.PartyStore
	businesses port.BusinessStore
	settings   SettingsService
}

// NewEInvoiceService creates an EInvoiceService.
func NewEInvoiceService(
	requests port.EInvoiceRequestRepository,
	invoices port.InvoiceStore,
	parties port.PartyStore,
	businesses port.BusinessStore,
	settings SettingsService,
) EInvoiceService {
	return &einvoiceService{
		requests:   requests,
		invoices:   invoices,
		parties:    parties,
		businesses: businesses,
		settings:   settings,
	}
}

func (s *einvoiceService) Generate(ctx context.Context, businessID, invoiceID uuid.UUID, authToken string) (*domain.EInvoiceRequest, error) {
	// Idempotency: a prior successful registration is returned verbatim,
	// without touching the provider again.
	if prior, err := s.requests.GetLatestByInvoice(ctx, businessID, invoiceID); err == nil {
		if prior.Status == domain.EInvoiceSuccess && prior.IRN != "" {
			return prior, nil
		}
	}

	provider, cfg, err := s.settings.ResolveProvider(ctx, businessID)
	if err != nil {
		return nil, err
	}
	profile, err := s.businesses.GetProfile(ctx, businessID, authToken)
	if err != nil {
		return nil, err
	}
	if !cfg.EInvoiceEnabled && profile.AnnualTurnover.LessThan(EInvoiceTurnoverThreshold) {
		return nil, domain.Validationf("business %s is not eligible for e-invoicing: flag off and turnover below threshold", businessID)
	}

	inv, err := s.invoices.GetByID(ctx, businessID, invoiceID, authToken)
	if err != nil {
		return nil, err
	}
	if err := validateEInvoiceCandidate(inv); err != nil {
		return nil, err
	}

	var buyer *domain.Party
	if inv.PartyID != nil {
		if p, perr := s.parties.GetByID(ctx, businessID, *inv.PartyID, authToken); perr == nil {
			buyer = p
		}
	}

	payload := formatter.EInvoice(inv, profile, buyer)

	req := &domain.EInvoiceRequest{
		BusinessID: businessID,
		InvoiceID:  invoiceID,
		Provider:   provider.Name(),
		Status:     domain.EInvoicePending,
	}
	if err := s.requests.Create(ctx, req); err != nil {
		return nil, err
	}

	result, err := provider.GenerateIRN(ctx, payload)
	if err != nil {
		// The terminal transition happens before the transport error
		// propagates, so the row never stays pending past this call.
		req.Status = domain.EInvoiceFailed
		req.ErrorMessage = err.Error()
		if uerr := s.requests.Update(ctx, req); uerr != nil {
			return nil, uerr
		}
		return nil, domain.ProviderError("", "e-invoice generation failed", err)
	}

	if !result.Success {
		req.Status = domain.EInvoiceFailed
		req.ErrorCode = result.ErrorCode
		req.ErrorMessage = result.ErrorMessage
		if uerr := s.requests.Update(ctx, req); uerr != nil {
			return nil, uerr
		}
		return req, domain.ProviderError(result.ErrorCode, result.ErrorMessage, nil)
	}

	req.Status = domain.EInvoiceSuccess
	req.IRN = result.IRN
	req.AckNo = result.AckNo
	req.AckDate = result.AckDate
	req.SignedQRCode = result.SignedQRCode
	req.SignedInvoice = result.SignedInvoice
	if err := s.requests.Update(ctx, req); err != nil {
		return nil, err
	}
	return req, nil
}

// validateEInvoiceCandidate applies the registration pre-checks.
func validateEInvoiceCandidate(inv *domain.Invoice) error {
	if inv.Type != domain.InvoiceTypeSale {
		return domain.Validationf("e-invoice registration requires a sale invoice; got %s", inv.Type)
	}
	if len(inv.Items) == 0 {
		return domain.Validationf("invoice %s has no items", inv.Number)
	}
	for _, item := range inv.Items {
		if item.HSNCode == "" {
			return domain.Validationf("invoice %s: item %q has no HSN code", inv.Number, item.Description)
		}
	}
	if !inv.Total.IsPositive() {
		return domain.Validationf("invoice %s has a non-positive total", inv.Number)
	}
	return nil
}

func (s *einvoiceService) Cancel(ctx context.Context, businessID, invoiceID uuid.UUID, reason, authToken string) (*domain.EInvoiceRequest, error) {
	req, err := s.requests.GetLatestByInvoice(ctx, businessID, invoiceID)
	if err != nil {
		return nil, err
	}
	if req.Status != domain.EInvoiceSuccess {
		return nil, domain.Conflictf("e-invoice for invoice %s is %s; only a successful registration can be cancelled", invoiceID, req.Status)
	}

	provider, _, err := s.settings.ResolveProvider(ctx, businessID)
	if err != nil {
		return nil, err
	}
	result, err := provider.CancelIRN(ctx, req.IRN, reason)
	if err != nil {
		return nil, domain.ProviderError("", "e-invoice cancellation failed", err)
	}
	if !result.Success {
		return nil, domain.ProviderError(result.ErrorCode, result.ErrorMessage, nil)
	}

	req.Status = domain.EInvoiceCancelled
	if err := s.requests.Update(ctx, req); err != nil {
		return nil, err
	}
	return req, nil
}

func (s *einvoiceService) GetStatus(ctx context.Context, businessID, invoiceID uuid.UUID) (*domain.EInvoiceRequest, error) {
	return s.requests.GetLatestByInvoice(ctx, businessID, invoiceID)
}
