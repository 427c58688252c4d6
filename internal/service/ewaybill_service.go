package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"gstsuite/internal/domain"
	"gstsuite/internal/formatter"
	"gstsuite/internal/port"
)

// EWayBillThreshold is the invoice total at or above which an e-way bill is
// mandatory.
var EWayBillThreshold = decimal.NewFromInt(50000)

// ewaybillValidity is the assumed validity window from generation. Real
// government rules vary by transport distance, which is not modeled.
const ewaybillValidity = 24 * time.Hour

// EWayBillService drives e-way-bill generation through the configured GSP.
type EWayBillService interface {
	Generate(ctx context.Context, businessID, invoiceID uuid.UUID, transport *formatter.TransportInput, authToken string) (*domain.EWayBillRequest, error)
	Update(ctx context.Context, businessID, invoiceID uuid.UUID, input *port.EWayBillUpdateInput) (*domain.EWayBillRequest, error)
	Cancel(ctx context.Context, businessID, invoiceID uuid.UUID, reason string) (*domain.EWayBillRequest, error)
	GetStatus(ctx context.Context, businessID, invoiceID uuid.UUID) (*domain.EWayBillRequest, error)
}

type ewaybillService struct {
	requests   port.EWayBillRequestRepository
	invoices   port.InvoiceStore
	parties    port.PartyStore
	businesses port.BusinessStore
	settings   SettingsService

	now func() time.Time
}

// NewEWayBillService creates an EWayBillService.
func NewEWayBillService(
	requests port.EWayBillRequestRepository,
	invoices port.InvoiceStore,
	parties port.PartyStore,
	businesses port.BusinessStore,
	settings SettingsService,
) EWayBillService {
	return &ewaybillService{
		requests:   requests,
		invoices:   invoices,
		parties:    parties,
		businesses: businesses,
		settings:   settings,
		now:        time.Now,
	}
}

func (s *ewaybillService) Generate(ctx context.Context, businessID, invoiceID uuid.UUID, transport *formatter.TransportInput, authToken string) (*domain.EWayBillRequest, error) {
	// Idempotency: one generated e-way bill per invoice.
	if prior, err := s.requests.GetByInvoiceAndStatus(ctx, businessID, invoiceID, domain.EWayBillGenerated); err == nil {
		return prior, nil
	}

	provider, cfg, err := s.settings.ResolveProvider(ctx, businessID)
	if err != nil {
		return nil, err
	}
	if !cfg.EWayBillEnabled {
		return nil, domain.Validationf("e-way bill generation is not enabled for business %s", businessID)
	}

	inv, err := s.invoices.GetByID(ctx, businessID, invoiceID, authToken)
	if err != nil {
		return nil, err
	}
	if inv.Total.LessThan(EWayBillThreshold) {
		return nil, domain.Validationf("invoice %s total %s is below the e-way bill threshold", inv.Number, inv.Total.StringFixed(2))
	}
	if inv.IsInterState && inv.PlaceOfSupply == "" {
		return nil, domain.Validationf("inter-state invoice %s has no place of supply", inv.Number)
	}

	profile, err := s.businesses.GetProfile(ctx, businessID, authToken)
	if err != nil {
		return nil, err
	}
	var party *domain.Party
	if inv.PartyID != nil {
		if p, perr := s.parties.GetByID(ctx, businessID, *inv.PartyID, authToken); perr == nil {
			party = p
		}
	}

	payload := formatter.EWayBill(inv, profile, party, transport)

	req := &domain.EWayBillRequest{
		BusinessID: businessID,
		InvoiceID:  invoiceID,
		Provider:   provider.Name(),
		Status:     domain.EWayBillPending,
	}
	if transport != nil {
		req.VehicleNo = transport.VehicleNo
		req.TransporterID = transport.TransporterID
		req.TransMode = transport.Mode
	}
	if err := s.requests.Create(ctx, req); err != nil {
		return nil, err
	}

	result, err := provider.GenerateEWayBill(ctx, payload)
	if err != nil {
		req.Status = domain.EWayBillFailed
		req.ErrorMessage = err.Error()
		if uerr := s.requests.Update(ctx, req); uerr != nil {
			return nil, uerr
		}
		return nil, domain.ProviderError("", "e-way bill generation failed", err)
	}

	if !result.Success {
		req.Status = domain.EWayBillFailed
		req.ErrorCode = result.ErrorCode
		req.ErrorMessage = result.ErrorMessage
		if uerr := s.requests.Update(ctx, req); uerr != nil {
			return nil, uerr
		}
		return req, domain.ProviderError(result.ErrorCode, result.ErrorMessage, nil)
	}

	validUntil := s.now().UTC().Add(ewaybillValidity)
	req.Status = domain.EWayBillGenerated
	req.EWayBillNo = result.EWayBillNo
	req.ValidUntil = &validUntil
	if err := s.requests.Update(ctx, req); err != nil {
		return nil, err
	}
	return req, nil
}

// Update changes the transport details of a generated e-way bill. The
// provider is called before any stored state mutates.
func (s *ewaybillService) Update(ctx context.Context, businessID, invoiceID uuid.UUID, input *port.EWayBillUpdateInput) (*domain.EWayBillRequest, error) {
	req, err := s.requests.GetByInvoiceAndStatus(ctx, businessID, invoiceID, domain.EWayBillGenerated)
	if err != nil {
		if domain.IsKind(err, domain.KindNotFound) {
			return nil, domain.Conflictf("invoice %s has no generated e-way bill to update", invoiceID)
		}
		return nil, err
	}

	provider, _, err := s.settings.ResolveProvider(ctx, businessID)
	if err != nil {
		return nil, err
	}
	// Send a copy so the caller's input is not mutated.
	sent := *input
	sent.EWayBillNo = req.EWayBillNo
	result, err := provider.UpdateEWayBill(ctx, &sent)
	if err != nil {
		return nil, domain.ProviderError("", "e-way bill update failed", err)
	}
	if !result.Success {
		return nil, domain.ProviderError(result.ErrorCode, result.ErrorMessage, nil)
	}

	if input.VehicleNo != "" {
		req.VehicleNo = input.VehicleNo
	}
	if input.TransMode != "" {
		req.TransMode = input.TransMode
	}
	if err := s.requests.Update(ctx, req); err != nil {
		return nil, err
	}
	return req, nil
}

func (s *ewaybillService) Cancel(ctx context.Context, businessID, invoiceID uuid.UUID, reason string) (*domain.EWayBillRequest, error) {
	req, err := s.requests.GetByInvoiceAndStatus(ctx, businessID, invoiceID, domain.EWayBillGenerated)
	if err != nil {
		if domain.IsKind(err, domain.KindNotFound) {
			return nil, domain.Conflictf("invoice %s has no generated e-way bill to cancel", invoiceID)
		}
		return nil, err
	}

	provider, _, err := s.settings.ResolveProvider(ctx, businessID)
	if err != nil {
		return nil, err
	}
	result, err := provider.CancelEWayBill(ctx, req.EWayBillNo, reason)
	if err != nil {
		return nil, domain.ProviderError("", "e-way bill cancellation failed", err)
	}
	if !result.Success {
		return nil, domain.ProviderError(result.ErrorCode, result.ErrorMessage, nil)
	}

	req.Status = domain.EWayBillCancelled
	if err := s.requests.Update(ctx, req); err != nil {
		return nil, err
	}
	return req, nil
}

func (s *ewaybillService) GetStatus(ctx context.Context, businessID, invoiceID uuid.UUID) (*domain.EWayBillRequest, error) {
	return s.requests.GetLatestByInvoice(ctx, businessID, invoiceID)
}
