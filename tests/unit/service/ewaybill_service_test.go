package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"gstsuite/internal/domain"
	"gstsuite/internal/formatter"
	"gstsuite/internal/port"
	"gstsuite/internal/service"
	"gstsuite/mocks"
)

type ewaybillFixture struct {
	requests   *mocks.MockEWayBillRequestRepo
	invoices   *mocks.MockInvoiceStore
	parties    *mocks.MockPartyStore
	businesses *mocks.MockBusinessStore
	settings   *mocks.MockSettingsService
	provider   *mocks.MockGSPProvider
	svc        service.EWayBillService
}

func newEWayBillFixture() *ewaybillFixture {
	f := &ewaybillFixture{
		requests:   new(mocks.MockEWayBillRequestRepo),
		invoices:   new(mocks.MockInvoiceStore),
		parties:    new(mocks.MockPartyStore),
		businesses: new(mocks.MockBusinessStore),
		settings:   new(mocks.MockSettingsService),
		provider:   new(mocks.MockGSPProvider),
	}
	f.svc = service.NewEWayBillService(f.requests, f.invoices, f.parties, f.businesses, f.settings)
	return f
}

func ewaybillSale(id uuid.UUID, total string) domain.Invoice {
	return domain.Invoice{
		ID:            id,
		Type:          domain.InvoiceTypeSale,
		Number:        "INV-002",
		PlaceOfSupply: "29",
		Total:         dec(total),
		Items:         []domain.InvoiceItem{saleItem("50000", "18", "9000", "0", "0")},
	}
}

func noGenerated() *domain.Error {
	return domain.NotFoundf("no e-way bill request for invoice with status generated")
}

func TestEWayBillService_Generate_Success(t *testing.T) {
	f := newEWayBillFixture()
	businessID := uuid.New()
	invoiceID := uuid.New()

	f.requests.On("GetByInvoiceAndStatus", mock.Anything, businessID, invoiceID, domain.EWayBillGenerated).
		Return(nil, noGenerated())
	f.settings.On("ResolveProvider", mock.Anything, businessID).
		Return(f.provider, enabledSettings(businessID), nil)
	f.provider.On("Name").Return("mastergst")
	inv := ewaybillSale(invoiceID, "59000")
	f.invoices.On("GetByID", mock.Anything, businessID, invoiceID, testToken).Return(&inv, nil)
	f.businesses.On("GetProfile", mock.Anything, businessID, testToken).Return(regularProfile(businessID), nil)
	f.requests.On("Create", mock.Anything, mock.AnythingOfType("*domain.EWayBillRequest")).Return(nil)
	f.provider.On("GenerateEWayBill", mock.Anything, mock.AnythingOfType("*port.EWayBillPayload")).
		Return(&port.EWayBillResult{Success: true, EWayBillNo: "331001234567"}, nil)
	f.requests.On("Update", mock.Anything, mock.AnythingOfType("*domain.EWayBillRequest")).Return(nil)

	transport := &formatter.TransportInput{VehicleNo: "KA01AB1234", Mode: "1", TransporterID: "29TRANS1234F1Z5"}
	before := time.Now().UTC()
	req, err := f.svc.Generate(context.Background(), businessID, invoiceID, transport, testToken)

	require.NoError(t, err)
	assert.Equal(t, domain.EWayBillGenerated, req.Status)
	assert.Equal(t, "331001234567", req.EWayBillNo)
	assert.Equal(t, "KA01AB1234", req.VehicleNo)
	assert.Equal(t, "1", req.TransMode)
	require.NotNil(t, req.ValidUntil)
	assert.WithinDuration(t, before.Add(24*time.Hour), *req.ValidUntil, 5*time.Second)
}

func TestEWayBillService_Generate_Idempotent(t *testing.T) {
	f := newEWayBillFixture()
	businessID := uuid.New()
	invoiceID := uuid.New()

	prior := &domain.EWayBillRequest{
		BusinessID: businessID,
		InvoiceID:  invoiceID,
		Status:     domain.EWayBillGenerated,
		EWayBillNo: "existing-ewb",
	}
	f.requests.On("GetByInvoiceAndStatus", mock.Anything, businessID, invoiceID, domain.EWayBillGenerated).
		Return(prior, nil)

	req, err := f.svc.Generate(context.Background(), businessID, invoiceID, nil, testToken)

	require.NoError(t, err)
	assert.Equal(t, "existing-ewb", req.EWayBillNo)
	f.settings.AssertNotCalled(t, "ResolveProvider", mock.Anything, mock.Anything)
	f.provider.AssertNotCalled(t, "GenerateEWayBill", mock.Anything, mock.Anything)
}

func TestEWayBillService_Generate_Threshold(t *testing.T) {
	f := newEWayBillFixture()
	businessID := uuid.New()
	invoiceID := uuid.New()

	f.requests.On("GetByInvoiceAndStatus", mock.Anything, businessID, invoiceID, domain.EWayBillGenerated).
		Return(nil, noGenerated())
	f.settings.On("ResolveProvider", mock.Anything, businessID).
		Return(f.provider, enabledSettings(businessID), nil)
	inv := ewaybillSale(invoiceID, "49999.99")
	f.invoices.On("GetByID", mock.Anything, businessID, invoiceID, testToken).Return(&inv, nil)

	_, err := f.svc.Generate(context.Background(), businessID, invoiceID, nil, testToken)

	assert.True(t, domain.IsKind(err, domain.KindValidation))
	f.requests.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestEWayBillService_Generate_ThresholdBoundaryAccepted(t *testing.T) {
	f := newEWayBillFixture()
	businessID := uuid.New()
	invoiceID := uuid.New()

	f.requests.On("GetByInvoiceAndStatus", mock.Anything, businessID, invoiceID, domain.EWayBillGenerated).
		Return(nil, noGenerated())
	f.settings.On("ResolveProvider", mock.Anything, businessID).
		Return(f.provider, enabledSettings(businessID), nil)
	f.provider.On("Name").Return("mastergst")
	inv := ewaybillSale(invoiceID, "50000.00")
	f.invoices.On("GetByID", mock.Anything, businessID, invoiceID, testToken).Return(&inv, nil)
	f.businesses.On("GetProfile", mock.Anything, businessID, testToken).Return(regularProfile(businessID), nil)
	f.requests.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.provider.On("GenerateEWayBill", mock.Anything, mock.Anything).
		Return(&port.EWayBillResult{Success: true, EWayBillNo: "331009999999"}, nil)
	f.requests.On("Update", mock.Anything, mock.Anything).Return(nil)

	req, err := f.svc.Generate(context.Background(), businessID, invoiceID, nil, testToken)

	require.NoError(t, err)
	assert.Equal(t, domain.EWayBillGenerated, req.Status)
}

func TestEWayBillService_Generate_FlagDisabled(t *testing.T) {
	f := newEWayBillFixture()
	businessID := uuid.New()
	invoiceID := uuid.New()

	f.requests.On("GetByInvoiceAndStatus", mock.Anything, businessID, invoiceID, domain.EWayBillGenerated).
		Return(nil, noGenerated())
	cfg := enabledSettings(businessID)
	cfg.EWayBillEnabled = false
	f.settings.On("ResolveProvider", mock.Anything, businessID).Return(f.provider, cfg, nil)

	_, err := f.svc.Generate(context.Background(), businessID, invoiceID, nil, testToken)

	assert.True(t, domain.IsKind(err, domain.KindValidation))
	f.invoices.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestEWayBillService_Generate_InterStateNeedsPlaceOfSupply(t *testing.T) {
	f := newEWayBillFixture()
	businessID := uuid.New()
	invoiceID := uuid.New()

	f.requests.On("GetByInvoiceAndStatus", mock.Anything, businessID, invoiceID, domain.EWayBillGenerated).
		Return(nil, noGenerated())
	f.settings.On("ResolveProvider", mock.Anything, businessID).
		Return(f.provider, enabledSettings(businessID), nil)
	inv := ewaybillSale(invoiceID, "59000")
	inv.IsInterState = true
	inv.PlaceOfSupply = ""
	f.invoices.On("GetByID", mock.Anything, businessID, invoiceID, testToken).Return(&inv, nil)

	_, err := f.svc.Generate(context.Background(), businessID, invoiceID, nil, testToken)

	assert.True(t, domain.IsKind(err, domain.KindValidation))
}

func TestEWayBillService_Generate_ProviderRejection(t *testing.T) {
	f := newEWayBillFixture()
	businessID := uuid.New()
	invoiceID := uuid.New()

	f.requests.On("GetByInvoiceAndStatus", mock.Anything, businessID, invoiceID, domain.EWayBillGenerated).
		Return(nil, noGenerated())
	f.settings.On("ResolveProvider", mock.Anything, businessID).
		Return(f.provider, enabledSettings(businessID), nil)
	f.provider.On("Name").Return("mastergst")
	inv := ewaybillSale(invoiceID, "59000")
	f.invoices.On("GetByID", mock.Anything, businessID, invoiceID, testToken).Return(&inv, nil)
	f.businesses.On("GetProfile", mock.Anything, businessID, testToken).Return(regularProfile(businessID), nil)
	f.requests.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.provider.On("GenerateEWayBill", mock.Anything, mock.Anything).
		Return(&port.EWayBillResult{Success: false, ErrorCode: "358", ErrorMessage: "invalid vehicle number"}, nil)

	var updated *domain.EWayBillRequest
	f.requests.On("Update", mock.Anything, mock.AnythingOfType("*domain.EWayBillRequest")).
		Run(func(args mock.Arguments) {
			updated = args.Get(1).(*domain.EWayBillRequest)
		}).Return(nil)

	req, err := f.svc.Generate(context.Background(), businessID, invoiceID, nil, testToken)

	assert.True(t, domain.IsKind(err, domain.KindProvider))
	require.NotNil(t, req)
	assert.Equal(t, domain.EWayBillFailed, req.Status)
	assert.Equal(t, "358", req.ErrorCode)
	require.NotNil(t, updated)
	assert.Equal(t, domain.EWayBillFailed, updated.Status)
}

func TestEWayBillService_Update_Success(t *testing.T) {
	f := newEWayBillFixture()
	businessID := uuid.New()
	invoiceID := uuid.New()

	f.requests.On("GetByInvoiceAndStatus", mock.Anything, businessID, invoiceID, domain.EWayBillGenerated).
		Return(&domain.EWayBillRequest{
			Status:     domain.EWayBillGenerated,
			EWayBillNo: "331001234567",
			VehicleNo:  "KA01AB1234",
		}, nil)
	f.settings.On("ResolveProvider", mock.Anything, businessID).
		Return(f.provider, enabledSettings(businessID), nil)

	var sent *port.EWayBillUpdateInput
	f.provider.On("UpdateEWayBill", mock.Anything, mock.AnythingOfType("*port.EWayBillUpdateInput")).
		Run(func(args mock.Arguments) {
			sent = args.Get(1).(*port.EWayBillUpdateInput)
		}).Return(&port.EWayBillResult{Success: true}, nil)
	f.requests.On("Update", mock.Anything, mock.Anything).Return(nil)

	input := &port.EWayBillUpdateInput{VehicleNo: "KA05XY9999"}
	req, err := f.svc.Update(context.Background(), businessID, invoiceID, input)

	require.NoError(t, err)
	assert.Equal(t, "KA05XY9999", req.VehicleNo)
	require.NotNil(t, sent)
	assert.Equal(t, "331001234567", sent.EWayBillNo)
	// The caller's input must stay untouched.
	assert.Empty(t, input.EWayBillNo)
}

func TestEWayBillService_Update_NoGeneratedBill(t *testing.T) {
	f := newEWayBillFixture()
	businessID := uuid.New()
	invoiceID := uuid.New()

	f.requests.On("GetByInvoiceAndStatus", mock.Anything, businessID, invoiceID, domain.EWayBillGenerated).
		Return(nil, noGenerated())

	_, err := f.svc.Update(context.Background(), businessID, invoiceID, &port.EWayBillUpdateInput{VehicleNo: "KA05XY9999"})

	assert.True(t, domain.IsKind(err, domain.KindConflict))
}

func TestEWayBillService_Cancel_Success(t *testing.T) {
	f := newEWayBillFixture()
	businessID := uuid.New()
	invoiceID := uuid.New()

	f.requests.On("GetByInvoiceAndStatus", mock.Anything, businessID, invoiceID, domain.EWayBillGenerated).
		Return(&domain.EWayBillRequest{
			Status:     domain.EWayBillGenerated,
			EWayBillNo: "331001234567",
		}, nil)
	f.settings.On("ResolveProvider", mock.Anything, businessID).
		Return(f.provider, enabledSettings(businessID), nil)
	f.provider.On("CancelEWayBill", mock.Anything, "331001234567", "order cancelled").
		Return(&port.EWayBillResult{Success: true}, nil)
	f.requests.On("Update", mock.Anything, mock.Anything).Return(nil)

	req, err := f.svc.Cancel(context.Background(), businessID, invoiceID, "order cancelled")

	require.NoError(t, err)
	assert.Equal(t, domain.EWayBillCancelled, req.Status)
}

func TestEWayBillService_Cancel_NoGeneratedBill(t *testing.T) {
	f := newEWayBillFixture()
	businessID := uuid.New()
	invoiceID := uuid.New()

	f.requests.On("GetByInvoiceAndStatus", mock.Anything, businessID, invoiceID, domain.EWayBillGenerated).
		Return(nil, noGenerated())

	_, err := f.svc.Cancel(context.Background(), businessID, invoiceID, "reason")

	assert.True(t, domain.IsKind(err, domain.KindConflict))
	f.provider.AssertNotCalled(t, "CancelEWayBill", mock.Anything, mock.Anything, mock.Anything)
}
