package service_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"gstsuite/internal/domain"
	"gstsuite/internal/service"
	"gstsuite/mocks"
)

const testToken = "test-token"

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func saleItem(taxable, rate, igst, cgst, sgst string) domain.InvoiceItem {
	return domain.InvoiceItem{
		Description:  "goods",
		HSNCode:      "8471",
		Quantity:     decimal.NewFromInt(1),
		Unit:         "NOS",
		TaxRate:      dec(rate),
		TaxableValue: dec(taxable),
		IGST:         dec(igst),
		CGST:         dec(cgst),
		SGST:         dec(sgst),
	}
}

func newReturnService(invoices *mocks.MockInvoiceStore, parties *mocks.MockPartyStore, businesses *mocks.MockBusinessStore, cache *mocks.MockReportCacheRepo) service.ReturnService {
	return service.NewReturnService(invoices, parties, businesses, cache, time.Hour)
}

func regularProfile(businessID uuid.UUID) *domain.BusinessProfile {
	return &domain.BusinessProfile{
		ID:              businessID,
		GSTIN:           "27AAAAA0000A1Z5",
		LegalName:       "Acme Traders",
		StateCode:       "27",
		Regime:          domain.RegimeRegular,
		FilingFrequency: domain.FilingMonthly,
	}
}

func TestReturnService_GenerateGSTR1_B2B(t *testing.T) {
	invoices := new(mocks.MockInvoiceStore)
	parties := new(mocks.MockPartyStore)
	businesses := new(mocks.MockBusinessStore)
	cache := new(mocks.MockReportCacheRepo)
	svc := newReturnService(invoices, parties, businesses, cache)

	businessID := uuid.New()
	businesses.On("GetProfile", mock.Anything, businessID, testToken).Return(regularProfile(businessID), nil)
	cache.On("Get", mock.Anything, businessID, domain.ReportGSTR1, "122024").Return(nil, domain.NotFoundf("no cached report"))
	cache.On("Upsert", mock.Anything, mock.AnythingOfType("*domain.GeneratedReport")).Return(nil)

	sale := domain.Invoice{
		ID:            uuid.New(),
		Type:          domain.InvoiceTypeSale,
		Number:        "INV-001",
		Date:          time.Date(2024, 12, 5, 0, 0, 0, 0, time.UTC),
		PartyGSTIN:    "29ABCDE1234F1Z5",
		PlaceOfSupply: "29",
		TaxableValue:  dec("100000"),
		Total:         dec("118000"),
		Items:         []domain.InvoiceItem{saleItem("100000", "18", "0", "9000", "9000")},
	}
	invoices.On("ListByDateRange", mock.Anything, businessID, mock.Anything, mock.Anything, testToken).
		Return([]domain.Invoice{sale}, nil)
	parties.On("GetByGSTINs", mock.Anything, businessID, []string{"29ABCDE1234F1Z5"}, testToken).
		Return(map[string]*domain.Party{
			"29ABCDE1234F1Z5": {GSTIN: "29ABCDE1234F1Z5", LegalName: "Beta Supplies Pvt Ltd"},
		}, nil)

	report, err := svc.GenerateGSTR1(context.Background(), businessID, "122024", testToken)

	require.NoError(t, err)
	assert.Equal(t, "27AAAAA0000A1Z5", report.GSTIN)
	assert.Equal(t, "122024", report.ReturnPeriod)
	require.Len(t, report.B2B, 1)
	group := report.B2B[0]
	assert.Equal(t, "29ABCDE1234F1Z5", group.CounterpartyGSTIN)
	assert.Equal(t, "Beta Supplies Pvt Ltd", group.CounterpartyName)
	require.Len(t, group.Invoices, 1)
	inv := group.Invoices[0]
	assert.Equal(t, "INV-001", inv.Number)
	assert.Equal(t, "05-12-2024", inv.Date)
	assert.Equal(t, 118000.0, inv.Value)
	assert.Equal(t, "29", inv.PlaceOfSupply)
	require.Len(t, inv.Items, 1)
	assert.Equal(t, 18.0, inv.Items[0].Rate)
	assert.Equal(t, 100000.0, inv.Items[0].TaxableValue)
	assert.Equal(t, 9000.0, inv.Items[0].CGST)
	assert.Equal(t, 9000.0, inv.Items[0].SGST)
	assert.Empty(t, report.B2CLarge)
	assert.Empty(t, report.B2CSmall)
	cache.AssertExpectations(t)
}

func TestReturnService_GenerateGSTR1_Classification(t *testing.T) {
	invoices := new(mocks.MockInvoiceStore)
	parties := new(mocks.MockPartyStore)
	businesses := new(mocks.MockBusinessStore)
	cache := new(mocks.MockReportCacheRepo)
	svc := newReturnService(invoices, parties, businesses, cache)

	businessID := uuid.New()
	businesses.On("GetProfile", mock.Anything, businessID, testToken).Return(regularProfile(businessID), nil)
	cache.On("Get", mock.Anything, businessID, domain.ReportGSTR1, "122024").Return(nil, domain.NotFoundf("no cached report"))
	cache.On("Upsert", mock.Anything, mock.Anything).Return(nil)
	parties.On("GetByGSTINs", mock.Anything, businessID, mock.Anything, testToken).
		Return(map[string]*domain.Party{}, nil)

	all := []domain.Invoice{
		{
			// Export with a GSTIN still lands in the export section.
			Type: domain.InvoiceTypeSale, Number: "EXP-1", IsExport: true,
			PartyGSTIN: "29ABCDE1234F1Z5", Total: dec("500000"),
			Date:  time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC),
			Items: []domain.InvoiceItem{saleItem("500000", "0", "0", "0", "0")},
		},
		{
			Type: domain.InvoiceTypeSale, Number: "B2C-L", Total: dec("250000"),
			PlaceOfSupply: "27",
			Date:          time.Date(2024, 12, 2, 0, 0, 0, 0, time.UTC),
			Items:         []domain.InvoiceItem{saleItem("211864.41", "18", "0", "19067.80", "19067.80")},
		},
		{
			Type: domain.InvoiceTypeSale, Number: "B2C-S", Total: dec("249999.99"),
			PlaceOfSupply: "27",
			Date:          time.Date(2024, 12, 3, 0, 0, 0, 0, time.UTC),
			Items:         []domain.InvoiceItem{saleItem("211864.40", "18", "0", "19067.79", "19067.79")},
		},
	}
	invoices.On("ListByDateRange", mock.Anything, businessID, mock.Anything, mock.Anything, testToken).
		Return(all, nil)

	report, err := svc.GenerateGSTR1(context.Background(), businessID, "122024", testToken)

	require.NoError(t, err)
	require.Len(t, report.Export, 1)
	assert.Equal(t, "EXP-1", report.Export[0].Number)
	assert.Empty(t, report.B2B)
	require.Len(t, report.B2CLarge, 1)
	assert.Equal(t, "B2C-L", report.B2CLarge[0].Number)
	require.Len(t, report.B2CSmall, 1)
	assert.Equal(t, "27", report.B2CSmall[0].PlaceOfSupply)
	assert.Equal(t, 18.0, report.B2CSmall[0].Rate)
	assert.Equal(t, 211864.40, report.B2CSmall[0].TaxableValue)
}

func TestReturnService_GenerateGSTR1_Deterministic(t *testing.T) {
	invoices := new(mocks.MockInvoiceStore)
	parties := new(mocks.MockPartyStore)
	businesses := new(mocks.MockBusinessStore)
	cache := new(mocks.MockReportCacheRepo)
	svc := newReturnService(invoices, parties, businesses, cache)

	businessID := uuid.New()
	businesses.On("GetProfile", mock.Anything, businessID, testToken).Return(regularProfile(businessID), nil)
	cache.On("Get", mock.Anything, businessID, domain.ReportGSTR1, "122024").Return(nil, domain.NotFoundf("no cached report"))
	cache.On("Upsert", mock.Anything, mock.Anything).Return(nil)
	parties.On("GetByGSTINs", mock.Anything, businessID, mock.Anything, testToken).
		Return(map[string]*domain.Party{}, nil)

	sales := []domain.Invoice{
		{
			Type: domain.InvoiceTypeSale, Number: "B", PartyGSTIN: "29ABCDE1234F1Z5",
			Total: dec("118"), Date: time.Date(2024, 12, 2, 0, 0, 0, 0, time.UTC),
			Items: []domain.InvoiceItem{saleItem("100", "18", "18", "0", "0")},
		},
		{
			Type: domain.InvoiceTypeSale, Number: "A", PartyGSTIN: "07FGHIJ5678K1Z3",
			Total: dec("236"), Date: time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC),
			Items: []domain.InvoiceItem{saleItem("200", "18", "36", "0", "0")},
		},
	}
	invoices.On("ListByDateRange", mock.Anything, businessID, mock.Anything, mock.Anything, testToken).
		Return(sales, nil)

	first, err := svc.GenerateGSTR1(context.Background(), businessID, "122024", testToken)
	require.NoError(t, err)
	second, err := svc.GenerateGSTR1(context.Background(), businessID, "122024", testToken)
	require.NoError(t, err)

	// GSTIN groups come out sorted regardless of input order.
	require.Len(t, first.B2B, 2)
	assert.Equal(t, "07FGHIJ5678K1Z3", first.B2B[0].CounterpartyGSTIN)
	assert.Equal(t, "29ABCDE1234F1Z5", first.B2B[1].CounterpartyGSTIN)

	firstJSON, err := json.Marshal(first)
	require.NoError(t, err)
	secondJSON, err := json.Marshal(second)
	require.NoError(t, err)
	assert.Equal(t, firstJSON, secondJSON)
}

func TestReturnService_GenerateGSTR1_CacheHit(t *testing.T) {
	invoices := new(mocks.MockInvoiceStore)
	parties := new(mocks.MockPartyStore)
	businesses := new(mocks.MockBusinessStore)
	cache := new(mocks.MockReportCacheRepo)
	svc := newReturnService(invoices, parties, businesses, cache)

	businessID := uuid.New()
	businesses.On("GetProfile", mock.Anything, businessID, testToken).Return(regularProfile(businessID), nil)

	cachedReport := domain.Gstr1Report{GSTIN: "27AAAAA0000A1Z5", ReturnPeriod: "122024"}
	payload, err := json.Marshal(cachedReport)
	require.NoError(t, err)
	cache.On("Get", mock.Anything, businessID, domain.ReportGSTR1, "122024").Return(&domain.GeneratedReport{
		BusinessID:  businessID,
		ReportType:  domain.ReportGSTR1,
		Period:      "122024",
		Payload:     payload,
		GeneratedAt: time.Now().UTC(),
	}, nil)

	report, err := svc.GenerateGSTR1(context.Background(), businessID, "122024", testToken)

	require.NoError(t, err)
	assert.Equal(t, "122024", report.ReturnPeriod)
	invoices.AssertNotCalled(t, "ListByDateRange", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestReturnService_GenerateGSTR1_StaleCacheRegenerates(t *testing.T) {
	invoices := new(mocks.MockInvoiceStore)
	parties := new(mocks.MockPartyStore)
	businesses := new(mocks.MockBusinessStore)
	cache := new(mocks.MockReportCacheRepo)
	svc := newReturnService(invoices, parties, businesses, cache)

	businessID := uuid.New()
	businesses.On("GetProfile", mock.Anything, businessID, testToken).Return(regularProfile(businessID), nil)

	cache.On("Get", mock.Anything, businessID, domain.ReportGSTR1, "122024").Return(&domain.GeneratedReport{
		Payload:     []byte(`{"gstin":"stale"}`),
		GeneratedAt: time.Now().UTC().Add(-2 * time.Hour),
	}, nil)
	cache.On("Upsert", mock.Anything, mock.Anything).Return(nil)
	invoices.On("ListByDateRange", mock.Anything, businessID, mock.Anything, mock.Anything, testToken).
		Return([]domain.Invoice{}, nil)
	parties.On("GetByGSTINs", mock.Anything, businessID, mock.Anything, testToken).
		Return(map[string]*domain.Party{}, nil)

	report, err := svc.GenerateGSTR1(context.Background(), businessID, "122024", testToken)

	require.NoError(t, err)
	assert.Equal(t, "27AAAAA0000A1Z5", report.GSTIN)
	invoices.AssertNumberOfCalls(t, "ListByDateRange", 1)
}

func TestReturnService_GenerateGSTR1_InvalidPeriod(t *testing.T) {
	svc := newReturnService(new(mocks.MockInvoiceStore), new(mocks.MockPartyStore), new(mocks.MockBusinessStore), new(mocks.MockReportCacheRepo))

	_, err := svc.GenerateGSTR1(context.Background(), uuid.New(), "132024", testToken)

	assert.True(t, domain.IsKind(err, domain.KindValidation))
}

func TestReturnService_GenerateGSTR1_NoGSTIN(t *testing.T) {
	invoices := new(mocks.MockInvoiceStore)
	businesses := new(mocks.MockBusinessStore)
	svc := newReturnService(invoices, new(mocks.MockPartyStore), businesses, new(mocks.MockReportCacheRepo))

	businessID := uuid.New()
	businesses.On("GetProfile", mock.Anything, businessID, testToken).
		Return(&domain.BusinessProfile{ID: businessID}, nil)

	_, err := svc.GenerateGSTR1(context.Background(), businessID, "122024", testToken)

	assert.True(t, domain.IsKind(err, domain.KindValidation))
	invoices.AssertNotCalled(t, "ListByDateRange", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestReturnService_GenerateGSTR3B(t *testing.T) {
	invoices := new(mocks.MockInvoiceStore)
	parties := new(mocks.MockPartyStore)
	businesses := new(mocks.MockBusinessStore)
	cache := new(mocks.MockReportCacheRepo)
	svc := newReturnService(invoices, parties, businesses, cache)

	businessID := uuid.New()
	businesses.On("GetProfile", mock.Anything, businessID, testToken).Return(regularProfile(businessID), nil)
	cache.On("Get", mock.Anything, businessID, domain.ReportGSTR3B, "122024").Return(nil, domain.NotFoundf("no cached report"))
	cache.On("Upsert", mock.Anything, mock.Anything).Return(nil)

	all := []domain.Invoice{
		{
			Type: domain.InvoiceTypeSale, Number: "S-1", Total: dec("118000"),
			Items: []domain.InvoiceItem{saleItem("100000", "18", "0", "9000", "9000")},
		},
		{
			// Exports are zero-rated and excluded from output tax.
			Type: domain.InvoiceTypeSale, Number: "S-EXP", IsExport: true, Total: dec("50000"),
			Items: []domain.InvoiceItem{saleItem("50000", "18", "9000", "0", "0")},
		},
		{
			Type: domain.InvoiceTypePurchase, Number: "P-1", Total: dec("59000"),
			Items: []domain.InvoiceItem{saleItem("50000", "18", "0", "4500", "4500")},
		},
		{
			Type: domain.InvoiceTypePurchase, Number: "P-RCM", IsReverseCharge: true, Total: dec("11800"),
			Items: []domain.InvoiceItem{saleItem("10000", "18", "1800", "0", "0")},
		},
	}
	invoices.On("ListByDateRange", mock.Anything, businessID, mock.Anything, mock.Anything, testToken).
		Return(all, nil)

	report, err := svc.GenerateGSTR3B(context.Background(), businessID, "122024", testToken)

	require.NoError(t, err)
	assert.Equal(t, 100000.0, report.OutputTax.TaxableValue)
	assert.Equal(t, 9000.0, report.OutputTax.CGST)
	assert.Equal(t, 9000.0, report.OutputTax.SGST)
	assert.Equal(t, 50000.0, report.ITC.TaxableValue)
	assert.Equal(t, 10000.0, report.ReverseCharge.TaxableValue)
	assert.Equal(t, 1800.0, report.ReverseCharge.IGST)
	// 18000 output - (9000 ITC + 1800 RCM credit) + 1800 RCM payable.
	assert.Equal(t, 9000.0, report.NetPayable)
	assert.Equal(t, "20-01-2025", report.DueDate)
	// The period is long past due, so the late fee sits at the cap.
	assert.Equal(t, 5000.0, report.LateFee)
	assert.Equal(t, 0.0, report.Interest)
	require.Len(t, report.OutwardSupplies, 1)
	assert.Equal(t, 18.0, report.OutwardSupplies[0].Rate)
}

func TestReturnService_GenerateGSTR3B_DueDateFollowsPeriodShape(t *testing.T) {
	invoices := new(mocks.MockInvoiceStore)
	parties := new(mocks.MockPartyStore)
	businesses := new(mocks.MockBusinessStore)
	cache := new(mocks.MockReportCacheRepo)
	svc := newReturnService(invoices, parties, businesses, cache)

	businessID := uuid.New()
	profile := regularProfile(businessID)
	// A quarterly filer requesting a monthly period still gets the monthly
	// due date: the period token, not the profile cadence, decides.
	profile.FilingFrequency = domain.FilingQuarterly
	businesses.On("GetProfile", mock.Anything, businessID, testToken).Return(profile, nil)
	cache.On("Get", mock.Anything, businessID, domain.ReportGSTR3B, "122024").Return(nil, domain.NotFoundf("no cached report"))
	cache.On("Upsert", mock.Anything, mock.Anything).Return(nil)
	invoices.On("ListByDateRange", mock.Anything, businessID, mock.Anything, mock.Anything, testToken).
		Return([]domain.Invoice{}, nil)

	report, err := svc.GenerateGSTR3B(context.Background(), businessID, "122024", testToken)

	require.NoError(t, err)
	assert.Equal(t, "20-01-2025", report.DueDate)
}

func TestReturnService_GenerateGSTR4(t *testing.T) {
	invoices := new(mocks.MockInvoiceStore)
	parties := new(mocks.MockPartyStore)
	businesses := new(mocks.MockBusinessStore)
	cache := new(mocks.MockReportCacheRepo)
	svc := newReturnService(invoices, parties, businesses, cache)

	businessID := uuid.New()
	profile := regularProfile(businessID)
	profile.Regime = domain.RegimeComposition
	profile.CompositionRate = dec("1")
	businesses.On("GetProfile", mock.Anything, businessID, testToken).Return(profile, nil)
	cache.On("Get", mock.Anything, businessID, domain.ReportGSTR4, "Q3-2024").Return(nil, domain.NotFoundf("no cached report"))
	cache.On("Upsert", mock.Anything, mock.Anything).Return(nil)

	sales := []domain.Invoice{
		{Type: domain.InvoiceTypeSale, Number: "C-1", PartyGSTIN: "29ABCDE1234F1Z5", Total: dec("60000")},
		{Type: domain.InvoiceTypeSale, Number: "C-2", PartyGSTIN: "29ABCDE1234F1Z5", Total: dec("40000")},
		{Type: domain.InvoiceTypeSale, Number: "C-3", Total: dec("25000")},
	}
	invoices.On("ListByDateRange", mock.Anything, businessID, mock.Anything, mock.Anything, testToken).
		Return(sales, nil)

	report, err := svc.GenerateGSTR4(context.Background(), businessID, "Q3-2024", testToken)

	require.NoError(t, err)
	assert.Equal(t, 125000.0, report.Turnover)
	assert.Equal(t, 25000.0, report.B2CValue)
	require.Len(t, report.B2B, 1)
	assert.Equal(t, "29ABCDE1234F1Z5", report.B2B[0].CounterpartyGSTIN)
	assert.Equal(t, 2, report.B2B[0].InvoiceCount)
	assert.Equal(t, 100000.0, report.B2B[0].Value)
	assert.Equal(t, 1.0, report.CompositionRate)
	assert.Equal(t, 1250.0, report.CompositionTax)
	assert.Equal(t, "18-10-2024", report.DueDate)
}

func TestReturnService_GenerateGSTR4_MonthlyPeriodRejected(t *testing.T) {
	svc := newReturnService(new(mocks.MockInvoiceStore), new(mocks.MockPartyStore), new(mocks.MockBusinessStore), new(mocks.MockReportCacheRepo))

	_, err := svc.GenerateGSTR4(context.Background(), uuid.New(), "122024", testToken)

	assert.True(t, domain.IsKind(err, domain.KindValidation))
}

func TestReturnService_GenerateGSTR4_NotComposition(t *testing.T) {
	businesses := new(mocks.MockBusinessStore)
	svc := newReturnService(new(mocks.MockInvoiceStore), new(mocks.MockPartyStore), businesses, new(mocks.MockReportCacheRepo))

	businessID := uuid.New()
	businesses.On("GetProfile", mock.Anything, businessID, testToken).Return(regularProfile(businessID), nil)

	_, err := svc.GenerateGSTR4(context.Background(), businessID, "Q3-2024", testToken)

	assert.True(t, domain.IsKind(err, domain.KindValidation))
}

func TestReturnService_GenerateGSTR1_CDNR(t *testing.T) {
	invoices := new(mocks.MockInvoiceStore)
	parties := new(mocks.MockPartyStore)
	businesses := new(mocks.MockBusinessStore)
	cache := new(mocks.MockReportCacheRepo)
	svc := newReturnService(invoices, parties, businesses, cache)

	businessID := uuid.New()
	businesses.On("GetProfile", mock.Anything, businessID, testToken).Return(regularProfile(businessID), nil)
	cache.On("Get", mock.Anything, businessID, domain.ReportGSTR1, "122024").Return(nil, domain.NotFoundf("no cached report"))
	cache.On("Upsert", mock.Anything, mock.Anything).Return(nil)
	parties.On("GetByGSTINs", mock.Anything, businessID, mock.Anything, testToken).
		Return(map[string]*domain.Party{}, nil)

	origDate := time.Date(2024, 11, 10, 0, 0, 0, 0, time.UTC)
	all := []domain.Invoice{
		{
			Type: domain.InvoiceTypeCreditNote, Number: "CN-1", PartyGSTIN: "29ABCDE1234F1Z5",
			OriginalNumber: "INV-001", OriginalDate: &origDate, Total: dec("1180"),
			Date:  time.Date(2024, 12, 4, 0, 0, 0, 0, time.UTC),
			Items: []domain.InvoiceItem{saleItem("1000", "18", "0", "90", "90")},
		},
		{
			// A note without an original invoice reference is not reportable.
			Type: domain.InvoiceTypeDebitNote, Number: "DN-ORPHAN", PartyGSTIN: "29ABCDE1234F1Z5",
			Total: dec("590"), Date: time.Date(2024, 12, 6, 0, 0, 0, 0, time.UTC),
			Items: []domain.InvoiceItem{saleItem("500", "18", "0", "45", "45")},
		},
	}
	invoices.On("ListByDateRange", mock.Anything, businessID, mock.Anything, mock.Anything, testToken).
		Return(all, nil)

	report, err := svc.GenerateGSTR1(context.Background(), businessID, "122024", testToken)

	require.NoError(t, err)
	require.Len(t, report.CDNR, 1)
	note := report.CDNR[0]
	assert.Equal(t, "C", note.NoteType)
	assert.Equal(t, "CN-1", note.NoteNumber)
	assert.Equal(t, "INV-001", note.OriginalNumber)
	assert.Equal(t, "10-11-2024", note.OriginalDate)
	assert.Equal(t, 1180.0, note.Value)
}
