package service

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"gstsuite/internal/domain"
	"gstsuite/internal/formatter"
	"gstsuite/internal/period"
	"gstsuite/internal/tax"
)

// GenerateGSTR1 builds the outward-supplies return for the period.
func (s *returnService) GenerateGSTR1(ctx context.Context, businessID uuid.UUID, periodToken, authToken string) (*domain.Gstr1Report, error) {
	p, err := period.Parse(periodToken)
	if err != nil {
		return nil, err
	}
	profile, err := s.resolveBusiness(ctx, businessID, authToken)
	if err != nil {
		return nil, err
	}

	var cachedReport domain.Gstr1Report
	if s.cached(ctx, businessID, domain.ReportGSTR1, p.Token, &cachedReport) {
		return &cachedReport, nil
	}

	invoices, err := s.invoices.ListByDateRange(ctx, businessID, p.Start, p.End, authToken)
	if err != nil {
		return nil, err
	}

	sales := tax.FilterByType(invoices, domain.InvoiceTypeSale)
	notes := tax.FilterByType(invoices, domain.InvoiceTypeCreditNote, domain.InvoiceTypeDebitNote)
	advances := tax.FilterByType(invoices, domain.InvoiceTypeAdvance)

	classified := tax.ClassifySales(sales)

	report := &domain.Gstr1Report{
		GSTIN:        profile.GSTIN,
		ReturnPeriod: p.Token,
		B2B:          s.buildB2B(ctx, businessID, classified.B2B, authToken),
		B2CLarge:     buildGstr1Invoices(classified.B2CLarge),
		B2CSmall:     tax.POSRateWise(classified.B2CSmall),
		Export:       buildGstr1Invoices(classified.Export),
		CDNR:         buildCDNR(notes),
		Advances:     tax.AdvanceRows(advances),
		NilSummary:   tax.NilSummary(sales),
		HSNSummary:   tax.HSNWise(sales),
	}

	s.saveReport(ctx, businessID, domain.ReportGSTR1, p.Token, report)
	return report, nil
}

// buildB2B assembles the B2B section, resolving counterparty legal names from
// the party store with an all-settle batch; a GSTIN with no resolvable party
// is still reported, just without a name.
func (s *returnService) buildB2B(ctx context.Context, businessID uuid.UUID, byGSTIN map[string][]domain.Invoice, authToken string) []domain.Gstr1B2BGroup {
	gstins := make([]string, 0, len(byGSTIN))
	for gstin := range byGSTIN {
		gstins = append(gstins, gstin)
	}
	sort.Strings(gstins)

	parties, err := s.parties.GetByGSTINs(ctx, businessID, gstins, authToken)
	if err != nil {
		parties = nil
	}

	groups := make([]domain.Gstr1B2BGroup, 0, len(gstins))
	for _, gstin := range gstins {
		group := domain.Gstr1B2BGroup{
			CounterpartyGSTIN: gstin,
			Invoices:          buildGstr1Invoices(byGSTIN[gstin]),
		}
		if party := parties[gstin]; party != nil {
			group.CounterpartyName = party.LegalName
		}
		groups = append(groups, group)
	}
	return groups
}

func buildGstr1Invoices(invoices []domain.Invoice) []domain.Gstr1Invoice {
	out := make([]domain.Gstr1Invoice, 0, len(invoices))
	for i := range invoices {
		inv := &invoices[i]
		out = append(out, domain.Gstr1Invoice{
			Number:        inv.Number,
			Date:          formatter.FormatGovDate(inv.Date),
			Value:         tax.Round2F(inv.Total),
			PlaceOfSupply: tax.PlaceOfSupply(inv),
			ReverseCharge: inv.IsReverseCharge,
			Items:         tax.RateRows(inv.Items),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out
}

// buildCDNR assembles the credit/debit note register. Only notes linked to an
// original invoice are reportable.
func buildCDNR(notes []domain.Invoice) []domain.Gstr1Note {
	out := make([]domain.Gstr1Note, 0, len(notes))
	for i := range notes {
		note := &notes[i]
		if note.OriginalNumber == "" {
			continue
		}
		noteType := "C"
		if note.Type == domain.InvoiceTypeDebitNote {
			noteType = "D"
		}
		entry := domain.Gstr1Note{
			CounterpartyGSTIN: note.PartyGSTIN,
			NoteType:          noteType,
			NoteNumber:        note.Number,
			NoteDate:          formatter.FormatGovDate(note.Date),
			OriginalNumber:    note.OriginalNumber,
			Value:             tax.Round2F(note.Total),
			Items:             tax.RateRows(note.Items),
		}
		if note.OriginalDate != nil {
			entry.OriginalDate = formatter.FormatGovDate(*note.OriginalDate)
		}
		out = append(out, entry)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].NoteNumber < out[j].NoteNumber })
	return out
}
