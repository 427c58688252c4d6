package service

import (
	"context"

	"github.com/google/uuid"

	"gstsuite/internal/domain"
	"gstsuite/internal/formatter"
	"gstsuite/internal/period"
	"gstsuite/internal/tax"
)

// GenerateGSTR3B builds the summary-liability return for the period.
func (s *returnService) GenerateGSTR3B(ctx context.Context, businessID uuid.UUID, periodToken, authToken string) (*domain.Gstr3bReport, error) {
	p, err := period.Parse(periodToken)
	if err != nil {
		return nil, err
	}
	profile, err := s.resolveBusiness(ctx, businessID, authToken)
	if err != nil {
		return nil, err
	}

	var cachedReport domain.Gstr3bReport
	if s.cached(ctx, businessID, domain.ReportGSTR3B, p.Token, &cachedReport) {
		return &cachedReport, nil
	}

	invoices, err := s.invoices.ListByDateRange(ctx, businessID, p.Start, p.End, authToken)
	if err != nil {
		return nil, err
	}

	sales := tax.FilterByType(invoices, domain.InvoiceTypeSale)
	purchases := tax.FilterByType(invoices, domain.InvoiceTypePurchase)

	// Output tax covers domestic outward supplies; exports are zero-rated.
	var outward []domain.Invoice
	for _, inv := range sales {
		if !inv.IsExport {
			outward = append(outward, inv)
		}
	}
	var outputTotals tax.Totals
	for _, inv := range outward {
		outputTotals.AddTotals(tax.ItemTotals(inv.Items))
	}

	// ITC from forward-charge purchases. All credit is currently treated as
	// eligible; there is no blocked-credit classification upstream.
	var itcTotals, rcmTotals tax.Totals
	for _, inv := range purchases {
		t := tax.ItemTotals(inv.Items)
		if inv.IsReverseCharge {
			rcmTotals.AddTotals(t)
		} else {
			itcTotals.AddTotals(t)
		}
	}

	// RCM tax is payable in cash and simultaneously claimable as ITC, so net
	// payable = output tax - (forward ITC + RCM ITC) + RCM payable.
	outputTax := tax.Round2(outputTotals.Tax())
	itcTax := tax.Round2(itcTotals.Tax())
	rcmTax := tax.Round2(rcmTotals.Tax())
	netPayable := outputTax.Sub(itcTax.Add(rcmTax)).Add(rcmTax)

	dueDate := gstr3bDueDate(p)
	now := s.now().UTC()

	report := &domain.Gstr3bReport{
		GSTIN:           profile.GSTIN,
		ReturnPeriod:    p.Token,
		OutwardSupplies: tax.RateWise(outward),
		OutputTax:       outputTotals.Rounded(),
		ITC:             itcTotals.Rounded(),
		ReverseCharge:   rcmTotals.Rounded(),
		NetPayable:      tax.Round2F(netPayable),
		DueDate:         formatter.FormatGovDate(dueDate),
		LateFee:         tax.Round2F(lateFee(dueDate, now, gstr3bLateFeePerDay)),
		Interest:        tax.Round2F(lateInterest(dueDate, now)),
	}

	s.saveReport(ctx, businessID, domain.ReportGSTR3B, p.Token, report)
	return report, nil
}
