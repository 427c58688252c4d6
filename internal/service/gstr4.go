package service

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"gstsuite/internal/domain"
	"gstsuite/internal/formatter"
	"gstsuite/internal/period"
	"gstsuite/internal/tax"
)

var oneHundred = decimal.NewFromInt(100)

// GenerateGSTR4 builds the composition-scheme quarterly return.
func (s *returnService) GenerateGSTR4(ctx context.Context, businessID uuid.UUID, periodToken, authToken string) (*domain.Gstr4Report, error) {
	p, err := period.Parse(periodToken)
	if err != nil {
		return nil, err
	}
	if !p.Quarterly {
		return nil, domain.Validationf("GSTR-4 is a quarterly return; got period %q", periodToken)
	}
	profile, err := s.resolveBusiness(ctx, businessID, authToken)
	if err != nil {
		return nil, err
	}
	if profile.Regime != domain.RegimeComposition {
		return nil, domain.Validationf("business %s is not under the composition regime", businessID)
	}

	var cachedReport domain.Gstr4Report
	if s.cached(ctx, businessID, domain.ReportGSTR4, p.Token, &cachedReport) {
		return &cachedReport, nil
	}

	invoices, err := s.invoices.ListByDateRange(ctx, businessID, p.Start, p.End, authToken)
	if err != nil {
		return nil, err
	}
	sales := tax.FilterByType(invoices, domain.InvoiceTypeSale)

	var turnover, b2cValue decimal.Decimal
	type b2bAcc struct {
		count int
		value decimal.Decimal
	}
	byGSTIN := map[string]*b2bAcc{}
	for _, inv := range sales {
		turnover = turnover.Add(inv.Total)
		if inv.PartyGSTIN == "" {
			b2cValue = b2cValue.Add(inv.Total)
			continue
		}
		acc := byGSTIN[inv.PartyGSTIN]
		if acc == nil {
			acc = &b2bAcc{}
			byGSTIN[inv.PartyGSTIN] = acc
		}
		acc.count++
		acc.value = acc.value.Add(inv.Total)
	}

	b2b := make([]domain.Gstr4B2BRow, 0, len(byGSTIN))
	for gstin, acc := range byGSTIN {
		b2b = append(b2b, domain.Gstr4B2BRow{
			CounterpartyGSTIN: gstin,
			InvoiceCount:      acc.count,
			Value:             tax.Round2F(acc.value),
		})
	}
	sort.Slice(b2b, func(i, j int) bool { return b2b[i].CounterpartyGSTIN < b2b[j].CounterpartyGSTIN })

	compositionTax := turnover.Mul(profile.CompositionRate).Div(oneHundred)

	dueDate := gstr4DueDate(p)
	now := s.now().UTC()

	report := &domain.Gstr4Report{
		GSTIN:           profile.GSTIN,
		ReturnPeriod:    p.Token,
		Turnover:        tax.Round2F(turnover),
		B2B:             b2b,
		B2CValue:        tax.Round2F(b2cValue),
		CompositionRate: tax.Round2F(profile.CompositionRate),
		CompositionTax:  tax.Round2F(compositionTax),
		DueDate:         formatter.FormatGovDate(dueDate),
		LateFee:         tax.Round2F(lateFee(dueDate, now, gstr4LateFeePerDay)),
		Interest:        tax.Round2F(lateInterest(dueDate, now)),
	}

	s.saveReport(ctx, businessID, domain.ReportGSTR4, p.Token, report)
	return report, nil
}
