// Package tax implements rate-wise aggregation and sale classification for
// statutory returns. All arithmetic uses decimal.Decimal and every figure is
// rounded to 2 decimals at the point of aggregation so that row-level and
// summary totals reconcile exactly.
package tax

import (
	"sort"

	"github.com/shopspring/decimal"

	"gstsuite/internal/domain"
)

// UnknownPlaceOfSupply is substituted for invoices lacking a place-of-supply.
const UnknownPlaceOfSupply = "Unknown"

// Round2 rounds to 2 decimals, half away from zero.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// Round2F rounds to 2 decimals and returns a float64 for report payloads.
func Round2F(d decimal.Decimal) float64 {
	f, _ := d.Round(2).Float64()
	return f
}

// Totals accumulates tax components during aggregation.
type Totals struct {
	Taxable decimal.Decimal
	IGST    decimal.Decimal
	CGST    decimal.Decimal
	SGST    decimal.Decimal
	Cess    decimal.Decimal
}

func (t *Totals) Add(item domain.InvoiceItem) {
	t.Taxable = t.Taxable.Add(item.TaxableValue)
	t.IGST = t.IGST.Add(item.IGST)
	t.CGST = t.CGST.Add(item.CGST)
	t.SGST = t.SGST.Add(item.SGST)
	t.Cess = t.Cess.Add(item.Cess)
}

func (t *Totals) AddTotals(o Totals) {
	t.Taxable = t.Taxable.Add(o.Taxable)
	t.IGST = t.IGST.Add(o.IGST)
	t.CGST = t.CGST.Add(o.CGST)
	t.SGST = t.SGST.Add(o.SGST)
	t.Cess = t.Cess.Add(o.Cess)
}

// Tax returns the sum of the tax components, excluding the taxable value.
func (t Totals) Tax() decimal.Decimal {
	return t.IGST.Add(t.CGST).Add(t.SGST).Add(t.Cess)
}

// Rounded converts the accumulated totals to a 2-decimal payload block.
func (t Totals) Rounded() domain.TaxAmounts {
	return domain.TaxAmounts{
		TaxableValue: Round2F(t.Taxable),
		IGST:         Round2F(t.IGST),
		CGST:         Round2F(t.CGST),
		SGST:         Round2F(t.SGST),
		Cess:         Round2F(t.Cess),
	}
}

// ItemTotals sums the tax components of all items on an invoice.
func ItemTotals(items []domain.InvoiceItem) Totals {
	var t Totals
	for _, item := range items {
		t.Add(item)
	}
	return t
}

// PlaceOfSupply returns the invoice's place-of-supply, defaulting to Unknown.
func PlaceOfSupply(inv *domain.Invoice) string {
	if inv.PlaceOfSupply == "" {
		return UnknownPlaceOfSupply
	}
	return inv.PlaceOfSupply
}

// RateRows aggregates one invoice's items by tax rate, producing the rate-wise
// lines reported inside a GSTR-1 invoice entry. Rows are sorted by rate.
func RateRows(items []domain.InvoiceItem) []domain.Gstr1ItemRow {
	byRate := map[string]*Totals{}
	rates := map[string]decimal.Decimal{}
	for _, item := range items {
		key := item.TaxRate.StringFixed(2)
		if byRate[key] == nil {
			byRate[key] = &Totals{}
			rates[key] = item.TaxRate
		}
		byRate[key].Add(item)
	}

	rows := make([]domain.Gstr1ItemRow, 0, len(byRate))
	for key, t := range byRate {
		rate, _ := rates[key].Float64()
		rows = append(rows, domain.Gstr1ItemRow{Rate: rate, TaxAmounts: t.Rounded()})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Rate < rows[j].Rate })
	return rows
}

// RateWise aggregates all items of the given invoices by tax rate.
// Rows are sorted by rate for deterministic payloads.
func RateWise(invoices []domain.Invoice) []domain.RateRow {
	byRate := map[string]*Totals{}
	rates := map[string]decimal.Decimal{}
	for _, inv := range invoices {
		for _, item := range inv.Items {
			key := item.TaxRate.StringFixed(2)
			if byRate[key] == nil {
				byRate[key] = &Totals{}
				rates[key] = item.TaxRate
			}
			byRate[key].Add(item)
		}
	}

	rows := make([]domain.RateRow, 0, len(byRate))
	for key, t := range byRate {
		rate, _ := rates[key].Float64()
		rows = append(rows, domain.RateRow{Rate: rate, TaxAmounts: t.Rounded()})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Rate < rows[j].Rate })
	return rows
}

// POSRateWise aggregates invoices by place-of-supply and tax rate, the shape
// of the B2C-small section. Rows are sorted by (pos, rate).
func POSRateWise(invoices []domain.Invoice) []domain.Gstr1B2CSRow {
	type key struct {
		pos  string
		rate string
	}
	byKey := map[key]*Totals{}
	rates := map[key]decimal.Decimal{}
	for _, inv := range invoices {
		pos := PlaceOfSupply(&inv)
		for _, item := range inv.Items {
			k := key{pos: pos, rate: item.TaxRate.StringFixed(2)}
			if byKey[k] == nil {
				byKey[k] = &Totals{}
				rates[k] = item.TaxRate
			}
			byKey[k].Add(item)
		}
	}

	rows := make([]domain.Gstr1B2CSRow, 0, len(byKey))
	for k, t := range byKey {
		rate, _ := rates[k].Float64()
		rows = append(rows, domain.Gstr1B2CSRow{
			PlaceOfSupply: k.pos,
			Rate:          rate,
			TaxAmounts:    t.Rounded(),
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].PlaceOfSupply != rows[j].PlaceOfSupply {
			return rows[i].PlaceOfSupply < rows[j].PlaceOfSupply
		}
		return rows[i].Rate < rows[j].Rate
	})
	return rows
}

// AdvanceRows aggregates advance-receipt invoices by place-of-supply and rate.
func AdvanceRows(invoices []domain.Invoice) []domain.Gstr1AdvanceRow {
	type key struct {
		pos  string
		rate string
	}
	byKey := map[key]*Totals{}
	rates := map[key]decimal.Decimal{}
	for _, inv := range invoices {
		pos := PlaceOfSupply(&inv)
		for _, item := range inv.Items {
			k := key{pos: pos, rate: item.TaxRate.StringFixed(2)}
			if byKey[k] == nil {
				byKey[k] = &Totals{}
				rates[k] = item.TaxRate
			}
			byKey[k].Add(item)
		}
	}

	rows := make([]domain.Gstr1AdvanceRow, 0, len(byKey))
	for k, t := range byKey {
		rate, _ := rates[k].Float64()
		rows = append(rows, domain.Gstr1AdvanceRow{
			PlaceOfSupply: k.pos,
			Rate:          rate,
			AdvanceAmount: Round2F(t.Taxable),
			IGST:          Round2F(t.IGST),
			CGST:          Round2F(t.CGST),
			SGST:          Round2F(t.SGST),
			Cess:          Round2F(t.Cess),
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].PlaceOfSupply != rows[j].PlaceOfSupply {
			return rows[i].PlaceOfSupply < rows[j].PlaceOfSupply
		}
		return rows[i].Rate < rows[j].Rate
	})
	return rows
}

// HSNWise builds the HSN-wise summary, grouping items by HSN code and rate,
// summing quantity and each tax component. Items without an HSN are skipped.
func HSNWise(invoices []domain.Invoice) []domain.Gstr1HSNRow {
	type key struct {
		hsn  string
		rate string
	}
	type acc struct {
		totals Totals
		qty    decimal.Decimal
		unit   string
		rate   decimal.Decimal
	}
	byKey := map[key]*acc{}
	for _, inv := range invoices {
		for _, item := range inv.Items {
			if item.HSNCode == "" {
				continue
			}
			k := key{hsn: item.HSNCode, rate: item.TaxRate.StringFixed(2)}
			a := byKey[k]
			if a == nil {
				a = &acc{unit: item.Unit, rate: item.TaxRate}
				byKey[k] = a
			}
			a.totals.Add(item)
			a.qty = a.qty.Add(item.Quantity)
		}
	}

	rows := make([]domain.Gstr1HSNRow, 0, len(byKey))
	for k, a := range byKey {
		rate, _ := a.rate.Float64()
		rows = append(rows, domain.Gstr1HSNRow{
			HSNCode:    k.hsn,
			Unit:       a.unit,
			Quantity:   Round2F(a.qty),
			Rate:       rate,
			TaxAmounts: a.totals.Rounded(),
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].HSNCode != rows[j].HSNCode {
			return rows[i].HSNCode < rows[j].HSNCode
		}
		return rows[i].Rate < rows[j].Rate
	})
	return rows
}

// NilSummary sums nil-rated, exempted and non-GST supplies over all items of
// the given invoices. Classification is heuristic, preserved from the original
// system: a 0%-rate item with an HSN is nil-rated; without an HSN it is
// exempted when it also carries no tax components, otherwise non-GST.
func NilSummary(invoices []domain.Invoice) domain.Gstr1NilSummary {
	var nilRated, exempted, nonGST decimal.Decimal
	for _, inv := range invoices {
		for _, item := range inv.Items {
			if !item.TaxRate.IsZero() {
				continue
			}
			switch {
			case item.HSNCode != "":
				nilRated = nilRated.Add(item.TaxableValue)
			case item.IGST.IsZero() && item.CGST.IsZero() && item.SGST.IsZero() && item.Cess.IsZero():
				exempted = exempted.Add(item.TaxableValue)
			default:
				nonGST = nonGST.Add(item.TaxableValue)
			}
		}
	}
	return domain.Gstr1NilSummary{
		NilRated: Round2F(nilRated),
		Exempted: Round2F(exempted),
		NonGST:   Round2F(nonGST),
	}
}
