package tax

import (
	"github.com/shopspring/decimal"

	"gstsuite/internal/domain"
)

// B2CLargeThreshold is the invoice total at or above which a B2C sale is
// reported per-invoice rather than aggregated.
var B2CLargeThreshold = decimal.NewFromInt(250000)

// SaleClassification buckets sale invoices into the GSTR-1 sections.
type SaleClassification struct {
	Export   []domain.Invoice
	B2B      map[string][]domain.Invoice // keyed by counterparty GSTIN
	B2CLarge []domain.Invoice
	B2CSmall []domain.Invoice
}

// ClassifySales splits sale invoices into export, B2B (counterparty has a
// GSTIN), B2C large (total >= threshold) and B2C small buckets. Export wins
// over everything; B2B wins over B2C.
func ClassifySales(invoices []domain.Invoice) SaleClassification {
	c := SaleClassification{B2B: map[string][]domain.Invoice{}}
	for _, inv := range invoices {
		switch {
		case inv.IsExport:
			c.Export = append(c.Export, inv)
		case inv.PartyGSTIN != "":
			c.B2B[inv.PartyGSTIN] = append(c.B2B[inv.PartyGSTIN], inv)
		case inv.Total.GreaterThanOrEqual(B2CLargeThreshold):
			c.B2CLarge = append(c.B2CLarge, inv)
		default:
			c.B2CSmall = append(c.B2CSmall, inv)
		}
	}
	return c
}

// FilterByType returns the invoices matching any of the given types.
func FilterByType(invoices []domain.Invoice, types ...domain.InvoiceType) []domain.Invoice {
	var out []domain.Invoice
	for _, inv := range invoices {
		for _, t := range types {
			if inv.Type == t {
				out = append(out, inv)
				break
			}
		}
	}
	return out
}
