// Package formatter maps internal invoice records to the government-mandated
// e-invoice and e-way-bill payload schemas. All monetary fields are recomputed
// to 2-decimal precision from line data rather than copied from the upstream
// record, so an unrounded upstream value can never reach a submission.
package formatter

import (
	"strconv"
	"time"

	"gstsuite/internal/domain"
	"gstsuite/internal/port"
	"gstsuite/internal/tax"
)

// GovDateFormat is the portal's date layout.
const GovDateFormat = "02-01-2006"

const einvoiceVersion = "1.1"

// EInvoice builds the IRN registration payload for a sale invoice.
func EInvoice(inv *domain.Invoice, seller *domain.BusinessProfile, buyer *domain.Party) *port.EInvoicePayload {
	supTyp := "B2B"
	if inv.IsExport {
		supTyp = "EXP"
	}
	regRev := "N"
	if inv.IsReverseCharge {
		regRev = "Y"
	}

	payload := &port.EInvoicePayload{
		Version: einvoiceVersion,
		TranDtls: port.EInvoiceTranDtls{
			TaxSch: "GST",
			SupTyp: supTyp,
			RegRev: regRev,
		},
		DocDtls: port.EInvoiceDocDtls{
			Typ: docType(inv.Type),
			No:  inv.Number,
			Dt:  inv.Date.Format(GovDateFormat),
		},
		SellerDtls: port.EInvoiceParty{
			Gstin: seller.GSTIN,
			LglNm: seller.LegalName,
			Addr1: seller.Address,
			Loc:   seller.Place,
			Pin:   seller.Pincode,
			Stcd:  seller.StateCode,
		},
		BuyerDtls: port.EInvoiceParty{
			Gstin: buyerGstin(inv, buyer),
			LglNm: buyerName(inv, buyer),
			Pos:   tax.PlaceOfSupply(inv),
		},
	}
	if buyer != nil {
		payload.BuyerDtls.Addr1 = buyer.Address
		payload.BuyerDtls.Loc = buyer.Place
		payload.BuyerDtls.Pin = buyer.Pincode
		payload.BuyerDtls.Stcd = buyer.StateCode
	}

	var totals tax.Totals
	for i, item := range inv.Items {
		totals.Add(item)
		isService := "N"
		if len(item.HSNCode) >= 2 && item.HSNCode[:2] == "99" {
			isService = "Y"
		}
		lineTotal := item.TaxableValue.Add(item.IGST).Add(item.CGST).Add(item.SGST).Add(item.Cess)
		rate, _ := item.TaxRate.Float64()
		payload.ItemList = append(payload.ItemList, port.EInvoiceItem{
			SlNo:       strconv.Itoa(i + 1),
			PrdDesc:    item.Description,
			IsServc:    isService,
			HsnCd:      item.HSNCode,
			Qty:        tax.Round2F(item.Quantity),
			Unit:       UnitCode(item.Unit),
			UnitPrice:  tax.Round2F(item.UnitPrice),
			TotAmt:     tax.Round2F(item.TaxableValue),
			AssAmt:     tax.Round2F(item.TaxableValue),
			GstRt:      rate,
			IgstAmt:    tax.Round2F(item.IGST),
			CgstAmt:    tax.Round2F(item.CGST),
			SgstAmt:    tax.Round2F(item.SGST),
			CesAmt:     tax.Round2F(item.Cess),
			TotItemVal: tax.Round2F(lineTotal),
		})
	}

	payload.ValDtls = port.EInvoiceValDtls{
		AssVal:    tax.Round2F(totals.Taxable),
		IgstVal:   tax.Round2F(totals.IGST),
		CgstVal:   tax.Round2F(totals.CGST),
		SgstVal:   tax.Round2F(totals.SGST),
		CesVal:    tax.Round2F(totals.Cess),
		TotInvVal: tax.Round2F(totals.Taxable.Add(totals.Tax())),
	}

	// ExpDtls stays unset: the upstream invoice carries no shipping bill,
	// port, or currency data, and every field in the block is optional.

	return payload
}

func docType(t domain.InvoiceType) string {
	switch t {
	case domain.InvoiceTypeCreditNote:
		return "CRN"
	case domain.InvoiceTypeDebitNote:
		return "DBN"
	default:
		return "INV"
	}
}

func buyerGstin(inv *domain.Invoice, buyer *domain.Party) string {
	if buyer != nil && buyer.GSTIN != "" {
		return buyer.GSTIN
	}
	return inv.PartyGSTIN
}

func buyerName(inv *domain.Invoice, buyer *domain.Party) string {
	if buyer != nil && buyer.LegalName != "" {
		return buyer.LegalName
	}
	return inv.PartyName
}

// FormatGovDate renders t in the portal's DD-MM-YYYY layout.
func FormatGovDate(t time.Time) string {
	return t.Format(GovDateFormat)
}
