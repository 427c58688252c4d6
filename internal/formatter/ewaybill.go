package formatter

import (
	"gstsuite/internal/domain"
	"gstsuite/internal/port"
	"gstsuite/internal/tax"
)

// TransportInput carries the optional transport details supplied by the caller
// when generating an e-way bill.
type TransportInput struct {
	Mode          string
	Distance      string
	TransporterID string
	DocNo         string
	DocDate       string
	VehicleNo     string
	VehicleType   string
}

// EWayBill builds the e-way-bill generation payload for an invoice.
// Outward supply for sales; inward for purchases.
func EWayBill(inv *domain.Invoice, business *domain.BusinessProfile, party *domain.Party, transport *TransportInput) *port.EWayBillPayload {
	supplyType := "O"
	if inv.Type == domain.InvoiceTypePurchase {
		supplyType = "I"
	}

	var totals tax.Totals
	items := make([]port.EWayBillItem, 0, len(inv.Items))
	for _, item := range inv.Items {
		totals.Add(item)
		rate, _ := item.TaxRate.Float64()
		igstRate, cgstRate, sgstRate := 0.0, 0.0, 0.0
		if inv.IsInterState {
			igstRate = rate
		} else {
			cgstRate = rate / 2
			sgstRate = rate / 2
		}
		items = append(items, port.EWayBillItem{
			ProductName:   item.Description,
			HSNCode:       item.HSNCode,
			Quantity:      tax.Round2F(item.Quantity),
			QtyUnit:       UnitCode(item.Unit),
			TaxableAmount: tax.Round2F(item.TaxableValue),
			IgstRate:      igstRate,
			CgstRate:      cgstRate,
			SgstRate:      sgstRate,
		})
	}

	payload := &port.EWayBillPayload{
		UserGstin:     business.GSTIN,
		SupplyType:    supplyType,
		SubSupplyType: "1", // supply
		DocType:       docType(inv.Type),
		DocNo:         inv.Number,
		DocDate:       inv.Date.Format(GovDateFormat),
		FromGstin:     business.GSTIN,
		FromTrdName:   business.LegalName,
		FromAddr1:     business.Address,
		FromPlace:     business.Place,
		FromPincode:   business.Pincode,
		FromStateCode: business.StateCode,
		ToGstin:       buyerGstin(inv, party),
		ToTrdName:     buyerName(inv, party),
		TotalValue:    tax.Round2F(totals.Taxable),
		TotInvValue:   tax.Round2F(totals.Taxable.Add(totals.Tax())),
		IgstValue:     tax.Round2F(totals.IGST),
		CgstValue:     tax.Round2F(totals.CGST),
		SgstValue:     tax.Round2F(totals.SGST),
		CessValue:     tax.Round2F(totals.Cess),
		ItemList:      items,
	}

	if party != nil {
		payload.ToAddr1 = party.Address
		payload.ToPlace = party.Place
		payload.ToPincode = party.Pincode
		payload.ToStateCode = party.StateCode
	}

	if transport != nil {
		payload.TransMode = transport.Mode
		payload.TransDistance = transport.Distance
		payload.TransporterID = transport.TransporterID
		payload.TransDocNo = transport.DocNo
		payload.TransDocDate = transport.DocDate
		payload.VehicleNo = transport.VehicleNo
		payload.VehicleType = transport.VehicleType
	}

	return payload
}
