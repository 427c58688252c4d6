package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Invoice is the read-only view of an invoice served by the invoice store.
// The engine never mutates invoices.
type Invoice struct {
	ID              uuid.UUID       `json:"id"`
	BusinessID      uuid.UUID       `json:"business_id"`
	PartyID         *uuid.UUID      `json:"party_id"`
	PartyGSTIN      string          `json:"party_gstin"`
	PartyName       string          `json:"party_name"`
	Type            InvoiceType     `json:"type"`
	Number          string          `json:"number"`
	Date            time.Time       `json:"date"`
	PlaceOfSupply   string          `json:"place_of_supply"`
	IsInterState    bool            `json:"is_inter_state"`
	IsExport        bool            `json:"is_export"`
	IsReverseCharge bool            `json:"is_reverse_charge"`
	OriginalNumber  string          `json:"original_number"` // set on credit/debit notes
	OriginalDate    *time.Time      `json:"original_date"`
	TaxableValue    decimal.Decimal `json:"taxable_value"`
	TotalTax        decimal.Decimal `json:"total_tax"`
	Total           decimal.Decimal `json:"total"`
	Items           []InvoiceItem   `json:"items"`
}

// InvoiceItem is a single invoice line with per-line tax amounts.
type InvoiceItem struct {
	Description  string          `json:"description"`
	HSNCode      string          `json:"hsn_code"`
	Quantity     decimal.Decimal `json:"quantity"`
	Unit         string          `json:"unit"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	TaxRate      decimal.Decimal `json:"tax_rate"`
	TaxableValue decimal.Decimal `json:"taxable_value"`
	IGST         decimal.Decimal `json:"igst"`
	CGST         decimal.Decimal `json:"cgst"`
	SGST         decimal.Decimal `json:"sgst"`
	Cess         decimal.Decimal `json:"cess"`
}

// Party is the read-only counterparty record served by the party store.
type Party struct {
	ID        uuid.UUID `json:"id"`
	GSTIN     string    `json:"gstin"`
	LegalName string    `json:"legal_name"`
	Address   string    `json:"address"`
	Place     string    `json:"place"`
	Pincode   string    `json:"pincode"`
	StateCode string    `json:"state_code"`
}

// BusinessProfile is the read-only business record served by the business store.
type BusinessProfile struct {
	ID              uuid.UUID       `json:"id"`
	GSTIN           string          `json:"gstin"`
	LegalName       string          `json:"legal_name"`
	Address         string          `json:"address"`
	Place           string          `json:"place"`
	Pincode         string          `json:"pincode"`
	StateCode       string          `json:"state_code"`
	AnnualTurnover  decimal.Decimal `json:"annual_turnover"`
	Regime          GSTRegime       `json:"regime"`
	CompositionRate decimal.Decimal `json:"composition_rate"` // percent
	FilingFrequency FilingFrequency `json:"filing_frequency"`
}

// GstSettings is the engine-owned per-business GSP configuration.
// Credentials is an opaque encrypted blob; it is never exposed decrypted.
type GstSettings struct {
	ID              uuid.UUID `db:"id" json:"id"`
	BusinessID      uuid.UUID `db:"business_id" json:"business_id"`
	Provider        string    `db:"provider" json:"provider"`
	Credentials     string    `db:"credentials" json:"-"`
	ProviderBaseURL string    `db:"provider_base_url" json:"provider_base_url"`
	EInvoiceEnabled bool      `db:"einvoice_enabled" json:"einvoice_enabled"`
	EWayBillEnabled bool      `db:"ewaybill_enabled" json:"ewaybill_enabled"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time `db:"updated_at" json:"updated_at"`
}

// GeneratedReport caches a generated return keyed by (business, type, period).
type GeneratedReport struct {
	ID          uuid.UUID       `db:"id" json:"id"`
	BusinessID  uuid.UUID       `db:"business_id" json:"business_id"`
	ReportType  ReportType      `db:"report_type" json:"report_type"`
	Period      string          `db:"period" json:"period"`
	Payload     json.RawMessage `db:"payload" json:"payload"`
	GeneratedAt time.Time       `db:"generated_at" json:"generated_at"`
}

// Gstr2aImport records one logical statement import per (business, period, type).
// Re-import replaces counts and regenerates reconciliation records.
type Gstr2aImport struct {
	ID              uuid.UUID       `db:"id" json:"id"`
	BusinessID      uuid.UUID       `db:"business_id" json:"business_id"`
	Period          string          `db:"period" json:"period"`
	ImportType      ImportType      `db:"import_type" json:"import_type"`
	RawPayload      json.RawMessage `db:"raw_payload" json:"-"`
	ArchiveKey      string          `db:"archive_key" json:"archive_key"`
	TotalCount      int             `db:"total_count" json:"total_count"`
	MatchedCount    int             `db:"matched_count" json:"matched_count"`
	MissingCount    int             `db:"missing_count" json:"missing_count"`
	MismatchedCount int             `db:"mismatched_count" json:"mismatched_count"`
	ImportedBy      uuid.UUID       `db:"imported_by" json:"imported_by"`
	CreatedAt       time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time       `db:"updated_at" json:"updated_at"`
}

// ReconciliationRecord is one counterparty-reported invoice line from a
// GSTR-2A/2B statement, optionally linked to an internal purchase invoice.
type ReconciliationRecord struct {
	ID            uuid.UUID       `db:"id" json:"id"`
	ImportID      uuid.UUID       `db:"import_id" json:"import_id"`
	BusinessID    uuid.UUID       `db:"business_id" json:"business_id"`
	Period        string          `db:"period" json:"period"`
	SupplierGSTIN string          `db:"supplier_gstin" json:"supplier_gstin"`
	SupplierName  string          `db:"supplier_name" json:"supplier_name"`
	InvoiceNumber string          `db:"invoice_number" json:"invoice_number"`
	InvoiceDate   string          `db:"invoice_date" json:"invoice_date"`
	TaxableValue  decimal.Decimal `db:"taxable_value" json:"taxable_value"`
	IGST          decimal.Decimal `db:"igst" json:"igst"`
	CGST          decimal.Decimal `db:"cgst" json:"cgst"`
	SGST          decimal.Decimal `db:"sgst" json:"sgst"`
	Cess          decimal.Decimal `db:"cess" json:"cess"`
	Total         decimal.Decimal `db:"total" json:"total"`
	InvoiceID     *uuid.UUID      `db:"invoice_id" json:"invoice_id"`
	MatchStatus   MatchStatus     `db:"match_status" json:"match_status"`
	MatchDetail   string          `db:"match_detail" json:"match_detail"`
	IsManualMatch bool            `db:"is_manual_match" json:"is_manual_match"`
	CreatedAt     time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time       `db:"updated_at" json:"updated_at"`
}

// EInvoiceRequest is one IRN registration attempt for an invoice.
// Rows are updated in place and never deleted.
type EInvoiceRequest struct {
	ID            uuid.UUID      `db:"id" json:"id"`
	BusinessID    uuid.UUID      `db:"business_id" json:"business_id"`
	InvoiceID     uuid.UUID      `db:"invoice_id" json:"invoice_id"`
	Provider      string         `db:"provider" json:"provider"`
	Status        EInvoiceStatus `db:"status" json:"status"`
	IRN           string         `db:"irn" json:"irn"`
	AckNo         string         `db:"ack_no" json:"ack_no"`
	AckDate       string         `db:"ack_date" json:"ack_date"`
	SignedQRCode  string         `db:"signed_qr_code" json:"signed_qr_code"`
	SignedInvoice string         `db:"signed_invoice" json:"-"`
	ErrorCode     string         `db:"error_code" json:"error_code"`
	ErrorMessage  string         `db:"error_message" json:"error_message"`
	CreatedAt     time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time      `db:"updated_at" json:"updated_at"`
}

// EWayBillRequest is one e-way-bill generation attempt for an invoice.
// Rows are updated in place and never deleted.
type EWayBillRequest struct {
	ID            uuid.UUID      `db:"id" json:"id"`
	BusinessID    uuid.UUID      `db:"business_id" json:"business_id"`
	InvoiceID     uuid.UUID      `db:"invoice_id" json:"invoice_id"`
	Provider      string         `db:"provider" json:"provider"`
	Status        EWayBillStatus `db:"status" json:"status"`
	EWayBillNo    string         `db:"ewaybill_no" json:"ewaybill_no"`
	ValidUntil    *time.Time     `db:"valid_until" json:"valid_until"`
	VehicleNo     string         `db:"vehicle_no" json:"vehicle_no"`
	TransporterID string         `db:"transporter_id" json:"transporter_id"`
	TransMode     string         `db:"trans_mode" json:"trans_mode"`
	ErrorCode     string         `db:"error_code" json:"error_code"`
	ErrorMessage  string         `db:"error_message" json:"error_message"`
	CreatedAt     time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time      `db:"updated_at" json:"updated_at"`
}
