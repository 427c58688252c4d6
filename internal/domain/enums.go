package domain

// InvoiceType represents the kind of invoice held by the invoice store.
type InvoiceType string

const (
	InvoiceTypeSale       InvoiceType = "sale"
	InvoiceTypePurchase   InvoiceType = "purchase"
	InvoiceTypeCreditNote InvoiceType = "credit_note"
	InvoiceTypeDebitNote  InvoiceType = "debit_note"
	InvoiceTypeAdvance    InvoiceType = "advance"
)

// ReportType identifies a statutory return form.
type ReportType string

const (
	ReportGSTR1  ReportType = "gstr1"
	ReportGSTR3B ReportType = "gstr3b"
	ReportGSTR4  ReportType = "gstr4"
)

// GSTRegime is the business's registration scheme.
type GSTRegime string

const (
	RegimeRegular     GSTRegime = "regular"
	RegimeComposition GSTRegime = "composition"
)

// FilingFrequency is the business's declared GSTR filing cadence, carried on
// the profile for display. Due dates are derived from the requested period's
// shape, not from this field.
type FilingFrequency string

const (
	FilingMonthly   FilingFrequency = "monthly"
	FilingQuarterly FilingFrequency = "quarterly"
)

// ImportType distinguishes the two government statement variants.
type ImportType string

const (
	ImportGSTR2A ImportType = "gstr2a"
	ImportGSTR2B ImportType = "gstr2b"
)

// MatchStatus classifies a reconciliation record. The fourth category,
// "extra", is derived at read time from unclaimed internal purchases and
// is never persisted.
type MatchStatus string

const (
	MatchMatched    MatchStatus = "matched"
	MatchMissing    MatchStatus = "missing"
	MatchMismatched MatchStatus = "mismatched"
)

// EInvoiceStatus is the e-invoice registration request state machine.
type EInvoiceStatus string

const (
	EInvoicePending   EInvoiceStatus = "pending"
	EInvoiceSuccess   EInvoiceStatus = "success"
	EInvoiceFailed    EInvoiceStatus = "failed"
	EInvoiceCancelled EInvoiceStatus = "cancelled"
)

// EWayBillStatus is the e-way-bill registration request state machine.
type EWayBillStatus string

const (
	EWayBillPending   EWayBillStatus = "pending"
	EWayBillGenerated EWayBillStatus = "generated"
	EWayBillFailed    EWayBillStatus = "failed"
	EWayBillCancelled EWayBillStatus = "cancelled"
)
