package domain

// Report payload types. These are the cached JSON shapes; every monetary
// field is rounded to 2 decimals before it lands here, so marshaling the
// same invoice snapshot always produces identical bytes.

// TaxAmounts is the recurring tax component block.
type TaxAmounts struct {
	TaxableValue float64 `json:"taxable_value"`
	IGST         float64 `json:"igst"`
	CGST         float64 `json:"cgst"`
	SGST         float64 `json:"sgst"`
	Cess         float64 `json:"cess"`
}

// RateRow is a tax summary line for a single rate.
type RateRow struct {
	Rate float64 `json:"rate"`
	TaxAmounts
}

// Gstr1ItemRow is a rate-wise line inside a reported invoice.
type Gstr1ItemRow struct {
	Rate float64 `json:"rate"`
	TaxAmounts
}

// Gstr1Invoice is a single invoice as reported in GSTR-1 sections.
type Gstr1Invoice struct {
	Number        string         `json:"inum"`
	Date          string         `json:"idt"`
	Value         float64        `json:"val"`
	PlaceOfSupply string         `json:"pos"`
	ReverseCharge bool           `json:"rchrg"`
	Items         []Gstr1ItemRow `json:"itms"`
}

// Gstr1B2BGroup groups B2B invoices under a counterparty GSTIN.
type Gstr1B2BGroup struct {
	CounterpartyGSTIN string         `json:"ctin"`
	CounterpartyName  string         `json:"cname,omitempty"`
	Invoices          []Gstr1Invoice `json:"inv"`
}

// Gstr1B2CSRow is an aggregated B2C-small row per place-of-supply and rate.
type Gstr1B2CSRow struct {
	PlaceOfSupply string  `json:"pos"`
	Rate          float64 `json:"rt"`
	TaxAmounts
}

// Gstr1Note is a credit/debit note entry in the CDNR section.
type Gstr1Note struct {
	CounterpartyGSTIN string         `json:"ctin"`
	NoteType          string         `json:"ntty"` // C or D
	NoteNumber        string         `json:"nt_num"`
	NoteDate          string         `json:"nt_dt"`
	OriginalNumber    string         `json:"inum"`
	OriginalDate      string         `json:"idt,omitempty"`
	Value             float64        `json:"val"`
	Items             []Gstr1ItemRow `json:"itms"`
}

// Gstr1AdvanceRow is an aggregated advance-receipt row per place-of-supply and rate.
type Gstr1AdvanceRow struct {
	PlaceOfSupply string  `json:"pos"`
	Rate          float64 `json:"rt"`
	AdvanceAmount float64 `json:"ad_amt"`
	IGST          float64 `json:"iamt"`
	CGST          float64 `json:"camt"`
	SGST          float64 `json:"samt"`
	Cess          float64 `json:"csamt"`
}

// Gstr1NilSummary is the nil-rated / exempted / non-GST supplies summary.
type Gstr1NilSummary struct {
	NilRated float64 `json:"nil_amt"`
	Exempted float64 `json:"expt_amt"`
	NonGST   float64 `json:"ngsup_amt"`
}

// Gstr1HSNRow is an HSN-wise summary row.
type Gstr1HSNRow struct {
	HSNCode  string  `json:"hsn_sc"`
	Unit     string  `json:"uqc"`
	Quantity float64 `json:"qty"`
	Rate     float64 `json:"rt"`
	TaxAmounts
}

// Gstr1Report is the outward-supplies return payload.
type Gstr1Report struct {
	GSTIN        string            `json:"gstin"`
	ReturnPeriod string            `json:"ret_period"`
	B2B          []Gstr1B2BGroup   `json:"b2b"`
	B2CLarge     []Gstr1Invoice    `json:"b2cl"`
	B2CSmall     []Gstr1B2CSRow    `json:"b2cs"`
	Export       []Gstr1Invoice    `json:"exp"`
	CDNR         []Gstr1Note       `json:"cdnr"`
	Advances     []Gstr1AdvanceRow `json:"at"`
	NilSummary   Gstr1NilSummary   `json:"nil"`
	HSNSummary   []Gstr1HSNRow     `json:"hsn"`
}

// Gstr3bReport is the summary-liability return payload.
type Gstr3bReport struct {
	GSTIN           string     `json:"gstin"`
	ReturnPeriod    string     `json:"ret_period"`
	OutwardSupplies []RateRow  `json:"outward_supplies"`
	OutputTax       TaxAmounts `json:"output_tax"`
	ITC             TaxAmounts `json:"itc"`
	ReverseCharge   TaxAmounts `json:"reverse_charge"`
	NetPayable      float64    `json:"net_payable"`
	DueDate         string     `json:"due_date"`
	LateFee         float64    `json:"late_fee"`
	Interest        float64    `json:"interest"`
}

// Gstr4B2BRow summarizes quarterly sales to a single GSTIN-bearing counterparty.
type Gstr4B2BRow struct {
	CounterpartyGSTIN string  `json:"ctin"`
	InvoiceCount      int     `json:"inv_count"`
	Value             float64 `json:"val"`
}

// Gstr4Report is the composition-scheme quarterly return payload.
type Gstr4Report struct {
	GSTIN           string        `json:"gstin"`
	ReturnPeriod    string        `json:"ret_period"`
	Turnover        float64       `json:"turnover"`
	B2B             []Gstr4B2BRow `json:"b2b"`
	B2CValue        float64       `json:"b2c_val"`
	CompositionRate float64       `json:"composition_rate"`
	CompositionTax  float64       `json:"composition_tax"`
	DueDate         string        `json:"due_date"`
	LateFee         float64       `json:"late_fee"`
	Interest        float64       `json:"interest"`
}
