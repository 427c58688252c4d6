package port

// Government-mandated payload schemas. Field names must be preserved exactly
// for interoperability with real providers; do not rename tags.

// EInvoiceTranDtls is the transaction detail block of the e-invoice schema.
type EInvoiceTranDtls struct {
	TaxSch string `json:"TaxSch"`
	SupTyp string `json:"SupTyp"`
	RegRev string `json:"RegRev"`
}

// EInvoiceDocDtls identifies the source document.
type EInvoiceDocDtls struct {
	Typ string `json:"Typ"`
	No  string `json:"No"`
	Dt  string `json:"Dt"` // DD-MM-YYYY
}

// EInvoiceParty is the seller/buyer detail block.
type EInvoiceParty struct {
	Gstin string `json:"Gstin"`
	LglNm string `json:"LglNm"`
	Pos   string `json:"Pos,omitempty"`
	Addr1 string `json:"Addr1"`
	Loc   string `json:"Loc"`
	Pin   string `json:"Pin"`
	Stcd  string `json:"Stcd"`
}

// EInvoiceItem is one ItemList entry.
type EInvoiceItem struct {
	SlNo       string  `json:"SlNo"`
	PrdDesc    string  `json:"PrdDesc"`
	IsServc    string  `json:"IsServc"`
	HsnCd      string  `json:"HsnCd"`
	Qty        float64 `json:"Qty"`
	Unit       string  `json:"Unit"`
	UnitPrice  float64 `json:"UnitPrice"`
	TotAmt     float64 `json:"TotAmt"`
	AssAmt     float64 `json:"AssAmt"`
	GstRt      float64 `json:"GstRt"`
	IgstAmt    float64 `json:"IgstAmt"`
	CgstAmt    float64 `json:"CgstAmt"`
	SgstAmt    float64 `json:"SgstAmt"`
	CesAmt     float64 `json:"CesAmt"`
	TotItemVal float64 `json:"TotItemVal"`
}

// EInvoiceValDtls carries the document value totals.
type EInvoiceValDtls struct {
	AssVal    float64 `json:"AssVal"`
	IgstVal   float64 `json:"IgstVal"`
	CgstVal   float64 `json:"CgstVal"`
	SgstVal   float64 `json:"SgstVal"`
	CesVal    float64 `json:"CesVal"`
	TotInvVal float64 `json:"TotInvVal"`
}

// EInvoicePayDtls is the optional payment detail block.
type EInvoicePayDtls struct {
	Nm       string  `json:"Nm,omitempty"`
	Mode     string  `json:"Mode,omitempty"`
	PayTrm   string  `json:"PayTrm,omitempty"`
	PaidAmt  float64 `json:"PaidAmt,omitempty"`
	PaymtDue float64 `json:"PaymtDue,omitempty"`
}

// EInvoiceExpDtls is the optional export detail block.
type EInvoiceExpDtls struct {
	ShipBNo string `json:"ShipBNo,omitempty"`
	ShipBDt string `json:"ShipBDt,omitempty"`
	Port    string `json:"Port,omitempty"`
	ForCur  string `json:"ForCur,omitempty"`
	CntCode string `json:"CntCode,omitempty"`
}

// EInvoicePayload is the full e-invoice registration payload.
type EInvoicePayload struct {
	Version    string           `json:"Version"`
	TranDtls   EInvoiceTranDtls `json:"TranDtls"`
	DocDtls    EInvoiceDocDtls  `json:"DocDtls"`
	SellerDtls EInvoiceParty    `json:"SellerDtls"`
	BuyerDtls  EInvoiceParty    `json:"BuyerDtls"`
	ItemList   []EInvoiceItem   `json:"ItemList"`
	ValDtls    EInvoiceValDtls  `json:"ValDtls"`
	PayDtls    *EInvoicePayDtls `json:"PayDtls,omitempty"`
	ExpDtls    *EInvoiceExpDtls `json:"ExpDtls,omitempty"`
}

// EWayBillItem is one itemList entry of the e-way-bill schema.
type EWayBillItem struct {
	ProductName   string  `json:"productName"`
	ProductDesc   string  `json:"productDesc,omitempty"`
	HSNCode       string  `json:"hsnCode"`
	Quantity      float64 `json:"quantity"`
	QtyUnit       string  `json:"qtyUnit"`
	TaxableAmount float64 `json:"taxableAmount"`
	IgstRate      float64 `json:"igstRate"`
	CgstRate      float64 `json:"cgstRate"`
	SgstRate      float64 `json:"sgstRate"`
	CessRate      float64 `json:"cessRate"`
}

// EWayBillPayload is the full e-way-bill generation payload.
type EWayBillPayload struct {
	UserGstin     string         `json:"userGstin"`
	SupplyType    string         `json:"supplyType"` // O = outward, I = inward
	SubSupplyType string         `json:"subSupplyType"`
	DocType       string         `json:"docType"`
	DocNo         string         `json:"docNo"`
	DocDate       string         `json:"docDate"` // DD-MM-YYYY
	FromGstin     string         `json:"fromGstin"`
	FromTrdName   string         `json:"fromTrdName"`
	FromAddr1     string         `json:"fromAddr1"`
	FromPlace     string         `json:"fromPlace"`
	FromPincode   string         `json:"fromPincode"`
	FromStateCode string         `json:"fromStateCode"`
	ToGstin       string         `json:"toGstin"`
	ToTrdName     string         `json:"toTrdName"`
	ToAddr1       string         `json:"toAddr1"`
	ToPlace       string         `json:"toPlace"`
	ToPincode     string         `json:"toPincode"`
	ToStateCode   string         `json:"toStateCode"`
	TotalValue    float64        `json:"totalValue"`
	TotInvValue   float64        `json:"totInvValue"`
	CgstValue     float64        `json:"cgstValue"`
	SgstValue     float64        `json:"sgstValue"`
	IgstValue     float64        `json:"igstValue"`
	CessValue     float64        `json:"cessValue"`
	TransMode     string         `json:"transMode,omitempty"`
	TransDistance string         `json:"transDistance,omitempty"`
	TransporterID string         `json:"transporterId,omitempty"`
	TransDocNo    string         `json:"transDocNo,omitempty"`
	TransDocDate  string         `json:"transDocDate,omitempty"`
	VehicleNo     string         `json:"vehicleNo,omitempty"`
	VehicleType   string         `json:"vehicleType,omitempty"`
	ItemList      []EWayBillItem `json:"itemList"`
}
