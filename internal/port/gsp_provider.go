package port

import "context"

// GSPCredentials are the decrypted per-business credentials for a GSP account.
type GSPCredentials struct {
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
	Username     string `json:"username"`
	Password     string `json:"password"`
	GSTIN        string `json:"gstin"`
}

// IRNResult is the outcome of an e-invoice operation. Business-level
// rejections set Success=false with the provider's error code; only transport
// failures are returned as errors.
type IRNResult struct {
	Success       bool
	IRN           string
	AckNo         string
	AckDate       string
	SignedQRCode  string
	SignedInvoice string
	Status        string
	ErrorCode     string
	ErrorMessage  string
}

// EWayBillResult is the outcome of an e-way-bill operation.
type EWayBillResult struct {
	Success      bool
	EWayBillNo   string
	ValidUntil   string // DD-MM-YYYY HH:MM as issued by the portal
	Status       string
	ErrorCode    string
	ErrorMessage string
}

// EWayBillUpdateInput carries the mutable transport details of an e-way bill.
type EWayBillUpdateInput struct {
	EWayBillNo    string
	VehicleNo     string
	TransMode     string
	TransDocNo    string
	PlaceOfChange string
	StateOfChange string
	ReasonCode    string
	ReasonRemarks string
}

// GSPProvider is the uniform contract over interchangeable GST Suvidha
// Provider gateways. Implementations never return errors for business-level
// failures; those are carried in the result structs.
type GSPProvider interface {
	Name() string
	Authenticate(ctx context.Context) (string, error)
	GenerateIRN(ctx context.Context, payload *EInvoicePayload) (*IRNResult, error)
	CancelIRN(ctx context.Context, irn, reason string) (*IRNResult, error)
	GetIRNStatus(ctx context.Context, irn string) (*IRNResult, error)
	GenerateEWayBill(ctx context.Context, payload *EWayBillPayload) (*EWayBillResult, error)
	CancelEWayBill(ctx context.Context, ewbNo, reason string) (*EWayBillResult, error)
	UpdateEWayBill(ctx context.Context, input *EWayBillUpdateInput) (*EWayBillResult, error)
	GetEWayBillStatus(ctx context.Context, ewbNo string) (*EWayBillResult, error)
}
