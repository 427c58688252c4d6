// Package cleartax implements the GSP contract against the ClearTax gateway.
package cleartax

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"gstsuite/internal/gsp"
	"gstsuite/internal/port"
)

const defaultBaseURL = "https://einvoicing.internal.cleartax.co"

func init() {
	gsp.Register("cleartax", func(creds *port.GSPCredentials, baseURL string) (port.GSPProvider, error) {
		return NewProvider(creds, baseURL), nil
	})
}

// Provider implements port.GSPProvider using the ClearTax REST API.
// ClearTax authenticates per request with a static auth token, so
// Authenticate only validates that credentials are present.
type Provider struct {
	creds   *port.GSPCredentials
	baseURL string
	client  *http.Client
}

// NewProvider creates a ClearTax-backed provider.
func NewProvider(creds *port.GSPCredentials, baseURL string) *Provider {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Provider{
		creds:   creds,
		baseURL: baseURL,
		client:  &http.Client{Timeout: 60 * time.Second},
	}
}

func (p *Provider) Name() string { return "cleartax" }

func (p *Provider) Authenticate(_ context.Context) (string, error) {
	if p.creds.ClientSecret == "" {
		return "", fmt.Errorf("cleartax: missing auth token")
	}
	return p.creds.ClientSecret, nil
}

// govResponse is ClearTax's wrapper around the NIC response.
type govResponse struct {
	Success       string      `json:"Success"` // Y or N
	Irn           string      `json:"Irn"`
	AckNo         json.Number `json:"AckNo"`
	AckDt         string      `json:"AckDt"`
	SignedQRCode  string      `json:"SignedQRCode"`
	SignedInvoice string      `json:"SignedInvoice"`
	EwbNo         json.Number `json:"EwbNo"`
	EwbValidTill  string      `json:"EwbValidTill"`
	Status        string      `json:"Status"`
	ErrorDetails  []struct {
		ErrorCode    string `json:"error_code"`
		ErrorMessage string `json:"error_message"`
	} `json:"ErrorDetails"`
}

func (p *Provider) call(ctx context.Context, method, path string, payload interface{}) (*govResponse, error) {
	token, err := p.Authenticate(ctx)
	if err != nil {
		return nil, err
	}

	var bodyReader io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("cleartax: marshaling payload: %w", err)
		}
		bodyReader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, p.baseURL+path, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("cleartax: creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-cleartax-auth-token", token)
	req.Header.Set("gstin", p.creds.GSTIN)
	if p.creds.ClientID != "" {
		req.Header.Set("owner_id", p.creds.ClientID)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("cleartax: calling API: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("cleartax: reading response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("cleartax: API error (status %d): %s", resp.StatusCode, body)
	}

	var parsed struct {
		GovtResponse govResponse `json:"govt_response"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("cleartax: decoding response: %w", err)
	}
	return &parsed.GovtResponse, nil
}

func irnResult(g *govResponse) *port.IRNResult {
	if g.Success != "Y" {
		result := &port.IRNResult{Success: false}
		if len(g.ErrorDetails) > 0 {
			result.ErrorCode = g.ErrorDetails[0].ErrorCode
			result.ErrorMessage = g.ErrorDetails[0].ErrorMessage
		}
		return result
	}
	return &port.IRNResult{
		Success:       true,
		IRN:           g.Irn,
		AckNo:         g.AckNo.String(),
		AckDate:       g.AckDt,
		SignedQRCode:  g.SignedQRCode,
		SignedInvoice: g.SignedInvoice,
		Status:        g.Status,
	}
}

func ewbResult(g *govResponse) *port.EWayBillResult {
	if g.Success != "Y" {
		result := &port.EWayBillResult{Success: false}
		if len(g.ErrorDetails) > 0 {
			result.ErrorCode = g.ErrorDetails[0].ErrorCode
			result.ErrorMessage = g.ErrorDetails[0].ErrorMessage
		}
		return result
	}
	return &port.EWayBillResult{
		Success:    true,
		EWayBillNo: g.EwbNo.String(),
		ValidUntil: g.EwbValidTill,
		Status:     g.Status,
	}
}

func (p *Provider) GenerateIRN(ctx context.Context, payload *port.EInvoicePayload) (*port.IRNResult, error) {
	g, err := p.call(ctx, http.MethodPost, "/v2/eInvoice/generate", payload)
	if err != nil {
		return nil, err
	}
	return irnResult(g), nil
}

func (p *Provider) CancelIRN(ctx context.Context, irn, reason string) (*port.IRNResult, error) {
	body := map[string]string{"irn": irn, "CnlRsn": reason}
	g, err := p.call(ctx, http.MethodPut, "/v2/eInvoice/cancel", body)
	if err != nil {
		return nil, err
	}
	return irnResult(g), nil
}

func (p *Provider) GetIRNStatus(ctx context.Context, irn string) (*port.IRNResult, error) {
	g, err := p.call(ctx, http.MethodGet, "/v2/eInvoice?irn="+url.QueryEscape(irn), nil)
	if err != nil {
		return nil, err
	}
	return irnResult(g), nil
}

func (p *Provider) GenerateEWayBill(ctx context.Context, payload *port.EWayBillPayload) (*port.EWayBillResult, error) {
	g, err := p.call(ctx, http.MethodPost, "/v2/eWayBill/generate", payload)
	if err != nil {
		return nil, err
	}
	return ewbResult(g), nil
}

func (p *Provider) CancelEWayBill(ctx context.Context, ewbNo, reason string) (*port.EWayBillResult, error) {
	body := map[string]string{"ewbNo": ewbNo, "cancelRsnCode": reason}
	g, err := p.call(ctx, http.MethodPut, "/v2/eWayBill/cancel", body)
	if err != nil {
		return nil, err
	}
	return ewbResult(g), nil
}

func (p *Provider) UpdateEWayBill(ctx context.Context, input *port.EWayBillUpdateInput) (*port.EWayBillResult, error) {
	body := map[string]string{
		"ewbNo":      input.EWayBillNo,
		"vehicleNo":  input.VehicleNo,
		"transMode":  input.TransMode,
		"transDocNo": input.TransDocNo,
		"fromPlace":  input.PlaceOfChange,
		"fromState":  input.StateOfChange,
		"reasonCode": input.ReasonCode,
	}
	g, err := p.call(ctx, http.MethodPut, "/v2/eWayBill/updatePartB", body)
	if err != nil {
		return nil, err
	}
	return ewbResult(g), nil
}

func (p *Provider) GetEWayBillStatus(ctx context.Context, ewbNo string) (*port.EWayBillResult, error) {
	g, err := p.call(ctx, http.MethodGet, "/v2/eWayBill?ewbNo="+url.QueryEscape(ewbNo), nil)
	if err != nil {
		return nil, err
	}
	return ewbResult(g), nil
}
