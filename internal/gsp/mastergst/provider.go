// Package mastergst implements the GSP contract against the MasterGST gateway.
package mastergst

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"gstsuite/internal/gsp"
	"gstsuite/internal/port"
)

const (
	defaultBaseURL = "https://api.mastergst.com"
	tokenLifetime  = 50 * time.Minute
)

func init() {
	gsp.Register("mastergst", func(creds *port.GSPCredentials, baseURL string) (port.GSPProvider, error) {
		return NewProvider(creds, baseURL), nil
	})
}

// Provider implements port.GSPProvider using the MasterGST REST API.
type Provider struct {
	creds   *port.GSPCredentials
	baseURL string
	client  *http.Client

	mu          sync.Mutex
	token       string
	tokenExpiry time.Time
}

// NewProvider creates a MasterGST-backed provider. An empty baseURL uses the
// production endpoint.
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

func (p *Provider) Name() string { return "mastergst" }

// apiResponse is the MasterGST envelope. status_cd "1" means success; "0"
// carries a business-level rejection in the error block.
type apiResponse struct {
	StatusCd   string          `json:"status_cd"`
	StatusDesc string          `json:"status_desc"`
	Data       json.RawMessage `json:"data"`
	Error      *struct {
		ErrorCd string `json:"error_cd"`
		Message string `json:"message"`
	} `json:"error"`
}

type irnData struct {
	Irn           string      `json:"Irn"`
	AckNo         json.Number `json:"AckNo"`
	AckDt         string      `json:"AckDt"`
	SignedQRCode  string      `json:"SignedQRCode"`
	SignedInvoice string      `json:"SignedInvoice"`
	Status        string      `json:"Status"`
}

type ewbData struct {
	EwbNo        json.Number `json:"ewbNo"`
	EwbDt        string      `json:"ewbDt"`
	EwbValidTill string      `json:"ewbValidTill"`
	Status       string      `json:"status"`
}

// Authenticate obtains a bearer token, caching it until shortly before expiry.
func (p *Provider) Authenticate(ctx context.Context) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.token != "" && time.Now().Before(p.tokenExpiry) {
		return p.token, nil
	}

	q := url.Values{}
	q.Set("email", p.creds.Username)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		p.baseURL+"/einvoice/authenticate?"+q.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("mastergst: creating auth request: %w", err)
	}
	req.Header.Set("client_id", p.creds.ClientID)
	req.Header.Set("client_secret", p.creds.ClientSecret)
	req.Header.Set("username", p.creds.Username)
	req.Header.Set("password", p.creds.Password)
	req.Header.Set("gstin", p.creds.GSTIN)

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("mastergst: auth call: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("mastergst: reading auth response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("mastergst: auth failed (status %d): %s", resp.StatusCode, body)
	}

	var parsed struct {
		StatusCd string `json:"status_cd"`
		Data     struct {
			AuthToken string `json:"AuthToken"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("mastergst: decoding auth response: %w", err)
	}
	if parsed.StatusCd != "1" || parsed.Data.AuthToken == "" {
		return "", fmt.Errorf("mastergst: auth rejected: %s", body)
	}

	p.token = parsed.Data.AuthToken
	p.tokenExpiry = time.Now().Add(tokenLifetime)
	return p.token, nil
}

// call performs an authenticated JSON request and decodes the envelope.
func (p *Provider) call(ctx context.Context, method, path string, payload interface{}) (*apiResponse, error) {
	token, err := p.Authenticate(ctx)
	if err != nil {
		return nil, err
	}

	var bodyReader io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("mastergst: marshaling payload: %w", err)
		}
		bodyReader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, p.baseURL+path, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("mastergst: creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("client_id", p.creds.ClientID)
	req.Header.Set("client_secret", p.creds.ClientSecret)
	req.Header.Set("gstin", p.creds.GSTIN)
	req.Header.Set("auth-token", token)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("mastergst: calling API: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("mastergst: reading response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("mastergst: API error (status %d): %s", resp.StatusCode, body)
	}

	var parsed apiResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("mastergst: decoding response: %w", err)
	}
	return &parsed, nil
}

func irnResult(resp *apiResponse) (*port.IRNResult, error) {
	if resp.StatusCd != "1" {
		result := &port.IRNResult{Success: false, ErrorMessage: resp.StatusDesc}
		if resp.Error != nil {
			result.ErrorCode = resp.Error.ErrorCd
			result.ErrorMessage = resp.Error.Message
		}
		return result, nil
	}
	var data irnData
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		return nil, fmt.Errorf("mastergst: decoding irn data: %w", err)
	}
	return &port.IRNResult{
		Success:       true,
		IRN:           data.Irn,
		AckNo:         data.AckNo.String(),
		AckDate:       data.AckDt,
		SignedQRCode:  data.SignedQRCode,
		SignedInvoice: data.SignedInvoice,
		Status:        data.Status,
	}, nil
}

func ewbResult(resp *apiResponse) (*port.EWayBillResult, error) {
	if resp.StatusCd != "1" {
		result := &port.EWayBillResult{Success: false, ErrorMessage: resp.StatusDesc}
		if resp.Error != nil {
			result.ErrorCode = resp.Error.ErrorCd
			result.ErrorMessage = resp.Error.Message
		}
		return result, nil
	}
	var data ewbData
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		return nil, fmt.Errorf("mastergst: decoding ewb data: %w", err)
	}
	return &port.EWayBillResult{
		Success:    true,
		EWayBillNo: data.EwbNo.String(),
		ValidUntil: data.EwbValidTill,
		Status:     data.Status,
	}, nil
}

func (p *Provider) GenerateIRN(ctx context.Context, payload *port.EInvoicePayload) (*port.IRNResult, error) {
	resp, err := p.call(ctx, http.MethodPost, "/einvoice/type/GENERATE/version/V1_03", payload)
	if err != nil {
		return nil, err
	}
	return irnResult(resp)
}

func (p *Provider) CancelIRN(ctx context.Context, irn, reason string) (*port.IRNResult, error) {
	body := map[string]string{"Irn": irn, "CnlRsn": reason, "CnlRem": "Cancelled"}
	resp, err := p.call(ctx, http.MethodPost, "/einvoice/type/CANCEL/version/V1_03", body)
	if err != nil {
		return nil, err
	}
	return irnResult(resp)
}

func (p *Provider) GetIRNStatus(ctx context.Context, irn string) (*port.IRNResult, error) {
	resp, err := p.call(ctx, http.MethodGet, "/einvoice/type/GETIRN/version/V1_03?irn="+url.QueryEscape(irn), nil)
	if err != nil {
		return nil, err
	}
	return irnResult(resp)
}

func (p *Provider) GenerateEWayBill(ctx context.Context, payload *port.EWayBillPayload) (*port.EWayBillResult, error) {
	resp, err := p.call(ctx, http.MethodPost, "/ewaybillapi/v1.03/ewayapi/GENEWAYBILL", payload)
	if err != nil {
		return nil, err
	}
	return ewbResult(resp)
}

func (p *Provider) CancelEWayBill(ctx context.Context, ewbNo, reason string) (*port.EWayBillResult, error) {
	body := map[string]string{"ewbNo": ewbNo, "cancelRsnCode": reason}
	resp, err := p.call(ctx, http.MethodPost, "/ewaybillapi/v1.03/ewayapi/CANEWB", body)
	if err != nil {
		return nil, err
	}
	return ewbResult(resp)
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
		"reasonRem":  input.ReasonRemarks,
	}
	resp, err := p.call(ctx, http.MethodPost, "/ewaybillapi/v1.03/ewayapi/VEHEWB", body)
	if err != nil {
		return nil, err
	}
	return ewbResult(resp)
}

func (p *Provider) GetEWayBillStatus(ctx context.Context, ewbNo string) (*port.EWayBillResult, error) {
	resp, err := p.call(ctx, http.MethodGet, "/ewaybillapi/v1.03/ewayapi/GetEwayBill?ewbNo="+url.QueryEscape(ewbNo), nil)
	if err != nil {
		return nil, err
	}
	return ewbResult(resp)
}
