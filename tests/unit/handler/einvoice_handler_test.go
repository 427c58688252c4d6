package handler_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"gstsuite/internal/domain"
	"gstsuite/internal/handler"
	"gstsuite/mocks"
)

func TestEInvoiceHandler_Generate(t *testing.T) {
	svc := new(mocks.MockEInvoiceService)
	h := handler.NewEInvoiceHandler(svc)

	businessID := uuid.New()
	invoiceID := uuid.New()
	irn := "35e1c44c0bcd0b"
	svc.On("Generate", mock.Anything, businessID, invoiceID, "test-token").
		Return(&domain.EInvoiceRequest{
			ID:         uuid.New(),
			BusinessID: businessID,
			InvoiceID:  invoiceID,
			Status:     domain.EInvoiceSuccess,
			IRN:        irn,
		}, nil)

	r := gin.New()
	r.Use(withContext(businessID, uuid.New()))
	r.POST("/einvoice/:invoiceId", h.Generate)

	req := httptest.NewRequest(http.MethodPost, "/einvoice/"+invoiceID.String(), nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	resp := decodeResponse(t, w)
	assert.True(t, resp.Success)
	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, irn, data["irn"])
}

func TestEInvoiceHandler_Generate_InvalidInvoiceID(t *testing.T) {
	svc := new(mocks.MockEInvoiceService)
	h := handler.NewEInvoiceHandler(svc)

	r := gin.New()
	r.Use(withContext(uuid.New(), uuid.New()))
	r.POST("/einvoice/:invoiceId", h.Generate)

	req := httptest.NewRequest(http.MethodPost, "/einvoice/not-a-uuid", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeResponse(t, w)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "INVALID_REQUEST", resp.Error.Code)
	svc.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestEInvoiceHandler_Generate_ProviderError(t *testing.T) {
	svc := new(mocks.MockEInvoiceService)
	h := handler.NewEInvoiceHandler(svc)

	businessID := uuid.New()
	invoiceID := uuid.New()
	svc.On("Generate", mock.Anything, businessID, invoiceID, "test-token").
		Return(nil, domain.ProviderError("2150", "duplicate IRN", nil))

	r := gin.New()
	r.Use(withContext(businessID, uuid.New()))
	r.POST("/einvoice/:invoiceId", h.Generate)

	req := httptest.NewRequest(http.MethodPost, "/einvoice/"+invoiceID.String(), nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	resp := decodeResponse(t, w)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "PROVIDER_2150", resp.Error.Code)
	assert.Equal(t, "duplicate IRN", resp.Error.Message)
}

func TestEInvoiceHandler_Cancel(t *testing.T) {
	svc := new(mocks.MockEInvoiceService)
	h := handler.NewEInvoiceHandler(svc)

	businessID := uuid.New()
	invoiceID := uuid.New()
	svc.On("Cancel", mock.Anything, businessID, invoiceID, "data entry error", "test-token").
		Return(&domain.EInvoiceRequest{
			ID:         uuid.New(),
			BusinessID: businessID,
			InvoiceID:  invoiceID,
			Status:     domain.EInvoiceCancelled,
		}, nil)

	r := gin.New()
	r.Use(withContext(businessID, uuid.New()))
	r.POST("/einvoice/:invoiceId/cancel", h.Cancel)

	body := strings.NewReader(`{"reason":"data entry error"}`)
	req := httptest.NewRequest(http.MethodPost, "/einvoice/"+invoiceID.String()+"/cancel", body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	assert.True(t, resp.Success)
	svc.AssertExpectations(t)
}

func TestEInvoiceHandler_Cancel_Conflict(t *testing.T) {
	svc := new(mocks.MockEInvoiceService)
	h := handler.NewEInvoiceHandler(svc)

	businessID := uuid.New()
	invoiceID := uuid.New()
	svc.On("Cancel", mock.Anything, businessID, invoiceID, "", "test-token").
		Return(nil, domain.Conflictf("no active IRN to cancel"))

	r := gin.New()
	r.Use(withContext(businessID, uuid.New()))
	r.POST("/einvoice/:invoiceId/cancel", h.Cancel)

	req := httptest.NewRequest(http.MethodPost, "/einvoice/"+invoiceID.String()+"/cancel", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
	resp := decodeResponse(t, w)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "CONFLICT", resp.Error.Code)
}

func TestEInvoiceHandler_GetStatus_NotFound(t *testing.T) {
	svc := new(mocks.MockEInvoiceService)
	h := handler.NewEInvoiceHandler(svc)

	businessID := uuid.New()
	invoiceID := uuid.New()
	svc.On("GetStatus", mock.Anything, businessID, invoiceID).
		Return(nil, domain.NotFoundf("no e-invoice request for invoice"))

	r := gin.New()
	r.Use(withContext(businessID, uuid.New()))
	r.GET("/einvoice/:invoiceId", h.GetStatus)

	req := httptest.NewRequest(http.MethodGet, "/einvoice/"+invoiceID.String(), nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	resp := decodeResponse(t, w)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "NOT_FOUND", resp.Error.Code)
}
