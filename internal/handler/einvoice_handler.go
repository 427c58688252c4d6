package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"gstsuite/internal/middleware"
	"gstsuite/internal/service"
)

// EInvoiceHandler serves the IRN registration endpoints.
type EInvoiceHandler struct {
	einvoice service.EInvoiceService
}

// NewEInvoiceHandler creates a new EInvoiceHandler.
func NewEInvoiceHandler(einvoice service.EInvoiceService) *EInvoiceHandler {
	return &EInvoiceHandler{einvoice: einvoice}
}

func invoiceIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("invoiceId"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid invoice id")
		return uuid.Nil, false
	}
	return id, true
}

// Generate handles POST /api/v1/einvoice/:invoiceId.
func (h *EInvoiceHandler) Generate(c *gin.Context) {
	businessID, err := middleware.GetBusinessID(c)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	invoiceID, ok := invoiceIDParam(c)
	if !ok {
		return
	}

	req, err := h.einvoice.Generate(c.Request.Context(), businessID, invoiceID, middleware.GetAuthToken(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondCreated(c, req)
}

type cancelRequest struct {
	Reason string `json:"reason"`
}

// Cancel handles POST /api/v1/einvoice/:invoiceId/cancel.
func (h *EInvoiceHandler) Cancel(c *gin.Context) {
	businessID, err := middleware.GetBusinessID(c)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	invoiceID, ok := invoiceIDParam(c)
	if !ok {
		return
	}

	var req cancelRequest
	_ = c.ShouldBindJSON(&req)

	result, err := h.einvoice.Cancel(c.Request.Context(), businessID, invoiceID, req.Reason, middleware.GetAuthToken(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, result)
}

// GetStatus handles GET /api/v1/einvoice/:invoiceId.
func (h *EInvoiceHandler) GetStatus(c *gin.Context) {
	businessID, err := middleware.GetBusinessID(c)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	invoiceID, ok := invoiceIDParam(c)
	if !ok {
		return
	}

	req, err := h.einvoice.GetStatus(c.Request.Context(), businessID, invoiceID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, req)
}
