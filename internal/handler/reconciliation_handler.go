package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"gstsuite/internal/csvexport"
	"gstsuite/internal/domain"
	"gstsuite/internal/middleware"
	"gstsuite/internal/service"
)

// ReconciliationHandler serves the GSTR-2A/2B import and reconciliation
// endpoints.
type ReconciliationHandler struct {
	recon service.ReconciliationService
}

// NewReconciliationHandler creates a new ReconciliationHandler.
func NewReconciliationHandler(recon service.ReconciliationService) *ReconciliationHandler {
	return &ReconciliationHandler{recon: recon}
}

type importRequest struct {
	Type    domain.ImportType `json:"type" binding:"required"`
	Payload json.RawMessage   `json:"payload" binding:"required"`
}

// Import handles POST /api/v1/reconciliation/:period/import.
func (h *ReconciliationHandler) Import(c *gin.Context) {
	businessID, err := middleware.GetBusinessID(c)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	userID, err := middleware.GetUserID(c)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	var req importRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	imp, err := h.recon.ImportStatement(c.Request.Context(), businessID, c.Param("period"), req.Type, req.Payload, userID, middleware.GetAuthToken(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondCreated(c, imp)
}

// Get handles GET /api/v1/reconciliation/:period. With ?format=csv the
// categorized records stream as a CSV download.
func (h *ReconciliationHandler) Get(c *gin.Context) {
	businessID, err := middleware.GetBusinessID(c)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	periodToken := c.Param("period")
	result, err := h.recon.GetReconciliation(c.Request.Context(), businessID, periodToken, middleware.GetAuthToken(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	if c.Query("format") == "csv" {
		h.respondCSV(c, periodToken, result)
		return
	}
	RespondOK(c, result)
}

func (h *ReconciliationHandler) respondCSV(c *gin.Context, periodToken string, result *service.ReconciliationResult) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", csvexport.BuildFilename(periodToken)))
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Status(http.StatusOK)

	if _, err := c.Writer.Write(csvexport.BOM); err != nil {
		return
	}
	w := csvexport.NewWriter(c.Writer)
	if err := w.WriteHeader(); err != nil {
		return
	}
	for _, records := range [][]domain.ReconciliationRecord{result.Matched, result.Mismatched, result.Missing} {
		if err := w.WriteRecords(records); err != nil {
			return
		}
	}
	if err := w.WriteExtra(result.Extra); err != nil {
		return
	}
	w.Flush()
}

type manualMatchRequest struct {
	InvoiceID uuid.UUID `json:"invoice_id" binding:"required"`
}

// ManualMatch handles POST /api/v1/reconciliation/records/:id/match.
func (h *ReconciliationHandler) ManualMatch(c *gin.Context) {
	businessID, err := middleware.GetBusinessID(c)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	recordID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid record id")
		return
	}

	var req manualMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	record, err := h.recon.ManualMatch(c.Request.Context(), businessID, recordID, req.InvoiceID, middleware.GetAuthToken(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, record)
}
