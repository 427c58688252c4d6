package handler

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"gstsuite/internal/export"
	"gstsuite/internal/middleware"
	"gstsuite/internal/service"
)

// ReturnHandler serves the statutory return generation endpoints.
type ReturnHandler struct {
	returns service.ReturnService
}

// NewReturnHandler creates a new ReturnHandler.
func NewReturnHandler(returns service.ReturnService) *ReturnHandler {
	return &ReturnHandler{returns: returns}
}

// GSTR1 handles POST/GET /api/v1/returns/gstr1/:period. The xlsx format
// streams the portal offline-tool workbook instead of JSON.
func (h *ReturnHandler) GSTR1(c *gin.Context) {
	businessID, err := middleware.GetBusinessID(c)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	report, err := h.returns.GenerateGSTR1(c.Request.Context(), businessID, c.Param("period"), middleware.GetAuthToken(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	if c.Query("format") == "xlsx" {
		var buf bytes.Buffer
		if err := export.Gstr1Workbook(report, &buf); err != nil {
			RespondError(c, http.StatusInternalServerError, "EXPORT_FAILED", "workbook generation failed")
			return
		}
		filename := fmt.Sprintf("gstr1_%s_%s.xlsx", report.ReturnPeriod, time.Now().Format("2006-01-02"))
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
		c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
		return
	}

	RespondOK(c, report)
}

// GSTR3B handles POST/GET /api/v1/returns/gstr3b/:period.
func (h *ReturnHandler) GSTR3B(c *gin.Context) {
	businessID, err := middleware.GetBusinessID(c)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	report, err := h.returns.GenerateGSTR3B(c.Request.Context(), businessID, c.Param("period"), middleware.GetAuthToken(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, report)
}

// GSTR4 handles POST/GET /api/v1/returns/gstr4/:period.
func (h *ReturnHandler) GSTR4(c *gin.Context) {
	businessID, err := middleware.GetBusinessID(c)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	report, err := h.returns.GenerateGSTR4(c.Request.Context(), businessID, c.Param("period"), middleware.GetAuthToken(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, report)
}
