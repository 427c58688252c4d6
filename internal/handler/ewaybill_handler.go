package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gstsuite/internal/formatter"
	"gstsuite/internal/middleware"
	"gstsuite/internal/port"
	"gstsuite/internal/service"
)

// EWayBillHandler serves the e-way-bill endpoints.
type EWayBillHandler struct {
	ewaybill service.EWayBillService
}

// NewEWayBillHandler creates a new EWayBillHandler.
func NewEWayBillHandler(ewaybill service.EWayBillService) *EWayBillHandler {
	return &EWayBillHandler{ewaybill: ewaybill}
}

type generateEWayBillRequest struct {
	TransMode     string `json:"trans_mode"`
	TransDistance string `json:"trans_distance"`
	TransporterID string `json:"transporter_id"`
	TransDocNo    string `json:"trans_doc_no"`
	TransDocDate  string `json:"trans_doc_date"`
	VehicleNo     string `json:"vehicle_no"`
	VehicleType   string `json:"vehicle_type"`
}

// Generate handles POST /api/v1/ewaybill/:invoiceId.
func (h *EWayBillHandler) Generate(c *gin.Context) {
	businessID, err := middleware.GetBusinessID(c)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	invoiceID, ok := invoiceIDParam(c)
	if !ok {
		return
	}

	var req generateEWayBillRequest
	_ = c.ShouldBindJSON(&req)
	transport := &formatter.TransportInput{
		Mode:          req.TransMode,
		Distance:      req.TransDistance,
		TransporterID: req.TransporterID,
		DocNo:         req.TransDocNo,
		DocDate:       req.TransDocDate,
		VehicleNo:     req.VehicleNo,
		VehicleType:   req.VehicleType,
	}

	result, err := h.ewaybill.Generate(c.Request.Context(), businessID, invoiceID, transport, middleware.GetAuthToken(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondCreated(c, result)
}

type updateEWayBillRequest struct {
	VehicleNo     string `json:"vehicle_no"`
	TransMode     string `json:"trans_mode"`
	TransDocNo    string `json:"trans_doc_no"`
	PlaceOfChange string `json:"place_of_change"`
	StateOfChange string `json:"state_of_change"`
	ReasonCode    string `json:"reason_code"`
	ReasonRemarks string `json:"reason_remarks"`
}

// Update handles PUT /api/v1/ewaybill/:invoiceId.
func (h *EWayBillHandler) Update(c *gin.Context) {
	businessID, err := middleware.GetBusinessID(c)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	invoiceID, ok := invoiceIDParam(c)
	if !ok {
		return
	}

	var req updateEWayBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	result, err := h.ewaybill.Update(c.Request.Context(), businessID, invoiceID, &port.EWayBillUpdateInput{
		VehicleNo:     req.VehicleNo,
		TransMode:     req.TransMode,
		TransDocNo:    req.TransDocNo,
		PlaceOfChange: req.PlaceOfChange,
		StateOfChange: req.StateOfChange,
		ReasonCode:    req.ReasonCode,
		ReasonRemarks: req.ReasonRemarks,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, result)
}

// Cancel handles POST /api/v1/ewaybill/:invoiceId/cancel.
func (h *EWayBillHandler) Cancel(c *gin.Context) {
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

	result, err := h.ewaybill.Cancel(c.Request.Context(), businessID, invoiceID, req.Reason)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, result)
}

// GetStatus handles GET /api/v1/ewaybill/:invoiceId.
func (h *EWayBillHandler) GetStatus(c *gin.Context) {
	businessID, err := middleware.GetBusinessID(c)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	invoiceID, ok := invoiceIDParam(c)
	if !ok {
		return
	}

	result, err := h.ewaybill.GetStatus(c.Request.Context(), businessID, invoiceID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, result)
}
