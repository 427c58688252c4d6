package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gstsuite/internal/middleware"
	"gstsuite/internal/service"
)

// SettingsHandler serves the per-business GSP settings endpoints.
type SettingsHandler struct {
	settings service.SettingsService
}

// NewSettingsHandler creates a new SettingsHandler.
func NewSettingsHandler(settings service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settings: settings}
}

// Get handles GET /api/v1/settings. The credentials blob never leaves the
// server; the model's JSON tags strip it.
func (h *SettingsHandler) Get(c *gin.Context) {
	businessID, err := middleware.GetBusinessID(c)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	settings, err := h.settings.Get(c.Request.Context(), businessID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, settings)
}

// Upsert handles PUT /api/v1/settings.
func (h *SettingsHandler) Upsert(c *gin.Context) {
	businessID, err := middleware.GetBusinessID(c)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	var input service.SettingsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	settings, err := h.settings.Upsert(c.Request.Context(), businessID, &input)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, settings)
}
