package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"gstsuite/internal/domain"
)

// APIResponse is the standard envelope for all API responses.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
}

// APIError holds error details in the response.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// RespondOK sends a 200 success response.
func RespondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data})
}

// RespondCreated sends a 201 success response.
func RespondCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, APIResponse{Success: true, Data: data})
}

// RespondError sends an error response with the given status code.
func RespondError(c *gin.Context, status int, code, msg string) {
	c.JSON(status, APIResponse{
		Success: false,
		Error:   &APIError{Code: code, Message: msg},
	})
}

// RespondDomainError maps a domain error to an HTTP response.
func RespondDomainError(c *gin.Context, err error) {
	status, code, msg := MapDomainError(err)
	RespondError(c, status, code, msg)
}

// MapDomainError translates tagged domain errors to HTTP status codes.
// Provider failures map to 422: the request was well-formed but the
// government gateway rejected it.
func MapDomainError(err error) (status int, code, msg string) {
	var derr *domain.Error
	if !errors.As(err, &derr) {
		log.Printf("handler.MapDomainError: unclassified error: %v", err)
		return http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred"
	}

	switch derr.Kind {
	case domain.KindValidation:
		return http.StatusBadRequest, "VALIDATION_ERROR", derr.Message
	case domain.KindNotFound:
		return http.StatusNotFound, "NOT_FOUND", derr.Message
	case domain.KindConflict:
		return http.StatusConflict, "CONFLICT", derr.Message
	case domain.KindProvider:
		pcode := "PROVIDER_ERROR"
		if derr.Code != "" {
			pcode = "PROVIDER_" + derr.Code
		}
		return http.StatusUnprocessableEntity, pcode, derr.Message
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred"
	}
}
