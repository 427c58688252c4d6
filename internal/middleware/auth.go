package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"gstsuite/internal/domain"
	"gstsuite/internal/service"
)

const (
	ContextKeyBusinessID = "business_id"
	ContextKeyUserID     = "user_id"
	ContextKeyAuthToken  = "auth_token"
	ContextKeyClaims     = "claims"
)

// AuthMiddleware returns Gin middleware that validates suite-issued JWT
// tokens and injects the caller's business context. The raw bearer token is
// kept in the context so services can forward it to collaborator stores.
func AuthMiddleware(authService service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   gin.H{"code": "UNAUTHORIZED", "message": "missing or invalid authorization header"},
			})
			return
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := authService.ValidateToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   gin.H{"code": "UNAUTHORIZED", "message": "invalid or expired token"},
			})
			return
		}

		c.Set(ContextKeyBusinessID, claims.BusinessID)
		c.Set(ContextKeyUserID, claims.UserID)
		c.Set(ContextKeyAuthToken, token)
		c.Set(ContextKeyClaims, claims)
		c.Next()
	}
}

// GetBusinessID extracts the business ID from the Gin context.
func GetBusinessID(c *gin.Context) (uuid.UUID, error) {
	val, exists := c.Get(ContextKeyBusinessID)
	if !exists {
		return uuid.Nil, domain.Validationf("no business context")
	}
	return val.(uuid.UUID), nil
}

// GetUserID extracts the user ID from the Gin context.
func GetUserID(c *gin.Context) (uuid.UUID, error) {
	val, exists := c.Get(ContextKeyUserID)
	if !exists {
		return uuid.Nil, domain.Validationf("no user context")
	}
	return val.(uuid.UUID), nil
}

// GetAuthToken extracts the caller's raw bearer token from the Gin context.
func GetAuthToken(c *gin.Context) string {
	return c.GetString(ContextKeyAuthToken)
}
