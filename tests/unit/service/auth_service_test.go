package service_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gstsuite/internal/config"
	"gstsuite/internal/domain"
	"gstsuite/internal/service"
)

const (
	testJWTSecret = "test-jwt-secret"
	testJWTIssuer = "gstsuite"
)

func mintToken(t *testing.T, claims *service.Claims, secret string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func suiteClaims(businessID, userID uuid.UUID) *service.Claims {
	return &service.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    testJWTIssuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		BusinessID: businessID,
		UserID:     userID,
	}
}

func TestAuthService_ValidateToken(t *testing.T) {
	svc := service.NewAuthService(config.JWTConfig{Secret: testJWTSecret, Issuer: testJWTIssuer})

	businessID := uuid.New()
	userID := uuid.New()
	token := mintToken(t, suiteClaims(businessID, userID), testJWTSecret)

	claims, err := svc.ValidateToken(token)

	require.NoError(t, err)
	assert.Equal(t, businessID, claims.BusinessID)
	assert.Equal(t, userID, claims.UserID)
}

func TestAuthService_ValidateToken_WrongSecret(t *testing.T) {
	svc := service.NewAuthService(config.JWTConfig{Secret: testJWTSecret, Issuer: testJWTIssuer})

	token := mintToken(t, suiteClaims(uuid.New(), uuid.New()), "other-secret")

	_, err := svc.ValidateToken(token)

	assert.True(t, domain.IsKind(err, domain.KindValidation))
}

func TestAuthService_ValidateToken_WrongIssuer(t *testing.T) {
	svc := service.NewAuthService(config.JWTConfig{Secret: testJWTSecret, Issuer: testJWTIssuer})

	claims := suiteClaims(uuid.New(), uuid.New())
	claims.Issuer = "someone-else"
	token := mintToken(t, claims, testJWTSecret)

	_, err := svc.ValidateToken(token)

	assert.True(t, domain.IsKind(err, domain.KindValidation))
}

func TestAuthService_ValidateToken_Expired(t *testing.T) {
	svc := service.NewAuthService(config.JWTConfig{Secret: testJWTSecret, Issuer: testJWTIssuer})

	claims := suiteClaims(uuid.New(), uuid.New())
	claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Hour))
	token := mintToken(t, claims, testJWTSecret)

	_, err := svc.ValidateToken(token)

	assert.True(t, domain.IsKind(err, domain.KindValidation))
}

func TestAuthService_ValidateToken_NoBusinessContext(t *testing.T) {
	svc := service.NewAuthService(config.JWTConfig{Secret: testJWTSecret, Issuer: testJWTIssuer})

	token := mintToken(t, suiteClaims(uuid.Nil, uuid.New()), testJWTSecret)

	_, err := svc.ValidateToken(token)

	assert.True(t, domain.IsKind(err, domain.KindValidation))
}
