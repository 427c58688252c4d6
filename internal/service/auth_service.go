package service

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"gstsuite/internal/config"
	"gstsuite/internal/domain"
)

// Claims are the suite-issued JWT claims carrying the caller's business
// context. Tokens are minted by the identity service; this engine only
// validates them.
type Claims struct {
	jwt.RegisteredClaims
	BusinessID uuid.UUID `json:"business_id"`
	UserID     uuid.UUID `json:"user_id"`
}

// AuthService validates suite-issued bearer tokens.
type AuthService interface {
	ValidateToken(tokenString string) (*Claims, error)
}

type authService struct {
	cfg config.JWTConfig
}

// NewAuthService creates a new AuthService implementation.
func NewAuthService(cfg config.JWTConfig) AuthService {
	return &authService{cfg: cfg}
}

func (s *authService) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.Secret), nil
	}, jwt.WithIssuer(s.cfg.Issuer))
	if err != nil {
		return nil, domain.Validationf("invalid token: %v", err)
	}
	if !token.Valid {
		return nil, domain.Validationf("invalid token")
	}
	if claims.BusinessID == uuid.Nil {
		return nil, domain.Validationf("token has no business context")
	}
	return claims, nil
}
