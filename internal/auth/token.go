package auth

import (
	"errors"

	jwt "github.com/golang-jwt/jwt/v5"
)

// TokenVerifier validates JWT tokens issued by the identity service. This
// service never issues tokens itself.
type TokenVerifier struct {
	secret []byte
}

// NewTokenVerifier builds a new verifier.
func NewTokenVerifier(secret string) *TokenVerifier {
	return &TokenVerifier{secret: []byte(secret)}
}

// Claims describes the JWT payload this service cares about.
type Claims struct {
	SubjectID string `json:"sub"`
	Role      string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// ParseToken validates and returns claims.
func (tv *TokenVerifier) ParseToken(tokenStr string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return tv.secret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}
