package jwt

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// Claims carries the subject the identity service put into the access token.
type Claims struct {
	jwt.RegisteredClaims
}

// Manager validates bearer tokens issued by the identity service. This
// service never issues tokens itself.
type Manager struct {
	secret []byte
}

// NewManager creates a new Manager with the shared HS256 secret.
func NewManager(secret string) *Manager {
	return &Manager{secret: []byte(secret)}
}

// VerifyToken validates an access token and returns the member id from its
// subject claim.
func (m *Manager) VerifyToken(tokenStr string) (string, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return "", fmt.Errorf("invalid token: %w", err)
	}
	if !token.Valid || claims.Subject == "" {
		return "", errors.New("invalid token: missing subject")
	}
	return claims.Subject, nil
}
