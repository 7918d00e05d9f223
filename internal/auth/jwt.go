package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"storefront-service/internal/models"
)

const issuer = "storefront-service"

// ErrInvalidToken is returned for tokens that fail verification
var ErrInvalidToken = errors.New("invalid token")

// Claims are the JWT claims carried by storefront admin tokens
type Claims struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
	Role  string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// TokenManager issues and verifies HS256 tokens
type TokenManager struct {
	secret []byte
	now    func() time.Time
}

// NewTokenManager creates a manager signing with secret
func NewTokenManager(secret string) *TokenManager {
	return &TokenManager{secret: []byte(secret), now: time.Now}
}

// Issue signs a token for actor valid for ttl
func (m *TokenManager) Issue(actor models.Actor, ttl time.Duration) (string, error) {
	now := m.now()
	claims := Claims{
		Email: actor.Email,
		Name:  actor.Name,
		Role:  actor.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   actor.ID,
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

// Verify checks the signature, issuer and expiry and returns the actor
func (m *TokenManager) Verify(token string) (models.Actor, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return models.Actor{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.Subject == "" {
		return models.Actor{}, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}
	return models.Actor{ID: claims.Subject, Email: claims.Email, Name: claims.Name, Role: claims.Role}, nil
}
