package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/botforge-labs/trainset-core/internal/core/domain"
	"github.com/botforge-labs/trainset-core/internal/core/ports/driven"
)

// Ensure Verifier implements TokenVerifier
var _ driven.TokenVerifier = (*Verifier)(nil)

// jwtClaims is the token payload issued by the session provider
type jwtClaims struct {
	CustomerID string `json:"customer_id"`
	SessionID  string `json:"session_id"`
	jwt.RegisteredClaims
}

// Verifier validates session tokens using an HS256 shared secret
type Verifier struct {
	secret []byte
}

// NewVerifier creates a new Verifier with the given shared secret
func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: []byte(secret)}
}

// Verify validates a token and extracts the caller's tenant identity.
// Expired tokens map to domain.ErrTokenExpired, everything else that fails
// validation maps to domain.ErrTokenInvalid.
func (v *Verifier) Verify(tokenString string) (*domain.AuthContext, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwtClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return v.secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrTokenInvalid, err)
	}

	claims, ok := token.Claims.(*jwtClaims)
	if !ok || !token.Valid {
		return nil, domain.ErrTokenInvalid
	}
	if claims.CustomerID == "" {
		return nil, fmt.Errorf("%w: missing customer id", domain.ErrTokenInvalid)
	}

	return &domain.AuthContext{
		CustomerID: claims.CustomerID,
		SessionID:  claims.SessionID,
	}, nil
}

// Sign creates a signed token for the given identity, valid for ttl.
// Used by tests and local tooling; production tokens come from the
// session provider.
func (v *Verifier) Sign(customerID, sessionID string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwtClaims{
		CustomerID: customerID,
		SessionID:  sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(v.secret)
}
