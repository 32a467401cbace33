// Package token signs and verifies stateless session tokens as HS256 JWTs.
package token

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"github.com/99minutos/products-api/internal/core/domain"
)

// ErrInvalidToken is returned when a token is malformed, expired or badly signed.
var ErrInvalidToken = errors.New("invalid token")

// Claims is the JWT payload of an access token.
type Claims struct {
	jwt.RegisteredClaims
	Email    string `json:"email"`
	FullName string `json:"fullName"`
}

// JWTSigner issues and validates access tokens with a shared secret.
type JWTSigner struct {
	secret []byte
	issuer string
}

// NewJWTSigner returns a signer for secret. issuer is optional; when set it is
// written to and required on every token.
func NewJWTSigner(secret, issuer string) (*JWTSigner, error) {
	if secret == "" {
		return nil, errors.New("token: empty signing secret")
	}
	return &JWTSigner{secret: []byte(secret), issuer: issuer}, nil
}

// Sign encodes claims into a signed token.
func (s *JWTSigner) Sign(c domain.SessionClaims) (string, error) {
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   c.Subject,
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(c.IssuedAt),
			ExpiresAt: jwt.NewNumericDate(c.ExpiresAt),
		},
		Email:    c.Email,
		FullName: c.FullName,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks signature, algorithm and expiry and returns the claims.
func (s *JWTSigner) Verify(raw string) (*domain.SessionClaims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if s.issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.issuer))
	}

	var claims Claims
	tkn, err := jwt.ParseWithClaims(raw, &claims, func(*jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, opts...)
	if err != nil || !tkn.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Subject == "" {
		return nil, ErrInvalidToken
	}

	out := &domain.SessionClaims{
		Subject:  claims.Subject,
		Email:    claims.Email,
		FullName: claims.FullName,
	}
	if claims.IssuedAt != nil {
		out.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		out.ExpiresAt = claims.ExpiresAt.Time
	}
	return out, nil
}
