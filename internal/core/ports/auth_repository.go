package ports

import (
	"context"

	"github.com/99minutos/products-api/internal/core/domain"
)

// CredentialStore defines persistence of user identities.
type CredentialStore interface {
	// FindByEmail returns domain.ErrUserNotFound when no identity uses email.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// Create assigns the id and returns domain.ErrUserExists on a duplicate email.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}

// PasswordHasher derives and checks one-way salted password hashes.
type PasswordHasher interface {
	Hash(password []byte) (string, error)
	Compare(hash string, password []byte) error
}

// TokenSigner issues and verifies stateless session tokens.
type TokenSigner interface {
	Sign(claims domain.SessionClaims) (string, error)
	Verify(token string) (*domain.SessionClaims, error)
}
