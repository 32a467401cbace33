package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/99minutos/products-api/internal/core/domain"
	"github.com/99minutos/products-api/internal/core/ports"
	"github.com/99minutos/products-api/internal/infrastructure/db/memory"
	"github.com/99minutos/products-api/internal/infrastructure/security"
	"github.com/99minutos/products-api/internal/infrastructure/token"
)

// ---------------------------------------------------------------------------
// Stubs
// ---------------------------------------------------------------------------

// countingHasher records how often the real hasher was asked to hash.
type countingHasher struct {
	*security.Hasher
	hashed int
}

func (h *countingHasher) Hash(password []byte) (string, error) {
	h.hashed++
	return h.Hasher.Hash(password)
}

type failingStore struct{ err error }

func (s failingStore) FindByEmail(context.Context, string) (*domain.User, error) {
	return nil, s.err
}

func (s failingStore) Create(context.Context, *domain.User) (*domain.User, error) {
	return nil, s.err
}

type failingSigner struct{}

func (failingSigner) Sign(domain.SessionClaims) (string, error) {
	return "", errors.New("signer down")
}

func (failingSigner) Verify(string) (*domain.SessionClaims, error) {
	return nil, errors.New("signer down")
}

func newAuthSvc(t *testing.T, store ports.CredentialStore) (*AuthService, *countingHasher, *token.JWTSigner) {
	t.Helper()
	signer, err := token.NewJWTSigner("test-secret", "")
	require.NoError(t, err)
	hasher := &countingHasher{Hasher: security.NewHasher(bcrypt.MinCost)}
	return NewAuthService(store, hasher, signer, zerolog.Nop()), hasher, signer
}

func register(t *testing.T, svc *AuthService, email, password string) {
	t.Helper()
	_, err := svc.Register(context.Background(), ports.RegisterInput{Email: email, Password: password, FullName: "Ada Lovelace"})
	require.NoError(t, err)
}

// ---------------------------------------------------------------------------
// Register
// ---------------------------------------------------------------------------

func TestAuthService_Register_StoresHashAndReturnsProfile(t *testing.T) {
	store := memory.NewUserStore()
	svc, hasher, _ := newAuthSvc(t, store)

	profile, err := svc.Register(context.Background(), ports.RegisterInput{
		Email:    "ada@example.com",
		Password: "secret1",
		FullName: "Ada Lovelace",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.UserProfile{Email: "ada@example.com", FullName: "Ada Lovelace"}, *profile)
	assert.Equal(t, 1, hasher.hashed)

	stored, err := store.FindByEmail(context.Background(), "ada@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, "secret1", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secret1")))
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	store := memory.NewUserStore()
	svc, _, _ := newAuthSvc(t, store)
	register(t, svc, "ada@example.com", "secret1")

	_, err := svc.Register(context.Background(), ports.RegisterInput{Email: "ada@example.com", Password: "other12", FullName: "X"})
	assert.ErrorIs(t, err, domain.ErrUserExists)
	assert.Equal(t, 1, store.Len())
}

func TestAuthService_Register_StoreFailureIsInternal(t *testing.T) {
	svc, _, _ := newAuthSvc(t, failingStore{err: errors.New("connection reset")})

	_, err := svc.Register(context.Background(), ports.RegisterInput{Email: "a@example.com", Password: "secret1", FullName: "A"})
	assert.ErrorIs(t, err, domain.ErrInternal)
}

func TestAuthService_EmailAvailable(t *testing.T) {
	store := memory.NewUserStore()
	svc, _, _ := newAuthSvc(t, store)
	register(t, svc, "ada@example.com", "secret1")

	ok, err := svc.EmailAvailable(context.Background(), "ada@example.com")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = svc.EmailAvailable(context.Background(), "grace@example.com")
	require.NoError(t, err)
	assert.True(t, ok)

	broken, _, _ := newAuthSvc(t, failingStore{err: errors.New("timeout")})
	_, err = broken.EmailAvailable(context.Background(), "x@example.com")
	assert.ErrorIs(t, err, domain.ErrInternal)
}

// ---------------------------------------------------------------------------
// ValidateCredentials / IssueSession / Login
// ---------------------------------------------------------------------------

func TestAuthService_ValidateCredentials(t *testing.T) {
	store := memory.NewUserStore()
	svc, _, _ := newAuthSvc(t, store)
	register(t, svc, "ada@example.com", "secret1")

	user, err := svc.ValidateCredentials(context.Background(), "ada@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", user.Email)

	cases := map[string][2]string{
		"unknown email":  {"nobody@example.com", "secret1"},
		"wrong password": {"ada@example.com", "wrong!!"},
		"empty email":    {"", "secret1"},
		"empty password": {"ada@example.com", ""},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := svc.ValidateCredentials(context.Background(), in[0], in[1])
			assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
		})
	}
}

func TestAuthService_IssueSession(t *testing.T) {
	svc, _, signer := newAuthSvc(t, memory.NewUserStore())

	user := &domain.User{ID: "u-1", Email: "ada@example.com", FullName: "Ada", PasswordHash: "$2a$hash"}
	session, err := svc.IssueSession(user)
	require.NoError(t, err)
	assert.Equal(t, domain.UserProfile{Email: "ada@example.com", FullName: "Ada"}, session.User)

	claims, err := signer.Verify(session.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.Subject)
	assert.Equal(t, "ada@example.com", claims.Email)
	assert.Equal(t, "Ada", claims.FullName)
	assert.WithinDuration(t, claims.IssuedAt.Add(SessionTTL), claims.ExpiresAt, time.Second)
}

func TestAuthService_IssueSession_SignerFailure(t *testing.T) {
	svc := NewAuthService(memory.NewUserStore(), security.NewHasher(bcrypt.MinCost), failingSigner{}, zerolog.Nop())

	_, err := svc.IssueSession(&domain.User{ID: "u-1"})
	assert.ErrorIs(t, err, domain.ErrInternal)
}

func TestAuthService_Login(t *testing.T) {
	svc, _, signer := newAuthSvc(t, memory.NewUserStore())
	register(t, svc, "ada@example.com", "secret1")

	session, err := svc.Login(context.Background(), "ada@example.com", "secret1")
	require.NoError(t, err)
	assert.NotEmpty(t, session.AccessToken)

	claims, err := signer.Verify(session.AccessToken)
	require.NoError(t, err)
	assert.NotEmpty(t, claims.Subject)

	_, err = svc.Login(context.Background(), "ada@example.com", "nope123")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}
