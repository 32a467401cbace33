package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/99minutos/products-api/internal/core/domain"
	"github.com/99minutos/products-api/internal/core/ports"
	"github.com/99minutos/products-api/internal/pkg/metrics"
)

// SessionTTL is the fixed lifetime of an issued access token.
const SessionTTL = time.Hour

// AuthService implements registration, credential checks and session issuance.
type AuthService struct {
	repo   ports.CredentialStore
	hasher ports.PasswordHasher
	tokens ports.TokenSigner
	log    zerolog.Logger
	now    func() time.Time
}

func NewAuthService(repo ports.CredentialStore, hasher ports.PasswordHasher, tokens ports.TokenSigner, log zerolog.Logger) *AuthService {
	return &AuthService{
		repo:   repo,
		hasher: hasher,
		tokens: tokens,
		log:    log,
		now:    time.Now,
	}
}

// Register hashes the password and stores a new identity. Email uniqueness is
// checked by the caller through EmailAvailable; a duplicate that slips past it
// is still rejected by the store with domain.ErrUserExists.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.UserProfile, error) {
	hash, err := s.hasher.Hash([]byte(in.Password))
	if err != nil {
		return nil, domain.Internal("register: hash password", err)
	}

	created, err := s.repo.Create(ctx, &domain.User{
		Email:        in.Email,
		PasswordHash: hash,
		FullName:     in.FullName,
	})
	if err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			return nil, err
		}
		return nil, domain.Internal("register: create user", err)
	}

	metrics.RegistrationsTotal.Inc()
	s.log.Info().Str("user_id", created.ID).Msg("user registered")

	profile := created.Profile()
	return &profile, nil
}

// EmailAvailable reports whether no identity is registered under email.
func (s *AuthService) EmailAvailable(ctx context.Context, email string) (bool, error) {
	_, err := s.repo.FindByEmail(ctx, email)
	switch {
	case err == nil:
		return false, nil
	case errors.Is(err, domain.ErrUserNotFound):
		return true, nil
	default:
		return false, domain.Internal("email available", err)
	}
}

// ValidateCredentials returns the identity registered under email when
// password matches. An unknown email and a wrong password both yield
// domain.ErrInvalidCredentials.
func (s *AuthService) ValidateCredentials(ctx context.Context, email, password string) (*domain.User, error) {
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, domain.Internal("validate credentials", err)
	}

	if s.hasher.Compare(user.PasswordHash, []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}
	return user, nil
}

// IssueSession signs an access token for user. Nothing is persisted.
func (s *AuthService) IssueSession(user *domain.User) (*domain.Session, error) {
	now := s.now().UTC()
	token, err := s.tokens.Sign(domain.SessionClaims{
		Subject:   user.ID,
		Email:     user.Email,
		FullName:  user.FullName,
		IssuedAt:  now,
		ExpiresAt: now.Add(SessionTTL),
	})
	if err != nil {
		return nil, domain.Internal("issue session", err)
	}

	return &domain.Session{AccessToken: token, User: user.Profile()}, nil
}

// Login validates the credentials and issues a session for the identity.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.Session, error) {
	user, err := s.ValidateCredentials(ctx, email, password)
	if err != nil {
		result := "error"
		if errors.Is(err, domain.ErrInvalidCredentials) {
			result = "rejected"
		}
		metrics.LoginsTotal.WithLabelValues(result).Inc()
		return nil, err
	}

	session, err := s.IssueSession(user)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		return nil, err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return session, nil
}
