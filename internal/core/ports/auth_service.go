package ports

import (
	"context"

	"github.com/99minutos/products-api/internal/core/domain"
)

// RegisterInput is the DTO passed from the transport layer to AuthService.Register.
type RegisterInput struct {
	Email    string
	Password string
	FullName string
}

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.UserProfile, error)
	EmailAvailable(ctx context.Context, email string) (bool, error)
	ValidateCredentials(ctx context.Context, email, password string) (*domain.User, error)
	IssueSession(user *domain.User) (*domain.Session, error)
	Login(ctx context.Context, email, password string) (*domain.Session, error)
}
