package auth

import (
	"context"

	"accountsvc/internal/domain"
)

// UserReader — only the lookup the auth service needs from the user store
type UserReader interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

// ActiveTokenRepositoryInterface — revocation store for refresh tokens
type ActiveTokenRepositoryInterface interface {
	Create(ctx context.Context, t *domain.ActiveToken) error
	GetByToken(ctx context.Context, token string) (*domain.ActiveToken, error)
	GetByEmailAndToken(ctx context.Context, email, token string) (*domain.ActiveToken, error)
	Delete(ctx context.Context, id int64) error
}
