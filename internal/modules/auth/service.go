package auth

import (
	"context"
	"errors"
	"strings"

	"accountsvc/internal/domain"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type tokenSigner interface {
	Generate(userID int64, email string) (string, error)
}

// Service contains all business logic for session authentication
type Service struct {
	users   UserReader
	tokens  ActiveTokenRepositoryInterface
	access  tokenSigner
	refresh tokenSigner
}

func NewService(
	users UserReader,
	tokens ActiveTokenRepositoryInterface,
	access tokenSigner,
	refresh tokenSigner,
) *Service {
	return &Service{
		users:   users,
		tokens:  tokens,
		access:  access,
		refresh: refresh,
	}
}

// Login checks credentials and issues an access/refresh token pair.
// The refresh token is recorded in the active-token store; that record
// is what Refresh and Logout consult later.
func (s *Service) Login(ctx context.Context, req LoginRequest) (*TokenPair, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if user.PasswordHash == "" {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	accessToken, err := s.access.Generate(user.ID, user.Email)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.refresh.Generate(user.ID, user.Email)
	if err != nil {
		return nil, err
	}

	if err := s.tokens.Create(ctx, &domain.ActiveToken{
		Email: user.Email,
		Token: refreshToken,
	}); err != nil {
		return nil, err
	}

	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

// Logout revokes one refresh token by deleting its active-token row.
// A second logout with the same token fails with ErrSessionNotFound;
// that is specified behavior, not an oversight.
func (s *Service) Logout(ctx context.Context, token string) error {
	t, err := s.tokens.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSessionNotFound
		}
		return err
	}
	return s.tokens.Delete(ctx, t.ID)
}

// Refresh mints a new access token for a known (email, refresh token)
// pair. The refresh token is echoed back unchanged, not rotated.
func (s *Service) Refresh(ctx context.Context, req RefreshRequest) (*TokenPair, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if _, err := s.tokens.GetByEmailAndToken(ctx, email, req.RefreshToken); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidRefreshToken
		}
		return nil, err
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidRefreshToken
		}
		return nil, err
	}

	accessToken, err := s.access.Generate(user.ID, user.Email)
	if err != nil {
		return nil, err
	}

	return &TokenPair{AccessToken: accessToken, RefreshToken: req.RefreshToken}, nil
}
