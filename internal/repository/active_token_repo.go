package repository

import (
	"context"
	"strings"
	"time"

	"accountsvc/internal/domain"

	"gorm.io/gorm"
)

// ActiveTokenRepository provides DB access for the refresh-token
// revocation store. A row's existence is what keeps a token alive.
type ActiveTokenRepository struct {
	db *gorm.DB
}

func NewActiveTokenRepository(db *gorm.DB) *ActiveTokenRepository {
	return &ActiveTokenRepository{db: db}
}

func (r *ActiveTokenRepository) Create(ctx context.Context, t *domain.ActiveToken) error {
	t.Email = strings.ToLower(strings.TrimSpace(t.Email))
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *ActiveTokenRepository) GetByToken(ctx context.Context, token string) (*domain.ActiveToken, error) {
	var t domain.ActiveToken
	err := r.db.WithContext(ctx).Where("token = ?", token).First(&t).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *ActiveTokenRepository) GetByEmailAndToken(ctx context.Context, email, token string) (*domain.ActiveToken, error) {
	var t domain.ActiveToken
	err := r.db.WithContext(ctx).
		Where("email = ? AND token = ?", strings.ToLower(strings.TrimSpace(email)), token).
		First(&t).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *ActiveTokenRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&domain.ActiveToken{}, id).Error
}

// DeleteOlderThan purges rows created before the cutoff. Rows that old
// hold refresh tokens that are past their signed expiry anyway.
func (r *ActiveTokenRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	tx := r.db.WithContext(ctx).
		Where("created_at < ?", cutoff).
		Delete(&domain.ActiveToken{})
	return tx.RowsAffected, tx.Error
}
