package domain

import "time"

// ActiveToken records one issued, not-yet-revoked refresh token.
//
// Existence of a row is the sole authority for refresh/logout validity:
// a structurally valid signed token whose row has been deleted is dead.
type ActiveToken struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	Email     string    `json:"email" gorm:"index;not null"`
	Token     string    `json:"-" gorm:"uniqueIndex;not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (ActiveToken) TableName() string { return "active_tokens" }
