package repository

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"gorm.io/gorm"

	"accountsvc/internal/database"
	"accountsvc/internal/domain"
)

func setupTokenRepo(t *testing.T) *ActiveTokenRepository {
	t.Helper()
	dsn := fmt.Sprintf("file:token_test_%s?mode=memory&cache=shared", t.Name())
	db, err := database.Connect(dsn)
	if err != nil {
		t.Fatalf("failed to open sqlite db: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to migrate db: %v", err)
	}
	return NewActiveTokenRepository(db)
}

func TestActiveTokenLifecycle(t *testing.T) {
	repo := setupTokenRepo(t)
	ctx := context.Background()

	token := &domain.ActiveToken{Email: "User@Example.com", Token: "refresh-abc"}
	if err := repo.Create(ctx, token); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if token.Email != "user@example.com" {
		t.Fatalf("expected lowercased email, got %q", token.Email)
	}

	got, err := repo.GetByToken(ctx, "refresh-abc")
	if err != nil {
		t.Fatalf("GetByToken returned error: %v", err)
	}
	if got.ID != token.ID {
		t.Fatalf("expected id %d, got %d", token.ID, got.ID)
	}

	got, err = repo.GetByEmailAndToken(ctx, "user@example.com", "refresh-abc")
	if err != nil {
		t.Fatalf("GetByEmailAndToken returned error: %v", err)
	}
	if got.ID != token.ID {
		t.Fatalf("expected id %d, got %d", token.ID, got.ID)
	}

	if _, err := repo.GetByEmailAndToken(ctx, "other@example.com", "refresh-abc"); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound for wrong email, got %v", err)
	}

	if err := repo.Delete(ctx, token.ID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if _, err := repo.GetByToken(ctx, "refresh-abc"); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound after delete, got %v", err)
	}
}

func TestDeleteOlderThan(t *testing.T) {
	repo := setupTokenRepo(t)
	ctx := context.Background()

	old := &domain.ActiveToken{Email: "old@example.com", Token: "refresh-old"}
	if err := repo.Create(ctx, old); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	recent := &domain.ActiveToken{Email: "recent@example.com", Token: "refresh-recent"}
	if err := repo.Create(ctx, recent); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	// age the first row past the cutoff
	if err := repo.db.Model(old).Update("created_at", time.Now().Add(-48*time.Hour)).Error; err != nil {
		t.Fatalf("failed to backdate row: %v", err)
	}

	removed, err := repo.DeleteOlderThan(ctx, time.Now().Add(-24*time.Hour))
	if err != nil {
		t.Fatalf("DeleteOlderThan returned error: %v", err)
	}
	if removed != 1 {
		t.Fatalf("expected 1 row removed, got %d", removed)
	}

	if _, err := repo.GetByToken(ctx, "refresh-recent"); err != nil {
		t.Fatalf("recent token should survive cleanup: %v", err)
	}
	if _, err := repo.GetByToken(ctx, "refresh-old"); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected old token gone, got %v", err)
	}
}
