package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"

	"accountsvc/internal/config"
	"accountsvc/internal/database"
	"accountsvc/internal/repository"
)

// Purges active-token rows older than the refresh TTL. Tokens that old
// have passed their signed expiry, so the rows only take up space.
func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}

	repo := repository.NewActiveTokenRepository(db)
	cutoff := time.Now().Add(-cfg.RefreshTTL)

	removed, err := repo.DeleteOlderThan(context.Background(), cutoff)
	if err != nil {
		log.Fatalf("cleanup active_tokens failed: %v", err)
	}

	log.Printf("token cleanup completed: active_tokens=%d cutoff=%s", removed, cutoff.Format(time.RFC3339))
}
