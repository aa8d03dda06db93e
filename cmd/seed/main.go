package main

import (
	"log"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"accountsvc/internal/config"
	"accountsvc/internal/database"
	"accountsvc/internal/domain"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := database.Migrate(db); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM active_tokens")
	db.Exec("DELETE FROM users")

	log.Println("Creating users...")

	users := []struct {
		email    string
		password string
		name     string
	}{
		{"admin@accounts.local", "admin123", "Admin"},
		{"alice@accounts.local", "alice123", "Alice"},
		{"bob@accounts.local", "bob123", "Bob"},
	}

	for _, u := range users {
		hash, err := bcrypt.GenerateFromPassword([]byte(u.password), bcrypt.DefaultCost)
		if err != nil {
			log.Fatal("hash failed:", err)
		}
		if err := db.Create(&domain.User{
			Email:        u.email,
			PasswordHash: string(hash),
			Name:         u.name,
		}).Error; err != nil {
			log.Fatalf("seed user %s failed: %v", u.email, err)
		}
		log.Printf("created %s (password: %s)", u.email, u.password)
	}

	log.Println("Seed completed")
}
