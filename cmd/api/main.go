package main

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"accountsvc/internal/config"
	"accountsvc/internal/database"
	"accountsvc/internal/middleware"
	"accountsvc/internal/modules/auth"
	"accountsvc/internal/modules/user"
	jwtsvc "accountsvc/internal/pkg/jwt"
	"accountsvc/internal/repository"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal(err)
	}

	userRepo := repository.NewUserRepository(db)
	tokenRepo := repository.NewActiveTokenRepository(db)

	accessSigner := jwtsvc.New(cfg.AccessSecret, cfg.AccessTTL)
	refreshSigner := jwtsvc.New(cfg.RefreshSecret, cfg.RefreshTTL)

	authService := auth.NewService(userRepo, tokenRepo, accessSigner, refreshSigner)
	authHandler := auth.NewHandler(authService, cfg.DebugErrors)

	userService := user.NewService(userRepo)
	userHandler := user.NewHandler(userService, cfg.DebugErrors)

	r := gin.Default()
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorLogger())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	root := r.Group("/")
	{
		// public
		authHandler.RegisterRoutes(root)
		userHandler.RegisterPublicRoutes(root)

		// protected (user directory reads and writes)
		protected := root.Group("/")
		protected.Use(middleware.JWTAuth(accessSigner))
		{
			userHandler.RegisterProtectedRoutes(protected)
		}
	}

	if err := r.Run(cfg.Addr); err != nil {
		log.Fatal(err)
	}
}
