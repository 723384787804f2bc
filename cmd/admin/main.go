package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/lesson-calendar-api/internal/repository"
	"github.com/noah-isme/lesson-calendar-api/internal/service"
	"github.com/noah-isme/lesson-calendar-api/pkg/config"
	"github.com/noah-isme/lesson-calendar-api/pkg/database"
	"github.com/noah-isme/lesson-calendar-api/pkg/logger"
)

// admin creates the administrator account, or resets its password when the
// email already exists. The password may come from ADMIN_PASSWORD to keep it
// out of shell history.
func main() {
	var email, password, fullName string
	flag.StringVar(&email, "email", os.Getenv("ADMIN_EMAIL"), "Administrator email")
	flag.StringVar(&password, "password", "", "Administrator password (defaults to $ADMIN_PASSWORD)")
	flag.StringVar(&fullName, "name", "Administrator", "Display name for a new account")
	flag.Parse()
	if password == "" {
		password = os.Getenv("ADMIN_PASSWORD")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		logr.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer db.Close()
	if err := database.EnsureSchema(ctx, db); err != nil {
		logr.Fatal("failed to apply schema", zap.Error(err))
	}

	auth := service.NewAuthService(repository.NewUserRepository(db), service.NewValidator(), logr, service.AuthConfig{
		TokenSecret: cfg.JWT.Secret,
		TokenExpiry: cfg.JWT.Expiration,
		Issuer:      cfg.JWT.Issuer,
	})
	user, created, err := auth.EnsureAdmin(ctx, email, password, fullName)
	if err != nil {
		logr.Fatal("failed to provision administrator", zap.Error(err))
	}
	if created {
		logr.Info("administrator created", zap.String("email", user.Email), zap.String("id", user.ID))
		return
	}
	logr.Info("administrator password reset", zap.String("email", user.Email), zap.String("id", user.ID))
}
