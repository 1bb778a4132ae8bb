package database

import (
	"context"
	"errors"
	"fmt"
	"log/slog" // use slog for structured logging
	"time"

	"filmhub/internal/config"
	"filmhub/internal/microservices/http-api/models"
	"filmhub/internal/middleware/auth"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// uniqueViolation is the postgres SQLSTATE for a unique index conflict.
const uniqueViolation = "23505"

// OpenGorm opens the catalog store, verifies the connection and migrates the schema.
func OpenGorm(cfg *config.Config, log *slog.Logger) (*gorm.DB, error) {
	gormLogLevel := logger.Warn
	if cfg.IsDevelopment() && cfg.LogLevel == "debug" {
		gormLogLevel = logger.Info
	}

	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(gormLogLevel),
		NowFunc:        func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql handle: %w", err)
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	// Verify the connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		// close the db handle if ping fails to avoid resource leak
		sqlDB.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := Migrate(db); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Info("Connected to the database successfully")
	return db, nil
}

// Migrate creates or updates every table the API uses.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Movie{},
		&models.MovieCategory{},
		&models.Rating{},
		&models.Like{},
		&models.Comment{},
		&models.CommentLike{},
		&models.UserMovieStatus{},
		&models.MovieProposal{},
		&models.MovieProposalCategory{},
	)
}

// SeedAdmin creates the administrator account when it does not exist yet.
// An existing account with that email is promoted to admin.
func SeedAdmin(ctx context.Context, db *gorm.DB, email, password string, log *slog.Logger) error {
	if email == "" || password == "" {
		return nil
	}

	var existing models.User
	err := db.WithContext(ctx).Where("email = ?", email).First(&existing).Error
	switch {
	case err == nil:
		if existing.Role == models.RoleAdmin {
			return nil
		}
		if err := db.WithContext(ctx).Model(&existing).Update("role", models.RoleAdmin).Error; err != nil {
			return fmt.Errorf("promote admin: %w", err)
		}
		log.Info("promoted existing user to admin", "email", email)
		return nil
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("find admin: %w", err)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}
	admin := &models.User{
		Username: email,
		Email:    email,
		Password: hash,
		Role:     models.RoleAdmin,
	}
	if err := db.WithContext(ctx).Create(admin).Error; err != nil {
		if IsUniqueViolation(err) {
			// another instance seeded it first
			return nil
		}
		return fmt.Errorf("create admin: %w", err)
	}
	log.Info("seeded admin account", "email", email)
	return nil
}

// IsUniqueViolation reports whether err is a unique index conflict, either
// translated by gorm or surfaced raw by the postgres driver.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
