package database

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"filmhub/internal/microservices/http-api/models"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, Migrate(db))
	return db
}

func TestSeedAdmin_CreatesOnce(t *testing.T) {
	db := setupTestDB(t)
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctx := context.Background()

	require.NoError(t, SeedAdmin(ctx, db, "admin@filmhub.local", "Admin123!", log))
	require.NoError(t, SeedAdmin(ctx, db, "admin@filmhub.local", "Admin123!", log))

	var users []models.User
	require.NoError(t, db.Find(&users).Error)
	require.Len(t, users, 1)
	assert.Equal(t, models.RoleAdmin, users[0].Role)
	assert.NotEmpty(t, users[0].ID)
}

func TestSeedAdmin_PromotesExistingUser(t *testing.T) {
	db := setupTestDB(t)
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	require.NoError(t, db.Create(&models.User{Username: "a", Email: "a@x.io", Password: "h", Role: models.RoleUser}).Error)
	require.NoError(t, SeedAdmin(context.Background(), db, "a@x.io", "whatever", log))

	var u models.User
	require.NoError(t, db.Where("email = ?", "a@x.io").First(&u).Error)
	assert.Equal(t, models.RoleAdmin, u.Role)
}

func TestSeedAdmin_SkippedWithoutCredentials(t *testing.T) {
	db := setupTestDB(t)
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	require.NoError(t, SeedAdmin(context.Background(), db, "", "", log))

	var n int64
	require.NoError(t, db.Model(&models.User{}).Count(&n).Error)
	assert.Zero(t, n)
}

func TestIsUniqueViolation(t *testing.T) {
	db := setupTestDB(t)

	require.NoError(t, db.Create(&models.Category{Name: "Drama"}).Error)
	err := db.Create(&models.Category{Name: "Drama"}).Error
	assert.True(t, IsUniqueViolation(err))

	assert.True(t, IsUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.False(t, IsUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, IsUniqueViolation(errors.New("boom")))
	assert.False(t, IsUniqueViolation(nil))
}
