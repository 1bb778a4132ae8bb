package service

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"filmhub/database"
	"filmhub/internal/microservices/http-api/models"
	"filmhub/internal/microservices/http-api/repository"
	"filmhub/internal/notify"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, database.Migrate(db))
	return db
}

// recordingPublisher keeps every event it was handed.
type recordingPublisher struct {
	events chan notify.Event
}

func newRecordingPublisher() *recordingPublisher {
	return &recordingPublisher{events: make(chan notify.Event, 16)}
}

func (p *recordingPublisher) Publish(_ context.Context, e notify.Event) error {
	p.events <- e
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func testNotifier(pub notify.Publisher) *notify.Notifier {
	return notify.NewNotifier(pub, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func seedUser(t *testing.T, db *gorm.DB, email string) Requester {
	t.Helper()
	u := &models.User{Username: email, Email: email, Password: "x", Role: models.RoleUser}
	require.NoError(t, repository.NewUserRepository(db).Create(context.Background(), u))
	return Requester{UserID: u.ID, Username: u.Username, Roles: u.Roles()}
}

func adminRequester() Requester {
	return Requester{UserID: "00000000-0000-0000-0000-0000000000ad", Username: "admin", Roles: []string{models.RoleUser, models.RoleAdmin}}
}

func seedCategory(t *testing.T, db *gorm.DB, name string) int64 {
	t.Helper()
	c := &models.Category{Name: name}
	require.NoError(t, repository.NewCategoryRepo(db).Create(context.Background(), c))
	return c.ID
}

func intPtr(v int) *int { return &v }

func seedMovie(t *testing.T, db *gorm.DB, title string, year int, categoryIDs ...int64) int64 {
	t.Helper()
	m := &models.Movie{Title: title, Year: intPtr(year), Type: models.ContentTypeMovie, DurationMinutes: intPtr(110)}
	require.NoError(t, repository.NewMovieRepo(db).Create(context.Background(), m, categoryIDs))
	return m.ID
}
