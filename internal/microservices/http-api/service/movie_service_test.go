package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"filmhub/internal/microservices/http-api/dto"
	"filmhub/internal/microservices/http-api/models"
	"filmhub/internal/microservices/http-api/repository"
	"filmhub/internal/notify"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestMovieService(db *gorm.DB, n *notify.Notifier) MovieService {
	return NewMovieService(repository.NewMovieRepo(db), repository.NewCategoryRepo(db), repository.NewLedgerRepo(db), n)
}

func TestMovieService_OnlyLikedRequiresRequester(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestMovieService(db, nil)

	_, err := svc.List(context.Background(), Requester{}, dto.MovieFilter{OnlyLiked: true})
	assert.True(t, errors.Is(err, ErrUnauthorized))

	_, err = svc.ListLiked(context.Background(), Requester{}, dto.PageQuery{})
	assert.True(t, errors.Is(err, ErrUnauthorized))
}

func TestMovieService_ListExactMode(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestMovieService(db, nil)
	ctx := context.Background()

	drama := seedCategory(t, db, "Drama")
	crime := seedCategory(t, db, "Crime")
	seedMovie(t, db, "Heat", 1995, drama, crime)
	seedMovie(t, db, "Ronin", 1998, crime)
	seedMovie(t, db, "Magnolia", 1999, drama)
	seedMovie(t, db, "Fargo", 1996, drama, crime, seedCategory(t, db, "Comedy"))

	page, err := svc.List(ctx, Requester{}, dto.MovieFilter{
		CategoryIDs: []int64{drama, crime},
		Mode:        models.CategoryModeExact,
		SortBy:      models.SortByTitle,
		SortDir:     models.SortAsc,
	})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Heat", page.Items[0].Title)
	assert.EqualValues(t, 1, page.TotalCount)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, dto.MovieListDefaultPageSize, page.PageSize)

	page, err = svc.List(ctx, Requester{}, dto.MovieFilter{
		CategoryIDs: []int64{drama, crime},
		Mode:        models.CategoryModeAny,
	})
	require.NoError(t, err)
	assert.EqualValues(t, 4, page.TotalCount)
}

func TestMovieService_PageBeyondEnd(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestMovieService(db, nil)
	seedMovie(t, db, "Alien", 1979)
	seedMovie(t, db, "Aliens", 1986)

	page, err := svc.List(context.Background(), Requester{}, dto.MovieFilter{
		Paging: dto.PageQuery{Page: intPtr(5), PageSize: intPtr(1)},
	})
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.NotNil(t, page.Items)
	assert.EqualValues(t, 2, page.TotalCount)
	assert.Equal(t, 2, page.TotalPages)
}

func TestMovieService_GetProjectsRequesterState(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestMovieService(db, nil)
	ledger := NewLedgerService(repository.NewLedgerRepo(db), repository.NewMovieRepo(db), repository.NewCommentRepository(db))
	ctx := context.Background()

	alice := seedUser(t, db, "alice@example.com")
	id := seedMovie(t, db, "Arrival", 2016)

	_, err := ledger.Like(ctx, alice, id)
	require.NoError(t, err)
	_, err = ledger.SetStatus(ctx, alice, id, models.WatchStatusWatched)
	require.NoError(t, err)

	got, err := svc.Get(ctx, alice, id)
	require.NoError(t, err)
	assert.True(t, got.LikedByMe)
	assert.EqualValues(t, 1, got.LikesCount)
	require.NotNil(t, got.MyStatus)
	assert.Equal(t, models.WatchStatusWatched, *got.MyStatus)

	anon, err := svc.Get(ctx, Requester{}, id)
	require.NoError(t, err)
	assert.False(t, anon.LikedByMe)
	assert.Nil(t, anon.MyStatus)

	_, err = svc.Get(ctx, alice, id+100)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestMovieService_CreateValidatesShape(t *testing.T) {
	db := setupTestDB(t)
	pub := newRecordingPublisher()
	svc := newTestMovieService(db, testNotifier(pub))
	ctx := context.Background()

	_, err := svc.Create(ctx, dto.MovieInput{Title: "Dune", Type: models.ContentTypeMovie, SeasonsCount: intPtr(2)})
	assert.True(t, errors.Is(err, ErrValidation))

	drama := seedCategory(t, db, "Drama")
	created, err := svc.Create(ctx, dto.MovieInput{
		Title:           "Dune",
		Year:            intPtr(2021),
		Type:            models.ContentTypeMovie,
		DurationMinutes: intPtr(155),
		CategoryIDs:     []int64{drama, 404},
	})
	require.NoError(t, err)
	require.Len(t, created.Categories, 1)
	assert.Equal(t, "Drama", created.Categories[0].Name)

	select {
	case e := <-pub.events:
		assert.Equal(t, notify.EventMovieCreated, e.Type)
		assert.Equal(t, created.ID, e.MovieID)
	case <-time.After(time.Second):
		t.Fatal("no movie.created event")
	}
}

func TestMovieService_PatchTypeChange(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestMovieService(db, nil)
	ctx := context.Background()
	id := seedMovie(t, db, "Fargo", 1996)

	series := models.ContentTypeSeries
	_, err := svc.Patch(ctx, id, dto.PatchMovieInput{Type: &series})
	assert.True(t, errors.Is(err, ErrValidation), "series without seasons must be rejected")

	got, err := svc.Patch(ctx, id, dto.PatchMovieInput{Type: &series, SeasonsCount: intPtr(5), EpisodesCount: intPtr(51)})
	require.NoError(t, err)
	assert.Equal(t, models.ContentTypeSeries, got.Type)
	assert.Nil(t, got.DurationMinutes)
	assert.Equal(t, 5, *got.SeasonsCount)
}

func TestMovieService_DeleteAndCategoryLinks(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestMovieService(db, nil)
	ctx := context.Background()
	drama := seedCategory(t, db, "Drama")
	id := seedMovie(t, db, "Heat", 1995)

	require.NoError(t, svc.AddCategory(ctx, id, drama))
	assert.True(t, errors.Is(svc.AddCategory(ctx, id, drama), ErrConflict))
	assert.True(t, errors.Is(svc.AddCategory(ctx, id, 999), ErrNotFound))
	assert.True(t, errors.Is(svc.AddCategory(ctx, 999, drama), ErrNotFound))

	require.NoError(t, svc.RemoveCategory(ctx, id, drama))
	assert.True(t, errors.Is(svc.RemoveCategory(ctx, id, drama), ErrNotFound))

	require.NoError(t, svc.Delete(ctx, id))
	assert.True(t, errors.Is(svc.Delete(ctx, id), ErrNotFound))
}
