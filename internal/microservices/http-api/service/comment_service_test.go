package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"filmhub/internal/microservices/http-api/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentService_AddAndList(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCommentService(repository.NewCommentRepository(db), repository.NewMovieRepo(db))
	ctx := context.Background()
	alice := seedUser(t, db, "alice@example.com")
	bob := seedUser(t, db, "bob@example.com")
	id := seedMovie(t, db, "Heat", 1995)

	_, err := svc.Add(ctx, alice, id, "  first  ")
	require.NoError(t, err)
	_, err = svc.Add(ctx, bob, id, "second")
	require.NoError(t, err)

	list, err := svc.List(ctx, alice, id)
	require.NoError(t, err)
	require.Len(t, list, 2)
	texts := []string{list[0].Text, list[1].Text}
	assert.ElementsMatch(t, []string{"first", "second"}, texts)
	for _, c := range list {
		assert.Equal(t, c.UserID == alice.UserID, c.CanDelete)
	}

	anon, err := svc.List(ctx, Requester{}, id)
	require.NoError(t, err)
	for _, c := range anon {
		assert.False(t, c.CanDelete)
	}

	_, err = svc.List(ctx, alice, id+1)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestCommentService_AddValidation(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCommentService(repository.NewCommentRepository(db), repository.NewMovieRepo(db))
	ctx := context.Background()
	alice := seedUser(t, db, "alice@example.com")
	id := seedMovie(t, db, "Heat", 1995)

	_, err := svc.Add(ctx, Requester{}, id, "hi")
	assert.True(t, errors.Is(err, ErrUnauthorized))

	_, err = svc.Add(ctx, alice, id+1, "hi")
	assert.True(t, errors.Is(err, ErrNotFound))

	_, err = svc.Add(ctx, alice, id, "   ")
	assert.True(t, errors.Is(err, ErrValidation))

	_, err = svc.Add(ctx, alice, id, strings.Repeat("a", 2001))
	assert.True(t, errors.Is(err, ErrValidation))
}

func TestCommentService_Delete(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCommentService(repository.NewCommentRepository(db), repository.NewMovieRepo(db))
	ctx := context.Background()
	alice := seedUser(t, db, "alice@example.com")
	bob := seedUser(t, db, "bob@example.com")
	id := seedMovie(t, db, "Heat", 1995)

	c, err := svc.Add(ctx, alice, id, "mine")
	require.NoError(t, err)

	assert.True(t, errors.Is(svc.DeleteOwn(ctx, bob, c.ID), ErrForbidden))
	require.NoError(t, svc.DeleteOwn(ctx, alice, c.ID))
	assert.True(t, errors.Is(svc.DeleteOwn(ctx, alice, c.ID), ErrNotFound))

	other, err := svc.Add(ctx, bob, id, "theirs")
	require.NoError(t, err)
	require.NoError(t, svc.DeleteAsAdmin(ctx, other.ID))
	assert.True(t, errors.Is(svc.DeleteAsAdmin(ctx, other.ID), ErrNotFound))
}
