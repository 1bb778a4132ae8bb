package service

import (
	"context"
	"strings"
	"time"

	"filmhub/internal/microservices/http-api/dto"
	"filmhub/internal/microservices/http-api/models"
	"filmhub/internal/microservices/http-api/repository"
)

const maxCommentLength = 2000

type CommentService interface {
	List(ctx context.Context, req Requester, movieID int64) ([]dto.CommentResponse, error)
	Add(ctx context.Context, req Requester, movieID int64, text string) (*dto.CommentResponse, error)
	// DeleteOwn lets the author remove their comment.
	DeleteOwn(ctx context.Context, req Requester, commentID int64) error
	// DeleteAsAdmin removes any comment; the role check happens in the router.
	DeleteAsAdmin(ctx context.Context, commentID int64) error
}

type commentService struct {
	comments repository.CommentRepository
	movies   *repository.MovieRepo
	now      func() time.Time
}

func NewCommentService(comments repository.CommentRepository, movies *repository.MovieRepo) CommentService {
	return &commentService{comments: comments, movies: movies, now: time.Now}
}

func (s *commentService) List(ctx context.Context, req Requester, movieID int64) ([]dto.CommentResponse, error) {
	ok, err := s.movies.Exists(ctx, movieID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, notFound("movie %d not found", movieID)
	}

	rows, err := s.comments.ListByMovie(ctx, movieID, req.UserID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CommentResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, dto.CommentResponse{
			ID:         row.ID,
			Text:       row.Text,
			CreatedAt:  row.CreatedAt,
			UserID:     row.UserID,
			UserName:   row.UserName,
			LikesCount: row.LikesCount,
			LikedByMe:  row.LikedByMe,
			CanDelete:  req.Authenticated() && (row.UserID == req.UserID || req.IsAdmin()),
		})
	}
	return out, nil
}

func (s *commentService) Add(ctx context.Context, req Requester, movieID int64, text string) (*dto.CommentResponse, error) {
	if !req.Authenticated() {
		return nil, unauthorized()
	}
	ok, err := s.movies.Exists(ctx, movieID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, notFound("movie %d not found", movieID)
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return nil, invalid("text is required")
	}
	if len([]rune(text)) > maxCommentLength {
		return nil, invalid("text must be at most %d characters", maxCommentLength)
	}

	c := &models.Comment{MovieID: movieID, UserID: req.UserID, Text: text, CreatedAt: s.now().UTC()}
	if err := s.comments.Create(ctx, c); err != nil {
		return nil, err
	}
	return &dto.CommentResponse{
		ID:        c.ID,
		Text:      c.Text,
		CreatedAt: c.CreatedAt,
		UserID:    c.UserID,
		UserName:  req.Username,
		CanDelete: true,
	}, nil
}

func (s *commentService) DeleteOwn(ctx context.Context, req Requester, commentID int64) error {
	if !req.Authenticated() {
		return unauthorized()
	}
	c, err := s.comments.GetByID(ctx, commentID)
	if err != nil {
		return lookupErr(err, "comment", commentID)
	}
	if c.UserID != req.UserID {
		return forbidden("only the author can delete this comment")
	}
	return s.comments.Delete(ctx, commentID)
}

func (s *commentService) DeleteAsAdmin(ctx context.Context, commentID int64) error {
	ok, err := s.comments.Exists(ctx, commentID)
	if err != nil {
		return err
	}
	if !ok {
		return notFound("comment %d not found", commentID)
	}
	return s.comments.Delete(ctx, commentID)
}
