package service

import (
	"context"
	"time"

	"filmhub/internal/microservices/http-api/dto"
	"filmhub/internal/microservices/http-api/models"
	"filmhub/internal/microservices/http-api/repository"
)

// LedgerService owns the per-user toggles: likes, ratings, comment likes and
// watch status. Adding what exists and removing what is absent both succeed.
type LedgerService interface {
	Like(ctx context.Context, req Requester, movieID int64) (*dto.LikeResponse, error)
	Unlike(ctx context.Context, req Requester, movieID int64) (*dto.LikeResponse, error)
	Rate(ctx context.Context, req Requester, movieID int64, score int) (*dto.RatingResponse, error)
	SetStatus(ctx context.Context, req Requester, movieID int64, status models.WatchStatus) (*dto.StatusResponse, error)
	ClearStatus(ctx context.Context, req Requester, movieID int64) error
	ListStatuses(ctx context.Context, req Requester) ([]dto.StatusResponse, error)
	LikeComment(ctx context.Context, req Requester, commentID int64) error
	UnlikeComment(ctx context.Context, req Requester, commentID int64) error
}

type ledgerService struct {
	ledger   *repository.LedgerRepo
	movies   *repository.MovieRepo
	comments repository.CommentRepository
	now      func() time.Time
}

func NewLedgerService(ledger *repository.LedgerRepo, movies *repository.MovieRepo, comments repository.CommentRepository) LedgerService {
	return &ledgerService{ledger: ledger, movies: movies, comments: comments, now: time.Now}
}

func (s *ledgerService) requireMovie(ctx context.Context, req Requester, movieID int64) error {
	if !req.Authenticated() {
		return unauthorized()
	}
	ok, err := s.movies.Exists(ctx, movieID)
	if err != nil {
		return err
	}
	if !ok {
		return notFound("movie %d not found", movieID)
	}
	return nil
}

func (s *ledgerService) requireComment(ctx context.Context, req Requester, commentID int64) error {
	if !req.Authenticated() {
		return unauthorized()
	}
	ok, err := s.comments.Exists(ctx, commentID)
	if err != nil {
		return err
	}
	if !ok {
		return notFound("comment %d not found", commentID)
	}
	return nil
}

func (s *ledgerService) Like(ctx context.Context, req Requester, movieID int64) (*dto.LikeResponse, error) {
	if err := s.requireMovie(ctx, req, movieID); err != nil {
		return nil, err
	}
	if _, err := s.ledger.AddLike(ctx, req.UserID, movieID); err != nil {
		return nil, err
	}
	return s.likeState(ctx, req, movieID)
}

func (s *ledgerService) Unlike(ctx context.Context, req Requester, movieID int64) (*dto.LikeResponse, error) {
	if !req.Authenticated() {
		return nil, unauthorized()
	}
	if _, err := s.ledger.RemoveLike(ctx, req.UserID, movieID); err != nil {
		return nil, err
	}
	return s.likeState(ctx, req, movieID)
}

func (s *ledgerService) likeState(ctx context.Context, req Requester, movieID int64) (*dto.LikeResponse, error) {
	stats, err := s.movies.LoadStats(ctx, []int64{movieID}, req.UserID)
	if err != nil {
		return nil, err
	}
	st := stats[movieID]
	return &dto.LikeResponse{Liked: st.LikedByMe, LikesCount: st.LikesCount}, nil
}

func (s *ledgerService) Rate(ctx context.Context, req Requester, movieID int64, score int) (*dto.RatingResponse, error) {
	if err := s.requireMovie(ctx, req, movieID); err != nil {
		return nil, err
	}
	if score < 1 || score > 10 {
		return nil, invalid("score must be between 1 and 10")
	}
	if err := s.ledger.UpsertRating(ctx, req.UserID, movieID, score); err != nil {
		return nil, err
	}
	stats, err := s.movies.LoadStats(ctx, []int64{movieID}, req.UserID)
	if err != nil {
		return nil, err
	}
	st := stats[movieID]
	return &dto.RatingResponse{MovieID: movieID, MyScore: score, Rating: st.Rating, RatingCount: st.RatingCount}, nil
}

func (s *ledgerService) SetStatus(ctx context.Context, req Requester, movieID int64, status models.WatchStatus) (*dto.StatusResponse, error) {
	if err := s.requireMovie(ctx, req, movieID); err != nil {
		return nil, err
	}
	if !status.Valid() {
		return nil, invalid("status must be one of: Watching, WantToWatch, Watched")
	}
	row, err := s.ledger.UpsertStatus(ctx, req.UserID, movieID, status, s.now().UTC())
	if err != nil {
		return nil, err
	}
	resp := dto.NewStatusResponse(row)
	return &resp, nil
}

func (s *ledgerService) ClearStatus(ctx context.Context, req Requester, movieID int64) error {
	if !req.Authenticated() {
		return unauthorized()
	}
	_, err := s.ledger.RemoveStatus(ctx, req.UserID, movieID)
	return err
}

func (s *ledgerService) ListStatuses(ctx context.Context, req Requester) ([]dto.StatusResponse, error) {
	if !req.Authenticated() {
		return nil, unauthorized()
	}
	rows, err := s.ledger.ListStatuses(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.StatusResponse, 0, len(rows))
	for i := range rows {
		out = append(out, dto.NewStatusResponse(&rows[i]))
	}
	return out, nil
}

func (s *ledgerService) LikeComment(ctx context.Context, req Requester, commentID int64) error {
	if err := s.requireComment(ctx, req, commentID); err != nil {
		return err
	}
	_, err := s.ledger.AddCommentLike(ctx, req.UserID, commentID)
	return err
}

func (s *ledgerService) UnlikeComment(ctx context.Context, req Requester, commentID int64) error {
	if !req.Authenticated() {
		return unauthorized()
	}
	_, err := s.ledger.RemoveCommentLike(ctx, req.UserID, commentID)
	return err
}
