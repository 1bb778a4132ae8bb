package dto

import (
	"time"

	"filmhub/internal/microservices/http-api/models"
)

// RateMovieRequest is the body of POST /movies/:id/ratings.
type RateMovieRequest struct {
	Score int `json:"score" binding:"required,min=1,max=10"`
}

type RatingResponse struct {
	MovieID     int64   `json:"movieId"`
	MyScore     int     `json:"myScore"`
	Rating      float64 `json:"rating"`
	RatingCount int64   `json:"ratingCount"`
}

// SetStatusRequest is the body of PUT /movies/:id/status.
type SetStatusRequest struct {
	Status models.WatchStatus `json:"status" binding:"required,oneof=Watching WantToWatch Watched"`
}

type StatusResponse struct {
	MovieID   int64              `json:"movieId"`
	Status    models.WatchStatus `json:"status"`
	UpdatedAt time.Time          `json:"updatedAt"`
}

func NewStatusResponse(s *models.UserMovieStatus) StatusResponse {
	return StatusResponse{MovieID: s.MovieID, Status: s.Status, UpdatedAt: s.UpdatedAt}
}

type LikeResponse struct {
	Liked      bool  `json:"liked"`
	LikesCount int64 `json:"likesCount"`
}
