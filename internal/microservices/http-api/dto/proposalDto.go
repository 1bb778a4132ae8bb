package dto

import (
	"strings"
	"time"

	"filmhub/internal/microservices/http-api/models"
)

const (
	MyProposalsDefaultPageSize    = 10
	MyProposalsMaxPageSize        = 50
	AdminProposalsDefaultPageSize = 20
	AdminProposalsMaxPageSize     = 100
)

// CreateProposalRequest is the body of POST /movie-proposals.
type CreateProposalRequest struct {
	Title       string             `json:"title" binding:"required,max=200"`
	Year        int                `json:"year" binding:"required,min=1888,max=2100"`
	Type        models.ContentType `json:"type" binding:"required,oneof=Movie Series"`
	CategoryIDs []int64            `json:"categoryIds" binding:"required,min=1"`
	Reason      string             `json:"reason" binding:"required,max=2000"`
}

func (d CreateProposalRequest) ToModel(userID string, now time.Time) models.MovieProposal {
	return models.MovieProposal{
		Title:     strings.TrimSpace(d.Title),
		Year:      d.Year,
		Reason:    strings.TrimSpace(d.Reason),
		Type:      d.Type,
		Status:    models.ProposalPending,
		CreatedAt: now,
		UserID:    userID,
	}
}

// AdminProposalQuery is the query string of GET /admin/movie-proposals.
type AdminProposalQuery struct {
	PageQuery
	Status string `form:"status"`
}

type ProposalResponse struct {
	ID         int64                 `json:"id"`
	Title      string                `json:"title"`
	Year       int                   `json:"year"`
	Reason     string                `json:"reason"`
	Type       models.ContentType    `json:"type"`
	Status     models.ProposalStatus `json:"status"`
	CreatedAt  time.Time             `json:"createdAt"`
	UserID     string                `json:"userId"`
	Categories []string              `json:"categories"`
}

func NewProposalResponse(p *models.MovieProposal) ProposalResponse {
	resp := ProposalResponse{
		ID:         p.ID,
		Title:      p.Title,
		Year:       p.Year,
		Reason:     p.Reason,
		Type:       p.Type,
		Status:     p.Status,
		CreatedAt:  p.CreatedAt,
		UserID:     p.UserID,
		Categories: make([]string, 0, len(p.Categories)),
	}
	for _, link := range p.Categories {
		if link.Category != nil {
			resp.Categories = append(resp.Categories, link.Category.Name)
		}
	}
	return resp
}

// ApproveResponse reports the movie created from an approved proposal.
type ApproveResponse struct {
	ProposalID int64 `json:"proposalId"`
	MovieID    int64 `json:"movieId"`
}
