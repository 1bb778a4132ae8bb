package dto

import "time"

// AddCommentRequest is the body of POST /movies/:id/comments.
type AddCommentRequest struct {
	Text string `json:"text" binding:"required,max=2000"`
}

type CommentResponse struct {
	ID         int64     `json:"id"`
	Text       string    `json:"text"`
	CreatedAt  time.Time `json:"createdAt"`
	UserID     string    `json:"userId"`
	UserName   string    `json:"userName"`
	LikesCount int64     `json:"likesCount"`
	LikedByMe  bool      `json:"likedByMe"`
	CanDelete  bool      `json:"canDelete"`
}
