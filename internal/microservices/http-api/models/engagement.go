package models

import "time"

type Rating struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID    string    `json:"userId" gorm:"type:uuid;not null;uniqueIndex:ux_ratings_user_movie,priority:1"`
	MovieID   int64     `json:"movieId" gorm:"not null;index;uniqueIndex:ux_ratings_user_movie,priority:2"`
	Score     int       `json:"score" gorm:"not null;check:score >= 1 AND score <= 10"`
	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updatedAt" gorm:"autoUpdateTime"`

	Movie *Movie `json:"-" gorm:"foreignKey:MovieID;constraint:OnDelete:CASCADE;"`
}

func (Rating) TableName() string {
	return "ratings"
}

type Like struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID    string    `json:"userId" gorm:"type:uuid;not null;uniqueIndex:ux_likes_user_movie,priority:1"`
	MovieID   int64     `json:"movieId" gorm:"not null;index;uniqueIndex:ux_likes_user_movie,priority:2"`
	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime"`

	Movie *Movie `json:"-" gorm:"foreignKey:MovieID;constraint:OnDelete:CASCADE;"`
}

func (Like) TableName() string {
	return "likes"
}

type Comment struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	MovieID   int64     `json:"movieId" gorm:"not null;index"`
	UserID    string    `json:"userId" gorm:"type:uuid;not null;index"`
	Text      string    `json:"text" gorm:"size:2000;not null"`
	CreatedAt time.Time `json:"createdAt"`

	// Associations
	User  *User  `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;"`
	Movie *Movie `json:"-" gorm:"foreignKey:MovieID;constraint:OnDelete:CASCADE;"`
}

func (Comment) TableName() string {
	return "comments"
}

type CommentLike struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	CommentID int64     `json:"commentId" gorm:"not null;index;uniqueIndex:ux_comment_likes_user_comment,priority:2"`
	UserID    string    `json:"userId" gorm:"type:uuid;not null;uniqueIndex:ux_comment_likes_user_comment,priority:1"`
	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime"`

	Comment *Comment `json:"-" gorm:"foreignKey:CommentID;constraint:OnDelete:CASCADE;"`
}

func (CommentLike) TableName() string {
	return "comment_likes"
}

// UserMovieStatus is the requester's watch status for a movie.
type UserMovieStatus struct {
	ID        int64       `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID    string      `json:"userId" gorm:"type:uuid;not null;uniqueIndex:ux_user_movie_statuses_user_movie,priority:1"`
	MovieID   int64       `json:"movieId" gorm:"not null;index;uniqueIndex:ux_user_movie_statuses_user_movie,priority:2"`
	Status    WatchStatus `json:"status" gorm:"size:16;not null"`
	UpdatedAt time.Time   `json:"updatedAt"`

	Movie *Movie `json:"-" gorm:"foreignKey:MovieID;constraint:OnDelete:CASCADE;"`
}

func (UserMovieStatus) TableName() string {
	return "user_movie_statuses"
}
