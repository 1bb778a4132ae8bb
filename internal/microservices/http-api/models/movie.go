package models

import (
	"errors"
	"fmt"
	"time"
)

const (
	MinYear        = 1888
	MaxYear        = 2100
	MaxTitleLen    = 200
	MaxDescLen     = 4000
	MaxCoverURLLen = 500
	MaxDuration    = 10000
)

type Movie struct {
	ID              int64       `json:"id" gorm:"primaryKey;autoIncrement"`
	Title           string      `json:"title" gorm:"size:200;not null;index:idx_movies_title_year,priority:1"`
	Description     *string     `json:"description,omitempty" gorm:"size:4000"`
	CoverURL        *string     `json:"coverUrl,omitempty" gorm:"size:500"`
	Year            *int        `json:"year,omitempty" gorm:"index:idx_movies_title_year,priority:2"`
	Type            ContentType `json:"type" gorm:"size:16;not null;index"`
	DurationMinutes *int        `json:"durationMinutes,omitempty"`
	SeasonsCount    *int        `json:"seasonsCount,omitempty"`
	EpisodesCount   *int        `json:"episodesCount,omitempty"`
	CreatedAt       time.Time   `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt       time.Time   `json:"updatedAt" gorm:"autoUpdateTime"`

	// association
	Categories []MovieCategory `json:"-" gorm:"foreignKey:MovieID;constraint:OnDelete:CASCADE;"`
}

func (Movie) TableName() string {
	return "movies"
}

// ValidateContentShape checks the type-dependent fields: a Movie carries a
// duration and no seasons/episodes, a Series carries both counts and no duration.
func ValidateContentShape(t ContentType, duration, seasons, episodes *int) error {
	var errs []error
	switch t {
	case ContentTypeMovie:
		if duration == nil {
			errs = append(errs, errors.New("durationMinutes is required for a Movie"))
		} else if *duration < 1 || *duration > MaxDuration {
			errs = append(errs, fmt.Errorf("durationMinutes must be between 1 and %d", MaxDuration))
		}
		if seasons != nil || episodes != nil {
			errs = append(errs, errors.New("seasonsCount and episodesCount must be empty for a Movie"))
		}
	case ContentTypeSeries:
		if seasons == nil || episodes == nil {
			errs = append(errs, errors.New("seasonsCount and episodesCount are required for a Series"))
		}
		if seasons != nil && *seasons < 1 {
			errs = append(errs, errors.New("seasonsCount must be greater than 0"))
		}
		if episodes != nil && *episodes < 1 {
			errs = append(errs, errors.New("episodesCount must be greater than 0"))
		}
		if duration != nil {
			errs = append(errs, errors.New("durationMinutes must be empty for a Series"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown content type %q", t))
	}
	return errors.Join(errs...)
}

// Validate checks field ranges and the content shape of a movie about to be stored.
func (m *Movie) Validate() error {
	var errs []error
	if m.Title == "" {
		errs = append(errs, errors.New("title is required"))
	} else if len([]rune(m.Title)) > MaxTitleLen {
		errs = append(errs, fmt.Errorf("title must be at most %d characters", MaxTitleLen))
	}
	if m.Description != nil && len([]rune(*m.Description)) > MaxDescLen {
		errs = append(errs, fmt.Errorf("description must be at most %d characters", MaxDescLen))
	}
	if m.CoverURL != nil && len(*m.CoverURL) > MaxCoverURLLen {
		errs = append(errs, fmt.Errorf("coverUrl must be at most %d characters", MaxCoverURLLen))
	}
	if m.Year != nil && !ValidYear(*m.Year) {
		errs = append(errs, fmt.Errorf("year must be between %d and %d", MinYear, MaxYear))
	}
	if err := ValidateContentShape(m.Type, m.DurationMinutes, m.SeasonsCount, m.EpisodesCount); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func ValidYear(y int) bool {
	return y >= MinYear && y <= MaxYear
}

// MovieStats is the per-request aggregate attached to a movie projection.
// It is never persisted.
type MovieStats struct {
	MovieID     int64
	Rating      float64
	RatingCount int64
	LikesCount  int64
	LikedByMe   bool
	Categories  []Category
}
