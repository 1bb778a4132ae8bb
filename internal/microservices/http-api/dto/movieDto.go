package dto

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	"filmhub/internal/microservices/http-api/models"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

const (
	MovieListDefaultPageSize = 10
	LikedListDefaultPageSize = 16
	MovieListMaxPageSize     = 100
)

// MovieListQuery is the query string of GET /movies.
type MovieListQuery struct {
	PageQuery
	Search      string   `form:"search"`
	Type        string   `form:"type"`
	CategoryIDs []string `form:"categoryIds"`
	Mode        string   `form:"mode"`
	OnlyLiked   bool     `form:"onlyLiked"`
	SortBy      string   `form:"sortBy"`
	SortDir     string   `form:"sortDir"`
}

// MovieFilter is a parsed listing request. Paging is clamped later by the service.
type MovieFilter struct {
	Search      string
	Type        models.ContentType
	CategoryIDs []int64
	Mode        models.CategoryMode
	OnlyLiked   bool
	SortBy      models.MovieSortBy
	SortDir     models.SortDirection
	Paging      PageQuery
}

// Filter parses the enumerations; unknown values are rejected.
func (q MovieListQuery) Filter() (MovieFilter, error) {
	f := MovieFilter{
		Search:    q.Search,
		OnlyLiked: q.OnlyLiked,
		Mode:      models.CategoryModeAny,
		SortBy:    models.SortByTitle,
		SortDir:   models.SortAsc,
		Paging:    q.PageQuery,
	}
	var ok bool
	if q.Type != "" {
		if f.Type, ok = models.ParseContentType(q.Type); !ok {
			return f, fmt.Errorf("type must be one of: Movie, Series")
		}
	}
	if q.Mode != "" {
		if f.Mode, ok = models.ParseCategoryMode(q.Mode); !ok {
			return f, fmt.Errorf("mode must be one of: Any, Exact")
		}
	}
	if q.SortBy != "" {
		if f.SortBy, ok = models.ParseMovieSortBy(q.SortBy); !ok {
			return f, fmt.Errorf("sortBy must be one of: Title, Year, Rating")
		}
	}
	if q.SortDir != "" {
		if f.SortDir, ok = models.ParseSortDirection(q.SortDir); !ok {
			return f, fmt.Errorf("sortDir must be one of: Asc, Desc")
		}
	}
	ids, err := ParseIDList(q.CategoryIDs)
	if err != nil {
		return f, fmt.Errorf("categoryIds: %w", err)
	}
	f.CategoryIDs = ids
	return f, nil
}

// MovieInput is the body of POST /movies and PUT /movies/:id.
type MovieInput struct {
	Title           string             `json:"title" binding:"required,max=200"`
	Description     *string            `json:"description" binding:"omitempty,max=4000"`
	CoverURL        *string            `json:"coverUrl" binding:"omitempty,max=500"`
	Year            *int               `json:"year" binding:"omitempty,min=1888,max=2100"`
	Type            models.ContentType `json:"type" binding:"required,oneof=Movie Series"`
	DurationMinutes *int               `json:"durationMinutes" binding:"omitempty,min=1,max=10000"`
	SeasonsCount    *int               `json:"seasonsCount" binding:"omitempty,min=1"`
	EpisodesCount   *int               `json:"episodesCount" binding:"omitempty,min=1"`
	CategoryIDs     []int64            `json:"categoryIds"`
}

func (d MovieInput) ToModel() models.Movie {
	return models.Movie{
		Title:           strings.TrimSpace(d.Title),
		Description:     d.Description,
		CoverURL:        d.CoverURL,
		Year:            d.Year,
		Type:            d.Type,
		DurationMinutes: d.DurationMinutes,
		SeasonsCount:    d.SeasonsCount,
		EpisodesCount:   d.EpisodesCount,
	}
}

// ApplyTo overwrites every editable field of m.
func (d MovieInput) ApplyTo(m *models.Movie) {
	src := d.ToModel()
	src.ID, src.CreatedAt = m.ID, m.CreatedAt
	*m = src
}

// PatchMovieInput is the body of PATCH /movies/:id. Absent fields keep their value.
type PatchMovieInput struct {
	Title           *string             `json:"title" binding:"omitempty,min=1,max=200"`
	Description     *string             `json:"description" binding:"omitempty,max=4000"`
	CoverURL        *string             `json:"coverUrl" binding:"omitempty,max=500"`
	Year            *int                `json:"year" binding:"omitempty,min=1888,max=2100"`
	Type            *models.ContentType `json:"type" binding:"omitempty,oneof=Movie Series"`
	DurationMinutes *int                `json:"durationMinutes" binding:"omitempty,min=1,max=10000"`
	SeasonsCount    *int                `json:"seasonsCount" binding:"omitempty,min=1"`
	EpisodesCount   *int                `json:"episodesCount" binding:"omitempty,min=1"`
}

// ApplyTo merges the present fields into m. A type change drops the fields
// of the previous shape unless the patch sets them again.
func (d PatchMovieInput) ApplyTo(m *models.Movie) {
	if d.Title != nil {
		m.Title = strings.TrimSpace(*d.Title)
	}
	if d.Description != nil {
		m.Description = d.Description
	}
	if d.CoverURL != nil {
		m.CoverURL = d.CoverURL
	}
	if d.Year != nil {
		m.Year = d.Year
	}
	if d.Type != nil && *d.Type != m.Type {
		m.Type = *d.Type
		switch m.Type {
		case models.ContentTypeMovie:
			m.SeasonsCount, m.EpisodesCount = nil, nil
		case models.ContentTypeSeries:
			m.DurationMinutes = nil
		}
	}
	if d.DurationMinutes != nil {
		m.DurationMinutes = d.DurationMinutes
	}
	if d.SeasonsCount != nil {
		m.SeasonsCount = d.SeasonsCount
	}
	if d.EpisodesCount != nil {
		m.EpisodesCount = d.EpisodesCount
	}
}

type CategoryResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// MovieResponse is the movie projection. Only the count fields that match
// the type are populated.
type MovieResponse struct {
	ID              int64               `json:"id"`
	Title           string              `json:"title"`
	Description     *string             `json:"description"`
	CoverURL        *string             `json:"coverUrl"`
	Year            *int                `json:"year"`
	Type            models.ContentType  `json:"type"`
	DurationMinutes *int                `json:"durationMinutes"`
	SeasonsCount    *int                `json:"seasonsCount"`
	EpisodesCount   *int                `json:"episodesCount"`
	Rating          float64             `json:"rating"`
	RatingCount     int64               `json:"ratingCount"`
	LikesCount      int64               `json:"likesCount"`
	LikedByMe       bool                `json:"likedByMe"`
	Categories      []CategoryResponse  `json:"categories"`
	MyStatus        *models.WatchStatus `json:"myStatus,omitempty"`
}

func NewMovieResponse(m *models.Movie, stats models.MovieStats) MovieResponse {
	resp := MovieResponse{
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description,
		CoverURL:    m.CoverURL,
		Year:        m.Year,
		Type:        m.Type,
		Rating:      stats.Rating,
		RatingCount: stats.RatingCount,
		LikesCount:  stats.LikesCount,
		LikedByMe:   stats.LikedByMe,
		Categories:  make([]CategoryResponse, 0, len(stats.Categories)),
	}
	switch m.Type {
	case models.ContentTypeMovie:
		resp.DurationMinutes = m.DurationMinutes
	case models.ContentTypeSeries:
		resp.SeasonsCount, resp.EpisodesCount = m.SeasonsCount, m.EpisodesCount
	}
	for _, c := range stats.Categories {
		resp.Categories = append(resp.Categories, CategoryResponse{ID: c.ID, Name: c.Name})
	}
	return resp
}

var registerOnce sync.Once

// RegisterValidators installs the struct-level content shape rule on gin's
// validator and reports fields by their JSON name. Safe to call more than once.
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return fld.Name
			}
			return name
		})
		v.RegisterStructValidation(movieInputShape, MovieInput{})
	})
}

func movieInputShape(sl validator.StructLevel) {
	in := sl.Current().Interface().(MovieInput)
	switch in.Type {
	case models.ContentTypeMovie:
		if in.DurationMinutes == nil {
			sl.ReportError(in.DurationMinutes, "durationMinutes", "DurationMinutes", "required_for_movie", "Movie")
		}
		if in.SeasonsCount != nil {
			sl.ReportError(in.SeasonsCount, "seasonsCount", "SeasonsCount", "empty_for_movie", "Movie")
		}
		if in.EpisodesCount != nil {
			sl.ReportError(in.EpisodesCount, "episodesCount", "EpisodesCount", "empty_for_movie", "Movie")
		}
	case models.ContentTypeSeries:
		if in.SeasonsCount == nil {
			sl.ReportError(in.SeasonsCount, "seasonsCount", "SeasonsCount", "required_for_series", "Series")
		}
		if in.EpisodesCount == nil {
			sl.ReportError(in.EpisodesCount, "episodesCount", "EpisodesCount", "required_for_series", "Series")
		}
		if in.DurationMinutes != nil {
			sl.ReportError(in.DurationMinutes, "durationMinutes", "DurationMinutes", "empty_for_series", "Series")
		}
	}
}
