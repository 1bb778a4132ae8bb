package dto

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// PagedResponse is the envelope of every paged endpoint.
type PagedResponse[T any] struct {
	Items      []T   `json:"items"`
	TotalCount int64 `json:"totalCount"`
	Page       int   `json:"page"`
	PageSize   int   `json:"pageSize"`
	TotalPages int   `json:"totalPages"`
}

// NewPagedResponse computes totalPages as ceil(total / pageSize).
func NewPagedResponse[T any](items []T, total int64, page, pageSize int) *PagedResponse[T] {
	if items == nil {
		items = []T{}
	}
	totalPages := 0
	if pageSize > 0 {
		totalPages = int(total / int64(pageSize))
		if total%int64(pageSize) != 0 {
			totalPages++
		}
	}
	return &PagedResponse[T]{
		Items:      items,
		TotalCount: total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}
}

// PageQuery is the raw page/pageSize pair of a listing request.
type PageQuery struct {
	Page     *int `form:"page"`
	PageSize *int `form:"pageSize"`
}

// Clamp applies the defaults for absent values and bounds page to >= 1 and
// pageSize to [1, maxSize].
func (q PageQuery) Clamp(defaultSize, maxSize int) (page, pageSize int) {
	page, pageSize = 1, defaultSize
	if q.Page != nil {
		page = max(*q.Page, 1)
	}
	if q.PageSize != nil {
		pageSize = min(max(*q.PageSize, 1), maxSize)
	}
	return page, pageSize
}

// ProblemResponse is the body of every error response.
type ProblemResponse struct {
	Status int    `json:"status"`
	Title  string `json:"title"`
	Detail string `json:"detail,omitempty"`
}

// DescribeBindingError turns a gin binding failure into a client-facing detail.
func DescribeBindingError(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return "malformed request: " + err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, describeField(fe))
	}
	return strings.Join(parts, "; ")
}

func describeField(fe validator.FieldError) string {
	field := lowerFirst(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	case "email":
		return field + " must be a valid email address"
	case "required_for_movie", "required_for_series":
		return fmt.Sprintf("%s is required for %s", field, fe.Param())
	case "empty_for_movie", "empty_for_series":
		return fmt.Sprintf("%s must be empty for %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed on %s", field, fe.Tag())
	}
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}

// ParseIDList accepts repeated values and comma-separated lists alike.
func ParseIDList(values []string) ([]int64, error) {
	var ids []int64
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			id, err := strconv.ParseInt(part, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid id %q", part)
			}
			ids = append(ids, id)
		}
	}
	return ids, nil
}
