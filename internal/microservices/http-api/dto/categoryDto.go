package dto

import "filmhub/internal/microservices/http-api/models"

// CategoryRequest is the body of POST and PUT /categories.
type CategoryRequest struct {
	Name string `json:"name" binding:"required,max=100"`
}

func NewCategoryResponse(c *models.Category) CategoryResponse {
	return CategoryResponse{ID: c.ID, Name: c.Name}
}
