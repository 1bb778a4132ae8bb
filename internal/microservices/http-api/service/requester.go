package service

import (
	"slices"

	"filmhub/internal/microservices/http-api/models"
)

// Requester is the caller identity resolved by the auth middleware. The zero
// value is an anonymous caller.
type Requester struct {
	UserID   string
	Username string
	Roles    []string
}

func (r Requester) Authenticated() bool {
	return r.UserID != ""
}

func (r Requester) HasRole(role string) bool {
	return slices.Contains(r.Roles, role)
}

func (r Requester) IsAdmin() bool {
	return r.HasRole(models.RoleAdmin)
}
