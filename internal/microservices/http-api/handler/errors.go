package handler

import (
	"errors"
	"net/http"
	"strconv"

	"filmhub/internal/microservices/http-api/dto"
	"filmhub/internal/microservices/http-api/middleware"
	"filmhub/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

// Guards are the route-level middlewares handlers attach per endpoint.
type Guards struct {
	Optional gin.HandlerFunc // resolves the requester when a token is sent
	User     gin.HandlerFunc // requires a valid token
	Admin    gin.HandlerFunc // requires the Admin role; runs after User
}

// writeError maps a service error onto a problem response. Anything that is
// not one of the service kinds is a 500 and is attached to the context for
// the request logger.
func writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrConflict):
		status = http.StatusConflict
	case errors.Is(err, service.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, service.ErrUnauthorized):
		status = http.StatusUnauthorized
	case errors.Is(err, service.ErrForbidden):
		status = http.StatusForbidden
	}

	if status == http.StatusInternalServerError {
		_ = c.Error(err)
		middleware.Abort(c, status, "internal server error")
		return
	}
	middleware.Abort(c, status, err.Error())
}

func badRequest(c *gin.Context, detail string) {
	middleware.Abort(c, http.StatusBadRequest, detail)
}

// bindJSON decodes the body into dst and answers 400 on failure.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		badRequest(c, dto.DescribeBindingError(err))
		return false
	}
	return true
}

// pathID parses a positive integer path parameter and answers 400 otherwise.
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id < 1 {
		badRequest(c, "invalid "+name)
		return 0, false
	}
	return id, true
}
