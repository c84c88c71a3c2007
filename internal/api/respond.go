package api

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	jwtmw "catalog_backend/internal/platform/jwt"
	"catalog_backend/internal/shared/apperr"
)

// RespondError writes err as a JSON error response. It is the only place where
// domain errors are turned into status codes. Internal errors are logged with
// detail and answered with a generic message.
func RespondError(c *gin.Context, err error) {
	status := apperr.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		slog.Error("request failed",
			"error", err,
			"method", c.Request.Method,
			"path", c.FullPath(),
			"remote_addr", c.ClientIP(),
		)
		c.JSON(status, ErrorResponse{Error: "internal server error"})
		return
	}
	slog.Warn("request rejected",
		"error", err,
		"status", status,
		"method", c.Request.Method,
		"path", c.FullPath(),
		"remote_addr", c.ClientIP(),
	)
	c.JSON(status, ErrorResponse{Error: apperr.PublicMessage(err)})
}

// RespondBindError answers a request whose body or query failed binding.
func RespondBindError(c *gin.Context, err error) {
	slog.Warn("request validation failed", "error", err, "path", c.FullPath(), "remote_addr", c.ClientIP())
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request"})
}

// UUIDParam parses the named path parameter as a UUID. On failure it writes a
// 400 response and returns false.
func UUIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		slog.Warn("invalid id parameter", "param", name, "value", c.Param(name), "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid " + name})
		return uuid.Nil, false
	}
	return id, true
}

// CurrentUserID returns the user id resolved by jwtmw.AuthRequired.
// Without one it writes a 401 response and returns false.
func CurrentUserID(c *gin.Context) (uuid.UUID, bool) {
	id, ok := jwtmw.UserIDFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthenticated"})
		return uuid.Nil, false
	}
	return id, true
}
