package http

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/taskshare/core/internal/domain/entities"
)

// ActorContextKey is the echo context key under which the identity-resolver
// middleware stores the acting user's ID.
const ActorContextKey = "actor_id"

// Request/Response types
type MessageResponse struct {
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

// actorID extracts the resolved identity from the request context. The
// identity middleware guarantees it is set on every route that uses it.
func actorID(c echo.Context) (uuid.UUID, error) {
	id, ok := c.Get(ActorContextKey).(uuid.UUID)
	if !ok || id == uuid.Nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusUnauthorized, "no authenticated identity")
	}
	return id, nil
}

// domainError maps domain sentinel errors to HTTP errors. Validation
// failures are 400, missing tasks 404, authorization denials 403, stale
// writes 409; anything else is a store failure and surfaces as 500.
func domainError(err error) error {
	switch {
	case errors.Is(err, entities.ErrTaskNotFound):
		return echo.NewHTTPError(http.StatusNotFound, entities.ErrTaskNotFound.Error())
	case errors.Is(err, entities.ErrNoTaskAccess), errors.Is(err, entities.ErrNotTaskOwner):
		return echo.NewHTTPError(http.StatusForbidden, "not authorized")
	case errors.Is(err, entities.ErrTitleRequired),
		errors.Is(err, entities.ErrInvalidStatus),
		errors.Is(err, entities.ErrInvalidPriority),
		errors.Is(err, entities.ErrShareWithOwner),
		errors.Is(err, entities.ErrUserNotFound):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, entities.ErrTaskConflict):
		return echo.NewHTTPError(http.StatusConflict, entities.ErrTaskConflict.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}
}
