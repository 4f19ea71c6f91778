package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskshare/core/internal/domain/entities"
	"github.com/taskshare/core/internal/infrastructure/logger"
	"github.com/taskshare/core/internal/ports"
)

// AuthHandler handles session-related requests
type AuthHandler struct {
	authService ports.AuthService
	userService ports.UserService
	logger      *logger.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService ports.AuthService, userService ports.UserService, logger *logger.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		userService: userService,
		logger:      logger,
	}
}

// CreateSession handles POST /auth/session. The caller is the trusted OAuth
// callback layer delivering a verified provider profile.
func (h *AuthHandler) CreateSession(c echo.Context) error {
	var req ports.CreateSessionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	response, err := h.authService.CreateSession(c.Request().Context(), req)
	if err != nil {
		h.logger.Error("Create session failed", "error", err, "email", req.Email)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create session")
	}

	return c.JSON(http.StatusOK, response)
}

// Me handles GET /auth/me and returns the authenticated user's profile.
func (h *AuthHandler) Me(c echo.Context) error {
	actor, err := actorID(c)
	if err != nil {
		return err
	}

	user, err := h.userService.GetUser(c.Request().Context(), actor)
	if err != nil {
		if errors.Is(err, entities.ErrUserNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		h.logger.Error("Get current user failed", "error", err, "actor_id", actor)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load user")
	}

	return c.JSON(http.StatusOK, user)
}
