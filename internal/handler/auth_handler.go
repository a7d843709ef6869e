package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/amplyfy/consulting-crm/api/internal/dto"
	"github.com/amplyfy/consulting-crm/api/internal/entity"
	"github.com/amplyfy/consulting-crm/api/internal/middleware"
	"github.com/amplyfy/consulting-crm/api/internal/service"
)

// AuthHandler exposes authentication endpoints.
type AuthHandler struct {
	authService *service.AuthService
	sessionTTL  time.Duration
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(authService *service.AuthService, sessionTTL time.Duration) *AuthHandler {
	return &AuthHandler{authService: authService, sessionTTL: sessionTTL}
}

// Login handles POST /auth/login requests. On success the session token is
// set as an httpOnly cookie and also returned in the body for API clients.
func (h *AuthHandler) Login(c echo.Context) error {
	var req dto.LoginRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}

	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.Password == "" {
		return Error(c, http.StatusBadRequest, "email and password are required")
	}

	user, token, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			return Error(c, http.StatusUnauthorized, "invalid credentials")
		}
		return Error(c, http.StatusInternalServerError, "unable to authenticate")
	}

	c.SetCookie(h.sessionCookie(token, h.sessionTTL))

	return Success(c, http.StatusOK, "login successful", dto.LoginResponse{
		AccessToken: token,
		User:        userResponse(user),
	})
}

// Logout handles POST /auth/logout requests by expiring the session cookie.
func (h *AuthHandler) Logout(c echo.Context) error {
	c.SetCookie(h.sessionCookie("", -time.Hour))
	return Success(c, http.StatusOK, "logged out", nil)
}

// Me handles GET /auth/me requests for the authenticated user.
func (h *AuthHandler) Me(c echo.Context) error {
	userID := middleware.UserIDFromContext(c)
	if userID == "" {
		return Error(c, http.StatusUnauthorized, "not authenticated")
	}

	user, err := h.authService.CurrentUser(c.Request().Context(), userID)
	if err != nil {
		return Error(c, http.StatusUnauthorized, "session no longer valid")
	}

	return Success(c, http.StatusOK, "user retrieved", userResponse(user))
}

func (h *AuthHandler) sessionCookie(token string, ttl time.Duration) *http.Cookie {
	return &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

func userResponse(user *entity.User) dto.UserResponse {
	return dto.UserResponse{
		ID:    user.ID.String(),
		Name:  user.Name,
		Email: user.Email,
		Role:  string(user.Role),
	}
}
