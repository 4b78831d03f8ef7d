package handlers

import (
	"errors"
	"net/http"
	"strings"

	"juris_control_go/config"
	"juris_control_go/db"
	"juris_control_go/middleware"
	"juris_control_go/models"
	"juris_control_go/services"

	"github.com/labstack/echo/v4"
)

type loginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

// sessionUser is the user payload exposed to the client. Salt and hash never
// leave the server.
type sessionUser struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Login string `json:"login"`
	Role  string `json:"role"`
}

type loginResponse struct {
	User sessionUser `json:"user"`
	// CredentialsReset is true exactly once after the bootstrap rebuilt the
	// user store, so the client can tell the user admin/admin is in effect
	CredentialsReset bool `json:"credentialsReset"`
}

func toSessionUser(u *models.User) sessionUser {
	return sessionUser{ID: u.ID, Name: u.Name, Login: u.Login, Role: u.Role}
}

// LoginHandler authenticates a user and opens a session
func LoginHandler(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "Invalid request body",
		})
	}

	req.Login = strings.TrimSpace(req.Login)
	if req.Login == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "Login and password are required",
		})
	}

	user, err := services.Login(db.DB, req.Login, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			return c.JSON(http.StatusUnauthorized, map[string]string{
				"error": "Invalid login or password",
			})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Login failed",
		})
	}

	session, err := services.CreateSession(db.DB, user.ID, c.RealIP(), c.Request().UserAgent())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create session")
	}

	cfg := c.Get("config").(*config.Config)
	isProduction := cfg.Environment == "production"

	cookie := &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    session.Token,
		Path:     "/",
		MaxAge:   int(services.DefaultSessionDuration.Seconds()),
		HttpOnly: true,
		Secure:   isProduction,
		SameSite: http.SameSiteLaxMode,
	}
	c.SetCookie(cookie)

	reset, err := services.ConsumeResetNotice(db.DB)
	if err != nil {
		// Non-fatal: the notice is cosmetic
		reset = false
	}

	return c.JSON(http.StatusOK, loginResponse{
		User:             toSessionUser(user),
		CredentialsReset: reset,
	})
}

// LogoutHandler closes the current session
func LogoutHandler(c echo.Context) error {
	cookie, err := c.Cookie(middleware.SessionCookieName)
	if err == nil {
		services.DeleteSession(db.DB, cookie.Value)
	}

	middleware.ClearSessionCookie(c)
	return c.NoContent(http.StatusNoContent)
}

// GetCurrentUserHandler returns the authenticated user's session payload
func GetCurrentUserHandler(c echo.Context) error {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Not authenticated")
	}
	return c.JSON(http.StatusOK, toSessionUser(user))
}
