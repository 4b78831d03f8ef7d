package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"juris_control_go/db"
	"juris_control_go/middleware"
	"juris_control_go/models"
	"juris_control_go/services"

	"github.com/stretchr/testify/assert"
)

func TestLoginHandler(t *testing.T) {
	setupTestDB(t)
	reset, err := services.EnsureDefaultUser(db.DB)
	assert.NoError(t, err)
	assert.True(t, reset)
	assert.NoError(t, services.SetResetNotice(db.DB))

	_, c, rec := setupEcho(http.MethodPost, "/api/login",
		strings.NewReader(`{"login":"admin","password":"admin"}`))

	assert.NoError(t, LoginHandler(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp loginResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "admin", resp.User.Login)
	assert.True(t, resp.CredentialsReset)

	cookies := rec.Result().Cookies()
	var sessionCookie *http.Cookie
	for _, cookie := range cookies {
		if cookie.Name == middleware.SessionCookieName {
			sessionCookie = cookie
		}
	}
	assert.NotNil(t, sessionCookie)
	assert.True(t, sessionCookie.HttpOnly)
	assert.NotEmpty(t, sessionCookie.Value)

	// The reset notice is one-shot
	_, c2, rec2 := setupEcho(http.MethodPost, "/api/login",
		strings.NewReader(`{"login":"admin","password":"admin"}`))
	assert.NoError(t, LoginHandler(c2))
	assert.Equal(t, http.StatusOK, rec2.Code)

	var resp2 loginResponse
	assert.NoError(t, json.Unmarshal(rec2.Body.Bytes(), &resp2))
	assert.False(t, resp2.CredentialsReset)
}

func TestLoginHandlerInvalidCredentials(t *testing.T) {
	setupTestDB(t)
	_, err := services.EnsureDefaultUser(db.DB)
	assert.NoError(t, err)

	_, c, rec := setupEcho(http.MethodPost, "/api/login",
		strings.NewReader(`{"login":"admin","password":"wrong"}`))
	assert.NoError(t, LoginHandler(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Unknown user gets the same answer as a wrong password
	_, c2, rec2 := setupEcho(http.MethodPost, "/api/login",
		strings.NewReader(`{"login":"ghost","password":"admin"}`))
	assert.NoError(t, LoginHandler(c2))
	assert.Equal(t, http.StatusUnauthorized, rec2.Code)
	assert.Equal(t, rec.Body.String(), rec2.Body.String())
}

func TestLoginHandlerMissingFields(t *testing.T) {
	setupTestDB(t)

	_, c, rec := setupEcho(http.MethodPost, "/api/login", strings.NewReader(`{"login":"admin"}`))
	assert.NoError(t, LoginHandler(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLoginResponseHidesCredentialMaterial(t *testing.T) {
	setupTestDB(t)
	_, err := services.EnsureDefaultUser(db.DB)
	assert.NoError(t, err)

	_, c, rec := setupEcho(http.MethodPost, "/api/login",
		strings.NewReader(`{"login":"admin","password":"admin"}`))
	assert.NoError(t, LoginHandler(c))

	body := rec.Body.String()
	assert.NotContains(t, body, "salt")
	assert.NotContains(t, body, "hashedPassword")
	assert.NotContains(t, body, "hashed_password")
}

func TestLogoutHandler(t *testing.T) {
	setupTestDB(t)
	_, err := services.EnsureDefaultUser(db.DB)
	assert.NoError(t, err)

	var user models.User
	assert.NoError(t, db.DB.First(&user, "login = ?", "admin").Error)
	session, err := services.CreateSession(db.DB, user.ID, "127.0.0.1", "TestAgent")
	assert.NoError(t, err)

	_, c, rec := setupEcho(http.MethodPost, "/api/logout", nil)
	c.Request().AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: session.Token})

	assert.NoError(t, LogoutHandler(c))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	// Session is gone server-side
	_, err = services.ValidateSession(db.DB, session.Token)
	assert.Error(t, err)
}
