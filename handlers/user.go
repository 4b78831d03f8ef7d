package handlers

import (
	"net/http"

	"juris_control_go/db"
	"juris_control_go/middleware"
	"juris_control_go/models"
	"juris_control_go/services"

	"github.com/labstack/echo/v4"
)

type userRequest struct {
	Name     string `json:"name"`
	Login    string `json:"login"`
	Role     string `json:"role"`
	Password string `json:"password"`
}

// GetUsers returns all users (credential material excluded by the model's
// JSON tags)
func GetUsers(c echo.Context) error {
	var users []models.User
	if err := db.DB.Order("name").Find(&users).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to fetch users",
		})
	}
	return c.JSON(http.StatusOK, users)
}

func validRole(role string) bool {
	return role == models.RoleAdmin || role == models.RoleUser
}

// CreateUser creates a new user (admin only)
func CreateUser(c echo.Context) error {
	var req userRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "Invalid request body",
		})
	}

	if req.Name == "" || req.Login == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "Name, login and password are required",
		})
	}
	if req.Role == "" {
		req.Role = models.RoleUser
	}
	if !validRole(req.Role) {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "Invalid role. Must be one of: admin, user",
		})
	}

	salt, hash, err := services.HashPassword(req.Password)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to hash password",
		})
	}

	user := models.User{
		Name:           req.Name,
		Login:          req.Login,
		Role:           req.Role,
		Salt:           salt,
		HashedPassword: hash,
	}
	if err := db.DB.Create(&user).Error; err != nil {
		return c.JSON(http.StatusConflict, map[string]string{
			"error": "Failed to create user (login may already exist)",
		})
	}

	return c.JSON(http.StatusCreated, user)
}

// UpdateUser updates a user's name, role and optionally resets the password
// (admin only). A password reset invalidates the user's other sessions.
func UpdateUser(c echo.Context) error {
	var user models.User
	if err := db.DB.First(&user, "id = ?", c.Param("id")).Error; err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{
			"error": "User not found",
		})
	}

	var req userRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "Invalid request body",
		})
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Role != "" {
		if !validRole(req.Role) {
			return c.JSON(http.StatusBadRequest, map[string]string{
				"error": "Invalid role. Must be one of: admin, user",
			})
		}
		user.Role = req.Role
	}

	if req.Password != "" {
		salt, hash, err := services.HashPassword(req.Password)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{
				"error": "Failed to hash password",
			})
		}
		user.Salt = salt
		user.HashedPassword = hash

		if err := services.DeleteAllUserSessions(db.DB, user.ID); err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{
				"error": "Failed to invalidate sessions",
			})
		}
	}

	if err := db.DB.Save(&user).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to update user",
		})
	}
	return c.JSON(http.StatusOK, user)
}

// DeleteUser removes a user (admin only). Self-deletion is rejected so the
// office cannot lock itself out.
func DeleteUser(c echo.Context) error {
	currentUser := middleware.GetCurrentUser(c)

	var user models.User
	if err := db.DB.First(&user, "id = ?", c.Param("id")).Error; err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{
			"error": "User not found",
		})
	}

	if currentUser != nil && currentUser.ID == user.ID {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "Cannot delete your own account",
		})
	}

	if err := services.DeleteAllUserSessions(db.DB, user.ID); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to invalidate sessions",
		})
	}
	if err := db.DB.Delete(&user).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to delete user",
		})
	}
	return c.NoContent(http.StatusNoContent)
}
