package models

import (
	"time"
)

// User role constants
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

type User struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Name  string `gorm:"not null" json:"name"`
	Login string `gorm:"uniqueIndex;not null" json:"login"`
	Role  string `gorm:"not null;default:user" json:"role"`

	// Credential material. Both columns are empty only on records written by
	// the pre-PBKDF2 format, which forces a bootstrap reset.
	Salt           string `json:"-"`
	HashedPassword string `json:"-"`

	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
}

// TableName specifies the table name for User model
func (User) TableName() string {
	return "users"
}

// HasSaltedCredential reports whether the record carries the current
// salt+hash credential format
func (u *User) HasSaltedCredential() bool {
	return u.Salt != "" && u.HashedPassword != ""
}

// IsAdmin reports whether the user has the admin role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
