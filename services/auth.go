package services

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"time"

	"juris_control_go/models"

	"golang.org/x/crypto/pbkdf2"
	"gorm.io/gorm"
)

const (
	// PBKDF2Iterations is the iteration count for password key derivation
	PBKDF2Iterations = 100000
	// SaltLength is the salt length in bytes
	SaltLength = 16
	// DerivedKeyLength is the derived key length in bytes (256 bits)
	DerivedKeyLength = 32
	// SessionTokenLength is the length of the session token in bytes (64 chars hex)
	SessionTokenLength = 32
	// DefaultSessionDuration is the default session duration
	DefaultSessionDuration = 12 * time.Hour
)

// ErrInvalidCredentials is the uniform login failure: unknown login, legacy
// credential format and wrong password are indistinguishable to the caller
var ErrInvalidCredentials = errors.New("invalid credentials")

// HashPassword derives a fresh salt+hash pair for a password using
// PBKDF2-SHA256. Both values are returned hex-encoded.
func HashPassword(password string) (salt string, hash string, err error) {
	saltBytes := make([]byte, SaltLength)
	if _, err := rand.Read(saltBytes); err != nil {
		return "", "", fmt.Errorf("failed to generate salt: %w", err)
	}

	key := pbkdf2.Key([]byte(password), saltBytes, PBKDF2Iterations, DerivedKeyLength, sha256.New)
	return hex.EncodeToString(saltBytes), hex.EncodeToString(key), nil
}

// VerifyPassword re-derives the key with the stored salt and compares it to
// the stored hash. Malformed input yields false, never an error: a broken
// credential record must fail closed, not crash the login flow.
func VerifyPassword(password, saltHex, hashHex string) bool {
	if saltHex == "" || hashHex == "" {
		return false
	}
	saltBytes, err := hex.DecodeString(saltHex)
	if err != nil {
		return false
	}

	key := pbkdf2.Key([]byte(password), saltBytes, PBKDF2Iterations, DerivedKeyLength, sha256.New)
	return hex.EncodeToString(key) == hashHex
}

// Login authenticates a user by login name and password. Every failure mode
// returns ErrInvalidCredentials so callers cannot distinguish "no such user"
// from "wrong password".
func Login(db *gorm.DB, login, password string) (*models.User, error) {
	var user models.User
	if err := db.Where("login = ?", login).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Timing mitigation: burn a derivation even when no user matched
			VerifyPassword(password, dummySalt, dummyHash)
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if !user.HasSaltedCredential() || !VerifyPassword(password, user.Salt, user.HashedPassword) {
		return nil, ErrInvalidCredentials
	}

	now := time.Now()
	user.LastLoginAt = &now
	if err := db.Model(&user).Update("last_login_at", now).Error; err != nil {
		log.Printf("[WARNING] Failed to record last login for user %d: %v", user.ID, err)
	}

	return &user, nil
}

// Fixed salt+hash pair used only to keep the "unknown login" path as slow as
// a real verification
var dummySalt, dummyHash = mustDummyCredential()

func mustDummyCredential() (string, string) {
	salt, hash, err := HashPassword("timing-mitigation-dummy")
	if err != nil {
		// rand.Read failing at startup means nothing else will work either
		panic(fmt.Sprintf("failed to build dummy credential: %v", err))
	}
	return salt, hash
}

// EnsureDefaultUser enforces the credential bootstrap rule: with no users, or
// with a first record lacking a salt (legacy format), the user store is wiped
// and a single admin/admin credential is created. Returns true when a reset
// happened so the next login can surface it. Running it again with a valid
// salted credential in place is a no-op.
func EnsureDefaultUser(db *gorm.DB) (bool, error) {
	var users []models.User
	if err := db.Order("id").Limit(1).Find(&users).Error; err != nil {
		return false, fmt.Errorf("failed to inspect user store: %w", err)
	}

	if len(users) > 0 && users[0].Salt != "" {
		return false, nil
	}

	if len(users) > 0 {
		log.Println("[WARNING] Legacy credential format detected, resetting user store")
	} else {
		log.Println("No users found, creating default credential")
	}

	if err := db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.User{}).Error; err != nil {
		return false, fmt.Errorf("failed to clear user store: %w", err)
	}

	salt, hash, err := HashPassword("admin")
	if err != nil {
		return false, fmt.Errorf("failed to hash default password: %w", err)
	}

	admin := models.User{
		Name:           "Administrador",
		Login:          "admin",
		Role:           models.RoleAdmin,
		Salt:           salt,
		HashedPassword: hash,
	}
	if err := db.Create(&admin).Error; err != nil {
		return false, fmt.Errorf("failed to create default user: %w", err)
	}

	return true, nil
}

// GenerateSessionToken generates a cryptographically secure random token
func GenerateSessionToken() (string, error) {
	bytes := make([]byte, SessionTokenLength)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate session token: %w", err)
	}
	return hex.EncodeToString(bytes), nil
}

// CreateSession creates a new session for a user
func CreateSession(db *gorm.DB, userID uint, ipAddress, userAgent string) (*models.Session, error) {
	token, err := GenerateSessionToken()
	if err != nil {
		return nil, err
	}

	session := &models.Session{
		UserID:    userID,
		Token:     token,
		ExpiresAt: time.Now().Add(DefaultSessionDuration),
		IPAddress: ipAddress,
		UserAgent: userAgent,
	}

	if err := db.Create(session).Error; err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return session, nil
}

// ValidateSession validates a session token and returns the session if valid
func ValidateSession(db *gorm.DB, token string) (*models.Session, error) {
	var session models.Session

	err := db.Preload("User").Where("token = ?", token).First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("session not found")
		}
		return nil, fmt.Errorf("failed to validate session: %w", err)
	}

	if session.IsExpired() {
		db.Delete(&session)
		return nil, fmt.Errorf("session expired")
	}

	return &session, nil
}

// DeleteSession deletes a session (logout)
func DeleteSession(db *gorm.DB, token string) error {
	result := db.Where("token = ?", token).Delete(&models.Session{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete session: %w", result.Error)
	}
	return nil
}

// CleanupExpiredSessions removes all expired sessions from the database
func CleanupExpiredSessions(db *gorm.DB) error {
	result := db.Where("expires_at < ?", time.Now()).Delete(&models.Session{})
	if result.Error != nil {
		return fmt.Errorf("failed to cleanup expired sessions: %w", result.Error)
	}
	if result.RowsAffected > 0 {
		log.Printf("Cleaned up %d expired sessions", result.RowsAffected)
	}
	return nil
}

// DeleteAllUserSessions deletes all sessions for a specific user.
// Used when a password is reset.
func DeleteAllUserSessions(db *gorm.DB, userID uint) error {
	result := db.Where("user_id = ?", userID).Delete(&models.Session{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete user sessions: %w", result.Error)
	}
	return nil
}
