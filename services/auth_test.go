package services

import (
	"testing"
	"time"

	"juris_control_go/models"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupAuthTestDB() *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		panic("failed to connect database")
	}
	db.AutoMigrate(&models.User{}, &models.Session{})
	return db
}

func TestPasswordHashing(t *testing.T) {
	salt, hash, err := HashPassword("SecretPass123!")
	assert.NoError(t, err)
	assert.Len(t, salt, SaltLength*2)
	assert.Len(t, hash, DerivedKeyLength*2)

	assert.True(t, VerifyPassword("SecretPass123!", salt, hash))
	assert.False(t, VerifyPassword("WrongPass", salt, hash))
}

func TestPasswordHashingUniqueSalts(t *testing.T) {
	salt1, hash1, err := HashPassword("admin")
	assert.NoError(t, err)
	salt2, hash2, err := HashPassword("admin")
	assert.NoError(t, err)

	// Same password, fresh salt, different hash
	assert.NotEqual(t, salt1, salt2)
	assert.NotEqual(t, hash1, hash2)
}

func TestVerifyPasswordSingleCharacterFlip(t *testing.T) {
	salt, hash, err := HashPassword("correct horse")
	assert.NoError(t, err)

	flipped := []byte(hash)
	if flipped[0] == 'a' {
		flipped[0] = 'b'
	} else {
		flipped[0] = 'a'
	}
	assert.False(t, VerifyPassword("correct horse", salt, string(flipped)))
}

func TestVerifyPasswordMalformedInput(t *testing.T) {
	salt, hash, err := HashPassword("pw")
	assert.NoError(t, err)

	// Malformed credential material fails closed
	assert.False(t, VerifyPassword("pw", "", hash))
	assert.False(t, VerifyPassword("pw", salt, ""))
	assert.False(t, VerifyPassword("pw", "zz-not-hex", hash))
}

func TestEnsureDefaultUserCreatesAdmin(t *testing.T) {
	db := setupAuthTestDB()

	reset, err := EnsureDefaultUser(db)
	assert.NoError(t, err)
	assert.True(t, reset)

	var user models.User
	assert.NoError(t, db.First(&user, "login = ?", "admin").Error)
	assert.Equal(t, "Administrador", user.Name)
	assert.Equal(t, models.RoleAdmin, user.Role)
	assert.True(t, VerifyPassword("admin", user.Salt, user.HashedPassword))
}

func TestEnsureDefaultUserIdempotent(t *testing.T) {
	db := setupAuthTestDB()

	reset, err := EnsureDefaultUser(db)
	assert.NoError(t, err)
	assert.True(t, reset)

	reset, err = EnsureDefaultUser(db)
	assert.NoError(t, err)
	assert.False(t, reset)

	var count int64
	db.Model(&models.User{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestEnsureDefaultUserResetsLegacyStore(t *testing.T) {
	db := setupAuthTestDB()

	// A saltless first record marks the legacy credential format
	db.Create(&models.User{Name: "Old", Login: "old", Role: models.RoleUser, HashedPassword: "plainhash"})
	db.Create(&models.User{Name: "Other", Login: "other", Role: models.RoleUser})

	reset, err := EnsureDefaultUser(db)
	assert.NoError(t, err)
	assert.True(t, reset)

	var users []models.User
	db.Find(&users)
	assert.Len(t, users, 1)
	assert.Equal(t, "admin", users[0].Login)
}

func TestLogin(t *testing.T) {
	db := setupAuthTestDB()
	_, err := EnsureDefaultUser(db)
	assert.NoError(t, err)

	user, err := Login(db, "admin", "admin")
	assert.NoError(t, err)
	assert.Equal(t, "admin", user.Login)
	assert.NotNil(t, user.LastLoginAt)
}

func TestLoginUniformFailure(t *testing.T) {
	db := setupAuthTestDB()
	_, err := EnsureDefaultUser(db)
	assert.NoError(t, err)

	// Wrong password and unknown login are indistinguishable
	_, err = Login(db, "admin", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = Login(db, "nobody", "admin")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestSessionLifecycle(t *testing.T) {
	db := setupAuthTestDB()
	user := models.User{Name: "A", Login: "a", Role: models.RoleUser, Salt: "ab", HashedPassword: "cd"}
	db.Create(&user)

	session, err := CreateSession(db, user.ID, "127.0.0.1", "TestAgent")
	assert.NoError(t, err)
	assert.NotEmpty(t, session.Token)
	assert.Len(t, session.Token, SessionTokenLength*2)
	assert.WithinDuration(t, time.Now().Add(DefaultSessionDuration), session.ExpiresAt, 10*time.Second)

	validSession, err := ValidateSession(db, session.Token)
	assert.NoError(t, err)
	assert.Equal(t, session.ID, validSession.ID)
	assert.Equal(t, user.Login, validSession.User.Login)

	invalidSession, err := ValidateSession(db, "invalid-token")
	assert.Error(t, err)
	assert.Nil(t, invalidSession)

	assert.NoError(t, DeleteSession(db, session.Token))
	deletedSession, err := ValidateSession(db, session.Token)
	assert.Error(t, err)
	assert.Nil(t, deletedSession)
}

func TestSessionExpiry(t *testing.T) {
	db := setupAuthTestDB()
	user := models.User{Name: "B", Login: "b", Role: models.RoleUser, Salt: "ab", HashedPassword: "cd"}
	db.Create(&user)

	expired := models.Session{
		UserID:    user.ID,
		Token:     "expired-token",
		ExpiresAt: time.Now().Add(-1 * time.Hour),
	}
	db.Create(&expired)

	sess, err := ValidateSession(db, "expired-token")
	assert.Error(t, err)
	assert.Nil(t, sess)

	// Expired sessions are deleted on validation
	var count int64
	db.Model(&models.Session{}).Where("token = ?", "expired-token").Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestCleanupExpiredSessions(t *testing.T) {
	db := setupAuthTestDB()
	user := models.User{Name: "C", Login: "c", Role: models.RoleUser, Salt: "ab", HashedPassword: "cd"}
	db.Create(&user)

	db.Create(&models.Session{UserID: user.ID, Token: "valid", ExpiresAt: time.Now().Add(1 * time.Hour)})
	db.Create(&models.Session{UserID: user.ID, Token: "exp1", ExpiresAt: time.Now().Add(-1 * time.Hour)})
	db.Create(&models.Session{UserID: user.ID, Token: "exp2", ExpiresAt: time.Now().Add(-2 * time.Hour)})

	assert.NoError(t, CleanupExpiredSessions(db))

	var tokens []string
	db.Model(&models.Session{}).Pluck("token", &tokens)
	assert.Equal(t, []string{"valid"}, tokens)
}

func TestDeleteAllUserSessions(t *testing.T) {
	db := setupAuthTestDB()
	user := models.User{Name: "D", Login: "d", Role: models.RoleUser, Salt: "ab", HashedPassword: "cd"}
	other := models.User{Name: "E", Login: "e", Role: models.RoleUser, Salt: "ab", HashedPassword: "cd"}
	db.Create(&user)
	db.Create(&other)

	db.Create(&models.Session{UserID: user.ID, Token: "t1", ExpiresAt: time.Now().Add(time.Hour)})
	db.Create(&models.Session{UserID: user.ID, Token: "t2", ExpiresAt: time.Now().Add(time.Hour)})
	db.Create(&models.Session{UserID: other.ID, Token: "t3", ExpiresAt: time.Now().Add(time.Hour)})

	assert.NoError(t, DeleteAllUserSessions(db, user.ID))

	var count int64
	db.Model(&models.Session{}).Where("user_id = ?", user.ID).Count(&count)
	assert.Equal(t, int64(0), count)
	db.Model(&models.Session{}).Where("user_id = ?", other.ID).Count(&count)
	assert.Equal(t, int64(1), count)
}
