package services

import (
	"fmt"

	"juris_control_go/models"

	"gorm.io/gorm"
)

// LoadAppConfig returns the single configuration row, creating it with
// defaults on first access
func LoadAppConfig(db *gorm.DB) (*models.AppConfig, error) {
	var cfg models.AppConfig
	err := db.Where(models.AppConfig{ID: models.AppConfigID}).
		Attrs(models.AppConfig{Theme: models.ThemeSystem, DismissedNotifications: models.StringList{}}).
		FirstOrCreate(&cfg).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load app config: %w", err)
	}
	return &cfg, nil
}

// SetTheme updates the stored theme preference
func SetTheme(db *gorm.DB, theme string) error {
	if !models.IsValidTheme(theme) {
		return fmt.Errorf("invalid theme: %s", theme)
	}
	cfg, err := LoadAppConfig(db)
	if err != nil {
		return err
	}
	if err := db.Model(cfg).Update("theme", theme).Error; err != nil {
		return fmt.Errorf("failed to update theme: %w", err)
	}
	return nil
}

// DismissNotification records a notification id as acknowledged so derivation
// results can be filtered on later refreshes. Dismissing an already dismissed
// id is a no-op.
func DismissNotification(db *gorm.DB, notificationID string) error {
	cfg, err := LoadAppConfig(db)
	if err != nil {
		return err
	}
	if cfg.DismissedNotifications.Contains(notificationID) {
		return nil
	}

	dismissed := append(cfg.DismissedNotifications, notificationID)
	if err := db.Model(cfg).Update("dismissed_notifications", dismissed).Error; err != nil {
		return fmt.Errorf("failed to record dismissed notification: %w", err)
	}
	return nil
}

// ClearDismissedNotifications empties the dismissed list
func ClearDismissedNotifications(db *gorm.DB) error {
	cfg, err := LoadAppConfig(db)
	if err != nil {
		return err
	}
	if err := db.Model(cfg).Update("dismissed_notifications", models.StringList{}).Error; err != nil {
		return fmt.Errorf("failed to clear dismissed notifications: %w", err)
	}
	return nil
}

// SetResetNotice flags that credentials were reset by the bootstrap
func SetResetNotice(db *gorm.DB) error {
	cfg, err := LoadAppConfig(db)
	if err != nil {
		return err
	}
	if err := db.Model(cfg).Update("show_reset_notice", true).Error; err != nil {
		return fmt.Errorf("failed to set reset notice: %w", err)
	}
	return nil
}

// ConsumeResetNotice reads and clears the one-shot reset flag. The first
// successful login after a bootstrap reset sees true; everyone after, false.
func ConsumeResetNotice(db *gorm.DB) (bool, error) {
	cfg, err := LoadAppConfig(db)
	if err != nil {
		return false, err
	}
	if !cfg.ShowResetNotice {
		return false, nil
	}
	if err := db.Model(cfg).Update("show_reset_notice", false).Error; err != nil {
		return false, fmt.Errorf("failed to clear reset notice: %w", err)
	}
	return true, nil
}
