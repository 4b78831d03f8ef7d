package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Theme constants
const (
	ThemeLight  = "light"
	ThemeDark   = "dark"
	ThemeSystem = "system"
)

// AppConfigID is the primary key of the single configuration row
const AppConfigID uint = 1

// StringList stores a JSON-encoded list of strings in a text column
type StringList []string

// Value implements driver.Valuer
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		l = StringList{}
	}
	data, err := json.Marshal(l)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal string list: %w", err)
	}
	return string(data), nil
}

// Scan implements sql.Scanner
func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = StringList{}
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported type for string list: %T", value)
	}

	if len(data) == 0 {
		*l = StringList{}
		return nil
	}
	return json.Unmarshal(data, l)
}

// Contains reports whether the list holds the given value
func (l StringList) Contains(value string) bool {
	for _, v := range l {
		if v == value {
			return true
		}
	}
	return false
}

// AppConfig is the single typed configuration row. The original stored an
// arbitrary key/value blob under one key; named columns replace it.
type AppConfig struct {
	ID        uint      `gorm:"primarykey" json:"-"`
	UpdatedAt time.Time `json:"updated_at"`

	Theme                  string     `gorm:"not null;default:system" json:"theme"`
	DismissedNotifications StringList `gorm:"type:text" json:"dismissedNotifications"`

	// One-shot flag set by the credential bootstrap so the next successful
	// login can tell the user credentials were reset
	ShowResetNotice bool `gorm:"not null;default:false" json:"-"`
}

// TableName specifies the table name for AppConfig model
func (AppConfig) TableName() string {
	return "app_config"
}

// IsValidTheme reports whether theme is one of the accepted values
func IsValidTheme(theme string) bool {
	return theme == ThemeLight || theme == ThemeDark || theme == ThemeSystem
}
