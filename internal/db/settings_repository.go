package db

import (
	"database/sql"
	"fmt"
	"strconv"

	"github.com/open-ecommerce/helptext-sub000/internal/models"
)

// SettingsRepository reads the key/value configuration owned by the
// surrounding CRUD system. The router consumes it read-only.
type SettingsRepository interface {
	Get(key string) (string, bool, error)
	Snapshot() (*models.Settings, error)
}

type settingsRepository struct {
	db *sql.DB
}

func NewSettingsRepository(db *sql.DB) SettingsRepository {
	return &settingsRepository{db: db}
}

// Get returns the raw value for a key and whether the key exists.
func (r *settingsRepository) Get(key string) (string, bool, error) {
	if key == "" {
		return "", false, fmt.Errorf("setting key cannot be empty")
	}

	var value string
	err := r.db.QueryRow("SELECT value FROM settings WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read setting %s: %w", key, err)
	}

	return value, true, nil
}

// Snapshot reads all routing settings in one pass. Missing keys fall back to
// safe defaults rather than failing the request.
func (r *settingsRepository) Snapshot() (*models.Settings, error) {
	settings := &models.Settings{
		Anonymize:         false,
		AutomaticResponse: true,
		Provider:          "log",
		SenderTypeContact: 2,
		SenderTypeHelper:  3,
	}

	rows, err := r.db.Query("SELECT key, value FROM settings WHERE key LIKE 'helptext.%'")
	if err != nil {
		return nil, fmt.Errorf("failed to read settings: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("failed to scan setting: %w", err)
		}

		switch key {
		case models.SettingAnonymize:
			settings.Anonymize = parseBool(value)
		case models.SettingAutomaticResponse:
			settings.AutomaticResponse = parseBool(value)
		case models.SettingSMSProvider:
			if value != "" {
				settings.Provider = value
			}
		case models.SettingSenderTypeContact:
			if id, err := strconv.ParseInt(value, 10, 64); err == nil {
				settings.SenderTypeContact = id
			}
		case models.SettingSenderTypeHelper:
			if id, err := strconv.ParseInt(value, 10, 64); err == nil {
				settings.SenderTypeHelper = id
			}
		}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read settings: %w", err)
	}

	return settings, nil
}

func parseBool(value string) bool {
	switch value {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}
