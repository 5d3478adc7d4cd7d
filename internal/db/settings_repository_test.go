package db

import (
	"testing"

	"github.com/open-ecommerce/helptext-sub000/internal/models"
)

func TestSettingsGet(t *testing.T) {
	database := setupTestDB(t)
	repo := NewSettingsRepository(database.GetDB())

	value, found, err := repo.Get(models.SettingSMSProvider)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if !found || value != "log" {
		t.Errorf("Get(provider) = %q found=%v, want seeded log provider", value, found)
	}

	_, found, err = repo.Get("helptext.nope")
	if err != nil {
		t.Fatalf("Get(missing) error = %v", err)
	}
	if found {
		t.Error("Get(missing) found = true, want false")
	}

	if _, _, err := repo.Get(""); err == nil {
		t.Error("Get(\"\") should fail validation")
	}
}

func TestSettingsSnapshot(t *testing.T) {
	database := setupTestDB(t)
	repo := NewSettingsRepository(database.GetDB())

	settings, err := repo.Snapshot()
	if err != nil {
		t.Fatalf("Snapshot() error = %v", err)
	}

	if settings.Anonymize {
		t.Error("seeded anonymize should be off")
	}
	if !settings.AutomaticResponse {
		t.Error("seeded automatic response should be on")
	}
	if settings.Provider != "log" {
		t.Errorf("provider = %q, want log", settings.Provider)
	}
	if settings.SenderTypeContact != 2 || settings.SenderTypeHelper != 3 {
		t.Errorf("sender types = %d/%d, want 2/3", settings.SenderTypeContact, settings.SenderTypeHelper)
	}
}

func TestSettingsSnapshotReflectsUpdates(t *testing.T) {
	database := setupTestDB(t)
	repo := NewSettingsRepository(database.GetDB())

	updates := map[string]string{
		models.SettingAnonymize:         "1",
		models.SettingSMSProvider:       "twilio",
		models.SettingSenderTypeContact: "20",
	}
	for key, value := range updates {
		if _, err := database.GetDB().Exec(
			"UPDATE settings SET value = ? WHERE key = ?", value, key,
		); err != nil {
			t.Fatalf("failed to update %s: %v", key, err)
		}
	}

	settings, err := repo.Snapshot()
	if err != nil {
		t.Fatalf("Snapshot() error = %v", err)
	}
	if !settings.Anonymize {
		t.Error("anonymize update not reflected")
	}
	if settings.Provider != "twilio" {
		t.Errorf("provider = %q, want twilio", settings.Provider)
	}
	if settings.SenderTypeContact != 20 {
		t.Errorf("sender type contact = %d, want 20", settings.SenderTypeContact)
	}
}

// A fresh table with no helptext keys still produces usable defaults.
func TestSettingsSnapshotDefaults(t *testing.T) {
	database := setupTestDB(t)
	repo := NewSettingsRepository(database.GetDB())

	if _, err := database.GetDB().Exec("DELETE FROM settings"); err != nil {
		t.Fatalf("failed to clear settings: %v", err)
	}

	settings, err := repo.Snapshot()
	if err != nil {
		t.Fatalf("Snapshot() error = %v", err)
	}
	if settings.Provider != "log" || !settings.AutomaticResponse || settings.Anonymize {
		t.Errorf("Snapshot() defaults = %+v", settings)
	}
}
