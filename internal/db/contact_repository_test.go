package db

import (
	"testing"
)

func TestContactGetByPhone(t *testing.T) {
	database := setupTestDB(t)
	contacts := NewContactRepository(database.GetDB())
	cases := NewCaseRepository(database.GetDB())

	created, _, err := cases.CreateFirstContact("+15551212", 1)
	if err != nil {
		t.Fatalf("CreateFirstContact() error = %v", err)
	}

	contact, err := contacts.GetByPhone("+15551212")
	if err != nil {
		t.Fatalf("GetByPhone() error = %v", err)
	}
	if contact == nil || contact.ID != created.ContactID {
		t.Errorf("GetByPhone() = %+v, want contact %d", contact, created.ContactID)
	}

	missing, err := contacts.GetByPhone("+15550000")
	if err != nil {
		t.Fatalf("GetByPhone(missing) error = %v", err)
	}
	if missing != nil {
		t.Errorf("GetByPhone(missing) = %+v, want nil", missing)
	}

	if _, err := contacts.GetByPhone(""); err == nil {
		t.Error("GetByPhone(\"\") should fail validation")
	}
}

func TestGetPhone(t *testing.T) {
	database := setupTestDB(t)
	contacts := NewContactRepository(database.GetDB())
	cases := NewCaseRepository(database.GetDB())

	if _, _, err := cases.CreateFirstContact("+15551212", 1); err != nil {
		t.Fatalf("CreateFirstContact() error = %v", err)
	}

	phone, err := contacts.GetPhone("+15551212")
	if err != nil {
		t.Fatalf("GetPhone() error = %v", err)
	}
	if phone == nil || phone.Comment != "added by system" {
		t.Errorf("GetPhone() = %+v, want system-created phone", phone)
	}

	missing, err := contacts.GetPhone("+15550000")
	if err != nil {
		t.Fatalf("GetPhone(missing) error = %v", err)
	}
	if missing != nil {
		t.Errorf("GetPhone(missing) = %+v, want nil", missing)
	}
}
