package db

import (
	"database/sql"
	"fmt"

	"github.com/open-ecommerce/helptext-sub000/internal/models"
)

// ContactRepository defines the interface for contact identity lookups.
type ContactRepository interface {
	GetByPhone(phone string) (*models.Contact, error)
	GetPhone(number string) (*models.Phone, error)
}

// contactRepository implements ContactRepository interface
type contactRepository struct {
	db *sql.DB
}

// NewContactRepository creates a new ContactRepository
func NewContactRepository(db *sql.DB) ContactRepository {
	return &contactRepository{db: db}
}

// GetByPhone resolves a phone number to its linked contact through the
// contact_phones table. Returns (nil, nil) when the number is unknown.
func (r *contactRepository) GetByPhone(phone string) (*models.Contact, error) {
	if phone == "" {
		return nil, fmt.Errorf("phone number cannot be empty")
	}

	contact := &models.Contact{}
	err := r.db.QueryRow(`
		SELECT c.id, c.first_name, c.last_name, c.created_at
		FROM contacts c
		JOIN contact_phones cp ON cp.contact_id = c.id
		JOIN phones p ON p.id = cp.phone_id
		WHERE p.number = ?
		ORDER BY c.id ASC
		LIMIT 1
	`, phone).Scan(&contact.ID, &contact.FirstName, &contact.LastName, &contact.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get contact by phone: %w", err)
	}

	return contact, nil
}

// GetPhone retrieves a phone record by number. Returns (nil, nil) when the
// number has never been seen.
func (r *contactRepository) GetPhone(number string) (*models.Phone, error) {
	if number == "" {
		return nil, fmt.Errorf("phone number cannot be empty")
	}

	phone := &models.Phone{}
	err := r.db.QueryRow(
		"SELECT id, number, comment FROM phones WHERE number = ?",
		number,
	).Scan(&phone.ID, &phone.Number, &phone.Comment)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get phone: %w", err)
	}

	return phone, nil
}
