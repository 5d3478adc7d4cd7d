package db

import (
	"database/sql"
	"fmt"

	"github.com/open-ecommerce/helptext-sub000/internal/models"
)

// HelperRepository defines the interface for helper (staff profile) data
// access. Helpers are provisioned by the CRUD system; the router only reads.
type HelperRepository interface {
	GetByPhone(phone string) (*models.Helper, error)
	GetByID(id int64) (*models.Helper, error)
	NextAvailable() (int64, error)
}

// helperRepository implements HelperRepository interface
type helperRepository struct {
	db *sql.DB
}

// NewHelperRepository creates a new HelperRepository
func NewHelperRepository(db *sql.DB) HelperRepository {
	return &helperRepository{db: db}
}

// GetByPhone retrieves a helper by the assigned phone number. Returns
// (nil, nil) when no helper owns the number.
func (r *helperRepository) GetByPhone(phone string) (*models.Helper, error) {
	if phone == "" {
		return nil, fmt.Errorf("phone number cannot be empty")
	}

	helper := &models.Helper{}
	err := r.db.QueryRow(
		"SELECT id, name, phone_number, active FROM helpers WHERE phone_number = ? AND active = 1",
		phone,
	).Scan(&helper.ID, &helper.Name, &helper.PhoneNumber, &helper.Active)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get helper by phone: %w", err)
	}

	return helper, nil
}

// GetByID retrieves a helper by ID. Returns (nil, nil) when the id is not
// known, which callers treat as "case has no reachable helper".
func (r *helperRepository) GetByID(id int64) (*models.Helper, error) {
	if id <= 0 {
		return nil, fmt.Errorf("helper ID must be positive")
	}

	helper := &models.Helper{}
	err := r.db.QueryRow(
		"SELECT id, name, phone_number, active FROM helpers WHERE id = ?",
		id,
	).Scan(&helper.ID, &helper.Name, &helper.PhoneNumber, &helper.Active)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get helper by ID: %w", err)
	}

	return helper, nil
}

// NextAvailable picks the helper to assign to a new case: the active helper
// with the fewest open cases, lowest id on ties.
func (r *helperRepository) NextAvailable() (int64, error) {
	var id int64
	err := r.db.QueryRow(`
		SELECT h.id
		FROM helpers h
		LEFT JOIN cases c ON c.helper_id = h.id AND c.state = 'open'
		WHERE h.active = 1
		GROUP BY h.id
		ORDER BY COUNT(c.id) ASC, h.id ASC
		LIMIT 1
	`).Scan(&id)

	if err == sql.ErrNoRows {
		return 0, fmt.Errorf("no active helpers available")
	}
	if err != nil {
		return 0, fmt.Errorf("failed to pick next available helper: %w", err)
	}

	return id, nil
}
