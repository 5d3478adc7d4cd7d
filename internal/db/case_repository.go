package db

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mattn/go-sqlite3"

	"github.com/open-ecommerce/helptext-sub000/internal/models"
)

// Comments stamped on rows the router creates, so staff can tell them apart
// from hand-entered records.
const (
	systemPhoneComment  = "added by system"
	newCaseReviewMarker = "New case to review"
)

// CaseRepository defines the interface for case thread data access.
// CreateFirstContact is the only write path that creates cases; everything
// else is read-only.
type CaseRepository interface {
	GetByID(id int64) (*models.Case, error)
	GetLatestByContact(contactID int64) (*models.Case, error)
	CreateFirstContact(phone string, helperID int64) (*models.Case, bool, error)
}

// caseRepository implements CaseRepository interface
type caseRepository struct {
	db *sql.DB
}

// NewCaseRepository creates a new CaseRepository
func NewCaseRepository(db *sql.DB) CaseRepository {
	return &caseRepository{db: db}
}

// GetByID retrieves a case by ID. Returns (nil, nil) when the id does not
// exist; callers treat that as "no case", not an error.
func (r *caseRepository) GetByID(id int64) (*models.Case, error) {
	if id <= 0 {
		return nil, fmt.Errorf("case ID must be positive")
	}

	return scanCase(r.db.QueryRow(`
		SELECT id, contact_id, phone_number, helper_id, state, start_date, close_date, comments
		FROM cases
		WHERE id = ?
	`, id))
}

// GetLatestByContact retrieves the contact's most recent case by start date.
// Returns (nil, nil) when the contact has no case at all.
func (r *caseRepository) GetLatestByContact(contactID int64) (*models.Case, error) {
	if contactID <= 0 {
		return nil, fmt.Errorf("contact ID must be positive")
	}

	return scanCase(r.db.QueryRow(`
		SELECT id, contact_id, phone_number, helper_id, state, start_date, close_date, comments
		FROM cases
		WHERE contact_id = ?
		ORDER BY start_date DESC, id DESC
		LIMIT 1
	`, contactID))
}

// CreateFirstContact creates the contact, phone, link and open case for a
// first-time sender in one transaction. The UNIQUE constraint on phone
// numbers makes the operation idempotent: when a concurrent request already
// created the phone, the transaction rolls back and the existing contact's
// latest case is returned with created=false.
func (r *caseRepository) CreateFirstContact(phone string, helperID int64) (*models.Case, bool, error) {
	if phone == "" {
		return nil, false, fmt.Errorf("phone number cannot be empty")
	}

	now := time.Now().Unix()

	tx, err := r.db.Begin()
	if err != nil {
		return nil, false, fmt.Errorf("failed to begin transaction: %w", err)
	}

	created, err := r.createFirstContactTx(tx, phone, helperID, now)
	if err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && rbErr != sql.ErrTxDone {
			return nil, false, fmt.Errorf("create failed: %w, rollback failed: %v", err, rbErr)
		}
		if isUniqueViolation(err) {
			// Lost the race: another request created this phone. Fall back to
			// the already-existing thread.
			return r.lookupExisting(phone)
		}
		return nil, false, err
	}

	if err := tx.Commit(); err != nil {
		return nil, false, fmt.Errorf("failed to commit first contact: %w", err)
	}

	return created, true, nil
}

func (r *caseRepository) createFirstContactTx(tx *sql.Tx, phone string, helperID, now int64) (*models.Case, error) {
	res, err := tx.Exec(
		"INSERT INTO contacts (first_name, last_name, created_at) VALUES ('', '', ?)",
		now,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create contact: %w", err)
	}
	contactID, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to read contact id: %w", err)
	}

	res, err = tx.Exec(
		"INSERT INTO phones (number, comment) VALUES (?, ?)",
		phone, systemPhoneComment,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create phone: %w", err)
	}
	phoneID, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to read phone id: %w", err)
	}

	if _, err = tx.Exec(
		"INSERT INTO contact_phones (contact_id, phone_id) VALUES (?, ?)",
		contactID, phoneID,
	); err != nil {
		return nil, fmt.Errorf("failed to link contact and phone: %w", err)
	}

	res, err = tx.Exec(`
		INSERT INTO cases (contact_id, phone_number, helper_id, state, start_date, comments)
		VALUES (?, ?, ?, ?, ?, ?)
	`, contactID, phone, helperID, models.CaseStateOpen, now, newCaseReviewMarker)
	if err != nil {
		return nil, fmt.Errorf("failed to create case: %w", err)
	}
	caseID, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to read case id: %w", err)
	}

	return &models.Case{
		ID:          caseID,
		ContactID:   contactID,
		PhoneNumber: phone,
		HelperID:    helperID,
		State:       models.CaseStateOpen,
		StartDate:   now,
		Comments:    newCaseReviewMarker,
	}, nil
}

// lookupExisting resolves phone -> contact -> latest case after a lost
// creation race.
func (r *caseRepository) lookupExisting(phone string) (*models.Case, bool, error) {
	var contactID int64
	err := r.db.QueryRow(`
		SELECT cp.contact_id
		FROM phones p
		JOIN contact_phones cp ON cp.phone_id = p.id
		WHERE p.number = ?
		LIMIT 1
	`, phone).Scan(&contactID)
	if err == sql.ErrNoRows {
		return nil, false, fmt.Errorf("phone %s exists but is not linked to a contact", phone)
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to resolve existing phone: %w", err)
	}

	existing, err := r.GetLatestByContact(contactID)
	if err != nil {
		return nil, false, err
	}
	return existing, false, nil
}

func scanCase(row *sql.Row) (*models.Case, error) {
	c := &models.Case{}
	err := row.Scan(
		&c.ID,
		&c.ContactID,
		&c.PhoneNumber,
		&c.HelperID,
		&c.State,
		&c.StartDate,
		&c.CloseDate,
		&c.Comments,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan case: %w", err)
	}

	return c, nil
}

func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.Code == sqlite3.ErrConstraint
	}
	return false
}
