package db

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/open-ecommerce/helptext-sub000/internal/models"
)

// MessageRepository defines the interface for the append-only message store.
type MessageRepository interface {
	Add(msg *models.Message) error
	ListByCase(caseID int64) ([]*models.Message, error)
}

// messageRepository implements MessageRepository interface
type messageRepository struct {
	db *sql.DB
}

// NewMessageRepository creates a new MessageRepository
func NewMessageRepository(db *sql.DB) MessageRepository {
	return &messageRepository{db: db}
}

// Add appends a message to its case thread.
func (r *messageRepository) Add(msg *models.Message) error {
	if msg == nil {
		return fmt.Errorf("message cannot be nil")
	}
	if msg.CaseID <= 0 {
		return fmt.Errorf("message must belong to a case")
	}
	if msg.PhoneNumber == "" {
		return fmt.Errorf("message phone number is required")
	}

	if msg.Sent == 0 {
		msg.Sent = time.Now().Unix()
	}
	if msg.MessageTypeID == 0 {
		msg.MessageTypeID = models.MessageTypeSMS
	}

	res, err := r.db.Exec(`
		INSERT INTO messages (phone_number, case_id, sender_type_id, message_type_id, body, sent)
		VALUES (?, ?, ?, ?, ?, ?)
	`, msg.PhoneNumber, msg.CaseID, msg.SenderTypeID, msg.MessageTypeID, msg.Body, msg.Sent)
	if err != nil {
		return fmt.Errorf("failed to add message: %w", err)
	}

	if id, err := res.LastInsertId(); err == nil {
		msg.ID = id
	}

	return nil
}

// ListByCase returns a case's thread ordered by sent timestamp. Arrival
// order at the router is irrelevant for threading.
func (r *messageRepository) ListByCase(caseID int64) ([]*models.Message, error) {
	if caseID <= 0 {
		return nil, fmt.Errorf("case ID must be positive")
	}

	rows, err := r.db.Query(`
		SELECT id, phone_number, case_id, sender_type_id, message_type_id, body, sent
		FROM messages
		WHERE case_id = ?
		ORDER BY sent ASC, id ASC
	`, caseID)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	defer rows.Close()

	var messages []*models.Message
	for rows.Next() {
		msg := &models.Message{}
		if err := rows.Scan(
			&msg.ID,
			&msg.PhoneNumber,
			&msg.CaseID,
			&msg.SenderTypeID,
			&msg.MessageTypeID,
			&msg.Body,
			&msg.Sent,
		); err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		messages = append(messages, msg)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return messages, nil
}
