package services

import (
	"fmt"

	"github.com/open-ecommerce/helptext-sub000/internal/models"
)

// HelperDirectory is the slice of the helper repository the resolver needs.
type HelperDirectory interface {
	GetByPhone(phone string) (*models.Helper, error)
	GetByID(id int64) (*models.Helper, error)
	NextAvailable() (int64, error)
}

// ContactDirectory is the slice of the contact repository the resolver needs.
type ContactDirectory interface {
	GetByPhone(phone string) (*models.Contact, error)
}

// IdentityService classifies inbound phone numbers. Helpers are checked
// first: staff is a closed, trusted set and a number can only mean one thing.
type IdentityService struct {
	helpers  HelperDirectory
	contacts ContactDirectory
}

// NewIdentityService creates a new IdentityService
func NewIdentityService(helpers HelperDirectory, contacts ContactDirectory) *IdentityService {
	return &IdentityService{helpers: helpers, contacts: contacts}
}

// Resolve maps a phone number to Helper, Contact or Unknown. Lookup failures
// propagate; an unreachable store must never be mistaken for a first-time
// sender.
func (s *IdentityService) Resolve(phone string) (models.Identity, error) {
	if phone == "" {
		return models.Identity{}, fmt.Errorf("phone number is required")
	}

	helper, err := s.helpers.GetByPhone(phone)
	if err != nil {
		return models.Identity{}, fmt.Errorf("helper lookup failed: %w", err)
	}
	if helper != nil {
		return models.Identity{
			Kind:        models.IdentityHelper,
			HelperID:    helper.ID,
			HelperPhone: helper.PhoneNumber,
		}, nil
	}

	contact, err := s.contacts.GetByPhone(phone)
	if err != nil {
		return models.Identity{}, fmt.Errorf("contact lookup failed: %w", err)
	}
	if contact != nil {
		return models.Identity{
			Kind:      models.IdentityContact,
			ContactID: contact.ID,
		}, nil
	}

	return models.Identity{Kind: models.IdentityUnknown}, nil
}
