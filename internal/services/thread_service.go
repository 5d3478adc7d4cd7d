package services

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/open-ecommerce/helptext-sub000/internal/models"
)

// caseTagPattern matches the case#<digits># tag embedded in message text.
// First match wins. This is free text typed by humans, so a non-resolving
// tag is treated like no tag at all.
var caseTagPattern = regexp.MustCompile(`case#(\d+)#`)

// ParseCaseTag extracts the case id from a message body, or 0 when the body
// carries no parseable tag.
func ParseCaseTag(body string) int64 {
	match := caseTagPattern.FindStringSubmatch(body)
	if match == nil {
		return 0
	}

	id, err := strconv.ParseInt(match[1], 10, 64)
	if err != nil {
		// Digits too long for int64; treat like an unresolvable tag.
		return 0
	}
	return id
}

// CaseStore is the slice of the case repository the thread service needs.
type CaseStore interface {
	GetByID(id int64) (*models.Case, error)
	GetLatestByContact(contactID int64) (*models.Case, error)
	CreateFirstContact(phone string, helperID int64) (*models.Case, bool, error)
}

// HelperAllocator picks the helper assigned to a brand-new case. The policy
// is owned by the surrounding CRUD system; the router only consumes the id.
type HelperAllocator interface {
	NextAvailable() (int64, error)
}

// ThreadService resolves the case thread an inbound message belongs to, and
// creates the contact/phone/case records on first contact.
type ThreadService struct {
	cases     CaseStore
	helpers   HelperDirectory
	allocator HelperAllocator
}

// NewThreadService creates a new ThreadService
func NewThreadService(cases CaseStore, helpers HelperDirectory, allocator HelperAllocator) *ThreadService {
	return &ThreadService{cases: cases, helpers: helpers, allocator: allocator}
}

// ResolveOrCreate finds the active case for one inbound message. An explicit
// case id (internal compose path) wins over a body tag; a tag that does not
// resolve falls back to "no case". A zero CaseID in the returned context
// means no thread could be resolved or created — the dispatch policy decides
// what the sender hears in that situation.
func (s *ThreadService) ResolveOrCreate(identity models.Identity, phone, body string, explicitCaseID int64) (models.CaseContext, error) {
	candidateID := explicitCaseID
	if candidateID == 0 {
		candidateID = ParseCaseTag(body)
	}

	if candidateID != 0 {
		c, err := s.cases.GetByID(candidateID)
		if err != nil {
			return models.CaseContext{}, err
		}
		if c != nil {
			return s.contextFor(c, false)
		}
		// Tag did not resolve; behave exactly as if there were no tag.
	}

	switch identity.Kind {
	case models.IdentityUnknown:
		helperID, err := s.allocator.NextAvailable()
		if err != nil {
			return models.CaseContext{}, fmt.Errorf("helper allocation failed: %w", err)
		}

		c, created, err := s.cases.CreateFirstContact(phone, helperID)
		if err != nil {
			return models.CaseContext{}, err
		}
		if c == nil {
			// Lost a creation race against a request whose thread is gone too.
			return models.CaseContext{}, nil
		}
		return s.contextFor(c, created)

	case models.IdentityContact:
		c, err := s.cases.GetLatestByContact(identity.ContactID)
		if err != nil {
			return models.CaseContext{}, err
		}
		if c == nil {
			// Phone is linked to a contact but no case exists. Data
			// inconsistency: report no case, the sender still gets a reply.
			return models.CaseContext{}, nil
		}
		return s.contextFor(c, false)

	default:
		// Helper without a resolvable case id. Not an error here; dispatch
		// turns it into a corrective reply.
		return models.CaseContext{}, nil
	}
}

func (s *ThreadService) contextFor(c *models.Case, created bool) (models.CaseContext, error) {
	ctx := models.CaseContext{
		CaseID:      c.ID,
		IsOpen:      c.IsOpen(),
		HelperID:    c.HelperID,
		PhoneNumber: c.PhoneNumber,
		Created:     created,
	}

	if c.HelperID > 0 {
		helper, err := s.helpers.GetByID(c.HelperID)
		if err != nil {
			return models.CaseContext{}, fmt.Errorf("assigned helper lookup failed: %w", err)
		}
		if helper != nil {
			ctx.HelperPhone = helper.PhoneNumber
		}
	}

	return ctx, nil
}
