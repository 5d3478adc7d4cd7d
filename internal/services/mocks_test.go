package services

import (
	"github.com/open-ecommerce/helptext-sub000/internal/models"
)

type mockHelperDirectory struct {
	getByPhoneFunc    func(phone string) (*models.Helper, error)
	getByIDFunc       func(id int64) (*models.Helper, error)
	nextAvailableFunc func() (int64, error)
}

func (m *mockHelperDirectory) GetByPhone(phone string) (*models.Helper, error) {
	if m.getByPhoneFunc == nil {
		return nil, nil
	}
	return m.getByPhoneFunc(phone)
}

func (m *mockHelperDirectory) GetByID(id int64) (*models.Helper, error) {
	if m.getByIDFunc == nil {
		return nil, nil
	}
	return m.getByIDFunc(id)
}

func (m *mockHelperDirectory) NextAvailable() (int64, error) {
	if m.nextAvailableFunc == nil {
		return 1, nil
	}
	return m.nextAvailableFunc()
}

type mockContactDirectory struct {
	getByPhoneFunc func(phone string) (*models.Contact, error)
}

func (m *mockContactDirectory) GetByPhone(phone string) (*models.Contact, error) {
	if m.getByPhoneFunc == nil {
		return nil, nil
	}
	return m.getByPhoneFunc(phone)
}

type mockCaseStore struct {
	getByIDFunc            func(id int64) (*models.Case, error)
	getLatestByContactFunc func(contactID int64) (*models.Case, error)
	createFirstContactFunc func(phone string, helperID int64) (*models.Case, bool, error)
}

func (m *mockCaseStore) GetByID(id int64) (*models.Case, error) {
	if m.getByIDFunc == nil {
		return nil, nil
	}
	return m.getByIDFunc(id)
}

func (m *mockCaseStore) GetLatestByContact(contactID int64) (*models.Case, error) {
	if m.getLatestByContactFunc == nil {
		return nil, nil
	}
	return m.getLatestByContactFunc(contactID)
}

func (m *mockCaseStore) CreateFirstContact(phone string, helperID int64) (*models.Case, bool, error) {
	if m.createFirstContactFunc == nil {
		return nil, false, nil
	}
	return m.createFirstContactFunc(phone, helperID)
}

type mockMessageStore struct {
	addFunc func(msg *models.Message) error
	added   []*models.Message
}

func (m *mockMessageStore) Add(msg *models.Message) error {
	if m.addFunc != nil {
		if err := m.addFunc(msg); err != nil {
			return err
		}
	}
	m.added = append(m.added, msg)
	return nil
}

type mockSettingsSource struct {
	settings *models.Settings
	err      error
}

func (m *mockSettingsSource) Snapshot() (*models.Settings, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.settings != nil {
		return m.settings, nil
	}
	return defaultTestSettings(), nil
}

func defaultTestSettings() *models.Settings {
	return &models.Settings{
		Anonymize:         false,
		AutomaticResponse: true,
		Provider:          "log",
		SenderTypeContact: 2,
		SenderTypeHelper:  3,
	}
}

type sentMessage struct {
	to   string
	body string
}

type mockProvider struct {
	sendFunc func(to, body string) (string, error)
	sent     []sentMessage
}

func (m *mockProvider) Send(to, body string) (string, error) {
	m.sent = append(m.sent, sentMessage{to: to, body: body})
	if m.sendFunc != nil {
		return m.sendFunc(to, body)
	}
	return "ok", nil
}
