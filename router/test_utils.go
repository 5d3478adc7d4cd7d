package router

import (
	"github.com/stretchr/testify/mock"

	"github.com/open-ecommerce/helptext-sub000/internal/models"
)

type MockMessageRouter struct {
	mock.Mock
}

func (m *MockMessageRouter) Route(event *models.InboundEvent) (*models.RouteResult, error) {
	args := m.Called(event)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RouteResult), args.Error(1)
}

// matchEvent compares the routing-relevant fields of an InboundEvent.
func matchEvent(expected *models.InboundEvent) interface{} {
	return mock.MatchedBy(func(actual *models.InboundEvent) bool {
		return actual.PhoneNumber == expected.PhoneNumber &&
			actual.Body == expected.Body &&
			actual.CaseID == expected.CaseID
	})
}
