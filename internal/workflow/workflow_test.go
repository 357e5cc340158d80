package workflow

import (
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"homestead/server/internal/models"
	"homestead/server/internal/notify"
	"homestead/server/internal/store"
)

// captureNotifier records every event for assertions.
type captureNotifier struct {
	mu     sync.Mutex
	events []notify.Event
}

func (c *captureNotifier) Notify(ev notify.Event) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, ev)
}

func (c *captureNotifier) Events() []notify.Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]notify.Event(nil), c.events...)
}

func newTestService(t *testing.T) (*Service, *store.Store, *captureNotifier) {
	t.Helper()

	st, err := store.Open("file:" + uuid.NewString() + "?mode=memory&cache=shared")
	require.NoError(t, err)
	require.NoError(t, st.Migrate())
	t.Cleanup(func() { _ = st.Close() })

	notifier := &captureNotifier{}
	logger := logrus.New()
	return NewService(st, logger, notifier), st, notifier
}

func seedParty(t *testing.T, st *store.Store, role models.Role) *models.Party {
	t.Helper()
	p := &models.Party{
		Role:      role,
		Email:     uuid.NewString() + "@example.com",
		FirstName: "Test",
		LastName:  string(role),
		Status:    models.PartyApproved,
	}
	require.NoError(t, st.CreateParty(p))
	return p
}

func seedProperty(t *testing.T, st *store.Store, ownerID, realtorID string, price float64) *models.Property {
	t.Helper()
	p := &models.Property{
		Name:      "Maple Street 12",
		Type:      "house",
		Price:     price,
		Location:  "Springfield",
		OwnerID:   ownerID,
		RealtorID: realtorID,
		Status:    models.PropertyAvailable,
	}
	require.NoError(t, st.CreateProperty(p))
	return p
}

func seedApplication(t *testing.T, st *store.Store, customerID, propertyID string, status models.ApplicationStatus) *models.Application {
	t.Helper()
	a := &models.Application{
		FirstName:  "Pat",
		LastName:   "Applicant",
		CustomerID: customerID,
		PropertyID: propertyID,
		Status:     status,
	}
	require.NoError(t, st.CreateApplication(a))
	return a
}
