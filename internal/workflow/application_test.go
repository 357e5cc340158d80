package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"homestead/server/internal/models"
)

func TestApproveApplication(t *testing.T) {
	svc, st, _ := newTestService(t)

	owner := seedParty(t, st, models.RoleOwner)
	realtor := seedParty(t, st, models.RoleRealtor)
	customer := seedParty(t, st, models.RoleCustomer)
	property := seedProperty(t, st, owner.ID, realtor.ID, 250000)
	app := seedApplication(t, st, customer.ID, property.ID, models.ApplicationPending)

	approved, err := svc.ApproveApplication(realtor.ID, app.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationApproved, approved.Status)
	assert.True(t, approved.NeedsPriceConfirmation)
	assert.Equal(t, realtor.ID, approved.ReviewedByID)
}

func TestApproveApplication_NotManagedByRealtor(t *testing.T) {
	svc, st, _ := newTestService(t)

	owner := seedParty(t, st, models.RoleOwner)
	realtor := seedParty(t, st, models.RoleRealtor)
	other := seedParty(t, st, models.RoleRealtor)
	customer := seedParty(t, st, models.RoleCustomer)
	property := seedProperty(t, st, owner.ID, realtor.ID, 250000)
	app := seedApplication(t, st, customer.ID, property.ID, models.ApplicationPending)

	_, err := svc.ApproveApplication(other.ID, app.ID)
	assert.Equal(t, KindNotFound, KindOf(err))
}

func TestApproveApplication_NotPending(t *testing.T) {
	svc, st, _ := newTestService(t)

	owner := seedParty(t, st, models.RoleOwner)
	realtor := seedParty(t, st, models.RoleRealtor)
	customer := seedParty(t, st, models.RoleCustomer)
	property := seedProperty(t, st, owner.ID, realtor.ID, 250000)
	app := seedApplication(t, st, customer.ID, property.ID, models.ApplicationRejected)

	_, err := svc.ApproveApplication(realtor.ID, app.ID)
	assert.Equal(t, KindNotFound, KindOf(err))
}

func TestRejectApplication(t *testing.T) {
	svc, st, _ := newTestService(t)

	owner := seedParty(t, st, models.RoleOwner)
	realtor := seedParty(t, st, models.RoleRealtor)
	customer := seedParty(t, st, models.RoleCustomer)
	property := seedProperty(t, st, owner.ID, realtor.ID, 250000)
	app := seedApplication(t, st, customer.ID, property.ID, models.ApplicationPending)

	rejected, err := svc.RejectApplication(realtor.ID, app.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationRejected, rejected.Status)
	assert.False(t, rejected.NeedsPriceConfirmation)

	// Rejection is one-way: no later approval.
	_, err = svc.ApproveApplication(realtor.ID, app.ID)
	assert.Equal(t, KindNotFound, KindOf(err))
}

func TestApproveApplication_Missing(t *testing.T) {
	svc, st, _ := newTestService(t)

	realtor := seedParty(t, st, models.RoleRealtor)
	owner := seedParty(t, st, models.RoleOwner)
	seedProperty(t, st, owner.ID, realtor.ID, 100000)

	_, err := svc.ApproveApplication(realtor.ID, "no-such-application")
	assert.Equal(t, KindNotFound, KindOf(err))
}
