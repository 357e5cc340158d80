package workflow

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"homestead/server/internal/models"
	"homestead/server/internal/store"
)

type contractFixture struct {
	owner    *models.Party
	realtor  *models.Party
	customer *models.Party
	property *models.Property
}

func newContractFixture(t *testing.T, st *store.Store) contractFixture {
	t.Helper()
	owner := seedParty(t, st, models.RoleOwner)
	realtor := seedParty(t, st, models.RoleRealtor)
	customer := seedParty(t, st, models.RoleCustomer)
	property := seedProperty(t, st, owner.ID, realtor.ID, 300000)
	return contractFixture{owner: owner, realtor: realtor, customer: customer, property: property}
}

func (f contractFixture) input(contractType models.ContractType) CreateContractInput {
	return CreateContractInput{
		Type:       contractType,
		PropertyID: f.property.ID,
		CustomerID: f.customer.ID,
		OwnerID:    f.owner.ID,
		StartDate:  time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		SalePrice:  295000,
	}
}

func completeLoan() *models.LoanDetails {
	return &models.LoanDetails{
		Amount:       250000,
		Provider:     "First National",
		Type:         "fixed",
		InterestRate: 5.2,
		ApprovalDate: time.Date(2025, 5, 20, 14, 30, 0, 0, time.UTC),
		Status:       "approved",
	}
}

func TestCreateContract(t *testing.T) {
	svc, st, _ := newTestService(t)
	f := newContractFixture(t, st)

	contract, err := svc.CreateContract(f.realtor.ID, f.input(models.ContractSale))
	require.NoError(t, err)
	assert.Equal(t, models.ContractPendingCustomer, contract.Status)
	assert.Nil(t, contract.Signatures.Customer)
	assert.Nil(t, contract.Signatures.Owner)
	assert.Equal(t, f.realtor.ID, contract.RealtorID)
	assert.False(t, contract.ContractDate.IsZero())
}

func TestCreateContract_OnlyRealtors(t *testing.T) {
	svc, st, _ := newTestService(t)
	f := newContractFixture(t, st)

	_, err := svc.CreateContract(f.customer.ID, f.input(models.ContractSale))
	assert.Equal(t, KindForbidden, KindOf(err))
}

func TestCreateContract_MissingFields(t *testing.T) {
	svc, st, _ := newTestService(t)
	f := newContractFixture(t, st)

	in := f.input(models.ContractSale)
	in.StartDate = time.Time{}
	_, err := svc.CreateContract(f.realtor.ID, in)
	assert.Equal(t, KindValidation, KindOf(err))
}

func TestCreateContract_DanglingReference(t *testing.T) {
	svc, st, _ := newTestService(t)
	f := newContractFixture(t, st)

	in := f.input(models.ContractSale)
	in.CustomerID = "no-such-customer"
	_, err := svc.CreateContract(f.realtor.ID, in)
	assert.Equal(t, KindNotFound, KindOf(err))
}

func TestSignContract_CustomerOutOfOrder(t *testing.T) {
	svc, st, _ := newTestService(t)
	f := newContractFixture(t, st)

	contract, err := svc.CreateContract(f.realtor.ID, f.input(models.ContractSale))
	require.NoError(t, err)

	// Owner cannot sign before the customer: the contract is still in
	// pending_customer.
	_, err = svc.SignContract(contract.ID, f.owner.ID, models.RoleOwner, "owner-sig", nil)
	assert.Equal(t, KindInvalidState, KindOf(err))

	got, err := st.ContractByID(contract.ID)
	require.NoError(t, err)
	assert.Nil(t, got.Signatures.Owner)
	assert.Equal(t, models.ContractPendingCustomer, got.Status)
}

func TestSignContract_CustomerAfterTheirTurn(t *testing.T) {
	svc, st, _ := newTestService(t)
	f := newContractFixture(t, st)

	contract, err := svc.CreateContract(f.realtor.ID, f.input(models.ContractSale))
	require.NoError(t, err)

	_, err = svc.SignContract(contract.ID, f.customer.ID, models.RoleCustomer, "customer-sig", completeLoan())
	require.NoError(t, err)

	// A second customer signature fails and leaves signatures alone.
	_, err = svc.SignContract(contract.ID, f.customer.ID, models.RoleCustomer, "another-sig", completeLoan())
	assert.Equal(t, KindInvalidState, KindOf(err))

	got, err := st.ContractByID(contract.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Signatures.Customer)
	assert.Equal(t, "customer-sig", *got.Signatures.Customer)
}

func TestSignContract_WrongParty(t *testing.T) {
	svc, st, _ := newTestService(t)
	f := newContractFixture(t, st)
	stranger := seedParty(t, st, models.RoleCustomer)

	contract, err := svc.CreateContract(f.realtor.ID, f.input(models.ContractSale))
	require.NoError(t, err)

	_, err = svc.SignContract(contract.ID, stranger.ID, models.RoleCustomer, "sig", completeLoan())
	assert.Equal(t, KindForbidden, KindOf(err))
}

func TestSignContract_IncompleteLoanDetails(t *testing.T) {
	svc, st, _ := newTestService(t)
	f := newContractFixture(t, st)

	contract, err := svc.CreateContract(f.realtor.ID, f.input(models.ContractSale))
	require.NoError(t, err)

	loan := completeLoan()
	loan.Provider = ""
	loan.Status = ""
	_, err = svc.SignContract(contract.ID, f.customer.ID, models.RoleCustomer, "sig", loan)
	require.Equal(t, KindValidation, KindOf(err))
	assert.Contains(t, err.Error(), "provider")
	assert.Contains(t, err.Error(), "status")

	_, err = svc.SignContract(contract.ID, f.customer.ID, models.RoleCustomer, "sig", nil)
	assert.Equal(t, KindValidation, KindOf(err))
}

// Full sale round trip: customer signs with loan details, owner signs,
// the contract activates and the property is sold.
func TestSignContract_SaleRoundTrip(t *testing.T) {
	svc, st, _ := newTestService(t)
	f := newContractFixture(t, st)

	contract, err := svc.CreateContract(f.realtor.ID, f.input(models.ContractSale))
	require.NoError(t, err)

	loan := completeLoan()
	afterCustomer, err := svc.SignContract(contract.ID, f.customer.ID, models.RoleCustomer, "customer-sig", loan)
	require.NoError(t, err)
	assert.Equal(t, models.ContractPendingOwner, afterCustomer.Status)

	afterOwner, err := svc.SignContract(contract.ID, f.owner.ID, models.RoleOwner, "owner-sig", nil)
	require.NoError(t, err)
	assert.Equal(t, models.ContractActive, afterOwner.Status)

	require.NotNil(t, afterOwner.Signatures.Customer)
	require.NotNil(t, afterOwner.Signatures.Owner)
	assert.Equal(t, "customer-sig", *afterOwner.Signatures.Customer)
	assert.Equal(t, "owner-sig", *afterOwner.Signatures.Owner)

	require.NotNil(t, afterOwner.LoanDetails)
	assert.Equal(t, loan.Amount, afterOwner.LoanDetails.Amount)
	assert.Equal(t, loan.Provider, afterOwner.LoanDetails.Provider)
	assert.Equal(t, loan.InterestRate, afterOwner.LoanDetails.InterestRate)
	// The approval date is normalized to midnight UTC, compared as a
	// time value.
	assert.True(t, afterOwner.LoanDetails.ApprovalDate.Equal(
		time.Date(2025, 5, 20, 0, 0, 0, 0, time.UTC)))

	property, err := st.PropertyByID(f.property.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PropertySold, property.Status)
}

// Rental activation marks the property rented, not sold.
func TestSignContract_RentalMarksPropertyRented(t *testing.T) {
	svc, st, _ := newTestService(t)
	f := newContractFixture(t, st)

	contract, err := svc.CreateContract(f.realtor.ID, f.input(models.ContractRental))
	require.NoError(t, err)

	_, err = svc.SignContract(contract.ID, f.customer.ID, models.RoleCustomer, "customer-sig", completeLoan())
	require.NoError(t, err)
	_, err = svc.SignContract(contract.ID, f.owner.ID, models.RoleOwner, "owner-sig", nil)
	require.NoError(t, err)

	property, err := st.PropertyByID(f.property.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PropertyRented, property.Status)
}

func TestRejectContract(t *testing.T) {
	svc, st, _ := newTestService(t)
	f := newContractFixture(t, st)

	contract, err := svc.CreateContract(f.realtor.ID, f.input(models.ContractSale))
	require.NoError(t, err)

	cancelled, err := svc.RejectContract(contract.ID, f.customer.ID, models.RoleCustomer)
	require.NoError(t, err)
	assert.Equal(t, models.ContractCancelled, cancelled.Status)

	// Cancelled is terminal: neither signing nor rejecting works.
	_, err = svc.SignContract(contract.ID, f.customer.ID, models.RoleCustomer, "sig", completeLoan())
	assert.Equal(t, KindInvalidState, KindOf(err))
	_, err = svc.RejectContract(contract.ID, f.customer.ID, models.RoleCustomer)
	assert.Equal(t, KindInvalidState, KindOf(err))
}

func TestRejectContract_WrongParty(t *testing.T) {
	svc, st, _ := newTestService(t)
	f := newContractFixture(t, st)
	stranger := seedParty(t, st, models.RoleOwner)

	contract, err := svc.CreateContract(f.realtor.ID, f.input(models.ContractSale))
	require.NoError(t, err)

	_, err = svc.RejectContract(contract.ID, stranger.ID, models.RoleOwner)
	assert.Equal(t, KindForbidden, KindOf(err))
}

func TestRejectContract_FromPendingOwner(t *testing.T) {
	svc, st, _ := newTestService(t)
	f := newContractFixture(t, st)

	contract, err := svc.CreateContract(f.realtor.ID, f.input(models.ContractSale))
	require.NoError(t, err)

	_, err = svc.SignContract(contract.ID, f.customer.ID, models.RoleCustomer, "customer-sig", completeLoan())
	require.NoError(t, err)

	cancelled, err := svc.RejectContract(contract.ID, f.owner.ID, models.RoleOwner)
	require.NoError(t, err)
	assert.Equal(t, models.ContractCancelled, cancelled.Status)

	// The property never left the market.
	property, err := st.PropertyByID(f.property.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PropertyAvailable, property.Status)
}
