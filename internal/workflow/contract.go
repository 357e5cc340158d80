package workflow

import (
	"fmt"
	"strings"
	"time"

	"homestead/server/internal/models"
	"homestead/server/internal/notify"
	"homestead/server/internal/store"
)

// signerSpec is the per-role configuration of the signing state
// machine: which contract reference must match the actor, which status
// the contract must be in, and where the signature lands. Both signing
// roles run through the same transition code.
type signerSpec struct {
	pending models.ContractStatus
	next    models.ContractStatus
	partyID func(*models.Contract) string
	attach  func(*models.Signatures, string)
}

var signerSpecs = map[models.Role]signerSpec{
	models.RoleCustomer: {
		pending: models.ContractPendingCustomer,
		next:    models.ContractPendingOwner,
		partyID: func(c *models.Contract) string { return c.CustomerID },
		attach:  func(s *models.Signatures, sig string) { s.Customer = &sig },
	},
	models.RoleOwner: {
		pending: models.ContractPendingOwner,
		next:    models.ContractActive,
		partyID: func(c *models.Contract) string { return c.OwnerID },
		attach:  func(s *models.Signatures, sig string) { s.Owner = &sig },
	},
}

// CreateContractInput carries the realtor-supplied contract terms.
type CreateContractInput struct {
	Type          models.ContractType
	PropertyID    string
	CustomerID    string
	OwnerID       string
	StartDate     time.Time
	EndDate       *time.Time
	ClosingDate   *time.Time
	SalePrice     float64
	DepositAmount float64
	PaymentTerms  string
}

// CreateContract opens a contract in pending_customer with both
// signature slots empty. Only realtors may create contracts, and every
// referenced party must exist.
func (s *Service) CreateContract(realtorID string, in CreateContractInput) (*models.Contract, error) {
	if _, err := s.store.PartyByID(models.RoleRealtor, realtorID); err != nil {
		if store.IsNotFound(err) {
			return nil, Forbiddenf("only realtors can create contracts")
		}
		return nil, fmt.Errorf("failed to load realtor: %w", err)
	}

	if in.Type == "" || in.PropertyID == "" || in.CustomerID == "" || in.OwnerID == "" || in.StartDate.IsZero() {
		return nil, Validationf("missing required fields")
	}
	if in.Type != models.ContractRental && in.Type != models.ContractSale {
		return nil, Validationf("contract type must be rental or sale")
	}

	if _, err := s.store.PropertyByID(in.PropertyID); err != nil {
		return nil, referenceError(err, "property")
	}
	if _, err := s.store.PartyByID(models.RoleCustomer, in.CustomerID); err != nil {
		return nil, referenceError(err, "customer")
	}
	if _, err := s.store.PartyByID(models.RoleOwner, in.OwnerID); err != nil {
		return nil, referenceError(err, "owner")
	}

	contract := &models.Contract{
		Type:          in.Type,
		Status:        models.ContractPendingCustomer,
		PropertyID:    in.PropertyID,
		CustomerID:    in.CustomerID,
		OwnerID:       in.OwnerID,
		RealtorID:     realtorID,
		ContractDate:  time.Now(),
		StartDate:     in.StartDate,
		EndDate:       in.EndDate,
		ClosingDate:   in.ClosingDate,
		SalePrice:     in.SalePrice,
		DepositAmount: in.DepositAmount,
		PaymentTerms:  in.PaymentTerms,
	}
	if err := s.store.CreateContract(contract); err != nil {
		return nil, fmt.Errorf("failed to create contract: %w", err)
	}

	s.notifier.Notify(notify.Event{
		Type:       notify.EventContractAwaitingSignature,
		ContractID: contract.ID,
		Role:       string(models.RoleCustomer),
	})
	return s.store.ContractByID(contract.ID)
}

func referenceError(err error, what string) error {
	if store.IsNotFound(err) {
		return NotFoundf("invalid property, customer, or owner")
	}
	return fmt.Errorf("failed to load %s: %w", what, err)
}

// SignContract applies the acting party's signature and advances the
// contract: pending_customer moves to pending_owner, pending_owner
// moves to active. The customer must supply complete loan details for
// both contract types. The status change is a conditional update, so a
// concurrent sign or reject of the same contract loses cleanly.
func (s *Service) SignContract(contractID, actorID string, role models.Role, signature string, loan *models.LoanDetails) (*models.Contract, error) {
	if signature == "" {
		return nil, Validationf("signature is required")
	}
	spec, ok := signerSpecs[role]
	if !ok {
		return nil, Validationf("unknown signing role %q", role)
	}

	contract, err := s.store.ContractByID(contractID)
	if err != nil {
		if store.IsNotFound(err) {
			return nil, NotFoundf("contract not found")
		}
		return nil, fmt.Errorf("failed to load contract: %w", err)
	}
	if spec.partyID(contract) != actorID {
		return nil, Forbiddenf("access denied")
	}
	if contract.Status != spec.pending {
		return nil, InvalidStatef("contract not in signable state")
	}

	assign := models.Contract{Status: spec.next}
	if role == models.RoleCustomer {
		if loan == nil {
			return nil, Validationf("loan details required")
		}
		if missing := missingLoanFields(loan); len(missing) > 0 {
			return nil, Validationf("missing loan fields: %s", strings.Join(missing, ", "))
		}
		normalized := *loan
		normalized.ApprovalDate = truncateToDate(loan.ApprovalDate)
		assign.LoanDetails = &normalized
	}

	sigs := contract.Signatures
	spec.attach(&sigs, signature)
	assign.Signatures = sigs

	err = s.store.Transaction(func(tx *store.Store) error {
		won, err := tx.TransitionContract(contractID, spec.pending, assign)
		if err != nil {
			return fmt.Errorf("failed to update contract: %w", err)
		}
		if !won {
			return InvalidStatef("contract not in signable state")
		}

		// The owner's signature activates the contract and settles the
		// property: sold for sales, rented for rentals.
		if spec.next == models.ContractActive {
			status := models.PropertySold
			if contract.Type == models.ContractRental {
				status = models.PropertyRented
			}
			if err := tx.SetPropertyStatus(contract.PropertyID, status); err != nil {
				return fmt.Errorf("failed to update property status: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifier.Notify(notify.Event{
		Type:       notify.EventContractSigned,
		ContractID: contractID,
		Role:       string(role),
	})
	if spec.next == models.ContractPendingOwner {
		s.notifier.Notify(notify.Event{
			Type:       notify.EventContractAwaitingSignature,
			ContractID: contractID,
			Role:       string(models.RoleOwner),
		})
	}

	return s.store.ContractByID(contractID)
}

// RejectContract cancels a contract from the acting party's pending
// state. Cancelled is terminal; no signature or rejection is accepted
// afterwards.
func (s *Service) RejectContract(contractID, actorID string, role models.Role) (*models.Contract, error) {
	spec, ok := signerSpecs[role]
	if !ok {
		return nil, Validationf("unknown signing role %q", role)
	}

	contract, err := s.store.ContractByID(contractID)
	if err != nil {
		if store.IsNotFound(err) {
			return nil, NotFoundf("contract not found")
		}
		return nil, fmt.Errorf("failed to load contract: %w", err)
	}
	if spec.partyID(contract) != actorID {
		return nil, Forbiddenf("this contract does not belong to you as %s", role)
	}
	if contract.Status != spec.pending {
		return nil, InvalidStatef("contract not in rejectable state")
	}

	won, err := s.store.TransitionContract(contractID, spec.pending, models.Contract{Status: models.ContractCancelled})
	if err != nil {
		return nil, fmt.Errorf("failed to update contract: %w", err)
	}
	if !won {
		return nil, InvalidStatef("contract not in rejectable state")
	}

	s.notifier.Notify(notify.Event{
		Type:       notify.EventContractRejected,
		ContractID: contractID,
		Role:       string(role),
	})
	return s.store.ContractByID(contractID)
}

func missingLoanFields(loan *models.LoanDetails) []string {
	var missing []string
	if loan.Amount == 0 {
		missing = append(missing, "amount")
	}
	if loan.Provider == "" {
		missing = append(missing, "provider")
	}
	if loan.Type == "" {
		missing = append(missing, "type")
	}
	if loan.InterestRate == 0 {
		missing = append(missing, "interestRate")
	}
	if loan.ApprovalDate.IsZero() {
		missing = append(missing, "approvalDate")
	}
	if loan.Status == "" {
		missing = append(missing, "status")
	}
	return missing
}

func truncateToDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
