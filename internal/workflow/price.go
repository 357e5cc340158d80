package workflow

import (
	"fmt"
	"math"

	"homestead/server/internal/models"
	"homestead/server/internal/notify"
	"homestead/server/internal/store"
)

// ProposePrice records a realtor-proposed final price for an approved
// application and decides whether the owner has to sign it off. A price
// at or above the listing auto-accepts; a lower price parks the
// application until the owner decides. Returns whether owner approval
// is now pending.
func (s *Service) ProposePrice(applicationID string, finalPrice float64) (bool, error) {
	if finalPrice <= 0 || math.IsNaN(finalPrice) {
		return false, Validationf("please provide a valid price")
	}

	app, err := s.store.ApplicationByID(applicationID)
	if err != nil {
		if store.IsNotFound(err) {
			return false, NotFoundf("application not found")
		}
		return false, fmt.Errorf("failed to load application: %w", err)
	}
	if app.Property == nil {
		return false, fmt.Errorf("application %s has no property reference", applicationID)
	}

	listedPrice := app.Property.Price
	if finalPrice >= listedPrice {
		// No owner action required when the proposal meets the listing.
		err = s.store.UpdateApplicationFields(applicationID, map[string]any{
			"final_price":                finalPrice,
			"needs_price_confirmation":   false,
			"needs_owner_price_approval": false,
			"price_decision":             models.PriceApproved,
		})
		if err != nil {
			return false, fmt.Errorf("failed to record price: %w", err)
		}
		return false, nil
	}

	// Below-listing proposal: reset any earlier decision and hand the
	// call to the owner.
	err = s.store.UpdateApplicationFields(applicationID, map[string]any{
		"final_price":                finalPrice,
		"needs_price_confirmation":   false,
		"needs_owner_price_approval": true,
		"price_decision":             models.PriceUndecided,
	})
	if err != nil {
		return false, fmt.Errorf("failed to record price: %w", err)
	}

	s.notifier.Notify(notify.Event{
		Type:          notify.EventPriceApprovalRequested,
		ApplicationID: applicationID,
		PropertyName:  app.Property.Name,
		ListedPrice:   listedPrice,
		FinalPrice:    finalPrice,
	})
	return true, nil
}

// DecidePrice records the owner's verdict on the proposed final price.
// The decision is terminal per proposal; the realtor may re-propose
// after a rejection, which loops back through ProposePrice.
func (s *Service) DecidePrice(ownerID, applicationID string, approved bool, reason string) error {
	app, err := s.store.ApplicationByID(applicationID)
	if err != nil {
		if store.IsNotFound(err) {
			return NotFoundf("application not found")
		}
		return fmt.Errorf("failed to load application: %w", err)
	}
	if app.Property == nil {
		return fmt.Errorf("application %s has no property reference", applicationID)
	}
	if app.Property.OwnerID != ownerID {
		return Forbiddenf("you do not own this property")
	}

	decision := models.PriceRejected
	if approved {
		decision = models.PriceApproved
	}
	updates := map[string]any{
		"needs_owner_price_approval": false,
		"price_decision":             decision,
	}
	if !approved && reason != "" {
		updates["rejection_reason"] = reason
	}

	if err := s.store.UpdateApplicationFields(applicationID, updates); err != nil {
		return fmt.Errorf("failed to record price decision: %w", err)
	}

	s.notifier.Notify(notify.Event{
		Type:          notify.EventPriceDecided,
		ApplicationID: applicationID,
		PropertyName:  app.Property.Name,
		FinalPrice:    valueOrZero(app.FinalPrice),
		Approved:      approved,
		Reason:        reason,
	})
	return nil
}

func valueOrZero(f *float64) float64 {
	if f == nil {
		return 0
	}
	return *f
}
