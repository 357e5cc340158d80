package workflow

import (
	"fmt"

	"homestead/server/internal/models"
)

// ApproveApplication moves a pending application to approved and flags
// it for price confirmation: the realtor must propose a final price
// before a contract can be created. The transition only succeeds when
// the application is still pending and targets a property the acting
// realtor manages.
func (s *Service) ApproveApplication(realtorID, applicationID string) (*models.Application, error) {
	return s.reviewApplication(realtorID, applicationID, map[string]any{
		"status":                   models.ApplicationApproved,
		"needs_price_confirmation": true,
		"reviewed_by_id":           realtorID,
	})
}

// RejectApplication moves a pending application to rejected. The
// transition is one-way; a rejected application cannot be revisited.
func (s *Service) RejectApplication(realtorID, applicationID string) (*models.Application, error) {
	return s.reviewApplication(realtorID, applicationID, map[string]any{
		"status":         models.ApplicationRejected,
		"reviewed_by_id": realtorID,
	})
}

func (s *Service) reviewApplication(realtorID, applicationID string, updates map[string]any) (*models.Application, error) {
	managed, err := s.store.RealtorPropertyIDs(realtorID)
	if err != nil {
		return nil, fmt.Errorf("failed to load managed properties: %w", err)
	}

	rows, err := s.store.TransitionApplication(applicationID, models.ApplicationPending, managed, updates)
	if err != nil {
		return nil, fmt.Errorf("failed to update application: %w", err)
	}
	if rows == 0 {
		return nil, NotFoundf("application not found or not pending")
	}

	return s.store.ApplicationByID(applicationID)
}
