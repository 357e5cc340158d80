package store

import (
	"gorm.io/gorm"

	"homestead/server/internal/models"
)

func (s *Store) CreateApplication(a *models.Application) error {
	return s.db.Create(a).Error
}

func (s *Store) ApplicationByID(id string) (*models.Application, error) {
	var app models.Application
	err := s.db.Preload("Customer").Preload("Property").Preload("Property.Owner").
		Where("id = ?", id).First(&app).Error
	if err != nil {
		return nil, err
	}
	return &app, nil
}

func (s *Store) ApplicationsByCustomer(customerID string) ([]models.Application, error) {
	var apps []models.Application
	err := s.db.Preload("Property").
		Where("customer_id = ?", customerID).
		Order("created_at DESC").
		Find(&apps).Error
	return apps, err
}

func (s *Store) ApplicationsByProperty(propertyID string) ([]models.Application, error) {
	var apps []models.Application
	err := s.db.Preload("Customer").
		Where("property_id = ?", propertyID).
		Order("created_at DESC").
		Find(&apps).Error
	return apps, err
}

func (s *Store) ApplicationsByProperties(propertyIDs []string) ([]models.Application, error) {
	if len(propertyIDs) == 0 {
		return nil, nil
	}
	var apps []models.Application
	err := s.db.Preload("Customer").Preload("Property").
		Where("property_id IN ?", propertyIDs).
		Order("created_at DESC").
		Find(&apps).Error
	return apps, err
}

// PriceApprovalQueue returns applications against the given properties
// that are waiting for the owner's price decision.
func (s *Store) PriceApprovalQueue(propertyIDs []string) ([]models.Application, error) {
	if len(propertyIDs) == 0 {
		return nil, nil
	}
	var apps []models.Application
	err := s.db.Preload("Customer").Preload("Property").
		Where("property_id IN ? AND needs_owner_price_approval = ?", propertyIDs, true).
		Find(&apps).Error
	return apps, err
}

// ApplicationCustomerIDs returns the distinct customers that have
// applied against any of the given properties.
func (s *Store) ApplicationCustomerIDs(propertyIDs []string) ([]string, error) {
	if len(propertyIDs) == 0 {
		return nil, nil
	}
	var ids []string
	err := s.db.Model(&models.Application{}).
		Where("property_id IN ?", propertyIDs).
		Distinct().
		Pluck("customer_id", &ids).Error
	return ids, err
}

// TransitionApplication performs a conditional review transition: the
// update is applied only if the application is still in the expected
// status and targets one of the given properties. Returns the number of
// rows changed.
func (s *Store) TransitionApplication(id string, from models.ApplicationStatus, propertyIDs []string, updates map[string]any) (int64, error) {
	if len(propertyIDs) == 0 {
		return 0, nil
	}
	res := s.db.Model(&models.Application{}).
		Where("id = ? AND status = ? AND property_id IN ?", id, from, propertyIDs).
		Updates(updates)
	return res.RowsAffected, res.Error
}

// UpdateApplicationFields applies a plain field update to one
// application. Returns gorm.ErrRecordNotFound when the row is missing.
func (s *Store) UpdateApplicationFields(id string, updates map[string]any) error {
	res := s.db.Model(&models.Application{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeletePendingApplication removes a customer's own application while
// it is still pending and returns the deleted record.
func (s *Store) DeletePendingApplication(id, customerID string) (*models.Application, error) {
	var app models.Application
	err := s.Transaction(func(tx *Store) error {
		err := tx.db.Where("id = ? AND customer_id = ? AND status = ?",
			id, customerID, models.ApplicationPending).First(&app).Error
		if err != nil {
			return err
		}
		return tx.db.Delete(&app).Error
	})
	if err != nil {
		return nil, err
	}
	return &app, nil
}
