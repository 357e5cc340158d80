package store

import (
	"gorm.io/gorm"

	"homestead/server/internal/models"
)

func (s *Store) CreateProperty(p *models.Property) error {
	return s.db.Create(p).Error
}

func (s *Store) PropertyByID(id string) (*models.Property, error) {
	var p models.Property
	err := s.db.Preload("Owner").Preload("Realtor").Where("id = ?", id).First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *Store) PropertiesByOwner(ownerID string) ([]models.Property, error) {
	var props []models.Property
	err := s.db.Preload("Realtor").Where("owner_id = ?", ownerID).Find(&props).Error
	return props, err
}

func (s *Store) PropertiesByRealtor(realtorID string) ([]models.Property, error) {
	var props []models.Property
	err := s.db.Preload("Owner").Where("realtor_id = ?", realtorID).Find(&props).Error
	return props, err
}

func (s *Store) AvailableProperties() ([]models.Property, error) {
	var props []models.Property
	err := s.db.Preload("Owner").Preload("Realtor").
		Where("status = ?", models.PropertyAvailable).
		Find(&props).Error
	return props, err
}

// RealtorPropertyIDs returns the ids of every property managed by the
// realtor. Workflow guards use it as the realtor's managed-property set.
func (s *Store) RealtorPropertyIDs(realtorID string) ([]string, error) {
	var ids []string
	err := s.db.Model(&models.Property{}).
		Where("realtor_id = ?", realtorID).
		Pluck("id", &ids).Error
	return ids, err
}

func (s *Store) SetPropertyStatus(id string, status models.PropertyStatus) error {
	res := s.db.Model(&models.Property{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// AddInterestedCustomer records the customer against the property's
// interested set, once.
func (s *Store) AddInterestedCustomer(propertyID, customerID string) error {
	return s.Transaction(func(tx *Store) error {
		var p models.Property
		if err := tx.db.Where("id = ?", propertyID).First(&p).Error; err != nil {
			return err
		}
		for _, id := range p.InterestedCustomerIDs {
			if id == customerID {
				return nil
			}
		}
		ids := append(p.InterestedCustomerIDs, customerID)
		return tx.setInterestedCustomers(&p, ids)
	})
}

func (s *Store) RemoveInterestedCustomer(propertyID, customerID string) error {
	return s.Transaction(func(tx *Store) error {
		var p models.Property
		if err := tx.db.Where("id = ?", propertyID).First(&p).Error; err != nil {
			return err
		}
		kept := make([]string, 0, len(p.InterestedCustomerIDs))
		for _, id := range p.InterestedCustomerIDs {
			if id != customerID {
				kept = append(kept, id)
			}
		}
		return tx.setInterestedCustomers(&p, kept)
	})
}

// setInterestedCustomers writes the interested set through a struct
// update so the column goes through the JSON serializer; Select keeps
// the write happening when the slice has been emptied.
func (s *Store) setInterestedCustomers(p *models.Property, ids []string) error {
	return s.db.Model(p).Select("interested_customer_ids").
		Updates(models.Property{InterestedCustomerIDs: ids}).Error
}
