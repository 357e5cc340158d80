package store

import (
	"gorm.io/gorm"

	"homestead/server/internal/models"
)

func (s *Store) CreateContract(c *models.Contract) error {
	return s.db.Create(c).Error
}

func (s *Store) ContractByID(id string) (*models.Contract, error) {
	var c models.Contract
	err := s.withContractRefs().Where("id = ?", id).First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *Store) ContractsByRealtor(realtorID string) ([]models.Contract, error) {
	return s.contractsBy("realtor_id", realtorID)
}

func (s *Store) ContractsByCustomer(customerID string) ([]models.Contract, error) {
	return s.contractsBy("customer_id", customerID)
}

func (s *Store) ContractsByOwner(ownerID string) ([]models.Contract, error) {
	return s.contractsBy("owner_id", ownerID)
}

func (s *Store) contractsBy(column, id string) ([]models.Contract, error) {
	var contracts []models.Contract
	err := s.withContractRefs().
		Where(column+" = ?", id).
		Order("created_at DESC").
		Find(&contracts).Error
	return contracts, err
}

func (s *Store) withContractRefs() *gorm.DB {
	return s.db.Preload("Property").Preload("Owner").Preload("Customer").Preload("Realtor")
}

// TransitionContract advances a contract only if it is still in the
// expected status. assign carries the new status plus any signature or
// loan fields; zero-valued fields are left untouched.
func (s *Store) TransitionContract(id string, from models.ContractStatus, assign models.Contract) (bool, error) {
	res := s.db.Model(&models.Contract{}).
		Where("id = ? AND status = ?", id, from).
		Updates(assign)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
