package store

import (
	"gorm.io/gorm"

	"homestead/server/internal/models"
)

func (s *Store) CreateParty(p *models.Party) error {
	return s.db.Create(p).Error
}

// PartyByID looks a party up by id, optionally constrained to a role.
func (s *Store) PartyByID(role models.Role, id string) (*models.Party, error) {
	q := s.db.Where("id = ?", id)
	if role != "" {
		q = q.Where("role = ?", role)
	}
	var p models.Party
	if err := q.First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *Store) PartyByEmail(role models.Role, email string) (*models.Party, error) {
	var p models.Party
	err := s.db.Where("role = ? AND email = ?", role, email).First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// AdminByLoginID finds the admin account registered under the given
// admin login id.
func (s *Store) AdminByLoginID(adminID string) (*models.Party, error) {
	var p models.Party
	err := s.db.Where("role = ? AND admin_id = ?", models.RoleAdmin, adminID).First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// ListParties returns parties of one role, optionally filtered by
// approval status, newest first.
func (s *Store) ListParties(role models.Role, statuses ...models.PartyStatus) ([]models.Party, error) {
	q := s.db.Where("role = ?", role).Order("created_at DESC")
	if len(statuses) > 0 {
		q = q.Where("status IN ?", statuses)
	}
	var parties []models.Party
	if err := q.Find(&parties).Error; err != nil {
		return nil, err
	}
	return parties, nil
}

func (s *Store) CountParties(role models.Role, statuses ...models.PartyStatus) (int64, error) {
	q := s.db.Model(&models.Party{}).Where("role = ?", role)
	if len(statuses) > 0 {
		q = q.Where("status IN ?", statuses)
	}
	var n int64
	err := q.Count(&n).Error
	return n, err
}

// SetPartyStatus updates the approval status of an owner or realtor
// account and returns the updated record.
func (s *Store) SetPartyStatus(role models.Role, id string, status models.PartyStatus) (*models.Party, error) {
	res := s.db.Model(&models.Party{}).
		Where("id = ? AND role = ?", id, role).
		Update("status", status)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return s.PartyByID(role, id)
}

func (s *Store) DeleteParty(role models.Role, id string) error {
	res := s.db.Where("id = ? AND role = ?", id, role).Delete(&models.Party{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
