package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role identifies the account type of a party.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleOwner    Role = "owner"
	RoleRealtor  Role = "realtor"
	RoleCustomer Role = "customer"
)

// ValidRole reports whether r is one of the four known account types.
func ValidRole(r Role) bool {
	switch r {
	case RoleAdmin, RoleOwner, RoleRealtor, RoleCustomer:
		return true
	}
	return false
}

// PartyStatus is the admin-approval state of an owner or realtor account.
// Customers and admins are always approved.
type PartyStatus string

const (
	PartyPending  PartyStatus = "pending"
	PartyApproved PartyStatus = "approved"
	PartyRejected PartyStatus = "rejected"
)

type Address struct {
	AddressLane string `json:"addressLane"`
	City        string `json:"city"`
	State       string `json:"state"`
	Zipcode     string `json:"zipcode"`
}

// Party is a role-typed account: admin, owner, realtor or customer.
// All roles share one table; role-specific fields are simply unused for
// the roles that do not carry them.
type Party struct {
	ID           string      `json:"id" gorm:"primaryKey"`
	Role         Role        `json:"role" gorm:"index:idx_parties_role_email,unique"`
	Email        string      `json:"email" gorm:"index:idx_parties_role_email,unique"`
	AdminID      string      `json:"adminId,omitempty" gorm:"index"`
	PasswordHash string      `json:"-"`
	FirstName    string      `json:"firstName"`
	LastName     string      `json:"lastName"`
	Phone        string      `json:"phone"`
	Address      Address     `json:"address" gorm:"serializer:json"`
	SSN          string      `json:"-"`
	DOB          *time.Time  `json:"dob,omitempty"`
	Occupation   string      `json:"occupation,omitempty"`
	AnnualIncome float64     `json:"annualIncome,omitempty"`
	Status       PartyStatus `json:"status"`
	CreatedAt    time.Time   `json:"createdAt"`
	UpdatedAt    time.Time   `json:"updatedAt"`
}

func (p *Party) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// NeedsApproval reports whether the role is gated behind admin review.
func (r Role) NeedsApproval() bool {
	return r == RoleOwner || r == RoleRealtor
}
