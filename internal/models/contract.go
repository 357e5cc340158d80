package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ContractType distinguishes rental agreements from sales.
type ContractType string

const (
	ContractRental ContractType = "rental"
	ContractSale   ContractType = "sale"
)

// ContractStatus is the signing state of a contract. Signatures are
// collected in a fixed order: the customer signs first, then the owner.
type ContractStatus string

const (
	ContractPendingCustomer ContractStatus = "pending_customer"
	ContractPendingOwner    ContractStatus = "pending_owner"
	ContractActive          ContractStatus = "active"
	ContractCancelled       ContractStatus = "cancelled"

	// ContractCompleted is reserved for contract expiry/fulfilment.
	// No transition reaches it today; it exists so stored historical
	// rows and display code have a name for it.
	ContractCompleted ContractStatus = "completed"
)

// LoanDetails is the customer's financing information, attached to the
// contract when the customer signs.
type LoanDetails struct {
	Amount       float64   `json:"amount"`
	Provider     string    `json:"provider"`
	Type         string    `json:"type"`
	InterestRate float64   `json:"interestRate"`
	ApprovalDate time.Time `json:"approvalDate"`
	Status       string    `json:"status"`
}

// Signatures holds one signature blob per signing role; a nil entry
// means that party has not signed yet.
type Signatures struct {
	Customer *string `json:"customer"`
	Owner    *string `json:"owner"`
}

type Contract struct {
	ID     string         `json:"id" gorm:"primaryKey"`
	Type   ContractType   `json:"type"`
	Status ContractStatus `json:"status" gorm:"index"`

	PropertyID string `json:"property" gorm:"index"`
	OwnerID    string `json:"owner" gorm:"index"`
	CustomerID string `json:"customer" gorm:"index"`
	RealtorID  string `json:"realtor" gorm:"index"`

	Property *Property `json:"propertyDetails,omitempty" gorm:"foreignKey:PropertyID"`
	Owner    *Party    `json:"ownerDetails,omitempty" gorm:"foreignKey:OwnerID"`
	Customer *Party    `json:"customerDetails,omitempty" gorm:"foreignKey:CustomerID"`
	Realtor  *Party    `json:"realtorDetails,omitempty" gorm:"foreignKey:RealtorID"`

	ContractDate time.Time  `json:"contractDate"`
	StartDate    time.Time  `json:"startDate"`
	EndDate      *time.Time `json:"endDate,omitempty"`
	ClosingDate  *time.Time `json:"closingDate,omitempty"`

	SalePrice     float64 `json:"salePrice,omitempty"`
	DepositAmount float64 `json:"depositAmount,omitempty"`
	PaymentTerms  string  `json:"paymentTerms,omitempty"`

	Signatures  Signatures   `json:"signatures" gorm:"serializer:json"`
	LoanDetails *LoanDetails `json:"loanDetails,omitempty" gorm:"serializer:json"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (c *Contract) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
