package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ApplicationStatus is the review state of a rental/purchase application.
type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "pending"
	ApplicationApproved ApplicationStatus = "approved"
	ApplicationRejected ApplicationStatus = "rejected"
)

// PriceDecision is the owner's verdict on a realtor-proposed final
// price. Undecided is a first-class state: it holds both before any
// proposal and while an owner decision is outstanding.
type PriceDecision string

const (
	PriceUndecided PriceDecision = "undecided"
	PriceApproved  PriceDecision = "approved"
	PriceRejected  PriceDecision = "rejected"
)

// Documents holds references to the applicant's uploaded paperwork.
type Documents struct {
	ProofOfEmployment string `json:"proofOfEmployment,omitempty"`
	GovernmentID      string `json:"governmentId,omitempty"`
	ProofOfAddress    string `json:"proofOfAddress,omitempty"`
	BankStatement     string `json:"bankStatement,omitempty"`
}

// Application is a customer's request to rent or buy one property. The
// applicant fields are a snapshot taken at submission time; they do not
// track later edits to the customer account.
type Application struct {
	ID string `json:"id" gorm:"primaryKey"`

	FirstName        string  `json:"firstName"`
	LastName         string  `json:"lastName"`
	Email            string  `json:"email"`
	PhoneNumber      string  `json:"phonenumber"`
	SSN              string  `json:"-"`
	EmployerName     string  `json:"employerName"`
	EmploymentStatus string  `json:"employmentStatus"`
	AnnualIncome     float64 `json:"annualIncome"`

	Documents Documents `json:"documents" gorm:"serializer:json"`

	CustomerID string    `json:"customer" gorm:"index"`
	PropertyID string    `json:"property" gorm:"index"`
	Customer   *Party    `json:"customerDetails,omitempty" gorm:"foreignKey:CustomerID"`
	Property   *Property `json:"propertyDetails,omitempty" gorm:"foreignKey:PropertyID"`

	Status       ApplicationStatus `json:"status"`
	ReviewedByID string            `json:"reviewedBy,omitempty"`

	// Price negotiation sub-state. While NeedsOwnerPriceApproval is
	// true, PriceDecision must be undecided.
	FinalPrice              *float64      `json:"finalPrice"`
	NeedsPriceConfirmation  bool          `json:"needsPriceConfirmation"`
	NeedsOwnerPriceApproval bool          `json:"needsOwnerPriceApproval"`
	PriceDecision           PriceDecision `json:"priceDecision"`
	RejectionReason         string        `json:"rejectionReason"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (a *Application) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.PriceDecision == "" {
		a.PriceDecision = PriceUndecided
	}
	return nil
}
