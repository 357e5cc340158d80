package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PropertyStatus is the marketplace state of a listing.
type PropertyStatus string

const (
	PropertyAvailable PropertyStatus = "available"
	PropertyRented    PropertyStatus = "rented"
	PropertySold      PropertyStatus = "sold"
)

type Property struct {
	ID   string  `json:"id" gorm:"primaryKey"`
	Name string  `json:"name"`
	Type string  `json:"type"`
	BHK  int     `json:"bhk,omitempty"`
	Area float64 `json:"area,omitempty"`

	Price    float64 `json:"price"`
	Location string  `json:"location"`

	// Images are stored inline as data URLs, matching what the upload
	// layer produces.
	Images []string `json:"images" gorm:"serializer:json"`

	OwnerID   string `json:"owner" gorm:"index"`
	RealtorID string `json:"realtor,omitempty" gorm:"index"`
	Owner     *Party `json:"ownerDetails,omitempty" gorm:"foreignKey:OwnerID"`
	Realtor   *Party `json:"realtorDetails,omitempty" gorm:"foreignKey:RealtorID"`

	// Customers with an open application against this listing.
	InterestedCustomerIDs []string `json:"interestedCustomers" gorm:"serializer:json"`

	Status    PropertyStatus `json:"status"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

func (p *Property) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
