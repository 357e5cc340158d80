package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"homestead/server/internal/models"
	"homestead/server/internal/store"
)

// GetAvailableProperties lists every property still on the market.
func (h *Handler) GetAvailableProperties(c *gin.Context) {
	properties, err := h.store.AvailableProperties()
	if err != nil {
		h.logger.WithError(err).Error("Failed to fetch properties")
		respondError(c, http.StatusInternalServerError, "Server error")
		return
	}
	respondData(c, http.StatusOK, properties)
}

// GetPropertyDetails returns one listing.
func (h *Handler) GetPropertyDetails(c *gin.Context) {
	property, err := h.store.PropertyByID(c.Param("id"))
	if err != nil {
		if store.IsNotFound(err) {
			respondError(c, http.StatusNotFound, "Property not found")
			return
		}
		h.logger.WithError(err).Error("Failed to fetch property")
		respondError(c, http.StatusInternalServerError, "Server error")
		return
	}
	respondData(c, http.StatusOK, property)
}

type submitApplicationRequest struct {
	PropertyID       string           `json:"propertyId"`
	FirstName        string           `json:"firstName"`
	LastName         string           `json:"lastName"`
	Email            string           `json:"email"`
	PhoneNumber      string           `json:"phonenumber"`
	SSN              string           `json:"SSN"`
	EmployerName     string           `json:"employerName"`
	EmploymentStatus string           `json:"employmentStatus"`
	AnnualIncome     float64          `json:"annualincome"`
	Documents        models.Documents `json:"documents"`
}

// SubmitApplication files a customer's application against an
// available property and records the customer's interest on it.
func (h *Handler) SubmitApplication(c *gin.Context) {
	customerID, ok := requireSelf(c, "customerId")
	if !ok {
		return
	}

	var req submitApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	property, err := h.store.PropertyByID(req.PropertyID)
	if err != nil || property.Status != models.PropertyAvailable {
		respondError(c, http.StatusNotFound, "Property unavailable")
		return
	}

	application := &models.Application{
		FirstName:        req.FirstName,
		LastName:         req.LastName,
		Email:            req.Email,
		PhoneNumber:      req.PhoneNumber,
		SSN:              req.SSN,
		EmployerName:     req.EmployerName,
		EmploymentStatus: req.EmploymentStatus,
		AnnualIncome:     req.AnnualIncome,
		Documents:        req.Documents,
		CustomerID:       customerID,
		PropertyID:       req.PropertyID,
		Status:           models.ApplicationPending,
	}
	if err := h.store.CreateApplication(application); err != nil {
		h.logger.WithError(err).Error("Failed to create application")
		respondError(c, http.StatusInternalServerError, "Server error")
		return
	}
	if err := h.store.AddInterestedCustomer(req.PropertyID, customerID); err != nil {
		h.logger.WithError(err).Error("Failed to record customer interest")
	}

	respondMessage(c, http.StatusCreated, "Application submitted", application)
}

// GetCustomerApplications lists the customer's applications, newest
// first.
func (h *Handler) GetCustomerApplications(c *gin.Context) {
	customerID, ok := requireSelf(c, "customerId")
	if !ok {
		return
	}

	applications, err := h.store.ApplicationsByCustomer(customerID)
	if err != nil {
		h.logger.WithError(err).Error("Failed to fetch applications")
		respondError(c, http.StatusInternalServerError, "Server error")
		return
	}
	respondData(c, http.StatusOK, applications)
}

// CancelApplication withdraws a still-pending application and the
// customer's interest in the property.
func (h *Handler) CancelApplication(c *gin.Context) {
	customerID, ok := requireSelf(c, "customerId")
	if !ok {
		return
	}

	application, err := h.store.DeletePendingApplication(c.Param("applicationId"), customerID)
	if err != nil {
		if store.IsNotFound(err) {
			respondError(c, http.StatusNotFound, "Application not found")
			return
		}
		h.logger.WithError(err).Error("Failed to cancel application")
		respondError(c, http.StatusInternalServerError, "Server error")
		return
	}
	if err := h.store.RemoveInterestedCustomer(application.PropertyID, customerID); err != nil {
		h.logger.WithError(err).Error("Failed to withdraw customer interest")
	}

	respondMessage(c, http.StatusOK, "Application cancelled", nil)
}
