package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"homestead/server/internal/auth"
	"homestead/server/internal/models"
	"homestead/server/internal/store"
)

// GetManagedProperties lists the properties assigned to the acting
// realtor.
func (h *Handler) GetManagedProperties(c *gin.Context) {
	properties, err := h.store.PropertiesByRealtor(auth.ActorID(c))
	if err != nil {
		h.logger.WithError(err).Error("Failed to fetch managed properties")
		respondError(c, http.StatusInternalServerError, "Error fetching managed properties")
		return
	}
	respondData(c, http.StatusOK, properties)
}

// GetPropertyApplications lists the applications filed against one of
// the realtor's managed properties.
func (h *Handler) GetPropertyApplications(c *gin.Context) {
	property, err := h.store.PropertyByID(c.Param("id"))
	if err != nil || property.RealtorID != auth.ActorID(c) {
		respondError(c, http.StatusNotFound, "Property not found or not managed by you")
		return
	}

	applications, err := h.store.ApplicationsByProperty(property.ID)
	if err != nil {
		h.logger.WithError(err).Error("Failed to fetch property applications")
		respondError(c, http.StatusInternalServerError, "Error fetching property applications")
		return
	}

	respondData(c, http.StatusOK, gin.H{
		"property": gin.H{
			"id":      property.ID,
			"name":    property.Name,
			"price":   property.Price,
			"address": property.Location,
		},
		"applications": applications,
	})
}

// GetAllApplications lists applications across every property the
// realtor manages.
func (h *Handler) GetAllApplications(c *gin.Context) {
	managed, err := h.store.RealtorPropertyIDs(auth.ActorID(c))
	if err != nil {
		h.logger.WithError(err).Error("Failed to fetch managed properties")
		respondError(c, http.StatusInternalServerError, "Error fetching applications")
		return
	}

	applications, err := h.store.ApplicationsByProperties(managed)
	if err != nil {
		h.logger.WithError(err).Error("Failed to fetch applications")
		respondError(c, http.StatusInternalServerError, "Error fetching applications")
		return
	}
	respondData(c, http.StatusOK, applications)
}

// ApproveApplication approves a pending application on one of the
// realtor's properties and opens the price-confirmation step.
func (h *Handler) ApproveApplication(c *gin.Context) {
	application, err := h.workflow.ApproveApplication(auth.ActorID(c), c.Param("id"))
	if err != nil {
		h.respondWorkflowError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Application approved", application)
}

// RejectApplication rejects a pending application on one of the
// realtor's properties.
func (h *Handler) RejectApplication(c *gin.Context) {
	application, err := h.workflow.RejectApplication(auth.ActorID(c), c.Param("id"))
	if err != nil {
		h.respondWorkflowError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Application rejected", application)
}

type requestPriceApprovalRequest struct {
	FinalPrice float64 `json:"finalPrice"`
}

// RequestPriceApproval records the realtor's proposed final price for
// an approved application. A below-listing price is parked for the
// owner's decision; anything else is accepted immediately.
func (h *Handler) RequestPriceApproval(c *gin.Context) {
	var req requestPriceApprovalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Please provide a valid price")
		return
	}

	needsOwnerApproval, err := h.workflow.ProposePrice(c.Param("applicationId"), req.FinalPrice)
	if err != nil {
		h.respondWorkflowError(c, err)
		return
	}

	message := "Price set successfully. No owner approval needed."
	if needsOwnerApproval {
		message = "Price approval request sent to the owner"
	}
	c.JSON(http.StatusOK, gin.H{
		"success":            true,
		"message":            message,
		"needsOwnerApproval": needsOwnerApproval,
	})
}

// GetAssociatedCustomers lists the customers that have applied against
// any property the realtor manages.
func (h *Handler) GetAssociatedCustomers(c *gin.Context) {
	managed, err := h.store.RealtorPropertyIDs(auth.ActorID(c))
	if err != nil {
		h.logger.WithError(err).Error("Failed to fetch managed properties")
		respondError(c, http.StatusInternalServerError, "Error fetching associated customers")
		return
	}

	customerIDs, err := h.store.ApplicationCustomerIDs(managed)
	if err != nil {
		h.logger.WithError(err).Error("Failed to fetch applicant customers")
		respondError(c, http.StatusInternalServerError, "Error fetching associated customers")
		return
	}

	customers := make([]models.Party, 0, len(customerIDs))
	for _, id := range customerIDs {
		customer, err := h.store.PartyByID(models.RoleCustomer, id)
		if err != nil {
			if store.IsNotFound(err) {
				continue
			}
			h.logger.WithError(err).Error("Failed to fetch customer")
			respondError(c, http.StatusInternalServerError, "Error fetching associated customers")
			return
		}
		customers = append(customers, *customer)
	}
	respondData(c, http.StatusOK, customers)
}

// GetAssociatedOwners lists the owners of every property the realtor
// manages.
func (h *Handler) GetAssociatedOwners(c *gin.Context) {
	properties, err := h.store.PropertiesByRealtor(auth.ActorID(c))
	if err != nil {
		h.logger.WithError(err).Error("Failed to fetch managed properties")
		respondError(c, http.StatusInternalServerError, "Error fetching property owners")
		return
	}

	seen := map[string]bool{}
	owners := make([]models.Party, 0, len(properties))
	for _, p := range properties {
		if p.Owner == nil || seen[p.OwnerID] {
			continue
		}
		seen[p.OwnerID] = true
		owners = append(owners, *p.Owner)
	}
	respondData(c, http.StatusOK, owners)
}
