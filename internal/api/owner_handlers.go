package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"homestead/server/internal/auth"
	"homestead/server/internal/models"
)

// requireSelf rejects requests whose path id does not match the token
// subject; admins are exempt.
func requireSelf(c *gin.Context, pathParam string) (string, bool) {
	id := c.Param(pathParam)
	if auth.ActorRole(c) == models.RoleAdmin || auth.ActorID(c) == id {
		return id, true
	}
	respondError(c, http.StatusForbidden, "Access denied")
	return "", false
}

// GetOwnerProperties lists the properties listed by one owner.
func (h *Handler) GetOwnerProperties(c *gin.Context) {
	ownerID, ok := requireSelf(c, "ownerId")
	if !ok {
		return
	}

	properties, err := h.store.PropertiesByOwner(ownerID)
	if err != nil {
		h.logger.WithError(err).Error("Failed to fetch owner properties")
		respondError(c, http.StatusInternalServerError, "Server error")
		return
	}
	respondData(c, http.StatusOK, properties)
}

type createPropertyRequest struct {
	Name     string   `json:"name"`
	Type     string   `json:"type"`
	BHK      int      `json:"bhk"`
	Area     float64  `json:"area"`
	Price    float64  `json:"price"`
	Location string   `json:"location"`
	Realtor  string   `json:"realtor"`
	Images   []string `json:"images"`
}

// CreateProperty lists a new property for the owner, optionally
// assigned to a realtor. Images arrive as data URLs from the upload
// layer.
func (h *Handler) CreateProperty(c *gin.Context) {
	ownerID, ok := requireSelf(c, "ownerId")
	if !ok {
		return
	}

	var req createPropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Name == "" || req.Type == "" || req.Price <= 0 {
		respondError(c, http.StatusBadRequest, "Missing required fields: name, type, price")
		return
	}

	property := &models.Property{
		Name:      req.Name,
		Type:      req.Type,
		BHK:       req.BHK,
		Area:      req.Area,
		Price:     req.Price,
		Location:  req.Location,
		RealtorID: req.Realtor,
		OwnerID:   ownerID,
		Images:    req.Images,
		Status:    models.PropertyAvailable,
	}
	if err := h.store.CreateProperty(property); err != nil {
		h.logger.WithError(err).Error("Failed to create property")
		respondError(c, http.StatusInternalServerError, "Failed to create property")
		return
	}

	created, err := h.store.PropertyByID(property.ID)
	if err != nil {
		h.logger.WithError(err).Error("Failed to reload property")
		respondError(c, http.StatusInternalServerError, "Server error")
		return
	}
	respondMessage(c, http.StatusCreated, "Property created successfully", created)
}

// GetApprovedRealtors lists realtors an owner may assign to a listing.
func (h *Handler) GetApprovedRealtors(c *gin.Context) {
	realtors, err := h.store.ListParties(models.RoleRealtor, models.PartyApproved)
	if err != nil {
		h.logger.WithError(err).Error("Failed to fetch realtors")
		respondError(c, http.StatusInternalServerError, "Failed to fetch realtors")
		return
	}
	respondData(c, http.StatusOK, realtors)
}

// GetPriceApprovalRequests lists applications against the owner's
// properties that are waiting for a price decision.
func (h *Handler) GetPriceApprovalRequests(c *gin.Context) {
	ownerID, ok := requireSelf(c, "ownerId")
	if !ok {
		return
	}

	properties, err := h.store.PropertiesByOwner(ownerID)
	if err != nil {
		h.logger.WithError(err).Error("Failed to fetch owner properties")
		respondError(c, http.StatusInternalServerError, "Server error")
		return
	}
	ids := make([]string, 0, len(properties))
	for _, p := range properties {
		ids = append(ids, p.ID)
	}

	apps, err := h.store.PriceApprovalQueue(ids)
	if err != nil {
		h.logger.WithError(err).Error("Failed to fetch price approval requests")
		respondError(c, http.StatusInternalServerError, "Server error")
		return
	}
	respondData(c, http.StatusOK, apps)
}

type approvePriceRequest struct {
	Approved *bool  `json:"approved"`
	Reason   string `json:"reason"`
}

// ApprovePrice records the owner's accept/reject decision on a
// below-listing price proposal.
func (h *Handler) ApprovePrice(c *gin.Context) {
	ownerID, ok := requireSelf(c, "ownerId")
	if !ok {
		return
	}

	var req approvePriceRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Approved == nil {
		respondError(c, http.StatusBadRequest, "approved is required")
		return
	}

	err := h.workflow.DecidePrice(ownerID, c.Param("applicationId"), *req.Approved, req.Reason)
	if err != nil {
		h.respondWorkflowError(c, err)
		return
	}

	verdict := "rejected"
	if *req.Approved {
		verdict = "approved"
	}
	respondMessage(c, http.StatusOK, "Price "+verdict+" successfully", nil)
}
