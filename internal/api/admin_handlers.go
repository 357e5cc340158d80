package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"homestead/server/internal/models"
	"homestead/server/internal/store"
)

// reviewableRole resolves the userType body/path value of admin account
// review endpoints; only owners and realtors go through approval.
func reviewableRole(userType string) (models.Role, bool) {
	switch models.Role(userType) {
	case models.RoleOwner:
		return models.RoleOwner, true
	case models.RoleRealtor:
		return models.RoleRealtor, true
	}
	return "", false
}

type reviewUserRequest struct {
	UserType string `json:"userType"`
}

// ApproveUser marks a pending owner or realtor account as approved.
func (h *Handler) ApproveUser(c *gin.Context) {
	h.reviewUser(c, models.PartyApproved)
}

// RejectUser marks a pending owner or realtor account as rejected.
func (h *Handler) RejectUser(c *gin.Context) {
	h.reviewUser(c, models.PartyRejected)
}

func (h *Handler) reviewUser(c *gin.Context, status models.PartyStatus) {
	var req reviewUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	role, ok := reviewableRole(req.UserType)
	if !ok {
		respondError(c, http.StatusBadRequest, "userType must be owner or realtor")
		return
	}

	party, err := h.store.SetPartyStatus(role, c.Param("id"), status)
	if err != nil {
		if store.IsNotFound(err) {
			respondError(c, http.StatusNotFound, "Account not found")
			return
		}
		h.logger.WithError(err).Error("Failed to update account status")
		respondError(c, http.StatusInternalServerError, "Server error")
		return
	}
	respondData(c, http.StatusOK, party)
}

// GetAdminStats returns the dashboard counters.
func (h *Handler) GetAdminStats(c *gin.Context) {
	counts := map[string]int64{}
	queries := []struct {
		key      string
		role     models.Role
		statuses []models.PartyStatus
	}{
		{"totalOwners", models.RoleOwner, nil},
		{"totalRealtors", models.RoleRealtor, nil},
		{"pendingOwners", models.RoleOwner, []models.PartyStatus{models.PartyPending}},
		{"pendingRealtors", models.RoleRealtor, []models.PartyStatus{models.PartyPending}},
	}
	for _, q := range queries {
		n, err := h.store.CountParties(q.role, q.statuses...)
		if err != nil {
			h.logger.WithError(err).Error("Failed to load admin stats")
			respondError(c, http.StatusInternalServerError, "Server error")
			return
		}
		counts[q.key] = n
	}

	respondData(c, http.StatusOK, gin.H{
		"totalOwners":      counts["totalOwners"],
		"totalRealtors":    counts["totalRealtors"],
		"pendingApprovals": counts["pendingOwners"] + counts["pendingRealtors"],
	})
}

// GetPendingAccounts lists owner or realtor accounts awaiting review.
func (h *Handler) GetPendingAccounts(c *gin.Context) {
	role, ok := reviewableRole(c.Param("userType"))
	if !ok {
		respondError(c, http.StatusBadRequest, "userType must be owner or realtor")
		return
	}
	h.listAccounts(c, role, models.PartyPending)
}

// GetAccounts lists owner or realtor accounts, optionally filtered by
// the status query parameter.
func (h *Handler) GetAccounts(c *gin.Context) {
	role, ok := reviewableRole(c.Param("userType"))
	if !ok {
		respondError(c, http.StatusBadRequest, "userType must be owner or realtor")
		return
	}
	if status := c.Query("status"); status != "" {
		switch s := models.PartyStatus(status); s {
		case models.PartyPending, models.PartyApproved, models.PartyRejected:
			h.listAccounts(c, role, s)
		default:
			respondError(c, http.StatusBadRequest, "status must be pending, approved or rejected")
		}
		return
	}
	h.listAccounts(c, role)
}

func (h *Handler) listAccounts(c *gin.Context, role models.Role, statuses ...models.PartyStatus) {
	parties, err := h.store.ListParties(role, statuses...)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list accounts")
		respondError(c, http.StatusInternalServerError, "Server error")
		return
	}
	respondData(c, http.StatusOK, parties)
}

// DeleteAccount removes an owner or realtor account.
func (h *Handler) DeleteAccount(c *gin.Context) {
	role, ok := reviewableRole(c.Param("userType"))
	if !ok {
		respondError(c, http.StatusBadRequest, "userType must be owner or realtor")
		return
	}

	if err := h.store.DeleteParty(role, c.Param("id")); err != nil {
		if store.IsNotFound(err) {
			respondError(c, http.StatusNotFound, "Account not found")
			return
		}
		h.logger.WithError(err).Error("Failed to delete account")
		respondError(c, http.StatusInternalServerError, "Server error")
		return
	}
	respondMessage(c, http.StatusOK, "Account deleted successfully", nil)
}
