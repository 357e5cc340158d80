package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"homestead/server/internal/auth"
	"homestead/server/internal/models"
	"homestead/server/internal/store"
)

type signupRequest struct {
	Email        string         `json:"email"`
	Password     string         `json:"password"`
	FirstName    string         `json:"firstName"`
	LastName     string         `json:"lastName"`
	Phone        string         `json:"phone"`
	DOB          string         `json:"dob"`
	Occupation   string         `json:"occupation"`
	AnnualIncome float64        `json:"annualIncome"`
	Address      models.Address `json:"address"`
	SSN          string         `json:"SSN"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type adminLoginRequest struct {
	AdminID  string `json:"adminId"`
	Password string `json:"password"`
}

// signupRole resolves the :role path segment for the signup and login
// endpoints; admins register out of band.
func signupRole(c *gin.Context) (models.Role, bool) {
	role := models.Role(c.Param("role"))
	switch role {
	case models.RoleCustomer, models.RoleOwner, models.RoleRealtor:
		return role, true
	}
	respondError(c, http.StatusNotFound, "Unknown account type")
	return "", false
}

// Signup registers an account for the role in the path. Owner and
// realtor accounts start pending and must be approved by an admin
// before they can log in; customers receive a session token right away.
func (h *Handler) Signup(c *gin.Context) {
	role, ok := signupRole(c)
	if !ok {
		return
	}

	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.FirstName == "" || req.LastName == "" || req.Email == "" || req.Password == "" {
		respondError(c, http.StatusBadRequest, "Missing required fields: firstName, lastName, email, password")
		return
	}

	if _, err := h.store.PartyByEmail(role, req.Email); err == nil {
		respondError(c, http.StatusBadRequest, "Email already registered")
		return
	} else if !store.IsNotFound(err) {
		h.logger.WithError(err).Error("Failed to check existing account")
		respondError(c, http.StatusInternalServerError, "Server error")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		h.logger.WithError(err).Error("Failed to hash password")
		respondError(c, http.StatusInternalServerError, "Server error")
		return
	}

	party := &models.Party{
		Role:         role,
		Email:        req.Email,
		PasswordHash: hash,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Phone:        req.Phone,
		Address:      req.Address,
		SSN:          req.SSN,
		Status:       models.PartyApproved,
	}
	if role == models.RoleCustomer || role == models.RoleOwner {
		party.Occupation = req.Occupation
		party.AnnualIncome = req.AnnualIncome
		if dob, ok := parseDate(req.DOB); ok {
			party.DOB = &dob
		}
	}
	if role.NeedsApproval() {
		party.Status = models.PartyPending
	}

	if err := h.store.CreateParty(party); err != nil {
		h.logger.WithError(err).Error("Failed to create account")
		respondError(c, http.StatusInternalServerError, "Server error")
		return
	}

	if role.NeedsApproval() {
		respondMessage(c, http.StatusCreated, "Account created. Pending admin approval.", party)
		return
	}

	token, err := h.tokens.IssueToken(party.ID, role)
	if err != nil {
		h.logger.WithError(err).Error("Failed to issue token")
		respondError(c, http.StatusInternalServerError, "Server error")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "token": token, "data": party})
}

// Login authenticates an account for the role in the path. Owners and
// realtors are blocked until an admin approves the account.
func (h *Handler) Login(c *gin.Context) {
	role, ok := signupRole(c)
	if !ok {
		return
	}

	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	party, err := h.store.PartyByEmail(role, req.Email)
	if err != nil || !auth.CheckPassword(party.PasswordHash, req.Password) {
		respondError(c, http.StatusBadRequest, "Invalid credentials")
		return
	}
	if role.NeedsApproval() && party.Status != models.PartyApproved {
		respondError(c, http.StatusForbidden, "Account pending admin approval")
		return
	}

	token, err := h.tokens.IssueToken(party.ID, role)
	if err != nil {
		h.logger.WithError(err).Error("Failed to issue token")
		respondError(c, http.StatusInternalServerError, "Server error")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "token": token, "data": party})
}

// AdminLogin authenticates the admin account by its login id.
func (h *Handler) AdminLogin(c *gin.Context) {
	var req adminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	admin, err := h.store.AdminByLoginID(req.AdminID)
	if err != nil || !auth.CheckPassword(admin.PasswordHash, req.Password) {
		respondError(c, http.StatusBadRequest, "Invalid credentials")
		return
	}

	token, err := h.tokens.IssueToken(admin.ID, models.RoleAdmin)
	if err != nil {
		h.logger.WithError(err).Error("Failed to issue token")
		respondError(c, http.StatusInternalServerError, "Server error")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "token": token, "data": admin})
}

// parseDate accepts plain dates and RFC 3339 timestamps.
func parseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	return time.Time{}, false
}
