package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"homestead/server/internal/auth"
	"homestead/server/internal/models"
	"homestead/server/internal/store"
	"homestead/server/internal/workflow"
)

type createContractRequest struct {
	Type          string  `json:"type"`
	Property      string  `json:"property"`
	Customer      string  `json:"customer"`
	Owner         string  `json:"owner"`
	StartDate     string  `json:"startDate"`
	EndDate       string  `json:"endDate"`
	ClosingDate   string  `json:"closingDate"`
	SalePrice     float64 `json:"salePrice"`
	DepositAmount float64 `json:"depositAmount"`
	PaymentTerms  string  `json:"paymentTerms"`
}

// CreateContract opens a contract on behalf of a customer and owner,
// in pending_customer state.
func (h *Handler) CreateContract(c *gin.Context) {
	var req createContractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	input := workflow.CreateContractInput{
		Type:          models.ContractType(req.Type),
		PropertyID:    req.Property,
		CustomerID:    req.Customer,
		OwnerID:       req.Owner,
		SalePrice:     req.SalePrice,
		DepositAmount: req.DepositAmount,
		PaymentTerms:  req.PaymentTerms,
	}
	if t, ok := parseDate(req.StartDate); ok {
		input.StartDate = t
	}
	if t, ok := parseDate(req.EndDate); ok {
		input.EndDate = &t
	}
	if t, ok := parseDate(req.ClosingDate); ok {
		input.ClosingDate = &t
	}

	contract, err := h.workflow.CreateContract(auth.ActorID(c), input)
	if err != nil {
		h.respondWorkflowError(c, err)
		return
	}
	respondMessage(c, http.StatusCreated, "Contract created successfully", contract)
}

// GetRealtorContracts lists contracts the acting realtor brokered.
func (h *Handler) GetRealtorContracts(c *gin.Context) {
	contracts, err := h.store.ContractsByRealtor(auth.ActorID(c))
	if err != nil {
		h.logger.WithError(err).Error("Failed to fetch contracts")
		respondError(c, http.StatusInternalServerError, "Server error")
		return
	}
	respondData(c, http.StatusOK, contracts)
}

// partyContracts guards the by-party contract listings: a party may
// read its own, while admins and realtors may read anyone's.
func (h *Handler) partyContracts(c *gin.Context, pathParam string, list func(string) ([]models.Contract, error)) {
	id := c.Param(pathParam)
	actorRole := auth.ActorRole(c)
	if auth.ActorID(c) != id && actorRole != models.RoleAdmin && actorRole != models.RoleRealtor {
		respondError(c, http.StatusForbidden, "Access denied")
		return
	}

	contracts, err := list(id)
	if err != nil {
		h.logger.WithError(err).Error("Failed to fetch contracts")
		respondError(c, http.StatusInternalServerError, "Server error")
		return
	}
	respondData(c, http.StatusOK, contracts)
}

func (h *Handler) GetCustomerContracts(c *gin.Context) {
	h.partyContracts(c, "customerId", h.store.ContractsByCustomer)
}

func (h *Handler) GetOwnerContracts(c *gin.Context) {
	h.partyContracts(c, "ownerId", h.store.ContractsByOwner)
}

// GetContractByID returns one contract to any of its parties or an
// admin.
func (h *Handler) GetContractByID(c *gin.Context) {
	contract, err := h.store.ContractByID(c.Param("contractId"))
	if err != nil {
		if store.IsNotFound(err) {
			respondError(c, http.StatusNotFound, "Contract not found")
			return
		}
		h.logger.WithError(err).Error("Failed to fetch contract")
		respondError(c, http.StatusInternalServerError, "Server error")
		return
	}

	actorID := auth.ActorID(c)
	isParty := actorID == contract.OwnerID ||
		actorID == contract.CustomerID ||
		actorID == contract.RealtorID
	if !isParty && auth.ActorRole(c) != models.RoleAdmin {
		respondError(c, http.StatusForbidden, "Access denied")
		return
	}
	respondData(c, http.StatusOK, contract)
}

type loanDetailsRequest struct {
	Amount       float64 `json:"amount"`
	Provider     string  `json:"provider"`
	Type         string  `json:"type"`
	InterestRate float64 `json:"interestRate"`
	ApprovalDate string  `json:"approvalDate"`
	Status       string  `json:"status"`
}

type signContractRequest struct {
	Signature   string              `json:"signature"`
	LoanDetails *loanDetailsRequest `json:"loanDetails"`
}

func (r *loanDetailsRequest) toModel() *models.LoanDetails {
	loan := &models.LoanDetails{
		Amount:       r.Amount,
		Provider:     r.Provider,
		Type:         r.Type,
		InterestRate: r.InterestRate,
		Status:       r.Status,
	}
	if t, ok := parseDate(r.ApprovalDate); ok {
		loan.ApprovalDate = t
	} else if t, err := time.Parse(time.RFC1123, r.ApprovalDate); err == nil {
		loan.ApprovalDate = t
	}
	return loan
}

// CustomerSign applies the customer's signature, with loan details.
func (h *Handler) CustomerSign(c *gin.Context) {
	h.signContract(c, models.RoleCustomer)
}

// OwnerSign applies the owner's signature, activating the contract.
func (h *Handler) OwnerSign(c *gin.Context) {
	h.signContract(c, models.RoleOwner)
}

func (h *Handler) signContract(c *gin.Context, role models.Role) {
	var req signContractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	var loan *models.LoanDetails
	if req.LoanDetails != nil {
		loan = req.LoanDetails.toModel()
	}

	contract, err := h.workflow.SignContract(c.Param("contractId"), auth.ActorID(c), role, req.Signature, loan)
	if err != nil {
		h.respondWorkflowError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Contract signed successfully", contract)
}

// CustomerReject cancels a contract awaiting the customer's signature.
func (h *Handler) CustomerReject(c *gin.Context) {
	h.rejectContract(c, models.RoleCustomer)
}

// OwnerReject cancels a contract awaiting the owner's signature.
func (h *Handler) OwnerReject(c *gin.Context) {
	h.rejectContract(c, models.RoleOwner)
}

func (h *Handler) rejectContract(c *gin.Context, role models.Role) {
	contract, err := h.workflow.RejectContract(c.Param("contractId"), auth.ActorID(c), role)
	if err != nil {
		h.respondWorkflowError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Contract rejected successfully", contract)
}
