package api

import (
	"github.com/gin-gonic/gin"

	"homestead/server/internal/auth"
	"homestead/server/internal/models"
)

// SetupRoutes wires every endpoint onto the router. Auth endpoints are
// public; everything else runs behind the token middleware with a
// per-group role requirement.
func SetupRoutes(router *gin.Engine, handler *Handler, tokens *auth.Manager) {
	apiGroup := router.Group("/api")

	authGroup := apiGroup.Group("/auth")
	{
		authGroup.POST("/admin/login", handler.AdminLogin)
		authGroup.POST("/:role/signup", handler.Signup)
		authGroup.POST("/:role/login", handler.Login)
	}

	adminGroup := apiGroup.Group("/admin", tokens.Middleware(), auth.RequireRole(models.RoleAdmin))
	{
		adminGroup.GET("/stats", handler.GetAdminStats)
		adminGroup.GET("/accounts/:userType", handler.GetAccounts)
		adminGroup.GET("/accounts/:userType/pending", handler.GetPendingAccounts)
		adminGroup.PUT("/accounts/:id/approve", handler.ApproveUser)
		adminGroup.PUT("/accounts/:id/reject", handler.RejectUser)
		adminGroup.DELETE("/accounts/:userType/:id", handler.DeleteAccount)
	}

	propertiesGroup := apiGroup.Group("/properties")
	{
		propertiesGroup.GET("", handler.GetAvailableProperties)
		propertiesGroup.GET("/:id", handler.GetPropertyDetails)
	}

	ownersGroup := apiGroup.Group("/owners/:ownerId", tokens.Middleware(), auth.RequireRole(models.RoleOwner, models.RoleAdmin))
	{
		ownersGroup.GET("/properties", handler.GetOwnerProperties)
		ownersGroup.POST("/properties", handler.CreateProperty)
		ownersGroup.GET("/realtors", handler.GetApprovedRealtors)
		ownersGroup.GET("/price-approval-requests", handler.GetPriceApprovalRequests)
		ownersGroup.PUT("/applications/:applicationId/approve-price", handler.ApprovePrice)
	}

	customersGroup := apiGroup.Group("/customers/:customerId", tokens.Middleware(), auth.RequireRole(models.RoleCustomer, models.RoleAdmin))
	{
		customersGroup.POST("/applications", handler.SubmitApplication)
		customersGroup.GET("/applications", handler.GetCustomerApplications)
		customersGroup.DELETE("/applications/:applicationId", handler.CancelApplication)
	}

	realtorGroup := apiGroup.Group("/realtor", tokens.Middleware(), auth.RequireRole(models.RoleRealtor))
	{
		realtorGroup.GET("/properties", handler.GetManagedProperties)
		realtorGroup.GET("/properties/:id/applications", handler.GetPropertyApplications)
		realtorGroup.GET("/applications", handler.GetAllApplications)
		realtorGroup.PUT("/applications/:id/approve", handler.ApproveApplication)
		realtorGroup.PUT("/applications/:id/reject", handler.RejectApplication)
		realtorGroup.POST("/applications/:applicationId/request-price-approval", handler.RequestPriceApproval)
		realtorGroup.GET("/customers", handler.GetAssociatedCustomers)
		realtorGroup.GET("/owners", handler.GetAssociatedOwners)
	}

	contractsGroup := apiGroup.Group("/contracts", tokens.Middleware())
	{
		contractsGroup.POST("", auth.RequireRole(models.RoleRealtor), handler.CreateContract)
		contractsGroup.GET("/realtor", auth.RequireRole(models.RoleRealtor), handler.GetRealtorContracts)
		contractsGroup.GET("/customer/:customerId", handler.GetCustomerContracts)
		contractsGroup.GET("/owner/:ownerId", handler.GetOwnerContracts)
		contractsGroup.GET("/:contractId", handler.GetContractByID)
		contractsGroup.PUT("/:contractId/customer-sign", auth.RequireRole(models.RoleCustomer), handler.CustomerSign)
		contractsGroup.PUT("/:contractId/owner-sign", auth.RequireRole(models.RoleOwner), handler.OwnerSign)
		contractsGroup.PUT("/:contractId/customer-reject", auth.RequireRole(models.RoleCustomer), handler.CustomerReject)
		contractsGroup.PUT("/:contractId/owner-reject", auth.RequireRole(models.RoleOwner), handler.OwnerReject)
	}
}
