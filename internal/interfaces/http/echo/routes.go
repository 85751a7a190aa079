package echo

import e "github.com/labstack/echo/v4"

// Handlers groups the route handlers. Nil entries are not mounted.
type Handlers struct {
	Uploads   *UploadHandler
	Retailers *RetailerHandler
	Campaigns *CampaignHandler
	Accounts  *AccountHandler
}

func RegisterRoutes(server *e.Echo, authMW e.MiddlewareFunc, h Handlers) {
	if server.Validator == nil {
		server.Validator = NewRequestValidator()
	}

	admin := server.Group("/admin", authMW)

	if h.Uploads != nil {
		admin.POST("/retailers/bulk", h.Uploads.UploadRetailers)
		admin.POST("/employees/bulk", h.Uploads.UploadEmployees)
		admin.POST("/uploads/failed-rows/export", h.Uploads.ExportFailedRows)
		admin.GET("/samples/:partyType", h.Uploads.SampleTemplate)
	}

	if h.Retailers != nil {
		admin.GET("/retailers", h.Retailers.List)
		server.POST("/retailers/register", h.Retailers.Register)
	}

	if h.Campaigns != nil {
		admin.PATCH("/campaigns/:campaignId/retailers/:retailerId/dates", h.Campaigns.UpdateRetailerDates)
		admin.POST("/campaigns/assign-employee", h.Campaigns.AssignEmployee)
		admin.GET("/campaigns/:campaignId/employee-retailers", h.Campaigns.EmployeeRetailerMapping)
		admin.GET("/campaigns/:campaignId/retailers/:retailerId/employee", h.Campaigns.AssignedEmployee)
	}

	if h.Accounts != nil {
		server.POST("/auth/otp/request", h.Accounts.RequestOTP)
		server.POST("/auth/otp/verify", h.Accounts.VerifyOTP)
		server.POST("/auth/password/forgot", h.Accounts.ForgotPassword)
		server.POST("/auth/password/reset", h.Accounts.ResetPassword)
	}
}
