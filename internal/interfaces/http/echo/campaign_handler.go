package echo

import (
	"net/http"

	"github.com/labstack/echo/v4"
	app "github.com/mohammadpnp/party-onboarding/internal/application/campaign"
	"go.uber.org/zap"
)

type CampaignHandler struct {
	updateDates app.UpdateRetailerDates
	assign      app.AssignEmployee
	mapping     app.EmployeeRetailerMapping
	assigned    app.AssignedEmployee
	logger      *zap.Logger
}

type updateRetailerDatesRequest struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

type assignEmployeeRequest struct {
	CampaignID string `json:"campaignId" validate:"required"`
	RetailerID string `json:"retailerId" validate:"required"`
	EmployeeID string `json:"employeeId" validate:"required"`
}

type updateRetailerDatesResponse struct {
	Message string `json:"message"`
	app.UpdateRetailerDatesOutput
}

type assignEmployeeResponse struct {
	Message string `json:"message"`
	app.AssignEmployeeOutput
}

var campaignLookupErrors = []errorMapping{
	{app.ErrForbidden, http.StatusForbidden, "forbidden", "only admins can manage campaign assignments"},
	{app.ErrCampaignNotFound, http.StatusNotFound, "not_found", "Campaign not found"},
}

func NewCampaignHandler(
	updateDates app.UpdateRetailerDates,
	assign app.AssignEmployee,
	mapping app.EmployeeRetailerMapping,
	assigned app.AssignedEmployee,
	logger *zap.Logger,
) *CampaignHandler {
	return &CampaignHandler{
		updateDates: updateDates,
		assign:      assign,
		mapping:     mapping,
		assigned:    assigned,
		logger:      orNop(logger),
	}
}

func (h *CampaignHandler) UpdateRetailerDates(c echo.Context) error {
	var req updateRetailerDatesRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	out, err := h.updateDates.Execute(c.Request().Context(), app.UpdateRetailerDatesInput{
		Role:       principalFrom(c).Role,
		CampaignID: c.Param("campaignId"),
		RetailerID: c.Param("retailerId"),
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
	})
	if err != nil {
		return respondError(c, h.logger, err, append(campaignLookupErrors,
			errorMapping{app.ErrRetailerNotInCampaign, http.StatusNotFound, "not_found", "Retailer not assigned to this campaign"},
			errorMapping{app.ErrInvalidDate, http.StatusBadRequest, "invalid_date", "dates must be YYYY-MM-DD or RFC 3339"},
		), "failed to update retailer dates")
	}

	return c.JSON(http.StatusOK, apiResponse{Data: updateRetailerDatesResponse{
		Message:                   "Retailer dates updated successfully",
		UpdateRetailerDatesOutput: out,
	}})
}

func (h *CampaignHandler) AssignEmployee(c echo.Context) error {
	var req assignEmployeeRequest
	if ok, err := bindAndValidate(c, &req, app.ErrMissingFields.Error()); !ok {
		return err
	}

	out, err := h.assign.Execute(c.Request().Context(), app.AssignEmployeeInput{
		Role:       principalFrom(c).Role,
		CampaignID: req.CampaignID,
		RetailerID: req.RetailerID,
		EmployeeID: req.EmployeeID,
	})
	if err != nil {
		return respondError(c, h.logger, err, append(campaignLookupErrors,
			errorMapping{app.ErrMissingFields, http.StatusBadRequest, "bad_request", app.ErrMissingFields.Error()},
			errorMapping{app.ErrRetailerNotInCampaign, http.StatusBadRequest, "retailer_not_in_campaign", "Retailer is not assigned to this campaign"},
			errorMapping{app.ErrEmployeeNotInCampaign, http.StatusBadRequest, "employee_not_in_campaign", "Employee is not assigned to this campaign"},
			errorMapping{app.ErrAlreadyMapped, http.StatusBadRequest, "already_mapped", "Employee is already assigned to this retailer"},
		), "failed to assign employee")
	}

	return c.JSON(http.StatusOK, apiResponse{Data: assignEmployeeResponse{
		Message:              "Employee assigned to retailer successfully",
		AssignEmployeeOutput: out,
	}})
}

func (h *CampaignHandler) EmployeeRetailerMapping(c echo.Context) error {
	out, err := h.mapping.Execute(c.Request().Context(), app.EmployeeRetailerMappingInput{
		CampaignID: c.Param("campaignId"),
	})
	if err != nil {
		return respondError(c, h.logger, err, campaignLookupErrors, "failed to load employee retailer mapping")
	}

	return c.JSON(http.StatusOK, apiResponse{Data: out})
}

func (h *CampaignHandler) AssignedEmployee(c echo.Context) error {
	out, err := h.assigned.Execute(c.Request().Context(), app.AssignedEmployeeInput{
		CampaignID: c.Param("campaignId"),
		RetailerID: c.Param("retailerId"),
	})
	if err != nil {
		return respondError(c, h.logger, err, campaignLookupErrors, "failed to load assigned employee")
	}

	return c.JSON(http.StatusOK, apiResponse{Data: out})
}
