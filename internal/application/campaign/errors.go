package campaign

import "errors"

var (
	ErrForbidden             = errors.New("admin role required")
	ErrMissingFields         = errors.New("campaignId, retailerId and employeeId are required")
	ErrInvalidDate           = errors.New("invalid date")
	ErrCampaignNotFound      = errors.New("campaign not found")
	ErrRetailerNotInCampaign = errors.New("retailer not assigned to this campaign")
	ErrEmployeeNotInCampaign = errors.New("employee is not assigned to this campaign")
	ErrAlreadyMapped         = errors.New("employee is already assigned to this retailer")
	ErrCampaignStore         = errors.New("campaign store failure")
)
