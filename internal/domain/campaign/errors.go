package campaign

import "errors"

var (
	ErrCampaignNotFound      = errors.New("campaign not found")
	ErrRetailerNotInCampaign = errors.New("retailer is not assigned to this campaign")
	ErrEmployeeNotInCampaign = errors.New("employee is not assigned to this campaign")
	ErrAlreadyMapped         = errors.New("employee is already assigned to this retailer")
)
