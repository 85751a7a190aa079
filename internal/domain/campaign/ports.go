package campaign

import "context"

type Repository interface {
	FindByID(ctx context.Context, campaignID string) (*Campaign, error)
	// SaveRetailerDates persists the dates of an existing retailer assignment.
	SaveRetailerDates(ctx context.Context, campaignID string, assignment RetailerAssignment) error
	// AddEmployeeRetailer returns ErrAlreadyMapped when the pair is already linked.
	AddEmployeeRetailer(ctx context.Context, campaignID string, link EmployeeRetailerLink) error
}

