package repository

import (
	"context"
	"errors"
	"fmt"

	domain "github.com/mohammadpnp/party-onboarding/internal/domain/campaign"
	"github.com/mohammadpnp/party-onboarding/internal/infrastructure/db/models"
	"gorm.io/gorm"
)

type CampaignRepository struct {
	db *gorm.DB
}

func NewCampaignRepository(db *gorm.DB) *CampaignRepository {
	return &CampaignRepository{db: db}
}

func (r *CampaignRepository) FindByID(ctx context.Context, campaignID string) (*domain.Campaign, error) {
	var row models.Campaign

	err := r.db.WithContext(ctx).
		Preload("Retailers").
		Preload("Employees").
		Preload("EmployeeRetailers", func(db *gorm.DB) *gorm.DB {
			return db.Order("assigned_at ASC, id ASC")
		}).
		First(&row, "id = ?", campaignID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCampaignNotFound
		}
		return nil, fmt.Errorf("get campaign by id: %w", err)
	}

	c := &domain.Campaign{
		ID:                row.ID,
		Name:              row.Name,
		AssignedRetailers: make([]domain.RetailerAssignment, 0, len(row.Retailers)),
		AssignedEmployees: make([]string, 0, len(row.Employees)),
		EmployeeRetailers: make([]domain.EmployeeRetailerLink, 0, len(row.EmployeeRetailers)),
	}
	for _, retailer := range row.Retailers {
		c.AssignedRetailers = append(c.AssignedRetailers, domain.RetailerAssignment{
			RetailerID: retailer.RetailerID,
			StartDate:  retailer.StartDate,
			EndDate:    retailer.EndDate,
			UpdatedAt:  retailer.UpdatedAt,
		})
	}
	for _, employee := range row.Employees {
		c.AssignedEmployees = append(c.AssignedEmployees, employee.EmployeeID)
	}
	for _, link := range row.EmployeeRetailers {
		c.EmployeeRetailers = append(c.EmployeeRetailers, domain.EmployeeRetailerLink{
			EmployeeID: link.EmployeeID,
			RetailerID: link.RetailerID,
			AssignedAt: link.AssignedAt,
		})
	}

	return c, nil
}

func (r *CampaignRepository) SaveRetailerDates(ctx context.Context, campaignID string, assignment domain.RetailerAssignment) error {
	result := r.db.WithContext(ctx).
		Model(&models.CampaignRetailer{}).
		Where("campaign_id = ? AND retailer_id = ?", campaignID, assignment.RetailerID).
		Updates(map[string]any{
			"start_date": assignment.StartDate,
			"end_date":   assignment.EndDate,
			"updated_at": assignment.UpdatedAt,
		})
	if result.Error != nil {
		return fmt.Errorf("save retailer dates: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrRetailerNotInCampaign
	}
	return nil
}

func (r *CampaignRepository) AddEmployeeRetailer(ctx context.Context, campaignID string, link domain.EmployeeRetailerLink) error {
	row := models.CampaignEmployeeRetailer{
		CampaignID: campaignID,
		EmployeeID: link.EmployeeID,
		RetailerID: link.RetailerID,
		AssignedAt: link.AssignedAt,
	}

	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if constraint, ok := uniqueConstraint(err); ok && constraint == models.CampaignEmployeeRetailerIndex {
			return domain.ErrAlreadyMapped
		}
		return fmt.Errorf("add employee retailer mapping: %w", err)
	}
	return nil
}
