package campaign

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mohammadpnp/party-onboarding/internal/domain/account"
	domain "github.com/mohammadpnp/party-onboarding/internal/domain/campaign"
)

type UpdateRetailerDatesInput struct {
	Role       string
	CampaignID string
	RetailerID string
	StartDate  string
	EndDate    string
}

type UpdateRetailerDatesOutput struct {
	Retailer RetailerAssignmentOutput `json:"retailer"`
}

type UpdateRetailerDates interface {
	Execute(ctx context.Context, in UpdateRetailerDatesInput) (UpdateRetailerDatesOutput, error)
}

type updateRetailerDates struct {
	repo domain.Repository
	now  func() time.Time
}

func NewUpdateRetailerDates(repo domain.Repository) UpdateRetailerDates {
	return &updateRetailerDates{repo: repo, now: time.Now}
}

func (uc *updateRetailerDates) Execute(ctx context.Context, in UpdateRetailerDatesInput) (UpdateRetailerDatesOutput, error) {
	if in.Role != account.RoleAdmin {
		return UpdateRetailerDatesOutput{}, ErrForbidden
	}

	start, err := parseDate(in.StartDate)
	if err != nil {
		return UpdateRetailerDatesOutput{}, fmt.Errorf("%w: startDate", err)
	}
	end, err := parseDate(in.EndDate)
	if err != nil {
		return UpdateRetailerDatesOutput{}, fmt.Errorf("%w: endDate", err)
	}

	c, err := loadCampaign(ctx, uc.repo, in.CampaignID)
	if err != nil {
		return UpdateRetailerDatesOutput{}, err
	}

	assignment, ok := c.Retailer(in.RetailerID)
	if !ok {
		return UpdateRetailerDatesOutput{}, ErrRetailerNotInCampaign
	}
	if start != nil {
		assignment.StartDate = start
	}
	if end != nil {
		assignment.EndDate = end
	}
	updated := uc.now().UTC()
	assignment.UpdatedAt = &updated

	if err := uc.repo.SaveRetailerDates(ctx, c.ID, *assignment); err != nil {
		return UpdateRetailerDatesOutput{}, fmt.Errorf("%w: %v", ErrCampaignStore, err)
	}

	return UpdateRetailerDatesOutput{Retailer: RetailerAssignmentOutput{
		RetailerID: assignment.RetailerID,
		StartDate:  assignment.StartDate,
		EndDate:    assignment.EndDate,
		UpdatedAt:  assignment.UpdatedAt,
	}}, nil
}

func loadCampaign(ctx context.Context, repo domain.Repository, id string) (*domain.Campaign, error) {
	c, err := repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrCampaignNotFound) {
			return nil, ErrCampaignNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrCampaignStore, err)
	}
	return c, nil
}
