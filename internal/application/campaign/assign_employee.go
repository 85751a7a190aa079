package campaign

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mohammadpnp/party-onboarding/internal/domain/account"
	domain "github.com/mohammadpnp/party-onboarding/internal/domain/campaign"
)

type AssignEmployeeInput struct {
	Role       string
	CampaignID string
	RetailerID string
	EmployeeID string
}

type AssignEmployeeOutput struct {
	Mapping []LinkOutput `json:"mapping"`
}

type AssignEmployee interface {
	Execute(ctx context.Context, in AssignEmployeeInput) (AssignEmployeeOutput, error)
}

type assignEmployee struct {
	repo domain.Repository
	now  func() time.Time
}

func NewAssignEmployee(repo domain.Repository) AssignEmployee {
	return &assignEmployee{repo: repo, now: time.Now}
}

func (uc *assignEmployee) Execute(ctx context.Context, in AssignEmployeeInput) (AssignEmployeeOutput, error) {
	if in.Role != account.RoleAdmin {
		return AssignEmployeeOutput{}, ErrForbidden
	}
	campaignID := strings.TrimSpace(in.CampaignID)
	retailerID := strings.TrimSpace(in.RetailerID)
	employeeID := strings.TrimSpace(in.EmployeeID)
	if campaignID == "" || retailerID == "" || employeeID == "" {
		return AssignEmployeeOutput{}, ErrMissingFields
	}

	c, err := loadCampaign(ctx, uc.repo, campaignID)
	if err != nil {
		return AssignEmployeeOutput{}, err
	}
	if _, ok := c.Retailer(retailerID); !ok {
		return AssignEmployeeOutput{}, ErrRetailerNotInCampaign
	}
	if !c.HasEmployee(employeeID) {
		return AssignEmployeeOutput{}, ErrEmployeeNotInCampaign
	}
	if c.IsMapped(employeeID, retailerID) {
		return AssignEmployeeOutput{}, ErrAlreadyMapped
	}

	link := domain.EmployeeRetailerLink{
		EmployeeID: employeeID,
		RetailerID: retailerID,
		AssignedAt: uc.now().UTC(),
	}
	if err := uc.repo.AddEmployeeRetailer(ctx, c.ID, link); err != nil {
		// The unique index closes the gap between the check above and the insert.
		if errors.Is(err, domain.ErrAlreadyMapped) {
			return AssignEmployeeOutput{}, ErrAlreadyMapped
		}
		return AssignEmployeeOutput{}, fmt.Errorf("%w: %v", ErrCampaignStore, err)
	}

	return AssignEmployeeOutput{Mapping: newLinkOutputs(append(c.EmployeeRetailers, link))}, nil
}
