package campaign

import (
	"context"
	"errors"
	"fmt"
	"time"

	domain "github.com/mohammadpnp/party-onboarding/internal/domain/campaign"
	"github.com/mohammadpnp/party-onboarding/internal/domain/party"
)

const (
	messageAssigned    = "Employee assigned to this retailer"
	messageNotAssigned = "No employee assigned to this retailer in this campaign"
)

type AssignedEmployeeInput struct {
	CampaignID string
	RetailerID string
}

type AssignedEmployeeOutput struct {
	CampaignID string          `json:"campaignId"`
	RetailerID string          `json:"retailerId"`
	IsAssigned bool            `json:"isAssigned"`
	Employee   *EmployeeOutput `json:"employee"`
	AssignedAt *time.Time      `json:"assignedAt,omitempty"`
	Message    string          `json:"message"`
}

type AssignedEmployee interface {
	Execute(ctx context.Context, in AssignedEmployeeInput) (AssignedEmployeeOutput, error)
}

type employeeByID interface {
	FindEmployeeByID(ctx context.Context, id string) (*party.Employee, error)
}

type assignedEmployee struct {
	repo      domain.Repository
	employees employeeByID
}

func NewAssignedEmployee(repo domain.Repository, employees employeeByID) AssignedEmployee {
	return &assignedEmployee{repo: repo, employees: employees}
}

func (uc *assignedEmployee) Execute(ctx context.Context, in AssignedEmployeeInput) (AssignedEmployeeOutput, error) {
	c, err := loadCampaign(ctx, uc.repo, in.CampaignID)
	if err != nil {
		return AssignedEmployeeOutput{}, err
	}

	out := AssignedEmployeeOutput{CampaignID: in.CampaignID, RetailerID: in.RetailerID}

	link, ok := c.EmployeeFor(in.RetailerID)
	if !ok {
		out.Message = messageNotAssigned
		return out, nil
	}

	out.IsAssigned = true
	out.AssignedAt = &link.AssignedAt
	out.Message = messageAssigned

	employee, err := uc.employees.FindEmployeeByID(ctx, link.EmployeeID)
	switch {
	case errors.Is(err, party.ErrPartyNotFound):
	case err != nil:
		return AssignedEmployeeOutput{}, fmt.Errorf("%w: %v", ErrCampaignStore, err)
	default:
		view := newEmployeeOutput(*employee)
		out.Employee = &view
	}

	return out, nil
}
