package campaign

import (
	"context"
	"fmt"

	partyapp "github.com/mohammadpnp/party-onboarding/internal/application/party"
	domain "github.com/mohammadpnp/party-onboarding/internal/domain/campaign"
	"github.com/mohammadpnp/party-onboarding/internal/domain/party"
)

type EmployeeRetailerMappingInput struct {
	CampaignID string
}

type EmployeeWithRetailersOutput struct {
	EmployeeOutput
	Retailers []MappedRetailerOutput `json:"retailers"`
}

type EmployeeRetailerMappingOutput struct {
	CampaignID     string                        `json:"campaignId"`
	TotalEmployees int                           `json:"totalEmployees"`
	Employees      []EmployeeWithRetailersOutput `json:"employees"`
}

type EmployeeRetailerMapping interface {
	Execute(ctx context.Context, in EmployeeRetailerMappingInput) (EmployeeRetailerMappingOutput, error)
}

type employeesByID interface {
	FindEmployeesByIDs(ctx context.Context, ids []string) ([]party.Employee, error)
}

type retailersByID interface {
	FindRetailersByIDs(ctx context.Context, ids []string) ([]party.Retailer, error)
}

type employeeRetailerMapping struct {
	repo      domain.Repository
	employees employeesByID
	retailers retailersByID
}

func NewEmployeeRetailerMapping(repo domain.Repository, employees employeesByID, retailers retailersByID) EmployeeRetailerMapping {
	return &employeeRetailerMapping{repo: repo, employees: employees, retailers: retailers}
}

// Execute groups the campaign's employee-retailer links by employee. Links that
// point at a deleted employee or retailer are left out.
func (uc *employeeRetailerMapping) Execute(ctx context.Context, in EmployeeRetailerMappingInput) (EmployeeRetailerMappingOutput, error) {
	c, err := loadCampaign(ctx, uc.repo, in.CampaignID)
	if err != nil {
		return EmployeeRetailerMappingOutput{}, err
	}

	out := EmployeeRetailerMappingOutput{
		CampaignID: in.CampaignID,
		Employees:  []EmployeeWithRetailersOutput{},
	}
	if len(c.EmployeeRetailers) == 0 {
		return out, nil
	}

	employees, err := uc.employees.FindEmployeesByIDs(ctx, c.DistinctEmployeeIDs())
	if err != nil {
		return EmployeeRetailerMappingOutput{}, fmt.Errorf("%w: %v", ErrCampaignStore, err)
	}
	retailers, err := uc.retailers.FindRetailersByIDs(ctx, c.DistinctRetailerIDs())
	if err != nil {
		return EmployeeRetailerMappingOutput{}, fmt.Errorf("%w: %v", ErrCampaignStore, err)
	}

	retailerByID := make(map[string]party.Retailer, len(retailers))
	for _, r := range retailers {
		retailerByID[r.ID] = r
	}

	index := make(map[string]int, len(employees))
	for _, e := range employees {
		index[e.ID] = len(out.Employees)
		out.Employees = append(out.Employees, EmployeeWithRetailersOutput{
			EmployeeOutput: newEmployeeOutput(e),
			Retailers:      []MappedRetailerOutput{},
		})
	}

	for _, link := range c.EmployeeRetailers {
		i, ok := index[link.EmployeeID]
		if !ok {
			continue
		}
		r, ok := retailerByID[link.RetailerID]
		if !ok {
			continue
		}
		out.Employees[i].Retailers = append(out.Employees[i].Retailers, MappedRetailerOutput{
			RetailerOutput: partyapp.NewRetailerOutput(r),
			AssignedAt:     link.AssignedAt,
		})
	}

	out.TotalEmployees = len(out.Employees)
	return out, nil
}
