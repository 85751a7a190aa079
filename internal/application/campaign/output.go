package campaign

import (
	"strings"
	"time"

	partyapp "github.com/mohammadpnp/party-onboarding/internal/application/party"
	domain "github.com/mohammadpnp/party-onboarding/internal/domain/campaign"
	"github.com/mohammadpnp/party-onboarding/internal/domain/party"
)

type RetailerAssignmentOutput struct {
	RetailerID string     `json:"retailerId"`
	StartDate  *time.Time `json:"startDate,omitempty"`
	EndDate    *time.Time `json:"endDate,omitempty"`
	UpdatedAt  *time.Time `json:"updatedAt,omitempty"`
}

type LinkOutput struct {
	EmployeeID string    `json:"employeeId"`
	RetailerID string    `json:"retailerId"`
	AssignedAt time.Time `json:"assignedAt"`
}

type EmployeeOutput struct {
	ID         string `json:"id"`
	UniqueID   string `json:"uniqueId"`
	EmployeeID string `json:"employeeId"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Position   string `json:"position"`
}

func newEmployeeOutput(e party.Employee) EmployeeOutput {
	return EmployeeOutput{
		ID:         e.ID,
		UniqueID:   e.UniqueID,
		EmployeeID: e.EmployeeID,
		Name:       e.Name,
		Email:      e.Email,
		Phone:      e.Phone,
		Position:   e.Position,
	}
}

func newLinkOutputs(links []domain.EmployeeRetailerLink) []LinkOutput {
	out := make([]LinkOutput, 0, len(links))
	for _, l := range links {
		out = append(out, LinkOutput{EmployeeID: l.EmployeeID, RetailerID: l.RetailerID, AssignedAt: l.AssignedAt})
	}
	return out
}

var dateLayouts = []string{time.RFC3339, time.DateOnly}

// parseDate accepts RFC 3339 timestamps and plain dates. An empty value means
// the date is left unchanged.
func parseDate(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t, nil
		}
	}
	return nil, ErrInvalidDate
}

// MappedRetailerOutput is a retailer as listed under the employee it is mapped to.
type MappedRetailerOutput struct {
	partyapp.RetailerOutput
	AssignedAt time.Time `json:"assignedAt"`
}
