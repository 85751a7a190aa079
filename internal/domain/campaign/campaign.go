package campaign

import "time"

type RetailerAssignment struct {
	RetailerID string
	StartDate  *time.Time
	EndDate    *time.Time
	UpdatedAt  *time.Time
}

type EmployeeRetailerLink struct {
	EmployeeID string
	RetailerID string
	AssignedAt time.Time
}

type Campaign struct {
	ID                string
	Name              string
	AssignedRetailers []RetailerAssignment
	AssignedEmployees []string
	EmployeeRetailers []EmployeeRetailerLink
}

func (c *Campaign) Retailer(retailerID string) (*RetailerAssignment, bool) {
	for i := range c.AssignedRetailers {
		if c.AssignedRetailers[i].RetailerID == retailerID {
			return &c.AssignedRetailers[i], true
		}
	}
	return nil, false
}

func (c *Campaign) HasEmployee(employeeID string) bool {
	for _, id := range c.AssignedEmployees {
		if id == employeeID {
			return true
		}
	}
	return false
}

func (c *Campaign) IsMapped(employeeID, retailerID string) bool {
	for _, link := range c.EmployeeRetailers {
		if link.EmployeeID == employeeID && link.RetailerID == retailerID {
			return true
		}
	}
	return false
}

// EmployeeFor returns the first mapping recorded for the retailer.
func (c *Campaign) EmployeeFor(retailerID string) (EmployeeRetailerLink, bool) {
	for _, link := range c.EmployeeRetailers {
		if link.RetailerID == retailerID {
			return link, true
		}
	}
	return EmployeeRetailerLink{}, false
}

// DistinctEmployeeIDs lists mapped employees in first-mapped order.
func (c *Campaign) DistinctEmployeeIDs() []string {
	return distinct(c.EmployeeRetailers, func(l EmployeeRetailerLink) string { return l.EmployeeID })
}

func (c *Campaign) DistinctRetailerIDs() []string {
	return distinct(c.EmployeeRetailers, func(l EmployeeRetailerLink) string { return l.RetailerID })
}

func distinct(links []EmployeeRetailerLink, key func(EmployeeRetailerLink) string) []string {
	seen := make(map[string]struct{}, len(links))
	out := make([]string, 0, len(links))
	for _, link := range links {
		id := key(link)
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
