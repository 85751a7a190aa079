package account

const (
	RoleAdmin    = "admin"
	RoleEmployee = "employee"
	RoleRetailer = "retailer"
)
