package party

import (
	"strings"
)

type Type string

const (
	TypeRetailer Type = "retailer"
	TypeEmployee Type = "employee"
)

func ParseType(raw string) (Type, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "retailer", "retailers":
		return TypeRetailer, nil
	case "employee", "employees":
		return TypeEmployee, nil
	default:
		return "", ErrInvalidPartyType
	}
}

// Label is the display form used in messages and export file names.
func (t Type) Label() string {
	switch t {
	case TypeRetailer:
		return "Retailer"
	case TypeEmployee:
		return "Employee"
	default:
		return string(t)
	}
}

func (t Type) Plural() string {
	return string(t) + "s"
}

type GeoTag struct {
	Lat float64
	Lng float64
}

type Address struct {
	Address  string
	Address2 string
	City     string
	State    string
	Pincode  string
	Geo      GeoTag
}

// BlobRef points at a file held by the blob store.
type BlobRef struct {
	URL      string
	PublicID string
}

type ShopDetails struct {
	ShopName            string
	BusinessType        string
	OwnershipType       string
	DateOfEstablishment string
	GSTNo               string
	PANCard             string
	ShopAddress         Address
	OutletPhoto         *BlobRef
}

type BankDetails struct {
	BankName      string
	AccountNumber string
	IFSC          string
	BranchName    string
}

const (
	CreatedByAdmin        = "AdminAdded"
	CreatedByRetailerSelf = "RetailerSelf"
)

type Retailer struct {
	ID           string
	UniqueID     string
	RetailerCode string

	Name      string
	ContactNo string
	Email     string
	// Password is plaintext and only travels as far as the store, which hashes it on save.
	Password string

	DOB          string
	Gender       string
	GovtIDType   string
	GovtIDNumber string

	GovtIDPhoto      *BlobRef
	PersonPhoto      *BlobRef
	RegistrationForm *BlobRef

	PersonalAddress Address
	Shop            ShopDetails
	Bank            BankDetails

	PartOfIndia   string
	CreatedBy     string
	PhoneVerified bool
}

type Employee struct {
	ID         string
	UniqueID   string
	EmployeeID string

	Name     string
	Email    string
	Phone    string
	Position string
	Password string

	CreatedBy string
}

// InsertedParty is the display summary of a persisted record. It never carries credentials.
type InsertedParty struct {
	ID        string
	Name      string
	Email     string
	ContactNo string
	UniqueID  string
	// Code is the retailer code or the employee id depending on the party type.
	Code string
}

func SummarizeRetailer(r Retailer) InsertedParty {
	return InsertedParty{
		ID:        r.ID,
		Name:      r.Name,
		Email:     r.Email,
		ContactNo: r.ContactNo,
		UniqueID:  r.UniqueID,
		Code:      r.RetailerCode,
	}
}

func SummarizeEmployee(e Employee) InsertedParty {
	return InsertedParty{
		ID:        e.ID,
		Name:      e.Name,
		Email:     e.Email,
		ContactNo: e.Phone,
		UniqueID:  e.UniqueID,
		Code:      e.EmployeeID,
	}
}
