package party

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// Field maps a canonical field to the keys it may arrive under. Name is the flat
// spreadsheet column; Aliases are tried in order when the flat key is empty, which
// covers the dotted keys sent by the registration form. MaxLen is the column size
// in characters, zero for unbounded text and numeric columns.
type Field struct {
	Name     string
	Aliases  []string
	Required bool
	MaxLen   int
}

// Lookup returns the raw value stored under key, or "" when absent.
type Lookup func(key string) string

func (f Field) Resolve(lookup Lookup) string {
	if v := strings.TrimSpace(lookup(f.Name)); v != "" {
		return v
	}
	for _, alias := range f.Aliases {
		if v := strings.TrimSpace(lookup(alias)); v != "" {
			return v
		}
	}
	return ""
}

const (
	FieldName                = "name"
	FieldContactNo           = "contactNo"
	FieldEmail               = "email"
	FieldDOB                 = "dob"
	FieldGender              = "gender"
	FieldGovtIDType          = "govtIdType"
	FieldGovtIDNumber        = "govtIdNumber"
	FieldAddress             = "address"
	FieldCity                = "city"
	FieldState               = "state"
	FieldLat                 = "lat"
	FieldLng                 = "lng"
	FieldShopName            = "shopName"
	FieldBusinessType        = "businessType"
	FieldOwnershipType       = "ownershipType"
	FieldDateOfEstablishment = "dateOfEstablishment"
	FieldGSTNo               = "GSTNo"
	FieldPANCard             = "PANCard"
	FieldShopAddress         = "shopAddress"
	FieldShopAddress2        = "shopAddress2"
	FieldShopCity            = "shopCity"
	FieldShopState           = "shopState"
	FieldShopPincode         = "shopPincode"
	FieldShopLat             = "shopLat"
	FieldShopLng             = "shopLng"
	FieldBankName            = "bankName"
	FieldAccountNumber       = "accountNumber"
	FieldIFSC                = "IFSC"
	FieldBranchName          = "branchName"
	FieldPartOfIndia         = "partOfIndia"
	FieldCreatedBy           = "createdBy"

	FieldPhone    = "phone"
	FieldPosition = "position"
)

// RetailerFields is ordered the way missing fields are reported.
var RetailerFields = []Field{
	{Name: FieldShopName, Aliases: []string{"shopDetails.shopName"}, Required: true, MaxLen: 255},
	{Name: FieldShopAddress, Aliases: []string{"shopDetails.shopAddress.address"}, Required: true},
	{Name: FieldShopAddress2, Aliases: []string{"shopDetails.shopAddress.address2"}},
	{Name: FieldShopCity, Aliases: []string{"shopDetails.shopAddress.city"}, Required: true, MaxLen: 120},
	{Name: FieldShopState, Aliases: []string{"shopDetails.shopAddress.state"}, Required: true, MaxLen: 120},
	{Name: FieldShopPincode, Aliases: []string{"shopDetails.shopAddress.pincode"}, Required: true, MaxLen: 16},
	{Name: FieldShopLat, Aliases: []string{"shopDetails.shopAddress.geoTags.lat"}},
	{Name: FieldShopLng, Aliases: []string{"shopDetails.shopAddress.geoTags.lng"}},
	{Name: FieldGSTNo, Aliases: []string{"shopDetails.GSTNo"}, MaxLen: 32},
	{Name: FieldBusinessType, Aliases: []string{"shopDetails.businessType"}, Required: true, MaxLen: 120},
	{Name: FieldOwnershipType, Aliases: []string{"shopDetails.ownershipType"}, MaxLen: 120},
	{Name: FieldDateOfEstablishment, Aliases: []string{"shopDetails.dateOfEstablishment"}, MaxLen: 32},
	{Name: FieldName, Required: true, MaxLen: 255},
	{Name: FieldPANCard, Aliases: []string{"shopDetails.PANCard"}, Required: true, MaxLen: 32},
	{Name: FieldContactNo, Required: true, MaxLen: 32},
	{Name: FieldEmail, Required: true, MaxLen: 320},
	{Name: FieldDOB, MaxLen: 32},
	{Name: FieldGender, MaxLen: 32},
	{Name: FieldGovtIDType, MaxLen: 64},
	{Name: FieldGovtIDNumber, MaxLen: 64},
	{Name: FieldAddress, Aliases: []string{"personalAddress.address"}},
	{Name: FieldCity, Aliases: []string{"personalAddress.city"}, MaxLen: 120},
	{Name: FieldState, Aliases: []string{"personalAddress.state"}, MaxLen: 120},
	{Name: FieldLat, Aliases: []string{"geoTags.lat", "personalAddress.geoTags.lat"}},
	{Name: FieldLng, Aliases: []string{"geoTags.lng", "personalAddress.geoTags.lng"}},
	{Name: FieldBankName, Aliases: []string{"bankDetails.bankName"}, Required: true, MaxLen: 255},
	{Name: FieldAccountNumber, Aliases: []string{"bankDetails.accountNumber"}, Required: true, MaxLen: 64},
	{Name: FieldIFSC, Aliases: []string{"bankDetails.IFSC"}, Required: true, MaxLen: 32},
	{Name: FieldBranchName, Aliases: []string{"bankDetails.branchName"}, Required: true, MaxLen: 255},
	{Name: FieldPartOfIndia, MaxLen: 8},
	{Name: FieldCreatedBy, MaxLen: 32},
}

var EmployeeFields = []Field{
	{Name: FieldName, Required: true, MaxLen: 255},
	{Name: FieldEmail, Required: true, MaxLen: 320},
	{Name: FieldPhone, Aliases: []string{FieldContactNo}, Required: true, MaxLen: 32},
	{Name: FieldPosition, Required: true, MaxLen: 120},
}

func FieldsFor(t Type) []Field {
	if t == TypeEmployee {
		return EmployeeFields
	}
	return RetailerFields
}

// ContactField names the field carrying the phone number for a party type.
func ContactField(t Type) string {
	if t == TypeEmployee {
		return FieldPhone
	}
	return FieldContactNo
}

// Values is a resolved view over raw input keyed by canonical field name.
type Values map[string]string

func ResolveValues(fields []Field, lookup Lookup) Values {
	values := make(Values, len(fields))
	for _, f := range fields {
		values[f.Name] = f.Resolve(lookup)
	}
	return values
}

// Missing lists the required fields that resolved to an empty value.
func (v Values) Missing(fields []Field) []string {
	var missing []string
	for _, f := range fields {
		if f.Required && v[f.Name] == "" {
			missing = append(missing, f.Name)
		}
	}
	return missing
}

// TooLong lists the bounded fields whose value exceeds the column size.
func (v Values) TooLong(fields []Field) []string {
	var long []string
	for _, f := range fields {
		if f.MaxLen > 0 && utf8.RuneCountInString(v[f.Name]) > f.MaxLen {
			long = append(long, f.Name)
		}
	}
	return long
}

func (v Values) float(key string) float64 {
	f, err := strconv.ParseFloat(v[key], 64)
	if err != nil {
		return 0
	}
	return f
}

// NewRetailer assembles the nested shop, bank and address details from resolved
// values. Absent optional fields stay empty strings.
func NewRetailer(v Values) Retailer {
	return Retailer{
		Name:         v[FieldName],
		ContactNo:    v[FieldContactNo],
		Email:        v[FieldEmail],
		Password:     v[FieldContactNo],
		DOB:          v[FieldDOB],
		Gender:       v[FieldGender],
		GovtIDType:   v[FieldGovtIDType],
		GovtIDNumber: v[FieldGovtIDNumber],
		PersonalAddress: Address{
			Address: v[FieldAddress],
			City:    v[FieldCity],
			State:   v[FieldState],
			Geo:     GeoTag{Lat: v.float(FieldLat), Lng: v.float(FieldLng)},
		},
		Shop: ShopDetails{
			ShopName:            v[FieldShopName],
			BusinessType:        v[FieldBusinessType],
			OwnershipType:       v[FieldOwnershipType],
			DateOfEstablishment: v[FieldDateOfEstablishment],
			GSTNo:               v[FieldGSTNo],
			PANCard:             v[FieldPANCard],
			ShopAddress: Address{
				Address:  v[FieldShopAddress],
				Address2: v[FieldShopAddress2],
				City:     v[FieldShopCity],
				State:    v[FieldShopState],
				Pincode:  v[FieldShopPincode],
				Geo:      GeoTag{Lat: v.float(FieldShopLat), Lng: v.float(FieldShopLng)},
			},
		},
		Bank: BankDetails{
			BankName:      v[FieldBankName],
			AccountNumber: v[FieldAccountNumber],
			IFSC:          v[FieldIFSC],
			BranchName:    v[FieldBranchName],
		},
		PartOfIndia:   v[FieldPartOfIndia],
		CreatedBy:     v[FieldCreatedBy],
		PhoneVerified: true,
	}
}

func NewEmployee(v Values) Employee {
	return Employee{
		Name:     v[FieldName],
		Email:    v[FieldEmail],
		Phone:    v[FieldPhone],
		Position: v[FieldPosition],
		Password: v[FieldPhone],
	}
}
