package party

import (
	"context"
	"fmt"

	"github.com/mohammadpnp/party-onboarding/internal/domain/account"
	domain "github.com/mohammadpnp/party-onboarding/internal/domain/party"
)

type ListRetailersInput struct {
	Role string
}

type GeoTagOutput struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type AddressOutput struct {
	Address  string       `json:"address"`
	Address2 string       `json:"address2,omitempty"`
	City     string       `json:"city"`
	State    string       `json:"state"`
	Pincode  string       `json:"pincode,omitempty"`
	GeoTags  GeoTagOutput `json:"geoTags"`
}

type BlobOutput struct {
	URL      string `json:"url"`
	PublicID string `json:"publicId"`
}

type ShopDetailsOutput struct {
	ShopName            string        `json:"shopName"`
	BusinessType        string        `json:"businessType"`
	OwnershipType       string        `json:"ownershipType"`
	DateOfEstablishment string        `json:"dateOfEstablishment"`
	GSTNo               string        `json:"GSTNo"`
	PANCard             string        `json:"PANCard"`
	ShopAddress         AddressOutput `json:"shopAddress"`
	OutletPhoto         *BlobOutput   `json:"outletPhoto,omitempty"`
}

type BankDetailsOutput struct {
	BankName      string `json:"bankName"`
	AccountNumber string `json:"accountNumber"`
	IFSC          string `json:"IFSC"`
	BranchName    string `json:"branchName"`
}

// RetailerOutput is the full retailer view without credentials.
type RetailerOutput struct {
	ID                   string            `json:"id"`
	UniqueID             string            `json:"uniqueId"`
	RetailerCode         string            `json:"retailerCode"`
	Name                 string            `json:"name"`
	ContactNo            string            `json:"contactNo"`
	Email                string            `json:"email"`
	DOB                  string            `json:"dob"`
	Gender               string            `json:"gender"`
	GovtIDType           string            `json:"govtIdType"`
	GovtIDNumber         string            `json:"govtIdNumber"`
	GovtIDPhoto          *BlobOutput       `json:"govtIdPhoto,omitempty"`
	PersonPhoto          *BlobOutput       `json:"personPhoto,omitempty"`
	RegistrationFormFile *BlobOutput       `json:"registrationFormFile,omitempty"`
	PersonalAddress      AddressOutput     `json:"personalAddress"`
	ShopDetails          ShopDetailsOutput `json:"shopDetails"`
	BankDetails          BankDetailsOutput `json:"bankDetails"`
	PartOfIndia          string            `json:"partOfIndia"`
	CreatedBy            string            `json:"createdBy"`
	PhoneVerified        bool              `json:"phoneVerified"`
}

type ListRetailersOutput struct {
	Retailers []RetailerOutput `json:"retailers"`
}

type ListRetailers interface {
	Execute(ctx context.Context, in ListRetailersInput) (ListRetailersOutput, error)
}

type retailerLister interface {
	ListRetailers(ctx context.Context) ([]domain.Retailer, error)
}

type listRetailers struct {
	repo retailerLister
}

func NewListRetailers(repo retailerLister) ListRetailers {
	return &listRetailers{repo: repo}
}

func (uc *listRetailers) Execute(ctx context.Context, in ListRetailersInput) (ListRetailersOutput, error) {
	if in.Role != account.RoleAdmin {
		return ListRetailersOutput{}, ErrForbidden
	}

	retailers, err := uc.repo.ListRetailers(ctx)
	if err != nil {
		return ListRetailersOutput{}, fmt.Errorf("%w: %v", ErrListRetailers, err)
	}

	out := make([]RetailerOutput, 0, len(retailers))
	for _, r := range retailers {
		out = append(out, NewRetailerOutput(r))
	}
	return ListRetailersOutput{Retailers: out}, nil
}

func NewRetailerOutput(r domain.Retailer) RetailerOutput {
	return RetailerOutput{
		ID:                   r.ID,
		UniqueID:             r.UniqueID,
		RetailerCode:         r.RetailerCode,
		Name:                 r.Name,
		ContactNo:            r.ContactNo,
		Email:                r.Email,
		DOB:                  r.DOB,
		Gender:               r.Gender,
		GovtIDType:           r.GovtIDType,
		GovtIDNumber:         r.GovtIDNumber,
		GovtIDPhoto:          blobOutput(r.GovtIDPhoto),
		PersonPhoto:          blobOutput(r.PersonPhoto),
		RegistrationFormFile: blobOutput(r.RegistrationForm),
		PersonalAddress:      addressOutput(r.PersonalAddress),
		ShopDetails: ShopDetailsOutput{
			ShopName:            r.Shop.ShopName,
			BusinessType:        r.Shop.BusinessType,
			OwnershipType:       r.Shop.OwnershipType,
			DateOfEstablishment: r.Shop.DateOfEstablishment,
			GSTNo:               r.Shop.GSTNo,
			PANCard:             r.Shop.PANCard,
			ShopAddress:         addressOutput(r.Shop.ShopAddress),
			OutletPhoto:         blobOutput(r.Shop.OutletPhoto),
		},
		BankDetails: BankDetailsOutput{
			BankName:      r.Bank.BankName,
			AccountNumber: r.Bank.AccountNumber,
			IFSC:          r.Bank.IFSC,
			BranchName:    r.Bank.BranchName,
		},
		PartOfIndia:   r.PartOfIndia,
		CreatedBy:     r.CreatedBy,
		PhoneVerified: r.PhoneVerified,
	}
}

func addressOutput(a domain.Address) AddressOutput {
	return AddressOutput{
		Address:  a.Address,
		Address2: a.Address2,
		City:     a.City,
		State:    a.State,
		Pincode:  a.Pincode,
		GeoTags:  GeoTagOutput{Lat: a.Geo.Lat, Lng: a.Geo.Lng},
	}
}

func blobOutput(ref *domain.BlobRef) *BlobOutput {
	if ref == nil {
		return nil
	}
	return &BlobOutput{URL: ref.URL, PublicID: ref.PublicID}
}
