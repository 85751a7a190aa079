package repository

import (
	domain "github.com/mohammadpnp/party-onboarding/internal/domain/party"
	"github.com/mohammadpnp/party-onboarding/internal/infrastructure/db/models"
)

func blobColumns(ref *domain.BlobRef) (*string, *string) {
	if ref == nil {
		return nil, nil
	}
	url, id := ref.URL, ref.PublicID
	return &url, &id
}

func blobRef(url, id *string) *domain.BlobRef {
	if url == nil || *url == "" {
		return nil
	}
	ref := &domain.BlobRef{URL: *url}
	if id != nil {
		ref.PublicID = *id
	}
	return ref
}

func toRetailerModel(r domain.Retailer) models.Retailer {
	row := models.Retailer{
		ID:           r.ID,
		UniqueID:     r.UniqueID,
		RetailerCode: r.RetailerCode,

		Name:      r.Name,
		ContactNo: r.ContactNo,
		Email:     r.Email,
		Password:  r.Password,

		DOB:          r.DOB,
		Gender:       r.Gender,
		GovtIDType:   r.GovtIDType,
		GovtIDNumber: r.GovtIDNumber,

		Address: r.PersonalAddress.Address,
		City:    r.PersonalAddress.City,
		State:   r.PersonalAddress.State,
		Lat:     r.PersonalAddress.Geo.Lat,
		Lng:     r.PersonalAddress.Geo.Lng,

		ShopName:            r.Shop.ShopName,
		BusinessType:        r.Shop.BusinessType,
		OwnershipType:       r.Shop.OwnershipType,
		DateOfEstablishment: r.Shop.DateOfEstablishment,
		GSTNo:               r.Shop.GSTNo,
		PANCard:             r.Shop.PANCard,
		ShopAddress:         r.Shop.ShopAddress.Address,
		ShopAddress2:        r.Shop.ShopAddress.Address2,
		ShopCity:            r.Shop.ShopAddress.City,
		ShopState:           r.Shop.ShopAddress.State,
		ShopPincode:         r.Shop.ShopAddress.Pincode,
		ShopLat:             r.Shop.ShopAddress.Geo.Lat,
		ShopLng:             r.Shop.ShopAddress.Geo.Lng,

		BankName:      r.Bank.BankName,
		AccountNumber: r.Bank.AccountNumber,
		IFSC:          r.Bank.IFSC,
		BranchName:    r.Bank.BranchName,

		PartOfIndia:   r.PartOfIndia,
		CreatedBy:     r.CreatedBy,
		PhoneVerified: r.PhoneVerified,
	}
	row.GovtIDPhotoURL, row.GovtIDPhotoID = blobColumns(r.GovtIDPhoto)
	row.PersonPhotoURL, row.PersonPhotoID = blobColumns(r.PersonPhoto)
	row.RegistrationFormURL, row.RegistrationFormID = blobColumns(r.RegistrationForm)
	row.OutletPhotoURL, row.OutletPhotoID = blobColumns(r.Shop.OutletPhoto)
	if row.PartOfIndia == "" {
		row.PartOfIndia = "N"
	}
	return row
}

func toRetailer(row models.Retailer) domain.Retailer {
	return domain.Retailer{
		ID:           row.ID,
		UniqueID:     row.UniqueID,
		RetailerCode: row.RetailerCode,

		Name:      row.Name,
		ContactNo: row.ContactNo,
		Email:     row.Email,
		Password:  row.Password,

		DOB:          row.DOB,
		Gender:       row.Gender,
		GovtIDType:   row.GovtIDType,
		GovtIDNumber: row.GovtIDNumber,

		GovtIDPhoto:      blobRef(row.GovtIDPhotoURL, row.GovtIDPhotoID),
		PersonPhoto:      blobRef(row.PersonPhotoURL, row.PersonPhotoID),
		RegistrationForm: blobRef(row.RegistrationFormURL, row.RegistrationFormID),

		PersonalAddress: domain.Address{
			Address: row.Address,
			City:    row.City,
			State:   row.State,
			Geo:     domain.GeoTag{Lat: row.Lat, Lng: row.Lng},
		},
		Shop: domain.ShopDetails{
			ShopName:            row.ShopName,
			BusinessType:        row.BusinessType,
			OwnershipType:       row.OwnershipType,
			DateOfEstablishment: row.DateOfEstablishment,
			GSTNo:               row.GSTNo,
			PANCard:             row.PANCard,
			OutletPhoto:         blobRef(row.OutletPhotoURL, row.OutletPhotoID),
			ShopAddress: domain.Address{
				Address:  row.ShopAddress,
				Address2: row.ShopAddress2,
				City:     row.ShopCity,
				State:    row.ShopState,
				Pincode:  row.ShopPincode,
				Geo:      domain.GeoTag{Lat: row.ShopLat, Lng: row.ShopLng},
			},
		},
		Bank: domain.BankDetails{
			BankName:      row.BankName,
			AccountNumber: row.AccountNumber,
			IFSC:          row.IFSC,
			BranchName:    row.BranchName,
		},

		PartOfIndia:   row.PartOfIndia,
		CreatedBy:     row.CreatedBy,
		PhoneVerified: row.PhoneVerified,
	}
}

func toEmployee(row models.Employee) domain.Employee {
	return domain.Employee{
		ID:         row.ID,
		UniqueID:   row.UniqueID,
		EmployeeID: row.EmployeeID,
		Name:       row.Name,
		Email:      row.Email,
		Phone:      row.Phone,
		Position:   row.Position,
		Password:   row.Password,
		CreatedBy:  row.CreatedBy,
	}
}
