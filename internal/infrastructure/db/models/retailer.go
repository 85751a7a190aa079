package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Unique index names are matched against pgconn constraint names to tell a
// generated-code collision apart from an email or contact clash.
const (
	RetailerEmailIndex    = "idx_retailers_email"
	RetailerContactIndex  = "idx_retailers_contact_no"
	RetailerUniqueIDIndex = "idx_retailers_unique_id"
	RetailerCodeIndex     = "idx_retailers_retailer_code"
)

var passwordCost = bcrypt.DefaultCost

// SetPasswordCost changes the bcrypt cost used by the save hooks. Tests lower it.
func SetPasswordCost(cost int) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	passwordCost = cost
}

func PasswordCost() int {
	return passwordCost
}

// IsPasswordHash reports whether value already looks like a bcrypt hash.
func IsPasswordHash(value string) bool {
	_, err := bcrypt.Cost([]byte(value))
	return err == nil
}

// HashPassword hashes a plaintext password and leaves existing hashes alone.
func HashPassword(value string) (string, error) {
	if value == "" || IsPasswordHash(value) {
		return value, nil
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(value), passwordCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

type Retailer struct {
	ID           string `gorm:"type:uuid;primaryKey"`
	UniqueID     string `gorm:"size:16;not null;uniqueIndex:idx_retailers_unique_id"`
	RetailerCode string `gorm:"size:16;not null;uniqueIndex:idx_retailers_retailer_code"`

	Name      string `gorm:"size:255;not null;default:''"`
	ContactNo string `gorm:"size:32;not null;uniqueIndex:idx_retailers_contact_no"`
	Email     string `gorm:"size:320;not null;uniqueIndex:idx_retailers_email"`
	Password  string `gorm:"size:255;not null"`

	DOB          string `gorm:"size:32;not null;default:''"`
	Gender       string `gorm:"size:32;not null;default:''"`
	GovtIDType   string `gorm:"size:64;not null;default:''"`
	GovtIDNumber string `gorm:"size:64;not null;default:''"`

	GovtIDPhotoURL      *string `gorm:"type:text"`
	GovtIDPhotoID       *string `gorm:"type:text"`
	PersonPhotoURL      *string `gorm:"type:text"`
	PersonPhotoID       *string `gorm:"type:text"`
	RegistrationFormURL *string `gorm:"type:text"`
	RegistrationFormID  *string `gorm:"type:text"`

	Address string  `gorm:"type:text;not null;default:''"`
	City    string  `gorm:"size:120;not null;default:''"`
	State   string  `gorm:"size:120;not null;default:''"`
	Lat     float64 `gorm:"not null;default:0"`
	Lng     float64 `gorm:"not null;default:0"`

	ShopName            string  `gorm:"size:255;not null;default:''"`
	BusinessType        string  `gorm:"size:120;not null;default:''"`
	OwnershipType       string  `gorm:"size:120;not null;default:''"`
	DateOfEstablishment string  `gorm:"size:32;not null;default:''"`
	GSTNo               string  `gorm:"column:gst_no;size:32;not null;default:''"`
	PANCard             string  `gorm:"column:pan_card;size:32;not null;default:''"`
	OutletPhotoURL      *string `gorm:"type:text"`
	OutletPhotoID       *string `gorm:"type:text"`
	ShopAddress         string  `gorm:"type:text;not null;default:''"`
	ShopAddress2        string  `gorm:"type:text;not null;default:''"`
	ShopCity            string  `gorm:"size:120;not null;default:''"`
	ShopState           string  `gorm:"size:120;not null;default:''"`
	ShopPincode         string  `gorm:"size:16;not null;default:''"`
	ShopLat             float64 `gorm:"not null;default:0"`
	ShopLng             float64 `gorm:"not null;default:0"`

	BankName      string `gorm:"size:255;not null;default:''"`
	AccountNumber string `gorm:"size:64;not null;default:''"`
	IFSC          string `gorm:"column:ifsc;size:32;not null;default:''"`
	BranchName    string `gorm:"size:255;not null;default:''"`

	PartOfIndia   string `gorm:"size:8;not null;default:'N'"`
	CreatedBy     string `gorm:"size:32;not null"`
	PhoneVerified bool   `gorm:"not null;default:false"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Retailer) TableName() string {
	return "retailers"
}

func (r *Retailer) BeforeSave(tx *gorm.DB) error {
	hashed, err := HashPassword(r.Password)
	if err != nil {
		return err
	}
	r.Password = hashed
	return nil
}
