package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	EmployeeEmailIndex    = "idx_employees_email"
	EmployeePhoneIndex    = "idx_employees_phone"
	EmployeeUniqueIDIndex = "idx_employees_unique_id"
	EmployeeCodeIndex     = "idx_employees_employee_id"
)

type Employee struct {
	ID         string `gorm:"type:uuid;primaryKey"`
	UniqueID   string `gorm:"size:16;not null;uniqueIndex:idx_employees_unique_id"`
	EmployeeID string `gorm:"size:16;not null;uniqueIndex:idx_employees_employee_id"`

	Name     string `gorm:"size:255;not null"`
	Email    string `gorm:"size:320;not null;uniqueIndex:idx_employees_email"`
	Phone    string `gorm:"size:32;not null;uniqueIndex:idx_employees_phone"`
	Position string `gorm:"size:120;not null;default:''"`
	Password string `gorm:"size:255;not null"`

	CreatedBy string `gorm:"size:32;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Employee) TableName() string {
	return "employees"
}

func (e *Employee) BeforeSave(tx *gorm.DB) error {
	hashed, err := HashPassword(e.Password)
	if err != nil {
		return err
	}
	e.Password = hashed
	return nil
}
