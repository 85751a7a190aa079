package models

import "time"

type Campaign struct {
	ID                string                     `gorm:"type:uuid;primaryKey"`
	Name              string                     `gorm:"size:255;not null"`
	Retailers         []CampaignRetailer         `gorm:"foreignKey:CampaignID"`
	Employees         []CampaignEmployee         `gorm:"foreignKey:CampaignID"`
	EmployeeRetailers []CampaignEmployeeRetailer `gorm:"foreignKey:CampaignID"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func (Campaign) TableName() string {
	return "campaigns"
}

type CampaignRetailer struct {
	CampaignID string `gorm:"type:uuid;primaryKey"`
	RetailerID string `gorm:"type:uuid;primaryKey"`
	StartDate  *time.Time
	EndDate    *time.Time
	UpdatedAt  *time.Time
}

func (CampaignRetailer) TableName() string {
	return "campaign_retailers"
}

type CampaignEmployee struct {
	CampaignID string `gorm:"type:uuid;primaryKey"`
	EmployeeID string `gorm:"type:uuid;primaryKey"`
}

func (CampaignEmployee) TableName() string {
	return "campaign_employees"
}

const CampaignEmployeeRetailerIndex = "idx_campaign_employee_retailer"

type CampaignEmployeeRetailer struct {
	ID         int64     `gorm:"primaryKey"`
	CampaignID string    `gorm:"type:uuid;not null;uniqueIndex:idx_campaign_employee_retailer,priority:1"`
	EmployeeID string    `gorm:"type:uuid;not null;uniqueIndex:idx_campaign_employee_retailer,priority:2"`
	RetailerID string    `gorm:"type:uuid;not null;uniqueIndex:idx_campaign_employee_retailer,priority:3"`
	AssignedAt time.Time `gorm:"not null"`
}

func (CampaignEmployeeRetailer) TableName() string {
	return "campaign_employee_retailers"
}
