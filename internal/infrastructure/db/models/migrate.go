package models

import "gorm.io/gorm"

func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Retailer{},
		&Employee{},
		&Campaign{},
		&CampaignRetailer{},
		&CampaignEmployee{},
		&CampaignEmployeeRetailer{},
		&UploadBatch{},
	)
}
