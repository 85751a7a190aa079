package models

import "time"

type UploadBatch struct {
	ID         string `gorm:"type:uuid;primaryKey"`
	PartyType  string `gorm:"size:16;not null;index"`
	FileName   string `gorm:"type:text;not null;default:''"`
	Actor      string `gorm:"size:64;not null;default:''"`
	Outcome    string `gorm:"size:32;not null"`
	TotalRows  int    `gorm:"not null;default:0"`
	Successful int    `gorm:"not null;default:0"`
	Failed     int    `gorm:"not null;default:0"`
	CreatedAt  time.Time
}

func (UploadBatch) TableName() string {
	return "upload_batches"
}
