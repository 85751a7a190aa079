package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	domain "github.com/mohammadpnp/party-onboarding/internal/domain/party"
	"github.com/mohammadpnp/party-onboarding/internal/infrastructure/db/models"
	"gorm.io/gorm"
)

type UploadBatchRepository struct {
	db *gorm.DB
}

func NewUploadBatchRepository(db *gorm.DB) *UploadBatchRepository {
	return &UploadBatchRepository{db: db}
}

func (r *UploadBatchRepository) Record(ctx context.Context, batch domain.UploadBatch) (string, error) {
	row := models.UploadBatch{
		ID:         uuid.NewString(),
		PartyType:  string(batch.PartyType),
		FileName:   batch.FileName,
		Actor:      batch.Actor,
		Outcome:    string(batch.Outcome),
		TotalRows:  batch.TotalRows,
		Successful: batch.Successful,
		Failed:     batch.Failed,
	}

	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return "", fmt.Errorf("create upload batch: %w", err)
	}

	return row.ID, nil
}
