package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	domain "github.com/mohammadpnp/party-onboarding/internal/domain/party"
	"github.com/mohammadpnp/party-onboarding/internal/infrastructure/db/models"
	"gorm.io/gorm"
)

const (
	uniqueViolation        = "23505"
	DefaultMaxCodeAttempts = 5
)

// PartyQueryRepository serves single-record reads and writes through gorm.
// Bulk inserts go through PartyBulkInsertRepository instead.
type PartyQueryRepository struct {
	db              *gorm.DB
	codes           domain.CodeSource
	maxCodeAttempts int
}

func NewPartyQueryRepository(db *gorm.DB, maxCodeAttempts int) *PartyQueryRepository {
	if maxCodeAttempts <= 0 {
		maxCodeAttempts = DefaultMaxCodeAttempts
	}
	return &PartyQueryRepository{db: db, codes: domain.DefaultCodeSource, maxCodeAttempts: maxCodeAttempts}
}

// CreateRetailer assigns fresh codes and inserts the retailer, regenerating the
// codes when they collide with an existing row.
func (r *PartyQueryRepository) CreateRetailer(ctx context.Context, retailer *domain.Retailer) error {
	row := toRetailerModel(*retailer)

	for attempt := 1; ; attempt++ {
		tmp := domain.Retailer{}
		domain.AssignRetailerCodes(&tmp, r.codes)
		row.UniqueID, row.RetailerCode = tmp.UniqueID, tmp.RetailerCode

		err := r.db.WithContext(ctx).Create(&row).Error
		if err == nil {
			break
		}

		constraint, ok := uniqueConstraint(err)
		if !ok {
			return fmt.Errorf("create retailer: %w", err)
		}
		switch constraint {
		case models.RetailerEmailIndex, models.RetailerContactIndex:
			return domain.ErrDuplicateParty
		}
		if attempt >= r.maxCodeAttempts {
			return fmt.Errorf("create retailer: generated codes kept colliding: %w", err)
		}
	}

	retailer.UniqueID = row.UniqueID
	retailer.RetailerCode = row.RetailerCode
	retailer.Password = row.Password
	return nil
}

func (r *PartyQueryRepository) ListRetailers(ctx context.Context) ([]domain.Retailer, error) {
	var rows []models.Retailer
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list retailers: %w", err)
	}

	out := make([]domain.Retailer, 0, len(rows))
	for _, row := range rows {
		out = append(out, toRetailer(row))
	}
	return out, nil
}

func (r *PartyQueryRepository) FindRetailerByContact(ctx context.Context, contactNo string) (*domain.Retailer, error) {
	var row models.Retailer
	err := r.db.WithContext(ctx).First(&row, "contact_no = ?", contactNo).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPartyNotFound
		}
		return nil, fmt.Errorf("find retailer by contact: %w", err)
	}

	retailer := toRetailer(row)
	return &retailer, nil
}

func (r *PartyQueryRepository) FindRetailersByIDs(ctx context.Context, ids []string) ([]domain.Retailer, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var rows []models.Retailer
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("find retailers by ids: %w", err)
	}

	out := make([]domain.Retailer, 0, len(rows))
	for _, row := range rows {
		out = append(out, toRetailer(row))
	}
	return out, nil
}

func (r *PartyQueryRepository) UpdateRetailerPassword(ctx context.Context, retailerID, newPassword string) error {
	hashed, err := models.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	result := r.db.WithContext(ctx).
		Model(&models.Retailer{}).
		Where("id = ?", retailerID).
		UpdateColumn("password", hashed)
	if result.Error != nil {
		return fmt.Errorf("update retailer password: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrPartyNotFound
	}
	return nil
}

func (r *PartyQueryRepository) ExistsByEmailOrContact(ctx context.Context, t domain.Type, email, contact string) (bool, error) {
	var (
		model  any
		column string
	)
	switch t {
	case domain.TypeRetailer:
		model, column = &models.Retailer{}, "contact_no"
	case domain.TypeEmployee:
		model, column = &models.Employee{}, "phone"
	default:
		return false, domain.ErrInvalidPartyType
	}

	var count int64
	err := r.db.WithContext(ctx).
		Model(model).
		Where("email = ? OR "+column+" = ?", email, contact).
		Limit(1).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("check duplicate %s: %w", t, err)
	}
	return count > 0, nil
}

func (r *PartyQueryRepository) FindEmployeeByID(ctx context.Context, id string) (*domain.Employee, error) {
	var row models.Employee
	err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPartyNotFound
		}
		return nil, fmt.Errorf("find employee by id: %w", err)
	}

	employee := toEmployee(row)
	return &employee, nil
}

func (r *PartyQueryRepository) FindEmployeesByIDs(ctx context.Context, ids []string) ([]domain.Employee, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var rows []models.Employee
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("find employees by ids: %w", err)
	}

	out := make([]domain.Employee, 0, len(rows))
	for _, row := range rows {
		out = append(out, toEmployee(row))
	}
	return out, nil
}

func uniqueConstraint(err error) (string, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return pgErr.ConstraintName, true
	}
	return "", false
}
