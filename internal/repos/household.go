package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sewasew/census-backend/internal/logger"
	"github.com/sewasew/census-backend/internal/types"
)

type HouseholdRepo interface {
	Create(ctx context.Context, tx *gorm.DB, household *types.Household) (*types.Household, error)
	GetAll(ctx context.Context, tx *gorm.DB) ([]*types.Household, error)
	Count(ctx context.Context, tx *gorm.DB) (int64, error)
	CountByTitheStatus(ctx context.Context, tx *gorm.DB, status string) (int64, error)
}

type householdRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewHouseholdRepo(db *gorm.DB, baseLog *logger.Logger) HouseholdRepo {
	repoLog := baseLog.With("repo", "HouseholdRepo")
	return &householdRepo{db: db, log: repoLog}
}

func (hr *householdRepo) Create(ctx context.Context, tx *gorm.DB, household *types.Household) (*types.Household, error) {
	transaction := tx
	if transaction == nil {
		transaction = hr.db
	}

	if household.ID == uuid.Nil {
		household.ID = uuid.New()
	}

	if err := transaction.WithContext(ctx).Create(household).Error; err != nil {
		return nil, err
	}
	return household, nil
}

func (hr *householdRepo) GetAll(ctx context.Context, tx *gorm.DB) ([]*types.Household, error) {
	transaction := tx
	if transaction == nil {
		transaction = hr.db
	}

	var results []*types.Household
	if err := transaction.WithContext(ctx).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (hr *householdRepo) Count(ctx context.Context, tx *gorm.DB) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = hr.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.Household{}).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (hr *householdRepo) CountByTitheStatus(ctx context.Context, tx *gorm.DB, status string) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = hr.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.Household{}).
		Where("tithe_status = ?", status).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
