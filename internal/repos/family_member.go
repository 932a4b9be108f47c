package repos

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sewasew/census-backend/internal/logger"
	"github.com/sewasew/census-backend/internal/types"
)

// GroupCount is one bucket of a grouped aggregation query.
type GroupCount struct {
	Key   string `gorm:"column:key"`
	Count int64  `gorm:"column:count"`
}

type FamilyMemberRepo interface {
	Create(ctx context.Context, tx *gorm.DB, members []*types.FamilyMember) ([]*types.FamilyMember, error)
	GetAll(ctx context.Context, tx *gorm.DB) ([]*types.FamilyMember, error)
	Count(ctx context.Context, tx *gorm.DB) (int64, error)
	CountByServeInChurch(ctx context.Context, tx *gorm.DB, value string) (int64, error)
	GenderCounts(ctx context.Context, tx *gorm.DB) ([]GroupCount, error)
	CommunityCounts(ctx context.Context, tx *gorm.DB, fallback string) ([]GroupCount, error)
	BirthDates(ctx context.Context, tx *gorm.DB) ([]string, error)
}

type familyMemberRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewFamilyMemberRepo(db *gorm.DB, baseLog *logger.Logger) FamilyMemberRepo {
	repoLog := baseLog.With("repo", "FamilyMemberRepo")
	return &familyMemberRepo{db: db, log: repoLog}
}

func (fr *familyMemberRepo) Create(ctx context.Context, tx *gorm.DB, members []*types.FamilyMember) ([]*types.FamilyMember, error) {
	transaction := tx
	if transaction == nil {
		transaction = fr.db
	}

	if len(members) == 0 {
		return []*types.FamilyMember{}, nil
	}

	for _, m := range members {
		if m.ID == uuid.Nil {
			m.ID = uuid.New()
		}
	}

	if err := transaction.WithContext(ctx).Create(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}

func (fr *familyMemberRepo) GetAll(ctx context.Context, tx *gorm.DB) ([]*types.FamilyMember, error) {
	transaction := tx
	if transaction == nil {
		transaction = fr.db
	}

	var results []*types.FamilyMember
	if err := transaction.WithContext(ctx).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (fr *familyMemberRepo) Count(ctx context.Context, tx *gorm.DB) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = fr.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.FamilyMember{}).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (fr *familyMemberRepo) CountByServeInChurch(ctx context.Context, tx *gorm.DB, value string) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = fr.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.FamilyMember{}).
		Where("LOWER(serveinchurch) = ?", strings.ToLower(value)).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (fr *familyMemberRepo) GenderCounts(ctx context.Context, tx *gorm.DB) ([]GroupCount, error) {
	transaction := tx
	if transaction == nil {
		transaction = fr.db
	}

	var rows []GroupCount
	if err := transaction.WithContext(ctx).
		Model(&types.FamilyMember{}).
		Select("gender AS key, COUNT(*) AS count").
		Group("gender").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (fr *familyMemberRepo) CommunityCounts(ctx context.Context, tx *gorm.DB, fallback string) ([]GroupCount, error) {
	transaction := tx
	if transaction == nil {
		transaction = fr.db
	}

	var rows []GroupCount
	if err := transaction.WithContext(ctx).
		Model(&types.FamilyMember{}).
		Select("COALESCE(community, ?) AS key, COUNT(*) AS count", fallback).
		Group("key").
		Order("count DESC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (fr *familyMemberRepo) BirthDates(ctx context.Context, tx *gorm.DB) ([]string, error) {
	transaction := tx
	if transaction == nil {
		transaction = fr.db
	}

	var dates []string
	if err := transaction.WithContext(ctx).
		Model(&types.FamilyMember{}).
		Pluck("birthdate", &dates).Error; err != nil {
		return nil, err
	}
	return dates, nil
}
