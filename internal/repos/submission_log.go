package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sewasew/census-backend/internal/logger"
	"github.com/sewasew/census-backend/internal/types"
)

type SubmissionLogRepo interface {
	Create(ctx context.Context, tx *gorm.DB, entry *types.SubmissionLog) error
	GetRecent(ctx context.Context, tx *gorm.DB, limit int) ([]*types.SubmissionLog, error)
}

type submissionLogRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSubmissionLogRepo(db *gorm.DB, baseLog *logger.Logger) SubmissionLogRepo {
	repoLog := baseLog.With("repo", "SubmissionLogRepo")
	return &submissionLogRepo{db: db, log: repoLog}
}

func (sr *submissionLogRepo) Create(ctx context.Context, tx *gorm.DB, entry *types.SubmissionLog) error {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}

	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}

	return transaction.WithContext(ctx).Create(entry).Error
}

func (sr *submissionLogRepo) GetRecent(ctx context.Context, tx *gorm.DB, limit int) ([]*types.SubmissionLog, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}

	if limit <= 0 {
		limit = 50
	}

	var results []*types.SubmissionLog
	if err := transaction.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
