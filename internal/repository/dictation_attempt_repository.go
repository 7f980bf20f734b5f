package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/tsootsoo/dictees/internal/model"
	"gorm.io/gorm"
)

// DictationAttemptRepository is append-only: attempts are never updated or deleted.
type DictationAttemptRepository interface {
	Create(ctx context.Context, attempt *model.DictationAttempt) error
	FindByProfileAndDictation(ctx context.Context, profileID, dictationID uuid.UUID) ([]model.DictationAttempt, error)
}

type dictationAttemptRepository struct {
	db *gorm.DB
}

func NewDictationAttemptRepository(db *gorm.DB) DictationAttemptRepository {
	return &dictationAttemptRepository{db: db}
}

func (r *dictationAttemptRepository) Create(ctx context.Context, attempt *model.DictationAttempt) error {
	return r.db.WithContext(ctx).Create(attempt).Error
}

func (r *dictationAttemptRepository) FindByProfileAndDictation(ctx context.Context, profileID, dictationID uuid.UUID) ([]model.DictationAttempt, error) {
	var attempts []model.DictationAttempt
	err := r.db.WithContext(ctx).
		Where("profile_id = ? AND dictation_id = ? AND question_type = ?", profileID, dictationID, model.QuestionTypeDictee).
		Order("created_at DESC").
		Find(&attempts).Error
	return attempts, err
}
