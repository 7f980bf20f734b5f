package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/tsootsoo/dictees/internal/model"
	"gorm.io/gorm"
)

type DictationRepository interface {
	FindAll(ctx context.Context, levelCodes []string) ([]model.Dictation, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Dictation, error)
	FindWithoutAudio(ctx context.Context) ([]model.Dictation, error)
	UpdateAudioFile(ctx context.Context, id uuid.UUID, audioFile string) error
}

type dictationRepository struct {
	db *gorm.DB
}

func NewDictationRepository(db *gorm.DB) DictationRepository {
	return &dictationRepository{db: db}
}

func (r *dictationRepository) withDetails(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Topic.Category").
		Preload("DictationsLevels.Level")
}

// FindAll lists dictations newest first. When levelCodes is not empty only
// dictations linked to at least one of those levels are returned.
func (r *dictationRepository) FindAll(ctx context.Context, levelCodes []string) ([]model.Dictation, error) {
	var dictations []model.Dictation
	query := r.withDetails(ctx)
	if len(levelCodes) > 0 {
		sub := r.db.Table("dictations_levels AS dl").
			Select("dl.dictation_id").
			Joins("JOIN levels AS l ON l.id = dl.level_id").
			Where("l.code IN ?", levelCodes)
		query = query.Where("id IN (?)", sub)
	}
	err := query.Order("created_at DESC").Find(&dictations).Error
	return dictations, err
}

func (r *dictationRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Dictation, error) {
	var dictation model.Dictation
	if err := r.withDetails(ctx).First(&dictation, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &dictation, nil
}

func (r *dictationRepository) FindWithoutAudio(ctx context.Context) ([]model.Dictation, error) {
	var dictations []model.Dictation
	err := r.db.WithContext(ctx).
		Where("(audio_file IS NULL OR audio_file = '') AND original_text <> ''").
		Order("created_at ASC").
		Find(&dictations).Error
	return dictations, err
}

func (r *dictationRepository) UpdateAudioFile(ctx context.Context, id uuid.UUID, audioFile string) error {
	return r.db.WithContext(ctx).Model(&model.Dictation{}).Where("id = ?", id).Update("audio_file", audioFile).Error
}
