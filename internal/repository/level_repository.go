package repository

import (
	"context"

	"github.com/tsootsoo/dictees/internal/model"
	"gorm.io/gorm"
)

type LevelRepository interface {
	FindAll(ctx context.Context) ([]model.Level, error)
	FindByIDs(ctx context.Context, ids []uint) ([]model.Level, error)
}

type levelRepository struct {
	db *gorm.DB
}

func NewLevelRepository(db *gorm.DB) LevelRepository {
	return &levelRepository{db: db}
}

func (r *levelRepository) FindAll(ctx context.Context) ([]model.Level, error) {
	var levels []model.Level
	err := r.db.WithContext(ctx).Order("rank ASC").Find(&levels).Error
	return levels, err
}

func (r *levelRepository) FindByIDs(ctx context.Context, ids []uint) ([]model.Level, error) {
	var levels []model.Level
	if len(ids) == 0 {
		return levels, nil
	}
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Order("rank ASC").Find(&levels).Error
	return levels, err
}
