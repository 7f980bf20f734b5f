package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/tsootsoo/dictees/internal/model"
	"gorm.io/gorm"
)

type ProfileRepository interface {
	Create(ctx context.Context, profile *model.Profile) error
	Update(ctx context.Context, profile *model.Profile) error
	Delete(ctx context.Context, id uuid.UUID, userID string) error
	FindByIDForUser(ctx context.Context, id uuid.UUID, userID string) (*model.Profile, error)
	FindAllByUser(ctx context.Context, userID string) ([]model.Profile, error)
	FindLatestByUser(ctx context.Context, userID string) (*model.Profile, error)
	ReplaceLevels(ctx context.Context, profileID uuid.UUID, levelIDs []uint) error
}

type profileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) withLevels(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("ProfileLevels.Level")
}

func (r *profileRepository) Create(ctx context.Context, profile *model.Profile) error {
	return r.db.WithContext(ctx).Omit("ProfileLevels").Create(profile).Error
}

func (r *profileRepository) Update(ctx context.Context, profile *model.Profile) error {
	return r.db.WithContext(ctx).Omit("ProfileLevels").Save(profile).Error
}

// Delete removes the profile only when it belongs to userID. It returns
// gorm.ErrRecordNotFound otherwise.
func (r *profileRepository) Delete(ctx context.Context, id uuid.UUID, userID string) error {
	res := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&model.Profile{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *profileRepository) FindByIDForUser(ctx context.Context, id uuid.UUID, userID string) (*model.Profile, error) {
	var profile model.Profile
	err := r.withLevels(ctx).Where("id = ? AND user_id = ?", id, userID).First(&profile).Error
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepository) FindAllByUser(ctx context.Context, userID string) ([]model.Profile, error) {
	var profiles []model.Profile
	err := r.withLevels(ctx).Where("user_id = ?", userID).Order("created_at DESC").Find(&profiles).Error
	return profiles, err
}

func (r *profileRepository) FindLatestByUser(ctx context.Context, userID string) (*model.Profile, error) {
	var profile model.Profile
	err := r.withLevels(ctx).Where("user_id = ?", userID).Order("created_at DESC").First(&profile).Error
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// ReplaceLevels swaps the whole level set of a profile in one transaction.
func (r *profileRepository) ReplaceLevels(ctx context.Context, profileID uuid.UUID, levelIDs []uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("profile_id = ?", profileID).Delete(&model.ProfileLevel{}).Error; err != nil {
			return err
		}
		if len(levelIDs) == 0 {
			return nil
		}
		links := make([]model.ProfileLevel, 0, len(levelIDs))
		for _, id := range levelIDs {
			links = append(links, model.ProfileLevel{ProfileID: profileID, LevelID: id})
		}
		return tx.Omit("Level").Create(&links).Error
	})
}
