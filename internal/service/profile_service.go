package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/tsootsoo/dictees/config"
	"github.com/tsootsoo/dictees/internal/dto"
	"github.com/tsootsoo/dictees/internal/model"
	"github.com/tsootsoo/dictees/internal/repository"
	"gorm.io/gorm"
)

// ProfileService manages the learner profiles of an account. Every method
// scopes its queries by userID, a profile owned by someone else is reported
// as ErrProfileNotFound.
type ProfileService interface {
	ListProfiles(ctx context.Context, userID string) ([]dto.ProfileResponse, error)
	CreateProfile(ctx context.Context, userID string, req dto.ProfileRequest) (*dto.ProfileResponse, error)
	UpdateProfile(ctx context.Context, userID string, profileID uuid.UUID, req dto.ProfileRequest) (*dto.ProfileResponse, error)
	DeleteProfile(ctx context.Context, userID string, profileID uuid.UUID) error
	GetProfile(ctx context.Context, userID string, profileID uuid.UUID) (*dto.ProfileResponse, error)
	GetProfileLevels(ctx context.Context, userID string, profileID uuid.UUID) ([]dto.LevelResponse, error)
	UpdateProfileLevels(ctx context.Context, userID string, profileID uuid.UUID, levelIDs []uint) ([]dto.LevelResponse, error)
	// LatestProfile returns the most recently created profile, or nil when the account has none.
	LatestProfile(ctx context.Context, userID string) (*dto.ProfileResponse, error)
}

type profileService struct {
	profileRepo   repository.ProfileRepository
	levelRepo     repository.LevelRepository
	storage       StorageService
	avatarsBucket string
}

func NewProfileService(
	profileRepo repository.ProfileRepository,
	levelRepo repository.LevelRepository,
	storage StorageService,
	cfg *config.Config,
) ProfileService {
	return &profileService{
		profileRepo:   profileRepo,
		levelRepo:     levelRepo,
		storage:       storage,
		avatarsBucket: cfg.Storage.AvatarsBucket,
	}
}

func (s *profileService) ListProfiles(ctx context.Context, userID string) ([]dto.ProfileResponse, error) {
	profiles, err := s.profileRepo.FindAllByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.ProfileResponse, 0, len(profiles))
	for i := range profiles {
		resp = append(resp, toProfileResponse(&profiles[i]))
	}
	return resp, nil
}

func (s *profileService) CreateProfile(ctx context.Context, userID string, req dto.ProfileRequest) (*dto.ProfileResponse, error) {
	firstName := strings.TrimSpace(req.FirstName)
	if firstName == "" {
		return nil, fmt.Errorf("%w: first_name is required", ErrInvalidInput)
	}
	profile := &model.Profile{
		UserID:      userID,
		FirstName:   firstName,
		LastName:    req.LastName,
		AvatarURL:   req.AvatarURL,
		Age:         req.Age,
		Description: req.Description,
	}
	if err := s.profileRepo.Create(ctx, profile); err != nil {
		return nil, fmt.Errorf("create profile: %w", err)
	}
	log.Info().Str("profileID", profile.ID.String()).Str("userID", userID).Msg("Profile created")
	resp := toProfileResponse(profile)
	return &resp, nil
}

func (s *profileService) UpdateProfile(ctx context.Context, userID string, profileID uuid.UUID, req dto.ProfileRequest) (*dto.ProfileResponse, error) {
	profile, err := s.find(ctx, userID, profileID)
	if err != nil {
		return nil, err
	}
	firstName := strings.TrimSpace(req.FirstName)
	if firstName == "" {
		return nil, fmt.Errorf("%w: first_name is required", ErrInvalidInput)
	}
	profile.FirstName = firstName
	profile.LastName = req.LastName
	profile.AvatarURL = req.AvatarURL
	profile.Age = req.Age
	profile.Description = req.Description

	if err := s.profileRepo.Update(ctx, profile); err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	resp := toProfileResponse(profile)
	return &resp, nil
}

// DeleteProfile removes the profile, then tries to remove its avatar object.
// A failed avatar removal is logged only.
func (s *profileService) DeleteProfile(ctx context.Context, userID string, profileID uuid.UUID) error {
	profile, err := s.find(ctx, userID, profileID)
	if err != nil {
		return err
	}
	if err := s.profileRepo.Delete(ctx, profileID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProfileNotFound
		}
		return fmt.Errorf("delete profile: %w", err)
	}

	if name := avatarObjectName(profile.AvatarURL); name != "" && s.storage.Enabled() {
		if err := s.storage.Delete(ctx, s.avatarsBucket, name); err != nil {
			log.Warn().Err(err).Str("profileID", profileID.String()).Str("avatar", name).Msg("DeleteProfile: avatar removal failed")
		}
	}
	return nil
}

func (s *profileService) GetProfile(ctx context.Context, userID string, profileID uuid.UUID) (*dto.ProfileResponse, error) {
	profile, err := s.find(ctx, userID, profileID)
	if err != nil {
		return nil, err
	}
	resp := toProfileResponse(profile)
	return &resp, nil
}

func (s *profileService) GetProfileLevels(ctx context.Context, userID string, profileID uuid.UUID) ([]dto.LevelResponse, error) {
	profile, err := s.GetProfile(ctx, userID, profileID)
	if err != nil {
		return nil, err
	}
	return profile.Levels, nil
}

func (s *profileService) UpdateProfileLevels(ctx context.Context, userID string, profileID uuid.UUID, levelIDs []uint) ([]dto.LevelResponse, error) {
	if _, err := s.find(ctx, userID, profileID); err != nil {
		return nil, err
	}

	ids := uniqueIDs(levelIDs)
	levels, err := s.levelRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load levels: %w", err)
	}
	if len(levels) != len(ids) {
		return nil, fmt.Errorf("%w: one or more level IDs are invalid", ErrInvalidInput)
	}

	if err := s.profileRepo.ReplaceLevels(ctx, profileID, ids); err != nil {
		return nil, fmt.Errorf("replace profile levels: %w", err)
	}
	return toLevelResponses(levels), nil
}

func (s *profileService) LatestProfile(ctx context.Context, userID string) (*dto.ProfileResponse, error) {
	profile, err := s.profileRepo.FindLatestByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	resp := toProfileResponse(profile)
	return &resp, nil
}

func (s *profileService) find(ctx context.Context, userID string, profileID uuid.UUID) (*model.Profile, error) {
	profile, err := s.profileRepo.FindByIDForUser(ctx, profileID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("load profile: %w", err)
	}
	return profile, nil
}

// avatarObjectName extracts the object name from a stored avatar URL.
func avatarObjectName(avatarURL *string) string {
	if avatarURL == nil || strings.TrimSpace(*avatarURL) == "" {
		return ""
	}
	raw := *avatarURL
	if u, err := url.Parse(raw); err == nil && u.Path != "" {
		raw = u.Path
	}
	name := path.Base(raw)
	if name == "." || name == "/" {
		return ""
	}
	return name
}

func uniqueIDs(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
