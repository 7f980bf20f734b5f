package dto

import "time"

type LevelResponse struct {
	ID    uint   `json:"id"`
	Code  string `json:"code"`
	Label string `json:"label"`
	Rank  int    `json:"rank"`
}

type ProfileResponse struct {
	ID          string          `json:"id" copier:"-"`
	FirstName   string          `json:"first_name"`
	LastName    *string         `json:"last_name,omitempty"`
	AvatarURL   *string         `json:"avatar_url,omitempty"`
	Age         *int            `json:"age,omitempty"`
	Description *string         `json:"description,omitempty"`
	Levels      []LevelResponse `json:"levels"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ProfileRequest is used for both creation and update.
type ProfileRequest struct {
	FirstName   string  `json:"first_name" binding:"required"`
	LastName    *string `json:"last_name"`
	AvatarURL   *string `json:"avatar_url"`
	Age         *int    `json:"age" binding:"omitempty,min=1,max=120"`
	Description *string `json:"description"`
}

type UpdateProfileLevelsRequest struct {
	LevelIDs []uint `json:"level_ids" binding:"required"`
}

type SelectProfileRequest struct {
	ProfileID string `json:"profileId" binding:"required"`
}

type CurrentProfileResponse struct {
	CurrentProfile *ProfileResponse `json:"currentProfile"`
	FromFallback   bool             `json:"fromFallback,omitempty"`
}
