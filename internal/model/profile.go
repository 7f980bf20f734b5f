package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Profile is a learner owned by an account. The account itself lives in the
// external auth provider, only its id is stored here.
type Profile struct {
	ID            uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID        string         `gorm:"not null;index" json:"user_id"`
	FirstName     string         `gorm:"not null" json:"first_name"`
	LastName      *string        `json:"last_name,omitempty"`
	AvatarURL     *string        `json:"avatar_url,omitempty"`
	Age           *int           `json:"age,omitempty"`
	Description   *string        `json:"description,omitempty"`
	ProfileLevels []ProfileLevel `gorm:"foreignKey:ProfileID;constraint:OnDelete:CASCADE;" json:"profile_levels,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

func (p *Profile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// LevelCodes returns the codes of the loaded levels, ordered as loaded.
func (p *Profile) LevelCodes() []string {
	codes := make([]string, 0, len(p.ProfileLevels))
	for _, pl := range p.ProfileLevels {
		if pl.Level.Code != "" {
			codes = append(codes, pl.Level.Code)
		}
	}
	return codes
}

type ProfileLevel struct {
	ProfileID uuid.UUID `gorm:"type:uuid;primaryKey" json:"profile_id"`
	LevelID   uint      `gorm:"primaryKey" json:"level_id"`
	Level     Level     `gorm:"foreignKey:LevelID" json:"levels"`
}
