package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Category struct {
	ID   uint   `gorm:"primarykey" json:"id"`
	Name string `gorm:"not null" json:"name"`
	Slug string `gorm:"not null;uniqueIndex" json:"slug"`
}

type Topic struct {
	ID                      uint      `gorm:"primarykey" json:"id"`
	Name                    string    `gorm:"not null" json:"name"`
	Slug                    string    `gorm:"not null;uniqueIndex" json:"slug"`
	RulesExplanationMessage *string   `json:"rules_explanation_message,omitempty"`
	CategoryID              *uint     `json:"category_id,omitempty"`
	Category                *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}

type Dictation struct {
	ID               uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	TopicID          *uint            `json:"topic_id,omitempty"`
	Topic            *Topic           `gorm:"foreignKey:TopicID" json:"topic,omitempty"`
	OriginalText     string           `gorm:"type:text;not null" json:"original_text"`
	CountWords       int              `json:"count_words"`
	AudioFile        *string          `json:"audio_file,omitempty"`
	PictureFile      *string          `json:"picture_file,omitempty"`
	DictationsLevels []DictationLevel `gorm:"foreignKey:DictationID;constraint:OnDelete:CASCADE;" json:"dictations_levels,omitempty"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
}

func (d *Dictation) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

type DictationLevel struct {
	DictationID uuid.UUID `gorm:"type:uuid;primaryKey" json:"dictation_id"`
	LevelID     uint      `gorm:"primaryKey" json:"level_id"`
	Level       Level     `gorm:"foreignKey:LevelID" json:"levels"`
}

func (DictationLevel) TableName() string {
	return "dictations_levels"
}
