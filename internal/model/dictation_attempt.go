package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const QuestionTypeDictee = "DICTEE"

// DictationAttempt is one corrected submission. Rows are append-only: the
// repository never updates or deletes them.
type DictationAttempt struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID       string    `gorm:"not null;index" json:"user_id"`
	ProfileID    uuid.UUID `gorm:"type:uuid;not null;index:idx_attempt_profile_dictation" json:"profile_id"`
	DictationID  uuid.UUID `gorm:"type:uuid;not null;index:idx_attempt_profile_dictation" json:"dictation_id"`
	QuestionType string    `gorm:"not null;default:'DICTEE'" json:"question_type"`
	QuestionText string    `gorm:"type:text" json:"question_text"`
	UserAnswer   string    `gorm:"type:text" json:"user_answer"`
	IsCorrect    bool      `json:"is_correct"`

	CorrectionTotalErrors       int    `json:"correction_total_errors"`
	CorrectionErrorsSpelling    int    `json:"correction_errors_spelling"`
	CorrectionErrorsGrammar     int    `json:"correction_errors_grammar"`
	CorrectionErrorsConjugation int    `json:"correction_errors_conjugation"`
	CorrectionErrorsPercentage  int    `json:"correction_errors_percentage"`
	CorrectionGreetingMessage   string `gorm:"type:text" json:"correction_greeting_message"`
	CorrectionConclusionMessage string `gorm:"type:text" json:"correction_conclusion_message"`

	CorrectionErrorsBySentenceJSON datatypes.JSON `json:"correction_errors_by_sentence_json"`
	CorrectionFullJSON             datatypes.JSON `json:"correction_full_json"`
	CorrectionOutcome              string         `gorm:"size:16" json:"correction_outcome"`

	CreatedAt time.Time `gorm:"index:idx_attempt_profile_dictation;autoCreateTime" json:"created_at"`
}

func (DictationAttempt) TableName() string {
	return "exercices_attempts"
}

func (a *DictationAttempt) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
