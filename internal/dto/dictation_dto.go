package dto

import (
	"encoding/json"
	"time"

	"github.com/tsootsoo/dictees/internal/correction"
)

type CategoryResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type TopicResponse struct {
	ID                      uint              `json:"id"`
	Name                    string            `json:"name"`
	Slug                    string            `json:"slug"`
	RulesExplanationMessage *string           `json:"rules_explanation_message,omitempty"`
	Category                *CategoryResponse `json:"category,omitempty"`
}

type DictationResponse struct {
	ID           string          `json:"id"`
	OriginalText string          `json:"original_text"`
	CountWords   int             `json:"count_words"`
	AudioFile    *string         `json:"audio_file,omitempty"`
	PictureFile  *string         `json:"picture_file,omitempty"`
	AudioURL     string          `json:"audio_url,omitempty"`
	PictureURL   string          `json:"picture_url,omitempty"`
	Topic        *TopicResponse  `json:"topic,omitempty"`
	Levels       []LevelResponse `json:"levels"`
	CreatedAt    time.Time       `json:"created_at"`
}

// ValidateDictationRequest is the body of a correction submission. The
// profile fields are hints; stored profile data fills whatever is missing.
type ValidateDictationRequest struct {
	DictationID        string `json:"dictationId" binding:"required"`
	StudentText        string `json:"studentText" binding:"required"`
	OriginalText       string `json:"originalText" binding:"required"`
	ProfileAge         int    `json:"profileAge" binding:"required"`
	ProfileFirstName   string `json:"profileFirstName"`
	ProfileDescription string `json:"profileDescription"`
	ProfileLevels      string `json:"profileLevels"`
}

type ValidateDictationResponse struct {
	Success     bool                `json:"success"`
	Analysis    correction.Analysis `json:"analysis"`
	Outcome     string              `json:"outcome"`
	AttemptID   string              `json:"attemptId,omitempty"`
	ArchivePath string              `json:"archivePath,omitempty"`
}

// AttemptSummary is one entry of a profile's timeline on a dictation.
type AttemptSummary struct {
	ID                     string          `json:"id"`
	UserAnswer             string          `json:"user_answer"`
	TotalErrors            int             `json:"correction_total_errors"`
	SpellingErrors         int             `json:"correction_errors_spelling"`
	GrammarErrors          int             `json:"correction_errors_grammar"`
	ConjugationErrors      int             `json:"correction_errors_conjugation"`
	CorrectWordsPercentage int             `json:"correction_errors_percentage"`
	Score                  int             `json:"score"`
	Band                   string          `json:"band"`
	Analysis               json.RawMessage `json:"correction_full_json,omitempty"`
	CreatedAt              time.Time       `json:"created_at"`
}
