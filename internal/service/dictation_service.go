package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/tsootsoo/dictees/config"
	"github.com/tsootsoo/dictees/internal/dto"
	"github.com/tsootsoo/dictees/internal/model"
	"github.com/tsootsoo/dictees/internal/repository"
	"gorm.io/gorm"
)

type DictationService interface {
	ListDictations(ctx context.Context, levelCodes []string) ([]dto.DictationResponse, error)
	GetDictation(ctx context.Context, id uuid.UUID) (*dto.DictationResponse, error)
	ListAttempts(ctx context.Context, sc SubmissionContext, dictationID uuid.UUID) ([]dto.AttemptSummary, error)
}

type dictationService struct {
	dictationRepo  repository.DictationRepository
	attemptRepo    repository.DictationAttemptRepository
	profileRepo    repository.ProfileRepository
	storage        StorageService
	scoreConverter ScoreConverterService
	audioBucket    string
	imagesBucket   string
}

func NewDictationService(
	dictationRepo repository.DictationRepository,
	attemptRepo repository.DictationAttemptRepository,
	profileRepo repository.ProfileRepository,
	storage StorageService,
	scoreConverter ScoreConverterService,
	cfg *config.Config,
) DictationService {
	return &dictationService{
		dictationRepo:  dictationRepo,
		attemptRepo:    attemptRepo,
		profileRepo:    profileRepo,
		storage:        storage,
		scoreConverter: scoreConverter,
		audioBucket:    cfg.Storage.AudioBucket,
		imagesBucket:   cfg.Storage.ImagesBucket,
	}
}

func (s *dictationService) ListDictations(ctx context.Context, levelCodes []string) ([]dto.DictationResponse, error) {
	dictations, err := s.dictationRepo.FindAll(ctx, levelCodes)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.DictationResponse, 0, len(dictations))
	for i := range dictations {
		resp = append(resp, s.withMediaURLs(ctx, &dictations[i]))
	}
	return resp, nil
}

func (s *dictationService) GetDictation(ctx context.Context, id uuid.UUID) (*dto.DictationResponse, error) {
	dictation, err := s.dictationRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("dictation %s: %w", id, ErrNotFound)
		}
		return nil, err
	}
	resp := s.withMediaURLs(ctx, dictation)
	return &resp, nil
}

// ListAttempts returns the timeline of the current profile on one dictation,
// newest first, each attempt marked out of ten.
func (s *dictationService) ListAttempts(ctx context.Context, sc SubmissionContext, dictationID uuid.UUID) ([]dto.AttemptSummary, error) {
	if _, err := s.profileRepo.FindByIDForUser(ctx, sc.ProfileID, sc.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}

	attempts, err := s.attemptRepo.FindByProfileAndDictation(ctx, sc.ProfileID, dictationID)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.AttemptSummary, 0, len(attempts))
	for _, a := range attempts {
		resp = append(resp, s.toAttemptSummary(a))
	}
	return resp, nil
}

func (s *dictationService) toAttemptSummary(a model.DictationAttempt) dto.AttemptSummary {
	score, err := s.scoreConverter.ConvertToTenScale(a.CorrectionErrorsPercentage)
	if err != nil {
		log.Warn().Err(err).Str("attemptID", a.ID.String()).Msg("ListAttempts: stored percentage out of range")
	}
	summary := dto.AttemptSummary{
		ID:                     a.ID.String(),
		UserAnswer:             a.UserAnswer,
		TotalErrors:            a.CorrectionTotalErrors,
		SpellingErrors:         a.CorrectionErrorsSpelling,
		GrammarErrors:          a.CorrectionErrorsGrammar,
		ConjugationErrors:      a.CorrectionErrorsConjugation,
		CorrectWordsPercentage: a.CorrectionErrorsPercentage,
		Score:                  score,
		Band:                   s.scoreConverter.Band(score),
		CreatedAt:              a.CreatedAt,
	}
	if len(a.CorrectionFullJSON) > 0 {
		summary.Analysis = json.RawMessage(a.CorrectionFullJSON)
	}
	return summary
}

func (s *dictationService) withMediaURLs(ctx context.Context, d *model.Dictation) dto.DictationResponse {
	resp := toDictationResponse(d)
	if !s.storage.Enabled() {
		return resp
	}
	if d.AudioFile != nil && *d.AudioFile != "" {
		if u, err := s.storage.PresignedURL(ctx, s.audioBucket, *d.AudioFile); err == nil {
			resp.AudioURL = u
		} else {
			log.Warn().Err(err).Str("dictationID", d.ID.String()).Msg("Could not presign audio file")
		}
	}
	if d.PictureFile != nil && *d.PictureFile != "" {
		if u, err := s.storage.PresignedURL(ctx, s.imagesBucket, *d.PictureFile); err == nil {
			resp.PictureURL = u
		} else {
			log.Warn().Err(err).Str("dictationID", d.ID.String()).Msg("Could not presign picture file")
		}
	}
	return resp
}
