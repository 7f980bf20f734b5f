package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/tsootsoo/dictees/config"
	"github.com/tsootsoo/dictees/internal/correction"
	"github.com/tsootsoo/dictees/internal/dto"
	"github.com/tsootsoo/dictees/internal/metrics"
	"github.com/tsootsoo/dictees/internal/model"
	"github.com/tsootsoo/dictees/internal/repository"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SubmissionContext identifies who submits. It is built by the HTTP layer
// from the session and the current-profile cookie.
type SubmissionContext struct {
	UserID    string
	ProfileID uuid.UUID
}

type DictationValidationService interface {
	Validate(ctx context.Context, sc SubmissionContext, req dto.ValidateDictationRequest) (*dto.ValidateDictationResponse, error)
}

type dictationValidationService struct {
	profileRepo    repository.ProfileRepository
	dictationRepo  repository.DictationRepository
	attemptRepo    repository.DictationAttemptRepository
	corrector      *correction.Corrector
	provider       string
	storage        StorageService
	analysesBucket string
	now            func() time.Time
}

func NewDictationValidationService(
	profileRepo repository.ProfileRepository,
	dictationRepo repository.DictationRepository,
	attemptRepo repository.DictationAttemptRepository,
	corrector *correction.Corrector,
	llm LLMService,
	storage StorageService,
	cfg *config.Config,
) DictationValidationService {
	return &dictationValidationService{
		profileRepo:    profileRepo,
		dictationRepo:  dictationRepo,
		attemptRepo:    attemptRepo,
		corrector:      corrector,
		provider:       llm.Name(),
		storage:        storage,
		analysesBucket: cfg.Storage.AnalysesBucket,
		now:            time.Now,
	}
}

// Validate corrects one submission. Once the model produced an analysis it
// is always returned: storing the attempt and archiving the JSON are best
// effort and only logged on failure.
func (s *dictationValidationService) Validate(ctx context.Context, sc SubmissionContext, req dto.ValidateDictationRequest) (*dto.ValidateDictationResponse, error) {
	profile, err := s.profileRepo.FindByIDForUser(ctx, sc.ProfileID, sc.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("load profile: %w", err)
	}

	dictationID, err := uuid.Parse(req.DictationID)
	if err != nil {
		return nil, fmt.Errorf("%w: dictationId is not a valid id", ErrInvalidInput)
	}
	dictation, err := s.dictationRepo.FindByID(ctx, dictationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("dictation %s: %w", dictationID, ErrNotFound)
		}
		return nil, fmt.Errorf("load dictation: %w", err)
	}

	in := s.promptInput(profile, dictation, req)

	start := time.Now()
	res, err := s.corrector.Correct(ctx, in)
	metrics.ModelCallDuration.WithLabelValues(s.provider).Observe(time.Since(start).Seconds())
	if err != nil {
		s.recordFailure(err, sc, dictationID)
		if errors.Is(err, correction.ErrInvalidInput) {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		return nil, err
	}

	metrics.CorrectionOutcomes.WithLabelValues(string(res.Outcome)).Inc()
	if res.Outcome != correction.OutcomeStrict {
		log.Warn().
			Str("profileID", sc.ProfileID.String()).
			Str("dictationID", dictationID.String()).
			Str("outcome", string(res.Outcome)).
			Strs("issues", res.Issues).
			Msg("Validate: model output failed strict validation")
	}

	resp := &dto.ValidateDictationResponse{
		Success:  true,
		Analysis: res.Analysis,
		Outcome:  string(res.Outcome),
	}

	attempt, err := s.newAttempt(sc, dictationID, in, res)
	if err == nil {
		err = s.attemptRepo.Create(ctx, attempt)
	}
	if err != nil {
		metrics.AttemptPersistFailures.Inc()
		log.Error().Err(err).
			Str("profileID", sc.ProfileID.String()).
			Str("dictationID", dictationID.String()).
			Msg("Validate: failed to store attempt, returning analysis anyway")
	} else {
		resp.AttemptID = attempt.ID.String()
	}

	resp.ArchivePath = s.archive(ctx, dictationID, res.Analysis)
	return resp, nil
}

// promptInput prefers the stored dictation text over the client copy and
// completes optional profile hints from the stored profile.
func (s *dictationValidationService) promptInput(profile *model.Profile, dictation *model.Dictation, req dto.ValidateDictationRequest) correction.PromptInput {
	reference := req.OriginalText
	if stored := strings.TrimSpace(dictation.OriginalText); stored != "" {
		if stored != strings.TrimSpace(req.OriginalText) {
			log.Warn().Str("dictationID", dictation.ID.String()).Msg("Validate: submitted reference text differs from stored dictation, using stored text")
		}
		reference = dictation.OriginalText
	}

	in := correction.PromptInput{
		ReferenceText: reference,
		StudentText:   req.StudentText,
		Age:           req.ProfileAge,
		FirstName:     req.ProfileFirstName,
		Description:   req.ProfileDescription,
		LevelCodes:    splitCodes(req.ProfileLevels),
	}
	if in.FirstName == "" {
		in.FirstName = profile.FirstName
	}
	if in.Description == "" && profile.Description != nil {
		in.Description = *profile.Description
	}
	if len(in.LevelCodes) == 0 {
		in.LevelCodes = profile.LevelCodes()
	}
	return in
}

func (s *dictationValidationService) newAttempt(sc SubmissionContext, dictationID uuid.UUID, in correction.PromptInput, res correction.Resolution) (*model.DictationAttempt, error) {
	full, err := json.Marshal(res.Analysis)
	if err != nil {
		return nil, fmt.Errorf("encode analysis: %w", err)
	}
	bySentence, err := json.Marshal(res.Analysis.ErrorsBySentence)
	if err != nil {
		return nil, fmt.Errorf("encode sentence corrections: %w", err)
	}
	stats := res.Analysis.Stats
	return &model.DictationAttempt{
		UserID:                         sc.UserID,
		ProfileID:                      sc.ProfileID,
		DictationID:                    dictationID,
		QuestionType:                   model.QuestionTypeDictee,
		QuestionText:                   in.ReferenceText,
		UserAnswer:                     in.StudentText,
		IsCorrect:                      res.Analysis.IsPerfect(),
		CorrectionTotalErrors:          stats.TotalErrors,
		CorrectionErrorsSpelling:       stats.SpellingErrors,
		CorrectionErrorsGrammar:        stats.GrammarErrors,
		CorrectionErrorsConjugation:    stats.ConjugationErrors,
		CorrectionErrorsPercentage:     stats.CorrectWordsPercentage,
		CorrectionGreetingMessage:      res.Analysis.GeneralMessage,
		CorrectionConclusionMessage:    res.Analysis.PositiveConclusion,
		CorrectionErrorsBySentenceJSON: datatypes.JSON(bySentence),
		CorrectionFullJSON:             datatypes.JSON(full),
		CorrectionOutcome:              string(res.Outcome),
	}, nil
}

// archive stores a pretty-printed copy of the analysis and returns its
// object path, or "" when storage is disabled or the upload failed.
func (s *dictationValidationService) archive(ctx context.Context, dictationID uuid.UUID, analysis correction.Analysis) string {
	if !s.storage.Enabled() {
		return ""
	}
	body, err := json.MarshalIndent(analysis, "", "  ")
	if err != nil {
		log.Warn().Err(err).Msg("Validate: could not encode analysis archive")
		return ""
	}
	name := fmt.Sprintf("dictation_analysis_%s_%d.json", dictationID, s.now().UnixMilli())
	path, err := s.storage.Upload(ctx, s.analysesBucket, name, bytes.NewReader(body), int64(len(body)), "application/json")
	if err != nil {
		log.Warn().Err(err).Str("name", name).Msg("Validate: failed to archive analysis")
		return ""
	}
	return path
}

func (s *dictationValidationService) recordFailure(err error, sc SubmissionContext, dictationID uuid.UUID) {
	outcome := "invalid_input"
	var mie *correction.ModelInvocationError
	var mre *correction.MalformedResponseError
	switch {
	case errors.As(err, &mie):
		outcome = metrics.OutcomeInvocationFailed
	case errors.As(err, &mre):
		outcome = metrics.OutcomeMalformed
	}
	metrics.CorrectionOutcomes.WithLabelValues(outcome).Inc()

	event := log.Error().Err(err)
	if mre != nil {
		event = event.Str("excerpt", mre.Excerpt)
	}
	event.
		Str("profileID", sc.ProfileID.String()).
		Str("dictationID", dictationID.String()).
		Str("provider", s.provider).
		Str("outcome", outcome).
		Msg("Validate: correction failed")
}

func splitCodes(raw string) []string {
	var codes []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			codes = append(codes, p)
		}
	}
	return codes
}
