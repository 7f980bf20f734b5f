package service

import (
	"bytes"
	"context"
	"fmt"

	texttospeech "cloud.google.com/go/texttospeech/apiv1"
	"cloud.google.com/go/texttospeech/apiv1/texttospeechpb"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/tsootsoo/dictees/config"
	"github.com/tsootsoo/dictees/internal/repository"
)

// SpeechSynthesizer turns a text into MP3 bytes.
type SpeechSynthesizer interface {
	Synthesize(ctx context.Context, text string) ([]byte, error)
}

type googleSpeechSynthesizer struct {
	client       *texttospeech.Client
	voice        string
	languageCode string
}

// NewGoogleSpeechSynthesizer uses Application Default Credentials
// (GOOGLE_APPLICATION_CREDENTIALS). The caller closes the returned client.
func NewGoogleSpeechSynthesizer(ctx context.Context, cfg *config.Config) (SpeechSynthesizer, *texttospeech.Client, error) {
	client, err := texttospeech.NewClient(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("create text-to-speech client: %w", err)
	}
	return &googleSpeechSynthesizer{
		client:       client,
		voice:        cfg.TTS.Voice,
		languageCode: cfg.TTS.LanguageCode,
	}, client, nil
}

func (g *googleSpeechSynthesizer) Synthesize(ctx context.Context, text string) ([]byte, error) {
	req := &texttospeechpb.SynthesizeSpeechRequest{
		Input: &texttospeechpb.SynthesisInput{
			InputSource: &texttospeechpb.SynthesisInput_Text{Text: text},
		},
		Voice: &texttospeechpb.VoiceSelectionParams{
			LanguageCode: g.languageCode,
			Name:         g.voice,
		},
		AudioConfig: &texttospeechpb.AudioConfig{
			AudioEncoding: texttospeechpb.AudioEncoding_MP3,
			// Slower than conversation so that children can write along.
			SpeakingRate: 0.8,
		},
	}
	resp, err := g.client.SynthesizeSpeech(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("SynthesizeSpeech: %w", err)
	}
	return resp.AudioContent, nil
}

// SynthesisResult reports the outcome for one dictation.
type SynthesisResult struct {
	DictationID uuid.UUID
	AudioFile   string
	Bytes       int
	Err         error
}

// AudioSynthesisService generates the missing dictation recordings.
type AudioSynthesisService interface {
	SynthesizeMissing(ctx context.Context, dryRun bool) ([]SynthesisResult, error)
}

type audioSynthesisService struct {
	dictationRepo repository.DictationRepository
	storage       StorageService
	synthesizer   SpeechSynthesizer
	audioBucket   string
}

func NewAudioSynthesisService(
	dictationRepo repository.DictationRepository,
	storage StorageService,
	synthesizer SpeechSynthesizer,
	cfg *config.Config,
) AudioSynthesisService {
	return &audioSynthesisService{
		dictationRepo: dictationRepo,
		storage:       storage,
		synthesizer:   synthesizer,
		audioBucket:   cfg.Storage.AudioBucket,
	}
}

// SynthesizeMissing processes dictations one by one. A failure on one
// dictation is reported in its result and does not stop the others.
func (s *audioSynthesisService) SynthesizeMissing(ctx context.Context, dryRun bool) ([]SynthesisResult, error) {
	dictations, err := s.dictationRepo.FindWithoutAudio(ctx)
	if err != nil {
		return nil, fmt.Errorf("list dictations without audio: %w", err)
	}
	if len(dictations) == 0 || dryRun {
		results := make([]SynthesisResult, 0, len(dictations))
		for _, d := range dictations {
			results = append(results, SynthesisResult{DictationID: d.ID, AudioFile: audioFileName(d.ID)})
		}
		return results, nil
	}

	if err := s.storage.EnsureBucket(ctx, s.audioBucket); err != nil {
		return nil, err
	}

	results := make([]SynthesisResult, 0, len(dictations))
	for _, d := range dictations {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		res := SynthesisResult{DictationID: d.ID, AudioFile: audioFileName(d.ID)}
		res.Bytes, res.Err = s.synthesizeOne(ctx, d.ID, d.OriginalText, res.AudioFile)
		if res.Err != nil {
			log.Error().Err(res.Err).Str("dictationID", d.ID.String()).Msg("SynthesizeMissing: dictation skipped")
		}
		results = append(results, res)
	}
	return results, nil
}

func (s *audioSynthesisService) synthesizeOne(ctx context.Context, id uuid.UUID, text, name string) (int, error) {
	audio, err := s.synthesizer.Synthesize(ctx, text)
	if err != nil {
		return 0, err
	}
	if _, err := s.storage.Upload(ctx, s.audioBucket, name, bytes.NewReader(audio), int64(len(audio)), "audio/mpeg"); err != nil {
		return 0, err
	}
	if err := s.dictationRepo.UpdateAudioFile(ctx, id, name); err != nil {
		return 0, fmt.Errorf("record audio file: %w", err)
	}
	return len(audio), nil
}

func audioFileName(id uuid.UUID) string {
	return id.String() + ".mp3"
}
