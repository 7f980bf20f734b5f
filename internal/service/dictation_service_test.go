package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/tsootsoo/dictees/internal/model"
	"gorm.io/datatypes"
)

func TestGetDictation_PresignsMedia(t *testing.T) {
	audio, picture := "d.mp3", "d.jpg"
	d := &model.Dictation{ID: uuid.New(), OriginalText: "Le chat dort.", AudioFile: &audio, PictureFile: &picture}
	svc := NewDictationService(newFakeDictationRepo(d), &fakeAttemptRepo{}, newFakeProfileRepo(), newFakeStorage(), NewScoreConverterService(), testConfig())

	resp, err := svc.GetDictation(context.Background(), d.ID)
	if err != nil {
		t.Fatalf("GetDictation: %v", err)
	}
	if resp.AudioURL != "https://storage.test/audio/d.mp3?sig=1" || resp.PictureURL != "https://storage.test/images/d.jpg?sig=1" {
		t.Errorf("urls = %q %q", resp.AudioURL, resp.PictureURL)
	}

	if _, err := svc.GetDictation(context.Background(), uuid.New()); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown id: err = %v, want ErrNotFound", err)
	}
}

func TestListAttempts(t *testing.T) {
	profiles := newFakeProfileRepo()
	p := profiles.add(&model.Profile{UserID: "user-1", FirstName: "Léa"})
	dictationID := uuid.New()
	attempts := &fakeAttemptRepo{}
	for i, pct := range []int{62, 100} {
		attempts.created = append(attempts.created, &model.DictationAttempt{
			ID:                         uuid.New(),
			ProfileID:                  p.ID,
			DictationID:                dictationID,
			CorrectionErrorsPercentage: pct,
			CorrectionFullJSON:         datatypes.JSON(`{"message_general":"ok"}`),
			CreatedAt:                  time.Unix(int64(i), 0),
		})
	}
	svc := NewDictationService(newFakeDictationRepo(), attempts, profiles, newFakeStorage(), NewScoreConverterService(), testConfig())

	got, err := svc.ListAttempts(context.Background(), SubmissionContext{UserID: "user-1", ProfileID: p.ID}, dictationID)
	if err != nil {
		t.Fatalf("ListAttempts: %v", err)
	}
	if len(got) != 2 || got[0].Score != 10 || got[0].Band != "perfect" || got[1].Score != 6 || got[1].Band != "medium" {
		t.Fatalf("timeline = %+v", got)
	}
	if string(got[0].Analysis) != `{"message_general":"ok"}` {
		t.Errorf("analysis = %s", got[0].Analysis)
	}

	_, err = svc.ListAttempts(context.Background(), SubmissionContext{UserID: "user-2", ProfileID: p.ID}, dictationID)
	if !errors.Is(err, ErrProfileNotFound) {
		t.Errorf("foreign profile: err = %v", err)
	}
}
