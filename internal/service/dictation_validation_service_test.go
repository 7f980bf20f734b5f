package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/tsootsoo/dictees/internal/correction"
	"github.com/tsootsoo/dictees/internal/dto"
	"github.com/tsootsoo/dictees/internal/model"
)

const strictAnalysis = `{
  "stats": {"total_fautes": 1, "fautes_orthographe": 1, "fautes_grammaire": 0, "fautes_conjugaison": 0, "pourcentage_mots_bien_orthographies": 83},
  "message_general": "Très bien Léa !",
  "fautes": [{"sentence_order_number": 1, "texte_eleve": "Le **chas** dort.", "correction": "Le *chat* dort.", "explication": "Chat prend un t.", "regle": "**-at** au singulier."}],
  "conclusion_positive": "Bravo !"
}`

type validationFixture struct {
	svc       *dictationValidationService
	llm       *fakeLLM
	profiles  *fakeProfileRepo
	attempts  *fakeAttemptRepo
	storage   *fakeStorage
	sc        SubmissionContext
	dictation *model.Dictation
}

func newValidationFixture(t *testing.T, content string) *validationFixture {
	t.Helper()
	desc := "Adore les chats"
	profiles := newFakeProfileRepo()
	profile := profiles.add(&model.Profile{
		UserID:      "user-1",
		FirstName:   "Léa",
		Description: &desc,
		ProfileLevels: []model.ProfileLevel{
			{LevelID: 2, Level: model.Level{ID: 2, Code: "CE1", Rank: 2}},
		},
	})
	dictation := &model.Dictation{ID: uuid.New(), OriginalText: "Le chat dort."}

	llm := &fakeLLM{content: content}
	attempts := &fakeAttemptRepo{}
	storage := newFakeStorage()
	svc := NewDictationValidationService(
		profiles,
		newFakeDictationRepo(dictation),
		attempts,
		correction.NewCorrector(llm, 0),
		llm,
		storage,
		testConfig(),
	).(*dictationValidationService)
	svc.now = func() time.Time { return time.UnixMilli(1700000000000) }

	return &validationFixture{
		svc:       svc,
		llm:       llm,
		profiles:  profiles,
		attempts:  attempts,
		storage:   storage,
		sc:        SubmissionContext{UserID: "user-1", ProfileID: profile.ID},
		dictation: dictation,
	}
}

func (f *validationFixture) request() dto.ValidateDictationRequest {
	return dto.ValidateDictationRequest{
		DictationID:  f.dictation.ID.String(),
		StudentText:  "Le chas dort.",
		OriginalText: "Le chat dort.",
		ProfileAge:   8,
	}
}

func TestValidate_StrictAnalysisIsStoredAndArchived(t *testing.T) {
	f := newValidationFixture(t, strictAnalysis)

	resp, err := f.svc.Validate(context.Background(), f.sc, f.request())
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if !resp.Success || resp.Outcome != string(correction.OutcomeStrict) {
		t.Fatalf("unexpected response %+v", resp)
	}
	if resp.Analysis.Stats.CorrectWordsPercentage != 83 {
		t.Errorf("percentage = %d", resp.Analysis.Stats.CorrectWordsPercentage)
	}

	if len(f.attempts.created) != 1 {
		t.Fatalf("stored %d attempts, want 1", len(f.attempts.created))
	}
	a := f.attempts.created[0]
	if resp.AttemptID != a.ID.String() {
		t.Errorf("attempt id %q not returned", a.ID)
	}
	if a.UserID != "user-1" || a.ProfileID != f.sc.ProfileID || a.DictationID != f.dictation.ID {
		t.Errorf("attempt keys = %+v", a)
	}
	if a.QuestionType != model.QuestionTypeDictee || a.IsCorrect {
		t.Errorf("question type %q, is_correct %v", a.QuestionType, a.IsCorrect)
	}
	if a.QuestionText != "Le chat dort." || a.UserAnswer != "Le chas dort." {
		t.Errorf("texts = %q / %q", a.QuestionText, a.UserAnswer)
	}
	if a.CorrectionTotalErrors != 1 || a.CorrectionErrorsPercentage != 83 || a.CorrectionGreetingMessage != "Très bien Léa !" {
		t.Errorf("structured columns = %+v", a)
	}
	var replay correction.Analysis
	if err := json.Unmarshal(a.CorrectionFullJSON, &replay); err != nil {
		t.Fatalf("full json: %v", err)
	}
	if replay.ErrorsBySentence[0].Rule != "**-at** au singulier." {
		t.Errorf("full json does not replay the analysis: %+v", replay)
	}

	wantPath := "analyses/dictation_analysis_" + f.dictation.ID.String() + "_1700000000000.json"
	if resp.ArchivePath != wantPath {
		t.Errorf("archive path = %q, want %q", resp.ArchivePath, wantPath)
	}
	if obj, ok := f.storage.objects[wantPath]; !ok || obj.contentType != "application/json" {
		t.Errorf("archive not uploaded: %+v", f.storage.objects)
	}
}

// TestValidate_PromptUsesStoredProfile checks that missing hints come from the stored profile.
func TestValidate_PromptUsesStoredProfile(t *testing.T) {
	f := newValidationFixture(t, strictAnalysis)
	req := f.request()
	req.OriginalText = "Texte modifié par le client."

	if _, err := f.svc.Validate(context.Background(), f.sc, req); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	sys := f.llm.last.System
	for _, want := range []string{"- Prénom : Léa", "- Niveaux : CE1", "- Présentation : Adore les chats", "# Dictée correcte\nLe chat dort."} {
		if !strings.Contains(sys, want) {
			t.Errorf("prompt is missing %q", want)
		}
	}
	if strings.Contains(sys, "Texte modifié") {
		t.Error("client reference text should be replaced by the stored dictation")
	}
}

func TestValidate_PersistenceFailureStillReturnsAnalysis(t *testing.T) {
	f := newValidationFixture(t, strictAnalysis)
	f.attempts.err = errBoom
	f.storage.uploadErr = errBoom

	resp, err := f.svc.Validate(context.Background(), f.sc, f.request())
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if !resp.Success || resp.Analysis.Stats.TotalErrors != 1 {
		t.Fatalf("analysis lost: %+v", resp)
	}
	if resp.AttemptID != "" || resp.ArchivePath != "" {
		t.Errorf("failed side effects should leave ids empty, got %q %q", resp.AttemptID, resp.ArchivePath)
	}
}

func TestValidate_EmptyObjectStoresDefault(t *testing.T) {
	f := newValidationFixture(t, `{}`)

	resp, err := f.svc.Validate(context.Background(), f.sc, f.request())
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if resp.Analysis.Stats.CorrectWordsPercentage != 100 || resp.Analysis.GeneralMessage != correction.DefaultGeneralMessage {
		t.Fatalf("expected default analysis, got %+v", resp.Analysis)
	}
	if len(f.attempts.created) != 1 || !f.attempts.created[0].IsCorrect {
		t.Fatal("default analysis should be stored as a correct attempt")
	}
}

func TestValidate_MalformedResponseRecordsNothing(t *testing.T) {
	f := newValidationFixture(t, "not json")

	_, err := f.svc.Validate(context.Background(), f.sc, f.request())
	var mre *correction.MalformedResponseError
	if !errors.As(err, &mre) {
		t.Fatalf("error = %v, want MalformedResponseError", err)
	}
	if len(f.attempts.created) != 0 || len(f.storage.objects) != 0 {
		t.Fatal("nothing may be stored for a malformed response")
	}
}

func TestValidate_InvocationFailure(t *testing.T) {
	f := newValidationFixture(t, "")
	f.llm.err = errBoom

	_, err := f.svc.Validate(context.Background(), f.sc, f.request())
	var mie *correction.ModelInvocationError
	if !errors.As(err, &mie) {
		t.Fatalf("error = %v, want ModelInvocationError", err)
	}
	if len(f.attempts.created) != 0 {
		t.Fatal("no attempt may be stored when the model call fails")
	}
}

func TestValidate_ProfileOfAnotherAccount(t *testing.T) {
	f := newValidationFixture(t, strictAnalysis)
	f.sc.UserID = "someone-else"

	_, err := f.svc.Validate(context.Background(), f.sc, f.request())
	if !errors.Is(err, ErrProfileNotFound) {
		t.Fatalf("error = %v, want ErrProfileNotFound", err)
	}
	if f.llm.calls != 0 {
		t.Fatal("model must not be called for a foreign profile")
	}
}

func TestValidate_UnknownDictation(t *testing.T) {
	f := newValidationFixture(t, strictAnalysis)

	req := f.request()
	req.DictationID = uuid.NewString()
	if _, err := f.svc.Validate(context.Background(), f.sc, req); !errors.Is(err, ErrNotFound) {
		t.Fatalf("error = %v, want ErrNotFound", err)
	}

	req.DictationID = "not-an-id"
	if _, err := f.svc.Validate(context.Background(), f.sc, req); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("error = %v, want ErrInvalidInput", err)
	}
}
