package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/tsootsoo/dictees/internal/model"
)

type fakeSynthesizer struct {
	failOn string
	texts  []string
}

func (f *fakeSynthesizer) Synthesize(_ context.Context, text string) ([]byte, error) {
	f.texts = append(f.texts, text)
	if text == f.failOn {
		return nil, errBoom
	}
	return []byte("mp3:" + text), nil
}

func TestSynthesizeMissing(t *testing.T) {
	existing := "done.mp3"
	ok := &model.Dictation{ID: uuid.MustParse("00000000-0000-0000-0000-000000000001"), OriginalText: "Le chat dort."}
	broken := &model.Dictation{ID: uuid.MustParse("00000000-0000-0000-0000-000000000002"), OriginalText: "Échec"}
	skipped := &model.Dictation{ID: uuid.New(), OriginalText: "Déjà lue.", AudioFile: &existing}

	repo := newFakeDictationRepo(ok, broken, skipped)
	storage := newFakeStorage()
	synth := &fakeSynthesizer{failOn: "Échec"}
	svc := NewAudioSynthesisService(repo, storage, synth, testConfig())

	results, err := svc.SynthesizeMissing(context.Background(), false)
	if err != nil {
		t.Fatalf("SynthesizeMissing: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("results = %+v, want 2", results)
	}
	if results[0].Err != nil || results[0].Bytes != len("mp3:Le chat dort.") {
		t.Errorf("first result = %+v", results[0])
	}
	if results[1].Err == nil {
		t.Error("second dictation should report its failure")
	}

	name := ok.ID.String() + ".mp3"
	if obj := storage.objects["audio/"+name]; obj.contentType != "audio/mpeg" {
		t.Errorf("audio not uploaded: %+v", storage.objects)
	}
	if repo.audio[ok.ID] != name {
		t.Errorf("audio file not recorded: %v", repo.audio)
	}
	if _, recorded := repo.audio[broken.ID]; recorded {
		t.Error("failed dictation must not get an audio file")
	}
}

func TestSynthesizeMissing_DryRun(t *testing.T) {
	d := &model.Dictation{ID: uuid.New(), OriginalText: "Le chat dort."}
	repo := newFakeDictationRepo(d)
	storage := newFakeStorage()
	synth := &fakeSynthesizer{}

	results, err := NewAudioSynthesisService(repo, storage, synth, testConfig()).SynthesizeMissing(context.Background(), true)
	if err != nil {
		t.Fatalf("SynthesizeMissing: %v", err)
	}
	if len(results) != 1 || results[0].AudioFile != d.ID.String()+".mp3" {
		t.Fatalf("results = %+v", results)
	}
	if len(synth.texts) != 0 || len(storage.objects) != 0 || len(repo.audio) != 0 {
		t.Fatal("dry run must not synthesize or write anything")
	}
}
