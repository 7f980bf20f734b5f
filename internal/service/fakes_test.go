package service

import (
	"context"
	"errors"
	"io"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/tsootsoo/dictees/config"
	"github.com/tsootsoo/dictees/internal/correction"
	"github.com/tsootsoo/dictees/internal/model"
	"gorm.io/gorm"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Storage.AvatarsBucket = "avatars"
	cfg.Storage.AudioBucket = "audio"
	cfg.Storage.ImagesBucket = "images"
	cfg.Storage.AnalysesBucket = "analyses"
	return cfg
}

type fakeProfileRepo struct {
	profiles     map[uuid.UUID]*model.Profile
	levels       map[uint]model.Level
	replacedWith []uint
	err          error
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{profiles: map[uuid.UUID]*model.Profile{}, levels: map[uint]model.Level{}}
}

func (r *fakeProfileRepo) add(p *model.Profile) *model.Profile {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.profiles[p.ID] = p
	return p
}

func (r *fakeProfileRepo) Create(_ context.Context, p *model.Profile) error {
	if r.err != nil {
		return r.err
	}
	r.add(p)
	return nil
}

func (r *fakeProfileRepo) Update(_ context.Context, p *model.Profile) error {
	r.profiles[p.ID] = p
	return r.err
}

func (r *fakeProfileRepo) Delete(_ context.Context, id uuid.UUID, userID string) error {
	p, ok := r.profiles[id]
	if !ok || p.UserID != userID {
		return gorm.ErrRecordNotFound
	}
	delete(r.profiles, id)
	return nil
}

func (r *fakeProfileRepo) FindByIDForUser(_ context.Context, id uuid.UUID, userID string) (*model.Profile, error) {
	if r.err != nil {
		return nil, r.err
	}
	p, ok := r.profiles[id]
	if !ok || p.UserID != userID {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *fakeProfileRepo) FindAllByUser(_ context.Context, userID string) ([]model.Profile, error) {
	var out []model.Profile
	for _, p := range r.profiles {
		if p.UserID == userID {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeProfileRepo) FindLatestByUser(ctx context.Context, userID string) (*model.Profile, error) {
	all, _ := r.FindAllByUser(ctx, userID)
	if len(all) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &all[0], nil
}

func (r *fakeProfileRepo) ReplaceLevels(_ context.Context, profileID uuid.UUID, levelIDs []uint) error {
	r.replacedWith = levelIDs
	p := r.profiles[profileID]
	p.ProfileLevels = nil
	for _, id := range levelIDs {
		p.ProfileLevels = append(p.ProfileLevels, model.ProfileLevel{ProfileID: profileID, LevelID: id, Level: r.levels[id]})
	}
	return nil
}

type fakeLevelRepo struct {
	levels []model.Level
}

func (r *fakeLevelRepo) FindAll(context.Context) ([]model.Level, error) {
	return append([]model.Level(nil), r.levels...), nil
}

func (r *fakeLevelRepo) FindByIDs(_ context.Context, ids []uint) ([]model.Level, error) {
	var out []model.Level
	for _, l := range r.levels {
		for _, id := range ids {
			if l.ID == id {
				out = append(out, l)
			}
		}
	}
	return out, nil
}

type fakeDictationRepo struct {
	dictations map[uuid.UUID]*model.Dictation
	audio      map[uuid.UUID]string
}

func newFakeDictationRepo(ds ...*model.Dictation) *fakeDictationRepo {
	r := &fakeDictationRepo{dictations: map[uuid.UUID]*model.Dictation{}, audio: map[uuid.UUID]string{}}
	for _, d := range ds {
		r.dictations[d.ID] = d
	}
	return r
}

func (r *fakeDictationRepo) FindAll(context.Context, []string) ([]model.Dictation, error) {
	var out []model.Dictation
	for _, d := range r.dictations {
		out = append(out, *d)
	}
	return out, nil
}

func (r *fakeDictationRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Dictation, error) {
	d, ok := r.dictations[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return d, nil
}

func (r *fakeDictationRepo) FindWithoutAudio(context.Context) ([]model.Dictation, error) {
	var out []model.Dictation
	for _, d := range r.dictations {
		if d.AudioFile == nil || *d.AudioFile == "" {
			out = append(out, *d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID.String() < out[j].ID.String() })
	return out, nil
}

func (r *fakeDictationRepo) UpdateAudioFile(_ context.Context, id uuid.UUID, audioFile string) error {
	r.audio[id] = audioFile
	return nil
}

type fakeAttemptRepo struct {
	created []*model.DictationAttempt
	err     error
}

func (r *fakeAttemptRepo) Create(_ context.Context, a *model.DictationAttempt) error {
	if r.err != nil {
		return r.err
	}
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	r.created = append(r.created, a)
	return nil
}

func (r *fakeAttemptRepo) FindByProfileAndDictation(_ context.Context, profileID, dictationID uuid.UUID) ([]model.DictationAttempt, error) {
	var out []model.DictationAttempt
	for i := len(r.created) - 1; i >= 0; i-- {
		a := r.created[i]
		if a.ProfileID == profileID && a.DictationID == dictationID {
			out = append(out, *a)
		}
	}
	return out, nil
}

type storedObject struct {
	body        []byte
	contentType string
}

type fakeStorage struct {
	mu        sync.Mutex
	enabled   bool
	objects   map[string]storedObject
	deleted   []string
	buckets   map[string]bool
	uploadErr error
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{enabled: true, objects: map[string]storedObject{}, buckets: map[string]bool{}}
}

func (s *fakeStorage) Enabled() bool { return s.enabled }

func (s *fakeStorage) EnsureBucket(_ context.Context, bucket string) error {
	s.buckets[bucket] = true
	return nil
}

func (s *fakeStorage) Upload(_ context.Context, bucket, name string, r io.Reader, _ int64, contentType string) (string, error) {
	if s.uploadErr != nil {
		return "", s.uploadErr
	}
	body, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[objectPath(bucket, name)] = storedObject{body: body, contentType: contentType}
	return objectPath(bucket, name), nil
}

func (s *fakeStorage) UploadFile(_ context.Context, bucket, name, _ string, contentType string) (string, error) {
	if s.uploadErr != nil {
		return "", s.uploadErr
	}
	s.objects[objectPath(bucket, name)] = storedObject{contentType: contentType}
	return objectPath(bucket, name), nil
}

func (s *fakeStorage) Delete(_ context.Context, bucket, name string) error {
	s.deleted = append(s.deleted, objectPath(bucket, name))
	return nil
}

func (s *fakeStorage) PresignedURL(_ context.Context, bucket, name string) (string, error) {
	return "https://storage.test/" + objectPath(bucket, name) + "?sig=1", nil
}

func (s *fakeStorage) PublicURL(bucket, name string) string {
	return "https://storage.test/" + objectPath(bucket, name)
}

type fakeLLM struct {
	content string
	err     error
	calls   int
	last    correction.Request
}

func (f *fakeLLM) Name() string { return "fake" }

func (f *fakeLLM) Invoke(_ context.Context, req correction.Request) (string, error) {
	f.calls++
	f.last = req
	return f.content, f.err
}

var errBoom = errors.New("boom")
