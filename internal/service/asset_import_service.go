package service

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/tsootsoo/dictees/config"
)

const (
	AssetKindAudio  = "audio"
	AssetKindImages = "images"

	pendingAssetsDir  = "files_to_upload"
	uploadedAssetsDir = "files_uploaded"
)

// AssetImportReport summarizes one bulk import.
type AssetImportReport struct {
	Uploaded map[string][]string
	Failures []string
}

func (r AssetImportReport) Count(kind string) int {
	return len(r.Uploaded[kind])
}

// AssetImportService pushes dictation audio and pictures dropped in
// <assets>/files_to_upload/{audio,images} to their buckets, then moves each
// uploaded file to <assets>/files_uploaded.
type AssetImportService interface {
	Pending() (map[string][]string, error)
	Import(ctx context.Context) (*AssetImportReport, error)
}

type assetImportService struct {
	storage StorageService
	root    string
	buckets map[string]string
}

func NewAssetImportService(storage StorageService, cfg *config.Config) AssetImportService {
	return &assetImportService{
		storage: storage,
		root:    cfg.AssetsDir,
		buckets: map[string]string{
			AssetKindAudio:  cfg.Storage.AudioBucket,
			AssetKindImages: cfg.Storage.ImagesBucket,
		},
	}
}

func (s *assetImportService) kinds() []string {
	return []string{AssetKindAudio, AssetKindImages}
}

// Pending lists the file names waiting in each folder. Missing folders are
// reported as empty.
func (s *assetImportService) Pending() (map[string][]string, error) {
	out := make(map[string][]string, 2)
	for _, kind := range s.kinds() {
		names, err := listFiles(filepath.Join(s.root, pendingAssetsDir, kind))
		if err != nil {
			return nil, err
		}
		out[kind] = names
	}
	return out, nil
}

func (s *assetImportService) Import(ctx context.Context) (*AssetImportReport, error) {
	if !s.storage.Enabled() {
		return nil, ErrStorageUnavailable
	}
	pending, err := s.Pending()
	if err != nil {
		return nil, err
	}

	report := &AssetImportReport{Uploaded: make(map[string][]string, 2)}
	for _, kind := range s.kinds() {
		names := pending[kind]
		if len(names) == 0 {
			continue
		}
		bucket := s.buckets[kind]
		if err := s.storage.EnsureBucket(ctx, bucket); err != nil {
			report.Failures = append(report.Failures, fmt.Sprintf("%s: %v", kind, err))
			continue
		}

		doneDir := filepath.Join(s.root, uploadedAssetsDir, kind)
		if err := os.MkdirAll(doneDir, 0o755); err != nil {
			return nil, fmt.Errorf("create %s: %w", doneDir, err)
		}

		for _, name := range names {
			if err := ctx.Err(); err != nil {
				return report, err
			}
			src := filepath.Join(s.root, pendingAssetsDir, kind, name)
			if _, err := s.storage.UploadFile(ctx, bucket, name, src, contentTypeFor(name)); err != nil {
				log.Error().Err(err).Str("file", src).Msg("Import: upload failed")
				report.Failures = append(report.Failures, fmt.Sprintf("%s/%s: %v", kind, name, err))
				continue
			}
			if err := os.Rename(src, filepath.Join(doneDir, name)); err != nil {
				log.Warn().Err(err).Str("file", src).Msg("Import: uploaded but could not move file")
				report.Failures = append(report.Failures, fmt.Sprintf("%s/%s: uploaded but not moved: %v", kind, name, err))
			}
			report.Uploaded[kind] = append(report.Uploaded[kind], name)
		}
	}

	log.Info().
		Int("audio", report.Count(AssetKindAudio)).
		Int("images", report.Count(AssetKindImages)).
		Int("failures", len(report.Failures)).
		Msg("Asset import finished")
	return report, nil
}

func listFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("read %s: %w", dir, err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}

func contentTypeFor(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".mp3":
		return "audio/mpeg"
	case ".wav":
		return "audio/wav"
	case ".ogg":
		return "audio/ogg"
	case ".m4a":
		return "audio/mp4"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".webp":
		return "image/webp"
	}
	if ct := mime.TypeByExtension(filepath.Ext(name)); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
