package service

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/tsootsoo/dictees/config"
	"github.com/tsootsoo/dictees/internal/dto"
)

const MaxImageSize = 5 * 1024 * 1024

var imageExtensions = map[string]string{
	"image/jpeg": "jpg",
	"image/jpg":  "jpg",
	"image/png":  "png",
}

// ImageUpload is a user supplied picture, typically a profile avatar.
type ImageUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Reader      io.Reader
	Bucket      string
}

type MediaService interface {
	UploadImage(ctx context.Context, in ImageUpload) (*dto.UploadImageResponse, error)
	DeleteImage(ctx context.Context, bucket, filename string) error
}

type mediaService struct {
	storage       StorageService
	avatarsBucket string
	// buckets clients may name; audio and analysis archives are not among them.
	writable map[string]bool
	now      func() time.Time
}

func NewMediaService(storage StorageService, cfg *config.Config) MediaService {
	writable := map[string]bool{}
	for _, b := range []string{cfg.Storage.AvatarsBucket, cfg.Storage.ImagesBucket} {
		if b != "" {
			writable[b] = true
		}
	}
	return &mediaService{storage: storage, avatarsBucket: cfg.Storage.AvatarsBucket, writable: writable, now: time.Now}
}

// UploadImage accepts JPEG and PNG files up to 5 MB and stores them under a
// generated name "profile_<unix ms>_<random>.<ext>".
func (s *mediaService) UploadImage(ctx context.Context, in ImageUpload) (*dto.UploadImageResponse, error) {
	ext, ok := imageExtensions[strings.ToLower(in.ContentType)]
	if !ok {
		return nil, fmt.Errorf("%w: invalid file type, only JPEG and PNG are allowed", ErrInvalidInput)
	}
	if in.Size > MaxImageSize {
		return nil, fmt.Errorf("%w: file too large, maximum size is 5MB", ErrInvalidInput)
	}
	bucket, err := s.bucket(in.Bucket)
	if err != nil {
		return nil, err
	}
	if orig := strings.TrimPrefix(strings.ToLower(filepath.Ext(in.Filename)), "."); orig == "jpeg" || orig == "jpg" || orig == "png" {
		ext = orig
	}
	if !s.storage.Enabled() {
		return nil, ErrStorageUnavailable
	}

	name := fmt.Sprintf("profile_%d_%s.%s", s.now().UnixMilli(), strings.ReplaceAll(uuid.NewString(), "-", "")[:12], ext)
	if _, err := s.storage.Upload(ctx, bucket, name, in.Reader, in.Size, in.ContentType); err != nil {
		return nil, fmt.Errorf("upload image: %w", err)
	}
	log.Info().Str("bucket", bucket).Str("filename", name).Int64("size", in.Size).Msg("Image uploaded")

	return &dto.UploadImageResponse{
		Success:   true,
		Filename:  name,
		PublicURL: s.storage.PublicURL(bucket, name),
	}, nil
}

func (s *mediaService) DeleteImage(ctx context.Context, bucket, filename string) error {
	name := filepath.Base(strings.TrimSpace(filename))
	if name == "" || name == "." || name == "/" {
		return fmt.Errorf("%w: filename is required", ErrInvalidInput)
	}
	target, err := s.bucket(bucket)
	if err != nil {
		return err
	}
	if !s.storage.Enabled() {
		return ErrStorageUnavailable
	}
	if err := s.storage.Delete(ctx, target, name); err != nil {
		return fmt.Errorf("delete image: %w", err)
	}
	return nil
}

func (s *mediaService) bucket(requested string) (string, error) {
	b := strings.TrimSpace(requested)
	if b == "" {
		return s.avatarsBucket, nil
	}
	if !s.writable[b] {
		return "", fmt.Errorf("%w: bucket %q is not allowed", ErrInvalidInput, b)
	}
	return b, nil
}
