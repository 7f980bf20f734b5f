package service

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/rs/zerolog/log"
	"github.com/tsootsoo/dictees/config"
)

// StorageService stores avatars, dictation media and analysis archives in
// S3-compatible buckets.
type StorageService interface {
	Enabled() bool
	EnsureBucket(ctx context.Context, bucket string) error
	Upload(ctx context.Context, bucket, name string, reader io.Reader, size int64, contentType string) (string, error)
	UploadFile(ctx context.Context, bucket, name, localPath, contentType string) (string, error)
	Delete(ctx context.Context, bucket, name string) error
	PresignedURL(ctx context.Context, bucket, name string) (string, error)
	PublicURL(bucket, name string) string
}

type minioStorageService struct {
	client     *minio.Client
	presignTTL time.Duration
}

// NewStorageService connects to MinIO. Without an endpoint it returns a
// storage that reports itself disabled and fails every write.
func NewStorageService(cfg *config.Config) (StorageService, error) {
	if cfg.Storage.Endpoint == "" {
		log.Warn().Msg("STORAGE_ENDPOINT is not set. Media uploads and analysis archives are disabled.")
		return disabledStorage{}, nil
	}
	client, err := minio.New(cfg.Storage.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.Storage.AccessKey, cfg.Storage.SecretKey, ""),
		Secure: cfg.Storage.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage client: %w", err)
	}
	ttl := cfg.Storage.PresignTTL
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &minioStorageService{client: client, presignTTL: ttl}, nil
}

func (s *minioStorageService) Enabled() bool { return true }

func (s *minioStorageService) EnsureBucket(ctx context.Context, bucket string) error {
	exists, err := s.client.BucketExists(ctx, bucket)
	if err != nil {
		return fmt.Errorf("check bucket %s: %w", bucket, err)
	}
	if exists {
		return nil
	}
	if err := s.client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("create bucket %s: %w", bucket, err)
	}
	log.Info().Str("bucket", bucket).Msg("Storage bucket created")
	return nil
}

func (s *minioStorageService) Upload(ctx context.Context, bucket, name string, reader io.Reader, size int64, contentType string) (string, error) {
	_, err := s.client.PutObject(ctx, bucket, name, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("upload %s/%s: %w", bucket, name, err)
	}
	return objectPath(bucket, name), nil
}

func (s *minioStorageService) UploadFile(ctx context.Context, bucket, name, localPath, contentType string) (string, error) {
	_, err := s.client.FPutObject(ctx, bucket, name, localPath, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("upload %s to %s/%s: %w", localPath, bucket, name, err)
	}
	return objectPath(bucket, name), nil
}

func (s *minioStorageService) Delete(ctx context.Context, bucket, name string) error {
	return s.client.RemoveObject(ctx, bucket, name, minio.RemoveObjectOptions{})
}

func (s *minioStorageService) PresignedURL(ctx context.Context, bucket, name string) (string, error) {
	u, err := s.client.PresignedGetObject(ctx, bucket, name, s.presignTTL, url.Values{})
	if err != nil {
		return "", err
	}
	return u.String(), nil
}

func (s *minioStorageService) PublicURL(bucket, name string) string {
	return strings.TrimRight(s.client.EndpointURL().String(), "/") + "/" + objectPath(bucket, name)
}

func objectPath(bucket, name string) string {
	return bucket + "/" + strings.TrimLeft(name, "/")
}

type disabledStorage struct{}

func (disabledStorage) Enabled() bool { return false }

func (disabledStorage) EnsureBucket(context.Context, string) error { return ErrStorageUnavailable }

func (disabledStorage) Upload(context.Context, string, string, io.Reader, int64, string) (string, error) {
	return "", ErrStorageUnavailable
}

func (disabledStorage) UploadFile(context.Context, string, string, string, string) (string, error) {
	return "", ErrStorageUnavailable
}

func (disabledStorage) Delete(context.Context, string, string) error { return ErrStorageUnavailable }

func (disabledStorage) PresignedURL(context.Context, string, string) (string, error) {
	return "", ErrStorageUnavailable
}

func (disabledStorage) PublicURL(string, string) string { return "" }
