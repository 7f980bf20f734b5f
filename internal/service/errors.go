package service

import "errors"

var (
	ErrNotFound           = errors.New("not found")
	ErrProfileNotFound    = errors.New("profile not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrStorageUnavailable = errors.New("object storage is not configured")
)
