package storage

import (
	"context"
	"io"
)

type UploadResult struct {
	Key      string
	Location string
	ETag     string
}

// FileUploader is the external image storage collaborator. Image fields are
// stored as opaque object keys; GetPublicURL resolves a key to the URL served
// to clients.
type FileUploader interface {
	Upload(ctx context.Context, key string, contentType string, reader io.Reader) (*UploadResult, error)

	Delete(ctx context.Context, key string) error

	GetPublicURL(key string) string
}

// noopUploader passes object keys through unchanged. Used when no storage
// backend is configured and in tests.
type noopUploader struct{}

func NewNoopUploader() FileUploader {
	return noopUploader{}
}

func (noopUploader) Upload(ctx context.Context, key string, contentType string, reader io.Reader) (*UploadResult, error) {
	return &UploadResult{Key: key, Location: key}, nil
}

func (noopUploader) Delete(ctx context.Context, key string) error {
	return nil
}

func (noopUploader) GetPublicURL(key string) string {
	return key
}
