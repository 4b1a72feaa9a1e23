package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"
)

// ErrAlreadyExists is returned by Save when the key is taken. Writes are
// non-overwriting: blob keys are generated per upload and never reused.
var ErrAlreadyExists = errors.New("storage: object already exists")

// Storage defines the interface for blob storage operations.
type Storage interface {
	// Save stores a blob at the given key. Fails with ErrAlreadyExists
	// if the key is taken.
	Save(ctx context.Context, path string, reader io.Reader, contentType string) error

	// Get retrieves a blob by key.
	Get(ctx context.Context, path string) (io.ReadCloser, error)

	// Delete removes a blob by key.
	Delete(ctx context.Context, path string) error

	// Exists checks if a blob exists at the given key.
	Exists(ctx context.Context, path string) (bool, error)

	// GetSignedURL returns a time-limited download URL for a blob.
	GetSignedURL(ctx context.Context, path string, expiry time.Duration) (string, error)

	// GetSize returns the size of a blob in bytes.
	GetSize(ctx context.Context, path string) (int64, error)
}

// Config holds storage configuration.
type Config struct {
	Type      string // local, s3
	BasePath  string // for local storage
	BaseURL   string // public URL base (local)
	Bucket    string // for S3
	Region    string // for S3
	AccessKey string // for S3
	SecretKey string // for S3
	Endpoint  string // for S3-compatible stores
}

// NewStorage creates a storage instance based on configuration.
func NewStorage(cfg Config) (Storage, error) {
	switch cfg.Type {
	case "local":
		return NewLocalStorage(cfg)
	case "s3":
		return NewS3Storage(cfg)
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", cfg.Type)
	}
}
