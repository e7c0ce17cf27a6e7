package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"
)

// ErrNotFound is returned when the requested object does not exist.
var ErrNotFound = errors.New("storage: object not found")

// Storage abstracts the file backend used for resumes, startup images and
// other user uploads.
type Storage interface {
	// Save stores the object at the given key, overwriting any existing one.
	Save(ctx context.Context, key string, reader io.Reader, contentType string) error

	// Open returns a reader for the object.
	Open(ctx context.Context, key string) (io.ReadCloser, error)

	// Delete removes the object. Deleting a missing object is not an error.
	Delete(ctx context.Context, key string) error

	// Exists reports whether the object is present.
	Exists(ctx context.Context, key string) (bool, error)

	// PublicURL returns a URL the client can fetch the object from.
	PublicURL(ctx context.Context, key string) (string, error)

	// SignedURL returns a temporary URL for private objects. Backends
	// without signing fall back to PublicURL.
	SignedURL(ctx context.Context, key string, expiry time.Duration) (string, error)

	// Size returns the object size in bytes.
	Size(ctx context.Context, key string) (int64, error)
}

// Config selects and configures the backend.
type Config struct {
	Type      string // local or s3
	BasePath  string // local: directory for objects
	BaseURL   string // public URL prefix
	Bucket    string
	Region    string
	AccessKey string
	SecretKey string
	Endpoint  string // custom S3 endpoint, empty for AWS
}

// New builds a storage backend from the configuration.
func New(cfg Config) (Storage, error) {
	switch cfg.Type {
	case "", "local":
		return NewLocalStorage(cfg)
	case "s3":
		return NewS3Storage(cfg)
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", cfg.Type)
	}
}

// cleanKey rejects keys that could escape the storage root.
func cleanKey(key string) (string, error) {
	key = strings.TrimPrefix(key, "/")
	if key == "" {
		return "", errors.New("storage: empty key")
	}
	for _, part := range strings.Split(key, "/") {
		if part == "" || part == "." || part == ".." {
			return "", fmt.Errorf("storage: invalid key %q", key)
		}
	}
	return key, nil
}
