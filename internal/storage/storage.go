// Package storage uploads order files to an external object store and returns their public URL.
package storage

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/localnerve/shopfloor/internal/config"
)

// Store is an external file store
type Store interface {
	// Upload stores data under name and returns a publicly reachable URL
	Upload(ctx context.Context, name, contentType string, data []byte) (string, error)
	// Delete removes name, it is used to undo an upload
	Delete(ctx context.Context, name string) error
	// Ping checks the store is reachable and configured
	Ping(ctx context.Context) error
	// Name identifies the backend in logs and health reports
	Name() string
}

// ErrNotConfigured is returned when the store has no credentials
var ErrNotConfigured = errors.New("storage is not configured")

// UpstreamError is a non-success answer from the storage provider
type UpstreamError struct {
	Step   string
	Status int
	Body   string
	Err    error
}

func (e *UpstreamError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("storage %s failed: %v", e.Step, e.Err)
	}
	return fmt.Sprintf("storage %s failed: status %d: %s", e.Step, e.Status, e.Body)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// New creates the store selected by STORAGE_BACKEND
func New(cfg *config.Config) (Store, error) {
	switch cfg.StorageBackend {
	case config.StorageMinIO:
		return NewMinIO(MinIOOptions{
			Endpoint:  cfg.MinIOEndpoint,
			AccessKey: cfg.MinIOAccessKey,
			SecretKey: cfg.MinIOSecretKey,
			Bucket:    cfg.MinIOBucket,
			PublicURL: cfg.MinIOPublicURL,
		})
	case config.StorageYandex, "":
		if cfg.YandexDiskToken == "" {
			log.Printf("YANDEX_DISK_TOKEN is not set, uploads will fail")
		}
		return NewYandexDisk(YandexDiskOptions{
			BaseURL: cfg.YandexDiskURL,
			Token:   cfg.YandexDiskToken,
			Folder:  cfg.YandexFolder,
			Timeout: cfg.StorageTimeout,
		}), nil
	}
	return nil, fmt.Errorf("unsupported storage backend: %s", cfg.StorageBackend)
}

// Upload runs store.Upload and undoes it with a best-effort Delete when commit fails.
func Upload(ctx context.Context, store Store, name, contentType string, data []byte, commit func(url string) error) (string, error) {
	url, err := store.Upload(ctx, name, contentType, data)
	if err != nil {
		return "", err
	}

	if err := commit(url); err != nil {
		// The request context may already be done, the undo must still run.
		if derr := store.Delete(context.WithoutCancel(ctx), name); derr != nil {
			log.Printf("Failed to remove %s from %s after failed commit: %v", name, store.Name(), derr)
		}
		return "", err
	}

	return url, nil
}
