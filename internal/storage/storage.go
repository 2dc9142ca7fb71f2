// Package storage persists generated artifacts (payslips) and hands back a
// durable URL for them.
package storage

import (
	"context"
	"fmt"

	"go-payroll/internal/shared/config"
)

//go:generate mockgen -source=storage.go -destination=mock/storage_mock.go -package=mock
type ArtifactStore interface {
	Save(ctx context.Context, name string, data []byte, contentType string) (string, error)
	Delete(ctx context.Context, name string) error
}

// New picks the backend configured in cfg.Driver.
func New(ctx context.Context, cfg config.StorageConfig) (ArtifactStore, error) {
	switch cfg.Driver {
	case config.StorageGCS:
		return NewGCSStore(ctx, cfg.GCSBucket, cfg.CredentialsFile)
	case config.StorageLocal, "":
		return NewLocalStore(cfg.LocalDir, cfg.PublicBaseURL)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}
