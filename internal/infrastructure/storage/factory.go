package storage

import (
	"context"

	companyapp "github.com/orgdesk/backend/internal/application/company"
	"github.com/orgdesk/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// New builds the object storage selected by cfg.Driver
func New(ctx context.Context, cfg config.StorageConfig, logger *zap.Logger) (companyapp.ObjectStorage, error) {
	if cfg.Driver != "s3" {
		logger.Warn("Using stub object storage; logo uploads are not persisted")
		stub := NewStubObjectStorage()
		if cfg.PresignExpiry > 0 {
			stub.TTL = cfg.PresignExpiry
		}
		return stub, nil
	}
	s, err := NewS3ObjectStorage(ctx, cfg, WithLogger(logger))
	if err != nil {
		return nil, err
	}
	if err := s.EnsureBucket(ctx); err != nil {
		logger.Warn("Could not verify storage bucket", zap.String("bucket", s.Bucket()), zap.Error(err))
	}
	return s, nil
}
