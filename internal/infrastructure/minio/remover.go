package minio

import (
	"context"
	"time"

	"github.com/minio/minio-go/v7"

	"paintrack/internal/domain/apperror"
	"paintrack/internal/infrastructure/metrics"
	"paintrack/pkg/logger"
)

type Remover struct {
	minioClient *minio.Client
	metrics     *metrics.Metrics
	cfg         RemoverConfig
}

func NewRemover(minioClient *minio.Client, m *metrics.Metrics, cfg RemoverConfig) *Remover {
	return &Remover{
		minioClient: minioClient,
		metrics:     m,
		cfg:         cfg,
	}
}

// Remove deletes the object at path. Missing objects are not an error.
func (r *Remover) Remove(ctx context.Context, path string) error {
	ctx, cancel := context.WithTimeout(ctx, time.Duration(r.cfg.Timeout)*time.Millisecond)
	defer cancel()

	err := r.minioClient.RemoveObject(ctx, r.cfg.Bucket, path, minio.RemoveObjectOptions{})
	r.metrics.RecordStorage("remove", err)
	if err != nil {
		logger.Error("failed to remove object", "path", path, "err", err)

		return apperror.Storage("Failed to delete image", err)
	}

	return nil
}
