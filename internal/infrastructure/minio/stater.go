package minio

import (
	"context"
	"time"

	"github.com/minio/minio-go/v7"

	"paintrack/internal/infrastructure/metrics"
	"paintrack/pkg/logger"
)

type Stater struct {
	minioClient *minio.Client
	metrics     *metrics.Metrics
	cfg         RemoverConfig
}

func NewStater(minioClient *minio.Client, m *metrics.Metrics, cfg RemoverConfig) *Stater {
	return &Stater{
		minioClient: minioClient,
		metrics:     m,
		cfg:         cfg,
	}
}

// Exists is advisory: any failure, not only "not found", reports false.
func (s *Stater) Exists(ctx context.Context, path string) bool {
	ctx, cancel := context.WithTimeout(ctx, time.Duration(s.cfg.Timeout)*time.Millisecond)
	defer cancel()

	_, err := s.minioClient.StatObject(ctx, s.cfg.Bucket, path, minio.StatObjectOptions{})
	if err == nil {
		s.metrics.RecordStorage("stat", nil)

		return true
	}

	if minio.ToErrorResponse(err).Code == "NoSuchKey" {
		s.metrics.RecordStorage("stat", nil)
		logger.Debug("object does not exist", "path", path)

		return false
	}

	s.metrics.RecordStorage("stat", err)
	logger.Error("failed to check object existence", "path", path, "err", err)

	return false
}
