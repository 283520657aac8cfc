package minio

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"
	"unicode"

	"github.com/minio/minio-go/v7"

	"paintrack/internal/domain/apperror"
	minioRepository "paintrack/internal/domain/repository/minio"
	"paintrack/internal/infrastructure/metrics"
	"paintrack/pkg/logger"
)

const msgUploadFailed = "Failed to upload image"

type Uploader struct {
	minioClient *minio.Client
	visibility  minioRepository.Visibility
	metrics     *metrics.Metrics
	cfg         UploaderConfig
}

func NewUploader(minioClient *minio.Client, visibility minioRepository.Visibility, m *metrics.Metrics,
	config UploaderConfig,
) *Uploader {
	return &Uploader{
		minioClient: minioClient,
		visibility:  visibility,
		metrics:     m,
		cfg:         config,
	}
}

// Upload writes body to path and makes it publicly readable. If visibility
// cannot be granted the object is removed again and the upload fails.
func (u *Uploader) Upload(ctx context.Context, body []byte, path, contentType string,
	metadata map[string]string,
) (url string, err error) {
	defer func() { u.metrics.RecordStorage("upload", err) }()

	putCtx, cancel := context.WithTimeout(ctx, u.timeout())
	defer cancel()

	_, err = u.minioClient.PutObject(putCtx, u.cfg.Bucket, path, bytes.NewReader(body), int64(len(body)),
		minio.PutObjectOptions{
			ContentType:  contentType,
			UserMetadata: headerSafe(metadata),
		})
	if err != nil {
		logger.Error("failed to upload object", "path", path, "err", err)

		return "", apperror.Storage(msgUploadFailed, fmt.Errorf("put object: %w", err))
	}

	if err := u.visibility.MakePublic(putCtx, u.cfg.Bucket, path); err != nil {
		logger.Error("failed to make object public", "path", path, "err", err)
		u.cleanup(ctx, path)

		return "", apperror.Storage(msgUploadFailed, fmt.Errorf("make public: %w", err))
	}

	return u.PublicURL(path), nil
}

func (u *Uploader) PublicURL(path string) string {
	base := u.cfg.PublicBaseURL
	if base == "" {
		base = u.minioClient.EndpointURL().String()
	}

	return fmt.Sprintf("%s/%s/%s", strings.TrimRight(base, "/"), u.cfg.Bucket, path)
}

func (u *Uploader) timeout() time.Duration {
	return time.Duration(u.cfg.Timeout) * time.Millisecond
}

// cleanup runs with its own deadline and ignores cancellation of ctx, so an
// expired upload deadline or a gone client still gets the object removed.
func (u *Uploader) cleanup(ctx context.Context, path string) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), u.timeout())
	defer cancel()

	err := u.minioClient.RemoveObject(ctx, u.cfg.Bucket, path, minio.RemoveObjectOptions{})
	if err != nil {
		logger.Error("failed to cleanup private object", "path", path, "err", err)
	}
}

// headerSafe escapes values S3 user metadata headers cannot carry verbatim.
func headerSafe(metadata map[string]string) map[string]string {
	out := make(map[string]string, len(metadata))
	for k, v := range metadata {
		if strings.IndexFunc(v, func(r rune) bool { return r > unicode.MaxASCII || !unicode.IsPrint(r) }) >= 0 {
			v = url.QueryEscape(v)
		}
		out[k] = v
	}

	return out
}
