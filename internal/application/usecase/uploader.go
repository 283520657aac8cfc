package usecase

import (
	"context"
	"fmt"
	"runtime/debug"
	"strings"

	"paintrack/internal/application/usecase/abstraction"
	"paintrack/internal/domain/apperror"
	"paintrack/internal/domain/entity"
	"paintrack/internal/domain/objectkey"
	"paintrack/internal/domain/repository/minio"
	"paintrack/internal/infrastructure/imageproc"
	"paintrack/internal/infrastructure/metrics"
	"paintrack/pkg/logger"
	"paintrack/pkg/utils"
)

const msgProcessingFailed = "Failed to process image"

type transcoder interface {
	Transcode(ctx context.Context, buf []byte, opts imageproc.Options) (imageproc.ProcessedImage, error)
}

type variantGenerator interface {
	CreateVariants(ctx context.Context, buf []byte, sizes []imageproc.Size) []imageproc.Variant
}

// UploaderConfig holds the transcode defaults for single uploads and the
// sizes rendered when a responsive caller names none.
type UploaderConfig struct {
	Quality   int
	MaxWidth  int
	MaxHeight int
	Sizes     []imageproc.Size
}

// Uploader runs validation, format negotiation, transcoding and storage for
// one image buffer.
type Uploader struct {
	transcoder    transcoder
	variants      variantGenerator
	minioUploader minio.Uploader
	minioRemover  minio.Remover
	metrics       *metrics.Metrics
	cfg           UploaderConfig
}

func NewUploader(t transcoder, v variantGenerator, minioUploader minio.Uploader, minioRemover minio.Remover,
	m *metrics.Metrics, cfg UploaderConfig,
) *Uploader {
	return &Uploader{
		transcoder:    t,
		variants:      v,
		minioUploader: minioUploader,
		minioRemover:  minioRemover,
		metrics:       m,
		cfg:           cfg,
	}
}

func (u *Uploader) UploadImage(ctx context.Context, file entity.File, meta entity.UploadMetadata,
	opts abstraction.UploadOptions,
) (result entity.UploadResult, err error) {
	defer u.finish(meta.Category, "single", &err)

	req, err := u.prepare(file, meta)
	if err != nil {
		return entity.UploadResult{}, err
	}

	format := opts.Format
	if format == "" {
		format = imageproc.ChooseFormat(file.Buffer)
	}

	processed, err := u.transcoder.Transcode(ctx, file.Buffer, imageproc.Options{
		Quality:   pick(opts.Quality, u.cfg.Quality),
		MaxWidth:  pick(opts.MaxWidth, u.cfg.MaxWidth),
		MaxHeight: pick(opts.MaxHeight, u.cfg.MaxHeight),
		Format:    format,
	})
	if err != nil {
		return entity.UploadResult{}, err
	}

	filename := utils.GenerateFilename(file.OriginalFilename, string(processed.Format))

	return u.store(ctx, req, file, processed, filename, "")
}

// UploadResponsiveImages stores one object per successfully rendered size.
// If any store call fails the objects already written by this call are
// removed, so callers see either every rendered variant or an error.
func (u *Uploader) UploadResponsiveImages(ctx context.Context, file entity.File, meta entity.UploadMetadata,
	sizes []imageproc.Size,
) (results []entity.UploadResult, err error) {
	defer u.finish(meta.Category, "responsive", &err)

	req, err := u.prepare(file, meta)
	if err != nil {
		return nil, err
	}

	if len(sizes) == 0 {
		sizes = u.cfg.Sizes
	}

	variants := u.variants.CreateVariants(ctx, file.Buffer, sizes)
	if len(variants) == 0 {
		return nil, apperror.Processing(msgProcessingFailed, fmt.Errorf("no variants produced for %d sizes", len(sizes)))
	}

	results = make([]entity.UploadResult, 0, len(variants))
	for _, v := range variants {
		filename := utils.GenerateVariantFilename(file.OriginalFilename, v.Label, string(v.Image.Format))

		res, err := u.store(ctx, req, file, v.Image, filename, v.Label)
		if err != nil {
			u.rollback(ctx, results)

			return nil, err
		}
		results = append(results, res)
	}

	return results, nil
}

// prepare rejects a bad request shape or a bad image before any transcode
// or store work starts.
func (u *Uploader) prepare(file entity.File, meta entity.UploadMetadata) (entity.UploadRequest, error) {
	req, err := entity.NewUploadRequest(meta)
	if err != nil {
		return entity.UploadRequest{}, err
	}

	validation := imageproc.Validate(file.Buffer)
	if !validation.Valid {
		return entity.UploadRequest{}, apperror.Validation(validation.Reason)
	}

	return req, nil
}

func (u *Uploader) store(ctx context.Context, req entity.UploadRequest, file entity.File,
	img imageproc.ProcessedImage, filename, label string,
) (entity.UploadResult, error) {
	path, err := objectkey.Build(req.OwnerID, req.Target, filename)
	if err != nil {
		return entity.UploadResult{}, err
	}

	contentType := utils.ContentTypeForFormat(string(img.Format))

	url, err := u.minioUploader.Upload(ctx, img.Buffer, path, contentType, objectMetadata(req, file, label))
	if err != nil {
		return entity.UploadResult{}, err
	}

	return entity.UploadResult{
		PublicURL:        url,
		StoragePath:      path,
		OriginalFilename: file.OriginalFilename,
		ByteSize:         img.ByteSize,
		MimeType:         contentType,
		Width:            img.Width,
		Height:           img.Height,
		Label:            label,
	}, nil
}

// rollback ignores cancellation of ctx: the store failure that triggers it
// is often the cancellation itself.
func (u *Uploader) rollback(ctx context.Context, uploaded []entity.UploadResult) {
	ctx = context.WithoutCancel(ctx)
	for _, r := range uploaded {
		if err := u.minioRemover.Remove(ctx, r.StoragePath); err != nil {
			logger.Error("failed to remove variant after upload failure", "path", r.StoragePath, "err", err)
		}
	}
}

// finish turns panics and untyped errors into a ProcessingError and records
// the outcome.
func (u *Uploader) finish(category, mode string, errp *error) {
	if r := recover(); r != nil {
		logger.Error("panic in upload pipeline", "mode", mode, "panic", fmt.Sprint(r), "stack", string(debug.Stack()))
		*errp = apperror.Processing(msgProcessingFailed, fmt.Errorf("panic: %v", r))
	}

	if *errp != nil && apperror.KindOf(*errp) == 0 {
		logger.Error("unexpected error in upload pipeline", "mode", mode, "err", *errp)
		*errp = apperror.Processing(msgProcessingFailed, *errp)
	}

	outcome := "success"
	if *errp != nil {
		outcome = apperror.KindOf(*errp).String()
	}
	u.metrics.RecordUpload(categoryLabel(category), outcome)
}

func categoryLabel(category string) string {
	switch entity.Category(category) {
	case entity.CategoryAvatar, entity.CategoryCollectionThumbnail, entity.CategoryModelImage:
		return category
	default:
		return "invalid"
	}
}

func objectMetadata(req entity.UploadRequest, file entity.File, label string) map[string]string {
	metadata := map[string]string{
		"ownerId":          req.OwnerID,
		"category":         string(req.Target.Category()),
		"originalFilename": file.OriginalFilename,
		"description":      req.Description,
		"tags":             strings.Join(req.Tags, ","),
	}
	if label != "" {
		metadata["variant"] = label
	}

	return metadata
}

func pick(override, fallback int) int {
	if override > 0 {
		return override
	}

	return fallback
}
