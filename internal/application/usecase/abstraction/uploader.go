package abstraction

import (
	"context"

	"paintrack/internal/domain/entity"
	"paintrack/internal/infrastructure/imageproc"
)

// UploadOptions override the configured transcode defaults for one call.
// Zero fields keep the defaults.
type UploadOptions struct {
	Quality   int
	MaxWidth  int
	MaxHeight int
	Format    imageproc.Format
}

type Uploader interface {
	UploadImage(ctx context.Context, file entity.File, meta entity.UploadMetadata,
		opts UploadOptions) (entity.UploadResult, error)
	UploadResponsiveImages(ctx context.Context, file entity.File, meta entity.UploadMetadata,
		sizes []imageproc.Size) ([]entity.UploadResult, error)
}
