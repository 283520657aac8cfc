package abstraction

import (
	"context"

	"paintrack/internal/domain/entity"
	"paintrack/internal/domain/model"
)

// Attacher uploads an image and records it as photos of its target.
type Attacher interface {
	Attach(ctx context.Context, file entity.File, meta entity.UploadMetadata, responsive bool,
		opts UploadOptions) ([]model.Photo, error)
}
