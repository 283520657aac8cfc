package abstraction

import (
	"context"
	"time"

	"paintrack/internal/domain/dto"
)

type Lister interface {
	ListPhotos(ctx context.Context, ownerID string, since, until *time.Time) ([]dto.PhotoDescriptor, error)
}
