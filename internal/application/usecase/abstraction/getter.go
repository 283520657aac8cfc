package abstraction

import (
	"context"

	"paintrack/internal/domain/model"
)

// Getter defines the interface for retrieving photo information.
type Getter interface {
	GetPhoto(ctx context.Context, path string) (*model.Photo, error)
	Exists(ctx context.Context, path string) bool
}
