package database

import (
	"context"
	"time"

	"paintrack/internal/domain/model"
)

// Lister defines the interface for listing photos from the database.
type Lister interface {
	GetByOwner(ctx context.Context, ownerID string, since, until *time.Time) ([]model.Photo, error)
}
