package usecase

import (
	"context"
	"errors"
	"time"

	"paintrack/internal/domain/dto"
	"paintrack/internal/domain/repository/database"
)

// Lister implements the Lister abstraction for retrieving an owner's photos.
type Lister struct {
	lister database.Lister
}

func NewLister(lister database.Lister) *Lister {
	return &Lister{
		lister: lister,
	}
}

// ListPhotos retrieves photos by owner and optional time filters from the database.
func (l *Lister) ListPhotos(ctx context.Context, ownerID string, since,
	until *time.Time,
) ([]dto.PhotoDescriptor, error) {
	photos, err := l.lister.GetByOwner(ctx, ownerID, since, until)
	if err != nil {
		return nil, errors.New("failed to retrieve photos")
	}

	descriptors := make([]dto.PhotoDescriptor, 0, len(photos))
	for i := range photos {
		descriptors = append(descriptors, dto.NewPhotoDescriptor(photos[i]))
	}

	return descriptors, nil
}
