package usecase

import (
	"context"
	"errors"

	"paintrack/internal/domain/model"
	"paintrack/internal/domain/repository/database"
	"paintrack/internal/domain/repository/minio"
)

var ErrPhotoNotFound = errors.New("photo not found")

// Getter implements the Getter abstraction for retrieving photo information.
type Getter struct {
	retriever database.Retriever
	stater    minio.Stater
}

func NewGetter(retriever database.Retriever, stater minio.Stater) *Getter {
	return &Getter{
		retriever: retriever,
		stater:    stater,
	}
}

func (g *Getter) GetPhoto(ctx context.Context, path string) (*model.Photo, error) {
	photo, err := g.retriever.GetByPath(ctx, path)
	if err != nil {
		return nil, ErrPhotoNotFound
	}

	return photo, nil
}

// Exists asks the object store directly; it does not consult photo rows.
func (g *Getter) Exists(ctx context.Context, path string) bool {
	return g.stater.Exists(ctx, path)
}
