package database

import (
	"context"

	"paintrack/internal/domain/model"
)

type Retriever interface {
	GetByPath(ctx context.Context, path string) (*model.Photo, error)
}
