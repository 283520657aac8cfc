package database

import (
	"context"

	"paintrack/internal/domain/model"
)

type Writer interface {
	Write(ctx context.Context, photos []*model.Photo) error
}
