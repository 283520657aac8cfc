package database

import (
	"context"

	"paintrack/internal/domain/model"
	"paintrack/pkg/logger"
)

type PhotoWriter struct {
	db *Database
}

func NewPhotoWriter(db *Database) *PhotoWriter {
	return &PhotoWriter{db: db}
}

// Write inserts all photos of one attachment in a single ordered batch.
func (w *PhotoWriter) Write(ctx context.Context, photos []*model.Photo) error {
	if len(photos) == 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, w.db.QueryTimeout)
	defer cancel()

	docs := make([]any, 0, len(photos))
	for _, p := range photos {
		docs = append(docs, p)
	}

	if _, err := w.db.collection().InsertMany(ctx, docs); err != nil {
		logger.Error("failed to write photos", "count", len(photos), "err", err)

		return err
	}

	return nil
}
