package database

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"

	"paintrack/internal/domain/model"
	"paintrack/pkg/logger"
)

type PhotoRetriever struct {
	db *Database
}

func NewPhotoRetriever(db *Database) *PhotoRetriever {
	return &PhotoRetriever{db: db}
}

// GetByPath returns mongo.ErrNoDocuments when no photo is stored at path.
func (r *PhotoRetriever) GetByPath(ctx context.Context, path string) (*model.Photo, error) {
	ctx, cancel := context.WithTimeout(ctx, r.db.QueryTimeout)
	defer cancel()

	var photo model.Photo
	err := r.db.collection().FindOne(ctx, bson.M{"_id": path}).Decode(&photo)
	if err != nil {
		logger.Debug("failed to retrieve photo by path", "path", path, "err", err)

		return nil, err
	}

	return &photo, nil
}
