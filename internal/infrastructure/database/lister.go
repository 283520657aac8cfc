package database

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"paintrack/internal/domain/model"
	"paintrack/pkg/logger"
)

type PhotoLister struct {
	db *Database
}

func NewPhotoLister(db *Database) *PhotoLister {
	return &PhotoLister{db: db}
}

// GetByOwner lists the owner's photos, newest first, optionally bounded by
// upload time on either side (inclusive).
func (l *PhotoLister) GetByOwner(ctx context.Context, ownerID string, since, until *time.Time) ([]model.Photo, error) {
	ctx, cancel := context.WithTimeout(ctx, l.db.QueryTimeout)
	defer cancel()

	filter := bson.M{"owner_id": ownerID}

	if since != nil || until != nil {
		uploadedFilter := bson.M{}
		if since != nil {
			uploadedFilter["$gte"] = *since
		}
		if until != nil {
			uploadedFilter["$lte"] = *until
		}
		filter["upload_time"] = uploadedFilter
	}

	opts := options.Find().SetSort(bson.D{{Key: "upload_time", Value: -1}})

	cursor, err := l.db.collection().Find(ctx, filter, opts)
	if err != nil {
		logger.Error("failed to list photos by owner", "owner", ownerID, "err", err)

		return nil, err
	}
	defer cursor.Close(ctx)

	photos := make([]model.Photo, 0)
	if err = cursor.All(ctx, &photos); err != nil {
		logger.Error("failed to decode photos", "owner", ownerID, "err", err)

		return nil, err
	}

	return photos, nil
}
