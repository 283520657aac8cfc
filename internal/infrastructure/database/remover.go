package database

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"

	"paintrack/pkg/logger"
)

type PhotoRemover struct {
	db *Database
}

func NewPhotoRemover(db *Database) *PhotoRemover {
	return &PhotoRemover{db: db}
}

func (r *PhotoRemover) RemoveByPath(ctx context.Context, paths ...string) error {
	if len(paths) == 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, r.db.QueryTimeout)
	defer cancel()

	_, err := r.db.collection().DeleteMany(ctx, bson.M{"_id": bson.M{"$in": paths}})
	if err != nil {
		logger.Error("failed to remove photos", "paths", paths, "err", err)

		return err
	}

	return nil
}
