package usecase

import (
	"context"

	"paintrack/internal/domain/apperror"
	"paintrack/internal/domain/objectkey"
	"paintrack/internal/domain/repository/database"
	"paintrack/internal/domain/repository/minio"
	"paintrack/pkg/logger"
)

// Deleter implements the Deleter abstraction. The ownership gate runs
// before the object store is touched.
type Deleter struct {
	dbRemover    database.Remover
	minioRemover minio.Remover
}

func NewDeleter(dbRemover database.Remover, minioRemover minio.Remover) *Deleter {
	return &Deleter{
		dbRemover:    dbRemover,
		minioRemover: minioRemover,
	}
}

// DeleteImage removes the object at path and its photo row. Only paths under
// users/{callerID}/ are accepted, whether or not they exist.
func (d *Deleter) DeleteImage(ctx context.Context, callerID, path string) error {
	if !objectkey.OwnedBy(path, callerID) {
		logger.Warn("rejected delete outside caller prefix", "caller", callerID, "path", path)

		return apperror.Forbidden("You can only delete your own images")
	}

	if err := d.minioRemover.Remove(ctx, path); err != nil {
		return err
	}

	if err := d.dbRemover.RemoveByPath(ctx, path); err != nil {
		return apperror.Storage("Failed to delete image", err)
	}

	return nil
}
