package usecase

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"paintrack/internal/application/usecase/abstraction"
	"paintrack/internal/domain/apperror"
	"paintrack/internal/domain/entity"
	"paintrack/internal/domain/model"
	"paintrack/internal/domain/repository/broker"
	"paintrack/internal/domain/repository/database"
	"paintrack/internal/domain/repository/minio"
	"paintrack/pkg/logger"
)

const (
	EventPhotoUploaded = "photo.uploaded"
	primaryLabel       = "thumbnail"
	msgUploadFailed    = "Failed to upload image"
	msgResponsiveOpts  = "Quality, size and format options cannot be combined with responsive uploads"
)

// PhotoUploadedEvent is published once per attachment.
type PhotoUploadedEvent struct {
	Type         string   `json:"type"`
	AttachmentID string   `json:"attachment_id"`
	OwnerID      string   `json:"owner_id"`
	Category     string   `json:"category"`
	CollectionID string   `json:"collection_id,omitempty"`
	ModelID      string   `json:"model_id,omitempty"`
	PrimaryPath  string   `json:"primary_path"`
	Paths        []string `json:"paths"`
	UploadedAt   int64    `json:"uploaded_at"`
}

// Attacher stores an image, records a photo row per stored object and
// announces the attachment. Later failures undo the earlier steps.
type Attacher struct {
	uploader     abstraction.Uploader
	writer       database.Writer
	dbRemover    database.Remover
	minioRemover minio.Remover
	publisher    broker.Publisher
	now          func() time.Time
}

func NewAttacher(uploader abstraction.Uploader, writer database.Writer, dbRemover database.Remover,
	minioRemover minio.Remover, publisher broker.Publisher,
) *Attacher {
	return &Attacher{
		uploader:     uploader,
		writer:       writer,
		dbRemover:    dbRemover,
		minioRemover: minioRemover,
		publisher:    publisher,
		now:          time.Now,
	}
}

func (a *Attacher) Attach(ctx context.Context, file entity.File, meta entity.UploadMetadata, responsive bool,
	opts abstraction.UploadOptions,
) ([]model.Photo, error) {
	// Responsive sizes and quality come from configuration.
	if responsive && opts != (abstraction.UploadOptions{}) {
		return nil, apperror.Validation(msgResponsiveOpts)
	}

	var results []entity.UploadResult
	if responsive {
		var err error
		results, err = a.uploader.UploadResponsiveImages(ctx, file, meta, nil)
		if err != nil {
			return nil, err
		}
	} else {
		result, err := a.uploader.UploadImage(ctx, file, meta, opts)
		if err != nil {
			return nil, err
		}
		results = []entity.UploadResult{result}
	}

	photos := a.photos(results, meta)
	paths := make([]string, 0, len(photos))
	ptrs := make([]*model.Photo, 0, len(photos))
	for i := range photos {
		paths = append(paths, photos[i].ID)
		ptrs = append(ptrs, &photos[i])
	}

	if err := a.writer.Write(ctx, ptrs); err != nil {
		a.removeObjects(context.WithoutCancel(ctx), paths)

		return nil, apperror.Storage(msgUploadFailed, err)
	}

	if err := a.publish(ctx, photos, paths); err != nil {
		logger.Error("failed to publish photo event", "attachment", photos[0].AttachmentID, "err", err)

		cleanupCtx := context.WithoutCancel(ctx)
		a.removeObjects(cleanupCtx, paths)

		if removeErr := a.dbRemover.RemoveByPath(cleanupCtx, paths...); removeErr != nil {
			logger.Error("failed to remove photos from db after publish failed", "err", removeErr)
		}

		return nil, apperror.Storage(msgUploadFailed, err)
	}

	return photos, nil
}

// photos marks the thumbnail as primary, or the first result when there is
// no thumbnail.
func (a *Attacher) photos(results []entity.UploadResult, meta entity.UploadMetadata) []model.Photo {
	primary := 0
	for i, r := range results {
		if r.Label == primaryLabel {
			primary = i

			break
		}
	}

	req, _ := entity.NewUploadRequest(meta)
	collectionID, modelID := targetIDs(req.Target)
	attachmentID := uuid.NewString()
	uploaded := a.now().UTC()

	photos := make([]model.Photo, 0, len(results))
	for i, r := range results {
		photos = append(photos, model.Photo{
			ID:               r.StoragePath,
			AttachmentID:     attachmentID,
			OwnerID:          req.OwnerID,
			Category:         string(req.Target.Category()),
			CollectionID:     collectionID,
			ModelID:          modelID,
			PublicURL:        r.PublicURL,
			OriginalFilename: r.OriginalFilename,
			MimeType:         r.MimeType,
			Label:            r.Label,
			Dimensions:       model.Dimensions{Width: r.Width, Height: r.Height},
			Size:             r.ByteSize,
			Primary:          i == primary,
			Description:      req.Description,
			Tags:             req.Tags,
			UploadTime:       uploaded,
		})
	}

	return photos
}

func (a *Attacher) publish(ctx context.Context, photos []model.Photo, paths []string) error {
	event := PhotoUploadedEvent{
		Type:         EventPhotoUploaded,
		AttachmentID: photos[0].AttachmentID,
		OwnerID:      photos[0].OwnerID,
		Category:     photos[0].Category,
		CollectionID: photos[0].CollectionID,
		ModelID:      photos[0].ModelID,
		Paths:        paths,
		UploadedAt:   photos[0].UploadTime.Unix(),
	}
	for _, p := range photos {
		if p.Primary {
			event.PrimaryPath = p.ID
		}
	}

	body, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return a.publisher.Publish(ctx, string(body))
}

func (a *Attacher) removeObjects(ctx context.Context, paths []string) {
	for _, p := range paths {
		if err := a.minioRemover.Remove(ctx, p); err != nil {
			logger.Error("failed to remove object after attach failure", "path", p, "err", err)
		}
	}
}

func targetIDs(target entity.Target) (collectionID, modelID string) {
	switch t := target.(type) {
	case entity.CollectionThumbnailTarget:
		return t.CollectionID, ""
	case entity.ModelImageTarget:
		return t.CollectionID, t.ModelID
	default:
		return "", ""
	}
}
