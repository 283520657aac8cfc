package entity

import (
	"strings"
	"unicode"

	"paintrack/internal/domain/apperror"
)

type Category string

const (
	CategoryAvatar              Category = "avatar"
	CategoryCollectionThumbnail Category = "collection-thumbnail"
	CategoryModelImage          Category = "model-image"
)

// Target is the closed set of things an image can be attached to.
type Target interface {
	Category() Category
	target()
}

type AvatarTarget struct{}

type CollectionThumbnailTarget struct {
	CollectionID string
}

type ModelImageTarget struct {
	CollectionID string
	ModelID      string
}

func (AvatarTarget) Category() Category              { return CategoryAvatar }
func (CollectionThumbnailTarget) Category() Category { return CategoryCollectionThumbnail }
func (ModelImageTarget) Category() Category          { return CategoryModelImage }

func (AvatarTarget) target()              {}
func (CollectionThumbnailTarget) target() {}
func (ModelImageTarget) target()          {}

// UploadMetadata is the untyped form the HTTP layer extracts from a request.
type UploadMetadata struct {
	OwnerID      string
	Category     string
	CollectionID string
	ModelID      string
	Description  string
	Tags         []string
}

type UploadRequest struct {
	OwnerID     string
	Target      Target
	Description string
	Tags        []string
}

// NewUploadRequest checks the request shape once; the result is safe to pass
// through the pipeline without further presence checks.
func NewUploadRequest(meta UploadMetadata) (UploadRequest, error) {
	ownerID := strings.TrimSpace(meta.OwnerID)
	if ownerID == "" {
		return UploadRequest{}, apperror.Validation("Owner ID is required")
	}

	collectionID := strings.TrimSpace(meta.CollectionID)
	modelID := strings.TrimSpace(meta.ModelID)

	if !ValidSegment(ownerID) {
		return UploadRequest{}, apperror.Validation("Invalid owner ID")
	}
	if collectionID != "" && !ValidSegment(collectionID) {
		return UploadRequest{}, apperror.Validation("Invalid collection ID")
	}
	if modelID != "" && !ValidSegment(modelID) {
		return UploadRequest{}, apperror.Validation("Invalid model ID")
	}

	var target Target
	switch Category(strings.TrimSpace(meta.Category)) {
	case CategoryAvatar:
		target = AvatarTarget{}
	case CategoryCollectionThumbnail:
		if collectionID == "" {
			return UploadRequest{}, apperror.Validation("Collection ID required for collection thumbnail")
		}
		target = CollectionThumbnailTarget{CollectionID: collectionID}
	case CategoryModelImage:
		if collectionID == "" || modelID == "" {
			return UploadRequest{}, apperror.Validation("Collection ID and Model ID required for model image")
		}
		target = ModelImageTarget{CollectionID: collectionID, ModelID: modelID}
	default:
		return UploadRequest{}, apperror.Validation("Invalid upload type: " + meta.Category)
	}

	tags := make([]string, 0, len(meta.Tags))
	for _, tag := range meta.Tags {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}

	return UploadRequest{
		OwnerID:     ownerID,
		Target:      target,
		Description: strings.TrimSpace(meta.Description),
		Tags:        tags,
	}, nil
}

// ValidSegment reports whether id can stand as a single storage key segment:
// non-empty, not "." or "..", and free of separators and control characters.
func ValidSegment(id string) bool {
	if id == "" || id == "." || id == ".." {
		return false
	}

	return !strings.ContainsFunc(id, func(r rune) bool {
		return r == '/' || r == '\\' || unicode.IsControl(r)
	})
}
