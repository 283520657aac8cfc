// Package objectkey derives object store keys for uploaded images.
package objectkey

import (
	"fmt"
	"strings"

	"paintrack/internal/domain/apperror"
	"paintrack/internal/domain/entity"
)

// Build returns the key for filename under the owner's prefix. Missing ids
// are a wiring error on the caller's side, not a client mistake.
func Build(ownerID string, target entity.Target, filename string) (string, error) {
	if ownerID == "" {
		return "", apperror.Configuration("Owner ID required for storage path")
	}
	if filename == "" {
		return "", apperror.Configuration("Filename required for storage path")
	}
	if !entity.ValidSegment(ownerID) || !entity.ValidSegment(filename) {
		return "", apperror.Configuration("Invalid storage path segment")
	}

	switch t := target.(type) {
	case entity.AvatarTarget:
		return fmt.Sprintf("users/%s/avatar/%s", ownerID, filename), nil

	case entity.CollectionThumbnailTarget:
		if t.CollectionID == "" {
			return "", apperror.Configuration("Collection ID required for collection thumbnail")
		}

		if !entity.ValidSegment(t.CollectionID) {
			return "", apperror.Configuration("Invalid storage path segment")
		}

		return fmt.Sprintf("users/%s/collections/%s/thumbnail/%s", ownerID, t.CollectionID, filename), nil

	case entity.ModelImageTarget:
		if t.CollectionID == "" || t.ModelID == "" {
			return "", apperror.Configuration("Collection ID and Model ID required for model image")
		}

		if !entity.ValidSegment(t.CollectionID) || !entity.ValidSegment(t.ModelID) {
			return "", apperror.Configuration("Invalid storage path segment")
		}

		return fmt.Sprintf("users/%s/collections/%s/models/%s/%s", ownerID, t.CollectionID, t.ModelID, filename), nil

	default:
		return "", apperror.Configuration("Invalid upload type")
	}
}

// OwnerPrefix is the prefix every key owned by ownerID starts with.
func OwnerPrefix(ownerID string) string {
	return "users/" + ownerID + "/"
}

// OwnedBy reports whether key lives under ownerID's prefix. Keys with empty,
// "." or ".." segments never match.
func OwnedBy(key, ownerID string) bool {
	if ownerID == "" || strings.Contains(ownerID, "/") {
		return false
	}
	if !strings.HasPrefix(key, OwnerPrefix(ownerID)) {
		return false
	}

	for _, segment := range strings.Split(key, "/") {
		if segment == "" || segment == "." || segment == ".." {
			return false
		}
	}

	return true
}
