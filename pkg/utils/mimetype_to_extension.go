package utils

import "strings"

// mimeTypeToExtension maps the image MIME types paintrack handles to their
// usual file extensions.
var mimeTypeToExtension = map[string]string{
	"image/bmp":  ".bmp",
	"image/gif":  ".gif",
	"image/jpeg": ".jpg",
	"image/jpg":  ".jpg",
	"image/png":  ".png",
	"image/tiff": ".tif",
	"image/webp": ".webp",
}

// GetExtensionFromMimeType returns a common file extension for a given MIME type.
// If no specific extension is found, it defaults to ".bin".
func GetExtensionFromMimeType(mimeType string) string {
	// Remove parameters if present (e.g., "image/png; charset=binary")
	cleanedMimeType := strings.ToLower(strings.TrimSpace(strings.Split(mimeType, ";")[0]))
	if ext, ok := mimeTypeToExtension[cleanedMimeType]; ok {
		return ext
	}

	return ".bin"
}

// ContentTypeForFormat returns the Content-Type stored with an object encoded
// as format ("jpeg", "png", ...).
func ContentTypeForFormat(format string) string {
	return "image/" + strings.ToLower(format)
}

// CleanMimeType strips parameters and normalises case.
func CleanMimeType(mimeType string) string {
	return strings.ToLower(strings.TrimSpace(strings.Split(mimeType, ";")[0]))
}
