package utils

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

const fallbackBaseName = "image"

var (
	now          = time.Now
	randomSuffix = func() string {
		return strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	}
)

// GenerateFilename builds {base}_{unixMillis}_{random}.{format} where base is
// the original name without extension, lower-cased, with every character
// outside [a-z0-9] replaced by '_'.
func GenerateFilename(originalFilename, format string) string {
	return fmt.Sprintf("%s_%d_%s.%s",
		SanitizeBaseName(originalFilename), now().UnixMilli(), randomSuffix(), strings.ToLower(format))
}

// GenerateVariantFilename is GenerateFilename with the variant label placed
// after the base name: {base}_{label}_{unixMillis}_{random}.{format}.
func GenerateVariantFilename(originalFilename, label, format string) string {
	return fmt.Sprintf("%s_%s_%d_%s.%s",
		SanitizeBaseName(originalFilename), SanitizeBaseName(label), now().UnixMilli(), randomSuffix(),
		strings.ToLower(format))
}

func SanitizeBaseName(originalFilename string) string {
	base := filepath.Base(strings.ReplaceAll(originalFilename, "\\", "/"))
	base = strings.TrimSuffix(base, filepath.Ext(base))
	base = strings.ToLower(base)

	var b strings.Builder
	for _, r := range base {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}

	if strings.Trim(b.String(), "_") == "" {
		return fallbackBaseName
	}

	return b.String()
}
