package middleware

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"sort"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/labstack/echo/v4"

	"paintrack/internal/domain/entity"
	"paintrack/internal/presentation"
	"paintrack/pkg/logger"
	"paintrack/pkg/utils"
)

type GuardConfig struct {
	MaxFileSizeMB    int64    `yaml:"max_file_size_mb"`
	MaxFiles         int      `yaml:"max_files"`
	AllowedMimeTypes []string `yaml:"allowed_mime_types"`
}

// UploadGuard enforces the multipart limits of the upload endpoint and
// stores the accepted file under presentation.FileKey. The MIME type is
// sniffed from content; the client's declared type is ignored.
func UploadGuard(cfg GuardConfig) echo.MiddlewareFunc {
	maxBytes := cfg.MaxFileSizeMB * 1024 * 1024

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			form, err := ctx.MultipartForm()
			if err != nil {
				logger.Debug("rejected non multipart upload", "err", err)

				return reject(ctx, "No image file provided")
			}

			if msg := checkFields(form, cfg.MaxFiles); msg != "" {
				return reject(ctx, msg)
			}

			header := form.File[presentation.FieldImage][0]
			if header.Size > maxBytes {
				return reject(ctx, fmt.Sprintf("File too large. Maximum size: %dMB", cfg.MaxFileSizeMB))
			}

			buf, err := readFile(header)
			if err != nil {
				logger.Error("failed to read uploaded file", "err", err)

				return reject(ctx, "No image file provided")
			}
			if int64(len(buf)) > maxBytes {
				return reject(ctx, fmt.Sprintf("File too large. Maximum size: %dMB", cfg.MaxFileSizeMB))
			}

			detected := mimetype.Detect(buf).String()
			if !mimetype.EqualsAny(detected, cfg.AllowedMimeTypes...) {
				return reject(ctx, "Invalid file type. Allowed types: "+strings.Join(cfg.AllowedMimeTypes, ", "))
			}

			mimeType := utils.CleanMimeType(detected)
			filename := header.Filename
			if filename == "" {
				filename = "upload" + utils.GetExtensionFromMimeType(mimeType)
			}

			ctx.Set(presentation.FileKey, entity.File{
				Buffer:           buf,
				OriginalFilename: filename,
				MimeType:         mimeType,
				Size:             int64(len(buf)),
			})

			return next(ctx)
		}
	}
}

func checkFields(form *multipart.Form, maxFiles int) string {
	total := 0
	fields := make([]string, 0, len(form.File))
	for field, headers := range form.File {
		total += len(headers)
		fields = append(fields, field)
	}

	if maxFiles > 0 && total > maxFiles {
		return "Too many files"
	}

	sort.Strings(fields)
	for _, field := range fields {
		if field != presentation.FieldImage {
			return "Unexpected field: " + field
		}
	}

	if len(form.File[presentation.FieldImage]) == 0 {
		return "No image file provided"
	}

	return ""
}

func readFile(header *multipart.FileHeader) ([]byte, error) {
	f, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return io.ReadAll(f)
}

func reject(ctx echo.Context, msg string) error {
	return ctx.JSON(http.StatusBadRequest, map[string]string{"error": msg})
}
