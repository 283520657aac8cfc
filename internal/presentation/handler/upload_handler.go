package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"paintrack/internal/application/usecase/abstraction"
	"paintrack/internal/domain/dto"
	"paintrack/internal/domain/entity"
	"paintrack/internal/infrastructure/imageproc"
	"paintrack/internal/presentation"
)

type UploadHandler struct {
	attacher abstraction.Attacher
}

func NewUploadHandler(attacher abstraction.Attacher) *UploadHandler {
	return &UploadHandler{
		attacher: attacher,
	}
}

// Handle handles POST /api/v1/images. It expects UploadGuard and
// AuthMiddleware to have run.
func (h *UploadHandler) Handle(c echo.Context) error {
	file, ok := c.Get(presentation.FileKey).(entity.File)
	if !ok {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "No image file provided"})
	}

	responsive := false
	if raw := c.FormValue(presentation.FieldResponsive); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid responsive flag"})
		}
		responsive = parsed
	}

	opts, err := uploadOptions(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	meta := entity.UploadMetadata{
		OwnerID:      callerID(c),
		Category:     c.FormValue(presentation.FieldCategory),
		CollectionID: c.FormValue(presentation.FieldCollectionID),
		ModelID:      c.FormValue(presentation.FieldModelID),
		Description:  c.FormValue(presentation.FieldDescription),
		Tags:         splitTags(c.FormValue(presentation.FieldTags)),
	}

	// A client that hangs up mid-upload must not leave half-stored variants
	// behind, so the pipeline runs to completion on its own.
	photos, err := h.attacher.Attach(context.WithoutCancel(c.Request().Context()), file, meta, responsive, opts)
	if err != nil {
		return respondError(c, err, "Failed to upload image")
	}

	descriptors := make([]dto.PhotoDescriptor, 0, len(photos))
	for i := range photos {
		descriptors = append(descriptors, dto.NewPhotoDescriptor(photos[i]))
	}

	return c.JSON(http.StatusCreated, descriptors)
}

type badField string

func (b badField) Error() string { return "Invalid " + string(b) }

func uploadOptions(c echo.Context) (abstraction.UploadOptions, error) {
	var opts abstraction.UploadOptions

	ints := []struct {
		field string
		dst   *int
		max   int
	}{
		{presentation.FieldQuality, &opts.Quality, 100},
		{presentation.FieldMaxWidth, &opts.MaxWidth, imageproc.MaxDimension},
		{presentation.FieldMaxHeight, &opts.MaxHeight, imageproc.MaxDimension},
	}
	for _, f := range ints {
		raw := c.FormValue(f.field)
		if raw == "" {
			continue
		}
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 || v > f.max {
			return opts, badField(f.field)
		}
		*f.dst = v
	}

	if raw := strings.ToLower(c.FormValue(presentation.FieldFormat)); raw != "" {
		switch imageproc.Format(raw) {
		case imageproc.FormatJPEG, imageproc.FormatPNG, imageproc.FormatWebP:
			opts.Format = imageproc.Format(raw)
		default:
			return opts, badField(presentation.FieldFormat)
		}
	}

	return opts, nil
}

func splitTags(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	return strings.Split(raw, ",")
}
