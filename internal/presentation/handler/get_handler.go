package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"paintrack/internal/application/usecase/abstraction"
	"paintrack/internal/domain/dto"
	"paintrack/internal/presentation"
)

type GetHandler struct {
	getter abstraction.Getter
}

func NewGetHandler(getter abstraction.Getter) *GetHandler {
	return &GetHandler{
		getter: getter,
	}
}

// HandleGet handles GET /api/v1/images/<path> requests and returns the
// photo's metadata. The image bytes are served by the object store.
func (h *GetHandler) HandleGet(c echo.Context) error {
	path, ok := objectPath(c)
	if !ok {
		c.Response().Header().Set(presentation.ReasonTag, "missing image path")

		return c.NoContent(http.StatusBadRequest)
	}

	photo, err := h.getter.GetPhoto(c.Request().Context(), path)
	if err != nil {
		c.Response().Header().Set(presentation.ReasonTag, err.Error())

		return c.NoContent(http.StatusNotFound)
	}

	return c.JSON(http.StatusOK, dto.NewPhotoDescriptor(*photo))
}
