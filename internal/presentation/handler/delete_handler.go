package handler

import (
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"

	"paintrack/internal/application/usecase/abstraction"
	"paintrack/internal/presentation"
)

type DeleteHandler struct {
	deleter abstraction.Deleter
}

func NewDeleteHandler(deleter abstraction.Deleter) *DeleteHandler {
	return &DeleteHandler{
		deleter: deleter,
	}
}

// HandleDelete handles DELETE /api/v1/images/<path> requests.
func (h *DeleteHandler) HandleDelete(c echo.Context) error {
	path, ok := objectPath(c)
	if !ok {
		c.Response().Header().Set(presentation.ReasonTag, "missing image path")

		return c.NoContent(http.StatusBadRequest)
	}

	if err := h.deleter.DeleteImage(c.Request().Context(), callerID(c), path); err != nil {
		return respondError(c, err, "Failed to delete image")
	}

	return c.NoContent(http.StatusOK)
}

func objectPath(c echo.Context) (string, bool) {
	raw := c.Param(presentation.PathParam)
	path, err := url.PathUnescape(raw)
	if err != nil || path == "" {
		return "", false
	}

	return path, true
}
