package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"paintrack/internal/application/usecase/abstraction"
	"paintrack/internal/presentation"
)

type HeadHandler struct {
	getter abstraction.Getter
}

func NewHeadHandler(getter abstraction.Getter) *HeadHandler {
	return &HeadHandler{
		getter: getter,
	}
}

// HandleHead handles HEAD /api/v1/images/<path>. The answer is advisory:
// store errors are reported as 404.
func (h *HeadHandler) HandleHead(c echo.Context) error {
	path, ok := objectPath(c)
	if !ok {
		c.Response().Header().Set(presentation.ReasonTag, "missing image path")

		return c.NoContent(http.StatusBadRequest)
	}

	if !h.getter.Exists(c.Request().Context(), path) {
		return c.NoContent(http.StatusNotFound)
	}

	return c.NoContent(http.StatusOK)
}
