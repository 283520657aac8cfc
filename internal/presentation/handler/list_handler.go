package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"paintrack/internal/application/usecase/abstraction"
	"paintrack/internal/presentation"
)

type ListHandler struct {
	lister abstraction.Lister
}

func NewListHandler(lister abstraction.Lister) *ListHandler {
	return &ListHandler{
		lister: lister,
	}
}

// HandleList handles GET /api/v1/images requests for the caller's photos.
func (h *ListHandler) HandleList(c echo.Context) error {
	since, err := parseTimeQueryParam(c, "since")
	if err != nil {
		c.Response().Header().Set(presentation.ReasonTag, err.Error())

		return c.NoContent(http.StatusBadRequest)
	}

	until, err := parseTimeQueryParam(c, "until")
	if err != nil {
		c.Response().Header().Set(presentation.ReasonTag, err.Error())

		return c.NoContent(http.StatusBadRequest)
	}

	if since != nil && until != nil && since.After(*until) {
		c.Response().Header().Set(presentation.ReasonTag, "'since' is after 'until'")

		return c.NoContent(http.StatusBadRequest)
	}

	photos, err := h.lister.ListPhotos(c.Request().Context(), callerID(c), since, until)
	if err != nil {
		return respondError(c, err, "Failed to list images")
	}

	return c.JSON(http.StatusOK, photos)
}

// parseTimeQueryParam parses a Unix timestamp string from query parameters into a *time.Time.
func parseTimeQueryParam(c echo.Context, paramName string) (*time.Time, error) {
	s := c.QueryParam(paramName)
	if s == "" {
		return nil, nil //nolint
	}

	ts, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid '%s' timestamp", paramName)
	}

	t := time.Unix(ts, 0)

	return &t, nil
}
