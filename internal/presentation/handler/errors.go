package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"paintrack/internal/domain/apperror"
	"paintrack/internal/presentation"
	"paintrack/pkg/logger"
)

// respondError answers with the message of client-facing errors and with
// fallback for everything else. Details of the latter are only logged.
func respondError(c echo.Context, err error, fallback string) error {
	var appErr *apperror.Error
	if errors.As(err, &appErr) && appErr.Public() {
		return c.JSON(appErr.HTTPStatus(), map[string]string{"error": appErr.Message})
	}

	logger.Error("request failed", "method", c.Request().Method, "path", c.Request().URL.Path,
		"kind", apperror.KindOf(err).String(), "err", err)

	return c.JSON(http.StatusInternalServerError, map[string]string{"error": fallback})
}

func callerID(c echo.Context) string {
	id, _ := c.Get(presentation.OwnerIDKey).(string)

	return id
}
