package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/movie-list/internal/logging"
)

// ErrorHandler renders failed requests as an HTML error page.  HTTP errors
// keep their status and message; anything else is logged and shown as a
// generic 500.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status := http.StatusInternalServerError
	msg := "Something went wrong on our side. Please try again."
	var he *echo.HTTPError
	if errors.As(err, &he) {
		status = he.Code
		if m, ok := he.Message.(string); ok && m != "" {
			msg = m
		}
	} else {
		logging.Ctx(c.Request().Context()).Error().Err(err).Str("uri", c.Request().RequestURI).Msg("unhandled error")
	}

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(status)
		return
	}
	data := page(c, http.StatusText(status), echo.Map{
		"Status":     status,
		"StatusText": http.StatusText(status),
		"Message":    msg,
	})
	if rerr := c.Render(status, "error.html", data); rerr != nil {
		logging.Ctx(c.Request().Context()).Error().Err(rerr).Msg("render error page")
		_ = c.String(status, msg)
	}
}
