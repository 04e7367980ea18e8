// Package handler defines the HTTP handlers of the movie list site.
package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/iliyamo/movie-list/internal/form"
	"github.com/iliyamo/movie-list/internal/middleware"
	"github.com/iliyamo/movie-list/internal/session"
)

// page fills the values every template expects: the logged in account, the
// pending flashes, the CSRF token and empty Errors/Form maps when the caller
// did not supply them.
func page(c echo.Context, title string, data echo.Map) echo.Map {
	if data == nil {
		data = echo.Map{}
	}
	data["Title"] = title
	if acc, ok := middleware.CurrentAccount(c); ok {
		data["Account"] = acc
	}
	data["Flashes"] = session.Flashes(c)
	if tok, ok := c.Get(echomw.DefaultCSRFConfig.ContextKey).(string); ok {
		data["CSRF"] = tok
	}
	if _, ok := data["Errors"]; !ok {
		data["Errors"] = form.Errors{}
	}
	if _, ok := data["Form"]; !ok {
		data["Form"] = map[string]string{}
	}
	return data
}

// queryID parses the id query parameter.  ok is false when it is missing or
// not a positive integer.
func queryID(c echo.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.QueryParam("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return id, true
}
