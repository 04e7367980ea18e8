package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Index renders the landing page.
func Index(c echo.Context) error {
	return c.Render(http.StatusOK, "index.html", page(c, "", nil))
}
