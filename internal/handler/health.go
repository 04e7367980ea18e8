package handler

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/movie-list/internal/logging"
)

// Health is used by load balancers and monitoring to verify that the service
// is up.  It pings the database and answers 503 when the ping fails.
func Health(db *sql.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			logging.Ctx(ctx).Error().Err(err).Msg("health: database ping failed")
			return c.String(http.StatusServiceUnavailable, "database unavailable")
		}
		return c.String(http.StatusOK, "ok")
	}
}
