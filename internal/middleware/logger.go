package middleware

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/iliyamo/movie-list/internal/logging"
)

// RequestLogger writes one zerolog line per request and attaches a request
// scoped logger (carrying request_id) to the request context, so handlers can
// log through logging.Ctx.
func RequestLogger() echo.MiddlewareFunc {
	return echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		BeforeNextFunc: func(c echo.Context) {
			rid := c.Request().Header.Get(echo.HeaderXRequestID)
			if rid == "" {
				rid = uuid.NewString()
			}
			c.Response().Header().Set(echo.HeaderXRequestID, rid)
			l := logging.Logger().With().Str("request_id", rid).Logger()
			req := c.Request()
			c.SetRequest(req.WithContext(logging.WithContext(req.Context(), l)))
		},
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			l := logging.Ctx(c.Request().Context())
			ev := l.Info()
			if v.Error != nil {
				ev = l.Error().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("account", accountLabel(c)).
				Msg("request")
			return nil
		},
	})
}
