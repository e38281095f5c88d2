package middleware

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// Logger emits one structured line per completed request. The level follows
// the outcome: handler errors and 5xx log as errors, 4xx as warnings,
// everything else as info.
func Logger(log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			begin := time.Now()
			err := next(c)

			req := c.Request()
			res := c.Response()

			var evt *zerolog.Event
			switch {
			case err != nil || res.Status >= 500:
				evt = log.Error().Err(err)
			case res.Status >= 400:
				evt = log.Warn()
			default:
				evt = log.Info()
			}

			rid, _ := c.Get("request_id").(string)
			evt.Str("request_id", rid).
				Str("method", req.Method).
				Str("path", req.URL.Path).
				Int("status", res.Status).
				Int64("bytes_out", res.Size).
				Dur("latency", time.Since(begin)).
				Str("remote_ip", c.RealIP()).
				Msg("request")

			return err
		}
	}
}
