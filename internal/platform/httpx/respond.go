package httpx

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// Envelope is the wire shape every endpoint returns.
type Envelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Token   string      `json:"token,omitempty"`
	User    interface{} `json:"user,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// OK writes a success envelope.
func OK(c echo.Context, status int, message string, data interface{}) error {
	return c.JSON(status, Envelope{Success: true, Message: message, Data: data})
}

// ErrorHandler converts every error that escapes a handler into the
// {success:false, message} envelope. Storage errors are logged with their
// internal detail and surfaced as a generic message.
func ErrorHandler(logger zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status := http.StatusInternalServerError
		message := "internal server error"

		var appErr *Error
		var httpErr *echo.HTTPError
		switch {
		case errors.As(err, &appErr):
			status = appErr.Status()
			message = appErr.Message
			if appErr.Kind == KindStorage {
				rid, _ := c.Get("request_id").(string)
				logger.Error().
					Err(appErr.Err).
					Str("request_id", rid).
					Str("path", c.Request().URL.Path).
					Msg("storage failure")
			}
		case errors.As(err, &httpErr):
			status = httpErr.Code
			if msg, ok := httpErr.Message.(string); ok {
				message = msg
			}
		default:
			rid, _ := c.Get("request_id").(string)
			logger.Error().
				Err(err).
				Str("request_id", rid).
				Str("path", c.Request().URL.Path).
				Msg("unhandled error")
		}

		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(status)
			return
		}
		_ = c.JSON(status, Envelope{Success: false, Message: message})
	}
}
