package middleware

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/rs/zerolog"
)

// RequestLogger writes one structured log line per request. The level follows
// the response status: errors for 5xx, warnings for 4xx, info otherwise.
func RequestLogger(logger zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		chainErr := c.Next()

		// An error returned down the chain is written by the app's error
		// handler after this middleware, so derive the final status from it.
		status := c.Response().StatusCode()
		if chainErr != nil {
			status = fiber.StatusInternalServerError
			var fiberErr *fiber.Error
			if errors.As(chainErr, &fiberErr) {
				status = fiberErr.Code
			}
		}

		var e *zerolog.Event
		switch {
		case status >= fiber.StatusInternalServerError:
			e = logger.Error().Err(chainErr)
		case status >= fiber.StatusBadRequest:
			e = logger.Warn()
		default:
			e = logger.Info()
		}

		if id, ok := c.Locals(requestid.ConfigDefault.ContextKey).(string); ok && id != "" {
			e = e.Str("request_id", id)
		}

		e.Dur("latency", time.Since(start)).
			Int("status", status).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Str("ip", c.IP()).
			Str("user_agent", c.Get(fiber.HeaderUserAgent)).
			Msg("API")

		return chainErr
	}
}
