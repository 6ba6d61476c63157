package middleware

import (
	"errors"
	"io"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"internhub/internal/logger"
)

// Logger logs each HTTP request as one JSON line through the process logger.
// Fields: request_id, method, path, status, latency (milliseconds), ts, and
// actor_id once Authenticate has identified the caller.
func Logger() fiber.Handler {
	return accessLog(logger.With("http"), nil)
}

// LoggerWithWriter is Logger writing to w, with ts rendered in loc.
func LoggerWithWriter(w io.Writer, loc *time.Location) fiber.Handler {
	if loc == nil {
		loc = time.UTC
	}
	return accessLog(zerolog.New(w), loc)
}

func accessLog(base zerolog.Logger, loc *time.Location) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			var fe *fiber.Error
			if errors.As(err, &fe) {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}

		var ev *zerolog.Event
		switch {
		case status >= fiber.StatusInternalServerError:
			ev = base.Error()
		case status >= fiber.StatusBadRequest:
			ev = base.Warn()
		default:
			ev = base.Info()
		}
		if loc != nil {
			ev = ev.Time("ts", time.Now().In(loc))
		}

		ev = ev.
			Str("request_id", RequestIDFromCtx(c)).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Float64("latency", float64(time.Since(start).Microseconds())/1000)
		if actor, ok := ActorFromCtx(c); ok {
			ev = ev.Str("actor_id", actor.ID)
		}
		ev.Msg("request")

		return err
	}
}
