// Package log emits structured JSON application events (audit, security,
// errors) enriched with request context.
package log

import (
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Str("service", "revive").Logger()

// Setup configures the global event logger. Level falls back to info.
func Setup(level string, w *os.File) {
	zerolog.TimeFieldFormat = time.RFC3339
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	out := os.Stdout
	if w != nil {
		out = w
	}
	logger = zerolog.New(out).Level(lvl).With().Timestamp().Str("service", "revive").Logger()
}

func write(ev *zerolog.Event, c *fiber.Ctx, action string, fields map[string]any) {
	ev = ev.Str("action", action)
	if c != nil {
		ev = ev.Str("ip", c.IP()).Str("method", c.Method()).Str("path", c.Path()).
			Int("status", c.Response().StatusCode())
		if rid, ok := c.Locals("requestid").(string); ok && rid != "" {
			ev = ev.Str("req_id", rid)
		}
	}
	if len(fields) > 0 {
		ev = ev.Fields(fields)
	}
	ev.Send()
}

func Info(c *fiber.Ctx, action string, fields map[string]any) {
	write(logger.Info(), c, action, fields)
}

func Audit(c *fiber.Ctx, action string, fields map[string]any) {
	write(logger.Info().Str("kind", "audit"), c, action, fields)
}

func Security(c *fiber.Ctx, action string, fields map[string]any) {
	write(logger.Warn().Str("kind", "security"), c, action, fields)
}

func Error(c *fiber.Ctx, action string, err error, fields map[string]any) {
	write(logger.Error().Err(err), c, action, fields)
}
