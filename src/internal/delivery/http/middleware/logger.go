package middleware

import (
	"fmt"
	"time"

	"wallet-service/src/pkg/log"

	"github.com/gofiber/fiber/v2"
)

// NewLogger emits one structured line per request with latency and status.
func NewLogger(logger log.Log) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		start := time.Now()
		err := ctx.Next()

		meta := fmt.Sprintf("status=%d latency=%s ip=%s",
			ctx.Response().StatusCode(), time.Since(start), ctx.IP())
		logger.Info("http", fmt.Sprintf("%s %s", ctx.Method(), ctx.Path()), "request", meta)
		return err
	}
}
