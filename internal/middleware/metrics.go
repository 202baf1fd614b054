package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

type requestObserver interface {
	ObserveRequest(method, route string, status int, elapsed time.Duration)
}

// Metrics records every request against its route template rather than the
// raw path so ids do not explode label cardinality.
func Metrics(observer requestObserver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fiberErr, ok := err.(*fiber.Error); ok {
				status = fiberErr.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}

		route := "unmatched"
		if r := c.Route(); r != nil && r.Path != "" {
			route = r.Path
		}
		observer.ObserveRequest(c.Method(), route, status, time.Since(start))
		return err
	}
}
