package middleware

import (
	"log"
	"time"

	"github.com/labstack/echo/v4"
)

// Logging writes one line per request with the request id, caller address,
// route, status and latency.
func Logging() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			if err != nil {
				c.Error(err)
			}

			rid, _ := c.Get(ContextKeyRequestID).(string)
			req := c.Request()
			log.Printf("request_id=%s remote=%s method=%s path=%s status=%d latency=%s",
				rid, c.RealIP(), req.Method, req.URL.Path, c.Response().Status, time.Since(start))

			return err
		}
	}
}
