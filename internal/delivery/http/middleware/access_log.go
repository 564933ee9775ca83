package middleware

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

const requestIDHeader = "X-Request-ID"

type AccessLogMiddleware struct {
	logger *log.Logger
}

func NewAccessLogMiddleware(logger *log.Logger) *AccessLogMiddleware {
	if logger == nil {
		logger = log.Default()
	}
	return &AccessLogMiddleware{logger: logger}
}

// Middleware tags each request with an id (reusing the caller's when sent)
// and logs one line once the rest of the chain has written the response.
func (m *AccessLogMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		start := time.Now()
		rid := c.Get(requestIDHeader)
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Set(requestIDHeader, rid)

		err := c.Next()

		user := "anonymous"
		if r, ok := RequesterFrom(c); ok {
			user = r.ID.String()
		}
		m.logger.Printf(
			"http=access rid=%s method=%s path=%s status=%d latency=%s ip=%s user=%s bytes=%d ua=%q",
			rid,
			c.Method(),
			c.OriginalURL(),
			c.Response().StatusCode(),
			time.Since(start).Round(time.Microsecond),
			c.IP(),
			user,
			len(c.Response().Body()),
			c.Get(fiber.HeaderUserAgent),
		)
		return err
	}
}
