package middleware

import (
	"errors"
	"log"

	"job-portal/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

// AppError carries the HTTP status and client-facing message for a failure.
// Cause is logged but never rendered.
type AppError struct {
	StatusCode int
	Message    string
	Data       interface{}
	Cause      error
}

func NewAppError(statusCode int, message string, data interface{}, cause error) *AppError {
	return &AppError{StatusCode: statusCode, Message: message, Data: data, Cause: cause}
}

func (e *AppError) Error() string {
	switch {
	case e == nil:
		return ""
	case e.Cause == nil:
		return e.Message
	default:
		return e.Message + ": " + e.Cause.Error()
	}
}

func (e *AppError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

type ErrorMiddleware struct {
	logger *log.Logger
}

func NewErrorMiddleware(logger *log.Logger) *ErrorMiddleware {
	if logger == nil {
		logger = log.Default()
	}
	return &ErrorMiddleware{logger: logger}
}

// Middleware renders handler errors as envelopes. Server-side failures are
// logged with their cause and reported with a generic message.
func (m *ErrorMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				m.logger.Printf("http=panic method=%s path=%s panic=%v", c.Method(), c.Path(), r)
				err = response.Error(c, fiber.StatusInternalServerError, response.MessageInternalServerError, nil)
			}
		}()

		if err = c.Next(); err == nil {
			return nil
		}

		status, msg, data := classify(err)
		if status >= fiber.StatusInternalServerError {
			m.logger.Printf("http=error method=%s path=%s status=%d err=%v", c.Method(), c.Path(), status, err)
			msg, data = response.MessageInternalServerError, nil
		}
		return response.Error(c, status, msg, data)
	}
}

func classify(err error) (int, string, interface{}) {
	var (
		appErr   *AppError
		fiberErr *fiber.Error
		status   int
		msg      string
		data     interface{}
	)
	switch {
	case errors.As(err, &appErr):
		status, msg, data = appErr.StatusCode, appErr.Message, appErr.Data
	case errors.As(err, &fiberErr):
		status, msg = fiberErr.Code, fiberErr.Message
	}

	if status < 400 || status > 599 {
		return fiber.StatusInternalServerError, response.MessageInternalServerError, nil
	}
	if status >= fiber.StatusInternalServerError {
		status = fiber.StatusInternalServerError
	}
	if msg == "" {
		msg = response.MessageFor(status)
	}
	return status, msg, data
}
