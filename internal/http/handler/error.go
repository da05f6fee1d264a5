package handler

import (
	"errors"

	"github.com/code19m/errx"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"formapi/internal/filestore"
	"formapi/internal/http/middleware"
	"formapi/internal/logger"
)

const codeInternal = "INTERNAL_ERROR"

// errorPayload defines the standardized error response body.
type errorPayload struct {
	RequestID string        `json:"request_id"`
	Error     errorEnvelope `json:"error"`
}

type errorEnvelope struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// requestIDFromCtx extracts request_id previously stored by middleware.RequestID.
func requestIDFromCtx(c *fiber.Ctx) string {
	if v := c.Locals(middleware.RequestIDLocalKey); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// writeError writes a standardized JSON error response without leaking internal errors.
//
// Parameters:
// - status: HTTP status code to return
// - code: machine-readable short error code (e.g., "INVALID_ID", "FORMATION_NOT_FOUND", "INTERNAL_ERROR")
// - message: human-readable safe message (no internal details)
func writeError(c *fiber.Ctx, status int, code, message string) error {
	res := errorPayload{
		RequestID: requestIDFromCtx(c),
		Error: errorEnvelope{
			Code:    code,
			Message: message,
		},
	}
	return c.Status(status).JSON(res)
}

// statusFor converts an errx.Type to the matching HTTP status code.
func statusFor(t errx.Type) int {
	switch t {
	case errx.T_Authentication:
		return fiber.StatusUnauthorized
	case errx.T_Forbidden:
		return fiber.StatusForbidden
	case errx.T_NotFound:
		return fiber.StatusNotFound
	case errx.T_Validation:
		return fiber.StatusBadRequest
	case errx.T_Conflict:
		return fiber.StatusConflict
	case errx.T_Throttling:
		return fiber.StatusTooManyRequests
	default:
		return fiber.StatusInternalServerError
	}
}

func messageFor(status int) string {
	switch status {
	case fiber.StatusBadRequest:
		return "bad request"
	case fiber.StatusUnauthorized:
		return "unauthorized"
	case fiber.StatusForbidden:
		return "forbidden"
	case fiber.StatusNotFound:
		return "resource not found"
	case fiber.StatusMethodNotAllowed:
		return "method not allowed"
	case fiber.StatusConflict:
		return "resource already exists"
	case fiber.StatusRequestEntityTooLarge:
		return "request body too large"
	case fiber.StatusTooManyRequests:
		return "too many requests"
	case fiber.StatusServiceUnavailable:
		return "dependency unavailable"
	default:
		return "internal server error"
	}
}

// writeServiceError maps a service error onto the envelope. Server-side
// failures are logged with their cause and answered with a generic code.
func writeServiceError(c *fiber.Ctx, log *zap.Logger, err error) error {
	e := errx.AsErrorX(err)
	status := statusFor(e.Type())
	code := e.Code()

	if status >= fiber.StatusInternalServerError {
		log.Error("request failed", append(logger.ErrorFields(err),
			zap.String("request_id", requestIDFromCtx(c)),
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
		)...)
		if code != filestore.CodeStorageFailure {
			code = codeInternal
		}
	}
	if code == "" {
		code = codeInternal
	}
	return writeError(c, status, code, messageFor(status))
}

// ErrorHandler returns a Fiber global error handler that standardizes error responses.
// Router errors keep their status; everything else goes through the errx mapping.
func ErrorHandler(log *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			switch fe.Code {
			case fiber.StatusBadRequest:
				return writeError(c, fe.Code, "BAD_REQUEST", messageFor(fe.Code))
			case fiber.StatusNotFound:
				return writeError(c, fe.Code, "NOT_FOUND", messageFor(fe.Code))
			case fiber.StatusMethodNotAllowed:
				return writeError(c, fe.Code, "METHOD_NOT_ALLOWED", messageFor(fe.Code))
			case fiber.StatusRequestEntityTooLarge:
				return writeError(c, fe.Code, "PAYLOAD_TOO_LARGE", messageFor(fe.Code))
			default:
				if fe.Code < fiber.StatusInternalServerError {
					return writeError(c, fe.Code, "BAD_REQUEST", fe.Message)
				}
				log.Error("unhandled router error", zap.Int("status", fe.Code), zap.String("message", fe.Message))
				return writeError(c, fiber.StatusInternalServerError, codeInternal, messageFor(fiber.StatusInternalServerError))
			}
		}
		return writeServiceError(c, log, err)
	}
}
