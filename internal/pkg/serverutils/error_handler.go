package serverutils

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// WebError carries an HTTP status and a message that is safe to show the client.
type WebError struct {
	Code    int
	Message string
}

func (e *WebError) Error() string {
	return e.Message
}

func NewWebError(code int, message string) *WebError {
	return &WebError{Code: code, Message: message}
}

const internalErrorMessage = "Internal server error"

// ErrorHandlerMiddleware turns handler errors into the JSON error envelope.
// Only WebError and fiber.Error messages reach the client.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var webErr *WebError
		if errors.As(err, &webErr) {
			return ctx.Status(webErr.Code).JSON(ErrorResponse(webErr.Code, webErr.Message))
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Code, fiberErr.Message))
		}

		return ctx.Status(fiber.StatusInternalServerError).JSON(ErrorResponse(fiber.StatusInternalServerError, internalErrorMessage))
	}
}
