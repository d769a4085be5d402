package serverutils

import (
	"errors"

	"doc-chat-be/internal/pkg/apperror"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware turns errors bubbled up from controllers into the
// structured error body. Application errors keep their message and detail;
// anything unclassified becomes a generic 500 so internal error text never
// reaches the client.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var appErr *apperror.Error
		if errors.As(err, &appErr) {
			return ctx.Status(appErr.StatusCode()).JSON(ErrorResponse{
				Message: appErr.Message,
				Detail:  appErr.Detail,
			})
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(ErrorResponse{
				Message: fiberErr.Message,
			})
		}

		return ctx.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Message: "Internal server error",
		})
	}
}
