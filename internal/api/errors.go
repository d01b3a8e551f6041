package api

import (
	"errors"

	"github.com/fathima-sithara/social-service/internal/apperr"
	"github.com/fathima-sithara/social-service/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// errorHandler renders every error as {success:false, error}. Causes of
// server-side failures are logged, never returned.
func errorHandler(log *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return c.Status(fe.Code).JSON(fiber.Map{"success": false, "error": fe.Message})
		}

		status := apperr.Status(err)
		if status >= fiber.StatusInternalServerError {
			log.Error("request failed",
				zap.String("request_id", middleware.GetRequestID(c)),
				zap.String("path", c.Path()),
				zap.Error(err))
		}
		return c.Status(status).JSON(fiber.Map{
			"success": false,
			"error":   apperr.Message(err, "Internal server error."),
		})
	}
}

// badRequest answers a body that failed to decode or validate.
func badRequest(c *fiber.Ctx, msg string, err error) error {
	body := fiber.Map{"success": false, "error": msg}
	if details := formatValidationErrors(err); details != nil {
		body["details"] = details
	}
	return c.Status(fiber.StatusBadRequest).JSON(body)
}
