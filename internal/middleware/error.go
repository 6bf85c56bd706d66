package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/storecast/storecast/internal/logging"
	"github.com/storecast/storecast/internal/models"
	"github.com/storecast/storecast/internal/services"
)

// StatusForCode maps service error codes to HTTP status codes
func StatusForCode(code string) int {
	switch code {
	case services.CodeInvalidParameter:
		return fiber.StatusBadRequest
	case services.CodeNoDataForKey:
		return fiber.StatusNotFound
	case services.CodeInsufficientData:
		return fiber.StatusUnprocessableEntity
	case services.CodeDataUnavailable:
		return fiber.StatusServiceUnavailable
	case services.CodeModelFitError:
		return fiber.StatusInternalServerError
	default:
		return fiber.StatusInternalServerError
	}
}

// ErrorHandler returns the app-level error handler. Service errors keep
// their code and details; everything else becomes a generic error body.
func ErrorHandler(logger *logging.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var svcErr *services.ServiceError
		if errors.As(err, &svcErr) {
			status := StatusForCode(svcErr.Code)
			if status >= fiber.StatusInternalServerError {
				logger.Error("Request failed",
					"path", c.Path(),
					"method", c.Method(),
					"status", status,
					"code", svcErr.Code,
					"error", err,
				)
			}
			return c.Status(status).JSON(models.ErrorResponse{
				Error: models.ErrorDetail{
					Code:    svcErr.Code,
					Message: svcErr.Message,
					Details: svcErr.Details,
				},
			})
		}

		code := fiber.StatusInternalServerError
		message := "Internal Server Error"
		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			code = fiberErr.Code
			message = fiberErr.Message
		}

		logger.Error("Request error",
			"path", c.Path(),
			"method", c.Method(),
			"status", code,
			"error", err,
		)

		return c.Status(code).JSON(models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "ERROR",
				Message: message,
			},
		})
	}
}
