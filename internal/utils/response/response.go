package response

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	errs "pulso/internal/errors"
)

func Error(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error": message,
	})
}

func BadRequest(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusBadRequest, message)
}

func NotFound(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusNotFound, message)
}

func ServerError(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusInternalServerError, message)
}

func ServiceUnavailable(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusServiceUnavailable, message)
}

// FromError maps a domain error to its HTTP status. Unknown errors
// surface as 500 with the given fallback message.
func FromError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, errs.ErrInvalidFilter):
		return BadRequest(c, err.Error())
	case errors.Is(err, errs.ErrAlertNotFound),
		errors.Is(err, errs.ErrThresholdNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		return NotFound(c, err.Error())
	case errors.Is(err, errs.ErrDataUnavailable):
		return ServiceUnavailable(c, errs.ErrDataUnavailable.Message)
	default:
		return ServerError(c, fallback)
	}
}
