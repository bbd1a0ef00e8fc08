package response

import (
	"github.com/gofiber/fiber/v2"

	domainErrors "quickpay/internal/errors"
)

func Success(c *fiber.Ctx, message string, data interface{}) error {
	return c.JSON(fiber.Map{
		"message": message,
		"data":    data,
	})
}

func Error(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error": message,
	})
}

func BadRequest(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusBadRequest, message)
}

func ServerError(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusInternalServerError, message)
}

func Unauthorized(c *fiber.Ctx) error {
	return Error(c, fiber.StatusUnauthorized, "Unauthorized")
}

func NotFound(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusNotFound, message)
}

func ValidationError(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusBadRequest, message)
}

// StatusFor maps a failure kind to its HTTP status.
func StatusFor(kind domainErrors.Kind) int {
	switch kind {
	case domainErrors.KindQueryTooShort, domainErrors.KindInvalidAmount, domainErrors.KindInvalidRequest:
		return fiber.StatusBadRequest
	case domainErrors.KindRecipientNotFound:
		return fiber.StatusNotFound
	case domainErrors.KindLedgerDeclined:
		return fiber.StatusUnprocessableEntity
	case domainErrors.KindTransportFailure:
		return fiber.StatusBadGateway
	}
	return fiber.StatusInternalServerError
}

// DomainError writes err with the status of its kind. Errors outside the
// domain taxonomy become a 500 without leaking their text.
func DomainError(c *fiber.Ctx, err error) error {
	var de *domainErrors.DomainError
	if !domainErrors.As(err, &de) {
		return ServerError(c, "internal server error")
	}

	body := fiber.Map{
		"error": de.Message,
		"code":  de.Code,
	}
	if de.Kind == domainErrors.KindTransportFailure {
		body["reconcile"] = true
	}
	return c.Status(StatusFor(de.Kind)).JSON(body)
}
