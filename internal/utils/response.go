package utils

import (
	"github.com/gofiber/fiber/v2"
)

// SuccessResponse sends a 200 with the payload, shaped like the origin
// API would shape it.
func SuccessResponse(c *fiber.Ctx, data interface{}) error {
	return c.Status(fiber.StatusOK).JSON(data)
}

// MessageResponse sends a 200 with a {message} body.
func MessageResponse(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": message})
}

// ErrorResponse sends a 400 with a {message} body. An empty message
// falls back to the generic invalid-request text.
func ErrorResponse(c *fiber.Ctx, message string) error {
	return ErrorResponseStatus(c, message, fiber.StatusBadRequest)
}

// ErrorResponseStatus sends an error {message} body with an explicit status.
func ErrorResponseStatus(c *fiber.Ctx, message string, status int) error {
	if message == "" {
		message = "Invalid Request"
	}
	return c.Status(status).JSON(fiber.Map{"message": message})
}
