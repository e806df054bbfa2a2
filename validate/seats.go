package validate

import (
	"github.com/gofiber/fiber/v2"
)

type LinkDualInput struct {
	SeatAId uint `json:"seatAId" validate:"required,gt=0"`
	SeatBId uint `json:"seatBId" validate:"required,gt=0"`
}

func LinkDual() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input LinkDualInput
		if err := c.BodyParser(&input); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid input " + err.Error(),
			})
		}

		if err := validate.Struct(input); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		c.Locals("linkDualInput", input)
		return c.Next()
	}
}
