package validate

import (
	"pod_dining/model"

	"github.com/gofiber/fiber/v2"
)

func CreateGroupOrder() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.CreateGroupOrderInput
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

		c.Locals("createGroupInput", input)
		return c.Next()
	}
}

func JoinGroupOrder() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.JoinGroupOrderInput
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

		c.Locals("joinGroupInput", input)
		return c.Next()
	}
}

func SeatingOption() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.SeatingOptionInput
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

		c.Locals("seatingOptionInput", input)
		return c.Next()
	}
}
