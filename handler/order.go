package handler

import (
	"errors"

	"pod_dining/helper"
	"pod_dining/utils"

	"github.com/gofiber/fiber/v2"
)

// GetOrderByRef proxy sang Order Service, cho màn hình pod hiển thị đơn
func GetOrderByRef(c *fiber.Ctx) error {
	ref := c.Params("orderRef")

	order, err := helper.Orders.GetOrder(ref)
	if err != nil {
		if helper.IsOrderNotFound(err) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Đơn hàng không tồn tại", err)
		}
		return utils.ErrorResponse(c, fiber.StatusBadGateway, "Không tra được đơn hàng, vui lòng thử lại", err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, order)
}

// Reorder tạo đơn mới y hệt đơn cũ ("gọi lại món"), giao cho Order Service.
func Reorder(c *fiber.Ctx) error {
	ref := c.Params("orderRef")

	original, err := helper.Orders.GetOrder(ref)
	if err != nil {
		if helper.IsOrderNotFound(err) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Đơn hàng không tồn tại", err)
		}
		return utils.ErrorResponse(c, fiber.StatusBadGateway, "Không tra được đơn hàng, vui lòng thử lại", err)
	}
	if len(original.Items) == 0 {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Đơn hàng không có món để gọi lại", errors.New("empty items"))
	}

	reorder, err := helper.Orders.CreateReorder(original.Items, original.LocationId)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadGateway, "Không tạo được đơn mới, vui lòng thử lại", err)
	}

	return utils.SuccessResponse(c, fiber.StatusCreated, reorder)
}
